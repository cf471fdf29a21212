// Copyright (c) 2013-2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package txorphanage implements a bounded, in-memory, multi-indexed cache
// of orphan transactions: transactions received from peers whose parent
// transactions are not yet known locally.
//
// An Orphanage maintains three coordinated indices (primary store, reverse
// index by referenced outpoint, and a dense positional list for O(1) random
// eviction) and a policy layer on top of them (admission, time-based
// sweeping, overflow eviction, block- and peer-driven cleanup, and
// child-discovery for re-validation). It performs no I/O and holds no
// opinion about transaction validity, fee policy, or peer quotas; those are
// the caller's concern.
package txorphanage

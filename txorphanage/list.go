// Copyright (c) 2013-2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txorphanage

import "github.com/btcsuite/btcd/chaincfg/chainhash"

// orphanList is the dense positional list described by the data model: a
// sequence of transaction ids with no ordering semantics of its own, kept
// dense purely so that a uniformly random index yields a uniformly random
// resident orphan in O(1). It is never traversed as a log.
type orphanList []chainhash.Hash

// append adds id to the end of the list and returns its index.
func (l *orphanList) append(id chainhash.Hash) int {
	*l = append(*l, id)
	return len(*l) - 1
}

// removeAt removes the entry at pos using swap-with-back-then-pop. It
// returns the id that was moved into pos, and ok=false if no entry moved
// (pos was already the last entry).
func (l *orphanList) removeAt(pos int) (moved chainhash.Hash, ok bool) {
	s := *l
	last := len(s) - 1
	if pos != last {
		s[pos] = s[last]
		moved, ok = s[pos], true
	}
	*l = s[:last]
	return moved, ok
}

// Copyright (c) 2013-2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txorphanage

import (
	"math/rand"
	"time"
)

const (
	// DefaultMaxOrphanTxSize is the default maximum serialized size, in
	// bytes, of a transaction admitted to the orphanage. It matches
	// Bitcoin's MAX_STANDARD_TX_SIZE. A peer sending a single legitimate
	// large transaction with a missing parent is expected to rebroadcast
	// it later, once its parents have arrived.
	DefaultMaxOrphanTxSize = 100000

	// expireSeconds is the lifetime of an orphan from admission to
	// eligibility for time-based eviction.
	expireSeconds = 20 * 60

	// sweepIntervalSeconds is the minimum spacing between two time-based
	// sweeps of the orphan pool, batching the O(n) scan.
	sweepIntervalSeconds = 5 * 60
)

// PeerID identifies the source that supplied an orphan to the orphanage.
// The caller is free to choose any numbering scheme, though it's common to
// use the numeric identifier already assigned to network peers.
type PeerID int32

// NoPeer is the sentinel PeerID returned by GetTx when the requested
// transaction isn't resident in the orphanage.
const NoPeer PeerID = -1

// Clock supplies the current time to the orphanage. Implementations need
// not be monotonic; a backward jump merely delays the next time-based
// sweep rather than corrupting any index.
type Clock interface {
	// Now returns the current time as a Unix timestamp in seconds.
	Now() int64
}

// systemClock is the default Clock, backed by the wall clock.
type systemClock struct{}

func (systemClock) Now() int64 { return time.Now().Unix() }

// RandSource supplies uniformly distributed integers used to select a
// random eviction victim. Cryptographic strength isn't required, but the
// distribution must be uniform enough that an adversarial peer population
// can't bias which of its own orphans gets evicted.
type RandSource interface {
	// Intn returns a pseudo-random number in [0, n). It panics if n <= 0.
	Intn(n int) int
}

// mathRandSource is the default RandSource, backed by a package-private
// math/rand generator. No third-party PRNG is used here for the same
// reason none of the pack's non-cryptographic random selections (mining
// nonce search, fee-estimator bucket sampling, treap balancing) reach for
// one: math/rand is the idiom this corpus uses throughout.
type mathRandSource struct {
	r *rand.Rand
}

func newMathRandSource() mathRandSource {
	return mathRandSource{r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (m mathRandSource) Intn(n int) int { return m.r.Intn(n) }

// Config holds the tunables and collaborators an Orphanage is constructed
// with. The zero value is not usable; use DefaultConfig as a starting
// point.
type Config struct {
	// MaxOrphanTxSize rejects admission of any transaction whose
	// serialized size exceeds this many bytes. Bounds worst-case memory
	// at roughly the cap passed to LimitOrphans times MaxOrphanTxSize.
	MaxOrphanTxSize int

	// Clock supplies the current time for expiry bookkeeping.
	Clock Clock

	// Rand supplies randomness for overflow eviction.
	Rand RandSource
}

// DefaultConfig returns a Config with the standard size limit and
// system-backed time and randomness collaborators.
func DefaultConfig() Config {
	return Config{
		MaxOrphanTxSize: DefaultMaxOrphanTxSize,
		Clock:           systemClock{},
		Rand:            newMathRandSource(),
	}
}

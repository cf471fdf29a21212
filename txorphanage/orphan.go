// Copyright (c) 2013-2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txorphanage

import (
	"sync"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/decred/dcrd/lru"
)

// orphanTx is an orphan transaction together with the bookkeeping the
// orphanage needs beyond what the transaction itself exposes: who sent it,
// when it expires, and where it currently sits in the positional list.
type orphanTx struct {
	tx       *btcutil.Tx
	fromPeer PeerID
	expireAt int64
	listPos  int
}

// Orphanage is a bounded, in-memory, multi-indexed cache of orphan
// transactions. It is safe for concurrent use; every exported method
// acquires the orphanage's lock for its duration.
//
// Three indices are maintained in lock-step, so that after every call each
// resident id sits in list at its recorded position and in byPrev under
// each outpoint its inputs reference:
//
//   - byID is the primary store, the sole source of truth for residency.
//   - byPrev is the reverse index from a referenced outpoint to the set of
//     orphan ids that reference it.
//   - list is the dense positional list used to draw a uniform random
//     eviction victim in O(1).
type Orphanage struct {
	cfg Config

	mu sync.Mutex

	byID   map[chainhash.Hash]*orphanTx
	byPrev map[wire.OutPoint]map[chainhash.Hash]struct{}
	list   orphanList

	// nextSweep gates the time-based sweep phase of LimitOrphans so the
	// O(n) scan is amortized rather than run on every call.
	nextSweep int64

	// rejectThrottle bounds how often the oversize-admission log line
	// repeats for the same id, so a peer that keeps resending the same
	// oversize transaction can't flood the log.
	rejectThrottle lru.Cache
}

// NewOrphanage creates an empty orphanage using the given configuration.
func NewOrphanage(cfg Config) *Orphanage {
	if cfg.Clock == nil {
		cfg.Clock = systemClock{}
	}
	if cfg.Rand == nil {
		cfg.Rand = newMathRandSource()
	}

	return &Orphanage{
		cfg:            cfg,
		byID:           make(map[chainhash.Hash]*orphanTx),
		byPrev:         make(map[wire.OutPoint]map[chainhash.Hash]struct{}),
		rejectThrottle: lru.NewCache(256),
	}
}

// AddTx admits tx into the orphanage, tagging it with the peer it was
// received from. It returns false without changing any state if tx is
// already resident (re-admission is a no-op, not a refresh) or if tx
// exceeds the configured maximum orphan size.
func (o *Orphanage) AddTx(tx *btcutil.Tx, peer PeerID) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	id := *tx.Hash()
	if _, exists := o.byID[id]; exists {
		return false
	}

	size := tx.MsgTx().SerializeSize()
	if size > o.cfg.MaxOrphanTxSize {
		if !o.rejectThrottle.Contains(id) {
			o.rejectThrottle.Add(id)
			log.Debugf("ignoring large orphan tx (size: %d, hash: %v)",
				size, id)
		}
		return false
	}

	now := o.cfg.Clock.Now()
	pos := o.list.append(id)
	o.byID[id] = &orphanTx{
		tx:       tx,
		fromPeer: peer,
		expireAt: now + expireSeconds,
		listPos:  pos,
	}
	for _, txIn := range tx.MsgTx().TxIn {
		prev := txIn.PreviousOutPoint
		bucket, ok := o.byPrev[prev]
		if !ok {
			bucket = make(map[chainhash.Hash]struct{})
			o.byPrev[prev] = bucket
		}
		bucket[id] = struct{}{}
	}

	log.Debugf("stored orphan tx %v (pool size %d, outpoints %d)",
		id, len(o.byID), len(o.byPrev))
	return true
}

// HaveTx reports whether id is currently resident in the orphanage.
func (o *Orphanage) HaveTx(id chainhash.Hash) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	_, exists := o.byID[id]
	return exists
}

// GetTx returns the orphan transaction stored under id and the peer it was
// received from. If id isn't resident, it returns (nil, NoPeer).
func (o *Orphanage) GetTx(id chainhash.Hash) (*btcutil.Tx, PeerID) {
	o.mu.Lock()
	defer o.mu.Unlock()

	otx, exists := o.byID[id]
	if !exists {
		return nil, NoPeer
	}
	return otx.tx, otx.fromPeer
}

// Count returns the number of orphans currently resident.
func (o *Orphanage) Count() int {
	o.mu.Lock()
	defer o.mu.Unlock()

	return len(o.byID)
}

// EraseTx removes id from the orphanage if present. It returns 1 if a
// record was removed, 0 if id wasn't resident.
func (o *Orphanage) EraseTx(id chainhash.Hash) int {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.eraseTx(id)
}

// eraseTx is the unlocked implementation of EraseTx. Every other mutator in
// this package (peer cleanup, block cleanup, expiry and overflow eviction)
// is built on top of it so reverse-index cleanup and list compaction happen
// in exactly one place. The caller must hold o.mu.
func (o *Orphanage) eraseTx(id chainhash.Hash) int {
	otx, exists := o.byID[id]
	if !exists {
		return 0
	}

	for _, txIn := range otx.tx.MsgTx().TxIn {
		prev := txIn.PreviousOutPoint
		bucket, ok := o.byPrev[prev]
		if !ok {
			continue
		}
		delete(bucket, id)
		if len(bucket) == 0 {
			delete(o.byPrev, prev)
		}
	}

	if moved, ok := o.list.removeAt(otx.listPos); ok {
		o.byID[moved].listPos = otx.listPos
	}

	delete(o.byID, id)
	return 1
}

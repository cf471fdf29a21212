// Copyright (c) 2013-2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txorphanage

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// LimitOrphans bounds the orphanage to at most maxOrphans resident
// transactions. Each call runs in two phases: a time-based sweep, gated so
// the O(n) scan is amortized rather than run on every call, followed by
// random-victim eviction until the pool is within maxOrphans. It returns
// the number of orphans evicted in the overflow phase; orphans removed by
// the time sweep aren't counted.
func (o *Orphanage) LimitOrphans(maxOrphans int) int {
	o.mu.Lock()
	defer o.mu.Unlock()

	now := o.cfg.Clock.Now()

	if now >= o.nextSweep {
		origCount := len(o.byID)
		minExpire := now + expireSeconds - sweepIntervalSeconds

		expiredIDs := make([]chainhash.Hash, 0)
		for id, otx := range o.byID {
			if otx.expireAt <= now {
				expiredIDs = append(expiredIDs, id)
				continue
			}
			if otx.expireAt < minExpire {
				minExpire = otx.expireAt
			}
		}
		for _, id := range expiredIDs {
			o.eraseTx(id)
		}

		o.nextSweep = minExpire + sweepIntervalSeconds

		if numExpired := origCount - len(o.byID); numExpired > 0 {
			log.Debugf("expired %d orphan tx (remaining: %d)",
				numExpired, len(o.byID))
		}
	}

	var numEvicted int
	for len(o.byID) > maxOrphans {
		victimPos := o.cfg.Rand.Intn(len(o.list))
		o.eraseTx(o.list[victimPos])
		numEvicted++
	}

	return numEvicted
}

// EraseForPeer removes every orphan received from peer. It's the cleanup a
// caller runs when that peer disconnects or is deemed misbehaving.
func (o *Orphanage) EraseForPeer(peer PeerID) int {
	o.mu.Lock()
	defer o.mu.Unlock()

	var ids []chainhash.Hash
	for id, otx := range o.byID {
		if otx.fromPeer == peer {
			ids = append(ids, id)
		}
	}

	var numErased int
	for _, id := range ids {
		numErased += o.eraseTx(id)
	}

	if numErased > 0 {
		log.Debugf("erased %d orphan tx from peer=%d", numErased, peer)
	}
	return numErased
}

// EraseForBlock removes every orphan that either got confirmed by block, or
// conflicts with a transaction confirmed by block, by matching input
// outpoints. Both cases are removed identically: an orphan whose referenced
// parent just arrived is resolved through the normal AddChildrenToWorkSet
// path instead, and re-validated from scratch, so retaining it here would
// only let it linger unnecessarily.
//
// Collection and erasure are deliberately two separate passes: erasing an
// orphan invalidates the reverse-index bucket a later input in the same
// block might still need to consult.
func (o *Orphanage) EraseForBlock(block *btcutil.Block) int {
	o.mu.Lock()
	defer o.mu.Unlock()

	var toErase []chainhash.Hash
	for _, tx := range block.Transactions() {
		for _, txIn := range tx.MsgTx().TxIn {
			bucket, ok := o.byPrev[txIn.PreviousOutPoint]
			if !ok {
				continue
			}
			for id := range bucket {
				toErase = append(toErase, id)
			}
		}
	}

	var numErased int
	for _, id := range toErase {
		numErased += o.eraseTx(id)
	}

	if numErased > 0 {
		log.Debugf("erased %d orphan tx included or conflicted by block",
			numErased)
	}
	return numErased
}

// AddChildrenToWorkSet finds every resident orphan that spends an output of
// tx and inserts its id into workSet. workSet is additive; AddChildrenToWorkSet
// never clears it, so a caller may accumulate ids across several calls (for
// example, once per transaction newly accepted to the mempool) before
// draining it. This is a read-only query and never mutates the orphanage.
func (o *Orphanage) AddChildrenToWorkSet(tx *btcutil.Tx, workSet map[chainhash.Hash]struct{}) {
	o.mu.Lock()
	defer o.mu.Unlock()

	prevOut := wire.OutPoint{Hash: *tx.Hash()}
	for outIdx := range tx.MsgTx().TxOut {
		prevOut.Index = uint32(outIdx)
		bucket, ok := o.byPrev[prevOut]
		if !ok {
			continue
		}
		for childID := range bucket {
			workSet[childID] = struct{}{}
		}
	}
}

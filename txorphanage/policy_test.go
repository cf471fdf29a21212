// Copyright (c) 2013-2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txorphanage

import (
	"math/rand"
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
)

// TestAddChildrenToWorkSetIsAdditive checks that repeated calls accumulate
// into the same set rather than replacing its contents.
func TestAddChildrenToWorkSetIsAdditive(t *testing.T) {
	o := newTestOrphanage(nil, nil)

	parentA := newTestTx(nil, 1)
	parentB := newTestTx(nil, 1)
	childA := newTestTx([]wire.OutPoint{{Hash: *parentA.Hash(), Index: 0}}, 1)
	childB := newTestTx([]wire.OutPoint{{Hash: *parentB.Hash(), Index: 0}}, 1)

	require.True(t, o.AddTx(childA, PeerID(1)))
	require.True(t, o.AddTx(childB, PeerID(1)))

	workSet := make(map[chainhash.Hash]struct{})
	o.AddChildrenToWorkSet(parentA, workSet)
	o.AddChildrenToWorkSet(parentB, workSet)

	require.Len(t, workSet, 2)
	require.Contains(t, workSet, *childA.Hash())
	require.Contains(t, workSet, *childB.Hash())
}

// TestAddChildrenToWorkSetIgnoresUnreferencedOutputs checks that an output
// index no orphan references contributes nothing.
func TestAddChildrenToWorkSetIgnoresUnreferencedOutputs(t *testing.T) {
	o := newTestOrphanage(nil, nil)

	parent := newTestTx(nil, 2)
	child := newTestTx([]wire.OutPoint{{Hash: *parent.Hash(), Index: 0}}, 1)
	require.True(t, o.AddTx(child, PeerID(1)))

	workSet := make(map[chainhash.Hash]struct{})
	o.AddChildrenToWorkSet(parent, workSet)
	require.Len(t, workSet, 1)
}

// TestLimitOrphansNeverOvershootsCap checks that after any call, residency
// never exceeds the requested cap, across a range of starting sizes.
func TestLimitOrphansNeverOvershootsCap(t *testing.T) {
	for _, limit := range []int{0, 1, 10, 99, 100} {
		o := newTestOrphanage(nil, nil)
		for i := 0; i < 150; i++ {
			tx := newTestTx(nil, 1)
			o.AddTx(tx, PeerID(1))
		}

		o.LimitOrphans(limit)
		require.LessOrEqual(t, o.Count(), limit)
	}
}

// TestLimitOrphansBelowCapIsNoop checks that a pool already within the cap
// is left untouched by the overflow phase.
func TestLimitOrphansBelowCapIsNoop(t *testing.T) {
	o := newTestOrphanage(nil, nil)
	for i := 0; i < 10; i++ {
		tx := newTestTx(nil, 1)
		o.AddTx(tx, PeerID(1))
	}

	numEvicted := o.LimitOrphans(100)
	require.Equal(t, 0, numEvicted)
	require.Equal(t, 10, o.Count())
}

// TestInvariantsHoldUnderRandomOperationSequences runs a long randomized
// sequence of every mutator and checks, after each step, that the indices
// the orphanage maintains stay mutually consistent: every id in byID has a
// matching list entry at its recorded position, every bucket in byPrev only
// names resident ids, and every resident orphan's inputs are covered by
// byPrev.
func TestInvariantsHoldUnderRandomOperationSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	o := newTestOrphanage(nil, nil)

	var known []*btcutil.Tx
	const numPeers = 4

	for step := 0; step < 2000; step++ {
		switch rng.Intn(5) {
		case 0:
			tx := newTestTx(nil, 1+rng.Intn(3))
			peer := PeerID(rng.Intn(numPeers))
			if o.AddTx(tx, peer) {
				known = append(known, tx)
			}
		case 1:
			if len(known) > 0 {
				idx := rng.Intn(len(known))
				o.EraseTx(*known[idx].Hash())
				known = append(known[:idx], known[idx+1:]...)
			}
		case 2:
			o.EraseForPeer(PeerID(rng.Intn(numPeers)))
		case 3:
			if len(known) > 0 {
				block := newTestBlock(known[rng.Intn(len(known))])
				o.EraseForBlock(block)
			}
		case 4:
			o.LimitOrphans(50)
		}

		checkInvariants(t, o)
	}
}

func checkInvariants(t *testing.T, o *Orphanage) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.byID) != len(o.list) {
		t.Fatalf("byID/list size mismatch: %s", spew.Sdump(o.byID, o.list))
	}

	for pos, id := range o.list {
		otx, exists := o.byID[id]
		if !exists {
			t.Fatalf("list entry %v at pos %d has no byID record", id, pos)
		}
		if otx.listPos != pos {
			t.Fatalf("byID[%v].listPos = %d, want %d", id, otx.listPos, pos)
		}
	}

	for prev, bucket := range o.byPrev {
		if len(bucket) == 0 {
			t.Fatalf("empty bucket left behind for outpoint %v", prev)
		}
		for id := range bucket {
			if _, exists := o.byID[id]; !exists {
				t.Fatalf("byPrev bucket for %v names non-resident id %v", prev, id)
			}
		}
	}

	for id, otx := range o.byID {
		for _, txIn := range otx.tx.MsgTx().TxIn {
			bucket, ok := o.byPrev[txIn.PreviousOutPoint]
			if !ok {
				t.Fatalf("resident orphan %v has no byPrev bucket for its input %v",
					id, txIn.PreviousOutPoint)
			}
			if _, ok := bucket[id]; !ok {
				t.Fatalf("resident orphan %v missing from byPrev bucket for %v",
					id, txIn.PreviousOutPoint)
			}
		}
	}
}

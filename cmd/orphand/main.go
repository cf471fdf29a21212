// Copyright (c) 2013-2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// orphand is a demo driver for the txorphanage library. It has no real
// peer, mempool, or chain connection; in their place it runs a
// deterministic, pseudo-random sequence of the operations a real caller
// would invoke (admission, peer disconnection, block connection, overflow
// and expiry eviction, child-discovery), logging a summary when done. See
// the package's integration notes for how a real node wires the same
// calls to its actual peer and block-connection events.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/miz1choobi/txorphanage/txorphanage"
)

// simStats accumulates the counters orphand reports on exit.
type simStats struct {
	admitted     int
	rejected     int
	erasedPeer   int
	erasedBlock  int
	evicted      int
	childrenHits int
}

func main() {
	if err := setLimits(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to set limits: %v\n", err)
		os.Exit(1)
	}

	cfg, _, err := loadConfig()
	if err != nil {
		os.Exit(1)
	}

	logFile := filepath.Join(cfg.LogDir, defaultLogFilename)
	if err := initLogRotator(logFile); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer logRotator.Close()

	setLogLevels(cfg.LogLevel)

	mainLog.Infof("starting orphand simulation: numtxs=%d numpeers=%d "+
		"maxorphans=%d", cfg.NumTxs, cfg.NumPeers, cfg.MaxOrphans)

	stats := runSimulation(cfg)

	mainLog.Infof("simulation complete: resident=%d admitted=%d "+
		"rejected=%d erased_peer=%d erased_block=%d evicted=%d "+
		"children_discovered=%d",
		stats.resident, stats.admitted, stats.rejected, stats.erasedPeer,
		stats.erasedBlock, stats.evicted, stats.childrenHits)
}

type simResult struct {
	simStats
	resident int
}

// runSimulation drives an Orphanage through cfg.NumTxs pseudo-random
// operations: most steps admit a synthetic orphan from a random peer;
// the rest simulate a peer disconnecting, or a block confirming one
// previously admitted transaction followed by a lookup of that
// transaction's orphan children. LimitOrphans runs after every step,
// whatever its kind.
func runSimulation(cfg *config) simResult {
	rng := rand.New(rand.NewSource(cfg.Seed))

	o := txorphanage.NewOrphanage(txorphanage.DefaultConfig())

	var stats simStats
	var resident []*btcutil.Tx

	for i := 0; i < cfg.NumTxs; i++ {
		switch {
		case rng.Intn(100) < 85:
			tx := randomOrphanTx(rng)
			peer := txorphanage.PeerID(rng.Intn(cfg.NumPeers))
			if o.AddTx(tx, peer) {
				stats.admitted++
				resident = append(resident, tx)
			} else {
				stats.rejected++
			}

		case rng.Intn(100) < 95:
			peer := txorphanage.PeerID(rng.Intn(cfg.NumPeers))
			stats.erasedPeer += o.EraseForPeer(peer)

		default:
			if len(resident) > 0 {
				idx := rng.Intn(len(resident))
				confirming := resident[idx]
				block := &wire.MsgBlock{}
				block.AddTransaction(confirming.MsgTx())
				stats.erasedBlock += o.EraseForBlock(btcutil.NewBlock(block))

				workSet := make(map[chainhash.Hash]struct{})
				o.AddChildrenToWorkSet(confirming, workSet)
				stats.childrenHits += len(workSet)
			}
		}

		stats.evicted += o.LimitOrphans(cfg.MaxOrphans)
	}

	return simResult{simStats: stats, resident: o.Count()}
}

// randomOrphanTx builds a synthetic transaction with a random unspent-ish
// input and a single output, standing in for a real parentless
// transaction received from the network.
func randomOrphanTx(rng *rand.Rand) *btcutil.Tx {
	mtx := wire.NewMsgTx(wire.TxVersion)

	var prevHash chainhash.Hash
	rng.Read(prevHash[:])
	mtx.AddTxIn(&wire.TxIn{
		PreviousOutPoint: wire.OutPoint{
			Hash:  prevHash,
			Index: uint32(rng.Intn(4)),
		},
	})
	mtx.AddTxOut(&wire.TxOut{
		Value:    int64(rng.Intn(100000)),
		PkScript: []byte{0x51},
	})

	return btcutil.NewTx(mtx)
}

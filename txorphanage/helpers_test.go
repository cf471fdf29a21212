// Copyright (c) 2013-2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txorphanage

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/wire"
)

// txCounter makes every transaction built by newTestTx across a test binary
// run unique, so two test transactions never collide on hash.
var txCounter uint32

// newTestTx builds a transaction referencing the given outpoints as inputs
// and carrying numOutputs spendable outputs. With no inputs given, a unique
// dummy input is generated; with inputs given, a unique lock time is set.
// Either way the resulting hash is unique, even for two calls with the same
// inputs and output count.
func newTestTx(inputs []wire.OutPoint, numOutputs int) *btcutil.Tx {
	mtx := wire.NewMsgTx(wire.TxVersion)

	txCounter++
	if len(inputs) == 0 {
		mtx.AddTxIn(&wire.TxIn{
			PreviousOutPoint: wire.OutPoint{Index: txCounter},
		})
	} else {
		for _, in := range inputs {
			mtx.AddTxIn(&wire.TxIn{PreviousOutPoint: in})
		}
		mtx.LockTime = txCounter
	}

	for i := 0; i < numOutputs; i++ {
		mtx.AddTxOut(&wire.TxOut{
			Value:    5000,
			PkScript: []byte{0x51}, // OP_TRUE
		})
	}

	return btcutil.NewTx(mtx)
}

// newTestBlock wraps txs into a minimal block usable by EraseForBlock.
func newTestBlock(txs ...*btcutil.Tx) *btcutil.Block {
	msgBlock := &wire.MsgBlock{}
	for _, tx := range txs {
		msgBlock.AddTransaction(tx.MsgTx())
	}
	return btcutil.NewBlock(msgBlock)
}

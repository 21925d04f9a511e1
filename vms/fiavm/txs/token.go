// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"github.com/holiman/uint256"
	"github.com/luxfi/ids"
)

var (
	_ UnsignedTx = (*TransferTx)(nil)
	_ UnsignedTx = (*TransferWithDataTx)(nil)
	_ UnsignedTx = (*TransferFromTx)(nil)
	_ UnsignedTx = (*ApproveTx)(nil)
	_ UnsignedTx = (*BatchTransferTx)(nil)
	_ UnsignedTx = (*ProtectedTransferTx)(nil)
	_ UnsignedTx = (*BurnTx)(nil)
	_ UnsignedTx = (*MintTx)(nil)
)

type TransferTx struct {
	BaseTx `serialize:"true"`
	To     ids.ShortID `serialize:"true" json:"to"`
	Amount uint256.Int `serialize:"true" json:"amount"`
}

func (tx *TransferTx) Visit(v Visitor) error { return v.TransferTx(tx) }

// TransferWithDataTx is a transfer carrying a memo. Only the memo's hash is
// kept in the emitted event.
type TransferWithDataTx struct {
	BaseTx `serialize:"true"`
	To     ids.ShortID `serialize:"true" json:"to"`
	Amount uint256.Int `serialize:"true" json:"amount"`
	Data   []byte      `serialize:"true" json:"data"`
}

func (tx *TransferWithDataTx) Visit(v Visitor) error { return v.TransferWithDataTx(tx) }

// TransferFromTx spends an allowance the owner granted the sender.
type TransferFromTx struct {
	BaseTx `serialize:"true"`
	Owner  ids.ShortID `serialize:"true" json:"owner"`
	To     ids.ShortID `serialize:"true" json:"to"`
	Amount uint256.Int `serialize:"true" json:"amount"`
}

func (tx *TransferFromTx) Visit(v Visitor) error { return v.TransferFromTx(tx) }

type ApproveTx struct {
	BaseTx  `serialize:"true"`
	Spender ids.ShortID `serialize:"true" json:"spender"`
	Amount  uint256.Int `serialize:"true" json:"amount"`
}

func (tx *ApproveTx) Visit(v Visitor) error { return v.ApproveTx(tx) }

type BatchTransferTx struct {
	BaseTx     `serialize:"true"`
	Recipients []ids.ShortID `serialize:"true" json:"recipients"`
	Amounts    []uint256.Int `serialize:"true" json:"amounts"`
}

func (tx *BatchTransferTx) Verify() error {
	if err := tx.BaseTx.Verify(); err != nil {
		return err
	}
	switch {
	case len(tx.Recipients) == 0:
		return ErrEmptyBatch
	case len(tx.Recipients) != len(tx.Amounts):
		return ErrLengthMismatch
	default:
		return nil
	}
}

// AmountList returns the batch amounts as pointers.
func (tx *BatchTransferTx) AmountList() []*uint256.Int {
	amounts := make([]*uint256.Int, len(tx.Amounts))
	for i := range tx.Amounts {
		amounts[i] = &tx.Amounts[i]
	}
	return amounts
}

func (tx *BatchTransferTx) Visit(v Visitor) error { return v.BatchTransferTx(tx) }

// ProtectedTransferTx is a transfer guarded against replay, same-block reuse
// and the sender's cooldown.
type ProtectedTransferTx struct {
	BaseTx `serialize:"true"`
	To     ids.ShortID `serialize:"true" json:"to"`
	Amount uint256.Int `serialize:"true" json:"amount"`
	Nonce  uint64      `serialize:"true" json:"nonce"`
}

func (tx *ProtectedTransferTx) Visit(v Visitor) error { return v.ProtectedTransferTx(tx) }

type BurnTx struct {
	BaseTx `serialize:"true"`
	Amount uint256.Int `serialize:"true" json:"amount"`
}

func (tx *BurnTx) Visit(v Visitor) error { return v.BurnTx(tx) }

type MintTx struct {
	BaseTx `serialize:"true"`
	To     ids.ShortID `serialize:"true" json:"to"`
	Amount uint256.Int `serialize:"true" json:"amount"`
}

func (tx *MintTx) Visit(v Visitor) error { return v.MintTx(tx) }

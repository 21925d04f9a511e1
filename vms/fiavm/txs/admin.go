// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import "github.com/luxfi/ids"

var (
	_ UnsignedTx = (*PauseTx)(nil)
	_ UnsignedTx = (*UnpauseTx)(nil)
	_ UnsignedTx = (*TransferOwnershipTx)(nil)
	_ UnsignedTx = (*SetExecutorTx)(nil)
	_ UnsignedTx = (*SetFeeExemptTx)(nil)
	_ UnsignedTx = (*BatchSetFeeExemptTx)(nil)
)

type PauseTx struct {
	BaseTx `serialize:"true"`
}

func (tx *PauseTx) Visit(v Visitor) error { return v.PauseTx(tx) }

type UnpauseTx struct {
	BaseTx `serialize:"true"`
}

func (tx *UnpauseTx) Visit(v Visitor) error { return v.UnpauseTx(tx) }

type TransferOwnershipTx struct {
	BaseTx   `serialize:"true"`
	NewOwner ids.ShortID `serialize:"true" json:"newOwner"`
}

func (tx *TransferOwnershipTx) Visit(v Visitor) error { return v.TransferOwnershipTx(tx) }

// SetExecutorTx sets the account allowed to execute proposals besides the
// owner. The empty address clears it.
type SetExecutorTx struct {
	BaseTx   `serialize:"true"`
	Executor ids.ShortID `serialize:"true" json:"executor"`
}

func (tx *SetExecutorTx) Visit(v Visitor) error { return v.SetExecutorTx(tx) }

type SetFeeExemptTx struct {
	BaseTx  `serialize:"true"`
	Account ids.ShortID `serialize:"true" json:"account"`
	Exempt  bool        `serialize:"true" json:"exempt"`
}

func (tx *SetFeeExemptTx) Visit(v Visitor) error { return v.SetFeeExemptTx(tx) }

type BatchSetFeeExemptTx struct {
	BaseTx   `serialize:"true"`
	Accounts []ids.ShortID `serialize:"true" json:"accounts"`
	Exempt   bool          `serialize:"true" json:"exempt"`
}

func (tx *BatchSetFeeExemptTx) Verify() error {
	if err := tx.BaseTx.Verify(); err != nil {
		return err
	}
	if len(tx.Accounts) == 0 {
		return ErrEmptyBatch
	}
	return nil
}

func (tx *BatchSetFeeExemptTx) Visit(v Visitor) error { return v.BatchSetFeeExemptTx(tx) }

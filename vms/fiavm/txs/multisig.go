// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"github.com/holiman/uint256"
	"github.com/luxfi/ids"
)

var (
	_ UnsignedTx = (*CreateWalletTx)(nil)
	_ UnsignedTx = (*SubmitTx)(nil)
	_ UnsignedTx = (*ConfirmTx)(nil)
	_ UnsignedTx = (*RevokeTx)(nil)
	_ UnsignedTx = (*ExecuteTx)(nil)
	_ UnsignedTx = (*AddOwnerTx)(nil)
	_ UnsignedTx = (*RemoveOwnerTx)(nil)
	_ UnsignedTx = (*ReplaceOwnerTx)(nil)
	_ UnsignedTx = (*ChangeRequirementTx)(nil)
)

// CreateWalletTx creates a wallet whose address is derived from the
// transaction ID.
type CreateWalletTx struct {
	BaseTx   `serialize:"true"`
	Owners   []ids.ShortID `serialize:"true" json:"owners"`
	Required uint64        `serialize:"true" json:"required"`
}

func (tx *CreateWalletTx) Visit(v Visitor) error { return v.CreateWalletTx(tx) }

// WalletTx is embedded in transactions addressed to an existing wallet.
type WalletTx struct {
	BaseTx `serialize:"true"`
	Wallet ids.ShortID `serialize:"true" json:"wallet"`
}

func (tx *WalletTx) Verify() error {
	if err := tx.BaseTx.Verify(); err != nil {
		return err
	}
	if tx.Wallet == ids.ShortEmpty {
		return ErrMissingWallet
	}
	return nil
}

// SubmitTx proposes a wallet transaction. Data, when set, holds a transaction
// body encoded with MarshalUnsigned that the wallet sends once executed.
type SubmitTx struct {
	WalletTx    `serialize:"true"`
	Destination ids.ShortID `serialize:"true" json:"destination"`
	Value       uint256.Int `serialize:"true" json:"value"`
	Data        []byte      `serialize:"true" json:"data"`
}

func (tx *SubmitTx) Visit(v Visitor) error { return v.SubmitTx(tx) }

type ConfirmTx struct {
	WalletTx `serialize:"true"`
	TxIndex  uint64 `serialize:"true" json:"txIndex"`
}

func (tx *ConfirmTx) Visit(v Visitor) error { return v.ConfirmTx(tx) }

type RevokeTx struct {
	WalletTx `serialize:"true"`
	TxIndex  uint64 `serialize:"true" json:"txIndex"`
}

func (tx *RevokeTx) Visit(v Visitor) error { return v.RevokeTx(tx) }

type ExecuteTx struct {
	WalletTx `serialize:"true"`
	TxIndex  uint64 `serialize:"true" json:"txIndex"`
}

func (tx *ExecuteTx) Visit(v Visitor) error { return v.ExecuteTx(tx) }

type AddOwnerTx struct {
	WalletTx `serialize:"true"`
	Owner    ids.ShortID `serialize:"true" json:"owner"`
}

func (tx *AddOwnerTx) Visit(v Visitor) error { return v.AddOwnerTx(tx) }

type RemoveOwnerTx struct {
	WalletTx `serialize:"true"`
	Owner    ids.ShortID `serialize:"true" json:"owner"`
}

func (tx *RemoveOwnerTx) Visit(v Visitor) error { return v.RemoveOwnerTx(tx) }

type ReplaceOwnerTx struct {
	WalletTx `serialize:"true"`
	Owner    ids.ShortID `serialize:"true" json:"owner"`
	NewOwner ids.ShortID `serialize:"true" json:"newOwner"`
}

func (tx *ReplaceOwnerTx) Visit(v Visitor) error { return v.ReplaceOwnerTx(tx) }

type ChangeRequirementTx struct {
	WalletTx `serialize:"true"`
	Required uint64 `serialize:"true" json:"required"`
}

func (tx *ChangeRequirementTx) Visit(v Visitor) error { return v.ChangeRequirementTx(tx) }

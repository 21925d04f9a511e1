// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import "github.com/luxfi/fia/vms/fiavm/state"

var (
	_ UnsignedTx = (*ProposeTx)(nil)
	_ UnsignedTx = (*VoteTx)(nil)
	_ UnsignedTx = (*ExecuteProposalTx)(nil)
)

type ProposeTx struct {
	BaseTx      `serialize:"true"`
	Description string       `serialize:"true" json:"description"`
	Action      state.Action `serialize:"true" json:"action"`
}

func (tx *ProposeTx) Verify() error {
	if err := tx.BaseTx.Verify(); err != nil {
		return err
	}
	if tx.Action == nil {
		return ErrMissingAction
	}
	return nil
}

func (tx *ProposeTx) Visit(v Visitor) error { return v.ProposeTx(tx) }

type VoteTx struct {
	BaseTx     `serialize:"true"`
	ProposalID uint64 `serialize:"true" json:"proposalID"`
	Support    bool   `serialize:"true" json:"support"`
}

func (tx *VoteTx) Visit(v Visitor) error { return v.VoteTx(tx) }

type ExecuteProposalTx struct {
	BaseTx     `serialize:"true"`
	ProposalID uint64 `serialize:"true" json:"proposalID"`
}

func (tx *ExecuteProposalTx) Visit(v Visitor) error { return v.ExecuteProposalTx(tx) }

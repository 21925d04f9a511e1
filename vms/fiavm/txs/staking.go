// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import "github.com/holiman/uint256"

var (
	_ UnsignedTx = (*StakeTx)(nil)
	_ UnsignedTx = (*ClaimRewardsTx)(nil)
	_ UnsignedTx = (*UnstakeTx)(nil)
	_ UnsignedTx = (*EmergencyUnstakeTx)(nil)
	_ UnsignedTx = (*SetEmergencyWithdrawTx)(nil)
	_ UnsignedTx = (*AddToRewardPoolTx)(nil)
)

type StakeTx struct {
	BaseTx `serialize:"true"`
	Amount uint256.Int `serialize:"true" json:"amount"`
	// LockPeriod in seconds. It must match a configured lock period.
	LockPeriod   uint64 `serialize:"true" json:"lockPeriod"`
	AutoCompound bool   `serialize:"true" json:"autoCompound"`
}

func (tx *StakeTx) Visit(v Visitor) error { return v.StakeTx(tx) }

type ClaimRewardsTx struct {
	BaseTx `serialize:"true"`
	Index  uint64 `serialize:"true" json:"index"`
}

func (tx *ClaimRewardsTx) Visit(v Visitor) error { return v.ClaimRewardsTx(tx) }

type UnstakeTx struct {
	BaseTx `serialize:"true"`
	Index  uint64 `serialize:"true" json:"index"`
}

func (tx *UnstakeTx) Visit(v Visitor) error { return v.UnstakeTx(tx) }

type EmergencyUnstakeTx struct {
	BaseTx `serialize:"true"`
	Index  uint64 `serialize:"true" json:"index"`
}

func (tx *EmergencyUnstakeTx) Visit(v Visitor) error { return v.EmergencyUnstakeTx(tx) }

type SetEmergencyWithdrawTx struct {
	BaseTx  `serialize:"true"`
	Enabled bool `serialize:"true" json:"enabled"`
}

func (tx *SetEmergencyWithdrawTx) Visit(v Visitor) error { return v.SetEmergencyWithdrawTx(tx) }

type AddToRewardPoolTx struct {
	BaseTx `serialize:"true"`
	Amount uint256.Int `serialize:"true" json:"amount"`
}

func (tx *AddToRewardPoolTx) Visit(v Visitor) error { return v.AddToRewardPoolTx(tx) }

// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import (
	"github.com/luxfi/ids"

	"github.com/luxfi/fia/vms/fiavm/multisig"
	"github.com/luxfi/fia/vms/fiavm/txs"
)

var _ txs.Visitor = (*visitor)(nil)

type visitor struct {
	e      *Executor
	sender ids.ShortID
}

func (v *visitor) TransferTx(tx *txs.TransferTx) error {
	return v.e.Fees.Transfer(v.sender, tx.To, &tx.Amount)
}

func (v *visitor) TransferWithDataTx(tx *txs.TransferWithDataTx) error {
	return v.e.Fees.TransferWithData(v.sender, tx.To, &tx.Amount, tx.Data)
}

func (v *visitor) TransferFromTx(tx *txs.TransferFromTx) error {
	return v.e.Fees.TransferFrom(v.sender, tx.Owner, tx.To, &tx.Amount)
}

func (v *visitor) ApproveTx(tx *txs.ApproveTx) error {
	return v.e.Ledger.Approve(v.sender, tx.Spender, &tx.Amount)
}

func (v *visitor) BatchTransferTx(tx *txs.BatchTransferTx) error {
	return v.e.Fees.BatchTransfer(v.sender, tx.Recipients, tx.AmountList())
}

func (v *visitor) ProtectedTransferTx(tx *txs.ProtectedTransferTx) error {
	return v.e.Fees.ProtectedTransfer(v.sender, tx.To, &tx.Amount, tx.Nonce)
}

func (v *visitor) BurnTx(tx *txs.BurnTx) error {
	return v.e.Ledger.Burn(v.sender, &tx.Amount)
}

func (v *visitor) MintTx(tx *txs.MintTx) error {
	return v.e.Ledger.Mint(v.sender, tx.To, &tx.Amount)
}

func (v *visitor) PauseTx(*txs.PauseTx) error {
	return v.e.Ledger.Pause(v.sender)
}

func (v *visitor) UnpauseTx(*txs.UnpauseTx) error {
	return v.e.Ledger.Unpause(v.sender)
}

func (v *visitor) TransferOwnershipTx(tx *txs.TransferOwnershipTx) error {
	return v.e.Ledger.TransferOwnership(v.sender, tx.NewOwner)
}

func (v *visitor) SetExecutorTx(tx *txs.SetExecutorTx) error {
	return v.e.Ledger.SetExecutor(v.sender, tx.Executor)
}

func (v *visitor) SetFeeExemptTx(tx *txs.SetFeeExemptTx) error {
	return v.e.Fees.SetFeeExempt(v.sender, tx.Account, tx.Exempt)
}

func (v *visitor) BatchSetFeeExemptTx(tx *txs.BatchSetFeeExemptTx) error {
	return v.e.Fees.BatchSetFeeExempt(v.sender, tx.Accounts, tx.Exempt)
}

func (v *visitor) StakeTx(tx *txs.StakeTx) error {
	_, err := v.e.Staking.Stake(v.sender, &tx.Amount, tx.LockPeriod, tx.AutoCompound)
	return err
}

func (v *visitor) ClaimRewardsTx(tx *txs.ClaimRewardsTx) error {
	_, err := v.e.Staking.ClaimRewards(v.sender, tx.Index)
	return err
}

func (v *visitor) UnstakeTx(tx *txs.UnstakeTx) error {
	return v.e.Staking.Unstake(v.sender, tx.Index)
}

func (v *visitor) EmergencyUnstakeTx(tx *txs.EmergencyUnstakeTx) error {
	return v.e.Staking.EmergencyUnstake(v.sender, tx.Index)
}

func (v *visitor) SetEmergencyWithdrawTx(tx *txs.SetEmergencyWithdrawTx) error {
	return v.e.Staking.SetEmergencyWithdraw(v.sender, tx.Enabled)
}

func (v *visitor) AddToRewardPoolTx(tx *txs.AddToRewardPoolTx) error {
	return v.e.Staking.AddToRewardPool(v.sender, &tx.Amount)
}

func (v *visitor) ProposeTx(tx *txs.ProposeTx) error {
	_, err := v.e.Governance.Propose(v.sender, tx.Description, tx.Action)
	return err
}

func (v *visitor) VoteTx(tx *txs.VoteTx) error {
	return v.e.Governance.Vote(v.sender, tx.ProposalID, tx.Support)
}

func (v *visitor) ExecuteProposalTx(tx *txs.ExecuteProposalTx) error {
	return v.e.Governance.Execute(v.sender, tx.ProposalID)
}

func (v *visitor) CreateWalletTx(tx *txs.CreateWalletTx) error {
	return v.e.Multisig.CreateWallet(multisig.WalletAddress(v.e.TxID), tx.Owners, tx.Required)
}

func (v *visitor) SubmitTx(tx *txs.SubmitTx) error {
	_, err := v.e.Multisig.Submit(tx.Wallet, v.sender, tx.Destination, &tx.Value, tx.Data)
	return err
}

func (v *visitor) ConfirmTx(tx *txs.ConfirmTx) error {
	return v.e.Multisig.Confirm(tx.Wallet, v.sender, tx.TxIndex)
}

func (v *visitor) RevokeTx(tx *txs.RevokeTx) error {
	return v.e.Multisig.Revoke(tx.Wallet, v.sender, tx.TxIndex)
}

func (v *visitor) ExecuteTx(tx *txs.ExecuteTx) error {
	return v.e.Multisig.Execute(tx.Wallet, v.sender, tx.TxIndex)
}

func (v *visitor) AddOwnerTx(tx *txs.AddOwnerTx) error {
	return v.e.Multisig.AddOwner(tx.Wallet, v.sender, tx.Owner)
}

func (v *visitor) RemoveOwnerTx(tx *txs.RemoveOwnerTx) error {
	return v.e.Multisig.RemoveOwner(tx.Wallet, v.sender, tx.Owner)
}

func (v *visitor) ReplaceOwnerTx(tx *txs.ReplaceOwnerTx) error {
	return v.e.Multisig.ReplaceOwner(tx.Wallet, v.sender, tx.Owner, tx.NewOwner)
}

func (v *visitor) ChangeRequirementTx(tx *txs.ChangeRequirementTx) error {
	return v.e.Multisig.ChangeRequirement(tx.Wallet, v.sender, tx.Required)
}

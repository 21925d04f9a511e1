// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

// Visitor runs custom logic against each concrete transaction type.
type Visitor interface {
	// Token
	TransferTx(*TransferTx) error
	TransferWithDataTx(*TransferWithDataTx) error
	TransferFromTx(*TransferFromTx) error
	ApproveTx(*ApproveTx) error
	BatchTransferTx(*BatchTransferTx) error
	ProtectedTransferTx(*ProtectedTransferTx) error
	BurnTx(*BurnTx) error
	MintTx(*MintTx) error

	// Administration
	PauseTx(*PauseTx) error
	UnpauseTx(*UnpauseTx) error
	TransferOwnershipTx(*TransferOwnershipTx) error
	SetExecutorTx(*SetExecutorTx) error
	SetFeeExemptTx(*SetFeeExemptTx) error
	BatchSetFeeExemptTx(*BatchSetFeeExemptTx) error

	// Staking
	StakeTx(*StakeTx) error
	ClaimRewardsTx(*ClaimRewardsTx) error
	UnstakeTx(*UnstakeTx) error
	EmergencyUnstakeTx(*EmergencyUnstakeTx) error
	SetEmergencyWithdrawTx(*SetEmergencyWithdrawTx) error
	AddToRewardPoolTx(*AddToRewardPoolTx) error

	// Governance
	ProposeTx(*ProposeTx) error
	VoteTx(*VoteTx) error
	ExecuteProposalTx(*ExecuteProposalTx) error

	// Multisig
	CreateWalletTx(*CreateWalletTx) error
	SubmitTx(*SubmitTx) error
	ConfirmTx(*ConfirmTx) error
	RevokeTx(*RevokeTx) error
	ExecuteTx(*ExecuteTx) error
	AddOwnerTx(*AddOwnerTx) error
	RemoveOwnerTx(*RemoveOwnerTx) error
	ReplaceOwnerTx(*ReplaceOwnerTx) error
	ChangeRequirementTx(*ChangeRequirementTx) error
}

// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"github.com/luxfi/metric"

	"github.com/luxfi/fia/vms/fiavm/txs"
)

const txLabel = "tx"

var _ txs.Visitor = (*txMetrics)(nil)

type txMetrics struct {
	numTxs metric.CounterVec
}

func newTxMetrics() *txMetrics {
	return &txMetrics{
		numTxs: metric.NewCounterVec(
			metric.CounterOpts{
				Name: "txs_accepted",
				Help: "Number of transactions accepted",
			},
			[]string{txLabel},
		),
	}
}

func (m *txMetrics) inc(name string) error {
	m.numTxs.With(metric.Labels{
		txLabel: name,
	}).Inc()
	return nil
}

func (m *txMetrics) TransferTx(*txs.TransferTx) error {
	return m.inc("transfer")
}

func (m *txMetrics) TransferWithDataTx(*txs.TransferWithDataTx) error {
	return m.inc("transfer_with_data")
}

func (m *txMetrics) TransferFromTx(*txs.TransferFromTx) error {
	return m.inc("transfer_from")
}

func (m *txMetrics) ApproveTx(*txs.ApproveTx) error {
	return m.inc("approve")
}

func (m *txMetrics) BatchTransferTx(*txs.BatchTransferTx) error {
	return m.inc("batch_transfer")
}

func (m *txMetrics) ProtectedTransferTx(*txs.ProtectedTransferTx) error {
	return m.inc("protected_transfer")
}

func (m *txMetrics) BurnTx(*txs.BurnTx) error {
	return m.inc("burn")
}

func (m *txMetrics) MintTx(*txs.MintTx) error {
	return m.inc("mint")
}

func (m *txMetrics) PauseTx(*txs.PauseTx) error {
	return m.inc("pause")
}

func (m *txMetrics) UnpauseTx(*txs.UnpauseTx) error {
	return m.inc("unpause")
}

func (m *txMetrics) TransferOwnershipTx(*txs.TransferOwnershipTx) error {
	return m.inc("transfer_ownership")
}

func (m *txMetrics) SetExecutorTx(*txs.SetExecutorTx) error {
	return m.inc("set_executor")
}

func (m *txMetrics) SetFeeExemptTx(*txs.SetFeeExemptTx) error {
	return m.inc("set_fee_exempt")
}

func (m *txMetrics) BatchSetFeeExemptTx(*txs.BatchSetFeeExemptTx) error {
	return m.inc("batch_set_fee_exempt")
}

func (m *txMetrics) StakeTx(*txs.StakeTx) error {
	return m.inc("stake")
}

func (m *txMetrics) ClaimRewardsTx(*txs.ClaimRewardsTx) error {
	return m.inc("claim_rewards")
}

func (m *txMetrics) UnstakeTx(*txs.UnstakeTx) error {
	return m.inc("unstake")
}

func (m *txMetrics) EmergencyUnstakeTx(*txs.EmergencyUnstakeTx) error {
	return m.inc("emergency_unstake")
}

func (m *txMetrics) SetEmergencyWithdrawTx(*txs.SetEmergencyWithdrawTx) error {
	return m.inc("set_emergency_withdraw")
}

func (m *txMetrics) AddToRewardPoolTx(*txs.AddToRewardPoolTx) error {
	return m.inc("add_to_reward_pool")
}

func (m *txMetrics) ProposeTx(*txs.ProposeTx) error {
	return m.inc("propose")
}

func (m *txMetrics) VoteTx(*txs.VoteTx) error {
	return m.inc("vote")
}

func (m *txMetrics) ExecuteProposalTx(*txs.ExecuteProposalTx) error {
	return m.inc("execute_proposal")
}

func (m *txMetrics) CreateWalletTx(*txs.CreateWalletTx) error {
	return m.inc("create_wallet")
}

func (m *txMetrics) SubmitTx(*txs.SubmitTx) error {
	return m.inc("submit")
}

func (m *txMetrics) ConfirmTx(*txs.ConfirmTx) error {
	return m.inc("confirm")
}

func (m *txMetrics) RevokeTx(*txs.RevokeTx) error {
	return m.inc("revoke")
}

func (m *txMetrics) ExecuteTx(*txs.ExecuteTx) error {
	return m.inc("execute")
}

func (m *txMetrics) AddOwnerTx(*txs.AddOwnerTx) error {
	return m.inc("add_owner")
}

func (m *txMetrics) RemoveOwnerTx(*txs.RemoveOwnerTx) error {
	return m.inc("remove_owner")
}

func (m *txMetrics) ReplaceOwnerTx(*txs.ReplaceOwnerTx) error {
	return m.inc("replace_owner")
}

func (m *txMetrics) ChangeRequirementTx(*txs.ChangeRequirementTx) error {
	return m.inc("change_requirement")
}

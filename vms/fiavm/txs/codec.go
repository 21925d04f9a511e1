// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"errors"
	"math"

	"github.com/luxfi/codec"
	"github.com/luxfi/codec/linearcodec"

	"github.com/luxfi/fia/vms/fiavm/state"
)

const CodecVersion = 0

// Codec serializes FIA transactions. New types must only ever be appended.
var Codec codec.Manager

func init() {
	Codec = codec.NewManager(math.MaxInt)
	lc := linearcodec.NewDefault()

	err := errors.Join(
		// Token
		lc.RegisterType(&TransferTx{}),
		lc.RegisterType(&TransferWithDataTx{}),
		lc.RegisterType(&TransferFromTx{}),
		lc.RegisterType(&ApproveTx{}),
		lc.RegisterType(&BatchTransferTx{}),
		lc.RegisterType(&ProtectedTransferTx{}),
		lc.RegisterType(&BurnTx{}),
		lc.RegisterType(&MintTx{}),

		// Administration
		lc.RegisterType(&PauseTx{}),
		lc.RegisterType(&UnpauseTx{}),
		lc.RegisterType(&TransferOwnershipTx{}),
		lc.RegisterType(&SetExecutorTx{}),
		lc.RegisterType(&SetFeeExemptTx{}),
		lc.RegisterType(&BatchSetFeeExemptTx{}),

		// Staking
		lc.RegisterType(&StakeTx{}),
		lc.RegisterType(&ClaimRewardsTx{}),
		lc.RegisterType(&UnstakeTx{}),
		lc.RegisterType(&EmergencyUnstakeTx{}),
		lc.RegisterType(&SetEmergencyWithdrawTx{}),
		lc.RegisterType(&AddToRewardPoolTx{}),

		// Governance
		lc.RegisterType(&state.FeeChange{}),
		lc.RegisterType(&state.TreasurySpend{}),
		lc.RegisterType(&state.ParameterChange{}),
		lc.RegisterType(&ProposeTx{}),
		lc.RegisterType(&VoteTx{}),
		lc.RegisterType(&ExecuteProposalTx{}),

		// Multisig
		lc.RegisterType(&CreateWalletTx{}),
		lc.RegisterType(&SubmitTx{}),
		lc.RegisterType(&ConfirmTx{}),
		lc.RegisterType(&RevokeTx{}),
		lc.RegisterType(&ExecuteTx{}),
		lc.RegisterType(&AddOwnerTx{}),
		lc.RegisterType(&RemoveOwnerTx{}),
		lc.RegisterType(&ReplaceOwnerTx{}),
		lc.RegisterType(&ChangeRequirementTx{}),

		Codec.RegisterCodec(CodecVersion, lc),
	)
	if err != nil {
		panic(err)
	}
}

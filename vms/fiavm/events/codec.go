// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package events

import (
	"errors"
	"math"

	"github.com/luxfi/codec"
	"github.com/luxfi/codec/linearcodec"
)

const CodecVersion = 0

var Codec codec.Manager

func init() {
	Codec = codec.NewManager(math.MaxInt)
	lc := linearcodec.NewDefault()

	// Append only. Reordering changes the type ids of persisted events.
	err := errors.Join(
		lc.RegisterType(&Transfer{}),
		lc.RegisterType(&TransferWithData{}),
		lc.RegisterType(&FeeCollected{}),
		lc.RegisterType(&Approval{}),
		lc.RegisterType(&Mint{}),
		lc.RegisterType(&Burn{}),
		lc.RegisterType(&FeeExemptionChanged{}),
		lc.RegisterType(&OwnershipTransferred{}),
		lc.RegisterType(&ExecutorChanged{}),
		lc.RegisterType(&Paused{}),
		lc.RegisterType(&Unpaused{}),
		lc.RegisterType(&FeeConfigUpdated{}),
		lc.RegisterType(&TxLimitsUpdated{}),
		lc.RegisterType(&Staked{}),
		lc.RegisterType(&RewardsClaimed{}),
		lc.RegisterType(&Unstaked{}),
		lc.RegisterType(&EmergencyUnstaked{}),
		lc.RegisterType(&RewardPoolFunded{}),
		lc.RegisterType(&EmergencyWithdrawChanged{}),
		lc.RegisterType(&ProposalCreated{}),
		lc.RegisterType(&VoteCast{}),
		lc.RegisterType(&ProposalExecuted{}),
		lc.RegisterType(&WalletCreated{}),
		lc.RegisterType(&Submission{}),
		lc.RegisterType(&Confirmation{}),
		lc.RegisterType(&Revocation{}),
		lc.RegisterType(&Execution{}),
		lc.RegisterType(&OwnerAddition{}),
		lc.RegisterType(&OwnerRemoval{}),
		lc.RegisterType(&RequirementChange{}),
		Codec.RegisterCodec(CodecVersion, lc),
	)
	if err != nil {
		panic(err)
	}
}

// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/luxfi/ids"
)

var ErrUnknownParameter = errors.New("unknown parameter")

// Admin holds the privileged roles and global switches of the token.
type Admin struct {
	Owner             ids.ShortID `serialize:"true" json:"owner"`
	Executor          ids.ShortID `serialize:"true" json:"executor"`
	Treasury          ids.ShortID `serialize:"true" json:"treasury"`
	Founder           ids.ShortID `serialize:"true" json:"founder"`
	Paused            bool        `serialize:"true" json:"paused"`
	EmergencyWithdraw bool        `serialize:"true" json:"emergencyWithdraw"`
}

// FeeConfig splits the transfer fee between its destinations. All values are
// in basis points and TreasuryBP+FounderBP+BurnBP == TotalFeeBP.
type FeeConfig struct {
	TotalFeeBP uint64 `serialize:"true" json:"totalFeeBP"`
	TreasuryBP uint64 `serialize:"true" json:"treasuryBP"`
	FounderBP  uint64 `serialize:"true" json:"founderBP"`
	BurnBP     uint64 `serialize:"true" json:"burnBP"`
}

// Valid reports whether the shares add up to the total.
func (f FeeConfig) Valid() bool {
	return f.TreasuryBP+f.FounderBP+f.BurnBP == f.TotalFeeBP
}

// TxLimits bounds individual transfers and wallet sizes.
type TxLimits struct {
	MaxTxAmount     uint256.Int `serialize:"true" json:"maxTxAmount"`
	MaxWalletAmount uint256.Int `serialize:"true" json:"maxWalletAmount"`
	// TxCooldown is the minimum number of seconds between protected transfers
	TxCooldown   uint64 `serialize:"true" json:"txCooldown"`
	LimitsActive bool   `serialize:"true" json:"limitsActive"`
}

// TokenStats are global counters maintained by the transfer pipeline.
type TokenStats struct {
	TotalBurned       uint256.Int `serialize:"true" json:"totalBurned"`
	TotalFeeCollected uint256.Int `serialize:"true" json:"totalFeeCollected"`
	TransactionCount  uint64      `serialize:"true" json:"transactionCount"`
	UniqueHolders     uint64      `serialize:"true" json:"uniqueHolders"`
}

// UserStats are per account counters. Times are unix seconds.
type UserStats struct {
	TotalFeesPaid        uint256.Int `serialize:"true" json:"totalFeesPaid"`
	FirstTransactionTime uint64      `serialize:"true" json:"firstTransactionTime"`
	LastTransactionTime  uint64      `serialize:"true" json:"lastTransactionTime"`
	LastTxBlock          uint64      `serialize:"true" json:"lastTxBlock"`
}

// ProtectedTransfer remembers the last protected transfer of a sender.
type ProtectedTransfer struct {
	Used      bool   `serialize:"true" json:"used"`
	LastBlock uint64 `serialize:"true" json:"lastBlock"`
	LastTime  uint64 `serialize:"true" json:"lastTime"`
}

// StakeRecord is a single time-locked stake. Records are never removed, an
// unstaked record stays in place with Amount zero and Active false.
type StakeRecord struct {
	Amount uint256.Int `serialize:"true" json:"amount"`
	// LockPeriod is the lock duration in seconds
	LockPeriod    uint64 `serialize:"true" json:"lockPeriod"`
	StartTime     uint64 `serialize:"true" json:"startTime"`
	AutoCompound  bool   `serialize:"true" json:"autoCompound"`
	LastClaimTime uint64 `serialize:"true" json:"lastClaimTime"`
	Active        bool   `serialize:"true" json:"active"`
}

// UnlockTime is the first unix second at which the stake may be withdrawn.
func (s *StakeRecord) UnlockTime() uint64 {
	return s.StartTime + s.LockPeriod
}

// Action is the payload a proposal executes once passed.
type Action interface {
	Kind() string
}

// FeeChange sets a new total transfer fee.
type FeeChange struct {
	TotalFeeBP uint64 `serialize:"true" json:"totalFeeBP"`
}

// TreasurySpend moves funds out of the treasury.
type TreasurySpend struct {
	To     ids.ShortID `serialize:"true" json:"to"`
	Amount uint256.Int `serialize:"true" json:"amount"`
}

// ParameterChange updates a single transfer limit.
type ParameterChange struct {
	Key   Parameter   `serialize:"true" json:"key"`
	Value uint256.Int `serialize:"true" json:"value"`
}

func (*FeeChange) Kind() string       { return "FEE_CHANGE" }
func (*TreasurySpend) Kind() string   { return "TREASURY_SPEND" }
func (*ParameterChange) Kind() string { return "PARAMETER_CHANGE" }

// Parameter names a governable transfer limit.
type Parameter uint8

const (
	MaxTxAmount Parameter = iota + 1
	MaxWalletAmount
	TxCooldown
	LimitsActive
)

var parameterNames = map[Parameter]string{
	MaxTxAmount:     "MaxTxAmount",
	MaxWalletAmount: "MaxWalletAmount",
	TxCooldown:      "TxCooldown",
	LimitsActive:    "LimitsActive",
}

func (p Parameter) String() string {
	if name, ok := parameterNames[p]; ok {
		return name
	}
	return "Unknown"
}

// Valid reports whether p names a known parameter.
func (p Parameter) Valid() bool {
	_, ok := parameterNames[p]
	return ok
}

// ParseParameter resolves a parameter by name.
func ParseParameter(name string) (Parameter, error) {
	for p, n := range parameterNames {
		if n == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownParameter, name)
}

// Proposal is a governance proposal. It is immutable once executed.
type Proposal struct {
	ID           uint64      `serialize:"true" json:"id"`
	Proposer     ids.ShortID `serialize:"true" json:"proposer"`
	Description  string      `serialize:"true" json:"description"`
	Action       Action      `serialize:"true" json:"action"`
	ForVotes     uint256.Int `serialize:"true" json:"forVotes"`
	AgainstVotes uint256.Int `serialize:"true" json:"againstVotes"`
	CreatedAt    uint64      `serialize:"true" json:"createdAt"`
	VotingEnd    uint64      `serialize:"true" json:"votingEnd"`
	ExecutableAt uint64      `serialize:"true" json:"executableAt"`
	Executed     bool        `serialize:"true" json:"executed"`
}

// Wallet is a multisignature wallet. Owners are sorted and unique.
type Wallet struct {
	Address  ids.ShortID   `serialize:"true" json:"address"`
	Owners   []ids.ShortID `serialize:"true" json:"owners"`
	Required uint64        `serialize:"true" json:"required"`
	TxCount  uint64        `serialize:"true" json:"txCount"`
}

// MultisigTx is a call submitted to a wallet. Once executed it stays executed.
type MultisigTx struct {
	ID            uint64        `serialize:"true" json:"id"`
	Destination   ids.ShortID   `serialize:"true" json:"destination"`
	Value         uint256.Int   `serialize:"true" json:"value"`
	Data          []byte        `serialize:"true" json:"data"`
	Confirmations []ids.ShortID `serialize:"true" json:"confirmations"`
	Executed      bool          `serialize:"true" json:"executed"`
}

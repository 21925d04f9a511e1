// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package events defines the observable events emitted by the FIA VM and the
// append-only log they are persisted to.
package events

import (
	"github.com/holiman/uint256"
	"github.com/luxfi/ids"
)

// Event is a typed notification raised by a state transition.
type Event interface {
	Name() string
}

// Sink receives events raised while executing a transaction.
type Sink interface {
	Emit(Event)
}

// Buffer collects events until the transaction that raised them commits.
type Buffer struct {
	events []Event
}

func (b *Buffer) Emit(e Event) {
	b.events = append(b.events, e)
}

// Events returns the buffered events in emission order.
func (b *Buffer) Events() []Event {
	return b.events
}

// Discard is a Sink that drops every event.
var Discard Sink = discard{}

type discard struct{}

func (discard) Emit(Event) {}

// Ledger events

type Transfer struct {
	From   ids.ShortID `serialize:"true" json:"from"`
	To     ids.ShortID `serialize:"true" json:"to"`
	Amount uint256.Int `serialize:"true" json:"amount"`
}

type TransferWithData struct {
	From     ids.ShortID `serialize:"true" json:"from"`
	To       ids.ShortID `serialize:"true" json:"to"`
	Amount   uint256.Int `serialize:"true" json:"amount"`
	MemoHash ids.ID      `serialize:"true" json:"memoHash"`
}

type FeeCollected struct {
	Payer    ids.ShortID `serialize:"true" json:"payer"`
	Treasury uint256.Int `serialize:"true" json:"treasury"`
	Founder  uint256.Int `serialize:"true" json:"founder"`
	Burned   uint256.Int `serialize:"true" json:"burned"`
}

type Approval struct {
	Owner   ids.ShortID `serialize:"true" json:"owner"`
	Spender ids.ShortID `serialize:"true" json:"spender"`
	Amount  uint256.Int `serialize:"true" json:"amount"`
}

type Mint struct {
	To     ids.ShortID `serialize:"true" json:"to"`
	Amount uint256.Int `serialize:"true" json:"amount"`
}

type Burn struct {
	From   ids.ShortID `serialize:"true" json:"from"`
	Amount uint256.Int `serialize:"true" json:"amount"`
}

type FeeExemptionChanged struct {
	Account ids.ShortID `serialize:"true" json:"account"`
	Exempt  bool        `serialize:"true" json:"exempt"`
}

type OwnershipTransferred struct {
	PreviousOwner ids.ShortID `serialize:"true" json:"previousOwner"`
	NewOwner      ids.ShortID `serialize:"true" json:"newOwner"`
}

type ExecutorChanged struct {
	PreviousExecutor ids.ShortID `serialize:"true" json:"previousExecutor"`
	NewExecutor      ids.ShortID `serialize:"true" json:"newExecutor"`
}

type Paused struct {
	By ids.ShortID `serialize:"true" json:"by"`
}

type Unpaused struct {
	By ids.ShortID `serialize:"true" json:"by"`
}

type FeeConfigUpdated struct {
	TotalFeeBP uint64 `serialize:"true" json:"totalFeeBP"`
	TreasuryBP uint64 `serialize:"true" json:"treasuryBP"`
	FounderBP  uint64 `serialize:"true" json:"founderBP"`
	BurnBP     uint64 `serialize:"true" json:"burnBP"`
}

type TxLimitsUpdated struct {
	Parameter string      `serialize:"true" json:"parameter"`
	Value     uint256.Int `serialize:"true" json:"value"`
}

// Staking events

type Staked struct {
	User         ids.ShortID `serialize:"true" json:"user"`
	Index        uint64      `serialize:"true" json:"index"`
	Amount       uint256.Int `serialize:"true" json:"amount"`
	LockPeriod   uint64      `serialize:"true" json:"lockPeriod"`
	AutoCompound bool        `serialize:"true" json:"autoCompound"`
	StakeCount   uint64      `serialize:"true" json:"stakeCount"`
}

type RewardsClaimed struct {
	User       ids.ShortID `serialize:"true" json:"user"`
	Index      uint64      `serialize:"true" json:"index"`
	Amount     uint256.Int `serialize:"true" json:"amount"`
	Compounded bool        `serialize:"true" json:"compounded"`
}

type Unstaked struct {
	User   ids.ShortID `serialize:"true" json:"user"`
	Index  uint64      `serialize:"true" json:"index"`
	Amount uint256.Int `serialize:"true" json:"amount"`
}

type EmergencyUnstaked struct {
	User    ids.ShortID `serialize:"true" json:"user"`
	Index   uint64      `serialize:"true" json:"index"`
	Amount  uint256.Int `serialize:"true" json:"amount"`
	Penalty uint256.Int `serialize:"true" json:"penalty"`
}

type RewardPoolFunded struct {
	Funder ids.ShortID `serialize:"true" json:"funder"`
	Amount uint256.Int `serialize:"true" json:"amount"`
}

type EmergencyWithdrawChanged struct {
	Enabled bool `serialize:"true" json:"enabled"`
}

// Governance events

type ProposalCreated struct {
	ID          uint64      `serialize:"true" json:"id"`
	Proposer    ids.ShortID `serialize:"true" json:"proposer"`
	Description string      `serialize:"true" json:"description"`
	Action      string      `serialize:"true" json:"action"`
	VotingEnd   uint64      `serialize:"true" json:"votingEnd"`
}

type VoteCast struct {
	ID      uint64      `serialize:"true" json:"id"`
	Voter   ids.ShortID `serialize:"true" json:"voter"`
	Support bool        `serialize:"true" json:"support"`
	Weight  uint256.Int `serialize:"true" json:"weight"`
}

type ProposalExecuted struct {
	ID     uint64 `serialize:"true" json:"id"`
	Action string `serialize:"true" json:"action"`
}

// Multisig events

type WalletCreated struct {
	Wallet   ids.ShortID   `serialize:"true" json:"wallet"`
	Owners   []ids.ShortID `serialize:"true" json:"owners"`
	Required uint64        `serialize:"true" json:"required"`
}

type Submission struct {
	Wallet ids.ShortID `serialize:"true" json:"wallet"`
	ID     uint64      `serialize:"true" json:"id"`
}

type Confirmation struct {
	Wallet ids.ShortID `serialize:"true" json:"wallet"`
	Owner  ids.ShortID `serialize:"true" json:"owner"`
	ID     uint64      `serialize:"true" json:"id"`
}

type Revocation struct {
	Wallet ids.ShortID `serialize:"true" json:"wallet"`
	Owner  ids.ShortID `serialize:"true" json:"owner"`
	ID     uint64      `serialize:"true" json:"id"`
}

type Execution struct {
	Wallet ids.ShortID `serialize:"true" json:"wallet"`
	ID     uint64      `serialize:"true" json:"id"`
}

type OwnerAddition struct {
	Wallet ids.ShortID `serialize:"true" json:"wallet"`
	Owner  ids.ShortID `serialize:"true" json:"owner"`
}

type OwnerRemoval struct {
	Wallet ids.ShortID `serialize:"true" json:"wallet"`
	Owner  ids.ShortID `serialize:"true" json:"owner"`
}

type RequirementChange struct {
	Wallet   ids.ShortID `serialize:"true" json:"wallet"`
	Required uint64      `serialize:"true" json:"required"`
}

func (*Transfer) Name() string                 { return "Transfer" }
func (*TransferWithData) Name() string         { return "TransferWithData" }
func (*FeeCollected) Name() string             { return "FeeCollected" }
func (*Approval) Name() string                 { return "Approval" }
func (*Mint) Name() string                     { return "Mint" }
func (*Burn) Name() string                     { return "Burn" }
func (*FeeExemptionChanged) Name() string      { return "FeeExemptionChanged" }
func (*OwnershipTransferred) Name() string     { return "OwnershipTransferred" }
func (*ExecutorChanged) Name() string          { return "ExecutorChanged" }
func (*Paused) Name() string                   { return "Paused" }
func (*Unpaused) Name() string                 { return "Unpaused" }
func (*FeeConfigUpdated) Name() string         { return "FeeConfigUpdated" }
func (*TxLimitsUpdated) Name() string          { return "TxLimitsUpdated" }
func (*Staked) Name() string                   { return "Staked" }
func (*RewardsClaimed) Name() string           { return "RewardsClaimed" }
func (*Unstaked) Name() string                 { return "Unstaked" }
func (*EmergencyUnstaked) Name() string        { return "EmergencyUnstaked" }
func (*RewardPoolFunded) Name() string         { return "RewardPoolFunded" }
func (*EmergencyWithdrawChanged) Name() string { return "EmergencyWithdrawChanged" }
func (*ProposalCreated) Name() string          { return "ProposalCreated" }
func (*VoteCast) Name() string                 { return "VoteCast" }
func (*ProposalExecuted) Name() string         { return "ProposalExecuted" }
func (*WalletCreated) Name() string            { return "WalletCreated" }
func (*Submission) Name() string               { return "Submission" }
func (*Confirmation) Name() string             { return "Confirmation" }
func (*Revocation) Name() string               { return "Revocation" }
func (*Execution) Name() string                { return "Execution" }
func (*OwnerAddition) Name() string            { return "OwnerAddition" }
func (*OwnerRemoval) Name() string             { return "OwnerRemoval" }
func (*RequirementChange) Name() string        { return "RequirementChange" }

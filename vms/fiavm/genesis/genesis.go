// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package genesis describes the initial state of a FIA chain.
package genesis

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/holiman/uint256"
	"github.com/luxfi/ids"
	"github.com/luxfi/math/set"

	"github.com/luxfi/fia/utils/units"
	"github.com/luxfi/fia/vms/fiavm/events"
	"github.com/luxfi/fia/vms/fiavm/fee"
	"github.com/luxfi/fia/vms/fiavm/ledger"
	"github.com/luxfi/fia/vms/fiavm/multisig"
	"github.com/luxfi/fia/vms/fiavm/state"
)

// DefaultTxCooldown is the protected transfer cooldown used when the genesis
// leaves the limits unset.
const DefaultTxCooldown = 30 * time.Second

var (
	ErrMissingOwner        = errors.New("missing owner")
	ErrMissingTreasury     = errors.New("missing treasury")
	ErrMissingFounder      = errors.New("missing founder")
	ErrInvalidAllocation   = errors.New("invalid allocation")
	ErrDuplicateAllocation = errors.New("duplicate allocation")
	ErrInvalidWallet       = errors.New("invalid wallet")
)

type Allocation struct {
	Address ids.ShortID  `json:"address"`
	Amount  *uint256.Int `json:"amount"`
}

// Wallet is a multisig wallet created at genesis. Its address may be used as
// the owner or executor.
type Wallet struct {
	Address  ids.ShortID   `json:"address"`
	Owners   []ids.ShortID `json:"owners"`
	Required uint64        `json:"required"`
}

type Limits struct {
	MaxTxAmount     *uint256.Int `json:"maxTxAmount"`
	MaxWalletAmount *uint256.Int `json:"maxWalletAmount"`
	TxCooldown      uint64       `json:"txCooldown"`
	LimitsActive    bool         `json:"limitsActive"`
}

type Genesis struct {
	// Timestamp of the genesis block in unix seconds.
	Timestamp uint64 `json:"timestamp"`

	Owner    ids.ShortID `json:"owner"`
	Executor ids.ShortID `json:"executor"`
	Treasury ids.ShortID `json:"treasury"`
	Founder  ids.ShortID `json:"founder"`

	Allocations []Allocation     `json:"allocations"`
	RewardPool  *uint256.Int     `json:"rewardPool"`
	FeeExempt   []ids.ShortID    `json:"feeExempt"`
	Fees        *state.FeeConfig `json:"fees"`
	Limits      *Limits          `json:"limits"`
	Wallets     []Wallet         `json:"wallets"`
}

// Default returns a genesis with the standard fee split and no allocations.
func Default(owner, treasury, founder ids.ShortID) *Genesis {
	return &Genesis{
		Owner:    owner,
		Treasury: treasury,
		Founder:  founder,
		Fees: &state.FeeConfig{
			TotalFeeBP: 100,
			TreasuryBP: 60,
			FounderBP:  30,
			BurnBP:     10,
		},
		Limits: &Limits{
			MaxTxAmount:     units.Tokens(1_000_000),
			MaxWalletAmount: units.Tokens(10_000_000),
			TxCooldown:      uint64(DefaultTxCooldown / time.Second),
		},
	}
}

// Parse decodes and verifies a JSON genesis.
func Parse(b []byte) (*Genesis, error) {
	g := &Genesis{}
	if err := json.Unmarshal(b, g); err != nil {
		return nil, fmt.Errorf("failed to parse genesis: %w", err)
	}
	if err := g.Verify(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Genesis) Bytes() ([]byte, error) {
	return json.Marshal(g)
}

func (g *Genesis) Verify() error {
	switch {
	case g.Owner == ids.ShortEmpty:
		return ErrMissingOwner
	case g.Treasury == ids.ShortEmpty:
		return ErrMissingTreasury
	case g.Founder == ids.ShortEmpty:
		return ErrMissingFounder
	}
	if g.Fees != nil && !g.Fees.Valid() {
		return fmt.Errorf("%w: %+v", fee.ErrInvalidFeeConfig, *g.Fees)
	}

	seen := set.NewSet[ids.ShortID](len(g.Allocations))
	for i, a := range g.Allocations {
		switch {
		case a.Address == ids.ShortEmpty || ledger.IsReserved(a.Address):
			return fmt.Errorf("%w: allocation %d address %s", ErrInvalidAllocation, i, a.Address)
		case a.Amount == nil || a.Amount.IsZero():
			return fmt.Errorf("%w: allocation %d has no amount", ErrInvalidAllocation, i)
		case seen.Contains(a.Address):
			return fmt.Errorf("%w: %s", ErrDuplicateAllocation, a.Address)
		}
		seen.Add(a.Address)
	}
	for i, w := range g.Wallets {
		if w.Address == ids.ShortEmpty || ledger.IsReserved(w.Address) {
			return fmt.Errorf("%w: wallet %d address %s", ErrInvalidWallet, i, w.Address)
		}
	}
	return nil
}

// Apply writes the genesis state. Multisig wallets are checked against
// maxOwners as they are created.
func (g *Genesis) Apply(s *state.State, maxOwners int) error {
	l := ledger.New(s, events.Discard, ledger.Block{Time: time.Unix(int64(g.Timestamp), 0)})

	if err := s.SetAdmin(&state.Admin{
		Owner:    g.Owner,
		Executor: g.Executor,
		Treasury: g.Treasury,
		Founder:  g.Founder,
	}); err != nil {
		return err
	}

	fees := state.FeeConfig{}
	if g.Fees != nil {
		fees = *g.Fees
	}
	if err := s.SetFeeConfig(&fees); err != nil {
		return err
	}

	limits := &state.TxLimits{TxCooldown: uint64(DefaultTxCooldown / time.Second)}
	if g.Limits != nil {
		limits = &state.TxLimits{
			TxCooldown:   g.Limits.TxCooldown,
			LimitsActive: g.Limits.LimitsActive,
		}
		if g.Limits.MaxTxAmount != nil {
			limits.MaxTxAmount = *g.Limits.MaxTxAmount
		}
		if g.Limits.MaxWalletAmount != nil {
			limits.MaxWalletAmount = *g.Limits.MaxWalletAmount
		}
	}
	if err := s.SetTxLimits(limits); err != nil {
		return err
	}

	for _, addr := range g.FeeExempt {
		if err := s.SetFeeExempt(addr, true); err != nil {
			return err
		}
	}

	stats := &state.TokenStats{}
	for _, a := range g.Allocations {
		if err := l.MintTo(a.Address, a.Amount); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidAllocation, a.Address, err)
		}
		stats.UniqueHolders++
	}
	if err := s.SetTokenStats(stats); err != nil {
		return err
	}
	if g.RewardPool != nil && !g.RewardPool.IsZero() {
		if err := l.MintTo(ledger.RewardPoolAddress, g.RewardPool); err != nil {
			return err
		}
	}

	wallets := multisig.New(l, nil, maxOwners)
	for _, w := range g.Wallets {
		if err := wallets.CreateWallet(w.Address, w.Owners, w.Required); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidWallet, w.Address, err)
		}
	}

	if err := s.SetTimestamp(g.Timestamp); err != nil {
		return err
	}
	return s.SetInitialized()
}

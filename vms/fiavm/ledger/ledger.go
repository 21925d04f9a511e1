// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ledger implements the FIA ledger core: balances, supply and the
// privileged roles that control the token.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/holiman/uint256"
	"github.com/luxfi/ids"

	"github.com/luxfi/fia/vms/fiavm/events"
	"github.com/luxfi/fia/vms/fiavm/state"
)

var (
	ErrPaused                = errors.New("token is paused")
	ErrNotOwner              = errors.New("caller is not the owner")
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrInsufficientAllowance = errors.New("insufficient allowance")
	ErrZeroAddress           = errors.New("zero address")
	ErrZeroAmount            = errors.New("amount must be greater than zero")
	ErrReservedAddress       = errors.New("reserved system address")
	ErrSupplyOverflow        = errors.New("total supply overflow")
)

// Reserved system accounts. Staked principal and the reward pool are held in
// ordinary balances so the sum of all balances always equals total supply.
var (
	TokenAddress      = ids.ShortID{19: 0x01}
	StakingAddress    = ids.ShortID{19: 0x02}
	RewardPoolAddress = ids.ShortID{19: 0x03}
)

// IsReserved reports whether addr is a system account users cannot send to.
func IsReserved(addr ids.ShortID) bool {
	return addr == TokenAddress || addr == StakingAddress || addr == RewardPoolAddress
}

// Block identifies the block a transaction executes in.
type Block struct {
	Height uint64
	Time   time.Time
}

// Unix returns the block time in unix seconds.
func (b Block) Unix() uint64 {
	return uint64(max(b.Time.Unix(), 0))
}

// Ledger applies balance and supply changes to a State. A Ledger is built per
// transaction over that transaction's uncommitted state.
type Ledger struct {
	state *state.State
	sink  events.Sink
	block Block
}

func New(s *state.State, sink events.Sink, block Block) *Ledger {
	return &Ledger{
		state: s,
		sink:  sink,
		block: block,
	}
}

func (l *Ledger) State() *state.State { return l.state }
func (l *Ledger) Sink() events.Sink    { return l.sink }
func (l *Ledger) Block() Block         { return l.block }

func (l *Ledger) Balance(addr ids.ShortID) (*uint256.Int, error) {
	return l.state.Balance(addr)
}

func (l *Ledger) TotalSupply() (*uint256.Int, error) {
	return l.state.TotalSupply()
}

// Credit adds amount to the balance of addr.
func (l *Ledger) Credit(addr ids.ShortID, amount *uint256.Int) error {
	balance, err := l.state.Balance(addr)
	if err != nil {
		return err
	}
	if _, overflow := balance.AddOverflow(balance, amount); overflow {
		return ErrSupplyOverflow
	}
	return l.state.SetBalance(addr, balance)
}

// Debit removes amount from the balance of addr.
func (l *Ledger) Debit(addr ids.ShortID, amount *uint256.Int) error {
	balance, err := l.state.Balance(addr)
	if err != nil {
		return err
	}
	if balance.Lt(amount) {
		return fmt.Errorf("%w: %s holds %s, needs %s", ErrInsufficientBalance, addr, balance.Dec(), amount.Dec())
	}
	return l.state.SetBalance(addr, balance.Sub(balance, amount))
}

// Move transfers amount between accounts without fees, limits or events.
// Staking and governance use it for their internal accounting.
func (l *Ledger) Move(from, to ids.ShortID, amount *uint256.Int) error {
	if err := l.Debit(from, amount); err != nil {
		return err
	}
	return l.Credit(to, amount)
}

// Mint creates amount new tokens for to.
func (l *Ledger) Mint(caller, to ids.ShortID, amount *uint256.Int) error {
	if err := l.RequireOwner(caller); err != nil {
		return err
	}
	if amount.IsZero() {
		return ErrZeroAmount
	}
	if to == ids.ShortEmpty {
		return ErrZeroAddress
	}
	if IsReserved(to) {
		return fmt.Errorf("%w: %s", ErrReservedAddress, to)
	}
	return l.MintTo(to, amount)
}

// MintTo creates tokens without an authorization check. It is used while
// applying genesis.
func (l *Ledger) MintTo(to ids.ShortID, amount *uint256.Int) error {
	supply, err := l.state.TotalSupply()
	if err != nil {
		return err
	}
	if _, overflow := supply.AddOverflow(supply, amount); overflow {
		return ErrSupplyOverflow
	}
	if err := l.state.SetTotalSupply(supply); err != nil {
		return err
	}
	if err := l.Credit(to, amount); err != nil {
		return err
	}
	l.sink.Emit(&events.Mint{To: to, Amount: *amount.Clone()})
	return nil
}

// Burn destroys amount of the caller's tokens.
func (l *Ledger) Burn(from ids.ShortID, amount *uint256.Int) error {
	if err := l.RequireNotPaused(); err != nil {
		return err
	}
	if amount.IsZero() {
		return ErrZeroAmount
	}
	if err := l.BurnFrom(from, amount); err != nil {
		return err
	}
	l.sink.Emit(&events.Burn{From: from, Amount: *amount.Clone()})
	return nil
}

// BurnFrom removes amount from from and from the total supply and records it
// in the token statistics.
func (l *Ledger) BurnFrom(from ids.ShortID, amount *uint256.Int) error {
	if err := l.Debit(from, amount); err != nil {
		return err
	}
	supply, err := l.state.TotalSupply()
	if err != nil {
		return err
	}
	if err := l.state.SetTotalSupply(supply.Sub(supply, amount)); err != nil {
		return err
	}
	stats, err := l.state.TokenStats()
	if err != nil {
		return err
	}
	stats.TotalBurned.Add(&stats.TotalBurned, amount)
	return l.state.SetTokenStats(stats)
}

// Approve sets the amount spender may transfer on behalf of owner.
func (l *Ledger) Approve(owner, spender ids.ShortID, amount *uint256.Int) error {
	if err := l.RequireNotPaused(); err != nil {
		return err
	}
	if spender == ids.ShortEmpty {
		return ErrZeroAddress
	}
	if err := l.state.SetAllowance(owner, spender, amount); err != nil {
		return err
	}
	l.sink.Emit(&events.Approval{Owner: owner, Spender: spender, Amount: *amount.Clone()})
	return nil
}

// SpendAllowance consumes amount of the allowance owner granted spender.
func (l *Ledger) SpendAllowance(owner, spender ids.ShortID, amount *uint256.Int) error {
	allowance, err := l.state.Allowance(owner, spender)
	if err != nil {
		return err
	}
	if allowance.Lt(amount) {
		return fmt.Errorf("%w: %s of %s", ErrInsufficientAllowance, allowance.Dec(), amount.Dec())
	}
	return l.state.SetAllowance(owner, spender, allowance.Sub(allowance, amount))
}

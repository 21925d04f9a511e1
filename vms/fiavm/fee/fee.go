// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package fee implements the FIA transfer pipeline: fee collection and
// distribution, transfer limits, exemptions and protected transfers.
package fee

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/luxfi/ids"

	"github.com/luxfi/fia/utils/units"
	"github.com/luxfi/fia/vms/fiavm/events"
	"github.com/luxfi/fia/vms/fiavm/ledger"
	"github.com/luxfi/fia/vms/fiavm/state"
)

var (
	ErrAmountExceedsTxLimit = errors.New("amount exceeds transaction limit")
	ErrWalletLimitExceeded  = errors.New("recipient would exceed wallet limit")
	ErrBatchLengthMismatch  = errors.New("recipients and amounts length mismatch")
	ErrInvalidBatchSize     = errors.New("invalid batch size")
	ErrInvalidFeeConfig     = errors.New("fee shares do not add up to total fee")
	ErrFeeExceedsMaximum    = errors.New("fee exceeds maximum")
	ErrInvalidParameter     = errors.New("invalid parameter value")
)

var basisPoints = uint256.NewInt(units.BasisPoints)

// Split is the breakdown of a transfer amount.
type Split struct {
	// Fee is the total fee withheld from the amount
	Fee *uint256.Int
	// Treasury includes the rounding remainder of the shares
	Treasury *uint256.Int
	Founder  *uint256.Int
	Burn     *uint256.Int
	// Net is what the recipient receives
	Net *uint256.Int
}

// Calculate splits amount according to cfg. Every division floors and the
// remainder of the share divisions is credited to the treasury, so
// Treasury+Founder+Burn == Fee and Fee+Net == amount.
func Calculate(cfg *state.FeeConfig, amount *uint256.Int) Split {
	s := Split{
		Fee:      new(uint256.Int),
		Treasury: new(uint256.Int),
		Founder:  new(uint256.Int),
		Burn:     new(uint256.Int),
		Net:      amount.Clone(),
	}
	if cfg.TotalFeeBP == 0 {
		return s
	}

	// amount*bp fits in 256 bits for any realistic supply, MulDivOverflow
	// keeps the intermediate product in 512 bits regardless.
	s.Fee.MulDivOverflow(amount, uint256.NewInt(cfg.TotalFeeBP), basisPoints)

	total := uint256.NewInt(cfg.TotalFeeBP)
	s.Founder.MulDivOverflow(s.Fee, uint256.NewInt(cfg.FounderBP), total)
	s.Burn.MulDivOverflow(s.Fee, uint256.NewInt(cfg.BurnBP), total)
	s.Treasury.Sub(s.Fee, s.Founder)
	s.Treasury.Sub(s.Treasury, s.Burn)
	s.Net.Sub(amount, s.Fee)
	return s
}

// Rescale returns cfg with its total fee set to total and the shares scaled
// proportionally. The burn share absorbs the rounding. A config without a
// prior total sends the whole fee to the treasury.
func Rescale(cfg state.FeeConfig, total uint64) state.FeeConfig {
	if cfg.TotalFeeBP == 0 {
		return state.FeeConfig{TotalFeeBP: total, TreasuryBP: total}
	}
	treasury := cfg.TreasuryBP * total / cfg.TotalFeeBP
	founder := cfg.FounderBP * total / cfg.TotalFeeBP
	return state.FeeConfig{
		TotalFeeBP: total,
		TreasuryBP: treasury,
		FounderBP:  founder,
		BurnBP:     total - treasury - founder,
	}
}

// Engine runs every user transfer through fees, limits and statistics.
type Engine struct {
	ledger       *ledger.Ledger
	maxBatchSize int
}

func New(l *ledger.Ledger, maxBatchSize int) *Engine {
	return &Engine{
		ledger:       l,
		maxBatchSize: maxBatchSize,
	}
}

// Transfer moves amount from sender to recipient, withholding the fee.
func (e *Engine) Transfer(from, to ids.ShortID, amount *uint256.Int) error {
	_, err := e.transfer(from, to, amount)
	return err
}

// TransferWithData transfers like Transfer and records the Keccak-256 hash
// of memo in the emitted event.
func (e *Engine) TransferWithData(from, to ids.ShortID, amount *uint256.Int, memo []byte) error {
	net, err := e.transfer(from, to, amount)
	if err != nil {
		return err
	}
	e.ledger.Sink().Emit(&events.TransferWithData{
		From:     from,
		To:       to,
		Amount:   *net,
		MemoHash: MemoHash(memo),
	})
	return nil
}

// TransferFrom spends the allowance owner granted spender. The allowance is
// reduced by the gross amount.
func (e *Engine) TransferFrom(spender, owner, to ids.ShortID, amount *uint256.Int) error {
	if err := e.ledger.SpendAllowance(owner, spender, amount); err != nil {
		return err
	}
	_, err := e.transfer(owner, to, amount)
	return err
}

// BatchTransfer performs every leg or none of them.
func (e *Engine) BatchTransfer(from ids.ShortID, to []ids.ShortID, amounts []*uint256.Int) error {
	if len(to) != len(amounts) {
		return fmt.Errorf("%w: %d recipients, %d amounts", ErrBatchLengthMismatch, len(to), len(amounts))
	}
	if len(to) == 0 || len(to) > e.maxBatchSize {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidBatchSize, len(to), e.maxBatchSize)
	}
	for i := range to {
		if _, err := e.transfer(from, to[i], amounts[i]); err != nil {
			return fmt.Errorf("batch leg %d: %w", i, err)
		}
	}
	return nil
}

// transfer is the single pipeline behind every user transfer. It returns the
// amount credited to the recipient.
func (e *Engine) transfer(from, to ids.ShortID, amount *uint256.Int) (*uint256.Int, error) {
	s := e.ledger.State()
	if err := e.ledger.RequireNotPaused(); err != nil {
		return nil, err
	}
	switch {
	case amount.IsZero():
		return nil, ledger.ErrZeroAmount
	case to == ids.ShortEmpty:
		return nil, ledger.ErrZeroAddress
	case ledger.IsReserved(to):
		return nil, fmt.Errorf("%w: %s", ledger.ErrReservedAddress, to)
	}

	fromExempt, err := s.IsFeeExempt(from)
	if err != nil {
		return nil, err
	}
	toExempt, err := s.IsFeeExempt(to)
	if err != nil {
		return nil, err
	}
	limits, err := s.TxLimits()
	if err != nil {
		return nil, err
	}
	toBalance, err := s.Balance(to)
	if err != nil {
		return nil, err
	}

	if limits.LimitsActive {
		if !fromExempt && !toExempt && amount.Gt(&limits.MaxTxAmount) {
			return nil, fmt.Errorf("%w: %s > %s", ErrAmountExceedsTxLimit, amount.Dec(), limits.MaxTxAmount.Dec())
		}
		// The wallet check uses the gross amount even though the recipient
		// only receives the net amount.
		if !toExempt {
			after, overflow := new(uint256.Int).AddOverflow(toBalance, amount)
			if overflow || after.Gt(&limits.MaxWalletAmount) {
				return nil, fmt.Errorf("%w: %s", ErrWalletLimitExceeded, to)
			}
		}
	}

	fromBalance, err := s.Balance(from)
	if err != nil {
		return nil, err
	}
	if fromBalance.Lt(amount) {
		return nil, fmt.Errorf("%w: %s holds %s, needs %s", ledger.ErrInsufficientBalance, from, fromBalance.Dec(), amount.Dec())
	}

	split := Split{Fee: new(uint256.Int), Net: amount.Clone()}
	if !fromExempt && !toExempt {
		cfg, err := s.FeeConfig()
		if err != nil {
			return nil, err
		}
		split = Calculate(cfg, amount)
	}

	if err := e.ledger.Move(from, to, split.Net); err != nil {
		return nil, err
	}
	if !split.Fee.IsZero() {
		if err := e.distribute(from, split); err != nil {
			return nil, err
		}
	}
	if err := e.recordStats(from, to, toBalance.IsZero(), split.Fee); err != nil {
		return nil, err
	}

	e.ledger.Sink().Emit(&events.Transfer{From: from, To: to, Amount: *split.Net})
	return split.Net, nil
}

func (e *Engine) distribute(payer ids.ShortID, split Split) error {
	admin, err := e.ledger.State().Admin()
	if err != nil {
		return err
	}
	if !split.Treasury.IsZero() {
		if err := e.ledger.Move(payer, admin.Treasury, split.Treasury); err != nil {
			return err
		}
	}
	if !split.Founder.IsZero() {
		if err := e.ledger.Move(payer, admin.Founder, split.Founder); err != nil {
			return err
		}
	}
	if !split.Burn.IsZero() {
		if err := e.ledger.BurnFrom(payer, split.Burn); err != nil {
			return err
		}
	}
	e.ledger.Sink().Emit(&events.FeeCollected{
		Payer:    payer,
		Treasury: *split.Treasury,
		Founder:  *split.Founder,
		Burned:   *split.Burn,
	})
	return nil
}

func (e *Engine) recordStats(from, to ids.ShortID, newHolder bool, fee *uint256.Int) error {
	s := e.ledger.State()
	block := e.ledger.Block()

	stats, err := s.TokenStats()
	if err != nil {
		return err
	}
	stats.TransactionCount++
	stats.TotalFeeCollected.Add(&stats.TotalFeeCollected, fee)
	if newHolder {
		stats.UniqueHolders++
	}
	if err := s.SetTokenStats(stats); err != nil {
		return err
	}

	parties := []ids.ShortID{from}
	if to != from {
		parties = append(parties, to)
	}
	for _, addr := range parties {
		user, err := s.UserStats(addr)
		if err != nil {
			return err
		}
		if addr == from {
			user.TotalFeesPaid.Add(&user.TotalFeesPaid, fee)
		}
		if user.FirstTransactionTime == 0 {
			user.FirstTransactionTime = block.Unix()
		}
		user.LastTransactionTime = block.Unix()
		user.LastTxBlock = block.Height
		if err := s.SetUserStats(addr, user); err != nil {
			return err
		}
	}
	return nil
}

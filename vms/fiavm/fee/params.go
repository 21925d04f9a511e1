// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package fee

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/luxfi/ids"
	"golang.org/x/crypto/sha3"

	"github.com/luxfi/fia/vms/fiavm/events"
	"github.com/luxfi/fia/vms/fiavm/state"
)

// MemoHash is the Keccak-256 hash of a transfer memo.
func MemoHash(memo []byte) ids.ID {
	h := sha3.NewLegacyKeccak256()
	_, _ = h.Write(memo)
	var id ids.ID
	copy(id[:], h.Sum(nil))
	return id
}

// SetTotalFee changes the total transfer fee, rescaling the shares.
func (e *Engine) SetTotalFee(total, maxTotal uint64) error {
	if total > maxTotal {
		return fmt.Errorf("%w: %d > %d", ErrFeeExceedsMaximum, total, maxTotal)
	}
	s := e.ledger.State()
	cfg, err := s.FeeConfig()
	if err != nil {
		return err
	}
	next := Rescale(*cfg, total)
	if !next.Valid() {
		return ErrInvalidFeeConfig
	}
	if err := s.SetFeeConfig(&next); err != nil {
		return err
	}
	e.ledger.Sink().Emit(&events.FeeConfigUpdated{
		TotalFeeBP: next.TotalFeeBP,
		TreasuryBP: next.TreasuryBP,
		FounderBP:  next.FounderBP,
		BurnBP:     next.BurnBP,
	})
	return nil
}

// SetLimit updates a single transfer limit. LimitsActive treats any non-zero
// value as true.
func (e *Engine) SetLimit(param state.Parameter, value *uint256.Int) error {
	s := e.ledger.State()
	limits, err := s.TxLimits()
	if err != nil {
		return err
	}
	switch param {
	case state.MaxTxAmount:
		limits.MaxTxAmount = *value
	case state.MaxWalletAmount:
		limits.MaxWalletAmount = *value
	case state.TxCooldown:
		if !value.IsUint64() {
			return fmt.Errorf("%w: cooldown %s out of range", ErrInvalidParameter, value.Dec())
		}
		limits.TxCooldown = value.Uint64()
	case state.LimitsActive:
		limits.LimitsActive = !value.IsZero()
	default:
		return fmt.Errorf("%w: %d", state.ErrUnknownParameter, param)
	}
	if err := s.SetTxLimits(limits); err != nil {
		return err
	}
	e.ledger.Sink().Emit(&events.TxLimitsUpdated{Parameter: param.String(), Value: *value})
	return nil
}

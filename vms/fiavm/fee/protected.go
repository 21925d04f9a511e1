// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package fee

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/luxfi/ids"
)

var (
	ErrNonceUsed      = errors.New("nonce already used")
	ErrSameBlock      = errors.New("protected transfer already made in this block")
	ErrCooldownNotMet = errors.New("cooldown period not met")
)

// ProtectedTransfer is a transfer that cannot be replayed or packed into the
// same block as the sender's previous protected transfer. Each nonce is
// single use per sender and consecutive protected transfers must be at least
// the configured cooldown apart.
func (e *Engine) ProtectedTransfer(from, to ids.ShortID, amount *uint256.Int, nonce uint64) error {
	s := e.ledger.State()
	block := e.ledger.Block()

	used, err := s.IsNonceUsed(from, nonce)
	if err != nil {
		return err
	}
	if used {
		return fmt.Errorf("%w: %d", ErrNonceUsed, nonce)
	}

	last, err := s.ProtectedTransfer(from)
	if err != nil {
		return err
	}
	if last.Used {
		if last.LastBlock == block.Height {
			return fmt.Errorf("%w: %d", ErrSameBlock, block.Height)
		}
		limits, err := s.TxLimits()
		if err != nil {
			return err
		}
		now := block.Unix()
		if now < last.LastTime || now-last.LastTime < limits.TxCooldown {
			return fmt.Errorf("%w: %ds since last transfer, need %ds", ErrCooldownNotMet, now-min(now, last.LastTime), limits.TxCooldown)
		}
	}

	if _, err := e.transfer(from, to, amount); err != nil {
		return err
	}

	if err := s.MarkNonceUsed(from, nonce); err != nil {
		return err
	}
	last.Used = true
	last.LastBlock = block.Height
	last.LastTime = block.Unix()
	return s.SetProtectedTransfer(from, last)
}

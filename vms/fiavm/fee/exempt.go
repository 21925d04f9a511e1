// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package fee

import (
	"github.com/luxfi/ids"

	"github.com/luxfi/fia/vms/fiavm/events"
	"github.com/luxfi/fia/vms/fiavm/ledger"
)

// SetFeeExempt toggles whether addr bypasses fees and limits.
func (e *Engine) SetFeeExempt(caller, addr ids.ShortID, exempt bool) error {
	return e.BatchSetFeeExempt(caller, []ids.ShortID{addr}, exempt)
}

// BatchSetFeeExempt applies the same exemption to every address.
func (e *Engine) BatchSetFeeExempt(caller ids.ShortID, addrs []ids.ShortID, exempt bool) error {
	if err := e.ledger.RequireOwner(caller); err != nil {
		return err
	}
	if len(addrs) == 0 || len(addrs) > e.maxBatchSize {
		return ErrInvalidBatchSize
	}
	s := e.ledger.State()
	for _, addr := range addrs {
		if addr == ids.ShortEmpty {
			return ledger.ErrZeroAddress
		}
		if err := s.SetFeeExempt(addr, exempt); err != nil {
			return err
		}
		e.ledger.Sink().Emit(&events.FeeExemptionChanged{Account: addr, Exempt: exempt})
	}
	return nil
}

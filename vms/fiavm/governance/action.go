// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package governance

import (
	"encoding/json"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/luxfi/ids"

	"github.com/luxfi/fia/vms/fiavm/state"
)

// Action kinds accepted by ParseAction.
const (
	KindFeeChange       = "FEE_CHANGE"
	KindTreasurySpend   = "TREASURY_SPEND"
	KindParameterChange = "PARAMETER_CHANGE"
)

type feeChangeJSON struct {
	TotalFeeBP *uint64 `json:"totalFeeBP"`
}

type treasurySpendJSON struct {
	To     string       `json:"to"`
	Amount *uint256.Int `json:"amount"`
}

type parameterChangeJSON struct {
	Key   string       `json:"key"`
	Value *uint256.Int `json:"value"`
}

// ParseAction decodes the JSON payload of a proposal action of the given
// kind. Payloads are decoded once, when the proposal is created, and stored
// as typed actions.
func ParseAction(kind string, payload []byte) (state.Action, error) {
	switch kind {
	case KindFeeChange:
		var p feeChangeJSON
		if err := json.Unmarshal(payload, &p); err != nil || p.TotalFeeBP == nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidPayload, kind)
		}
		return &state.FeeChange{TotalFeeBP: *p.TotalFeeBP}, nil
	case KindTreasurySpend:
		var p treasurySpendJSON
		if err := json.Unmarshal(payload, &p); err != nil || p.Amount == nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidPayload, kind)
		}
		to, err := ids.ShortFromString(p.To)
		if err != nil {
			return nil, fmt.Errorf("%w: recipient: %w", ErrInvalidPayload, err)
		}
		return &state.TreasurySpend{To: to, Amount: *p.Amount}, nil
	case KindParameterChange:
		var p parameterChangeJSON
		if err := json.Unmarshal(payload, &p); err != nil || p.Value == nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidPayload, kind)
		}
		key, err := state.ParseParameter(p.Key)
		if err != nil {
			return nil, err
		}
		return &state.ParameterChange{Key: key, Value: *p.Value}, nil
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidPayload, kind)
	}
}

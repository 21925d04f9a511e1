// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package governance

import (
	"errors"
	"fmt"
	"strings"
)

// Status is the lifecycle position of a proposal at the current block time.
type Status uint8

const (
	// Pending proposals accept votes.
	Pending Status = iota
	// VotingClosed proposals are waiting out the execution delay.
	VotingClosed
	// Executable proposals passed and may be executed.
	Executable
	Executed
	// Rejected proposals missed quorum or had no majority.
	Rejected
)

var statusNames = []string{"Pending", "VotingClosed", "Executable", "Executed", "Rejected"}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "Unknown"
}

func (s Status) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s *Status) UnmarshalJSON(b []byte) error {
	name := strings.Trim(string(b), `"`)
	for i, n := range statusNames {
		if n == name {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", name)
}

// Status reports the lifecycle position of proposal id.
func (e *Engine) Status(id uint64) (Status, error) {
	p, err := e.Proposal(id)
	if err != nil {
		return 0, err
	}
	now := e.ledger.Block().Unix()
	switch {
	case p.Executed:
		return Executed, nil
	case now <= p.VotingEnd:
		return Pending, nil
	case now < p.ExecutableAt:
		return VotingClosed, nil
	}

	err = e.checkOutcome(p)
	switch {
	case err == nil:
		return Executable, nil
	case errors.Is(err, ErrQuorumNotMet), errors.Is(err, ErrProposalRejected):
		return Rejected, nil
	default:
		return 0, err
	}
}

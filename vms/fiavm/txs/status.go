// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"fmt"
	"strings"
)

// Status is the outcome of a recently processed transaction.
type Status uint8

const (
	Unknown Status = iota
	Accepted
	// Rejected transactions were reverted without effect.
	Rejected
)

var statusNames = []string{"Unknown", "Accepted", "Rejected"}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "Invalid"
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
	return fmt.Errorf("unknown tx status %q", name)
}

// Result records where a transaction landed and why it was reverted.
type Result struct {
	Status Status `json:"status"`
	Height uint64 `json:"height"`
	Reason string `json:"reason,omitempty"`
}

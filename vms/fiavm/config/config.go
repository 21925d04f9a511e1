// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config defines configuration types for the FIA VM.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/holiman/uint256"

	"github.com/luxfi/fia/utils/units"
)

var (
	ErrInvalidLockPeriods  = errors.New("invalid lock periods")
	ErrInvalidQuorum       = errors.New("quorum percentage must be in (0, 100]")
	ErrInvalidMaxFee       = errors.New("max total fee exceeds 100%")
	ErrInvalidPenalty      = errors.New("early exit penalty exceeds 100%")
	ErrInvalidBatchSize    = errors.New("max batch size must be positive")
	ErrInvalidOwnerLimit   = errors.New("max owners must be positive")
	ErrInvalidVotingWindow = errors.New("voting period must be positive")
	ErrMissingThreshold    = errors.New("missing proposal threshold")
	ErrInvalidCacheSize    = errors.New("tx cache size must be positive")
)

// LockPeriod pairs a staking lock duration with its annual yield.
type LockPeriod struct {
	Duration time.Duration `json:"duration"`
	// APYBP is the annual percentage yield in basis points (300 = 3%)
	APYBP uint64 `json:"apyBP"`
}

// Config contains configuration parameters for the FIA VM.
type Config struct {
	// Governance configuration

	// ProposalThreshold is the minimum balance required to create a proposal
	ProposalThreshold *uint256.Int `json:"proposalThreshold"`
	// VotingPeriod is how long a proposal accepts votes
	VotingPeriod time.Duration `json:"votingPeriod"`
	// ExecutionDelay is the timelock between the end of voting and execution
	ExecutionDelay time.Duration `json:"executionDelay"`
	// QuorumPercentage is the share of total supply that must participate
	QuorumPercentage uint64 `json:"quorumPercentage"`
	// MaxTotalFeeBP caps the transfer fee governance may set
	MaxTotalFeeBP uint64 `json:"maxTotalFeeBP"`

	// Staking configuration
	LockPeriods        []LockPeriod `json:"lockPeriods"`
	EarlyExitPenaltyBP uint64       `json:"earlyExitPenaltyBP"`

	// Transfer configuration
	MaxBatchSize int `json:"maxBatchSize"`

	// Multisig configuration
	MaxOwners int `json:"maxOwners"`

	// API configuration
	MaxEventsPerRequest  int `json:"maxEventsPerRequest"`
	MaxHoldersPerRequest int `json:"maxHoldersPerRequest"`
	// TxCacheSize is how many recent transaction results are kept
	TxCacheSize int `json:"txCacheSize"`
}

// DefaultConfig returns the default configuration for the FIA VM.
func DefaultConfig() Config {
	return Config{
		ProposalThreshold: units.Tokens(10_000),
		VotingPeriod:      3 * 24 * time.Hour,
		ExecutionDelay:    2 * 24 * time.Hour,
		QuorumPercentage:  10,
		MaxTotalFeeBP:     500, // 5%

		LockPeriods: []LockPeriod{
			{Duration: 30 * 24 * time.Hour, APYBP: 300},
			{Duration: 90 * 24 * time.Hour, APYBP: 500},
			{Duration: 180 * 24 * time.Hour, APYBP: 700},
			{Duration: 365 * 24 * time.Hour, APYBP: 900},
		},
		EarlyExitPenaltyBP: 1000, // 10%

		MaxBatchSize: 200,
		MaxOwners:    50,

		MaxEventsPerRequest:  1024,
		MaxHoldersPerRequest: 100,
		TxCacheSize:          4096,
	}
}

// Parse overlays the JSON encoded configuration in b onto the defaults.
func Parse(b []byte) (Config, error) {
	cfg := DefaultConfig()
	if len(b) == 0 {
		return cfg, nil
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, cfg.Verify()
}

// Verify checks the configuration for internal consistency.
func (c Config) Verify() error {
	switch {
	case c.QuorumPercentage == 0 || c.QuorumPercentage > 100:
		return ErrInvalidQuorum
	case c.MaxTotalFeeBP > units.BasisPoints:
		return ErrInvalidMaxFee
	case c.EarlyExitPenaltyBP > units.BasisPoints:
		return ErrInvalidPenalty
	case c.MaxBatchSize <= 0:
		return ErrInvalidBatchSize
	case c.MaxOwners <= 0:
		return ErrInvalidOwnerLimit
	case c.VotingPeriod <= 0:
		return ErrInvalidVotingWindow
	case c.ProposalThreshold == nil:
		return ErrMissingThreshold
	case c.TxCacheSize <= 0:
		return ErrInvalidCacheSize
	}

	seen := make(map[time.Duration]struct{}, len(c.LockPeriods))
	for _, p := range c.LockPeriods {
		if p.Duration < time.Second {
			return fmt.Errorf("%w: duration %s", ErrInvalidLockPeriods, p.Duration)
		}
		if _, ok := seen[p.Duration]; ok {
			return fmt.Errorf("%w: duplicate duration %s", ErrInvalidLockPeriods, p.Duration)
		}
		seen[p.Duration] = struct{}{}
	}
	return nil
}

// APY returns the annual yield in basis points for a lock duration.
func (c Config) APY(lock time.Duration) (uint64, bool) {
	for _, p := range c.LockPeriods {
		if p.Duration == lock {
			return p.APYBP, true
		}
	}
	return 0, false
}

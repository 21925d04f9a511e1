// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/luxfi/ids"
	"github.com/spf13/pflag"

	"github.com/luxfi/fia/utils/units"
	"github.com/luxfi/fia/vms/fiavm/genesis"
)

const (
	OwnerKey      = "owner"
	TreasuryKey   = "treasury"
	FounderKey    = "founder"
	AllocationKey = "allocation"
	RewardPoolKey = "reward-pool"
	TimestampKey  = "timestamp"
	OutputKey     = "output"
)

var errInvalidAllocation = errors.New("allocation must be formatted as address=tokens")

func AddFlags(flags *pflag.FlagSet) {
	flags.String(OwnerKey, "", "Address that owns the token (required)")
	flags.String(TreasuryKey, "", "Address that receives the treasury fee share (required)")
	flags.String(FounderKey, "", "Address that receives the founder fee share (required)")
	flags.StringSlice(AllocationKey, nil, "Initial balances as address=tokens, in whole FIA")
	flags.Uint64(RewardPoolKey, 0, "Initial reward pool, in whole FIA")
	flags.Uint64(TimestampKey, 0, "Genesis unix timestamp")
	flags.String(OutputKey, "", "File to write the genesis to, stdout if empty")
}

type Config struct {
	Genesis *genesis.Genesis
	Output  string
}

func ParseFlags(flags *pflag.FlagSet, args []string) (*Config, error) {
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	owner, err := getAddress(flags, OwnerKey)
	if err != nil {
		return nil, err
	}
	treasury, err := getAddress(flags, TreasuryKey)
	if err != nil {
		return nil, err
	}
	founder, err := getAddress(flags, FounderKey)
	if err != nil {
		return nil, err
	}
	g := genesis.Default(owner, treasury, founder)

	allocations, err := flags.GetStringSlice(AllocationKey)
	if err != nil {
		return nil, err
	}
	for _, allocation := range allocations {
		addrStr, tokensStr, ok := strings.Cut(allocation, "=")
		if !ok {
			return nil, fmt.Errorf("%w: %q", errInvalidAllocation, allocation)
		}
		addr, err := ids.ShortFromString(addrStr)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errInvalidAllocation, err)
		}
		tokens, err := strconv.ParseUint(tokensStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errInvalidAllocation, err)
		}
		g.Allocations = append(g.Allocations, genesis.Allocation{
			Address: addr,
			Amount:  units.Tokens(tokens),
		})
	}

	rewardPool, err := flags.GetUint64(RewardPoolKey)
	if err != nil {
		return nil, err
	}
	if rewardPool > 0 {
		g.RewardPool = units.Tokens(rewardPool)
	}

	g.Timestamp, err = flags.GetUint64(TimestampKey)
	if err != nil {
		return nil, err
	}

	output, err := flags.GetString(OutputKey)
	if err != nil {
		return nil, err
	}
	return &Config{
		Genesis: g,
		Output:  output,
	}, g.Verify()
}

func getAddress(flags *pflag.FlagSet, key string) (ids.ShortID, error) {
	addrStr, err := flags.GetString(key)
	if err != nil {
		return ids.ShortEmpty, err
	}
	if addrStr == "" {
		return ids.ShortEmpty, fmt.Errorf("--%s is required", key)
	}
	return ids.ShortFromString(addrStr)
}

// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/fia/utils/units"
	"github.com/luxfi/fia/vms/fiavm/fee"
	"github.com/luxfi/fia/vms/fiavm/ledger"
	"github.com/luxfi/fia/vms/fiavm/state"
)

func TestApply(t *testing.T) {
	require := require.New(t)

	owner := ids.GenerateTestShortID()
	alice := ids.GenerateTestShortID()
	walletOwner := ids.GenerateTestShortID()
	wallet := ids.GenerateTestShortID()

	g := Default(owner, ids.GenerateTestShortID(), ids.GenerateTestShortID())
	g.Timestamp = 1_700_000_000
	g.Allocations = []Allocation{
		{Address: alice, Amount: units.Tokens(1_000)},
		{Address: owner, Amount: units.Tokens(500)},
	}
	g.RewardPool = units.Tokens(100)
	g.FeeExempt = []ids.ShortID{owner}
	g.Wallets = []Wallet{{
		Address:  wallet,
		Owners:   []ids.ShortID{walletOwner},
		Required: 1,
	}}

	b, err := g.Bytes()
	require.NoError(err)
	parsed, err := Parse(b)
	require.NoError(err)

	s := state.New(memdb.New())
	require.NoError(parsed.Apply(s, 10))

	initialized, err := s.IsInitialized()
	require.NoError(err)
	require.True(initialized)

	supply, err := s.TotalSupply()
	require.NoError(err)
	require.Equal(units.Tokens(1_600), supply)

	pool, err := s.Balance(ledger.RewardPoolAddress)
	require.NoError(err)
	require.Equal(units.Tokens(100), pool)

	exempt, err := s.IsFeeExempt(owner)
	require.NoError(err)
	require.True(exempt)

	cfg, err := s.FeeConfig()
	require.NoError(err)
	require.Equal(uint64(100), cfg.TotalFeeBP)

	limits, err := s.TxLimits()
	require.NoError(err)
	require.False(limits.LimitsActive)
	require.Equal(uint64(30), limits.TxCooldown)

	stats, err := s.TokenStats()
	require.NoError(err)
	require.Equal(uint64(2), stats.UniqueHolders)

	w, err := s.Wallet(wallet)
	require.NoError(err)
	require.Equal([]ids.ShortID{walletOwner}, w.Owners)

	timestamp, err := s.Timestamp()
	require.NoError(err)
	require.Equal(uint64(1_700_000_000), timestamp)
}

func TestVerify(t *testing.T) {
	owner := ids.GenerateTestShortID()
	treasury := ids.GenerateTestShortID()
	founder := ids.GenerateTestShortID()
	alice := ids.GenerateTestShortID()

	tests := []struct {
		name    string
		modify  func(*Genesis)
		wantErr error
	}{
		{
			name:   "default",
			modify: func(*Genesis) {},
		},
		{
			name:    "missing owner",
			modify:  func(g *Genesis) { g.Owner = ids.ShortEmpty },
			wantErr: ErrMissingOwner,
		},
		{
			name:    "missing treasury",
			modify:  func(g *Genesis) { g.Treasury = ids.ShortEmpty },
			wantErr: ErrMissingTreasury,
		},
		{
			name:    "missing founder",
			modify:  func(g *Genesis) { g.Founder = ids.ShortEmpty },
			wantErr: ErrMissingFounder,
		},
		{
			name: "fee shares do not add up",
			modify: func(g *Genesis) {
				g.Fees = &state.FeeConfig{TotalFeeBP: 100, TreasuryBP: 10}
			},
			wantErr: fee.ErrInvalidFeeConfig,
		},
		{
			name: "allocation to reserved address",
			modify: func(g *Genesis) {
				g.Allocations = []Allocation{{Address: ledger.StakingAddress, Amount: uint256.NewInt(1)}}
			},
			wantErr: ErrInvalidAllocation,
		},
		{
			name: "empty allocation",
			modify: func(g *Genesis) {
				g.Allocations = []Allocation{{Address: alice}}
			},
			wantErr: ErrInvalidAllocation,
		},
		{
			name: "duplicate allocation",
			modify: func(g *Genesis) {
				g.Allocations = []Allocation{
					{Address: alice, Amount: uint256.NewInt(1)},
					{Address: alice, Amount: uint256.NewInt(2)},
				}
			},
			wantErr: ErrDuplicateAllocation,
		},
		{
			name: "wallet at reserved address",
			modify: func(g *Genesis) {
				g.Wallets = []Wallet{{Address: ledger.TokenAddress, Owners: []ids.ShortID{alice}, Required: 1}}
			},
			wantErr: ErrInvalidWallet,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Default(owner, treasury, founder)
			tt.modify(g)
			require.ErrorIs(t, g.Verify(), tt.wantErr)
		})
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	_, err := Parse([]byte("{"))
	require.Error(t, err)
}

// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/database/versiondb"
	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"
)

func TestBalances(t *testing.T) {
	require := require.New(t)

	s := New(memdb.New())
	addrA := ids.GenerateTestShortID()
	addrB := ids.GenerateTestShortID()

	balance, err := s.Balance(addrA)
	require.NoError(err)
	require.True(balance.IsZero())

	require.NoError(s.SetBalance(addrA, uint256.NewInt(100)))
	require.NoError(s.SetBalance(addrB, uint256.NewInt(7)))

	balance, err = s.Balance(addrA)
	require.NoError(err)
	require.Equal(uint64(100), balance.Uint64())

	seen := map[ids.ShortID]uint64{}
	require.NoError(s.IterateBalances(func(addr ids.ShortID, balance *uint256.Int) error {
		seen[addr] = balance.Uint64()
		return nil
	}))
	require.Equal(map[ids.ShortID]uint64{addrA: 100, addrB: 7}, seen)

	// A zero balance is removed from the store.
	require.NoError(s.SetBalance(addrB, new(uint256.Int)))
	seen = map[ids.ShortID]uint64{}
	require.NoError(s.IterateBalances(func(addr ids.ShortID, balance *uint256.Int) error {
		seen[addr] = balance.Uint64()
		return nil
	}))
	require.Len(seen, 1)
}

func TestTouchedAccounts(t *testing.T) {
	require := require.New(t)

	s := New(memdb.New())
	require.Zero(s.Touched().Len())

	addrA := ids.GenerateTestShortID()
	addrB := ids.GenerateTestShortID()
	require.NoError(s.SetBalance(addrA, uint256.NewInt(1)))
	require.NoError(s.SetBalance(addrB, new(uint256.Int)))
	require.NoError(s.SetBalance(addrA, uint256.NewInt(2)))

	touched := s.Touched()
	require.Equal(2, touched.Len())
	require.True(touched.Contains(addrA))
	require.True(touched.Contains(addrB))
}

func TestFlags(t *testing.T) {
	require := require.New(t)

	s := New(memdb.New())
	addr := ids.GenerateTestShortID()

	initialized, err := s.IsInitialized()
	require.NoError(err)
	require.False(initialized)
	require.NoError(s.SetInitialized())
	initialized, err = s.IsInitialized()
	require.NoError(err)
	require.True(initialized)

	require.NoError(s.SetFeeExempt(addr, true))
	exempt, err := s.IsFeeExempt(addr)
	require.NoError(err)
	require.True(exempt)
	require.NoError(s.SetFeeExempt(addr, false))
	exempt, err = s.IsFeeExempt(addr)
	require.NoError(err)
	require.False(exempt)

	used, err := s.IsNonceUsed(addr, 7)
	require.NoError(err)
	require.False(used)
	require.NoError(s.MarkNonceUsed(addr, 7))
	used, err = s.IsNonceUsed(addr, 7)
	require.NoError(err)
	require.True(used)
}

func TestStakeArena(t *testing.T) {
	require := require.New(t)

	s := New(memdb.New())
	addr := ids.GenerateTestShortID()

	for i := uint64(0); i < 3; i++ {
		index, err := s.AppendStake(addr, &StakeRecord{
			Amount:     *uint256.NewInt(10 * (i + 1)),
			LockPeriod: 30,
			StartTime:  1000,
			Active:     true,
		})
		require.NoError(err)
		require.Equal(i, index)
	}

	stake, err := s.Stake(addr, 1)
	require.NoError(err)
	require.Equal(uint64(20), stake.Amount.Uint64())
	require.Equal(uint64(1030), stake.UnlockTime())

	_, err = s.Stake(addr, 3)
	require.ErrorIs(err, ErrStakeNotFound)

	count, err := s.StakeCount(addr)
	require.NoError(err)
	require.Equal(uint64(3), count)
}

func TestProposalRoundTripKeepsAction(t *testing.T) {
	require := require.New(t)

	s := New(memdb.New())
	to := ids.GenerateTestShortID()

	actions := []Action{
		&FeeChange{TotalFeeBP: 300},
		&TreasurySpend{To: to, Amount: *uint256.NewInt(5)},
		&ParameterChange{Key: TxCooldown, Value: *uint256.NewInt(120)},
	}
	for i, action := range actions {
		require.NoError(s.PutProposal(&Proposal{
			ID:          uint64(i + 1),
			Description: "proposal",
			Action:      action,
			VotingEnd:   10,
		}))
	}

	for i, action := range actions {
		p, err := s.Proposal(uint64(i + 1))
		require.NoError(err)
		require.Equal(action, p.Action)
		require.Equal(action.Kind(), p.Action.Kind())
	}

	_, err := s.Proposal(42)
	require.ErrorIs(err, ErrProposalNotFound)
}

func TestVersionDBAbortDiscardsWrites(t *testing.T) {
	require := require.New(t)

	base := memdb.New()
	addr := ids.GenerateTestShortID()
	require.NoError(New(base).SetBalance(addr, uint256.NewInt(1)))

	vdb := versiondb.New(base)
	require.NoError(New(vdb).SetBalance(addr, uint256.NewInt(99)))
	require.NoError(New(vdb).MarkNonceUsed(addr, 7))
	vdb.Abort()

	balance, err := New(base).Balance(addr)
	require.NoError(err)
	require.Equal(uint64(1), balance.Uint64())

	used, err := New(base).IsNonceUsed(addr, 7)
	require.NoError(err)
	require.False(used)
}

func TestParseParameter(t *testing.T) {
	require := require.New(t)

	p, err := ParseParameter("LimitsActive")
	require.NoError(err)
	require.Equal(LimitsActive, p)
	require.True(p.Valid())

	_, err = ParseParameter("MaxSupply")
	require.ErrorIs(err, ErrUnknownParameter)
	require.False(Parameter(0).Valid())
}

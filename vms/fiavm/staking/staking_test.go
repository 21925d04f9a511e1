// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package staking

import (
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/fia/utils/units"
	"github.com/luxfi/fia/vms/fiavm/config"
	"github.com/luxfi/fia/vms/fiavm/events"
	"github.com/luxfi/fia/vms/fiavm/ledger"
	"github.com/luxfi/fia/vms/fiavm/state"
)

const (
	day   = uint64(24 * 60 * 60)
	start = uint64(1_700_000_000)
)

type environment struct {
	state  *state.State
	events *events.Buffer
	owner  ids.ShortID
}

func newEnvironment(t *testing.T) *environment {
	env := &environment{
		state:  state.New(memdb.New()),
		events: &events.Buffer{},
		owner:  ids.GenerateTestShortID(),
	}
	require.NoError(t, env.state.SetAdmin(&state.Admin{Owner: env.owner}))
	return env
}

func (env *environment) ledger(unix uint64) *ledger.Ledger {
	return ledger.New(env.state, env.events, ledger.Block{Height: unix, Time: time.Unix(int64(unix), 0)})
}

func (env *environment) engine(unix uint64) *Engine {
	return New(env.ledger(unix), config.DefaultConfig())
}

func (env *environment) fund(t *testing.T, addr ids.ShortID, amount *uint256.Int) {
	require.NoError(t, env.ledger(start).MintTo(addr, amount))
}

func (env *environment) balance(t *testing.T, addr ids.ShortID) *uint256.Int {
	balance, err := env.state.Balance(addr)
	require.NoError(t, err)
	return balance
}

func (env *environment) requireConserved(t *testing.T) {
	supply, err := env.state.TotalSupply()
	require.NoError(t, err)
	sum := new(uint256.Int)
	require.NoError(t, env.state.IterateBalances(func(_ ids.ShortID, balance *uint256.Int) error {
		sum.Add(sum, balance)
		return nil
	}))
	require.Equal(t, supply, sum)
}

// expectedReward mirrors the reward formula with big integers.
func expectedReward(principal *uint256.Int, apy, elapsed uint64) *uint256.Int {
	num := new(uint256.Int).Mul(principal, uint256.NewInt(apy))
	num.Mul(num, uint256.NewInt(elapsed))
	return num.Div(num, uint256.NewInt(units.BasisPoints*SecondsPerYear))
}

func TestStakeRewardsAndLock(t *testing.T) {
	require := require.New(t)

	env := newEnvironment(t)
	alice := ids.GenerateTestShortID()
	env.fund(t, alice, units.Tokens(1000))
	env.fund(t, ledger.RewardPoolAddress, units.Tokens(1000))

	index, err := env.engine(start).Stake(alice, units.Tokens(100), 90*day, false)
	require.NoError(err)
	require.Zero(index)
	require.Equal(units.Tokens(900), env.balance(t, alice))
	require.Equal(units.Tokens(100), env.balance(t, ledger.StakingAddress))

	err = env.engine(start+90*day-1).Unstake(alice, index)
	require.ErrorIs(err, ErrLockNotFinished)

	rewards, err := env.engine(start+90*day).CalculateRewards(alice, index)
	require.NoError(err)
	require.Equal(expectedReward(units.Tokens(100), 500, 90*day), rewards)
	require.Equal("1232876712328767123", rewards.Dec())

	require.NoError(env.engine(start+90*day).Unstake(alice, index))
	require.Equal(units.Tokens(1000), env.balance(t, alice))

	stakes, err := env.engine(start + 90*day).UserStakes(alice)
	require.NoError(err)
	require.Len(stakes, 1)
	require.False(stakes[0].Active)
	require.True(stakes[0].Amount.IsZero())

	// The record stays addressable after closing.
	rewards, err = env.engine(start+100*day).CalculateRewards(alice, index)
	require.NoError(err)
	require.True(rewards.IsZero())
	err = env.engine(start+100*day).Unstake(alice, index)
	require.ErrorIs(err, ErrNoActiveStake)

	env.requireConserved(t)
}

func TestStakeValidation(t *testing.T) {
	env := newEnvironment(t)
	alice := ids.GenerateTestShortID()
	env.fund(t, alice, units.Tokens(10))

	tests := []struct {
		name        string
		amount      *uint256.Int
		lock        uint64
		expectedErr error
	}{
		{name: "zero", amount: new(uint256.Int), lock: 30 * day, expectedErr: ledger.ErrZeroAmount},
		{name: "unknown lock", amount: units.Tokens(1), lock: 45 * day, expectedErr: ErrInvalidLockPeriod},
		{name: "huge lock", amount: units.Tokens(1), lock: ^uint64(0), expectedErr: ErrInvalidLockPeriod},
		{name: "insufficient", amount: units.Tokens(11), lock: 30 * day, expectedErr: ledger.ErrInsufficientBalance},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := env.engine(start).Stake(alice, test.amount, test.lock, false)
			require.ErrorIs(t, err, test.expectedErr)
		})
	}
}

func TestAPYTable(t *testing.T) {
	require := require.New(t)

	e := newEnvironment(t).engine(start)
	for lock, apy := range map[uint64]uint64{30 * day: 300, 90 * day: 500, 180 * day: 700, 365 * day: 900} {
		got, err := e.APY(lock)
		require.NoError(err)
		require.Equal(apy, got)
	}
}

func TestClaimClampsToPool(t *testing.T) {
	require := require.New(t)

	env := newEnvironment(t)
	alice := ids.GenerateTestShortID()
	env.fund(t, alice, units.Tokens(1_000_000))
	env.fund(t, ledger.RewardPoolAddress, units.Tokens(5))

	index, err := env.engine(start).Stake(alice, units.Tokens(1_000_000), 365*day, false)
	require.NoError(err)

	payout, err := env.engine(start+30*day).ClaimRewards(alice, index)
	require.NoError(err)
	require.Equal(units.Tokens(5), payout)
	require.True(env.balance(t, ledger.RewardPoolAddress).IsZero())

	// The unpaid remainder is forfeited: accrual restarts at the claim.
	rewards, err := env.engine(start+30*day).CalculateRewards(alice, index)
	require.NoError(err)
	require.True(rewards.IsZero())

	payout, err = env.engine(start+31*day).ClaimRewards(alice, index)
	require.NoError(err)
	require.True(payout.IsZero())

	env.requireConserved(t)
}

func TestAutoCompound(t *testing.T) {
	require := require.New(t)

	env := newEnvironment(t)
	alice := ids.GenerateTestShortID()
	env.fund(t, alice, units.Tokens(1000))
	env.fund(t, ledger.RewardPoolAddress, units.Tokens(1000))

	index, err := env.engine(start).Stake(alice, units.Tokens(1000), 365*day, true)
	require.NoError(err)

	payout, err := env.engine(start+365*day).ClaimRewards(alice, index)
	require.NoError(err)
	require.Equal(units.Tokens(90), payout)
	require.True(env.balance(t, alice).IsZero())

	stake, err := env.state.Stake(alice, index)
	require.NoError(err)
	require.Equal(units.Tokens(1090), &stake.Amount)
	require.Equal(units.Tokens(1090), env.balance(t, ledger.StakingAddress))

	require.NoError(env.engine(start+365*day).Unstake(alice, index))
	require.Equal(units.Tokens(1090), env.balance(t, alice))
	env.requireConserved(t)
}

func TestClaimUnknownStake(t *testing.T) {
	require := require.New(t)

	env := newEnvironment(t)
	_, err := env.engine(start).ClaimRewards(ids.GenerateTestShortID(), 0)
	require.ErrorIs(err, ErrInvalidStakeIndex)
}

func TestEmergencyUnstake(t *testing.T) {
	require := require.New(t)

	env := newEnvironment(t)
	alice := ids.GenerateTestShortID()
	env.fund(t, alice, units.Tokens(100))

	index, err := env.engine(start).Stake(alice, units.Tokens(100), 180*day, false)
	require.NoError(err)

	e := env.engine(start + day)
	require.ErrorIs(e.EmergencyUnstake(alice, index), ErrEmergencyDisabled)
	require.ErrorIs(e.SetEmergencyWithdraw(alice, true), ledger.ErrNotOwner)
	require.NoError(e.SetEmergencyWithdraw(env.owner, true))

	// Emergency exits still work while the token is paused.
	require.NoError(env.ledger(start).Pause(env.owner))
	require.NoError(e.EmergencyUnstake(alice, index))

	require.Equal(units.Tokens(90), env.balance(t, alice))
	require.Equal(units.Tokens(10), env.balance(t, ledger.RewardPoolAddress))
	require.ErrorIs(e.EmergencyUnstake(alice, index), ErrNoActiveStake)
	env.requireConserved(t)
}

func TestRewardPoolFunding(t *testing.T) {
	require := require.New(t)

	env := newEnvironment(t)
	alice := ids.GenerateTestShortID()
	env.fund(t, alice, units.Tokens(10))

	e := env.engine(start)
	require.ErrorIs(e.AddToRewardPool(alice, new(uint256.Int)), ledger.ErrZeroAmount)
	require.NoError(e.AddToRewardPool(alice, units.Tokens(4)))

	pool, err := e.RewardPool()
	require.NoError(err)
	require.Equal(units.Tokens(4), pool)

	evs := env.events.Events()
	require.Equal(&events.RewardPoolFunded{Funder: alice, Amount: *units.Tokens(4)}, evs[len(evs)-1])
}

func TestStakingPaused(t *testing.T) {
	require := require.New(t)

	env := newEnvironment(t)
	alice := ids.GenerateTestShortID()
	env.fund(t, alice, units.Tokens(10))
	require.NoError(env.ledger(start).Pause(env.owner))

	_, err := env.engine(start).Stake(alice, units.Tokens(1), 30*day, false)
	require.ErrorIs(err, ledger.ErrPaused)
}

// Balances and records never go negative across repeated claims by stakers
// on different lock periods draining a small pool.
func TestRewardPoolNeverNegative(t *testing.T) {
	require := require.New(t)

	env := newEnvironment(t)
	stakers := []ids.ShortID{ids.GenerateTestShortID(), ids.GenerateTestShortID(), ids.GenerateTestShortID()}
	for _, s := range stakers {
		env.fund(t, s, units.Tokens(50_000))
	}
	env.fund(t, ledger.RewardPoolAddress, units.Tokens(100))

	lockDays := []uint64{30, 90, 180}
	for i, s := range stakers {
		_, err := env.engine(start).Stake(s, units.Tokens(50_000), lockDays[i]*day, i == 1)
		require.NoError(err)
	}

	for d := uint64(1); d <= 60; d += 7 {
		for _, s := range stakers {
			_, err := env.engine(start+d*day).ClaimRewards(s, 0)
			require.NoError(err)
		}
	}

	pool := env.balance(t, ledger.RewardPoolAddress)
	require.True(pool.Sign() >= 0)
	require.True(pool.Lt(units.Tokens(100)))
	env.requireConserved(t)
}

// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package staking implements time-locked FIA staking with per lock period
// yields and optional auto-compounding.
//
// Staked principal is held by ledger.StakingAddress and rewards are paid from
// ledger.RewardPoolAddress, so neither ever leaves the circulating supply.
package staking

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/holiman/uint256"
	"github.com/luxfi/ids"

	"github.com/luxfi/fia/utils/units"
	"github.com/luxfi/fia/vms/fiavm/config"
	"github.com/luxfi/fia/vms/fiavm/events"
	"github.com/luxfi/fia/vms/fiavm/ledger"
	"github.com/luxfi/fia/vms/fiavm/state"
)

// SecondsPerYear is the length of the reward accrual year.
const SecondsPerYear = 365 * 24 * 60 * 60

var (
	ErrInvalidLockPeriod = errors.New("invalid lock period")
	ErrInvalidStakeIndex = errors.New("invalid stake index")
	ErrNoActiveStake     = errors.New("no active stake")
	ErrLockNotFinished   = errors.New("lock period not finished")
	ErrEmergencyDisabled = errors.New("emergency withdraw is not enabled")

	rewardDenominator = uint256.NewInt(units.BasisPoints * SecondsPerYear)
)

type Engine struct {
	ledger *ledger.Ledger
	config config.Config
}

func New(l *ledger.Ledger, cfg config.Config) *Engine {
	return &Engine{
		ledger: l,
		config: cfg,
	}
}

// APY returns the yield in basis points of a lock period given in seconds.
func (e *Engine) APY(lockPeriod uint64) (uint64, error) {
	if lockPeriod > math.MaxInt64/uint64(time.Second) {
		return 0, fmt.Errorf("%w: %ds", ErrInvalidLockPeriod, lockPeriod)
	}
	apy, ok := e.config.APY(time.Duration(lockPeriod) * time.Second)
	if !ok {
		return 0, fmt.Errorf("%w: %ds", ErrInvalidLockPeriod, lockPeriod)
	}
	return apy, nil
}

// Stake locks amount of the user's tokens for lockPeriod seconds and returns
// the index of the new stake.
func (e *Engine) Stake(user ids.ShortID, amount *uint256.Int, lockPeriod uint64, autoCompound bool) (uint64, error) {
	if err := e.ledger.RequireNotPaused(); err != nil {
		return 0, err
	}
	if amount.IsZero() {
		return 0, ledger.ErrZeroAmount
	}
	if _, err := e.APY(lockPeriod); err != nil {
		return 0, err
	}
	if err := e.ledger.Move(user, ledger.StakingAddress, amount); err != nil {
		return 0, err
	}

	now := e.ledger.Block().Unix()
	index, err := e.ledger.State().AppendStake(user, &state.StakeRecord{
		Amount:        *amount,
		LockPeriod:    lockPeriod,
		StartTime:     now,
		AutoCompound:  autoCompound,
		LastClaimTime: now,
		Active:        true,
	})
	if err != nil {
		return 0, err
	}

	e.ledger.Sink().Emit(&events.Staked{
		User:         user,
		Index:        index,
		Amount:       *amount,
		LockPeriod:   lockPeriod,
		AutoCompound: autoCompound,
		StakeCount:   index + 1,
	})
	return index, nil
}

// CalculateRewards returns the rewards accrued by a stake since its last
// claim. Inactive and unknown stakes accrue nothing.
func (e *Engine) CalculateRewards(user ids.ShortID, index uint64) (*uint256.Int, error) {
	stake, err := e.ledger.State().Stake(user, index)
	if errors.Is(err, state.ErrStakeNotFound) {
		return new(uint256.Int), nil
	}
	if err != nil {
		return nil, err
	}
	return e.accrued(stake), nil
}

// accrued is principal*apy*elapsed / (10000*SecondsPerYear), floored once.
func (e *Engine) accrued(stake *state.StakeRecord) *uint256.Int {
	now := e.ledger.Block().Unix()
	if !stake.Active || now <= stake.LastClaimTime {
		return new(uint256.Int)
	}
	apy, err := e.APY(stake.LockPeriod)
	if err != nil {
		// The lock period was valid when staked. A config change that drops
		// it stops further accrual.
		return new(uint256.Int)
	}

	rate := new(uint256.Int).Mul(uint256.NewInt(apy), uint256.NewInt(now-stake.LastClaimTime))
	reward, overflow := new(uint256.Int).MulDivOverflow(&stake.Amount, rate, rewardDenominator)
	if overflow {
		return new(uint256.Int).SetAllOne()
	}
	return reward
}

// ClaimRewards pays out the accrued rewards of a stake, limited to what the
// reward pool holds. Whatever the pool cannot cover is forfeited. Auto
// compounding stakes add the payout to their principal.
func (e *Engine) ClaimRewards(user ids.ShortID, index uint64) (*uint256.Int, error) {
	if err := e.ledger.RequireNotPaused(); err != nil {
		return nil, err
	}
	stake, err := e.activeStake(user, index)
	if err != nil {
		return nil, err
	}

	payout := e.accrued(stake)
	pool, err := e.ledger.Balance(ledger.RewardPoolAddress)
	if err != nil {
		return nil, err
	}
	if payout.Gt(pool) {
		payout = pool
	}

	if !payout.IsZero() {
		if stake.AutoCompound {
			if err := e.ledger.Move(ledger.RewardPoolAddress, ledger.StakingAddress, payout); err != nil {
				return nil, err
			}
			stake.Amount.Add(&stake.Amount, payout)
		} else if err := e.ledger.Move(ledger.RewardPoolAddress, user, payout); err != nil {
			return nil, err
		}
	}
	stake.LastClaimTime = e.ledger.Block().Unix()
	if err := e.ledger.State().PutStake(user, index, stake); err != nil {
		return nil, err
	}

	e.ledger.Sink().Emit(&events.RewardsClaimed{
		User:       user,
		Index:      index,
		Amount:     *payout,
		Compounded: stake.AutoCompound,
	})
	return payout, nil
}

// Unstake returns the principal of a stake whose lock has elapsed. Unclaimed
// rewards are not paid.
func (e *Engine) Unstake(user ids.ShortID, index uint64) error {
	if err := e.ledger.RequireNotPaused(); err != nil {
		return err
	}
	stake, err := e.activeStake(user, index)
	if err != nil {
		return err
	}
	if now := e.ledger.Block().Unix(); now < stake.UnlockTime() {
		return fmt.Errorf("%w: unlocks at %d, now %d", ErrLockNotFinished, stake.UnlockTime(), now)
	}

	amount := stake.Amount
	if err := e.close(user, index, stake); err != nil {
		return err
	}
	if err := e.ledger.Move(ledger.StakingAddress, user, &amount); err != nil {
		return err
	}
	e.ledger.Sink().Emit(&events.Unstaked{User: user, Index: index, Amount: amount})
	return nil
}

// EmergencyUnstake exits a stake before its lock elapses while the owner has
// enabled emergency withdrawals. The early exit penalty is paid into the
// reward pool and unclaimed rewards are forfeited. It is available while the
// token is paused.
func (e *Engine) EmergencyUnstake(user ids.ShortID, index uint64) error {
	admin, err := e.ledger.State().Admin()
	if err != nil {
		return err
	}
	if !admin.EmergencyWithdraw {
		return ErrEmergencyDisabled
	}
	stake, err := e.activeStake(user, index)
	if err != nil {
		return err
	}

	amount := stake.Amount
	penalty := new(uint256.Int)
	if e.ledger.Block().Unix() < stake.UnlockTime() {
		penalty.MulDivOverflow(&amount, uint256.NewInt(e.config.EarlyExitPenaltyBP), uint256.NewInt(units.BasisPoints))
	}
	returned := new(uint256.Int).Sub(&amount, penalty)

	if err := e.close(user, index, stake); err != nil {
		return err
	}
	if !penalty.IsZero() {
		if err := e.ledger.Move(ledger.StakingAddress, ledger.RewardPoolAddress, penalty); err != nil {
			return err
		}
	}
	if !returned.IsZero() {
		if err := e.ledger.Move(ledger.StakingAddress, user, returned); err != nil {
			return err
		}
	}
	e.ledger.Sink().Emit(&events.EmergencyUnstaked{
		User:    user,
		Index:   index,
		Amount:  *returned,
		Penalty: *penalty,
	})
	return nil
}

// SetEmergencyWithdraw toggles emergency withdrawals.
func (e *Engine) SetEmergencyWithdraw(caller ids.ShortID, enabled bool) error {
	if err := e.ledger.RequireOwner(caller); err != nil {
		return err
	}
	s := e.ledger.State()
	admin, err := s.Admin()
	if err != nil {
		return err
	}
	admin.EmergencyWithdraw = enabled
	if err := s.SetAdmin(admin); err != nil {
		return err
	}
	e.ledger.Sink().Emit(&events.EmergencyWithdrawChanged{Enabled: enabled})
	return nil
}

// AddToRewardPool moves amount of the funder's tokens into the reward pool.
func (e *Engine) AddToRewardPool(funder ids.ShortID, amount *uint256.Int) error {
	if err := e.ledger.RequireNotPaused(); err != nil {
		return err
	}
	if amount.IsZero() {
		return ledger.ErrZeroAmount
	}
	if err := e.ledger.Move(funder, ledger.RewardPoolAddress, amount); err != nil {
		return err
	}
	e.ledger.Sink().Emit(&events.RewardPoolFunded{Funder: funder, Amount: *amount})
	return nil
}

// RewardPool returns the balance available for reward payouts.
func (e *Engine) RewardPool() (*uint256.Int, error) {
	return e.ledger.Balance(ledger.RewardPoolAddress)
}

// UserStakes returns every stake record of user, including closed ones.
func (e *Engine) UserStakes(user ids.ShortID) ([]*state.StakeRecord, error) {
	s := e.ledger.State()
	count, err := s.StakeCount(user)
	if err != nil {
		return nil, err
	}
	stakes := make([]*state.StakeRecord, 0, count)
	for i := uint64(0); i < count; i++ {
		stake, err := s.Stake(user, i)
		if err != nil {
			return nil, err
		}
		stakes = append(stakes, stake)
	}
	return stakes, nil
}

func (e *Engine) activeStake(user ids.ShortID, index uint64) (*state.StakeRecord, error) {
	stake, err := e.ledger.State().Stake(user, index)
	if errors.Is(err, state.ErrStakeNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStakeIndex, index)
	}
	if err != nil {
		return nil, err
	}
	if !stake.Active {
		return nil, fmt.Errorf("%w: %d", ErrNoActiveStake, index)
	}
	return stake, nil
}

func (e *Engine) close(user ids.ShortID, index uint64, stake *state.StakeRecord) error {
	stake.Amount.Clear()
	stake.Active = false
	return e.ledger.State().PutStake(user, index, stake)
}

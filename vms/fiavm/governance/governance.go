// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package governance implements token-weighted proposals over fee, treasury
// and transfer limit changes.
package governance

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/luxfi/ids"

	"github.com/luxfi/fia/vms/fiavm/config"
	"github.com/luxfi/fia/vms/fiavm/events"
	"github.com/luxfi/fia/vms/fiavm/fee"
	"github.com/luxfi/fia/vms/fiavm/ledger"
	"github.com/luxfi/fia/vms/fiavm/state"
)

var (
	ErrInsufficientBalanceToPropose = errors.New("insufficient balance to propose")
	ErrEmptyDescription             = errors.New("empty description")
	ErrInvalidPayload               = errors.New("invalid proposal payload")
	ErrInvalidProposalID            = errors.New("invalid proposal id")
	ErrVotingPeriodEnded            = errors.New("voting period ended")
	ErrAlreadyVoted                 = errors.New("already voted")
	ErrNoVotingPower                = errors.New("no voting power")
	ErrNotAuthorizedToExecute       = errors.New("not authorized to execute")
	ErrExecutionDelayNotElapsed     = errors.New("execution delay not elapsed")
	ErrAlreadyExecuted              = errors.New("proposal already executed")
	ErrQuorumNotMet                 = errors.New("quorum not met")
	ErrProposalRejected             = errors.New("proposal rejected")
	ErrInsufficientTreasuryBalance  = errors.New("insufficient treasury balance")
)

type Engine struct {
	ledger *ledger.Ledger
	fees   *fee.Engine
	config config.Config
}

func New(l *ledger.Ledger, fees *fee.Engine, cfg config.Config) *Engine {
	return &Engine{
		ledger: l,
		fees:   fees,
		config: cfg,
	}
}

// VotingPower is the voter's current balance.
func (e *Engine) VotingPower(addr ids.ShortID) (*uint256.Int, error) {
	return e.ledger.Balance(addr)
}

func (e *Engine) ProposalCount() (uint64, error) {
	return e.ledger.State().ProposalCount()
}

// Proposal returns proposal id.
func (e *Engine) Proposal(id uint64) (*state.Proposal, error) {
	p, err := e.ledger.State().Proposal(id)
	if errors.Is(err, state.ErrProposalNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidProposalID, id)
	}
	return p, err
}

// Propose records a new proposal and returns its id. Ids start at 1.
func (e *Engine) Propose(proposer ids.ShortID, description string, action state.Action) (uint64, error) {
	if description == "" {
		return 0, ErrEmptyDescription
	}
	if err := verifyAction(action); err != nil {
		return 0, err
	}
	power, err := e.VotingPower(proposer)
	if err != nil {
		return 0, err
	}
	if power.Lt(e.config.ProposalThreshold) {
		return 0, fmt.Errorf("%w: holds %s, needs %s", ErrInsufficientBalanceToPropose, power.Dec(), e.config.ProposalThreshold.Dec())
	}

	s := e.ledger.State()
	count, err := s.ProposalCount()
	if err != nil {
		return 0, err
	}
	now := e.ledger.Block().Unix()
	votingEnd := now + uint64(e.config.VotingPeriod.Seconds())
	p := &state.Proposal{
		ID:           count + 1,
		Proposer:     proposer,
		Description:  description,
		Action:       action,
		CreatedAt:    now,
		VotingEnd:    votingEnd,
		ExecutableAt: votingEnd + uint64(e.config.ExecutionDelay.Seconds()),
	}
	if err := s.PutProposal(p); err != nil {
		return 0, err
	}
	if err := s.SetProposalCount(p.ID); err != nil {
		return 0, err
	}

	e.ledger.Sink().Emit(&events.ProposalCreated{
		ID:          p.ID,
		Proposer:    proposer,
		Description: description,
		Action:      action.Kind(),
		VotingEnd:   votingEnd,
	})
	return p.ID, nil
}

// Vote adds the voter's current balance to one side of proposal id.
func (e *Engine) Vote(voter ids.ShortID, id uint64, support bool) error {
	p, err := e.Proposal(id)
	if err != nil {
		return err
	}
	if now := e.ledger.Block().Unix(); now > p.VotingEnd {
		return fmt.Errorf("%w: ended at %d", ErrVotingPeriodEnded, p.VotingEnd)
	}

	s := e.ledger.State()
	voted, err := s.HasVoted(id, voter)
	if err != nil {
		return err
	}
	if voted {
		return ErrAlreadyVoted
	}
	weight, err := e.VotingPower(voter)
	if err != nil {
		return err
	}
	if weight.IsZero() {
		return ErrNoVotingPower
	}

	if support {
		p.ForVotes.Add(&p.ForVotes, weight)
	} else {
		p.AgainstVotes.Add(&p.AgainstVotes, weight)
	}
	if err := s.PutProposal(p); err != nil {
		return err
	}
	if err := s.MarkVoted(id, voter); err != nil {
		return err
	}

	e.ledger.Sink().Emit(&events.VoteCast{
		ID:      id,
		Voter:   voter,
		Support: support,
		Weight:  *weight,
	})
	return nil
}

// Execute applies the action of a passed proposal. Only the owner or the
// configured executor may execute. A failing action leaves the proposal
// unexecuted so it can be retried.
func (e *Engine) Execute(caller ids.ShortID, id uint64) error {
	admin, err := e.ledger.State().Admin()
	if err != nil {
		return err
	}
	if caller != admin.Owner && (admin.Executor == ids.ShortEmpty || caller != admin.Executor) {
		return fmt.Errorf("%w: %s", ErrNotAuthorizedToExecute, caller)
	}

	p, err := e.Proposal(id)
	if err != nil {
		return err
	}
	if p.Executed {
		return ErrAlreadyExecuted
	}
	if now := e.ledger.Block().Unix(); now < p.ExecutableAt {
		return fmt.Errorf("%w: executable at %d, now %d", ErrExecutionDelayNotElapsed, p.ExecutableAt, now)
	}
	if err := e.checkOutcome(p); err != nil {
		return err
	}

	if err := e.apply(admin, p.Action); err != nil {
		return fmt.Errorf("failed to execute proposal %d: %w", id, err)
	}

	p.Executed = true
	if err := e.ledger.State().PutProposal(p); err != nil {
		return err
	}
	e.ledger.Sink().Emit(&events.ProposalExecuted{ID: id, Action: p.Action.Kind()})
	return nil
}

// checkOutcome verifies quorum against the current supply and that the
// proposal passed.
func (e *Engine) checkOutcome(p *state.Proposal) error {
	quorum, err := e.quorum()
	if err != nil {
		return err
	}
	participation := new(uint256.Int).Add(&p.ForVotes, &p.AgainstVotes)
	if participation.Lt(quorum) {
		return fmt.Errorf("%w: %s of %s", ErrQuorumNotMet, participation.Dec(), quorum.Dec())
	}
	if !p.ForVotes.Gt(&p.AgainstVotes) {
		return ErrProposalRejected
	}
	return nil
}

func (e *Engine) quorum() (*uint256.Int, error) {
	supply, err := e.ledger.TotalSupply()
	if err != nil {
		return nil, err
	}
	quorum, _ := new(uint256.Int).MulDivOverflow(supply, uint256.NewInt(e.config.QuorumPercentage), uint256.NewInt(100))
	return quorum, nil
}

func (e *Engine) apply(admin *state.Admin, action state.Action) error {
	switch a := action.(type) {
	case *state.FeeChange:
		return e.fees.SetTotalFee(a.TotalFeeBP, e.config.MaxTotalFeeBP)
	case *state.TreasurySpend:
		treasury, err := e.ledger.Balance(admin.Treasury)
		if err != nil {
			return err
		}
		if treasury.Lt(&a.Amount) {
			return fmt.Errorf("%w: holds %s, needs %s", ErrInsufficientTreasuryBalance, treasury.Dec(), a.Amount.Dec())
		}
		if err := e.ledger.Move(admin.Treasury, a.To, &a.Amount); err != nil {
			return err
		}
		e.ledger.Sink().Emit(&events.Transfer{From: admin.Treasury, To: a.To, Amount: a.Amount})
		return nil
	case *state.ParameterChange:
		return e.fees.SetLimit(a.Key, &a.Value)
	default:
		return fmt.Errorf("%w: %T", ErrInvalidPayload, action)
	}
}

func verifyAction(action state.Action) error {
	switch a := action.(type) {
	case *state.FeeChange:
		return nil
	case *state.TreasurySpend:
		if a.To == ids.ShortEmpty || ledger.IsReserved(a.To) || a.Amount.IsZero() {
			return fmt.Errorf("%w: treasury spend to %s of %s", ErrInvalidPayload, a.To, a.Amount.Dec())
		}
		return nil
	case *state.ParameterChange:
		if !a.Key.Valid() {
			return fmt.Errorf("%w: %d", state.ErrUnknownParameter, a.Key)
		}
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrInvalidPayload, action)
	}
}

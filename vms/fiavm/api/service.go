// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package api provides the JSON-RPC service of the FIA VM.
package api

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/holiman/uint256"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/luxfi/fia/vms/fiavm/events"
	"github.com/luxfi/fia/vms/fiavm/executor"
	"github.com/luxfi/fia/vms/fiavm/governance"
	"github.com/luxfi/fia/vms/fiavm/index"
	"github.com/luxfi/fia/vms/fiavm/state"
	"github.com/luxfi/fia/vms/fiavm/txs"
)

const defaultPageSize = 100

var ErrInvalidRequest = errors.New("invalid request")

// VM is the part of the FIA VM the service reads from and issues to.
type VM interface {
	Read(f func(e *executor.Executor) error) error
	IssueTx(ctx context.Context, txBytes []byte) (ids.ID, error)
	Events(from uint64, limit int) ([]*events.Record, error)
	TopHolders(n int) []index.Holder
	TxStatus(txID ids.ID) txs.Result
	Height() uint64
	Timestamp() time.Time
}

// Service provides the RPC API for the FIA VM.
type Service struct {
	vm  VM
	log log.Logger
}

func NewService(vm VM, logger log.Logger) *Service {
	return &Service{
		vm:  vm,
		log: logger,
	}
}

// ============================================
// Chain APIs
// ============================================

type StatusArgs struct{}

type StatusReply struct {
	Height    uint64 `json:"height"`
	Timestamp int64  `json:"timestamp"`
}

// Status returns the height and time of the last processed block.
func (s *Service) Status(_ *http.Request, _ *StatusArgs, reply *StatusReply) error {
	reply.Height = s.vm.Height()
	reply.Timestamp = s.vm.Timestamp().Unix()
	return nil
}

// IssueTxArgs carries a hex encoded transaction.
type IssueTxArgs struct {
	Tx string `json:"tx"`
}

type IssueTxReply struct {
	TxID ids.ID `json:"txID"`
}

// IssueTx executes a transaction in a block of its own. The call fails if
// the transaction was reverted.
func (s *Service) IssueTx(r *http.Request, args *IssueTxArgs, reply *IssueTxReply) error {
	txBytes, err := hex.DecodeString(strings.TrimPrefix(args.Tx, "0x"))
	if err != nil {
		return fmt.Errorf("%w: tx is not hex: %w", ErrInvalidRequest, err)
	}
	txID, err := s.vm.IssueTx(r.Context(), txBytes)
	if err != nil {
		s.log.Debug("issueTx failed", "txID", txID, "error", err)
		return err
	}
	reply.TxID = txID
	return nil
}

type TxStatusArgs struct {
	TxID ids.ID `json:"txID"`
}

// TxStatus reports whether a recently processed transaction was accepted
// or reverted. Transactions the node no longer remembers are Unknown.
func (s *Service) TxStatus(_ *http.Request, args *TxStatusArgs, reply *txs.Result) error {
	*reply = s.vm.TxStatus(args.TxID)
	return nil
}

type EventsArgs struct {
	From  uint64 `json:"from"`
	Limit int    `json:"limit"`
}

type EventsReply struct {
	Events []*events.Record `json:"events"`
	// Next is the sequence number to resume from.
	Next uint64 `json:"next"`
}

func (s *Service) Events(_ *http.Request, args *EventsArgs, reply *EventsReply) error {
	records, err := s.vm.Events(args.From, pageSize(args.Limit))
	if err != nil {
		return err
	}
	reply.Events = records
	reply.Next = args.From
	if n := len(records); n > 0 {
		reply.Next = records[n-1].Seq + 1
	}
	return nil
}

type TopHoldersArgs struct {
	Limit int `json:"limit"`
}

type TopHoldersReply struct {
	Holders []index.Holder `json:"holders"`
}

func (s *Service) TopHolders(_ *http.Request, args *TopHoldersArgs, reply *TopHoldersReply) error {
	reply.Holders = s.vm.TopHolders(pageSize(args.Limit))
	return nil
}

// ============================================
// Token APIs
// ============================================

type AddressArgs struct {
	Address ids.ShortID `json:"address"`
}

type AmountReply struct {
	Amount *uint256.Int `json:"amount"`
}

func (s *Service) Balance(_ *http.Request, args *AddressArgs, reply *AmountReply) error {
	return s.vm.Read(func(e *executor.Executor) error {
		balance, err := e.Ledger.Balance(args.Address)
		reply.Amount = balance
		return err
	})
}

type NoArgs struct{}

func (s *Service) TotalSupply(_ *http.Request, _ *NoArgs, reply *AmountReply) error {
	return s.vm.Read(func(e *executor.Executor) error {
		supply, err := e.Ledger.TotalSupply()
		reply.Amount = supply
		return err
	})
}

type AllowanceArgs struct {
	Owner   ids.ShortID `json:"owner"`
	Spender ids.ShortID `json:"spender"`
}

func (s *Service) Allowance(_ *http.Request, args *AllowanceArgs, reply *AmountReply) error {
	return s.vm.Read(func(e *executor.Executor) error {
		allowance, err := e.Ledger.State().Allowance(args.Owner, args.Spender)
		reply.Amount = allowance
		return err
	})
}

func (s *Service) Admin(_ *http.Request, _ *NoArgs, reply *state.Admin) error {
	return s.vm.Read(func(e *executor.Executor) error {
		admin, err := e.Ledger.State().Admin()
		if err != nil {
			return err
		}
		*reply = *admin
		return nil
	})
}

func (s *Service) TokenStats(_ *http.Request, _ *NoArgs, reply *state.TokenStats) error {
	return s.vm.Read(func(e *executor.Executor) error {
		stats, err := e.Ledger.State().TokenStats()
		if err != nil {
			return err
		}
		*reply = *stats
		return nil
	})
}

func (s *Service) UserStats(_ *http.Request, args *AddressArgs, reply *state.UserStats) error {
	return s.vm.Read(func(e *executor.Executor) error {
		stats, err := e.Ledger.State().UserStats(args.Address)
		if err != nil {
			return err
		}
		*reply = *stats
		return nil
	})
}

// ============================================
// Fee APIs
// ============================================

func (s *Service) FeeConfig(_ *http.Request, _ *NoArgs, reply *state.FeeConfig) error {
	return s.vm.Read(func(e *executor.Executor) error {
		cfg, err := e.Ledger.State().FeeConfig()
		if err != nil {
			return err
		}
		*reply = *cfg
		return nil
	})
}

func (s *Service) TxLimits(_ *http.Request, _ *NoArgs, reply *state.TxLimits) error {
	return s.vm.Read(func(e *executor.Executor) error {
		limits, err := e.Ledger.State().TxLimits()
		if err != nil {
			return err
		}
		*reply = *limits
		return nil
	})
}

type BoolReply struct {
	Value bool `json:"value"`
}

func (s *Service) IsFeeExempt(_ *http.Request, args *AddressArgs, reply *BoolReply) error {
	return s.vm.Read(func(e *executor.Executor) error {
		exempt, err := e.Ledger.State().IsFeeExempt(args.Address)
		reply.Value = exempt
		return err
	})
}

// ============================================
// Staking APIs
// ============================================

type StakeArgs struct {
	Address ids.ShortID `json:"address"`
	Index   uint64      `json:"index"`
}

// CalculateRewards returns the rewards a stake has accrued but not claimed.
func (s *Service) CalculateRewards(_ *http.Request, args *StakeArgs, reply *AmountReply) error {
	return s.vm.Read(func(e *executor.Executor) error {
		rewards, err := e.Staking.CalculateRewards(args.Address, args.Index)
		reply.Amount = rewards
		return err
	})
}

type GetUserStakesReply struct {
	Stakes []*state.StakeRecord `json:"stakes"`
}

func (s *Service) GetUserStakes(_ *http.Request, args *AddressArgs, reply *GetUserStakesReply) error {
	return s.vm.Read(func(e *executor.Executor) error {
		stakes, err := e.Staking.UserStakes(args.Address)
		reply.Stakes = stakes
		return err
	})
}

type StakingAPYArgs struct {
	// LockPeriod in seconds
	LockPeriod uint64 `json:"lockPeriod"`
}

type StakingAPYReply struct {
	APYBP uint64 `json:"apyBP"`
}

func (s *Service) StakingAPY(_ *http.Request, args *StakingAPYArgs, reply *StakingAPYReply) error {
	return s.vm.Read(func(e *executor.Executor) error {
		apy, err := e.Staking.APY(args.LockPeriod)
		reply.APYBP = apy
		return err
	})
}

func (s *Service) RewardPool(_ *http.Request, _ *NoArgs, reply *AmountReply) error {
	return s.vm.Read(func(e *executor.Executor) error {
		pool, err := e.Staking.RewardPool()
		reply.Amount = pool
		return err
	})
}

// ============================================
// Governance APIs
// ============================================

type ProposalArgs struct {
	ID uint64 `json:"id"`
}

type ProposalReply struct {
	Proposal   *state.Proposal   `json:"proposal"`
	ActionKind string            `json:"actionKind"`
	Status     governance.Status `json:"status"`
}

func (s *Service) Proposal(_ *http.Request, args *ProposalArgs, reply *ProposalReply) error {
	return s.vm.Read(func(e *executor.Executor) error {
		p, err := e.Governance.Proposal(args.ID)
		if err != nil {
			return err
		}
		status, err := e.Governance.Status(args.ID)
		if err != nil {
			return err
		}
		reply.Proposal = p
		reply.ActionKind = p.Action.Kind()
		reply.Status = status
		return nil
	})
}

type ProposalStateReply struct {
	Status governance.Status `json:"status"`
}

func (s *Service) ProposalState(_ *http.Request, args *ProposalArgs, reply *ProposalStateReply) error {
	return s.vm.Read(func(e *executor.Executor) error {
		status, err := e.Governance.Status(args.ID)
		reply.Status = status
		return err
	})
}

func (s *Service) VotingPower(_ *http.Request, args *AddressArgs, reply *AmountReply) error {
	return s.vm.Read(func(e *executor.Executor) error {
		power, err := e.Governance.VotingPower(args.Address)
		reply.Amount = power
		return err
	})
}

// ============================================
// Multisig APIs
// ============================================

func (s *Service) Wallet(_ *http.Request, args *AddressArgs, reply *state.Wallet) error {
	return s.vm.Read(func(e *executor.Executor) error {
		w, err := e.Multisig.Wallet(args.Address)
		if err != nil {
			return err
		}
		*reply = *w
		return nil
	})
}

type MultisigTransactionArgs struct {
	Wallet ids.ShortID `json:"wallet"`
	ID     uint64      `json:"id"`
}

type MultisigTransactionReply struct {
	Transaction *state.MultisigTx `json:"transaction"`
	// Confirmations only counts current owners.
	Confirmations []ids.ShortID `json:"confirmations"`
}

func (s *Service) MultisigTransaction(_ *http.Request, args *MultisigTransactionArgs, reply *MultisigTransactionReply) error {
	return s.vm.Read(func(e *executor.Executor) error {
		tx, err := e.Multisig.Transaction(args.Wallet, args.ID)
		if err != nil {
			return err
		}
		confirmations, err := e.Multisig.Confirmations(args.Wallet, args.ID)
		if err != nil {
			return err
		}
		reply.Transaction = tx
		reply.Confirmations = confirmations
		return nil
	})
}

type TransactionCountArgs struct {
	Wallet   ids.ShortID `json:"wallet"`
	Pending  bool        `json:"pending"`
	Executed bool        `json:"executed"`
}

type CountReply struct {
	Count uint64 `json:"count"`
}

func (s *Service) TransactionCount(_ *http.Request, args *TransactionCountArgs, reply *CountReply) error {
	return s.vm.Read(func(e *executor.Executor) error {
		count, err := e.Multisig.TransactionCount(args.Wallet, args.Pending, args.Executed)
		reply.Count = count
		return err
	})
}

func pageSize(limit int) int {
	if limit <= 0 {
		return defaultPageSize
	}
	return limit
}

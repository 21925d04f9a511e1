// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package executor applies FIA transactions to state.
package executor

import (
	"errors"
	"fmt"

	"github.com/luxfi/ids"

	"github.com/luxfi/fia/vms/fiavm/config"
	"github.com/luxfi/fia/vms/fiavm/events"
	"github.com/luxfi/fia/vms/fiavm/fee"
	"github.com/luxfi/fia/vms/fiavm/governance"
	"github.com/luxfi/fia/vms/fiavm/ledger"
	"github.com/luxfi/fia/vms/fiavm/multisig"
	"github.com/luxfi/fia/vms/fiavm/staking"
	"github.com/luxfi/fia/vms/fiavm/state"
	"github.com/luxfi/fia/vms/fiavm/txs"
)

// MaxCallDepth bounds how deeply executed wallet transactions may nest.
const MaxCallDepth = 4

var (
	_ multisig.Target = (*Executor)(nil)

	ErrInvalidDestination = errors.New("wallet call data must be addressed to the token or the wallet")
	ErrSenderMismatch     = errors.New("wallet call data must be sent by the wallet")
	ErrCallDepthExceeded  = errors.New("wallet call depth exceeded")
)

// Executor applies the transactions of one block transaction. Every engine
// shares the same uncommitted state, so the caller decides whether all of
// the effects are kept.
type Executor struct {
	TxID ids.ID

	Ledger     *ledger.Ledger
	Fees       *fee.Engine
	Staking    *staking.Engine
	Governance *governance.Engine
	Multisig   *multisig.Manager

	config config.Config
	depth  int
}

func New(s *state.State, sink events.Sink, block ledger.Block, cfg config.Config, txID ids.ID) *Executor {
	l := ledger.New(s, sink, block)
	fees := fee.New(l, cfg.MaxBatchSize)
	e := &Executor{
		TxID:       txID,
		Ledger:     l,
		Fees:       fees,
		Staking:    staking.New(l, cfg),
		Governance: governance.New(l, fees, cfg),
		config:     cfg,
	}
	e.Multisig = multisig.New(l, e, cfg.MaxOwners)
	return e
}

// Execute verifies and applies unsigned.
func (e *Executor) Execute(unsigned txs.UnsignedTx) error {
	if unsigned == nil {
		return txs.ErrNilTx
	}
	if err := unsigned.Verify(); err != nil {
		return err
	}
	return unsigned.Visit(&visitor{e: e, sender: unsigned.Sender()})
}

// Call performs an executed wallet transaction. A value is sent from the
// wallet through the fee engine. Data holds a transaction body sent by the
// wallet, addressed to the token for token, staking and governance entry
// points or to the wallet itself for its own management.
func (e *Executor) Call(call multisig.Call) error {
	if !call.Value.IsZero() {
		if err := e.Fees.Transfer(call.Wallet, call.Destination, call.Value); err != nil {
			return err
		}
	}
	if len(call.Data) == 0 {
		return nil
	}

	unsigned, err := txs.ParseUnsigned(call.Data)
	if err != nil {
		return err
	}
	if unsigned.Sender() != call.Wallet {
		return fmt.Errorf("%w: sent by %s", ErrSenderMismatch, unsigned.Sender())
	}
	managed, isManagement := managedWallet(unsigned)
	switch {
	case call.Destination == ledger.TokenAddress && !isManagement:
	case call.Destination == call.Wallet && isManagement && managed == call.Wallet:
	default:
		return fmt.Errorf("%w: %s", ErrInvalidDestination, call.Destination)
	}

	if e.depth >= MaxCallDepth {
		return ErrCallDepthExceeded
	}
	e.depth++
	defer func() { e.depth-- }()
	return e.Execute(unsigned)
}

// managedWallet returns the wallet a wallet management transaction changes.
func managedWallet(unsigned txs.UnsignedTx) (ids.ShortID, bool) {
	switch tx := unsigned.(type) {
	case *txs.AddOwnerTx:
		return tx.Wallet, true
	case *txs.RemoveOwnerTx:
		return tx.Wallet, true
	case *txs.ReplaceOwnerTx:
		return tx.Wallet, true
	case *txs.ChangeRequirementTx:
		return tx.Wallet, true
	default:
		return ids.ShortEmpty, false
	}
}

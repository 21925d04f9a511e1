// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package multisig implements N-of-M multisignature wallets. A wallet can own
// the token, in which case privileged calls only happen once enough of its
// owners confirmed them.
package multisig

import (
	"errors"
	"fmt"
	"slices"

	"github.com/holiman/uint256"
	"github.com/luxfi/ids"
	"github.com/luxfi/math/set"
	"golang.org/x/crypto/sha3"

	"github.com/luxfi/fia/vms/fiavm/events"
	"github.com/luxfi/fia/vms/fiavm/ledger"
	"github.com/luxfi/fia/vms/fiavm/state"
)

var (
	ErrNotOwner               = errors.New("not a wallet owner")
	ErrOnlyWallet             = errors.New("only the wallet itself may call")
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrAlreadyConfirmed       = errors.New("transaction already confirmed by owner")
	ErrNotConfirmed           = errors.New("transaction not confirmed by owner")
	ErrAlreadyExecuted        = errors.New("transaction already executed")
	ErrNotEnoughConfirmations = errors.New("not enough confirmations")
	ErrExecutionFailed        = errors.New("transaction execution failed")
	ErrInvalidRequirement     = errors.New("invalid requirement")
	ErrInvalidOwners          = errors.New("owners must be sorted, unique and non-empty")
	ErrOwnerExists            = errors.New("owner already exists")
	ErrOwnerNotFound          = errors.New("owner not found")
	ErrTooManyOwners          = errors.New("too many owners")
	ErrWalletExists           = errors.New("wallet already exists")
	ErrWalletNotFound         = errors.New("wallet not found")
)

// Call is an executed wallet transaction handed to its Target.
type Call struct {
	Wallet      ids.ShortID
	Destination ids.ShortID
	Value       *uint256.Int
	Data        []byte
}

// Target performs the calls of executed wallet transactions.
type Target interface {
	Call(call Call) error
}

// WalletAddress derives the address of a wallet created by the transaction
// with the given id.
func WalletAddress(txID ids.ID) ids.ShortID {
	h := sha3.NewLegacyKeccak256()
	_, _ = h.Write([]byte("fia/multisig"))
	_, _ = h.Write(txID[:])
	var addr ids.ShortID
	copy(addr[:], h.Sum(nil)[12:])
	return addr
}

type Manager struct {
	ledger    *ledger.Ledger
	target    Target
	maxOwners int
}

func New(l *ledger.Ledger, target Target, maxOwners int) *Manager {
	return &Manager{
		ledger:    l,
		target:    target,
		maxOwners: maxOwners,
	}
}

// CreateWallet registers a wallet at addr.
func (m *Manager) CreateWallet(addr ids.ShortID, owners []ids.ShortID, required uint64) error {
	if addr == ids.ShortEmpty || ledger.IsReserved(addr) {
		return fmt.Errorf("%w: %s", ledger.ErrReservedAddress, addr)
	}
	if err := m.verifyOwners(owners, required); err != nil {
		return err
	}

	s := m.ledger.State()
	exists, err := s.HasWallet(addr)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrWalletExists, addr)
	}
	if err := s.PutWallet(&state.Wallet{
		Address:  addr,
		Owners:   owners,
		Required: required,
	}); err != nil {
		return err
	}
	m.ledger.Sink().Emit(&events.WalletCreated{Wallet: addr, Owners: owners, Required: required})
	return nil
}

func (m *Manager) verifyOwners(owners []ids.ShortID, required uint64) error {
	switch {
	case len(owners) == 0:
		return ErrInvalidOwners
	case len(owners) > m.maxOwners:
		return fmt.Errorf("%w: %d > %d", ErrTooManyOwners, len(owners), m.maxOwners)
	case !isSortedAndUnique(owners):
		return ErrInvalidOwners
	case required == 0 || required > uint64(len(owners)):
		return fmt.Errorf("%w: %d of %d", ErrInvalidRequirement, required, len(owners))
	}
	for _, owner := range owners {
		if owner == ids.ShortEmpty {
			return ErrInvalidOwners
		}
	}
	return nil
}

// Wallet returns the wallet at addr.
func (m *Manager) Wallet(addr ids.ShortID) (*state.Wallet, error) {
	w, err := m.ledger.State().Wallet(addr)
	if errors.Is(err, state.ErrWalletNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrWalletNotFound, addr)
	}
	return w, err
}

// Transaction returns transaction id of wallet.
func (m *Manager) Transaction(wallet ids.ShortID, id uint64) (*state.MultisigTx, error) {
	tx, err := m.ledger.State().MultisigTx(wallet, id)
	if errors.Is(err, state.ErrMultisigTxNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrTransactionNotFound, id)
	}
	return tx, err
}

// Confirmations returns the current owners that confirmed transaction id.
func (m *Manager) Confirmations(wallet ids.ShortID, id uint64) ([]ids.ShortID, error) {
	w, err := m.Wallet(wallet)
	if err != nil {
		return nil, err
	}
	tx, err := m.Transaction(wallet, id)
	if err != nil {
		return nil, err
	}
	return currentConfirmations(w, tx), nil
}

// TransactionCount counts the wallet's transactions, filtered by whether
// pending and executed ones are included.
func (m *Manager) TransactionCount(wallet ids.ShortID, pending, executed bool) (uint64, error) {
	w, err := m.Wallet(wallet)
	if err != nil {
		return 0, err
	}
	var count uint64
	for id := uint64(0); id < w.TxCount; id++ {
		tx, err := m.Transaction(wallet, id)
		if err != nil {
			return 0, err
		}
		if (pending && !tx.Executed) || (executed && tx.Executed) {
			count++
		}
	}
	return count, nil
}

// Submit records a transaction proposed by an owner and confirms it on the
// owner's behalf. It returns the transaction id.
func (m *Manager) Submit(wallet, sender, destination ids.ShortID, value *uint256.Int, data []byte) (uint64, error) {
	w, err := m.ownerWallet(wallet, sender)
	if err != nil {
		return 0, err
	}
	if destination == ids.ShortEmpty {
		return 0, ledger.ErrZeroAddress
	}

	tx := &state.MultisigTx{
		ID:            w.TxCount,
		Destination:   destination,
		Value:         *value,
		Data:          data,
		Confirmations: []ids.ShortID{sender},
	}
	w.TxCount++

	s := m.ledger.State()
	if err := s.PutMultisigTx(wallet, tx); err != nil {
		return 0, err
	}
	if err := s.PutWallet(w); err != nil {
		return 0, err
	}
	m.ledger.Sink().Emit(&events.Submission{Wallet: wallet, ID: tx.ID})
	m.ledger.Sink().Emit(&events.Confirmation{Wallet: wallet, Owner: sender, ID: tx.ID})
	return tx.ID, nil
}

func (m *Manager) Confirm(wallet, sender ids.ShortID, id uint64) error {
	if _, err := m.ownerWallet(wallet, sender); err != nil {
		return err
	}
	tx, err := m.pendingTransaction(wallet, id)
	if err != nil {
		return err
	}
	confirmations := set.Of(tx.Confirmations...)
	if confirmations.Contains(sender) {
		return ErrAlreadyConfirmed
	}
	confirmations.Add(sender)
	tx.Confirmations = sortedList(confirmations)
	if err := m.ledger.State().PutMultisigTx(wallet, tx); err != nil {
		return err
	}
	m.ledger.Sink().Emit(&events.Confirmation{Wallet: wallet, Owner: sender, ID: id})
	return nil
}

// Revoke withdraws the sender's confirmation of a pending transaction.
func (m *Manager) Revoke(wallet, sender ids.ShortID, id uint64) error {
	if _, err := m.ownerWallet(wallet, sender); err != nil {
		return err
	}
	tx, err := m.pendingTransaction(wallet, id)
	if err != nil {
		return err
	}
	confirmations := set.Of(tx.Confirmations...)
	if !confirmations.Contains(sender) {
		return ErrNotConfirmed
	}
	confirmations.Remove(sender)
	tx.Confirmations = sortedList(confirmations)
	if err := m.ledger.State().PutMultisigTx(wallet, tx); err != nil {
		return err
	}
	m.ledger.Sink().Emit(&events.Revocation{Wallet: wallet, Owner: sender, ID: id})
	return nil
}

// Execute performs a transaction once enough current owners confirmed it.
// The transaction is marked executed before the call so a call that reaches
// back into the wallet cannot execute it twice. If the call fails the error
// wraps ErrExecutionFailed and the caller is expected to discard every
// effect of the call, leaving the transaction pending.
func (m *Manager) Execute(wallet, sender ids.ShortID, id uint64) error {
	w, err := m.ownerWallet(wallet, sender)
	if err != nil {
		return err
	}
	tx, err := m.pendingTransaction(wallet, id)
	if err != nil {
		return err
	}
	if confirmed := uint64(len(currentConfirmations(w, tx))); confirmed < w.Required {
		return fmt.Errorf("%w: %d of %d", ErrNotEnoughConfirmations, confirmed, w.Required)
	}

	s := m.ledger.State()
	tx.Executed = true
	if err := s.PutMultisigTx(wallet, tx); err != nil {
		return err
	}
	err = m.target.Call(Call{
		Wallet:      wallet,
		Destination: tx.Destination,
		Value:       &tx.Value,
		Data:        tx.Data,
	})
	if err != nil {
		tx.Executed = false
		if putErr := s.PutMultisigTx(wallet, tx); putErr != nil {
			return putErr
		}
		return fmt.Errorf("%w: %w", ErrExecutionFailed, err)
	}
	m.ledger.Sink().Emit(&events.Execution{Wallet: wallet, ID: id})
	return nil
}

func (m *Manager) ownerWallet(wallet, sender ids.ShortID) (*state.Wallet, error) {
	w, err := m.Wallet(wallet)
	if err != nil {
		return nil, err
	}
	if !isOwner(w, sender) {
		return nil, fmt.Errorf("%w: %s", ErrNotOwner, sender)
	}
	return w, nil
}

func (m *Manager) pendingTransaction(wallet ids.ShortID, id uint64) (*state.MultisigTx, error) {
	tx, err := m.Transaction(wallet, id)
	if err != nil {
		return nil, err
	}
	if tx.Executed {
		return nil, ErrAlreadyExecuted
	}
	return tx, nil
}

func isOwner(w *state.Wallet, addr ids.ShortID) bool {
	for _, owner := range w.Owners {
		if owner == addr {
			return true
		}
	}
	return false
}

// currentConfirmations drops confirmations of owners removed since.
func currentConfirmations(w *state.Wallet, tx *state.MultisigTx) []ids.ShortID {
	confirmed := make([]ids.ShortID, 0, len(tx.Confirmations))
	for _, addr := range tx.Confirmations {
		if isOwner(w, addr) {
			confirmed = append(confirmed, addr)
		}
	}
	return confirmed
}

func sortedList(s set.Set[ids.ShortID]) []ids.ShortID {
	list := s.List()
	SortOwners(list)
	return list
}

// SortOwners orders owners the way wallets store them.
func SortOwners(owners []ids.ShortID) {
	slices.SortFunc(owners, ids.ShortID.Compare)
}

func isSortedAndUnique(owners []ids.ShortID) bool {
	for i := 1; i < len(owners); i++ {
		if owners[i-1].Compare(owners[i]) >= 0 {
			return false
		}
	}
	return true
}

// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package multisig

import (
	"fmt"

	"github.com/luxfi/ids"

	"github.com/luxfi/fia/vms/fiavm/events"
	"github.com/luxfi/fia/vms/fiavm/state"
)

// The owner management calls below may only be made by the wallet itself,
// that is through a confirmed and executed wallet transaction.

func (m *Manager) AddOwner(wallet, caller, owner ids.ShortID) error {
	w, err := m.selfWallet(wallet, caller)
	if err != nil {
		return err
	}
	if owner == ids.ShortEmpty {
		return ErrInvalidOwners
	}
	if isOwner(w, owner) {
		return fmt.Errorf("%w: %s", ErrOwnerExists, owner)
	}
	if len(w.Owners)+1 > m.maxOwners {
		return fmt.Errorf("%w: %d", ErrTooManyOwners, m.maxOwners)
	}
	w.Owners = append(w.Owners, owner)
	SortOwners(w.Owners)
	if err := m.ledger.State().PutWallet(w); err != nil {
		return err
	}
	m.ledger.Sink().Emit(&events.OwnerAddition{Wallet: wallet, Owner: owner})
	return nil
}

func (m *Manager) RemoveOwner(wallet, caller, owner ids.ShortID) error {
	w, err := m.selfWallet(wallet, caller)
	if err != nil {
		return err
	}
	if !isOwner(w, owner) {
		return fmt.Errorf("%w: %s", ErrOwnerNotFound, owner)
	}
	if uint64(len(w.Owners)-1) < w.Required {
		return fmt.Errorf("%w: %d owners would remain for %d required", ErrInvalidRequirement, len(w.Owners)-1, w.Required)
	}
	w.Owners = without(w.Owners, owner)
	if err := m.ledger.State().PutWallet(w); err != nil {
		return err
	}
	m.ledger.Sink().Emit(&events.OwnerRemoval{Wallet: wallet, Owner: owner})
	return nil
}

// ReplaceOwner swaps owner for newOwner, keeping the requirement.
func (m *Manager) ReplaceOwner(wallet, caller, owner, newOwner ids.ShortID) error {
	w, err := m.selfWallet(wallet, caller)
	if err != nil {
		return err
	}
	if !isOwner(w, owner) {
		return fmt.Errorf("%w: %s", ErrOwnerNotFound, owner)
	}
	if newOwner == ids.ShortEmpty {
		return ErrInvalidOwners
	}
	if isOwner(w, newOwner) {
		return fmt.Errorf("%w: %s", ErrOwnerExists, newOwner)
	}
	w.Owners = append(without(w.Owners, owner), newOwner)
	SortOwners(w.Owners)
	if err := m.ledger.State().PutWallet(w); err != nil {
		return err
	}
	m.ledger.Sink().Emit(&events.OwnerRemoval{Wallet: wallet, Owner: owner})
	m.ledger.Sink().Emit(&events.OwnerAddition{Wallet: wallet, Owner: newOwner})
	return nil
}

func (m *Manager) ChangeRequirement(wallet, caller ids.ShortID, required uint64) error {
	w, err := m.selfWallet(wallet, caller)
	if err != nil {
		return err
	}
	if required == 0 || required > uint64(len(w.Owners)) {
		return fmt.Errorf("%w: %d of %d", ErrInvalidRequirement, required, len(w.Owners))
	}
	w.Required = required
	if err := m.ledger.State().PutWallet(w); err != nil {
		return err
	}
	m.ledger.Sink().Emit(&events.RequirementChange{Wallet: wallet, Required: required})
	return nil
}

func (m *Manager) selfWallet(wallet, caller ids.ShortID) (*state.Wallet, error) {
	if caller != wallet {
		return nil, fmt.Errorf("%w: called by %s", ErrOnlyWallet, caller)
	}
	return m.Wallet(wallet)
}

func without(owners []ids.ShortID, owner ids.ShortID) []ids.ShortID {
	out := make([]ids.ShortID, 0, len(owners))
	for _, o := range owners {
		if o != owner {
			out = append(out, o)
		}
	}
	return out
}

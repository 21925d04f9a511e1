// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"fmt"

	"github.com/luxfi/ids"

	"github.com/luxfi/fia/vms/fiavm/events"
)

// RequireOwner fails unless caller is the token owner.
func (l *Ledger) RequireOwner(caller ids.ShortID) error {
	admin, err := l.state.Admin()
	if err != nil {
		return err
	}
	if caller != admin.Owner {
		return fmt.Errorf("%w: %s", ErrNotOwner, caller)
	}
	return nil
}

// RequireNotPaused fails while the token is paused.
func (l *Ledger) RequireNotPaused() error {
	admin, err := l.state.Admin()
	if err != nil {
		return err
	}
	if admin.Paused {
		return ErrPaused
	}
	return nil
}

func (l *Ledger) Pause(caller ids.ShortID) error {
	return l.setPaused(caller, true)
}

func (l *Ledger) Unpause(caller ids.ShortID) error {
	return l.setPaused(caller, false)
}

func (l *Ledger) setPaused(caller ids.ShortID, paused bool) error {
	if err := l.RequireOwner(caller); err != nil {
		return err
	}
	admin, err := l.state.Admin()
	if err != nil {
		return err
	}
	admin.Paused = paused
	if err := l.state.SetAdmin(admin); err != nil {
		return err
	}
	if paused {
		l.sink.Emit(&events.Paused{By: caller})
	} else {
		l.sink.Emit(&events.Unpaused{By: caller})
	}
	return nil
}

// TransferOwnership hands every owner privilege to newOwner. Handing it to a
// multisig wallet makes the wallet the only privileged caller.
func (l *Ledger) TransferOwnership(caller, newOwner ids.ShortID) error {
	if err := l.RequireOwner(caller); err != nil {
		return err
	}
	if newOwner == ids.ShortEmpty {
		return ErrZeroAddress
	}
	admin, err := l.state.Admin()
	if err != nil {
		return err
	}
	previous := admin.Owner
	admin.Owner = newOwner
	if err := l.state.SetAdmin(admin); err != nil {
		return err
	}
	l.sink.Emit(&events.OwnershipTransferred{PreviousOwner: previous, NewOwner: newOwner})
	return nil
}

// SetExecutor designates the account allowed to execute passed proposals
// besides the owner. The zero address clears it.
func (l *Ledger) SetExecutor(caller, executor ids.ShortID) error {
	if err := l.RequireOwner(caller); err != nil {
		return err
	}
	admin, err := l.state.Admin()
	if err != nil {
		return err
	}
	previous := admin.Executor
	admin.Executor = executor
	if err := l.state.SetAdmin(admin); err != nil {
		return err
	}
	l.sink.Emit(&events.ExecutorChanged{PreviousExecutor: previous, NewExecutor: executor})
	return nil
}

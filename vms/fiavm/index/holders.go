// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package index keeps in-memory indices derived from committed FIA state.
package index

import (
	"bytes"
	"sync"

	"github.com/google/btree"
	"github.com/holiman/uint256"
	"github.com/luxfi/ids"
	"github.com/luxfi/math/set"

	"github.com/luxfi/fia/vms/fiavm/ledger"
	"github.com/luxfi/fia/vms/fiavm/state"
)

const defaultTreeDegree = 2

// Holder is an account and its balance.
type Holder struct {
	Address ids.ShortID  `json:"address"`
	Balance *uint256.Int `json:"balance"`
}

// Less orders holders by descending balance, then by address.
func (h *Holder) Less(than *Holder) bool {
	switch h.Balance.Cmp(than.Balance) {
	case 1:
		return true
	case -1:
		return false
	}
	return bytes.Compare(h.Address[:], than.Address[:]) == -1
}

// Holders ranks the accounts holding FIA by balance. System accounts are not
// ranked.
type Holders struct {
	lock    sync.RWMutex
	tree    *btree.BTreeG[*Holder]
	holders map[ids.ShortID]*Holder
}

func NewHolders() *Holders {
	return &Holders{
		tree:    btree.NewG(defaultTreeDegree, (*Holder).Less),
		holders: make(map[ids.ShortID]*Holder),
	}
}

// Rebuild replaces the index with the balances stored in s.
func (h *Holders) Rebuild(s *state.State) error {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.tree.Clear(false)
	clear(h.holders)
	return s.IterateBalances(func(addr ids.ShortID, balance *uint256.Int) error {
		h.set(addr, balance)
		return nil
	})
}

// Refresh re-reads the balances of addrs from s.
func (h *Holders) Refresh(s *state.State, addrs set.Set[ids.ShortID]) error {
	h.lock.Lock()
	defer h.lock.Unlock()

	for addr := range addrs {
		balance, err := s.Balance(addr)
		if err != nil {
			return err
		}
		h.set(addr, balance)
	}
	return nil
}

func (h *Holders) set(addr ids.ShortID, balance *uint256.Int) {
	if old, ok := h.holders[addr]; ok {
		h.tree.Delete(old)
		delete(h.holders, addr)
	}
	if balance.IsZero() || ledger.IsReserved(addr) {
		return
	}
	holder := &Holder{Address: addr, Balance: balance.Clone()}
	h.holders[addr] = holder
	h.tree.ReplaceOrInsert(holder)
}

// Top returns up to n holders with the largest balances.
func (h *Holders) Top(n int) []Holder {
	h.lock.RLock()
	defer h.lock.RUnlock()

	top := make([]Holder, 0, min(n, h.tree.Len()))
	h.tree.Ascend(func(holder *Holder) bool {
		if len(top) >= n {
			return false
		}
		top = append(top, Holder{
			Address: holder.Address,
			Balance: holder.Balance.Clone(),
		})
		return true
	})
	return top
}

// Len returns the number of ranked holders.
func (h *Holders) Len() int {
	h.lock.RLock()
	defer h.lock.RUnlock()

	return h.tree.Len()
}

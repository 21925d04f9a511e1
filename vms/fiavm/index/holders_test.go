// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package index

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/ids"
	"github.com/luxfi/math/set"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/fia/vms/fiavm/ledger"
	"github.com/luxfi/fia/vms/fiavm/state"
)

func TestHolders(t *testing.T) {
	require := require.New(t)

	s := state.New(memdb.New())
	alice := ids.ShortID{1}
	bob := ids.ShortID{2}
	carol := ids.ShortID{3}
	require.NoError(s.SetBalance(alice, uint256.NewInt(50)))
	require.NoError(s.SetBalance(bob, uint256.NewInt(70)))
	require.NoError(s.SetBalance(carol, uint256.NewInt(50)))
	require.NoError(s.SetBalance(ledger.StakingAddress, uint256.NewInt(1_000)))

	h := NewHolders()
	require.NoError(h.Rebuild(s))
	require.Equal(3, h.Len())

	top := h.Top(10)
	require.Len(top, 3)
	require.Equal(bob, top[0].Address)
	// Equal balances are ordered by address.
	require.Equal(alice, top[1].Address)
	require.Equal(carol, top[2].Address)

	require.NoError(s.SetBalance(alice, uint256.NewInt(100)))
	require.NoError(s.SetBalance(bob, new(uint256.Int)))
	require.NoError(h.Refresh(s, set.Of(alice, bob)))

	top = h.Top(1)
	require.Len(top, 1)
	require.Equal(alice, top[0].Address)
	require.Equal(uint256.NewInt(100), top[0].Balance)
	require.Equal(2, h.Len())
}

func TestTopEmpty(t *testing.T) {
	require.Empty(t, NewHolders().Top(5))
}

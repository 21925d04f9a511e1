// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/fia/vms/fiavm/state"
)

func TestParse(t *testing.T) {
	require := require.New(t)

	from := ids.GenerateTestShortID()
	to := ids.GenerateTestShortID()
	tx, err := NewTx(&TransferTx{
		BaseTx: BaseTx{From: from},
		To:     to,
		Amount: *uint256.NewInt(1_000),
	})
	require.NoError(err)
	require.NotEqual(ids.Empty, tx.ID())

	parsed, err := Parse(tx.Bytes())
	require.NoError(err)
	require.Equal(tx.ID(), parsed.ID())
	require.Equal(from, parsed.Unsigned.Sender())

	transfer, ok := parsed.Unsigned.(*TransferTx)
	require.True(ok)
	require.Equal(to, transfer.To)
	require.Equal(uint256.NewInt(1_000), &transfer.Amount)
}

func TestMemoChangesID(t *testing.T) {
	require := require.New(t)

	from := ids.GenerateTestShortID()
	a, err := NewTx(&PauseTx{BaseTx: BaseTx{From: from}})
	require.NoError(err)
	b, err := NewTx(&PauseTx{BaseTx: BaseTx{From: from, Memo: []byte{1}}})
	require.NoError(err)
	require.NotEqual(a.ID(), b.ID())
}

func TestProposeCarriesAction(t *testing.T) {
	require := require.New(t)

	tx, err := NewTx(&ProposeTx{
		BaseTx:      BaseTx{From: ids.GenerateTestShortID()},
		Description: "raise the wallet cap",
		Action: &state.ParameterChange{
			Key:   state.MaxWalletAmount,
			Value: *uint256.NewInt(42),
		},
	})
	require.NoError(err)

	parsed, err := Parse(tx.Bytes())
	require.NoError(err)
	propose := parsed.Unsigned.(*ProposeTx)
	change, ok := propose.Action.(*state.ParameterChange)
	require.True(ok)
	require.Equal(state.MaxWalletAmount, change.Key)
	require.Equal(uint64(42), change.Value.Uint64())
}

func TestUnsignedRoundTrip(t *testing.T) {
	require := require.New(t)

	wallet := ids.GenerateTestShortID()
	bytes, err := MarshalUnsigned(&ChangeRequirementTx{
		WalletTx: WalletTx{
			BaseTx: BaseTx{From: wallet},
			Wallet: wallet,
		},
		Required: 3,
	})
	require.NoError(err)

	unsigned, err := ParseUnsigned(bytes)
	require.NoError(err)
	change, ok := unsigned.(*ChangeRequirementTx)
	require.True(ok)
	require.Equal(wallet, change.Sender())
	require.Equal(uint64(3), change.Required)

	_, err = ParseUnsigned([]byte{0x00, 0x00, 0xff})
	require.Error(err)
}

func TestVerify(t *testing.T) {
	from := ids.GenerateTestShortID()

	tests := []struct {
		name    string
		tx      *Tx
		wantErr error
	}{
		{
			name:    "nil body",
			tx:      &Tx{},
			wantErr: ErrNilTx,
		},
		{
			name:    "missing sender",
			tx:      &Tx{Unsigned: &BurnTx{Amount: *uint256.NewInt(1)}},
			wantErr: ErrMissingSender,
		},
		{
			name: "batch length mismatch",
			tx: &Tx{Unsigned: &BatchTransferTx{
				BaseTx:     BaseTx{From: from},
				Recipients: []ids.ShortID{ids.GenerateTestShortID()},
			}},
			wantErr: ErrLengthMismatch,
		},
		{
			name:    "empty batch",
			tx:      &Tx{Unsigned: &BatchTransferTx{BaseTx: BaseTx{From: from}}},
			wantErr: ErrEmptyBatch,
		},
		{
			name:    "empty exemption batch",
			tx:      &Tx{Unsigned: &BatchSetFeeExemptTx{BaseTx: BaseTx{From: from}}},
			wantErr: ErrEmptyBatch,
		},
		{
			name:    "proposal without action",
			tx:      &Tx{Unsigned: &ProposeTx{BaseTx: BaseTx{From: from}, Description: "x"}},
			wantErr: ErrMissingAction,
		},
		{
			name:    "wallet tx without wallet",
			tx:      &Tx{Unsigned: &ConfirmTx{WalletTx: WalletTx{BaseTx: BaseTx{From: from}}}},
			wantErr: ErrMissingWallet,
		},
		{
			name: "valid transfer",
			tx: &Tx{Unsigned: &TransferTx{
				BaseTx: BaseTx{From: from},
				To:     ids.GenerateTestShortID(),
				Amount: *uint256.NewInt(1),
			}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.tx.Verify(), tt.wantErr)
		})
	}
}

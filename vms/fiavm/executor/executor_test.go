// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import (
	"slices"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/fia/vms/fiavm/config"
	"github.com/luxfi/fia/vms/fiavm/events"
	"github.com/luxfi/fia/vms/fiavm/ledger"
	"github.com/luxfi/fia/vms/fiavm/multisig"
	"github.com/luxfi/fia/vms/fiavm/state"
	"github.com/luxfi/fia/vms/fiavm/txs"
)

type environment struct {
	state    *state.State
	events   *events.Buffer
	owners   []ids.ShortID
	wallet   ids.ShortID
	treasury ids.ShortID
}

// newEnvironment creates a 2-of-3 wallet that owns the token.
func newEnvironment(t *testing.T) *environment {
	require := require.New(t)

	owners := []ids.ShortID{
		ids.GenerateTestShortID(),
		ids.GenerateTestShortID(),
		ids.GenerateTestShortID(),
	}
	slices.SortFunc(owners, ids.ShortID.Compare)
	env := &environment{
		state:    state.New(memdb.New()),
		events:   &events.Buffer{},
		owners:   owners,
		treasury: ids.GenerateTestShortID(),
	}

	txID := ids.GenerateTestID()
	e := env.executor(txID)
	require.NoError(e.Execute(&txs.CreateWalletTx{
		BaseTx:   txs.BaseTx{From: owners[0]},
		Owners:   owners,
		Required: 2,
	}))
	env.wallet = multisig.WalletAddress(txID)

	require.NoError(env.state.SetAdmin(&state.Admin{
		Owner:    env.wallet,
		Treasury: env.treasury,
		Founder:  ids.GenerateTestShortID(),
	}))
	require.NoError(env.state.SetFeeConfig(&state.FeeConfig{
		TotalFeeBP: 100,
		TreasuryBP: 100,
	}))
	return env
}

func (env *environment) executor(txID ids.ID) *Executor {
	block := ledger.Block{Height: 1, Time: time.Unix(1_700_000_000, 0)}
	return New(env.state, env.events, block, config.DefaultConfig(), txID)
}

func (env *environment) execute(unsigned txs.UnsignedTx) error {
	return env.executor(ids.GenerateTestID()).Execute(unsigned)
}

func (env *environment) walletTx(from ids.ShortID) txs.WalletTx {
	return txs.WalletTx{BaseTx: txs.BaseTx{From: from}, Wallet: env.wallet}
}

// submit proposes a wallet call and returns its index.
func (env *environment) submit(t *testing.T, dest ids.ShortID, value uint64, body txs.UnsignedTx) uint64 {
	require := require.New(t)

	var data []byte
	if body != nil {
		var err error
		data, err = txs.MarshalUnsigned(body)
		require.NoError(err)
	}
	w, err := env.state.Wallet(env.wallet)
	require.NoError(err)
	require.NoError(env.execute(&txs.SubmitTx{
		WalletTx:    env.walletTx(env.owners[0]),
		Destination: dest,
		Value:       *uint256.NewInt(value),
		Data:        data,
	}))
	return w.TxCount
}

func (env *environment) confirmAndExecute(t *testing.T, index uint64) error {
	require.NoError(t, env.execute(&txs.ConfirmTx{WalletTx: env.walletTx(env.owners[1]), TxIndex: index}))
	return env.execute(&txs.ExecuteTx{WalletTx: env.walletTx(env.owners[2]), TxIndex: index})
}

func TestWalletPausesToken(t *testing.T) {
	require := require.New(t)
	env := newEnvironment(t)

	err := env.execute(&txs.PauseTx{BaseTx: txs.BaseTx{From: env.owners[0]}})
	require.ErrorIs(err, ledger.ErrNotOwner)

	index := env.submit(t, ledger.TokenAddress, 0, &txs.PauseTx{BaseTx: txs.BaseTx{From: env.wallet}})

	// One confirmation is not enough.
	err = env.execute(&txs.ExecuteTx{WalletTx: env.walletTx(env.owners[0]), TxIndex: index})
	require.ErrorIs(err, multisig.ErrNotEnoughConfirmations)

	require.NoError(env.confirmAndExecute(t, index))
	admin, err := env.state.Admin()
	require.NoError(err)
	require.True(admin.Paused)

	err = env.execute(&txs.ExecuteTx{WalletTx: env.walletTx(env.owners[0]), TxIndex: index})
	require.ErrorIs(err, multisig.ErrAlreadyExecuted)
}

func TestWalletManagesItself(t *testing.T) {
	require := require.New(t)
	env := newEnvironment(t)

	newOwner := ids.GenerateTestShortID()
	err := env.execute(&txs.AddOwnerTx{WalletTx: env.walletTx(env.owners[0]), Owner: newOwner})
	require.ErrorIs(err, multisig.ErrOnlyWallet)

	index := env.submit(t, env.wallet, 0, &txs.AddOwnerTx{
		WalletTx: txs.WalletTx{BaseTx: txs.BaseTx{From: env.wallet}, Wallet: env.wallet},
		Owner:    newOwner,
	})
	require.NoError(env.confirmAndExecute(t, index))

	w, err := env.state.Wallet(env.wallet)
	require.NoError(err)
	require.Contains(w.Owners, newOwner)
}

func TestWalletCallValidation(t *testing.T) {
	env := newEnvironment(t)
	stranger := ids.GenerateTestShortID()

	tests := []struct {
		name    string
		dest    ids.ShortID
		body    txs.UnsignedTx
		wantErr error
	}{
		{
			name:    "management addressed to the token",
			dest:    ledger.TokenAddress,
			body:    &txs.ChangeRequirementTx{WalletTx: txs.WalletTx{BaseTx: txs.BaseTx{From: env.wallet}, Wallet: env.wallet}, Required: 1},
			wantErr: ErrInvalidDestination,
		},
		{
			name:    "token call addressed to the wallet",
			dest:    env.wallet,
			body:    &txs.PauseTx{BaseTx: txs.BaseTx{From: env.wallet}},
			wantErr: ErrInvalidDestination,
		},
		{
			name:    "body sent by someone else",
			dest:    ledger.TokenAddress,
			body:    &txs.PauseTx{BaseTx: txs.BaseTx{From: stranger}},
			wantErr: ErrSenderMismatch,
		},
		{
			name:    "failing body",
			dest:    ledger.TokenAddress,
			body:    &txs.MintTx{BaseTx: txs.BaseTx{From: env.wallet}, To: stranger},
			wantErr: ledger.ErrZeroAmount,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			index := env.submit(t, tt.dest, 0, tt.body)
			err := env.confirmAndExecute(t, index)
			require.ErrorIs(err, multisig.ErrExecutionFailed)
			require.ErrorIs(err, tt.wantErr)

			tx, err := env.state.MultisigTx(env.wallet, index)
			require.NoError(err)
			require.False(tx.Executed)
		})
	}
}

func TestWalletSendsValue(t *testing.T) {
	require := require.New(t)
	env := newEnvironment(t)

	l := ledger.New(env.state, events.Discard, ledger.Block{})
	require.NoError(l.MintTo(env.wallet, uint256.NewInt(1_000)))

	dest := ids.GenerateTestShortID()
	index := env.submit(t, dest, 500, nil)
	require.NoError(env.confirmAndExecute(t, index))

	balance, err := env.state.Balance(dest)
	require.NoError(err)
	require.Equal(uint256.NewInt(495), balance)
	balance, err = env.state.Balance(env.treasury)
	require.NoError(err)
	require.Equal(uint256.NewInt(5), balance)
	balance, err = env.state.Balance(env.wallet)
	require.NoError(err)
	require.Equal(uint256.NewInt(500), balance)
}

func TestWalletMintsThroughToken(t *testing.T) {
	require := require.New(t)
	env := newEnvironment(t)

	to := ids.GenerateTestShortID()
	index := env.submit(t, ledger.TokenAddress, 0, &txs.MintTx{
		BaseTx: txs.BaseTx{From: env.wallet},
		To:     to,
		Amount: *uint256.NewInt(77),
	})
	require.NoError(env.confirmAndExecute(t, index))

	balance, err := env.state.Balance(to)
	require.NoError(err)
	require.Equal(uint256.NewInt(77), balance)
	supply, err := env.state.TotalSupply()
	require.NoError(err)
	require.Equal(uint256.NewInt(77), supply)
}

func TestExecuteDispatch(t *testing.T) {
	require := require.New(t)
	env := newEnvironment(t)

	alice := ids.GenerateTestShortID()
	bob := ids.GenerateTestShortID()
	l := ledger.New(env.state, events.Discard, ledger.Block{})
	require.NoError(l.MintTo(alice, uint256.NewInt(10_000)))

	require.NoError(env.execute(&txs.TransferTx{
		BaseTx: txs.BaseTx{From: alice},
		To:     bob,
		Amount: *uint256.NewInt(1_000),
	}))
	require.NoError(env.execute(&txs.ApproveTx{
		BaseTx:  txs.BaseTx{From: alice},
		Spender: bob,
		Amount:  *uint256.NewInt(100),
	}))
	require.NoError(env.execute(&txs.TransferFromTx{
		BaseTx: txs.BaseTx{From: bob},
		Owner:  alice,
		To:     bob,
		Amount: *uint256.NewInt(100),
	}))
	require.NoError(env.execute(&txs.BurnTx{
		BaseTx: txs.BaseTx{From: bob},
		Amount: *uint256.NewInt(10),
	}))

	balance, err := env.state.Balance(bob)
	require.NoError(err)
	require.Equal(uint256.NewInt(990+99-10), balance)

	err = env.execute(&txs.BatchTransferTx{BaseTx: txs.BaseTx{From: alice}})
	require.ErrorIs(err, txs.ErrEmptyBatch)
	require.ErrorIs(env.execute(nil), txs.ErrNilTx)
}

func TestCallDepthLimited(t *testing.T) {
	require := require.New(t)
	env := newEnvironment(t)

	e := env.executor(ids.GenerateTestID())
	e.depth = MaxCallDepth
	body, err := txs.MarshalUnsigned(&txs.PauseTx{BaseTx: txs.BaseTx{From: env.wallet}})
	require.NoError(err)

	err = e.Call(multisig.Call{
		Wallet:      env.wallet,
		Destination: ledger.TokenAddress,
		Value:       new(uint256.Int),
		Data:        body,
	})
	require.ErrorIs(err, ErrCallDepthExceeded)
}

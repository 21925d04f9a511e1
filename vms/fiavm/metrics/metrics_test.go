// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/gorilla/rpc/v2"
	"github.com/holiman/uint256"
	"github.com/luxfi/ids"
	"github.com/luxfi/metric"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/fia/utils/units"
	"github.com/luxfi/fia/vms/fiavm/events"
	"github.com/luxfi/fia/vms/fiavm/txs"
)

func TestMetrics(t *testing.T) {
	require := require.New(t)

	m, err := New(metric.NewRegistry())
	require.NoError(err)

	tx, err := txs.NewTx(&txs.BurnTx{
		BaseTx: txs.BaseTx{From: ids.GenerateTestShortID()},
		Amount: *uint256.NewInt(1),
	})
	require.NoError(err)
	require.NoError(m.MarkTxAccepted(tx))

	m.MarkTxFailed()
	m.ObserveEvents([]events.Event{&events.Burn{}, &events.Transfer{}})
	m.SetSupply(units.Tokens(1_000), units.Tokens(1), new(uint256.Int))

	info := &rpc.RequestInfo{
		Method:  "fia.status",
		Request: httptest.NewRequest("POST", "/ext/bc/fia", nil),
	}
	info.Request = m.InterceptRequest(info)
	require.NotNil(info.Request)
	m.AfterRequest(info)
}

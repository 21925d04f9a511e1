// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package events

import (
	"encoding/json"
	"testing"

	"github.com/holiman/uint256"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"
)

func TestLogAppendAndRange(t *testing.T) {
	require := require.New(t)

	l := NewLog(memdb.New())
	from := ids.GenerateTestShortID()
	to := ids.GenerateTestShortID()
	txID := ids.GenerateTestID()

	var buf Buffer
	buf.Emit(&Transfer{From: from, To: to, Amount: *uint256.NewInt(95)})
	buf.Emit(&FeeExemptionChanged{Account: to, Exempt: true})

	records, err := l.Append(3, 1000, txID, buf.Events())
	require.NoError(err)
	require.Len(records, 2)
	require.Equal(uint64(0), records[0].Seq)
	require.Equal(uint64(1), records[1].Seq)

	records, err = l.Append(4, 1001, ids.GenerateTestID(), []Event{&Paused{By: from}})
	require.NoError(err)
	require.Equal(uint64(2), records[0].Seq)

	count, err := l.Count()
	require.NoError(err)
	require.Equal(uint64(3), count)

	got, err := l.Range(1, 10)
	require.NoError(err)
	require.Len(got, 2)
	require.Equal(&FeeExemptionChanged{Account: to, Exempt: true}, got[0].Event)
	require.Equal(uint64(3), got[0].Height)
	require.Equal(txID, got[0].TxID)
	require.Equal("Paused", got[1].Event.Name())

	got, err = l.Range(0, 1)
	require.NoError(err)
	require.Len(got, 1)
	require.Equal(&Transfer{From: from, To: to, Amount: *uint256.NewInt(95)}, got[0].Event)
}

func TestAppendNothing(t *testing.T) {
	require := require.New(t)

	l := NewLog(memdb.New())
	records, err := l.Append(1, 1, ids.Empty, nil)
	require.NoError(err)
	require.Empty(records)

	count, err := l.Count()
	require.NoError(err)
	require.Zero(count)
}

func TestRecordJSON(t *testing.T) {
	require := require.New(t)

	r := &Record{
		Seq:   5,
		Event: &Transfer{Amount: *uint256.NewInt(42)},
	}
	b, err := json.Marshal(r)
	require.NoError(err)

	var decoded map[string]interface{}
	require.NoError(json.Unmarshal(b, &decoded))
	require.Equal("Transfer", decoded["name"])
	require.Equal(float64(5), decoded["seq"])
	require.Equal("42", decoded["data"].(map[string]interface{})["amount"])
}

func TestFeed(t *testing.T) {
	require := require.New(t)

	var f Feed
	ch, unsubscribe := f.Subscribe(1)

	records := []*Record{{Seq: 0, Event: &Paused{}}, {Seq: 1, Event: &Unpaused{}}}
	f.Publish(records)

	r := <-ch
	require.Equal(uint64(0), r.Seq)
	// The second record did not fit and was dropped.
	select {
	case <-ch:
		require.FailNow("unexpected record")
	default:
	}

	unsubscribe()
	unsubscribe()
	_, ok := <-ch
	require.False(ok)
}

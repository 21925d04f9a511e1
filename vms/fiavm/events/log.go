// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/luxfi/database"
	"github.com/luxfi/database/prefixdb"
	"github.com/luxfi/ids"
)

var (
	recordPrefix = []byte("record")
	metaPrefix   = []byte("meta")
	countKey     = []byte("count")
)

// Record is a persisted event with its position in the log.
type Record struct {
	Seq       uint64 `serialize:"true" json:"seq"`
	Height    uint64 `serialize:"true" json:"height"`
	Timestamp uint64 `serialize:"true" json:"timestamp"`
	TxID      ids.ID `serialize:"true" json:"txID"`
	Event     Event  `serialize:"true" json:"-"`
}

// MarshalJSON renders the event under its name so collaborators can dispatch
// on it without knowing the codec type ids.
func (r *Record) MarshalJSON() ([]byte, error) {
	type record Record
	return json.Marshal(struct {
		*record
		Name string `json:"name"`
		Data Event  `json:"data"`
	}{
		record: (*record)(r),
		Name:   r.Event.Name(),
		Data:   r.Event,
	})
}

// Log is the append-only event log stored in the VM database.
type Log struct {
	recordDB database.Database
	metaDB   database.Database
}

func NewLog(db database.Database) *Log {
	return &Log{
		recordDB: prefixdb.New(recordPrefix, db),
		metaDB:   prefixdb.New(metaPrefix, db),
	}
}

// Count returns the number of records in the log.
func (l *Log) Count() (uint64, error) {
	count, err := database.GetUInt64(l.metaDB, countKey)
	if errors.Is(err, database.ErrNotFound) {
		return 0, nil
	}
	return count, err
}

// Append persists evs as consecutive records and returns them.
func (l *Log) Append(height, timestamp uint64, txID ids.ID, evs []Event) ([]*Record, error) {
	if len(evs) == 0 {
		return nil, nil
	}
	seq, err := l.Count()
	if err != nil {
		return nil, err
	}

	records := make([]*Record, 0, len(evs))
	for _, e := range evs {
		r := &Record{
			Seq:       seq,
			Height:    height,
			Timestamp: timestamp,
			TxID:      txID,
			Event:     e,
		}
		b, err := Codec.Marshal(CodecVersion, r)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s event: %w", e.Name(), err)
		}
		if err := l.recordDB.Put(database.PackUInt64(seq), b); err != nil {
			return nil, err
		}
		records = append(records, r)
		seq++
	}
	return records, database.PutUInt64(l.metaDB, countKey, seq)
}

// Range returns at most limit records starting at sequence number from.
func (l *Log) Range(from uint64, limit int) ([]*Record, error) {
	iter := l.recordDB.NewIteratorWithStart(database.PackUInt64(from))
	defer iter.Release()

	var records []*Record
	for len(records) < limit && iter.Next() {
		r := &Record{}
		if _, err := Codec.Unmarshal(iter.Value(), r); err != nil {
			return nil, fmt.Errorf("failed to unmarshal event: %w", err)
		}
		records = append(records, r)
	}
	return records, iter.Error()
}

// Feed fans committed records out to in-process subscribers. Slow
// subscribers miss records rather than block block processing.
type Feed struct {
	lock   sync.Mutex
	nextID int
	subs   map[int]chan *Record
}

// Subscribe registers a subscriber with the given channel capacity. The
// returned function unsubscribes and closes the channel.
func (f *Feed) Subscribe(capacity int) (<-chan *Record, func()) {
	f.lock.Lock()
	defer f.lock.Unlock()

	if f.subs == nil {
		f.subs = make(map[int]chan *Record)
	}
	id := f.nextID
	f.nextID++
	ch := make(chan *Record, capacity)
	f.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			f.lock.Lock()
			defer f.lock.Unlock()
			delete(f.subs, id)
			close(ch)
		})
	}
}

// Publish delivers records to every subscriber without blocking.
func (f *Feed) Publish(records []*Record) {
	f.lock.Lock()
	defer f.lock.Unlock()

	for _, ch := range f.subs {
		for _, r := range records {
			select {
			case ch <- r:
			default:
			}
		}
	}
}

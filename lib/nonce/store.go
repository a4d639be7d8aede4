// Copyright 2026 The Cachet Authors
// SPDX-License-Identifier: Apache-2.0

package nonce

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	bolt "go.etcd.io/bbolt"
)

// counterBucket holds one 8-byte big-endian high-water mark per
// stream name.
var counterBucket = []byte("counters")

// reserveBatch is how far ahead of the issued position the persisted
// high-water mark runs. One synced write per reserveBatch nonces; a
// crash burns at most reserveBatch values.
const reserveBatch = 1024

// CounterStore is a durable counter nonce source backed by a bbolt
// database file. It guarantees nonce uniqueness across process
// restarts and crashes: a reservation high-water mark is persisted
// before any value below it is issued, and reopening the store
// resumes at the persisted mark. Sequences may therefore contain
// gaps (up to reserveBatch per crash), never repeats.
//
// bbolt holds an exclusive file lock for the life of the store, which
// enforces the single-writer requirement of counter nonces: a second
// process opening the same path blocks until the first releases it.
//
// A store carries independent named streams (see Stream); the store
// itself issues from the "default" stream. Safe for concurrent use.
type CounterStore struct {
	db     *bolt.DB
	closed atomic.Bool

	mu      sync.Mutex // guards streams and serializes writes with Close
	streams map[string]*counterStream
}

// counterStream is the in-memory issuing state for one named stream.
type counterStream struct {
	store *CounterStore
	name  []byte

	mu          sync.Mutex
	lastIssued  uint64
	reservedMax uint64
}

// OpenCounterStore opens (creating if necessary) the counter database
// at path. The caller must Close the store when done; nonces issued
// from it are unique across the file's entire history.
func OpenCounterStore(path string) (*CounterStore, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("nonce: opening counter store: %w", err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(counterBucket)
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("nonce: initializing counter store: %w", err)
	}

	return &CounterStore{
		db:      db,
		streams: make(map[string]*counterStream),
	}, nil
}

// Stream returns the named counter stream, creating it on first use.
// Distinct names are independent sequences stored in the same file;
// give each sealing key its own stream when several keys share a
// store. The returned Source stays valid until the store is closed.
func (s *CounterStore) Stream(name string) (Source, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if stream, ok := s.streams[name]; ok {
		return stream, nil
	}

	stream := &counterStream{store: s, name: []byte(name)}

	// Resume from the persisted high-water mark. The whole previous
	// reservation window counts as issued; a fresh stream starts at
	// zero.
	if err := s.db.View(func(tx *bolt.Tx) error {
		record := tx.Bucket(counterBucket).Get(stream.name)
		if record == nil {
			return nil
		}
		if len(record) != counterWidth {
			return fmt.Errorf("nonce: corrupt counter record for stream %q: %d bytes", name, len(record))
		}
		stream.reservedMax = binary.BigEndian.Uint64(record)
		stream.lastIssued = stream.reservedMax
		return nil
	}); err != nil {
		return nil, err
	}

	s.streams[name] = stream
	return stream, nil
}

// Next issues a nonce from the "default" stream.
func (s *CounterStore) Next(size int) ([]byte, error) {
	stream, err := s.Stream("default")
	if err != nil {
		return nil, err
	}
	return stream.Next(size)
}

// Close closes the database file. Reservations are already durable,
// so there is nothing to flush; subsequent Next calls on the store or
// its streams return ErrClosed.
func (s *CounterStore) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// Next returns the next nonce in the stream's sequence. Returns
// ErrShortNonce if size cannot hold the counter, ErrClosed after the
// store is closed, and ErrExhausted once the counter space is spent.
func (cs *counterStream) Next(size int) ([]byte, error) {
	if err := checkCounterSize(size); err != nil {
		return nil, err
	}
	if cs.store.closed.Load() {
		return nil, ErrClosed
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()

	if cs.lastIssued == cs.reservedMax {
		if err := cs.extendReservation(); err != nil {
			return nil, err
		}
	}

	cs.lastIssued++
	return formatCounter(size, cs.lastIssued), nil
}

// extendReservation persists a new high-water mark reserveBatch ahead
// of the issued position. Called with cs.mu held.
func (cs *counterStream) extendReservation() error {
	if cs.lastIssued == math.MaxUint64 {
		return ErrExhausted
	}
	newMax := cs.lastIssued + reserveBatch
	if newMax < cs.lastIssued {
		newMax = math.MaxUint64
	}

	store := cs.store
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.closed.Load() {
		return ErrClosed
	}

	record := make([]byte, counterWidth)
	binary.BigEndian.PutUint64(record, newMax)
	if err := store.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(counterBucket).Put(cs.name, record)
	}); err != nil {
		return fmt.Errorf("nonce: extending counter reservation: %w", err)
	}

	cs.reservedMax = newMax
	return nil
}

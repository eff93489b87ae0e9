// Package store persists the last serialized board of each relay room so
// that a dropped client can log back in.
package store

import (
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/impodog/termichess/internal/errors"
)

const roomPrefix = "room/"

// Snapshot is the stored state of one room.
type Snapshot struct {
	Board string    `json:"board"`
	Saved time.Time `json:"saved"`
}

// Store wraps BadgerDB for room snapshots.
type Store struct {
	db  *badger.DB
	ttl time.Duration
}

// Open opens the store in dir, or an in-memory store when dir is empty.
// Snapshots expire ttl after their last save; zero keeps them forever.
func Open(dir string, ttl time.Duration) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "opening room store")
	}
	return &Store{db: db, ttl: ttl}, nil
}

// Close closes the database
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func roomKey(room string) []byte {
	return []byte(roomPrefix + room)
}

// Save records board as the latest state of room.
func (s *Store) Save(room, board string) error {
	data, err := json.Marshal(Snapshot{Board: board, Saved: time.Now()})
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(roomKey(room), data)
		if s.ttl > 0 {
			entry = entry.WithTTL(s.ttl)
		}
		return txn.SetEntry(entry)
	})
}

// Load returns the latest snapshot of room, or ErrRoomNotFound.
func (s *Store) Load(room string) (Snapshot, error) {
	var snap Snapshot

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(roomKey(room))
		if err == badger.ErrKeyNotFound {
			return errors.Wrapf(errors.ErrRoomNotFound, "no stored board for %q", room)
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &snap)
		})
	})

	return snap, err
}

// Delete removes the snapshot of room. Deleting a missing room is not an error.
func (s *Store) Delete(room string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(roomKey(room))
	})
}

// Rooms lists the rooms that have a snapshot.
func (s *Store) Rooms() ([]string, error) {
	var rooms []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(roomPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			key := it.Item().Key()
			rooms = append(rooms, string(key[len(roomPrefix):]))
		}
		return nil
	})

	return rooms, err
}

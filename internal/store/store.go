package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

var (
	checkpointsBucket = []byte("checkpoints")
	groupsBucket      = []byte("groups")
)

// isoFormat is how checkpoint instants are serialized.
const isoFormat = time.RFC3339

// Store is the local key-value persistence for sync checkpoints and the
// group registry. One file, one local user; every update is a full
// read-modify-write with no concurrent-writer protection.
type Store struct {
	db *bbolt.DB
}

// Open opens (or creates) the store file and its buckets.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(checkpointsBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(groupsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init store: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// LoadCheckpoints reads the full chat-name -> ISO instant mapping. A
// missing bucket or unreadable store yields an empty map, never an error.
func (s *Store) LoadCheckpoints() map[string]string {
	out := make(map[string]string)
	s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(checkpointsBucket)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			out[string(k)] = string(v)
			return nil
		})
	})
	return out
}

// SaveCheckpoints replaces the stored mapping wholesale.
func (s *Store) SaveCheckpoints(m map[string]string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(checkpointsBucket); err != nil && err != bbolt.ErrBucketNotFound {
			return err
		}
		b, err := tx.CreateBucket(checkpointsBucket)
		if err != nil {
			return err
		}
		for k, v := range m {
			if err := b.Put([]byte(k), []byte(v)); err != nil {
				return err
			}
		}
		return nil
	})
}

// SetCheckpoint records t as the last-synced instant for chatName.
func (s *Store) SetCheckpoint(chatName string, t time.Time) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(checkpointsBucket).Put([]byte(chatName), []byte(t.Format(isoFormat)))
	})
}

// CheckpointTime resolves a stored checkpoint value to an instant.
// Missing or unparseable values count as absent.
func CheckpointTime(checkpoints map[string]string, chatName string) (time.Time, bool) {
	raw, ok := checkpoints[chatName]
	if !ok || raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(isoFormat, raw); err == nil {
		return t, true
	}
	// Older entries were written without a zone offset.
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", raw, time.Local); err == nil {
		return t, true
	}
	return time.Time{}, false
}

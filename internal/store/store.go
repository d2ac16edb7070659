package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

// DatabaseFile is the bbolt file name inside the data directory
const DatabaseFile = "cinesearch.db"

var bucketRecords = []byte("records")

// RecordStore implements domain.RecordStore using BoltDB.
// Every key holds one opaque record; values are copied in and out.
type RecordStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory copy of every record read or written (promoted on access).
	// In memory-only mode this is the only storage.
	cache   map[string][]byte
	missing map[string]bool // Keys known to be absent
}

// NewRecordStore opens (or creates) the database under dir.
// An empty dir selects memory-only mode with no persistence.
func NewRecordStore(dir string) (*RecordStore, error) {
	if dir == "" {
		return newMemoryStore(), nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, DatabaseFile)
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRecords)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	s := newMemoryStore()
	s.db = db
	return s, nil
}

func newMemoryStore() *RecordStore {
	return &RecordStore{
		cache:   make(map[string][]byte),
		missing: make(map[string]bool),
	}
}

// Path returns the database path for dir
func Path(dir string) string {
	return filepath.Join(dir, DatabaseFile)
}

// Remove deletes the database file under dir. A missing file is not an error.
// An empty dir is memory-only mode and has nothing to remove.
func Remove(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.Remove(Path(dir)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove database: %w", err)
	}
	return nil
}

func (s *RecordStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *RecordStore) Get(key string) ([]byte, bool, error) {
	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return clone(data), true, nil
	}
	if s.missing[key] || s.db == nil {
		s.mu.RUnlock()
		return nil, false, nil
	}
	s.mu.RUnlock()

	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRecords)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			// bbolt values are only valid for the life of the transaction
			data = clone(v)
		}
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %q: %w", key, err)
	}

	// Promote to memory cache
	s.mu.Lock()
	if data == nil {
		s.missing[key] = true
	} else {
		s.cache[key] = data
	}
	s.mu.Unlock()

	if data == nil {
		return nil, false, nil
	}
	return clone(data), true, nil
}

func (s *RecordStore) Put(key string, value []byte) error {
	data := clone(value)
	if data == nil {
		data = []byte{}
	}

	if s.db != nil {
		err := s.db.Update(func(tx *bolt.Tx) error {
			return tx.Bucket(bucketRecords).Put([]byte(key), data)
		})
		if err != nil {
			return fmt.Errorf("failed to write %q: %w", key, err)
		}
	}

	// Cache only after a successful write so reads never see unpersisted data
	s.mu.Lock()
	s.cache[key] = data
	delete(s.missing, key)
	s.mu.Unlock()

	return nil
}

func (s *RecordStore) Delete(key string) error {
	if s.db != nil {
		err := s.db.Update(func(tx *bolt.Tx) error {
			b := tx.Bucket(bucketRecords)
			if b == nil {
				return nil
			}
			return b.Delete([]byte(key))
		})
		if err != nil {
			return fmt.Errorf("failed to delete %q: %w", key, err)
		}
	}

	s.mu.Lock()
	delete(s.cache, key)
	s.missing[key] = true
	s.mu.Unlock()

	return nil
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

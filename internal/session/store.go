package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/fastygo/taskie/domain"
)

var currentKey = []byte("current")

// Store wraps BoltDB to persist the session between process runs.
type Store struct {
	db     *bolt.DB
	bucket []byte
}

// Open initializes the BoltDB file and ensures the bucket exists.
func Open(path string, bucket string) (*Store, error) {
	if bucket == "" {
		bucket = "session"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db:     db,
		bucket: []byte(bucket),
	}, nil
}

// Load returns the persisted session or domain.ErrSessionNotFound.
func (s *Store) Load() (domain.Session, error) {
	if s == nil || s.db == nil {
		return domain.Session{}, bolt.ErrDatabaseNotOpen
	}
	var sess domain.Session
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(s.bucket).Get(currentKey)
		if raw == nil {
			return domain.ErrSessionNotFound
		}
		if err := json.Unmarshal(raw, &sess); err != nil {
			return domain.WrapError(domain.ErrCodeDecode, "corrupt session record", err)
		}
		return nil
	})
	if err != nil {
		return domain.Session{}, err
	}
	if !sess.Valid() {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return sess, nil
}

// Save persists sess, replacing any previous one.
func (s *Store) Save(sess domain.Session) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	if !sess.Valid() {
		return domain.ErrInvalidPayload
	}
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = time.Now().UTC()
	}
	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put(currentKey, payload)
	})
}

// Delete removes the persisted session. Deleting an empty store is not an error.
func (s *Store) Delete() error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Delete(currentKey)
	})
}

// Close closes the Bolt database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

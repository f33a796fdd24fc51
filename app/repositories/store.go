package repositories

import (
	"fmt"
	"sync"

	"blogsite/app/config"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/sha3"
)

// Store owns the badger database shared by the repositories.
type Store struct {
	db         *badger.DB
	mutex      sync.RWMutex
	path       string
	postIDs    *IDSequence
	commentIDs *IDSequence
}

// Open opens (or creates) the record store described by cfg.
func Open(cfg config.StorageConfig, logger *zap.Logger) (*Store, error) {
	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts = opts.WithNumVersionsToKeep(1)

	if logger != nil {
		opts = opts.WithLogger(badgerLogger{logger.Named("badger").Sugar()})
	} else {
		opts = opts.WithLogger(nil)
	}

	if cfg.EncryptionPassphrase != "" {
		opts = opts.
			WithEncryptionKey(EncryptionKey(cfg.EncryptionPassphrase)).
			WithIndexCacheSize(64 << 20)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger at %q: %w", cfg.Path, err)
	}
	store := NewStore(db)
	store.path = cfg.Path
	return store, nil
}

// NewStore wraps an already opened database.
func NewStore(db *badger.DB) *Store {
	return &Store{
		db:         db,
		postIDs:    NewIDSequence(db, PostSeqKey),
		commentIDs: NewIDSequence(db, CommentSeqKey),
	}
}

// EncryptionKey derives the 32 byte AES key badger needs from a passphrase.
func EncryptionKey(passphrase string) []byte {
	sum := sha3.Sum256([]byte(passphrase))
	return sum[:]
}

func (s *Store) DB() *badger.DB {
	return s.db
}

func (s *Store) Posts() *BadgerPostRepository {
	return NewBadgerPostRepository(s.db, s.postIDs)
}

func (s *Store) Comments() *BadgerCommentRepository {
	return NewBadgerCommentRepository(s.db, s.commentIDs)
}

// Healthy reports whether the database is open.
func (s *Store) Healthy() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.db != nil && !s.db.IsClosed()
}

// Clear drops every key. IDs start again from 1.
func (s *Store) Clear() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if err := s.releaseIDs(); err != nil {
		return err
	}
	return s.db.DropAll()
}

// Close returns the ID leases and closes the database.
func (s *Store) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	releaseErr := s.releaseIDs()
	if err := s.db.Close(); err != nil {
		return err
	}
	return releaseErr
}

func (s *Store) releaseIDs() error {
	if err := s.postIDs.Release(); err != nil {
		return fmt.Errorf("failed to release post ids: %w", err)
	}
	if err := s.commentIDs.Release(); err != nil {
		return fmt.Errorf("failed to release comment ids: %w", err)
	}
	return nil
}

// badgerLogger adapts zap to badger.Logger.
type badgerLogger struct {
	*zap.SugaredLogger
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.Warnf(format, args...)
}

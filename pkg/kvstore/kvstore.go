// Package kvstore persists application state as whole JSON documents under
// flat string keys — the same layout the terminal has always used
// ("products", "sales", "settings", ...). A write always replaces the full
// document; there are no partial updates and no cross-key transactions.
//
// The gorm-backed store is the production implementation. NewMemory returns
// a map-backed store with identical semantics for tests and ephemeral runs.
package kvstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vendixlabs/vendix/pkg/logger"
)

// ErrNotFound is returned by Get when no document exists under the key.
var ErrNotFound = errors.New("kvstore: key not found")

// Store is a whole-document JSON key/value store.
type Store interface {
	// Get unmarshals the document stored under key into dest.
	// Returns ErrNotFound if the key is absent.
	Get(key string, dest interface{}) error

	// Put marshals value and replaces the document stored under key.
	Put(key string, value interface{}) error

	// Delete removes the document stored under key. Absent keys are a no-op.
	Delete(key string) error

	// Has reports whether a document exists under key.
	Has(key string) bool
}

// Document is the single table backing the gorm store.
type Document struct {
	DocKey    string `gorm:"column:doc_key;primaryKey;size:64"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}

func (Document) TableName() string { return "documents" }

// ─── gorm-backed store ────────────────────────────────────────────────────────

type gormStore struct {
	db *gorm.DB
}

// NewGorm wraps a gorm handle as a Store and ensures the documents table
// exists.
func NewGorm(db *gorm.DB) (Store, error) {
	if err := db.AutoMigrate(&Document{}); err != nil {
		return nil, fmt.Errorf("kvstore: migrate: %w", err)
	}
	return &gormStore{db: db}, nil
}

func (s *gormStore) Get(key string, dest interface{}) error {
	var doc Document
	err := s.db.Where("doc_key = ?", key).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("kvstore: get %q: %w", key, err)
	}
	if err := json.Unmarshal([]byte(doc.Value), dest); err != nil {
		// A corrupted document is surfaced, not repaired.
		return fmt.Errorf("kvstore: decode %q: %w", key, err)
	}
	return nil
}

func (s *gormStore) Put(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kvstore: encode %q: %w", key, err)
	}

	doc := Document{DocKey: key, Value: string(raw), UpdatedAt: time.Now()}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "doc_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&doc).Error
	if err != nil {
		return fmt.Errorf("kvstore: put %q: %w", key, err)
	}
	return nil
}

func (s *gormStore) Delete(key string) error {
	if err := s.db.Where("doc_key = ?", key).Delete(&Document{}).Error; err != nil {
		return fmt.Errorf("kvstore: delete %q: %w", key, err)
	}
	return nil
}

func (s *gormStore) Has(key string) bool {
	var n int64
	if err := s.db.Model(&Document{}).Where("doc_key = ?", key).Count(&n).Error; err != nil {
		logger.Error("kvstore: has", "key", key, "error", err)
		return false
	}
	return n > 0
}

// ─── in-memory store ──────────────────────────────────────────────────────────

type memStore struct {
	mu   sync.RWMutex
	docs map[string]string
}

// NewMemory returns a Store holding documents in process memory.
func NewMemory() Store {
	return &memStore{docs: map[string]string{}}
}

func (s *memStore) Get(key string, dest interface{}) error {
	s.mu.RLock()
	raw, ok := s.docs[key]
	s.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return fmt.Errorf("kvstore: decode %q: %w", key, err)
	}
	return nil
}

func (s *memStore) Put(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kvstore: encode %q: %w", key, err)
	}
	s.mu.Lock()
	s.docs[key] = string(raw)
	s.mu.Unlock()
	return nil
}

func (s *memStore) Delete(key string) error {
	s.mu.Lock()
	delete(s.docs, key)
	s.mu.Unlock()
	return nil
}

func (s *memStore) Has(key string) bool {
	s.mu.RLock()
	_, ok := s.docs[key]
	s.mu.RUnlock()
	return ok
}

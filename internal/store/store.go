package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"kioskanalyzer/internal/blob"
	"kioskanalyzer/internal/domain"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateItem      = errors.New("item already exists in inventory; record a purchase to add quantity")
	ErrInvalidTransaction = errors.New("invalid transaction")
)

// DefaultKey is the logical key the document lives under.
const DefaultKey = "appData"

// Updater receives a private copy of the current document and returns the
// replacement. Returning an error leaves the stored document untouched.
type Updater func(doc domain.Document) (domain.Document, error)

// Store owns the single persisted document. All mutation goes through
// Write so that read-modify-write happens as one unit.
type Store struct {
	mu     sync.RWMutex
	blobs  blob.Store
	key    string
	logger *zap.Logger
	doc    domain.Document
}

// New loads the document from blobs and runs the legacy migration once.
// Load failures are logged and replaced by the empty document.
func New(ctx context.Context, blobs blob.Store, key string, logger *zap.Logger) *Store {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Store{
		blobs:  blobs,
		key:    key,
		logger: logger.With(zap.String("document_key", key)),
	}
	s.doc = s.load(ctx)
	return s
}

// Read returns a copy of the current document.
func (s *Store) Read() domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

// Write applies update to the current document and persists the result.
// A persist failure is logged and the in-memory value is kept.
func (s *Store) Write(ctx context.Context, update Updater) (domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := update(s.doc.Clone())
	if err != nil {
		return s.doc.Clone(), err
	}

	s.doc = next.Clone()
	s.persist(ctx)
	return s.doc.Clone(), nil
}

// Reload re-reads the blob, for callers that know it was changed outside
// this process.
func (s *Store) Reload(ctx context.Context) domain.Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc = s.load(ctx)
	return s.doc.Clone()
}

func (s *Store) load(ctx context.Context) domain.Document {
	payload, ok, err := s.blobs.Get(ctx, s.key)
	if err != nil {
		s.logger.Error("failed to read document, using empty document", zap.Error(err))
		return emptyDocument()
	}
	if !ok {
		s.logger.Info("no stored document, starting empty")
		return emptyDocument()
	}

	var loaded map[string]any
	if err := json.Unmarshal(payload, &loaded); err != nil || loaded == nil {
		if err == nil {
			err = errors.New("document is not a JSON object")
		}
		s.logger.Warn("stored document is corrupt, using empty document", zap.Error(err))
		return emptyDocument()
	}

	merged := DeepMerge(emptyTree(), loaded)
	legacy := NeedsMigration(merged)
	doc := decodeDocument(Migrate(merged), s.logger)

	if legacy {
		s.logger.Info("migrated legacy otherExpenses field")
		s.doc = doc
		s.persist(ctx)
	}
	return doc
}

func (s *Store) persist(ctx context.Context) {
	payload, err := json.Marshal(s.doc)
	if err != nil {
		s.logger.Error("failed to encode document, keeping in-memory value", zap.Error(err))
		return
	}
	if err := s.blobs.Set(ctx, s.key, payload); err != nil {
		s.logger.Error("failed to persist document, keeping in-memory value", zap.Error(err))
	}
}

func emptyDocument() domain.Document {
	return domain.Document{
		Inventory:     []domain.InventoryItem{},
		Purchases:     []domain.Purchase{},
		Sales:         []domain.Sale{},
		OtherExpenses: []domain.Expense{},
	}
}

package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/drivesync/internal/core/domain"
	"github.com/custodia-labs/drivesync/internal/core/ports/driven"
)

// Ensure SearchIndex implements the interface.
var _ driven.SearchIndex = (*SearchIndex)(nil)

// SearchIndex is an in-memory implementation of driven.SearchIndex.
// Documents are stored by index name and id; upserts replace.
type SearchIndex struct {
	mu      sync.RWMutex
	indices map[string]map[string]domain.IndexDocument
	calls   []IndexCall
}

// IndexCall records one write against the index.
type IndexCall struct {
	Op    string // "upsert" or "delete"
	Index string
	IDs   []string
}

// NewSearchIndex creates a new in-memory search index.
func NewSearchIndex() *SearchIndex {
	return &SearchIndex{indices: make(map[string]map[string]domain.IndexDocument)}
}

// Upsert inserts or replaces docs by id.
func (s *SearchIndex) Upsert(_ context.Context, index string, docs []domain.IndexDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.indices[index]
	if !ok {
		idx = make(map[string]domain.IndexDocument)
		s.indices[index] = idx
	}

	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		idx[doc.DocumentID()] = doc
		ids = append(ids, doc.DocumentID())
	}
	s.calls = append(s.calls, IndexCall{Op: "upsert", Index: index, IDs: ids})
	return nil
}

// Delete removes ids from index. Unknown ids are ignored.
func (s *SearchIndex) Delete(_ context.Context, index string, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		delete(s.indices[index], id)
	}
	s.calls = append(s.calls, IndexCall{Op: "delete", Index: index, IDs: append([]string(nil), ids...)})
	return nil
}

// Get returns a stored document.
func (s *SearchIndex) Get(index, id string) (domain.IndexDocument, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.indices[index][id]
	return doc, ok
}

// IDs returns the sorted ids stored in index.
func (s *SearchIndex) IDs(index string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.indices[index]))
	for id := range s.indices[index] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Calls returns the writes made so far, in order.
func (s *SearchIndex) Calls() []IndexCall {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]IndexCall(nil), s.calls...)
}

// Close is a no-op.
func (s *SearchIndex) Close() error { return nil }

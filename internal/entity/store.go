// Package entity keeps the entities published by the console, addressable by identification.
package entity

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"objshell/internal/parser"
	"objshell/pkg/objtypes"
)

var (
	// ErrDuplicate is returned when an identification is already published.
	ErrDuplicate = errors.New("entity already published")
	// ErrNotFound is returned when no entity has the requested identification.
	ErrNotFound = errors.New("entity not found")
)

// Store is an in-memory entity store safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	entities map[string]objtypes.EntityRecord
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{entities: make(map[string]objtypes.EntityRecord)}
}

// Publish stores e under its identification in category.
func (s *Store) Publish(category string, e objtypes.Entity) (objtypes.EntityRecord, error) {
	if e == nil {
		return objtypes.EntityRecord{}, fmt.Errorf("entity cannot be nil")
	}
	id := e.Identification()
	if strings.TrimSpace(id) == "" {
		return objtypes.EntityRecord{}, fmt.Errorf("entity identification cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entities[id]; exists {
		return objtypes.EntityRecord{}, fmt.Errorf("%w: %s", ErrDuplicate, id)
	}
	record := objtypes.EntityRecord{ID: id, Category: category, Value: e}
	s.entities[id] = record
	return record, nil
}

// Lookup returns the entity with exactly this identification.
func (s *Store) Lookup(id string) (objtypes.EntityRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.entities[id]
	return record, ok
}

// MatchPrefix returns the entities of category whose identification starts with prefix,
// sorted by identification. An empty category matches all entities.
func (s *Store) MatchPrefix(category, prefix string) []objtypes.EntityRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []objtypes.EntityRecord
	for id, record := range s.entities {
		if (category == "" || record.Category == category) && strings.HasPrefix(id, prefix) {
			out = append(out, record)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Identifications returns the sorted identifications in category.
func (s *Store) Identifications(category string) []string {
	records := s.MatchPrefix(category, "")
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids
}

// Len returns the number of published entities.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entities)
}

// Resolve converts an argument token naming an entity into the entity itself. The entity
// must have been published under kind. Its signature matches coerce.FallbackFunc, so a
// coercion registry can resolve type-named argument kinds through the store.
func (s *Store) Resolve(kind objtypes.Kind, raw string) (any, error) {
	id := parser.Unquote(strings.TrimSpace(raw))
	record, ok := s.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if record.Category != string(kind) {
		return nil, fmt.Errorf("%s is a %s, not a %s", id, record.Category, kind)
	}
	return record.Value, nil
}

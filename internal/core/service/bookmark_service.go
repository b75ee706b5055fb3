package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/teamroster/employee-directory/internal/core/domain"
	"github.com/teamroster/employee-directory/internal/core/ports"
)

// BookmarkKey is the storage key holding the serialized bookmark set.
const BookmarkKey = "bookmarkedUsers"

// BookmarkService keeps the bookmarked employees in insertion order and
// mirrors them to the key/value store after every mutation.
type BookmarkService struct {
	store ports.KeyValueStore
	log   zerolog.Logger

	mu    sync.Mutex
	items []domain.Employee
	index map[int]struct{}
}

// NewBookmarkService builds the store and rehydrates it from BookmarkKey.
// A missing, unreadable or malformed value leaves the set empty.
func NewBookmarkService(ctx context.Context, store ports.KeyValueStore, log zerolog.Logger) *BookmarkService {
	s := &BookmarkService{
		store: store,
		log:   log,
		index: make(map[int]struct{}),
	}
	s.rehydrate(ctx)
	return s
}

func (s *BookmarkService) rehydrate(ctx context.Context) {
	raw, ok, err := s.store.Get(ctx, BookmarkKey)
	if err != nil {
		s.log.Warn().Err(err).Msg("bookmarks unavailable, starting empty")
		return
	}
	if !ok {
		return
	}

	var saved []domain.Employee
	if err := json.Unmarshal([]byte(raw), &saved); err != nil {
		s.log.Warn().Err(err).Msg("discarding malformed bookmarks")
		return
	}

	for _, e := range saved {
		if _, dup := s.index[e.ID]; dup {
			continue
		}
		s.items = append(s.items, e)
		s.index[e.ID] = struct{}{}
	}
	s.log.Debug().Int("count", len(s.items)).Msg("bookmarks restored")
}

// Add inserts the employee unless one with the same id is already saved.
func (s *BookmarkService) Add(ctx context.Context, employee domain.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[employee.ID]; ok {
		return nil
	}
	s.items = append(s.items, employee)
	s.index[employee.ID] = struct{}{}

	return s.persist(ctx)
}

// Remove drops the employee with the same id, if present.
func (s *BookmarkService) Remove(ctx context.Context, employee domain.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[employee.ID]; !ok {
		return nil
	}
	delete(s.index, employee.ID)
	for i := range s.items {
		if s.items[i].ID == employee.ID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}

	return s.persist(ctx)
}

// List returns a copy of the set in insertion order.
func (s *BookmarkService) List() []domain.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Employee, len(s.items))
	copy(out, s.items)
	return out
}

// Contains reports whether an employee id is bookmarked.
func (s *BookmarkService) Contains(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.index[id]
	return ok
}

// persist writes the set, or clears the key once the set is empty.
// Caller must hold s.mu.
func (s *BookmarkService) persist(ctx context.Context) error {
	if len(s.items) == 0 {
		if err := s.store.Delete(ctx, BookmarkKey); err != nil {
			s.log.Error().Err(err).Msg("failed to clear bookmarks")
			return fmt.Errorf("clear bookmarks: %w", err)
		}
		return nil
	}

	raw, err := json.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("encode bookmarks: %w", err)
	}
	if err := s.store.Set(ctx, BookmarkKey, string(raw)); err != nil {
		s.log.Error().Err(err).Int("count", len(s.items)).Msg("failed to persist bookmarks")
		return fmt.Errorf("persist bookmarks: %w", err)
	}
	return nil
}

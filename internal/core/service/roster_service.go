package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/teamroster/employee-directory/internal/core/domain"
	"github.com/teamroster/employee-directory/internal/core/ports"
)

const defaultPageSize = 10

// RosterOptions tunes paging, caching and the mock-data generator.
type RosterOptions struct {
	PageSize int
	CacheTTL time.Duration
	// Rand seeds the decoration generator. Nil picks a random seed.
	Rand *rand.Rand
}

// RosterService pages employees in from the roster source and keeps the
// directory filter fed with everything loaded so far.
type RosterService struct {
	source   ports.RosterSource
	cache    ports.PageCache // optional
	filter   *DirectoryFilter
	decorate *decorator
	pageSize int
	cacheTTL time.Duration
	log      zerolog.Logger

	mu      sync.Mutex
	fetched []domain.Employee
	local   []domain.Employee // created in-process, newest first
	seen    map[int]struct{}
	page    int
	total   int
	hasMore bool
	loading bool
	lastErr string
}

// NewRosterService returns a service with nothing loaded yet; the first
// LoadNext fetches page one. cache may be nil.
func NewRosterService(source ports.RosterSource, cache ports.PageCache, filter *DirectoryFilter, opts RosterOptions, log zerolog.Logger) *RosterService {
	if opts.PageSize <= 0 {
		opts.PageSize = defaultPageSize
	}
	return &RosterService{
		source:   source,
		cache:    cache,
		filter:   filter,
		decorate: newDecorator(opts.Rand),
		pageSize: opts.PageSize,
		cacheTTL: opts.CacheTTL,
		log:      log,
		seen:     make(map[int]struct{}),
		hasMore:  true,
	}
}

// LoadNext fetches the next page. It returns domain.ErrLoadInProgress while
// another load is running and does nothing once the roster is exhausted.
func (s *RosterService) LoadNext(ctx context.Context) error {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return domain.ErrLoadInProgress
	}
	if !s.hasMore {
		s.mu.Unlock()
		return nil
	}
	s.loading = true
	next := s.page + 1
	s.mu.Unlock()

	return s.loadPage(ctx, next)
}

// Reload starts over from page one. Loaded employees stay visible until
// the new first page arrives.
func (s *RosterService) Reload(ctx context.Context) error {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return domain.ErrLoadInProgress
	}
	s.loading = true
	s.page = 0
	s.hasMore = true
	s.mu.Unlock()

	return s.loadPage(ctx, 1)
}

// loadPage fetches page next and merges it. The caller must have set
// s.loading under s.mu; loadPage clears it.
func (s *RosterService) loadPage(ctx context.Context, next int) error {
	page, err := s.fetchPage(ctx, (next-1)*s.pageSize, s.pageSize)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		s.lastErr = err.Error()
		s.log.Error().Err(err).Int("page", next).Msg("roster page failed")
		return fmt.Errorf("load page %d: %w", next, err)
	}
	s.lastErr = ""

	if next == 1 {
		s.fetched = s.fetched[:0]
		s.seen = make(map[int]struct{}, len(page.Items))
		for _, e := range s.local {
			s.seen[e.ID] = struct{}{}
		}
	}
	for _, e := range page.Items {
		if _, dup := s.seen[e.ID]; dup {
			continue
		}
		s.seen[e.ID] = struct{}{}
		s.fetched = append(s.fetched, e)
	}

	s.page = next
	s.total = page.Total
	s.hasMore = page.Total > next*s.pageSize
	s.filter.SetRoster(s.rosterLocked())

	s.log.Debug().Int("page", next).Int("loaded", len(s.fetched)).Int("total", s.total).Msg("roster page loaded")
	return nil
}

func (s *RosterService) fetchPage(ctx context.Context, offset, limit int) (*ports.RosterPage, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.GetPage(ctx, offset, limit)
		if err != nil {
			s.log.Warn().Err(err).Int("offset", offset).Msg("page cache read failed")
		} else if ok {
			return cached, nil
		}
	}

	src, err := s.source.List(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRosterUnavailable, err)
	}

	page := &ports.RosterPage{Items: make([]domain.Employee, 0, len(src.Items)), Total: src.Total}
	for _, item := range src.Items {
		page.Items = append(page.Items, s.decorate.employee(item))
	}

	if s.cache != nil {
		if err := s.cache.PutPage(ctx, offset, limit, page, s.cacheTTL); err != nil {
			s.log.Warn().Err(err).Int("offset", offset).Msg("page cache write failed")
		}
	}
	return page, nil
}

// SetSearchTerm forwards to the directory filter.
func (s *RosterService) SetSearchTerm(term string) {
	s.filter.SetSearchTerm(term)
}

// SetDepartmentFilters forwards to the directory filter.
func (s *RosterService) SetDepartmentFilters(departments []string) {
	s.filter.SetDepartmentFilters(departments)
}

// Snapshot reads the paging state and the filtered view together.
func (s *RosterService) Snapshot() ports.DirectorySnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return ports.DirectorySnapshot{
		Employees:   s.filter.FilteredView(),
		Departments: s.filter.Departments(),
		SearchTerm:  s.filter.SearchTerm(),
		Filters:     s.filter.DepartmentFilters(),
		Loaded:      len(s.fetched) + len(s.local),
		Total:       s.total,
		HasMore:     s.hasMore,
		Loading:     s.loading,
		Error:       s.lastErr,
	}
}

// AddLocal prepends an employee created in-process. Its id is picked above
// every id the source has reported so later pages cannot collide with it.
func (s *RosterService) AddLocal(in ports.NewEmployeeInput) (domain.Employee, error) {
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.Email) == "" {
		return domain.Employee{}, domain.ErrInvalidEmployee
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.total
	for id := range s.seen {
		if id > next {
			next = id
		}
	}

	department := in.Department
	if department == "" {
		department = domain.DefaultDepartment
	}

	e := domain.Employee{
		ID:                next + 1,
		FirstName:         in.FirstName,
		LastName:          in.LastName,
		Email:             in.Email,
		Phone:             in.Phone,
		Title:             in.Title,
		Image:             domain.DefaultAvatar,
		Department:        department,
		PerformanceRating: domain.MaxRating,
	}
	s.local = append([]domain.Employee{e}, s.local...)
	s.seen[e.ID] = struct{}{}
	s.filter.SetRoster(s.rosterLocked())

	s.log.Info().Int("employee_id", e.ID).Msg("employee added locally")
	return e, nil
}

// Get returns the roster copy of an employee, falling back to the source
// for ids that have not been paged in.
func (s *RosterService) Get(ctx context.Context, id int) (*domain.Employee, error) {
	if e, ok := s.lookup(id); ok {
		return &e, nil
	}

	src, err := s.source.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrRosterUnavailable, err)
	}
	e := s.decorate.employee(*src)
	return &e, nil
}

// Detail returns the employee with mocked review history, projects and
// feedback. Department and rating of a paged-in employee are kept.
func (s *RosterService) Detail(ctx context.Context, id int) (*domain.EmployeeDetail, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.decorate.detail(*e), nil
}

func (s *RosterService) lookup(id int) (domain.Employee, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.local {
		if e.ID == id {
			return e, true
		}
	}
	for _, e := range s.fetched {
		if e.ID == id {
			return e, true
		}
	}
	return domain.Employee{}, false
}

// Caller must hold s.mu.
func (s *RosterService) rosterLocked() []domain.Employee {
	out := make([]domain.Employee, 0, len(s.local)+len(s.fetched))
	out = append(out, s.local...)
	return append(out, s.fetched...)
}

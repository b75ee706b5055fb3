package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/rs/zerolog"

	"github.com/teamroster/employee-directory/internal/core/domain"
	"github.com/teamroster/employee-directory/internal/core/ports"
)

func newRoster(source ports.RosterSource, cache ports.PageCache) *RosterService {
	return NewRosterService(source, cache, NewDirectoryFilter(), RosterOptions{
		PageSize: 10,
		Rand:     rand.New(rand.NewPCG(1, 2)),
	}, zerolog.Nop())
}

func TestRosterService_PagesUntilExhausted(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{total: 25}
	r := newRoster(src, nil)

	wantMore := []bool{true, true, false}
	wantLoaded := []int{10, 20, 25}
	for i := range wantMore {
		if err := r.LoadNext(ctx); err != nil {
			t.Fatalf("LoadNext %d: %v", i+1, err)
		}
		s := r.Snapshot()
		if s.HasMore != wantMore[i] || s.Loaded != wantLoaded[i] || s.Total != 25 {
			t.Fatalf("page %d: hasMore=%v loaded=%d total=%d", i+1, s.HasMore, s.Loaded, s.Total)
		}
	}

	if err := r.LoadNext(ctx); err != nil {
		t.Fatalf("LoadNext after exhaustion: %v", err)
	}
	if got := src.offsets(); !slices.Equal(got, []int{0, 10, 20}) {
		t.Fatalf("offsets = %v, want [0 10 20]", got)
	}
}

func TestRosterService_ExactMultipleHasNoMore(t *testing.T) {
	ctx := context.Background()
	r := newRoster(&fakeSource{total: 20}, nil)

	_ = r.LoadNext(ctx)
	_ = r.LoadNext(ctx)
	if r.Snapshot().HasMore {
		t.Fatal("hasMore should be false when total == page*limit")
	}
}

func TestRosterService_ReloadReplacesFirstPage(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{total: 30}
	r := newRoster(src, nil)

	_ = r.LoadNext(ctx)
	_ = r.LoadNext(ctx)
	if err := r.Reload(ctx); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	s := r.Snapshot()
	if s.Loaded != 10 || !s.HasMore {
		t.Fatalf("after reload loaded=%d hasMore=%v", s.Loaded, s.HasMore)
	}
	if s.Employees[0].ID != 1 {
		t.Fatalf("first employee = %d, want 1", s.Employees[0].ID)
	}
}

func TestRosterService_ConcurrentLoadIsRejected(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{total: 30, block: make(chan struct{}), started: make(chan struct{})}
	r := newRoster(src, nil)

	started := src.started
	done := make(chan error, 1)
	go func() { done <- r.LoadNext(ctx) }()
	<-started

	if !r.Snapshot().Loading {
		t.Error("snapshot should report loading")
	}
	if err := r.LoadNext(ctx); !errors.Is(err, domain.ErrLoadInProgress) {
		t.Fatalf("LoadNext = %v, want ErrLoadInProgress", err)
	}
	if err := r.Reload(ctx); !errors.Is(err, domain.ErrLoadInProgress) {
		t.Fatalf("Reload = %v, want ErrLoadInProgress", err)
	}

	close(src.block)
	if err := <-done; err != nil {
		t.Fatalf("first LoadNext: %v", err)
	}
	if got := len(src.offsets()); got != 1 {
		t.Fatalf("source called %d times, want 1", got)
	}
}

func TestRosterService_ReloadHoldsTheLoadGate(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{total: 30}
	r := newRoster(src, nil)
	_ = r.LoadNext(ctx)
	_ = r.LoadNext(ctx)

	block, started := make(chan struct{}), make(chan struct{})
	src.mu.Lock()
	src.block, src.started = block, started
	src.mu.Unlock()

	done := make(chan error, 1)
	go func() { done <- r.Reload(ctx) }()
	<-started

	if err := r.LoadNext(ctx); !errors.Is(err, domain.ErrLoadInProgress) {
		t.Fatalf("LoadNext during reload = %v, want ErrLoadInProgress", err)
	}

	close(block)
	if err := <-done; err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if got := src.offsets(); !slices.Equal(got, []int{0, 10, 0}) {
		t.Fatalf("offsets = %v, want [0 10 0]", got)
	}
	if s := r.Snapshot(); s.Loaded != 10 || !s.HasMore {
		t.Fatalf("after reload loaded=%d hasMore=%v", s.Loaded, s.HasMore)
	}
}

func TestRosterService_SourceFailure(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{total: 30, err: errors.New("connection reset")}
	r := newRoster(src, nil)

	err := r.LoadNext(ctx)
	if !errors.Is(err, domain.ErrRosterUnavailable) {
		t.Fatalf("err = %v, want ErrRosterUnavailable", err)
	}
	s := r.Snapshot()
	if s.Error == "" || s.Loading || !s.HasMore || s.Loaded != 0 {
		t.Fatalf("snapshot after failure = %+v", s)
	}

	src.mu.Lock()
	src.err = nil
	src.mu.Unlock()

	if err := r.LoadNext(ctx); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if s := r.Snapshot(); s.Error != "" || s.Loaded != 10 {
		t.Fatalf("snapshot after retry = %+v", s)
	}
}

func TestRosterService_DecoratesWithinRanges(t *testing.T) {
	ctx := context.Background()
	r := newRoster(&fakeSource{total: 10}, nil)
	_ = r.LoadNext(ctx)

	for _, e := range r.Snapshot().Employees {
		if e.PerformanceRating < domain.MinRating || e.PerformanceRating > domain.MaxRating {
			t.Errorf("employee %d rating %d out of range", e.ID, e.PerformanceRating)
		}
		if !slices.Contains(domain.Departments, e.Department) {
			t.Errorf("employee %d department %q not in the department list", e.ID, e.Department)
		}
	}
}

func TestRosterService_UsesPageCache(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{total: 30}
	cache := newMapCache()
	r := newRoster(src, cache)

	_ = r.LoadNext(ctx)
	before := r.Snapshot().Employees

	if err := r.Reload(ctx); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if got := src.offsets(); !slices.Equal(got, []int{0}) {
		t.Fatalf("offsets = %v, want a single source call", got)
	}
	if cache.puts != 1 {
		t.Fatalf("cache puts = %d, want 1", cache.puts)
	}

	after := r.Snapshot().Employees
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("cached page differs at %d: %+v vs %+v", i, before[i], after[i])
		}
	}
}

func TestRosterService_FiltersThroughSnapshot(t *testing.T) {
	ctx := context.Background()
	r := newRoster(&fakeSource{total: 10}, nil)
	_ = r.LoadNext(ctx)

	r.SetSearchTerm("emily")
	s := r.Snapshot()
	if s.SearchTerm != "emily" {
		t.Errorf("SearchTerm = %q", s.SearchTerm)
	}
	if len(s.Employees) != 2 {
		t.Fatalf("expected ids 1 and 6, got %v", ids(s.Employees))
	}
	if s.Loaded != 10 {
		t.Errorf("Loaded counts the whole roster, got %d", s.Loaded)
	}
}

func TestRosterService_AddLocal(t *testing.T) {
	ctx := context.Background()
	r := newRoster(&fakeSource{total: 25}, nil)
	_ = r.LoadNext(ctx)

	if _, err := r.AddLocal(ports.NewEmployeeInput{Email: "x@example.com"}); !errors.Is(err, domain.ErrInvalidEmployee) {
		t.Fatalf("missing first name: err = %v", err)
	}

	e, err := r.AddLocal(ports.NewEmployeeInput{FirstName: "Zoe", LastName: "Kim", Email: "zoe@example.com"})
	if err != nil {
		t.Fatalf("AddLocal: %v", err)
	}
	if e.ID != 26 {
		t.Errorf("ID = %d, want 26", e.ID)
	}
	if e.Department != domain.DefaultDepartment || e.PerformanceRating != domain.MaxRating || e.Image != domain.DefaultAvatar {
		t.Errorf("defaults not applied: %+v", e)
	}

	s := r.Snapshot()
	if s.Employees[0].ID != 26 || s.Loaded != 11 {
		t.Fatalf("local employee should be first: %v (loaded %d)", ids(s.Employees), s.Loaded)
	}

	if err := r.Reload(ctx); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if got, err := r.Get(ctx, 26); err != nil || got.FirstName != "Zoe" {
		t.Fatalf("local employee lost on reload: %+v, %v", got, err)
	}
}

func TestRosterService_Get(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{total: 25}
	r := newRoster(src, nil)
	_ = r.LoadNext(ctx)

	loaded := r.Snapshot().Employees[2]
	got, err := r.Get(ctx, loaded.ID)
	if err != nil || *got != loaded {
		t.Fatalf("Get(%d) = %+v, %v; want the roster copy", loaded.ID, got, err)
	}

	far, err := r.Get(ctx, 22)
	if err != nil || far.ID != 22 {
		t.Fatalf("Get(22) = %+v, %v", far, err)
	}

	if _, err := r.Get(ctx, 999); !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Fatalf("Get(999) = %v, want ErrEmployeeNotFound", err)
	}

	src.err = errors.New("timeout")
	if _, err := r.Get(ctx, 23); !errors.Is(err, domain.ErrRosterUnavailable) {
		t.Fatalf("Get with failing source = %v, want ErrRosterUnavailable", err)
	}
}

func TestRosterService_Detail(t *testing.T) {
	ctx := context.Background()
	r := newRoster(&fakeSource{total: 10}, nil)
	_ = r.LoadNext(ctx)

	e := r.Snapshot().Employees[0]
	d, err := r.Detail(ctx, e.ID)
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}
	if d.Department != e.Department || d.PerformanceRating != e.PerformanceRating {
		t.Errorf("detail changed the roster fields: %+v vs %+v", d.Employee, e)
	}
	if len(d.PerformanceHistory) != 3 || len(d.Projects) != 3 || len(d.Feedback) != 3 || d.Bio == "" {
		t.Errorf("incomplete detail: %+v", d)
	}
	for _, h := range d.PerformanceHistory {
		if h.Rating < domain.MinRating || h.Rating > domain.MaxRating {
			t.Errorf("review %s rating %d out of range", h.Period, h.Rating)
		}
	}
}

package service

import (
	"sort"
	"strings"
	"sync"

	"github.com/teamroster/employee-directory/internal/core/domain"
)

// ComputeFilteredView returns the employees of roster that match term and
// departments, in roster order. An empty term or an empty department list
// places no restriction.
func ComputeFilteredView(roster []domain.Employee, term string, departments []string) []domain.Employee {
	needle := strings.ToLower(term)

	var allowed map[string]struct{}
	if len(departments) > 0 {
		allowed = make(map[string]struct{}, len(departments))
		for _, d := range departments {
			allowed[d] = struct{}{}
		}
	}

	view := make([]domain.Employee, 0, len(roster))
	for _, e := range roster {
		if !matchesTerm(e, needle) {
			continue
		}
		if allowed != nil {
			if _, ok := allowed[e.Department]; !ok {
				continue
			}
		}
		view = append(view, e)
	}
	return view
}

// matchesTerm expects needle to be lower-cased already.
func matchesTerm(e domain.Employee, needle string) bool {
	if needle == "" {
		return true
	}
	for _, field := range [...]string{e.FirstName, e.LastName, e.Email, e.Department} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// DirectoryFilter holds the roster, the search term and the selected
// departments, and re-derives the filtered view on every change.
type DirectoryFilter struct {
	mu      sync.RWMutex
	roster  []domain.Employee
	term    string
	filters []string
	view    []domain.Employee
}

func NewDirectoryFilter() *DirectoryFilter {
	return &DirectoryFilter{view: []domain.Employee{}}
}

// SetRoster replaces the base roster.
func (f *DirectoryFilter) SetRoster(employees []domain.Employee) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.roster = make([]domain.Employee, len(employees))
	copy(f.roster, employees)
	f.recompute()
}

// SetSearchTerm updates the term. The empty term matches everything.
func (f *DirectoryFilter) SetSearchTerm(term string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.term = term
	f.recompute()
}

// SetDepartmentFilters replaces the selected departments. Duplicates are
// collapsed; an empty list removes the restriction.
func (f *DirectoryFilter) SetDepartmentFilters(departments []string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	seen := make(map[string]struct{}, len(departments))
	f.filters = make([]string, 0, len(departments))
	for _, d := range departments {
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		f.filters = append(f.filters, d)
	}
	f.recompute()
}

// FilteredView returns a copy of the current derived view.
func (f *DirectoryFilter) FilteredView() []domain.Employee {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]domain.Employee, len(f.view))
	copy(out, f.view)
	return out
}

func (f *DirectoryFilter) SearchTerm() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.term
}

func (f *DirectoryFilter) DepartmentFilters() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]string, len(f.filters))
	copy(out, f.filters)
	return out
}

// Departments lists the distinct departments present in the roster, sorted.
func (f *DirectoryFilter) Departments() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	seen := make(map[string]struct{})
	out := []string{}
	for _, e := range f.roster {
		if e.Department == "" {
			continue
		}
		if _, ok := seen[e.Department]; ok {
			continue
		}
		seen[e.Department] = struct{}{}
		out = append(out, e.Department)
	}
	sort.Strings(out)
	return out
}

// recompute must be called with f.mu held for writing.
func (f *DirectoryFilter) recompute() {
	f.view = ComputeFilteredView(f.roster, f.term, f.filters)
}

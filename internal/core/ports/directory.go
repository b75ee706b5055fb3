package ports

import (
	"context"

	"github.com/teamroster/employee-directory/internal/core/domain"
)

// NewEmployeeInput carries the fields of an employee created locally.
type NewEmployeeInput struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Title      string
	Department string
}

// DirectorySnapshot is everything the dashboard renders in one read.
type DirectorySnapshot struct {
	Employees   []domain.Employee
	Departments []string
	SearchTerm  string
	Filters     []string
	Loaded      int
	Total       int
	HasMore     bool
	Loading     bool
	Error       string
}

// DirectoryService combines the paged roster with the search/filter view.
type DirectoryService interface {
	Snapshot() DirectorySnapshot
	LoadNext(ctx context.Context) error
	Reload(ctx context.Context) error
	SetSearchTerm(term string)
	SetDepartmentFilters(departments []string)
	AddLocal(input NewEmployeeInput) (domain.Employee, error)
	Get(ctx context.Context, id int) (*domain.Employee, error)
	Detail(ctx context.Context, id int) (*domain.EmployeeDetail, error)
}

package ports

import (
	"context"

	"github.com/teamroster/employee-directory/internal/core/domain"
)

// BookmarkService owns the user's saved subset of employees.
type BookmarkService interface {
	Add(ctx context.Context, employee domain.Employee) error
	Remove(ctx context.Context, employee domain.Employee) error
	List() []domain.Employee
	Contains(id int) bool
}

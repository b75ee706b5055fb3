package ports

import (
	"context"
	"time"

	"github.com/teamroster/employee-directory/internal/core/domain"
)

// SourceEmployee is an employee as the external directory returns it,
// before any local decoration.
type SourceEmployee struct {
	ID         int
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Image      string
	Title      string
	Department string // empty when the source has none
}

// SourcePage is one page of the external roster.
type SourcePage struct {
	Items []SourceEmployee
	Total int
}

// RosterSource is the external HTTP collaborator that serves employees.
type RosterSource interface {
	// List returns up to limit employees starting at offset, plus the total
	// size of the collection.
	List(ctx context.Context, offset, limit int) (*SourcePage, error)
	// Get returns a single employee or domain.ErrEmployeeNotFound.
	Get(ctx context.Context, id int) (*SourceEmployee, error)
}

// RosterPage is a decorated page as kept in the page cache.
type RosterPage struct {
	Items []domain.Employee `json:"items"`
	Total int               `json:"total"`
}

// PageCache stores decorated roster pages so reloads keep the same mock
// departments and ratings while the entry lives.
type PageCache interface {
	GetPage(ctx context.Context, offset, limit int) (*RosterPage, bool, error)
	PutPage(ctx context.Context, offset, limit int, page *RosterPage, ttl time.Duration) error
}

package ports

import (
	"context"
	"time"

	"github.com/teamroster/employee-directory/internal/core/domain"
)

// PromotionRequest is the unit of work handed to the promotion workers.
type PromotionRequest struct {
	EmployeeID   int
	EmployeeName string
	Department   string
	RequestedBy  string
	RequestedAt  time.Time
}

// PromotionRepository is the append-only promotion log.
type PromotionRepository interface {
	Insert(ctx context.Context, p *domain.Promotion) error
	// List returns the most recent promotions first, at most limit of them.
	List(ctx context.Context, limit int) ([]domain.Promotion, error)
}

// PromotionService accepts promote actions and records them.
type PromotionService interface {
	Request(ctx context.Context, employeeID int, requestedBy string) (*PromotionRequest, error)
	Process(ctx context.Context, req PromotionRequest) error
	List(ctx context.Context, limit int) ([]domain.Promotion, error)
}

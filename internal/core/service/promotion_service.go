package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/teamroster/employee-directory/internal/core/domain"
	"github.com/teamroster/employee-directory/internal/core/ports"
)

const defaultPromotionListLimit = 50

// EmployeeLookup resolves an employee by id.
type EmployeeLookup interface {
	Get(ctx context.Context, id int) (*domain.Employee, error)
}

type promotionService struct {
	employees EmployeeLookup
	repo      ports.PromotionRepository
	log       zerolog.Logger
	now       func() time.Time
}

// NewPromotionService returns a PromotionService implementation.
func NewPromotionService(employees EmployeeLookup, repo ports.PromotionRepository, log zerolog.Logger) ports.PromotionService {
	return &promotionService{
		employees: employees,
		repo:      repo,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Request resolves the employee and builds the work item for the
// dispatcher. Nothing is recorded until Process runs.
func (s *promotionService) Request(ctx context.Context, employeeID int, requestedBy string) (*ports.PromotionRequest, error) {
	e, err := s.employees.Get(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("request promotion: %w", err)
	}

	return &ports.PromotionRequest{
		EmployeeID:   e.ID,
		EmployeeName: e.FullName(),
		Department:   e.Department,
		RequestedBy:  requestedBy,
		RequestedAt:  s.now(),
	}, nil
}

// Process appends the promotion to the log.
func (s *promotionService) Process(ctx context.Context, req ports.PromotionRequest) error {
	p := &domain.Promotion{
		ID:           uuid.NewString(),
		EmployeeID:   req.EmployeeID,
		EmployeeName: req.EmployeeName,
		Department:   req.Department,
		RequestedBy:  req.RequestedBy,
		RequestedAt:  req.RequestedAt,
	}
	if err := s.repo.Insert(ctx, p); err != nil {
		return fmt.Errorf("record promotion: %w", err)
	}

	s.log.Info().
		Int("employee_id", req.EmployeeID).
		Str("requested_by", req.RequestedBy).
		Str("promotion_id", p.ID).
		Msg("employee promoted")
	return nil
}

func (s *promotionService) List(ctx context.Context, limit int) ([]domain.Promotion, error) {
	if limit <= 0 || limit > defaultPromotionListLimit {
		limit = defaultPromotionListLimit
	}
	return s.repo.List(ctx, limit)
}

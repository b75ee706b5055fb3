package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/teamroster/employee-directory/internal/core/domain"
	"github.com/teamroster/employee-directory/internal/core/ports"
)

// Enqueuer hands a promotion request to the background workers.
type Enqueuer interface {
	Enqueue(req ports.PromotionRequest) error
}

type PromotionHandler struct {
	promotions ports.PromotionService
	queue      Enqueuer
}

func NewPromotionHandler(promotions ports.PromotionService, queue Enqueuer) *PromotionHandler {
	return &PromotionHandler{promotions: promotions, queue: queue}
}

// Promote handles POST /v1/employees/:id/promote. The promotion is recorded
// asynchronously.
//
// @Summary      Promote an employee
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Employee id"
// @Success      202  {object}  acceptedResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      503  {object}  errorResponse
// @Router       /v1/employees/{id}/promote [post]
func (h *PromotionHandler) Promote(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	requestedBy, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	req, err := h.promotions.Request(c.Request().Context(), id, requestedBy)
	if err != nil {
		return err
	}
	if err := h.queue.Enqueue(*req); err != nil {
		return err
	}

	return c.JSON(http.StatusAccepted, acceptedResponse{
		Message:    req.EmployeeName + " promoted!",
		EmployeeID: req.EmployeeID,
	})
}

// List handles GET /v1/promotions?limit=N.
//
// @Summary      Recent promotions
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum number of entries"
// @Success      200    {object}  promotionsResponse
// @Failure      400    {object}  errorResponse
// @Router       /v1/promotions [get]
func (h *PromotionHandler) List(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		limit = n
	}

	items, err := h.promotions.List(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	if items == nil {
		items = []domain.Promotion{}
	}
	return c.JSON(http.StatusOK, promotionsResponse{Items: items})
}

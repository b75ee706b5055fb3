package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/teamroster/employee-directory/internal/core/ports"
)

// DirectoryHandler serves the dashboard: the filtered roster, paging and
// employee details.
type DirectoryHandler struct {
	directory ports.DirectoryService
	bookmarks ports.BookmarkService
}

func NewDirectoryHandler(directory ports.DirectoryService, bookmarks ports.BookmarkService) *DirectoryHandler {
	return &DirectoryHandler{directory: directory, bookmarks: bookmarks}
}

// Get handles GET /v1/directory.
//
// @Summary      Filtered roster
// @Tags         directory
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  directoryResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/directory [get]
func (h *DirectoryHandler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, h.snapshot())
}

// Next handles POST /v1/directory/next: loads the next roster page.
//
// @Summary      Load more employees
// @Tags         directory
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  directoryResponse
// @Failure      409  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /v1/directory/next [post]
func (h *DirectoryHandler) Next(c echo.Context) error {
	if err := h.directory.LoadNext(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.snapshot())
}

// Reload handles POST /v1/directory/reload: starts again from page one.
//
// @Summary      Reload the roster
// @Tags         directory
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  directoryResponse
// @Failure      409  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /v1/directory/reload [post]
func (h *DirectoryHandler) Reload(c echo.Context) error {
	if err := h.directory.Reload(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.snapshot())
}

// Search handles PUT /v1/directory/search.
//
// @Summary      Set the search term
// @Tags         directory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      searchRequest  true  "Search term; empty clears it"
// @Success      200   {object}  directoryResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/directory/search [put]
func (h *DirectoryHandler) Search(c echo.Context) error {
	var req searchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	h.directory.SetSearchTerm(req.Term)
	return c.JSON(http.StatusOK, h.snapshot())
}

// Departments handles PUT /v1/directory/departments.
//
// @Summary      Set the department filter
// @Tags         directory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      departmentsRequest  true  "Departments; empty removes the filter"
// @Success      200   {object}  directoryResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/directory/departments [put]
func (h *DirectoryHandler) Departments(c echo.Context) error {
	var req departmentsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	h.directory.SetDepartmentFilters(req.Departments)
	return c.JSON(http.StatusOK, h.snapshot())
}

// Create handles POST /v1/directory/employees: adds an employee locally.
//
// @Summary      Add an employee
// @Tags         directory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEmployeeRequest  true  "Employee"
// @Success      201   {object}  domain.Employee
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/directory/employees [post]
func (h *DirectoryHandler) Create(c echo.Context) error {
	var req createEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	e, err := h.directory.AddLocal(toNewEmployeeInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, e)
}

// Detail handles GET /v1/employees/:id.
//
// @Summary      Employee detail
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Employee id"
// @Success      200  {object}  employeeDetailResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /v1/employees/{id} [get]
func (h *DirectoryHandler) Detail(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	detail, err := h.directory.Detail(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, employeeDetailResponse{
		EmployeeDetail: detail,
		Bookmarked:     h.bookmarks.Contains(detail.ID),
	})
}

func (h *DirectoryHandler) snapshot() directoryResponse {
	return toDirectoryResponse(h.directory.Snapshot(), h.bookmarks)
}

// paramID parses the :id path parameter as a positive employee id.
func paramID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid employee id")
	}
	return id, nil
}

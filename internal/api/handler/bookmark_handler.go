package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamroster/employee-directory/internal/api/metrics"
	"github.com/teamroster/employee-directory/internal/core/ports"
)

type BookmarkHandler struct {
	bookmarks ports.BookmarkService
	directory ports.DirectoryService
}

func NewBookmarkHandler(bookmarks ports.BookmarkService, directory ports.DirectoryService) *BookmarkHandler {
	return &BookmarkHandler{bookmarks: bookmarks, directory: directory}
}

// List handles GET /v1/bookmarks.
//
// @Summary      Bookmarked employees
// @Tags         bookmarks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  bookmarksResponse
// @Router       /v1/bookmarks [get]
func (h *BookmarkHandler) List(c echo.Context) error {
	items := h.bookmarks.List()
	return c.JSON(http.StatusOK, bookmarksResponse{Items: items, Count: len(items)})
}

// Add handles POST /v1/bookmarks. Bookmarking an employee twice is a no-op.
//
// @Summary      Bookmark an employee
// @Tags         bookmarks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bookmarkRequest  true  "Employee to bookmark"
// @Success      200   {object}  bookmarksResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/bookmarks [post]
func (h *BookmarkHandler) Add(c echo.Context) error {
	var req bookmarkRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	ctx := c.Request().Context()
	e, err := h.directory.Get(ctx, req.EmployeeID)
	if err != nil {
		return err
	}
	if err := h.bookmarks.Add(ctx, *e); err != nil {
		return err
	}

	metrics.BookmarkMutationsTotal.WithLabelValues("add").Inc()
	return h.List(c)
}

// Remove handles DELETE /v1/bookmarks/:id. Removing an employee that is
// not bookmarked succeeds.
//
// @Summary      Remove a bookmark
// @Tags         bookmarks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Employee id"
// @Success      200  {object}  bookmarksResponse
// @Failure      400  {object}  errorResponse
// @Router       /v1/bookmarks/{id} [delete]
func (h *BookmarkHandler) Remove(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	for _, e := range h.bookmarks.List() {
		if e.ID != id {
			continue
		}
		if err := h.bookmarks.Remove(c.Request().Context(), e); err != nil {
			return err
		}
		metrics.BookmarkMutationsTotal.WithLabelValues("remove").Inc()
		break
	}

	return h.List(c)
}

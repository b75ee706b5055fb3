package handler

import (
	"github.com/teamroster/employee-directory/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token    string           `json:"token"`
	Identity *domain.Identity `json:"identity"`
}

type sessionResponse struct {
	Status   domain.SessionStatus `json:"status"`
	Identity *domain.Identity     `json:"identity,omitempty"`
}

// --- Directory ---

type searchRequest struct {
	Term string `json:"term"`
}

type departmentsRequest struct {
	Departments []string `json:"departments"`
}

type createEmployeeRequest struct {
	FirstName  string `json:"first_name" validate:"required,max=50"`
	LastName   string `json:"last_name"  validate:"required,max=50"`
	Email      string `json:"email"      validate:"required,email"`
	Phone      string `json:"phone"`
	Title      string `json:"title"`
	Department string `json:"department"`
}

type directoryEmployee struct {
	domain.Employee
	Bookmarked bool `json:"bookmarked"`
}

type directoryResponse struct {
	Employees   []directoryEmployee `json:"employees"`
	Departments []string            `json:"departments"`
	SearchTerm  string              `json:"search_term"`
	Filters     []string            `json:"filters"`
	Loaded      int                 `json:"loaded"`
	Total       int                 `json:"total"`
	HasMore     bool                `json:"has_more"`
	Loading     bool                `json:"loading"`
	Error       string              `json:"error,omitempty"`
}

type employeeDetailResponse struct {
	*domain.EmployeeDetail
	Bookmarked bool `json:"bookmarked"`
}

// --- Bookmarks ---

type bookmarkRequest struct {
	EmployeeID int `json:"employee_id" validate:"required,gt=0"`
}

type bookmarksResponse struct {
	Items []domain.Employee `json:"items"`
	Count int               `json:"count"`
}

// --- Promotions ---

type acceptedResponse struct {
	Message    string `json:"message"`
	EmployeeID int    `json:"employee_id"`
}

type promotionsResponse struct {
	Items []domain.Promotion `json:"items"`
}

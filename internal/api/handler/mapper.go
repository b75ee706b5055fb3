package handler

import (
	"github.com/teamroster/employee-directory/internal/core/ports"
)

// --- Request → Service input ---

func toNewEmployeeInput(req createEmployeeRequest) ports.NewEmployeeInput {
	return ports.NewEmployeeInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Title:      req.Title,
		Department: req.Department,
	}
}

// --- Service result → HTTP response ---

type bookmarkChecker interface {
	Contains(id int) bool
}

func toDirectoryResponse(s ports.DirectorySnapshot, bookmarks bookmarkChecker) directoryResponse {
	employees := make([]directoryEmployee, len(s.Employees))
	for i, e := range s.Employees {
		employees[i] = directoryEmployee{Employee: e, Bookmarked: bookmarks.Contains(e.ID)}
	}

	filters := s.Filters
	if filters == nil {
		filters = []string{}
	}

	return directoryResponse{
		Employees:   employees,
		Departments: s.Departments,
		SearchTerm:  s.SearchTerm,
		Filters:     filters,
		Loaded:      s.Loaded,
		Total:       s.Total,
		HasMore:     s.HasMore,
		Loading:     s.Loading,
		Error:       s.Error,
	}
}

package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotReady    = errors.New("session not ready")
	ErrUnauthenticated    = errors.New("not authenticated")

	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrLoadInProgress    = errors.New("roster load already in progress")
	ErrRosterUnavailable = errors.New("roster source unavailable")

	ErrInvalidEmployee = errors.New("invalid employee")
	ErrQueueFull       = errors.New("promotion queue full")
)

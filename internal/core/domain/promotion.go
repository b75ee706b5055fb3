package domain

import "time"

// Promotion records a "promote" action taken on an employee.
type Promotion struct {
	ID           string    `json:"id" bson:"_id"`
	EmployeeID   int       `json:"employee_id" bson:"employee_id"`
	EmployeeName string    `json:"employee_name" bson:"employee_name"`
	Department   string    `json:"department" bson:"department"`
	RequestedBy  string    `json:"requested_by" bson:"requested_by"`
	RequestedAt  time.Time `json:"requested_at" bson:"requested_at"`
}

package domain

// Departments is the catalogue used when an employee record arrives
// without a department.
var Departments = []string{"HR", "Engineering", "Marketing", "Finance", "Sales", "Design", "Operations"}

const (
	MinRating = 1
	MaxRating = 5

	// DefaultDepartment is assigned to employees created locally without one.
	DefaultDepartment = "Engineering"
	// DefaultAvatar is the image used for locally created employees.
	DefaultAvatar = "https://dummyjson.com/icon/user/128"
)

// Employee is a roster entry: the external record plus the mock HR fields
// decorated onto it when it is first mapped.
type Employee struct {
	ID                int    `json:"id"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Email             string `json:"email"`
	Phone             string `json:"phone,omitempty"`
	Image             string `json:"image,omitempty"`
	Title             string `json:"title,omitempty"`
	Department        string `json:"department"`
	PerformanceRating int    `json:"performance_rating"`
}

// FullName returns "First Last".
func (e Employee) FullName() string {
	switch {
	case e.FirstName == "":
		return e.LastName
	case e.LastName == "":
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// ReviewEntry is a single period in an employee's performance history.
type ReviewEntry struct {
	Period string `json:"period"`
	Rating int    `json:"rating"`
	Notes  string `json:"notes"`
}

// ProjectStatus is the lifecycle state of a project assignment.
type ProjectStatus string

const (
	ProjectCompleted  ProjectStatus = "Completed"
	ProjectInProgress ProjectStatus = "In Progress"
	ProjectPlanned    ProjectStatus = "Planned"
)

// Project is an assignment listed on the detail page.
type Project struct {
	Name   string        `json:"name"`
	Status ProjectStatus `json:"status"`
	Role   string        `json:"role"`
}

// Feedback is a note left about an employee by a manager, peer or client.
type Feedback struct {
	From    string `json:"from"`
	Date    string `json:"date"`
	Content string `json:"content"`
}

// EmployeeDetail is the detail view: the employee plus mocked review data.
type EmployeeDetail struct {
	Employee
	Bio                string        `json:"bio"`
	PerformanceHistory []ReviewEntry `json:"performance_history"`
	Projects           []Project     `json:"projects"`
	Feedback           []Feedback    `json:"feedback"`
}

package service

import (
	"math/rand/v2"
	"sync"

	"github.com/teamroster/employee-directory/internal/core/domain"
	"github.com/teamroster/employee-directory/internal/core/ports"
)

const defaultBio = "A dedicated professional with extensive experience in the field. " +
	"Known for attention to detail and commitment to excellence."

var reviewNotes = []struct{ period, notes string }{
	{"Q1 2023", "Exceeded expectations on project delivery."},
	{"Q4 2022", "Strong team collaboration skills."},
	{"Q3 2022", "On-time delivery of all assigned tasks."},
}

var sampleProjects = []domain.Project{
	{Name: "Website Redesign", Status: domain.ProjectCompleted, Role: "Lead Developer"},
	{Name: "Mobile App Development", Status: domain.ProjectInProgress, Role: "UI Designer"},
	{Name: "Data Migration", Status: domain.ProjectPlanned, Role: "Data Analyst"},
}

var sampleFeedback = []domain.Feedback{
	{From: "Manager", Date: "2023-06-15", Content: "Shows great initiative and problem-solving skills."},
	{From: "Peer", Date: "2023-05-20", Content: "Always willing to help team members and share knowledge."},
	{From: "Client", Date: "2023-04-10", Content: "Professional attitude and excellent communication."},
}

// decorator layers the mock HR data onto source records. *rand.Rand is not
// safe for concurrent use, hence the mutex.
type decorator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func newDecorator(rnd *rand.Rand) *decorator {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &decorator{rnd: rnd}
}

func (d *decorator) rating() int {
	return domain.MinRating + d.rnd.IntN(domain.MaxRating-domain.MinRating+1)
}

func (d *decorator) employee(src ports.SourceEmployee) domain.Employee {
	d.mu.Lock()
	defer d.mu.Unlock()

	department := src.Department
	if department == "" {
		department = domain.Departments[d.rnd.IntN(len(domain.Departments))]
	}

	return domain.Employee{
		ID:                src.ID,
		FirstName:         src.FirstName,
		LastName:          src.LastName,
		Email:             src.Email,
		Phone:             src.Phone,
		Image:             src.Image,
		Title:             src.Title,
		Department:        department,
		PerformanceRating: d.rating(),
	}
}

func (d *decorator) detail(e domain.Employee) *domain.EmployeeDetail {
	d.mu.Lock()
	defer d.mu.Unlock()

	history := make([]domain.ReviewEntry, len(reviewNotes))
	for i, r := range reviewNotes {
		history[i] = domain.ReviewEntry{Period: r.period, Rating: d.rating(), Notes: r.notes}
	}

	return &domain.EmployeeDetail{
		Employee:           e,
		Bio:                defaultBio,
		PerformanceHistory: history,
		Projects:           append([]domain.Project(nil), sampleProjects...),
		Feedback:           append([]domain.Feedback(nil), sampleFeedback...),
	}
}

package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/teamroster/employee-directory/internal/core/domain"
	"github.com/teamroster/employee-directory/internal/core/ports"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func newContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

type stubGate struct {
	identity  *domain.Identity
	status    domain.SessionStatus
	loginFn   func(email, password string) (*domain.Identity, error)
	logoutErr error
	logouts   int
}

func (g *stubGate) Login(_ context.Context, email, password string) (*domain.Identity, error) {
	return g.loginFn(email, password)
}

func (g *stubGate) Logout(context.Context) error {
	g.logouts++
	return g.logoutErr
}

func (g *stubGate) Rehydrate(context.Context) {}

func (g *stubGate) Current() (*domain.Identity, domain.SessionStatus) {
	return g.identity, g.status
}

type stubTokens struct {
	token string
	err   error
}

func (s stubTokens) Issue(*domain.Identity) (string, error) { return s.token, s.err }

type stubDirectory struct {
	snapshot ports.DirectorySnapshot
	loadErr  error
	loads    int
	reloads  int
	term     string
	filters  []string
	added    []ports.NewEmployeeInput
	addErr   error
	byID     map[int]domain.Employee
}

func (d *stubDirectory) Snapshot() ports.DirectorySnapshot { return d.snapshot }

func (d *stubDirectory) LoadNext(context.Context) error {
	d.loads++
	return d.loadErr
}

func (d *stubDirectory) Reload(context.Context) error {
	d.reloads++
	return d.loadErr
}

func (d *stubDirectory) SetSearchTerm(term string) { d.term = term }

func (d *stubDirectory) SetDepartmentFilters(departments []string) { d.filters = departments }

func (d *stubDirectory) AddLocal(in ports.NewEmployeeInput) (domain.Employee, error) {
	if d.addErr != nil {
		return domain.Employee{}, d.addErr
	}
	d.added = append(d.added, in)
	return domain.Employee{ID: 101, FirstName: in.FirstName, LastName: in.LastName, Email: in.Email, Department: domain.DefaultDepartment}, nil
}

func (d *stubDirectory) Get(_ context.Context, id int) (*domain.Employee, error) {
	e, ok := d.byID[id]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	return &e, nil
}

func (d *stubDirectory) Detail(ctx context.Context, id int) (*domain.EmployeeDetail, error) {
	e, err := d.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.EmployeeDetail{Employee: *e, Bio: "bio"}, nil
}

type stubBookmarks struct {
	items   []domain.Employee
	removed []int
}

func (b *stubBookmarks) Add(_ context.Context, e domain.Employee) error {
	if !b.Contains(e.ID) {
		b.items = append(b.items, e)
	}
	return nil
}

func (b *stubBookmarks) Remove(_ context.Context, e domain.Employee) error {
	b.removed = append(b.removed, e.ID)
	for i, it := range b.items {
		if it.ID == e.ID {
			b.items = append(b.items[:i], b.items[i+1:]...)
			break
		}
	}
	return nil
}

func (b *stubBookmarks) List() []domain.Employee {
	return append([]domain.Employee{}, b.items...)
}

func (b *stubBookmarks) Contains(id int) bool {
	for _, it := range b.items {
		if it.ID == id {
			return true
		}
	}
	return false
}

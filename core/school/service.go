package school

import (
	"context"
	"time"

	"github.com/trezcool/trackx/core"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("School not found")

	nowFunc = time.Now // mockable
)

type (
	Repository interface {
		// QuerySchools returns every School, newest first.
		QuerySchools(ctx context.Context) ([]School, error)
		GetSchool(ctx context.Context, id int64) (School, error)
		CreateSchool(ctx context.Context, sch School) (School, error)
		// UpdateSchool returns ErrNotFound when no row has sch.ID.
		UpdateSchool(ctx context.Context, sch School) (School, error)
		DeleteSchool(ctx context.Context, id int64) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Query(ctx context.Context) ([]School, error) {
	return svc.repo.QuerySchools(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id int64) (School, error) {
	return svc.repo.GetSchool(ctx, id)
}

func (svc *Service) Create(ctx context.Context, ns NewSchool) (School, error) {
	now := nowFunc().UTC()
	return svc.repo.CreateSchool(ctx, School{
		SchoolCode:    ns.SchoolCode,
		Name:          ns.Name,
		Email:         ns.Email,
		Phone:         ns.Phone,
		Address:       ns.Address,
		City:          ns.City,
		Country:       ns.Country,
		ContactPerson: ns.ContactPerson,
		TotalStudents: ns.TotalStudents,
		TotalBuses:    ns.TotalBuses,
		Status:        ns.Status,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
}

func (svc *Service) Update(ctx context.Context, id int64, us UpdateSchool) (School, error) {
	return svc.repo.UpdateSchool(ctx, School{
		ID:            id,
		Name:          us.Name,
		Email:         us.Email,
		Phone:         us.Phone,
		Address:       us.Address,
		City:          us.City,
		Country:       us.Country,
		ContactPerson: us.ContactPerson,
		TotalStudents: us.TotalStudents,
		TotalBuses:    us.TotalBuses,
		Status:        us.Status,
		UpdatedAt:     nowFunc().UTC(),
	})
}

func (svc *Service) Delete(ctx context.Context, id int64) error {
	return svc.repo.DeleteSchool(ctx, id)
}

package plan

import (
	"context"
	"errors"
	"time"

	"github.com/trezcool/trackx/core"
)

var (
	// errors
	ErrNotFound     = core.NewNotFoundError("Plan not found")
	errInvalidPrice = errors.New("price must be a positive number")

	nowFunc = time.Now // mockable
)

type (
	Repository interface {
		// QueryActivePlans returns active plans, cheapest first.
		QueryActivePlans(ctx context.Context) ([]Plan, error)
		// GetActivePlan returns ErrNotFound for inactive plans.
		GetActivePlan(ctx context.Context, id int64) (Plan, error)
		// GetPlan returns a plan whether active or not.
		GetPlan(ctx context.Context, id int64) (Plan, error)
		CreatePlan(ctx context.Context, p Plan) (Plan, error)
		// UpdatePlan overwrites every mutable field; ErrNotFound when no row has p.ID.
		UpdatePlan(ctx context.Context, p Plan) (Plan, error)
		// DeactivatePlan soft-deletes a plan.
		DeactivatePlan(ctx context.Context, id int64, updatedAt time.Time) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) QueryActive(ctx context.Context) ([]Plan, error) {
	plans, err := svc.repo.QueryActivePlans(ctx)
	if err != nil {
		return nil, err
	}
	for i := range plans {
		plans[i].Decode()
	}
	return plans, nil
}

// GetByID returns an active Plan.
func (svc *Service) GetByID(ctx context.Context, id int64) (Plan, error) {
	p, err := svc.repo.GetActivePlan(ctx, id)
	if err != nil {
		return Plan{}, err
	}
	p.Decode()
	return p, nil
}

// Lookup returns a Plan whether active or not; soft-deleted plans still back subscriptions.
func (svc *Service) Lookup(ctx context.Context, id int64) (Plan, error) {
	p, err := svc.repo.GetPlan(ctx, id)
	if err != nil {
		return Plan{}, err
	}
	p.Decode()
	return p, nil
}

func (svc *Service) Create(ctx context.Context, np NewPlan) (Plan, error) {
	now := nowFunc().UTC()
	p := svc.fromInput(np)
	p.CreatedAt = now
	p.UpdatedAt = now

	p, err := svc.repo.CreatePlan(ctx, p)
	if err != nil {
		return Plan{}, err
	}
	p.Decode()
	return p, nil
}

func (svc *Service) Update(ctx context.Context, id int64, np NewPlan) (Plan, error) {
	p := svc.fromInput(np)
	p.ID = id
	p.UpdatedAt = nowFunc().UTC()

	p, err := svc.repo.UpdatePlan(ctx, p)
	if err != nil {
		return Plan{}, err
	}
	p.Decode()
	return p, nil
}

func (svc *Service) Delete(ctx context.Context, id int64) error {
	return svc.repo.DeactivatePlan(ctx, id, nowFunc().UTC())
}

func (svc *Service) fromInput(np NewPlan) Plan {
	p := Plan{
		PlanCode:     np.PlanCode,
		Name:         np.Name,
		Description:  np.Description,
		BillingCycle: np.BillingCycle,
		MaxStudents:  np.MaxStudents,
		MaxBuses:     np.MaxBuses,
		Features:     np.Features,
		Limitations:  np.Limitations,
		IsActive:     np.IsActiveOrDefault(),
	}
	if np.Price != nil {
		p.Price = *np.Price
	}
	return p
}

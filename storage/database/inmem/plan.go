package inmemdb

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/trackx/core"
	"github.com/trezcool/trackx/core/plan"
)

type planRepository struct {
	db *DB
}

var _ plan.Repository = (*planRepository)(nil) // interface compliance check

func NewPlanRepository(db *DB) plan.Repository {
	return &planRepository{db: db}
}

func (repo *planRepository) QueryActivePlans(ctx context.Context) ([]plan.Plan, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	plans := make([]plan.Plan, 0, len(repo.db.plan))
	for _, p := range repo.db.plan {
		if p.IsActive {
			plans = append(plans, *p)
		}
	}
	sort.Slice(plans, func(i, j int) bool {
		if plans[i].Price.Equal(plans[j].Price) {
			return plans[i].ID < plans[j].ID
		}
		return plans[i].Price.LessThan(plans[j].Price)
	})
	return plans, nil
}

func (repo *planRepository) GetActivePlan(ctx context.Context, id int64) (plan.Plan, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if p, ok := repo.db.plan[id]; ok && p.IsActive {
		return *p, nil
	}
	return plan.Plan{}, plan.ErrNotFound
}

func (repo *planRepository) GetPlan(ctx context.Context, id int64) (plan.Plan, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if p, ok := repo.db.plan[id]; ok {
		return *p, nil
	}
	return plan.Plan{}, plan.ErrNotFound
}

func (repo *planRepository) checkCode(p plan.Plan) error {
	for _, other := range repo.db.plan {
		if other.PlanCode == p.PlanCode && other.ID != p.ID {
			return core.NewConflictError(errors.Errorf("plan_code %q already exists", p.PlanCode))
		}
	}
	return nil
}

func (repo *planRepository) CreatePlan(ctx context.Context, p plan.Plan) (plan.Plan, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if err := repo.checkCode(p); err != nil {
		return plan.Plan{}, err
	}
	p.ID = repo.db.nextPK("plan")
	repo.db.plan[p.ID] = &p
	return p, nil
}

func (repo *planRepository) UpdatePlan(ctx context.Context, p plan.Plan) (plan.Plan, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.plan[p.ID]
	if !ok {
		return plan.Plan{}, plan.ErrNotFound
	}
	if err := repo.checkCode(p); err != nil {
		return plan.Plan{}, err
	}
	p.CreatedAt = orig.CreatedAt
	repo.db.plan[p.ID] = &p
	return p, nil
}

func (repo *planRepository) DeactivatePlan(ctx context.Context, id int64, updatedAt time.Time) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	p, ok := repo.db.plan[id]
	if !ok {
		return plan.ErrNotFound
	}
	p.IsActive = false
	p.UpdatedAt = updatedAt
	return nil
}

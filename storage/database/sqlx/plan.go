package sqlxrepos

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/trackx/core"
	"github.com/trezcool/trackx/core/plan"
)

const planColumns = `id, plan_code, name, description, price, billing_cycle, max_students, max_buses,
	features, limitations, is_active, created_at, updated_at`

var planOrdering = []core.DBOrdering{{Field: "price", Ascending: true}, {Field: "id", Ascending: true}}

type planRepository struct {
	exec core.DBExecutor
}

var _ plan.Repository = (*planRepository)(nil) // interface compliance check

func NewPlanRepository(exec core.DBExecutor) plan.Repository {
	return &planRepository{exec: exec}
}

func (repo *planRepository) QueryActivePlans(ctx context.Context) ([]plan.Plan, error) {
	plans := make([]plan.Plan, 0)
	q := `SELECT ` + planColumns + ` FROM subscription_plans WHERE is_active = true ORDER BY ` + orderBy(planOrdering)
	if err := repo.exec.SelectContext(ctx, &plans, q); err != nil {
		return nil, errors.Wrap(err, "selecting plans")
	}
	return plans, nil
}

func (repo *planRepository) GetActivePlan(ctx context.Context, id int64) (plan.Plan, error) {
	var p plan.Plan
	q := `SELECT ` + planColumns + ` FROM subscription_plans WHERE id = $1 AND is_active = true`
	if err := repo.exec.GetContext(ctx, &p, q, id); err != nil {
		return plan.Plan{}, trapErr(err, plan.ErrNotFound)
	}
	return p, nil
}

func (repo *planRepository) GetPlan(ctx context.Context, id int64) (plan.Plan, error) {
	var p plan.Plan
	q := `SELECT ` + planColumns + ` FROM subscription_plans WHERE id = $1`
	if err := repo.exec.GetContext(ctx, &p, q, id); err != nil {
		return plan.Plan{}, trapErr(err, plan.ErrNotFound)
	}
	return p, nil
}

func (repo *planRepository) CreatePlan(ctx context.Context, p plan.Plan) (plan.Plan, error) {
	var created plan.Plan
	q := `INSERT INTO subscription_plans (
		plan_code, name, description, price, billing_cycle, max_students, max_buses,
		features, limitations, is_active, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	RETURNING ` + planColumns
	err := repo.exec.GetContext(
		ctx, &created, q,
		p.PlanCode, p.Name, p.Description, p.Price, p.BillingCycle, p.MaxStudents, p.MaxBuses,
		plan.AttributesParam(p.Features), plan.AttributesParam(p.Limitations), p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return plan.Plan{}, trapErr(errors.Wrap(err, "inserting plan"), plan.ErrNotFound)
	}
	return created, nil
}

func (repo *planRepository) UpdatePlan(ctx context.Context, p plan.Plan) (plan.Plan, error) {
	var updated plan.Plan
	q := `UPDATE subscription_plans SET
		plan_code = $1, name = $2, description = $3, price = $4, billing_cycle = $5,
		max_students = $6, max_buses = $7, features = $8, limitations = $9, is_active = $10, updated_at = $11
	WHERE id = $12
	RETURNING ` + planColumns
	err := repo.exec.GetContext(
		ctx, &updated, q,
		p.PlanCode, p.Name, p.Description, p.Price, p.BillingCycle, p.MaxStudents, p.MaxBuses,
		plan.AttributesParam(p.Features), plan.AttributesParam(p.Limitations), p.IsActive, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return plan.Plan{}, trapErr(err, plan.ErrNotFound)
	}
	return updated, nil
}

func (repo *planRepository) DeactivatePlan(ctx context.Context, id int64, updatedAt time.Time) error {
	res, err := repo.exec.ExecContext(
		ctx, `UPDATE subscription_plans SET is_active = false, updated_at = $1 WHERE id = $2`, updatedAt, id,
	)
	if err != nil {
		return errors.Wrap(err, "deactivating plan")
	}
	return checkAffected(res, plan.ErrNotFound)
}

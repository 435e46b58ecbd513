package sqlxrepos

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/trackx/core"
	"github.com/trezcool/trackx/core/plan"
)

var planRowColumns = []string{
	"id", "plan_code", "name", "description", "price", "billing_cycle", "max_students", "max_buses",
	"features", "limitations", "is_active", "created_at", "updated_at",
}

func addPlanRow(rows *sqlmock.Rows, id int64, code, price string, features interface{}) *sqlmock.Rows {
	return rows.AddRow(id, code, "Plan "+code, "desc", price, "monthly", 500, nil, features, nil, true, now, now)
}

func TestPlanRepository_QueryActivePlans(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewPlanRepository(db)

	rows := sqlmock.NewRows(planRowColumns)
	addPlanRow(rows, 2, "BASIC", "9.99", []byte(`["gps"]`))
	addPlanRow(rows, 1, "PREMIUM", "49.99", nil)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM subscription_plans WHERE is_active = true ORDER BY price ASC, id ASC`)).
		WillReturnRows(rows)

	plans, err := repo.QueryActivePlans(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, "9.99", plans[0].Price.String())
	assert.Equal(t, null.IntFrom(500), plans[0].MaxStudents)
	assert.False(t, plans[0].MaxBuses.Valid)
	assert.JSONEq(t, `["gps"]`, string(plans[0].Features.JSON))
	assert.False(t, plans[1].Features.Valid)
}

func TestPlanRepository_GetActivePlan(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewPlanRepository(db)
	q := regexp.QuoteMeta(`FROM subscription_plans WHERE id = $1 AND is_active = true`)

	mock.ExpectQuery(q).WithArgs(1).WillReturnRows(addPlanRow(sqlmock.NewRows(planRowColumns), 1, "BASIC", "9.99", nil))
	p, err := repo.GetActivePlan(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "BASIC", p.PlanCode)

	mock.ExpectQuery(q).WithArgs(2).WillReturnError(sql.ErrNoRows)
	_, err = repo.GetActivePlan(context.Background(), 2)
	assert.Equal(t, plan.ErrNotFound, err)
}

func TestPlanRepository_GetPlan(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewPlanRepository(db)
	q := regexp.QuoteMeta(`FROM subscription_plans WHERE id = $1`) + `$`

	rows := sqlmock.NewRows(planRowColumns).
		AddRow(4, "OLD", "Plan OLD", "desc", "5", "monthly", nil, nil, nil, nil, false, now, now)
	mock.ExpectQuery(q).WithArgs(4).WillReturnRows(rows)
	p, err := repo.GetPlan(context.Background(), 4)
	require.NoError(t, err)
	assert.False(t, p.IsActive)

	mock.ExpectQuery(q).WithArgs(9).WillReturnError(sql.ErrNoRows)
	_, err = repo.GetPlan(context.Background(), 9)
	assert.Equal(t, plan.ErrNotFound, err)
}

func TestPlanRepository_CreatePlan(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewPlanRepository(db)
	q := regexp.QuoteMeta(`INSERT INTO subscription_plans`)
	p := plan.Plan{
		PlanCode:     "BASIC",
		Name:         "Basic",
		Description:  "desc",
		Price:        decimal.RequireFromString("9.99"),
		BillingCycle: "monthly",
		MaxStudents:  null.IntFrom(500),
		Features:     null.JSONFrom([]byte(`["gps"]`)),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	mock.ExpectQuery(q).
		WithArgs("BASIC", "Basic", "desc", "9.99", "monthly", 500, nil, `["gps"]`, nil, true, now, now).
		WillReturnRows(addPlanRow(sqlmock.NewRows(planRowColumns), 3, "BASIC", "9.99", []byte(`["gps"]`)))
	created, err := repo.CreatePlan(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)

	mock.ExpectQuery(q).WillReturnError(&pq.Error{Code: pqUniqueViolation, Message: "duplicate key value"})
	_, err = repo.CreatePlan(context.Background(), p)
	assert.True(t, core.IsConflict(err))
}

func TestPlanRepository_UpdatePlan(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewPlanRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE subscription_plans SET`)).WillReturnError(sql.ErrNoRows)
	_, err := repo.UpdatePlan(context.Background(), plan.Plan{ID: 9, Price: decimal.RequireFromString("1")})
	assert.Equal(t, plan.ErrNotFound, err)
}

func TestPlanRepository_DeactivatePlan(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewPlanRepository(db)
	q := regexp.QuoteMeta(`UPDATE subscription_plans SET is_active = false, updated_at = $1 WHERE id = $2`)

	mock.ExpectExec(q).WithArgs(now, 1).WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.DeactivatePlan(context.Background(), 1, now))

	mock.ExpectExec(q).WithArgs(now, 9).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.Equal(t, plan.ErrNotFound, repo.DeactivatePlan(context.Background(), 9, now))
}

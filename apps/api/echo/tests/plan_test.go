package tests

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/trackx/core/plan"
	testutil "github.com/trezcool/trackx/tests"
)

func Test_planApi_query(t *testing.T) {
	resetDB()

	premium := testutil.CreatePlan(t, planRepo, "PREMIUM", "Premium", "199.00", "annual", `{"gps":true}`)
	basic := testutil.CreatePlan(t, planRepo, "BASIC", "Basic", "49.99", "monthly", `["gps","alerts"]`)
	retired := testutil.CreatePlan(t, planRepo, "OLD", "Old", "10", "monthly", "")
	require.NoError(t, planRepo.DeactivatePlan(context.Background(), retired.ID, retired.UpdatedAt))

	tests := []httpTest{
		{name: "active only, cheapest first", path: "/track_x/plans", wantCode: http.StatusOK, wantData: marchallList(t, basic, premium)},
		{name: "get one", path: fmt.Sprintf("/track_x/plans/%d", basic.ID), wantCode: http.StatusOK, wantData: marchallObj(t, basic)},
		{
			name: "get inactive", path: fmt.Sprintf("/track_x/plans/%d", retired.ID),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Message: "Plan not found"}),
		},
	}

	runHTTPTests(t, tests)
}

func Test_planApi_create(t *testing.T) {
	resetDB()

	testutil.CreatePlan(t, planRepo, "BASIC", "Basic", "49.99", "monthly", "")

	tests := []httpTest{
		{
			name: "missing fields", method: http.MethodPost, path: "/track_x/plans", body: []byte(`{"plan_code":"PRO","name":"Pro"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{
				Message: "Missing required fields: description, price",
				Errors:  map[string]string{"description": "description is required", "price": "price is required"},
			}),
		},
		{
			name: "zero price", method: http.MethodPost, path: "/track_x/plans",
			body:     []byte(`{"plan_code":"PRO","name":"Pro","description":"Pro plan","price":0}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{
				Message: "Missing required fields: price",
				Errors:  map[string]string{"price": "price is required"},
			}),
		},
		{
			name: "negative price", method: http.MethodPost, path: "/track_x/plans",
			body:     []byte(`{"plan_code":"PRO","name":"Pro","description":"Pro plan","price":-5}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{
				Message: "price must be a positive number",
				Errors:  map[string]string{"price": "price must be a positive number"},
			}),
		},
		{
			name: "duplicate code", method: http.MethodPost, path: "/track_x/plans",
			body:     []byte(`{"plan_code":"BASIC","name":"Basic 2","description":"Again","price":10}`),
			wantCode: http.StatusConflict,
		},
	}

	runHTTPTests(t, tests)

	t.Run("created", func(t *testing.T) {
		rec := do(http.MethodPost, "/track_x/plans", []byte(`{
			"plan_code": "PRO",
			"name": "Pro",
			"description": "Pro plan",
			"price": "99.50",
			"max_students": 500,
			"features": ["gps", "sms alerts"],
			"limitations": "{\"max_routes\": 10}"
		}`))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var got map[string]interface{}
		unmarchall(t, rec.Body.Bytes(), &got)
		assert.Equal(t, 99.5, got["price"], "price is a JSON number")
		assert.Equal(t, "monthly", got["billing_cycle"])
		assert.Equal(t, true, got["is_active"])
		assert.Equal(t, float64(500), got["max_students"])
		assert.Nil(t, got["max_buses"])
		assert.Equal(t, []interface{}{"gps", "sms alerts"}, got["features"])
		assert.Equal(t, map[string]interface{}{"max_routes": float64(10)}, got["limitations"])
	})

	t.Run("empty attributes are null", func(t *testing.T) {
		rec := do(http.MethodPost, "/track_x/plans", []byte(`{
			"plan_code": "FREE", "name": "Free", "description": "Free plan", "price": 1,
			"billing_cycle": "Annual", "features": [], "limitations": {}
		}`))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var got map[string]interface{}
		unmarchall(t, rec.Body.Bytes(), &got)
		assert.Equal(t, "annual", got["billing_cycle"])
		assert.Nil(t, got["features"])
		assert.Nil(t, got["limitations"])
	})
}

func Test_planApi_update(t *testing.T) {
	resetDB()

	p := testutil.CreatePlan(t, planRepo, "BASIC", "Basic", "49.99", "monthly", `["gps"]`)
	retired := testutil.CreatePlan(t, planRepo, "OLD", "Old", "10", "monthly", "")
	require.NoError(t, planRepo.DeactivatePlan(context.Background(), retired.ID, retired.UpdatedAt))

	tests := []httpTest{
		{
			name: "unknown id", method: http.MethodPut, path: "/track_x/plans/999",
			body:     []byte(`{"plan_code":"X","name":"X","description":"X","price":1}`),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Message: "Plan not found"}),
		},
		{
			name: "missing fields", method: http.MethodPut, path: fmt.Sprintf("/track_x/plans/%d", p.ID),
			body:     []byte(`{"name":"Basic 2"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{
				Message: "Missing required fields: plan_code, description, price",
				Errors: map[string]string{
					"plan_code":   "plan_code is required",
					"description": "description is required",
					"price":       "price is required",
				},
			}),
		},
	}
	runHTTPTests(t, tests)

	t.Run("full overwrite", func(t *testing.T) {
		rec := do(http.MethodPut, fmt.Sprintf("/track_x/plans/%d", p.ID), []byte(`{
			"plan_code": "BASIC", "name": "Basic+", "description": "Better", "price": 59.99,
			"billing_cycle": "quarterly", "features": {"gps": true}
		}`))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		got, err := planRepo.GetActivePlan(context.Background(), p.ID)
		require.NoError(t, err)
		got.Decode()
		assert.Equal(t, "Basic+", got.Name)
		assert.Equal(t, "59.99", got.Price.String())
		assert.Equal(t, plan.CycleQuarterly, got.BillingCycle)
		assert.JSONEq(t, `{"gps":true}`, string(got.Features.JSON))
		assert.False(t, got.Limitations.Valid)
		assert.True(t, p.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("reactivate", func(t *testing.T) {
		rec := do(http.MethodPut, fmt.Sprintf("/track_x/plans/%d", retired.ID), []byte(`{
			"plan_code": "OLD", "name": "Old", "description": "Back", "price": 10
		}`))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		rec = do(http.MethodGet, fmt.Sprintf("/track_x/plans/%d", retired.ID))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func Test_planApi_destroy(t *testing.T) {
	resetDB()

	p := testutil.CreatePlan(t, planRepo, "BASIC", "Basic", "49.99", "monthly", "")
	path := fmt.Sprintf("/track_x/plans/%d", p.ID)

	tests := []httpTest{
		{
			name: "soft deleted", method: http.MethodDelete, path: path,
			wantCode: http.StatusOK, wantData: marchallObj(t, httpErr{Message: "Plan deleted successfully"}),
		},
		{name: "then hidden", path: path, wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Message: "Plan not found"})},
		{name: "then not listed", path: "/track_x/plans", wantCode: http.StatusOK, wantData: marchallList(t)},
		{
			name: "unknown id", method: http.MethodDelete, path: "/track_x/plans/999",
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Message: "Plan not found"}),
		},
	}
	runHTTPTests(t, tests)

	// the row is kept
	rows, err := planRepo.QueryActivePlans(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
	_, err = planRepo.UpdatePlan(context.Background(), p)
	assert.NoError(t, err)
}

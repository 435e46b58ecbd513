package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/trackx/core/plan"
)

type planAPI struct {
	svc        *plan.Service
	validate   *validator.Validate
	translator ut.Translator
}

var _ resourceAPI = (*planAPI)(nil)

func newPlanAPI(svc *plan.Service, validate *validator.Validate, translator ut.Translator) *planAPI {
	return &planAPI{
		svc:        svc,
		validate:   validate,
		translator: translator,
	}
}

// Handlers

func (api *planAPI) query(ctx echo.Context) error {
	plans, err := api.svc.QueryActive(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying plans")
	}
	return ctx.JSON(http.StatusOK, plans)
}

func (api *planAPI) retrieve(ctx echo.Context, id int64) error {
	p, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting plan")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *planAPI) create(ctx echo.Context) error {
	var data plan.NewPlan
	if err := bindBody(ctx, &data); err != nil {
		return err
	}
	if err := data.Validate(api.validate, api.translator); err != nil {
		return err
	}

	p, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating plan")
	}
	return ctx.JSON(http.StatusCreated, p)
}

func (api *planAPI) update(ctx echo.Context, id int64) error {
	var data plan.NewPlan
	if err := bindBody(ctx, &data); err != nil {
		return err
	}
	if err := data.Validate(api.validate, api.translator); err != nil {
		return err
	}

	p, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating plan")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *planAPI) destroy(ctx echo.Context, id int64) error {
	if err := api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting plan")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Plan deleted successfully"})
}

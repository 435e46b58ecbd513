package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/trackx/core/school"
)

type schoolAPI struct {
	svc        *school.Service
	validate   *validator.Validate
	translator ut.Translator
}

var _ resourceAPI = (*schoolAPI)(nil)

func newSchoolAPI(svc *school.Service, validate *validator.Validate, translator ut.Translator) *schoolAPI {
	return &schoolAPI{
		svc:        svc,
		validate:   validate,
		translator: translator,
	}
}

// Handlers

func (api *schoolAPI) query(ctx echo.Context) error {
	schools, err := api.svc.Query(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying schools")
	}
	return ctx.JSON(http.StatusOK, schools)
}

func (api *schoolAPI) retrieve(ctx echo.Context, id int64) error {
	sch, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting school")
	}
	return ctx.JSON(http.StatusOK, sch)
}

func (api *schoolAPI) create(ctx echo.Context) error {
	var data school.NewSchool
	if err := bindBody(ctx, &data); err != nil {
		return err
	}
	if err := data.Validate(api.validate, api.translator); err != nil {
		return err
	}

	sch, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating school")
	}
	return ctx.JSON(http.StatusCreated, sch)
}

func (api *schoolAPI) update(ctx echo.Context, id int64) error {
	var data school.UpdateSchool
	if err := bindBody(ctx, &data); err != nil {
		return err
	}
	if err := data.Validate(api.validate, api.translator); err != nil {
		return err
	}

	sch, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating school")
	}
	return ctx.JSON(http.StatusOK, sch)
}

func (api *schoolAPI) destroy(ctx echo.Context, id int64) error {
	if err := api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting school")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "School deleted successfully"})
}

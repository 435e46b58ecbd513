package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/trackx/core/subscription"
)

type subscriptionAPI struct {
	svc        *subscription.Service
	validate   *validator.Validate
	translator ut.Translator
}

var _ resourceAPI = (*subscriptionAPI)(nil)

func newSubscriptionAPI(svc *subscription.Service, validate *validator.Validate, translator ut.Translator) *subscriptionAPI {
	return &subscriptionAPI{
		svc:        svc,
		validate:   validate,
		translator: translator,
	}
}

// Handlers

func (api *subscriptionAPI) query(ctx echo.Context) error {
	filter, ok := bindFilter(ctx)
	if !ok {
		return ctx.JSON(http.StatusOK, []subscription.Subscription{})
	}

	subs, err := api.svc.Query(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying subscriptions")
	}
	return ctx.JSON(http.StatusOK, subs)
}

func (api *subscriptionAPI) retrieve(ctx echo.Context, id int64) error {
	sub, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting subscription")
	}
	return ctx.JSON(http.StatusOK, sub)
}

func (api *subscriptionAPI) create(ctx echo.Context) error {
	var data subscription.NewSubscription
	if err := bindBody(ctx, &data); err != nil {
		return err
	}
	if err := data.Validate(api.validate, api.translator); err != nil {
		return err
	}

	sub, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating subscription")
	}
	return ctx.JSON(http.StatusCreated, sub)
}

func (api *subscriptionAPI) update(ctx echo.Context, id int64) error {
	var data subscription.UpdateSubscription
	if err := bindBody(ctx, &data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	sub, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating subscription")
	}
	return ctx.JSON(http.StatusOK, sub)
}

func (api *subscriptionAPI) destroy(ctx echo.Context, id int64) error {
	if err := api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting subscription")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Subscription deleted"})
}

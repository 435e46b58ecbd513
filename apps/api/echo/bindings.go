package echoapi

import (
	"bytes"
	"io"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/trackx/core"
	"github.com/trezcool/trackx/core/subscription"
)

// bindBody decodes the JSON request body into dst whatever the Content-Type.
func bindBody(ctx echo.Context, dst interface{}) error {
	req := ctx.Request()
	if req.Body == nil || req.ContentLength == 0 {
		return core.ErrNoData
	}
	data, err := io.ReadAll(req.Body)
	if err != nil {
		return errors.Wrap(err, "reading request body")
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return core.ErrNoData
	}
	req.Body = io.NopCloser(bytes.NewReader(data))

	if err = ctx.Echo().JSONSerializer.Deserialize(ctx, dst); err != nil {
		var msg interface{} = err.Error() // custom UnmarshalJSON errors are returned as is
		if herr, ok := err.(*echo.HTTPError); ok {
			msg = herr.Message
		}
		return core.NewValidationError(errors.Errorf("Invalid JSON: %v", msg))
	}
	return nil
}

// bindFilter reads the subscription filters from the query string.
// ok is false when a filter cannot be parsed.
func bindFilter(ctx echo.Context) (filter subscription.Filter, ok bool) {
	err := echo.QueryParamsBinder(ctx).
		String("status", &filter.Status).
		Int64("school_id", &filter.SchoolID).
		Int64("plan_id", &filter.PlanID).
		BindError()
	if err != nil {
		return subscription.Filter{}, false
	}
	filter.Clean()
	return filter, true
}

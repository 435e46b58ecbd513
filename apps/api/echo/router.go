package echoapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

var (
	errEndpointNotFound = echo.NewHTTPError(http.StatusNotFound, "Endpoint not found")
	errMethodNotAllowed = echo.NewHTTPError(http.StatusMethodNotAllowed, "Method not allowed")
	errMissingID        = echo.NewHTTPError(http.StatusBadRequest, "Missing resource id")
)

// resourceAPI is a REST resource reachable through the router.
type resourceAPI interface {
	query(ctx echo.Context) error
	retrieve(ctx echo.Context, id int64) error
	create(ctx echo.Context) error
	update(ctx echo.Context, id int64) error
	destroy(ctx echo.Context, id int64) error
}

// router maps /<resource>[/<id>] to a resourceAPI action.
type router struct {
	basePath  string
	resources map[string]resourceAPI
}

func newRouter(basePath string, resources map[string]resourceAPI) *router {
	return &router{
		basePath:  strings.TrimRight(basePath, "/"),
		resources: resources,
	}
}

// split returns the resource name and the raw id segment of path.
// Segments after the id are ignored.
func (r *router) split(path string) (resource, id string) {
	if r.basePath != "" && (path == r.basePath || strings.HasPrefix(path, r.basePath+"/")) {
		path = path[len(r.basePath):]
	}
	segments := strings.Split(strings.Trim(path, "/"), "/")
	resource = segments[0]
	if len(segments) > 1 {
		id = segments[1]
	}
	return resource, id
}

func (r *router) dispatch(ctx echo.Context) error {
	req := ctx.Request()
	if req.Method == http.MethodOptions { // CORS preflight, headers are set by corsMiddleware
		return ctx.NoContent(http.StatusOK)
	}

	name, rawID := r.split(req.URL.Path)
	api, ok := r.resources[name]
	if !ok {
		return errEndpointNotFound
	}

	// a non numeric id matches no row
	id, _ := strconv.ParseInt(rawID, 10, 64)
	hasID := rawID != ""

	switch req.Method {
	case http.MethodGet:
		if hasID {
			return api.retrieve(ctx, id)
		}
		return api.query(ctx)
	case http.MethodPost:
		return api.create(ctx)
	case http.MethodPut:
		if !hasID {
			return errMissingID
		}
		return api.update(ctx, id)
	case http.MethodDelete:
		if !hasID {
			return errMissingID
		}
		return api.destroy(ctx, id)
	default:
		return errMethodNotAllowed
	}
}

package params

import (
	"strconv"

	"bandos-api/core/constants"

	"github.com/labstack/echo/v4"
)

// QueryParams carries the common list-endpoint query parameters.
type QueryParams struct {
	PageNumber int
	PageSize   int
	Search     string
}

// FromContext parses pagination and search parameters from the request,
// falling back to defaults when absent or malformed.
func FromContext(c echo.Context) QueryParams {
	p := QueryParams{
		PageNumber: constants.DefaultPageNumber,
		PageSize:   constants.DefaultPageSize,
		Search:     c.QueryParam("search"),
	}

	if n, err := strconv.Atoi(c.QueryParam("page")); err == nil && n > 0 {
		p.PageNumber = n
	}
	if n, err := strconv.Atoi(c.QueryParam("page_size")); err == nil && n > 0 {
		if n > constants.MaxPageSize {
			n = constants.MaxPageSize
		}
		p.PageSize = n
	}

	return p
}

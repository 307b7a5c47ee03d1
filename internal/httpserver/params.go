package httpserver

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_catalog/internal/apperr"
	"github.com/Skotchmaster/shop_catalog/internal/catalog"
	"github.com/Skotchmaster/shop_catalog/internal/util"
)

var (
	errBadBody  = apperr.Invalid("Invalid request body")
	errBadQuery = apperr.Invalid("Invalid query")
	errBadID    = apperr.Invalid("Invalid id")
)

func pageParams(c echo.Context) (page, size *int, err error) {
	if page, err = util.ParseOptionalInt(c.QueryParam("page")); err != nil {
		return nil, nil, errBadQuery
	}
	if size, err = util.ParseOptionalInt(c.QueryParam("size")); err != nil {
		return nil, nil, errBadQuery
	}
	return page, size, nil
}

func listParams(c echo.Context) (catalog.ListParams, error) {
	page, size, err := pageParams(c)
	if err != nil {
		return catalog.ListParams{}, err
	}
	p := catalog.ListParams{Keyword: c.QueryParam("keyword"), Page: page, Size: size}
	if raw := c.QueryParam("all"); raw != "" {
		all, err := strconv.ParseBool(raw)
		if err != nil {
			return catalog.ListParams{}, errBadQuery
		}
		p.IncludeDeleted = all
	}
	return p, nil
}

func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		return 0, errBadID
	}
	return uint(id), nil
}

// bindValid binds the body and runs the registered validator.
func bindValid(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return errBadBody
	}
	return c.Validate(dst)
}

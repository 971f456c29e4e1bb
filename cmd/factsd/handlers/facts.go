package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	bindfacts "github.com/vetstoria/k9facts/pkg/api-types-binding/facts"
	apierr "github.com/vetstoria/k9facts/pkg/api/types/errors"
	kdb "github.com/vetstoria/k9facts/pkg/db"
	"github.com/vetstoria/k9facts/pkg/utils/pointer"
	"github.com/vetstoria/k9facts/pkg/utils/slices"
)

func FindFactHandler(dbFacts kdb.FactInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		query := kdb.FactFindQuery{}

		if p := c.QueryParam("category"); p != "" {
			category, err := kdb.AsCategory(p)
			if err != nil {
				return apierr.BadRequest(
					`category should be "number_included" or "number_excluded"`, err,
				)
			}
			query.Category = pointer.Ref(category)
		}

		if p := c.QueryParam("deleted"); p != "" {
			deleted, err := strconv.ParseBool(p)
			if err != nil {
				return apierr.BadRequest(`deleted should be true or false`, err)
			}
			query.IncludeDeleted = deleted
		}

		facts, err := dbFacts.Find(ctx, query)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		return c.JSON(
			http.StatusOK,
			slices.Map(facts, bindfacts.ComposeDetail),
		)
	}
}

func GetFactHandler(dbFacts kdb.FactInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		id, err := strconv.Atoi(c.Param(paramKey))
		if err != nil {
			return apierr.BadRequest(`fact id should be an integer`, err)
		}

		fact, err := dbFacts.Get(ctx, id)
		if err != nil {
			if errors.Is(err, kdb.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, bindfacts.ComposeDetail(fact))
	}
}

func DeleteFactHandler(dbFacts kdb.FactInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		id, err := strconv.Atoi(c.Param(paramKey))
		if err != nil {
			return apierr.BadRequest(`fact id should be an integer`, err)
		}

		if err := dbFacts.SoftDelete(ctx, id); err != nil {
			if errors.Is(err, kdb.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}

		return c.NoContent(http.StatusNoContent)
	}
}

package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	bindruns "github.com/vetstoria/k9facts/pkg/api-types-binding/runs"
	apierr "github.com/vetstoria/k9facts/pkg/api/types/errors"
	apiruns "github.com/vetstoria/k9facts/pkg/api/types/runs"
	kdb "github.com/vetstoria/k9facts/pkg/db"
	"github.com/vetstoria/k9facts/pkg/utils/pointer"
	"github.com/vetstoria/k9facts/pkg/utils/rfctime"
)

func FindRunHandler(dbRuns kdb.RunInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		query := kdb.RunFindQuery{}

		if p := c.QueryParam("status"); p != "" {
			status, err := kdb.AsRunStatus(p)
			if err != nil {
				return apierr.BadRequest(
					`status should be "running", "done" or "failed"`, err,
				)
			}
			query.Status = pointer.Ref(status)
		}

		if p := c.QueryParam("since"); p != "" {
			since, err := rfctime.ParseRFC3339DateTime(p)
			if err != nil {
				return apierr.BadRequest(`since should be a RFC3339 date-time`, err)
			}
			query.Since = pointer.Ref(since.Time())
		}

		runIds, err := dbRuns.Find(ctx, query)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		if len(runIds) == 0 {
			return c.JSON(http.StatusOK, []apiruns.Detail{})
		}

		runs, err := dbRuns.Get(ctx, runIds)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		found := make([]apiruns.Detail, 0, len(runs))
		for _, runId := range runIds {
			if r, ok := runs[runId]; ok {
				found = append(found, bindruns.ComposeDetail(r))
			}
		}

		return c.JSON(http.StatusOK, found)
	}
}

func GetRunHandler(dbRuns kdb.RunInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		runId := c.Param(paramKey)

		runs, err := dbRuns.Get(ctx, []string{runId})
		if err != nil {
			return apierr.InternalServerError(err)
		}

		run, ok := runs[runId]
		if !ok {
			return apierr.NotFound()
		}

		return c.JSON(http.StatusOK, bindruns.ComposeDetail(run))
	}
}

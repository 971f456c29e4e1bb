package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	apierr "github.com/vetstoria/k9facts/pkg/api/types/errors"
	kdb "github.com/vetstoria/k9facts/pkg/db"
)

type HealthResponse struct {
	Status        string `json:"status"`
	SchemaVersion int    `json:"schemaVersion"`
}

func HealthHandler(schema kdb.SchemaInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		version, err := schema.Version(ctx)
		if err != nil {
			return apierr.ServiceUnavailable("database is not reachable. try again later.", err)
		}

		return c.JSON(http.StatusOK, HealthResponse{
			Status:        "ok",
			SchemaVersion: version,
		})
	}
}

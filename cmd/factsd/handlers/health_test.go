package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	httptestutil "github.com/vetstoria/k9facts/internal/testutils/http"
	dbmock "github.com/vetstoria/k9facts/pkg/db/mocks"
	poolmock "github.com/vetstoria/k9facts/pkg/db/postgres/pool/mock"
	kpgschema "github.com/vetstoria/k9facts/pkg/db/postgres/schema"

	"github.com/vetstoria/k9facts/cmd/factsd/handlers"
)

func TestHealthHandler(t *testing.T) {

	t.Run("when the database is reachable, it should answer ok with the schema version", func(t *testing.T) {
		mckschema := dbmock.NewSchemaInterface()
		mckschema.Impl.Version = func(ctx context.Context) (int, error) {
			return 2, nil
		}

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/health/")

		testee := handlers.HealthHandler(mckschema)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		if respRec.Result().StatusCode != http.StatusOK {
			t.Errorf("unmatch status code:%d, expected:%d", respRec.Result().StatusCode, http.StatusOK)
		}

		var actualResponse handlers.HealthResponse
		if err := json.Unmarshal(respRec.Body.Bytes(), &actualResponse); err != nil {
			t.Fatalf("response is not json: %v", err)
		}
		if actualResponse.Status != "ok" || actualResponse.SchemaVersion != 2 {
			t.Errorf("unmatch response: %+v", actualResponse)
		}
	})

	t.Run("when the database is not reachable, status code should be 503", func(t *testing.T) {
		mckschema := dbmock.NewSchemaInterface()
		mckschema.Impl.Version = func(ctx context.Context) (int, error) {
			return -1, errors.New("connection refused")
		}

		e := echo.New()
		c, _ := httptestutil.Get(e, "/api/health/")

		testee := handlers.HealthHandler(mckschema)
		err := testee(c)

		var echoErr *echo.HTTPError
		if !errors.As(err, &echoErr) {
			t.Fatalf("error is not echo.HTTPError. acutal = %#v", err)
		}
		if echoErr.Code != http.StatusServiceUnavailable {
			t.Errorf("unmatch error code:%d, expeced:%d", echoErr.Code, http.StatusServiceUnavailable)
		}
	})

	t.Run("when serving without a schema repository, it should still reach the database", func(t *testing.T) {
		pool := poolmock.NewPool()
		pool.Impl.Ping = func(context.Context) error {
			return errors.New("connection refused")
		}

		e := echo.New()
		c, _ := httptestutil.Get(e, "/api/health/")

		testee := handlers.HealthHandler(kpgschema.Detached(pool))
		err := testee(c)

		var echoErr *echo.HTTPError
		if !errors.As(err, &echoErr) {
			t.Fatalf("error is not echo.HTTPError. acutal = %#v", err)
		}
		if echoErr.Code != http.StatusServiceUnavailable {
			t.Errorf("unmatch error code:%d, expeced:%d", echoErr.Code, http.StatusServiceUnavailable)
		}
		if pool.Calls.Ping.Times() == 0 {
			t.Error("the database should be pinged")
		}
	})
}

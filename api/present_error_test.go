package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gavv/httpexpect/v2"
	"github.com/gin-gonic/gin"

	"github.com/getforesight/foresight-backend/models"
)

func newErrorPresentingServer(t *testing.T) *httpexpect.Expect {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	fail := func(err error) gin.HandlerFunc {
		return func(c *gin.Context) {
			presentError(c.Request.Context(), c, err)
		}
	}
	r.GET("/bad-parameter", fail(errors.Wrap(models.BadParameterError, "num_simulations is required")))
	r.GET("/unauthorized", fail(models.UnAuthorizedError))
	r.GET("/forbidden", fail(models.ForbiddenError))
	r.GET("/not-found", fail(errors.Wrap(models.NotFoundError, "no simulation with this id")))
	r.GET("/conflict", fail(models.ConflictError))
	r.GET("/unprocessable", fail(models.UnprocessableEntityError))
	r.GET("/unexpected", fail(errors.New("the database caught fire")))
	r.GET("/no-error", func(c *gin.Context) {
		if presentError(c.Request.Context(), c, nil) {
			return
		}
		c.Status(http.StatusNoContent)
	})

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return httpexpect.Default(t, server.URL)
}

func TestPresentError(t *testing.T) {
	e := newErrorPresentingServer(t)

	e.GET("/bad-parameter").Expect().Status(http.StatusBadRequest).
		JSON().Object().Value("message").String().Contains("num_simulations")
	e.GET("/unauthorized").Expect().Status(http.StatusUnauthorized)
	e.GET("/forbidden").Expect().Status(http.StatusForbidden)
	e.GET("/not-found").Expect().Status(http.StatusNotFound).
		JSON().Object().Value("message").String().Contains("no simulation with this id")
	e.GET("/conflict").Expect().Status(http.StatusConflict)
	e.GET("/unprocessable").Expect().Status(http.StatusUnprocessableEntity)
	e.GET("/no-error").Expect().Status(http.StatusNoContent)
}

func TestPresentErrorHidesInternalDetails(t *testing.T) {
	e := newErrorPresentingServer(t)

	e.GET("/unexpected").Expect().Status(http.StatusInternalServerError).
		JSON().Object().Value("message").String().IsEqual("internal error").
		NotContains("database")
}

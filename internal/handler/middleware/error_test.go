//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"kyren/internal/handler/httperr"
	"kyren/internal/handler/middleware"
	"kyren/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	return r
}

func TestErrorHandler_RendersRecordedPublicError(t *testing.T) {
	r := newTestRouter()
	r.GET("/boom", func(c *gin.Context) {
		resp := httperr.Response{Status: http.StatusConflict}
		resp.Error.Message = "conflict"
		_ = c.Error(&gin.Error{
			Err:  errs.New("version check failed"),
			Type: gin.ErrorTypePublic,
			Meta: resp,
		})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":{"message":"conflict"}}`, w.Body.String())
}

func TestErrorHandler_AbortWithErrorWritesOnce(t *testing.T) {
	r := newTestRouter()
	r.GET("/missing", func(c *gin.Context) {
		httperr.AbortWithError(c, http.StatusNotFound, errs.New("no such group"), "Group not found", nil)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":{"message":"Group not found"}}`, w.Body.String())
}

func TestErrorHandler_PanicsBecomeInternalError(t *testing.T) {
	r := newTestRouter()
	r.Use(middleware.CustomRecovery())
	r.GET("/panic", func(_ *gin.Context) {
		panic("unexpected")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":{"message":"Internal server error"}}`, w.Body.String())
}

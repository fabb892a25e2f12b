package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"acrunner/internal/testutil"
	"acrunner/pkg/utils/contextkey"

	"github.com/gin-gonic/gin"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(TraceContextMiddleware(), RequestLogger())
	router.GET("/trace", func(c *gin.Context) {
		ctx := c.Request.Context()
		c.JSON(http.StatusOK, gin.H{
			"trace_id":       c.GetString("trace_id"),
			"request_id":     c.GetString("request_id"),
			"ctx_trace_id":   fmt.Sprint(ctx.Value(contextkey.TraceID)),
			"ctx_request_id": fmt.Sprint(ctx.Value(contextkey.RequestID)),
		})
	})
	return router
}

func TestTraceContextMiddlewareGeneratesIDs(t *testing.T) {
	router := newRouter()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/trace", nil))

	testutil.AssertEqual(t, rec.Code, http.StatusOK)
	var body map[string]string
	testutil.MustUnmarshalJSON(t, rec.Body.Bytes(), &body)

	traceID := rec.Header().Get(traceIDHeader)
	testutil.AssertTrue(t, traceID != "", "trace id header should be set")
	testutil.AssertEqual(t, body["trace_id"], traceID)
	testutil.AssertEqual(t, body["ctx_trace_id"], traceID)
	testutil.AssertEqual(t, body["ctx_request_id"], rec.Header().Get(requestIDHeader))
	testutil.AssertTrue(t, traceID != body["request_id"], "trace and request ids should differ")
}

func TestTraceContextMiddlewarePreservesIDs(t *testing.T) {
	router := newRouter()
	req := httptest.NewRequest(http.MethodGet, "/trace", nil)
	req.Header.Set(traceIDHeader, " trace-1 ")
	req.Header.Set(requestIDHeader, "req-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var body map[string]string
	testutil.MustUnmarshalJSON(t, rec.Body.Bytes(), &body)
	testutil.AssertEqual(t, body["trace_id"], "trace-1")
	testutil.AssertEqual(t, body["request_id"], "req-1")
	testutil.AssertEqual(t, rec.Header().Get(requestIDHeader), "req-1")
}

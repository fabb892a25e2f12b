package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"acrunner/pkg/errors"

	"github.com/gin-gonic/gin"
)

func serve(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/", func(c *gin.Context) {
		c.Set("trace_id", "trace-1")
		handler(c)
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestSuccess(t *testing.T) {
	rec := serve(func(c *gin.Context) { Success(c, gin.H{"ok": true}) })
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decode(t, rec)
	if resp.Code != errors.Success || resp.TraceID != "trace-1" || resp.Data == nil {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestErrorMapsCodeToStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{errors.New(errors.ProblemNotLoaded), http.StatusNotFound},
		{errors.New(errors.RunInProgress), http.StatusConflict},
		{errors.ValidationError("name", "required"), http.StatusBadRequest},
		{errors.New(errors.TestCaseWriteFailed), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		rec := serve(func(c *gin.Context) { Error(c, tt.err) })
		if rec.Code != tt.status {
			t.Errorf("%v: status = %d, want %d", tt.err, rec.Code, tt.status)
		}
		resp := decode(t, rec)
		if resp.Code != errors.GetCode(tt.err) || resp.Message != tt.err.Error() {
			t.Errorf("unexpected body: %+v", resp)
		}
	}
}

func TestBadRequestAndNotFoundDefaults(t *testing.T) {
	rec := serve(func(c *gin.Context) { BadRequest(c, "missing field") })
	resp := decode(t, rec)
	if rec.Code != http.StatusBadRequest || resp.Message != "missing field" {
		t.Errorf("unexpected bad request: %d %+v", rec.Code, resp)
	}

	rec = serve(func(c *gin.Context) { NotFound(c, "") })
	resp = decode(t, rec)
	if rec.Code != http.StatusNotFound || resp.Message != errors.NotFound.Message() {
		t.Errorf("unexpected not found: %d %+v", rec.Code, resp)
	}
}

package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"acrunner/internal/testutil"
	appErr "acrunner/pkg/errors"
)

func TestSendProblem(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		testutil.AssertEqual(t, r.Method, http.MethodPost)
		testutil.AssertEqual(t, r.URL.Path, "/")
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		_, _ = w.Write([]byte(`{"code":10000,"message":"Success","data":{"taskId":"a"}}`))
	}))
	defer server.Close()

	client := New(server.URL, 5*time.Second)
	env, err := client.SendProblem(context.Background(), []byte(`{"name":"A"}`))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, gotBody, `{"name":"A"}`)
	testutil.AssertEqual(t, string(env.Data), `{"taskId":"a"}`)
}

func TestCurrentProblemErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		testutil.AssertEqual(t, r.URL.Path, "/api/v1/problem")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":12000,"message":"No problem is loaded"}`))
	}))
	defer server.Close()

	_, err := New(server.URL, 5*time.Second).CurrentProblem(context.Background())
	testutil.AssertTrue(t, appErr.Is(err, appErr.ProblemNotLoaded), "error envelope should map to its code")
}

func TestUnreachableListener(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := New(url, time.Second).CurrentProblem(context.Background())
	testutil.AssertTrue(t, appErr.Is(err, appErr.ServiceUnavailable), "closed listener should be unavailable")
}

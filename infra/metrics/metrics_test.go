package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_TaskFinished(t *testing.T) {
	r := New()
	r.TaskFinished("bitcoin-payout", "success")
	r.TaskFinished("bitcoin-payout", "success")
	r.TaskFinished("bitcoin-payout", "provider_error")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.tasks.WithLabelValues("bitcoin-payout", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.tasks.WithLabelValues("bitcoin-payout", "provider_error")))
}

func TestRecorder_ObserveProviderRequest(t *testing.T) {
	r := New()
	r.ObserveProviderRequest(150 * time.Millisecond)

	n, err := testutil.GatherAndCount(r.Registry(), "payout_provider_request_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRecorder_Push(t *testing.T) {
	var method, path, body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		method, path = req.Method, req.URL.Path
		b, _ := io.ReadAll(req.Body)
		body = string(b)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	r := New()
	r.TaskFinished("set-payout-address", "success")
	require.NoError(t, r.Push(context.Background(), srv.URL, "payout_tasks"))

	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/metrics/job/payout_tasks", path)
	assert.NotEmpty(t, body)
}

func TestRecorder_PushError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := New().Push(context.Background(), srv.URL, "payout_tasks")
	assert.Error(t, err)
}

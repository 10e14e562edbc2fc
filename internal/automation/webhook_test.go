package automation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSendDeliversPayload(t *testing.T) {
	var got struct {
		Text      string `json:"text"`
		Timestamp string `json:"timestamp"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewNotifier([]string{srv.URL}, time.Second)
	require.NoError(t, n.Send(context.Background(), "déclenche le flux de prospection"))

	require.Equal(t, "déclenche le flux de prospection", got.Text)
	_, err := time.Parse(time.RFC3339, got.Timestamp)
	require.NoError(t, err, "timestamp must be RFC3339")
}

func TestSendCountsErrorStatusAsDelivered(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The workflow engine answers 404 when the flow is not active,
		// but the request did reach it.
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	n := NewNotifier([]string{srv.URL}, time.Second)
	require.NoError(t, n.Send(context.Background(), "test"))
}

func TestSendSucceedsWhenOneEndpointAnswers(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer slow.Close()
	fast := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer fast.Close()

	n := NewNotifier([]string{slow.URL, fast.URL}, time.Second)

	start := time.Now()
	require.NoError(t, n.Send(context.Background(), "test"))
	require.Less(t, time.Since(start), time.Second, "must not wait for the slow endpoint")
}

func TestSendFailsWhenAllEndpointsUnreachable(t *testing.T) {
	n := NewNotifier([]string{"http://127.0.0.1:1", "http://127.0.0.1:2"}, time.Second)
	err := n.Send(context.Background(), "test")
	require.ErrorIs(t, err, ErrNoEndpointReached)
}

func TestSendTimesOutWhenNothingAnswers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	n := NewNotifier([]string{srv.URL}, 100*time.Millisecond)

	start := time.Now()
	err := n.Send(context.Background(), "test")
	require.ErrorIs(t, err, ErrNoEndpointReached)
	require.Less(t, time.Since(start), time.Second)
}

func TestSendWithoutEndpoints(t *testing.T) {
	n := NewNotifier(nil, time.Second)
	require.ErrorIs(t, n.Send(context.Background(), "test"), ErrNoEndpointReached)
}

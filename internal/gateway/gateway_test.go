package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type staticTokens struct{ tok string }

func (s staticTokens) Token() string { return s.tok }

func TestGatewaySuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/events", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"_id":"1","title":"gig"}]`))
	}))
	defer srv.Close()

	gw := New(srv.URL, time.Second)

	var out []map[string]any
	err := gw.GetJSON(context.Background(), "/events", &out)
	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, "gig", out[0]["title"])
}

func TestGatewayBearerInjection(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	gw := New(srv.URL, time.Second, WithTokenSource(staticTokens{tok: "tok123"}))
	assert.NoError(t, gw.GetJSON(context.Background(), "/events", nil))
	assert.Equal(t, "Bearer tok123", got)

	// No stored token: the header is simply absent, not an error.
	gw = New(srv.URL, time.Second, WithTokenSource(staticTokens{}))
	assert.NoError(t, gw.GetJSON(context.Background(), "/events", nil))
	assert.Empty(t, got)
}

func TestGatewayStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"event not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	gw := New(srv.URL, time.Second)
	err := gw.GetJSON(context.Background(), "/events/missing", nil)
	assert.Error(t, err)

	var ge *Error
	assert.True(t, errors.As(err, &ge))
	assert.Equal(t, KindHTTPStatus, ge.Kind)
	assert.Equal(t, http.StatusNotFound, ge.Status)
	assert.Equal(t, "/events/missing", ge.Path)
	// The normalized message names both the status code and the path.
	assert.Contains(t, ge.UserMessage, "404")
	assert.Contains(t, ge.UserMessage, "/events/missing")
	// The response body is preserved for callers that want to inspect it.
	assert.Contains(t, string(ge.Body), "event not found")

	assert.True(t, IsStatus(err, http.StatusNotFound))
	assert.False(t, IsStatus(err, http.StatusInternalServerError))
}

func TestGatewayTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	gw := New(srv.URL, 50*time.Millisecond)
	err := gw.GetJSON(context.Background(), "/events", nil)
	assert.Error(t, err)

	var ge *Error
	assert.True(t, errors.As(err, &ge))
	assert.Equal(t, KindTimeout, ge.Kind)
	assert.Contains(t, ge.UserMessage, "waking up")
	// The original transport error stays reachable.
	assert.NotNil(t, ge.Unwrap())
}

func TestGatewayNoResponse(t *testing.T) {
	// A server that is already gone simulates connectivity loss: the
	// request goes out, nothing comes back.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	gw := New(url, time.Second)
	err := gw.GetJSON(context.Background(), "/events", nil)
	assert.Error(t, err)

	var ge *Error
	assert.True(t, errors.As(err, &ge))
	assert.Equal(t, KindNoResponse, ge.Kind)
	assert.Contains(t, ge.UserMessage, "internet connection")
}

func TestUserMessage(t *testing.T) {
	ge := &Error{Kind: KindTimeout, UserMessage: "be patient"}
	assert.Equal(t, "be patient", UserMessage(ge))

	plain := errors.New("boom")
	assert.Equal(t, "boom", UserMessage(plain))
	assert.Equal(t, "", UserMessage(nil))
}

func TestGatewayOrigin(t *testing.T) {
	gw := New("https://backend.example/api", time.Second)
	assert.Equal(t, "https://backend.example", gw.Origin())

	gw = New("https://backend.example", time.Second)
	assert.Equal(t, "https://backend.example", gw.Origin())
}

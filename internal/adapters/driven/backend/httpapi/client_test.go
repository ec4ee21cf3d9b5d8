package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/geofind/internal/core/domain"
	"github.com/custodia-labs/geofind/internal/core/ports/driven"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{BaseURL: server.URL})
	require.NoError(t, err)
	return client
}

func TestNewClient_MissingBaseURL(t *testing.T) {
	client, err := NewClient(Config{BaseURL: "  "})

	assert.ErrorIs(t, err, ErrMissingBaseURL)
	assert.Nil(t, client)
}

func TestNewClient_InvalidBaseURL(t *testing.T) {
	_, err := NewClient(Config{BaseURL: "localhost"})

	assert.Error(t, err)
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	client, err := NewClient(Config{BaseURL: "http://127.0.0.1:8000/"})

	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8000", client.BaseURL())
}

func TestClient_SearchURL(t *testing.T) {
	client, err := NewClient(Config{BaseURL: "http://127.0.0.1:8000"})
	require.NoError(t, err)

	tests := []struct {
		name     string
		typ      domain.SearchType
		value    string
		expected string
	}{
		{"postal code", domain.SearchTypePostalCode, "42119", "http://127.0.0.1:8000/api/search/postal-code/42119"},
		{"city with space", domain.SearchTypeCity, "Bad Homburg", "http://127.0.0.1:8000/api/search/city/Bad%20Homburg"},
		{"umlaut", domain.SearchTypeState, "Baden-Württemberg", "http://127.0.0.1:8000/api/search/state/Baden-W%C3%BCrttemberg"},
		{"slash", domain.SearchTypeCity, "a/b", "http://127.0.0.1:8000/api/search/city/a%2Fb"},
		{"question mark", domain.SearchTypeCity, "why?", "http://127.0.0.1:8000/api/search/city/why%3F"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, client.SearchURL(tt.typ, tt.value))
		})
	}
}

func TestClient_SearchURL_PostalCodeSegment(t *testing.T) {
	client, err := NewClient(Config{BaseURL: "http://127.0.0.1:8000", PostalCodeSegment: "plz"})
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8000/api/search/plz/42119", client.SearchURL(domain.SearchTypePostalCode, "42119"))
	assert.Equal(t, "http://127.0.0.1:8000/api/search/city/Wuppertal", client.SearchURL(domain.SearchTypeCity, "Wuppertal"))
}

func TestClient_Reconfigure_PostalCodeSegment(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte(`{}`))
	})
	req := driven.SearchRequest{Type: domain.SearchTypePostalCode, Value: "42119"}

	require.NoError(t, client.Reconfigure(domain.BackendSettings{BaseURL: client.BaseURL(), PostalCodeSegment: "plz"}))
	_, err := client.Search(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "/api/search/plz/42119", gotPath)

	require.NoError(t, client.Reconfigure(domain.BackendSettings{BaseURL: client.BaseURL()}))
	_, err = client.Search(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "/api/search/postal-code/42119", gotPath)
}

func TestClient_Search_Success(t *testing.T) {
	var gotPath, gotRequestID, gotAccept string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotRequestID = r.Header.Get(HeaderRequestID)
		gotAccept = r.Header.Get(HeaderAccept)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"markers": [{"id": 12, "lat": 51.2, "lon": "7.1", "name": "Solingen"}],
			"info": {"title": "Solingen"},
			"count": 1
		}`))
	})

	payload, err := client.Search(context.Background(), driven.SearchRequest{
		ID:    "req-1",
		Type:  domain.SearchTypeCity,
		Value: "Solingen",
	})

	require.NoError(t, err)
	assert.Equal(t, "/api/search/city/Solingen", gotPath)
	assert.Equal(t, "req-1", gotRequestID)
	assert.Equal(t, "application/json", gotAccept)

	markers, ok := payload.Markers.([]any)
	require.True(t, ok)
	require.Len(t, markers, 1)
	first := markers[0].(map[string]any)
	assert.Equal(t, json.Number("12"), first["id"])
	assert.Equal(t, json.Number("51.2"), first["lat"])
	assert.Equal(t, "7.1", first["lon"])
	assert.Equal(t, json.Number("1"), payload.Count)
	assert.NotNil(t, payload.Info)
}

func TestClient_Search_EscapedValueReachesServer(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte(`{"markers": []}`))
	})

	_, err := client.Search(context.Background(), driven.SearchRequest{Type: domain.SearchTypeCity, Value: "a/b c"})

	require.NoError(t, err)
	assert.Equal(t, "/api/search/city/a%2Fb%20c", gotPath)
}

func TestClient_Search_NoRequestIDHeaderWhenEmpty(t *testing.T) {
	var present bool
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, present = r.Header[HeaderRequestID]
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := client.Search(context.Background(), driven.SearchRequest{Type: domain.SearchTypeCity, Value: "x"})

	require.NoError(t, err)
	assert.False(t, present)
}

func TestClient_Search_ErrorStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("db down\n"))
	})

	payload, err := client.Search(context.Background(), driven.SearchRequest{Type: domain.SearchTypePostalCode, Value: "42119"})

	assert.Nil(t, payload)
	require.Error(t, err)
	var backendErr *domain.BackendError
	require.True(t, errors.As(err, &backendErr))
	assert.Equal(t, 500, backendErr.StatusCode)
	assert.Equal(t, "db down", backendErr.Body)
	assert.Equal(t, "backend error 500: db down", err.Error())
}

func TestClient_Search_NotFoundIsBackendError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.NotFound(w, nil)
	})

	_, err := client.Search(context.Background(), driven.SearchRequest{Type: domain.SearchTypeCity, Value: "x"})

	assert.True(t, domain.IsBackendError(err))
}

func TestClient_Search_InvalidJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>oops</html>"))
	})

	_, err := client.Search(context.Background(), driven.SearchRequest{Type: domain.SearchTypeCity, Value: "x"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
	assert.False(t, domain.IsBackendError(err))
}

func TestClient_Search_NonObjectBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[1, 2, 3]`))
	})

	payload, err := client.Search(context.Background(), driven.SearchRequest{Type: domain.SearchTypeCity, Value: "x"})

	require.NoError(t, err)
	assert.Nil(t, payload.Markers)
	assert.Nil(t, payload.Info)
	assert.Nil(t, payload.Count)
}

func TestClient_Search_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	client, err := NewClient(Config{BaseURL: baseURL})
	require.NoError(t, err)

	_, err = client.Search(context.Background(), driven.SearchRequest{Type: domain.SearchTypeCity, Value: "x"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "send request")
}

func TestClient_Search_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(server.Close)
	t.Cleanup(func() { close(release) })

	client, err := NewClient(Config{BaseURL: server.URL, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	_, err = client.Search(context.Background(), driven.SearchRequest{Type: domain.SearchTypeCity, Value: "x"})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_Search_CancelledWhileRateLimited(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	client.limiter.SetRate(0.001)

	// The first request consumes the only token.
	_, err := client.Search(context.Background(), driven.SearchRequest{Type: domain.SearchTypeCity, Value: "x"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = client.Search(ctx, driven.SearchRequest{Type: domain.SearchTypeCity, Value: "x"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")
}

func TestClient_Reconfigure(t *testing.T) {
	var hits []string
	first := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits = append(hits, "first")
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(first.Close)
	second := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits = append(hits, "second")
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(second.Close)

	client, err := NewClient(Config{BaseURL: first.URL})
	require.NoError(t, err)
	req := driven.SearchRequest{Type: domain.SearchTypeCity, Value: "x"}

	_, err = client.Search(context.Background(), req)
	require.NoError(t, err)
	require.NoError(t, client.Reconfigure(domain.BackendSettings{BaseURL: second.URL + "/", RateLimit: 10}))
	_, err = client.Search(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second"}, hits)
	assert.Equal(t, second.URL, client.BaseURL())
	assert.InDelta(t, 10.0, client.limiter.Rate(), 1e-9)
}

func TestClient_Reconfigure_InvalidKeepsPrevious(t *testing.T) {
	client, err := NewClient(Config{BaseURL: "http://127.0.0.1:8000"})
	require.NoError(t, err)

	err = client.Reconfigure(domain.BackendSettings{BaseURL: ""})

	assert.ErrorIs(t, err, ErrMissingBaseURL)
	assert.Equal(t, "http://127.0.0.1:8000", client.BaseURL())
}

func TestConfigFromSettings(t *testing.T) {
	cfg := ConfigFromSettings(domain.BackendSettings{
		BaseURL:           "http://x",
		RateLimit:         2,
		Timeout:           time.Second,
		PostalCodeSegment: "plz",
	})

	assert.Equal(t, Config{BaseURL: "http://x", RateLimit: 2, Timeout: time.Second, PostalCodeSegment: "plz"}, cfg)
}

package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientSendsAPIKeyHeaders(t *testing.T) {
	var gotKey, gotHost string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-RapidAPI-Key")
		gotHost = r.Header.Get("X-RapidAPI-Host")
		w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "the-key", "the-host", 0, 0, time.Second)
	params := url.Values{}
	params.Set("q", "query")

	body, err := client.Get(context.Background(), "/search", params)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[]}`, string(body))
	assert.Equal(t, "the-key", gotKey)
	assert.Equal(t, "the-host", gotHost)
}

func TestClientMapsTooManyRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key", "host", 0, 0, time.Second)
	_, err := client.Get(context.Background(), "/search", url.Values{})

	require.Error(t, err)
	assert.True(t, IsRateLimited(err))

	var rle *RateLimitedError
	require.True(t, errors.As(err, &rle))
	assert.Equal(t, 30*time.Second, rle.RetryAfter)
}

func TestClientMapsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key", "host", 0, 0, time.Second)
	_, err := client.Get(context.Background(), "/search", url.Values{})

	require.Error(t, err)
	assert.False(t, IsRateLimited(err))

	var rfe *RequestFailedError
	require.True(t, errors.As(err, &rfe))
	assert.Equal(t, http.StatusBadGateway, rfe.Status)
}

func TestClientRespectsContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key", "host", 0, 0, 5*time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Get(ctx, "/search", url.Values{})
	require.Error(t, err)
}

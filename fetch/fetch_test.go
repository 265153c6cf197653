package fetch_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/matthewmueller/logs"
	"github.com/matthewmueller/webfetch"
	"github.com/matthewmueller/webfetch/fetch"
)

func TestFetchHTTP(t *testing.T) {
	is := is.New(t)
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := fetch.New(logs.Default(), fetch.WithUserAgent("tester/1.0"), fetch.WithoutBrowser())
	defer client.Close()

	payload, err := client.Fetch(context.Background(), server.URL, webfetch.FetchOptions{})
	is.NoErr(err)
	is.Equal(payload.Text, `{"ok":true}`)
	is.Equal(payload.MediaType, "application/json; charset=utf-8")
	is.Equal(payload.Headers["Content-Type"], "application/json; charset=utf-8")
	is.Equal(gotUA, "tester/1.0")
}

func TestFetchErrorStatus(t *testing.T) {
	is := is.New(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := fetch.New(logs.Default(), fetch.WithoutBrowser())
	defer client.Close()

	_, err := client.Fetch(context.Background(), server.URL+"/missing", webfetch.FetchOptions{})
	is.True(err != nil)
	is.True(strings.Contains(err.Error(), "status 404"))
}

func TestFetchBodyLimit(t *testing.T) {
	is := is.New(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("x", 100)))
	}))
	defer server.Close()

	client := fetch.New(logs.Default(), fetch.WithMaxBody(16), fetch.WithoutBrowser())
	defer client.Close()

	payload, err := client.Fetch(context.Background(), server.URL, webfetch.FetchOptions{})
	is.NoErr(err)
	is.Equal(len(payload.Text), 16)
}

func TestFetchRejectsScheme(t *testing.T) {
	is := is.New(t)
	client := fetch.New(logs.Default(), fetch.WithoutBrowser())
	defer client.Close()

	_, err := client.Fetch(context.Background(), "ftp://example.com/file", webfetch.FetchOptions{})
	is.True(err != nil)
	is.True(strings.Contains(err.Error(), "unsupported scheme"))
}

func TestFetchCacheTTL(t *testing.T) {
	is := is.New(t)
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte("payload"))
	}))
	defer server.Close()

	client := fetch.New(logs.Default(), fetch.WithCacheTTL(time.Minute), fetch.WithoutBrowser())
	defer client.Close()

	for i := 0; i < 3; i++ {
		payload, err := client.Fetch(context.Background(), server.URL, webfetch.FetchOptions{})
		is.NoErr(err)
		is.Equal(payload.Text, "payload")
	}
	is.Equal(hits, 1)
}

// Rendering with the browser disabled falls back to plain HTTP instead of
// failing.
func TestFetchRenderFallback(t *testing.T) {
	is := is.New(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body>static</body></html>"))
	}))
	defer server.Close()

	client := fetch.New(logs.Default(), fetch.WithoutBrowser())
	defer client.Close()

	payload, err := client.Fetch(context.Background(), server.URL, webfetch.FetchOptions{Render: true})
	is.NoErr(err)
	is.True(strings.Contains(payload.Text, "static"))
}

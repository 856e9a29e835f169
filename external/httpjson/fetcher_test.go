package httpjson

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/cbb-tracker/internal/usecase"
)

func TestFetcher_GetObjectSendsClientIdentifier(t *testing.T) {
	t.Parallel()

	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"team":{"id":"150"}}`))
	}))
	defer srv.Close()

	f := NewFetcher(Config{Provider: "espn", HTTPClient: srv.Client()})
	doc, raw, err := f.GetObject(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("get object: %v", err)
	}
	if gotUA != DefaultUserAgent {
		t.Fatalf("unexpected user agent: %q", gotUA)
	}
	if len(raw) == 0 {
		t.Fatalf("expected raw body")
	}
	teamDoc, ok := doc["team"].(map[string]any)
	if !ok || teamDoc["id"] != "150" {
		t.Fatalf("unexpected document: %+v", doc)
	}
}

func TestFetcher_FailuresAreRetrievalErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		status     int
		body       string
		wantStatus int
	}{
		{name: "non-2xx", status: http.StatusServiceUnavailable, body: `{"error":"busy"}`, wantStatus: http.StatusServiceUnavailable},
		{name: "html body", status: http.StatusOK, body: "<html>blocked</html>", wantStatus: http.StatusOK},
		{name: "invalid json", status: http.StatusOK, body: `{"events": [`},
		{name: "empty body", status: http.StatusOK, body: "", wantStatus: http.StatusOK},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			calls := 0
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls++
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			f := NewFetcher(Config{Provider: "espn", HTTPClient: srv.Client()})
			_, _, err := f.Get(context.Background(), srv.URL)
			if !errors.Is(err, usecase.ErrRetrieval) {
				t.Fatalf("expected retrieval error, got %v", err)
			}
			var retrievalErr *usecase.RetrievalError
			if !errors.As(err, &retrievalErr) {
				t.Fatalf("expected *RetrievalError, got %T", err)
			}
			if tc.wantStatus != 0 && retrievalErr.StatusCode != tc.wantStatus {
				t.Fatalf("unexpected status: got=%d want=%d", retrievalErr.StatusCode, tc.wantStatus)
			}
			if calls != 1 {
				t.Fatalf("expected exactly one attempt, got %d", calls)
			}
		})
	}
}

func TestFetcher_TransportErrorIsRetrievalError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	f := NewFetcher(Config{Provider: "espn"})
	if _, _, err := f.Get(context.Background(), url); !errors.Is(err, usecase.ErrRetrieval) {
		t.Fatalf("expected retrieval error, got %v", err)
	}
}

func TestFetcher_GetObjectRejectsArrays(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"slug":"duke"}]`))
	}))
	defer srv.Close()

	f := NewFetcher(Config{Provider: "ncaa", HTTPClient: srv.Client()})
	if _, _, err := f.GetObject(context.Background(), srv.URL); !errors.Is(err, usecase.ErrRetrieval) {
		t.Fatalf("expected retrieval error, got %v", err)
	}
	doc, _, err := f.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if _, ok := doc.([]any); !ok {
		t.Fatalf("expected array document, got %T", doc)
	}
}

func TestFetcher_LeavesCallerClientUntouched(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := srv.Client()
	transport := client.Transport
	f := NewFetcher(Config{Provider: "espn", HTTPClient: client, Timeout: 3 * time.Second})

	if client.Timeout != 0 {
		t.Fatalf("caller client timeout changed to %s", client.Timeout)
	}
	if client.Transport != transport {
		t.Fatalf("caller client transport was replaced")
	}
	if f.httpClient == client {
		t.Fatalf("expected fetcher to hold its own client copy")
	}
	if f.httpClient.Timeout != 3*time.Second {
		t.Fatalf("unexpected fetcher timeout: %s", f.httpClient.Timeout)
	}
	if _, _, err := f.GetObject(context.Background(), srv.URL); err != nil {
		t.Fatalf("get object through wrapped transport: %v", err)
	}
}

func TestFetcher_OversizedBodyIsRetrievalError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"events":[` + strings.Repeat(`{"id":"401"},`, 20) + `{"id":"402"}]}`))
	}))
	defer srv.Close()

	f := NewFetcher(Config{Provider: "espn", HTTPClient: srv.Client(), MaxBodyBytes: 64})
	_, _, err := f.Get(context.Background(), srv.URL)
	if !errors.Is(err, usecase.ErrRetrieval) {
		t.Fatalf("expected retrieval error, got %v", err)
	}
	if !errors.Is(err, errBodyTooLarge) {
		t.Fatalf("expected body-too-large cause, got %v", err)
	}
	var retrievalErr *usecase.RetrievalError
	if !errors.As(err, &retrievalErr) || retrievalErr.StatusCode != http.StatusOK {
		t.Fatalf("unexpected retrieval error: %#v", err)
	}

	exact := NewFetcher(Config{Provider: "espn", HTTPClient: srv.Client(), MaxBodyBytes: 1 << 10})
	if _, _, err := exact.Get(context.Background(), srv.URL); err != nil {
		t.Fatalf("body under the limit should decode: %v", err)
	}
}

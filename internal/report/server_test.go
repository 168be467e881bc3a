package report

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"despesabot/internal/core"
	"despesabot/internal/records/memory"
)

func newTestServer(t *testing.T, seed ...core.ExpenseRecord) *Server {
	t.Helper()
	store := memory.New()
	for _, r := range seed {
		if err := store.Append(context.Background(), r); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	s := NewServer(":0", store, time.Minute)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = s.Shutdown(ctx)
	})
	return s
}

func TestChartEndpointRendersPNG(t *testing.T) {
	s := newTestServer(t, rec("mercado", 5000), rec("uber", 2350))

	rr := httptest.NewRecorder()
	s.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/grafico", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.HasPrefix(rr.Body.String(), "\x89PNG") {
		t.Fatal("body is not a PNG")
	}
}

func TestChartEndpointEmptyStore(t *testing.T) {
	s := newTestServer(t)

	rr := httptest.NewRecorder()
	s.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/grafico", nil))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Nenhuma despesa encontrada!") {
		t.Fatalf("body = %q", rr.Body.String())
	}
}

func TestChartEndpointRejectsNonGET(t *testing.T) {
	s := newTestServer(t, rec("mercado", 5000))

	rr := httptest.NewRecorder()
	s.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/grafico", nil))

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rr.Code)
	}
}

type failingScanner struct{}

func (failingScanner) Scan(context.Context) ([]core.ExpenseRecord, error) {
	return nil, errors.New("boom")
}

func TestChartEndpointStoreFault(t *testing.T) {
	s := NewServer(":0", failingScanner{}, time.Minute)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = s.Shutdown(ctx)
	})

	rr := httptest.NewRecorder()
	s.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/grafico", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		rr := httptest.NewRecorder()
		s.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusOK {
			t.Errorf("%s status = %d, want 200", path, rr.Code)
		}
	}
}

func TestChartIsCachedBetweenRequests(t *testing.T) {
	store := memory.New()
	_ = store.Append(context.Background(), rec("mercado", 5000))
	s := NewServer(":0", store, time.Minute)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = s.Shutdown(ctx)
	})

	first := httptest.NewRecorder()
	s.Handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/grafico", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("first status = %d", first.Code)
	}

	// A record added after the first render stays invisible until the
	// cache entry expires.
	_ = store.Append(context.Background(), rec("uber", 2350))

	second := httptest.NewRecorder()
	s.Handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/grafico", nil))
	if second.Code != http.StatusOK {
		t.Fatalf("second status = %d", second.Code)
	}
	if first.Body.String() != second.Body.String() {
		t.Fatal("cached render should be served unchanged within the TTL")
	}
}

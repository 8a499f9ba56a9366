package rcsb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestValidateID(t *testing.T) {
	for _, good := range []string{"7R6R", "1abc", "2XYZ"} {
		if err := ValidateID(good); err != nil {
			t.Errorf("ValidateID(%q): %v", good, err)
		}
	}
	for _, bad := range []string{"", "7R6", "7R6R2", "ABCD", "7r!r", "../x"} {
		if err := ValidateID(bad); err == nil {
			t.Errorf("ValidateID(%q): expected error", bad)
		}
	}
}

func TestFetchCaches(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/7R6R.cif" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("data_7R6R\n_entry.id 7R6R\n"))
	}))
	defer srv.Close()

	c := New(t.TempDir())
	c.BaseURL = srv.URL

	ctx := context.Background()

	first, err := c.Fetch(ctx, "7r6r")
	if err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	second, err := c.Fetch(ctx, "7R6R")
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}

	if string(first) != string(second) {
		t.Error("cached content differs from downloaded content")
	}
	if hits.Load() != 1 {
		t.Errorf("expected one upstream hit, got %d", hits.Load())
	}
}

func TestFetchExpiredCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte("data_1AAA\n"))
	}))
	defer srv.Close()

	c := New(t.TempDir())
	c.BaseURL = srv.URL
	c.CacheTTL = time.Nanosecond

	ctx := context.Background()
	if _, err := c.Fetch(ctx, "1AAA"); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	time.Sleep(time.Millisecond)
	if _, err := c.Fetch(ctx, "1AAA"); err != nil {
		t.Fatalf("second fetch: %v", err)
	}

	if hits.Load() != 2 {
		t.Errorf("expected two upstream hits with expired cache, got %d", hits.Load())
	}
}

func TestFetchNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := New(t.TempDir())
	c.BaseURL = srv.URL

	if _, err := c.Fetch(context.Background(), "9ZZZ"); err == nil {
		t.Fatal("expected not-found error")
	}
}

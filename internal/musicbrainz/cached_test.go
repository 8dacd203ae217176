package musicbrainz

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cesargomez89/albumdays/internal/domain"
)

func TestCachedLookup_VariantFallback(t *testing.T) {
	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		query := r.URL.Query().Get("query")
		if strings.Contains(query, `release:"Pinkerton"`) {
			fmt.Fprint(w, `{"release-groups": [{"id": "rg-1", "first-release-date": "1996-09-24"}]}`)
			return
		}
		fmt.Fprint(w, `{"release-groups": []}`)
	}))
	defer srv.Close()

	lookup := NewCachedLookup(newTestClient(srv), NewMemoryCache(), 0, nil)

	res, err := lookup.LookupRelease(context.Background(), "Pinkerton - Deluxe Edition", "Weezer")
	if err != nil {
		t.Fatalf("LookupRelease failed: %v", err)
	}
	if res.ID != "rg-1" {
		t.Errorf("ID = %q, want rg-1", res.ID)
	}
	if res.Date == nil || *res.Date != domain.NewDate(1996, time.September, 24) {
		t.Errorf("Date = %v, want 1996-09-24", res.Date)
	}
	// The qualified title misses, the stripped variant hits.
	if got := requests.Load(); got != 2 {
		t.Errorf("requests = %d, want 2", got)
	}

	// The second call is answered from the cache.
	if _, err := lookup.LookupRelease(context.Background(), "Pinkerton - Deluxe Edition", "Weezer"); err != nil {
		t.Fatalf("cached LookupRelease failed: %v", err)
	}
	if got := requests.Load(); got != 2 {
		t.Errorf("requests after cache hit = %d, want 2", got)
	}
}

func TestCachedLookup_SharesVariantCacheAcrossAlbums(t *testing.T) {
	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if strings.Contains(r.URL.Query().Get("query"), "Special Edition") {
			fmt.Fprint(w, `{"release-groups": []}`)
			return
		}
		fmt.Fprint(w, `{"release-groups": [{"id": "rg-2", "first-release-date": "2007"}]}`)
	}))
	defer srv.Close()

	lookup := NewCachedLookup(newTestClient(srv), NewMemoryCache(), 0, nil)

	if _, err := lookup.LookupRelease(context.Background(), "In Rainbows", "Radiohead"); err != nil {
		t.Fatalf("LookupRelease failed: %v", err)
	}
	// A qualified spelling of the same album reuses the stripped variant's entry.
	res, err := lookup.LookupRelease(context.Background(), "In Rainbows (Special Edition)", "Radiohead")
	if err != nil {
		t.Fatalf("LookupRelease failed: %v", err)
	}
	if res.ID != "rg-2" {
		t.Errorf("ID = %q, want rg-2", res.ID)
	}
	// One query for the plain title, one for the qualified spelling.
	if got := requests.Load(); got != 2 {
		t.Errorf("requests = %d, want 2", got)
	}
}

func TestCachedLookup_CachesNegativeResults(t *testing.T) {
	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		fmt.Fprint(w, `{"release-groups": []}`)
	}))
	defer srv.Close()

	lookup := NewCachedLookup(newTestClient(srv), NewMemoryCache(), 0, nil)

	for i := 0; i < 2; i++ {
		res, err := lookup.LookupRelease(context.Background(), "Unknown Album", "Nobody")
		if err != nil {
			t.Fatalf("LookupRelease failed: %v", err)
		}
		if res != (Result{}) {
			t.Errorf("result = %+v, want empty", res)
		}
	}
	if got := requests.Load(); got != 1 {
		t.Errorf("requests = %d, want 1", got)
	}
}

func TestCachedLookup_ErrorLeavesAlbumUncached(t *testing.T) {
	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	lookup := NewCachedLookup(newTestClient(srv), NewMemoryCache(), 0, nil)

	for i := 0; i < 2; i++ {
		if _, err := lookup.LookupRelease(context.Background(), "Any", "Any"); err == nil {
			t.Fatal("expected error from failing backend")
		}
	}
	// Failures are not cached, each call reaches the backend again.
	if got := requests.Load(); got != 2 {
		t.Errorf("requests = %d, want 2", got)
	}
}

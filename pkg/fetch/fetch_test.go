package fetch_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stdevel/downspeeds/pkg/fetch"
)

func TestRHEL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got, want := r.URL.Query().Get("rows"), "5000"; got != want {
			t.Errorf("rows = %v, want %v", got, want)
		}
		if got := r.URL.Query()["fq"]; len(got) != 2 {
			t.Errorf("fq = %v, want 2 filter queries", got)
		}
		fmt.Fprint(w, `{"response": {"numFound": 2, "docs": [
			{"id": "RHSA-2023:1234", "portal_publication_date": 1699920000000, "portal_synopsis": "Important: kernel security update"},
			{"id": "RHSA-2023:5678", "portal_publication_date": 1700438400000, "portal_synopsis": "Moderate: curl security update"}
		]}}`)
	}))
	defer srv.Close()

	got, err := fetch.RHEL(context.Background(), 9, fetch.WithBaseURL(srv.URL), fetch.WithNoProgress(true))
	if err != nil {
		t.Fatalf("RHEL() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("RHEL() returned %d errata, want 2", len(got))
	}
	if got[0].ID != "RHSA-2023:1234" || got[1].ID != "RHSA-2023:5678" {
		t.Errorf("RHEL() = %v, want input order preserved", got)
	}
}

func TestRocky(t *testing.T) {
	const total = 150

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got, want := r.URL.Query().Get("filters.product"), "Rocky Linux 9"; got != want {
			t.Errorf("filters.product = %v, want %v", got, want)
		}

		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil {
			t.Errorf("page = %v: %s", r.URL.Query().Get("page"), err)
		}
		limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
		if err != nil {
			t.Errorf("limit = %v: %s", r.URL.Query().Get("limit"), err)
		}

		fmt.Fprintf(w, `{"total": %d, "advisories": [`, total)
		for i := page * limit; i < total && i < (page+1)*limit; i++ {
			if i > page*limit {
				fmt.Fprint(w, ",")
			}
			fmt.Fprintf(w, `{"name": "RLSA-2023:%04d", "publishedAt": 1700179200000, "synopsis": "update"}`, i)
		}
		fmt.Fprint(w, `]}`)
	}))
	defer srv.Close()

	got, err := fetch.Rocky(context.Background(), 9, fetch.WithBaseURL(srv.URL), fetch.WithNoProgress(true))
	if err != nil {
		t.Fatalf("Rocky() error = %v", err)
	}
	if len(got) != total {
		t.Fatalf("Rocky() returned %d errata, want %d", len(got), total)
	}
	if got[0].Name != "RLSA-2023:0000" || got[total-1].Name != fmt.Sprintf("RLSA-2023:%04d", total-1) {
		t.Errorf("Rocky() pages out of order: first %s, last %s", got[0].Name, got[total-1].Name)
	}
}

func TestAlma(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got, want := r.URL.Path, "/9/errata.json"; got != want {
			t.Errorf("path = %v, want %v", got, want)
		}
		fmt.Fprint(w, `[
			{"updateinfo_id": "ALSA-2023:1234", "issued_date": {"$date": "2023-11-14T00:00:00Z"}, "title": "Important: kernel security update"}
		]`)
	}))
	defer srv.Close()

	got, err := fetch.Alma(context.Background(), 9, fetch.WithBaseURL(srv.URL), fetch.WithNoProgress(true))
	if err != nil {
		t.Fatalf("Alma() error = %v", err)
	}
	if len(got) != 1 || got[0].UpdateinfoID != "ALSA-2023:1234" {
		t.Errorf("Alma() = %v, want ALSA-2023:1234", got)
	}
}

func TestRetry(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	if _, err := fetch.Alma(context.Background(), 9, fetch.WithBaseURL(srv.URL), fetch.WithNoProgress(true)); err != nil {
		t.Fatalf("Alma() error = %v", err)
	}
	if got := attempts.Load(); got != 3 {
		t.Errorf("server hit %d times, want 3", got)
	}
}

func TestRetryGivesUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := fetch.Alma(context.Background(), 9, fetch.WithBaseURL(srv.URL), fetch.WithNoProgress(true), fetch.WithMaxElapsedTime(time.Millisecond)); err == nil {
		t.Errorf("Alma() error = nil, want retry give-up error")
	}
}

func TestMalformedResponseIsPermanent(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts.Add(1)
		fmt.Fprint(w, `<html>maintenance</html>`)
	}))
	defer srv.Close()

	if _, err := fetch.Alma(context.Background(), 9, fetch.WithBaseURL(srv.URL), fetch.WithNoProgress(true)); err == nil {
		t.Fatalf("Alma() error = nil, want decode error")
	}
	if got := attempts.Load(); got != 1 {
		t.Errorf("server hit %d times, want 1 (no retry on malformed body)", got)
	}
}

package quotes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHistoryDailyCloses(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		if r.URL.Path != "/stock/candle" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		// out of order on purpose; the client must sort ascending
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"s":"ok","t":[1700265600,1700179200,1700092800],"c":[103,102,101]}`))
	}))
	defer srv.Close()

	h := NewHistory(srv.URL, "tok", 5*time.Second)
	from := time.Unix(1700000000, 0)
	to := time.Unix(1700300000, 0)
	series, err := h.DailyCloses(context.Background(), "AAPL", from, to)
	if err != nil {
		t.Fatalf("DailyCloses: %v", err)
	}
	if len(series) != 3 {
		t.Fatalf("expected 3 points, got %d", len(series))
	}
	for i := 1; i < len(series); i++ {
		if series[i].TS <= series[i-1].TS {
			t.Fatalf("series not ascending at %d: %d <= %d", i, series[i].TS, series[i-1].TS)
		}
	}
	if series[0].Close != 101 || series[2].Close != 103 {
		t.Fatalf("closes misaligned after sort: %v", series)
	}

	q, err := http.NewRequest(http.MethodGet, "http://x/?"+gotQuery, nil)
	if err != nil {
		t.Fatalf("parse query: %v", err)
	}
	v := q.URL.Query()
	if v.Get("symbol") != "AAPL" || v.Get("resolution") != "D" || v.Get("token") != "tok" {
		t.Fatalf("unexpected query params: %s", gotQuery)
	}
	if v.Get("from") != "1700000000" || v.Get("to") != "1700300000" {
		t.Fatalf("unexpected range params: %s", gotQuery)
	}
}

func TestHistoryDailyClosesNoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"s":"no_data"}`))
	}))
	defer srv.Close()

	h := NewHistory(srv.URL, "", 0)
	series, err := h.DailyCloses(context.Background(), "ZZZ", time.Unix(0, 0), time.Unix(1, 0))
	if err != nil {
		t.Fatalf("DailyCloses: %v", err)
	}
	if series != nil {
		t.Fatalf("expected nil series for no_data, got %v", series)
	}
}

func TestHistoryDailyClosesBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	h := NewHistory(srv.URL, "", 0)
	if _, err := h.DailyCloses(context.Background(), "AAPL", time.Unix(0, 0), time.Unix(1, 0)); err == nil {
		t.Fatal("expected error on HTTP 429")
	}
}

func TestHistoryDailyClosesMisalignedColumns(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"s":"ok","t":[1,2],"c":[100]}`))
	}))
	defer srv.Close()

	h := NewHistory(srv.URL, "", 0)
	if _, err := h.DailyCloses(context.Background(), "AAPL", time.Unix(0, 0), time.Unix(1, 0)); err == nil {
		t.Fatal("expected error on column length mismatch")
	}
}

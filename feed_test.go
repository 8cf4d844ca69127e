package tally

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newTestQuoter bypasses the disk cache so tests always hit the server.
func newTestQuoter(t *testing.T, client *http.Client) *Quoter {
	t.Helper()
	return &Quoter{client: client, log: slog.New(slog.DiscardHandler)}
}

func TestQuoterFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/acme":
			fmt.Fprint(w, `{"data":{"price":42.5}}`)
		case "/zeta":
			fmt.Fprint(w, `{"last":"1 234,56"}`)
		case "/list":
			fmt.Fprint(w, `{"prices":[10,11,12]}`)
		case "/pence":
			fmt.Fprint(w, `{"cents":4250}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()
	q := newTestQuoter(t, srv.Client())

	testCases := []struct {
		name string
		feed FeedConfig
		want float64
	}{
		{"number", FeedConfig{Symbol: "ACME", URL: srv.URL + "/acme", Path: "$.data.price"}, 42.5},
		{"localized string", FeedConfig{Symbol: "ZETA", URL: srv.URL + "/zeta", Path: "$.last"}, 1234.56},
		{"last of a list", FeedConfig{Symbol: "LIST", URL: srv.URL + "/list", Path: "$.prices[-1:]"}, 12},
		{"minor units scaled down", FeedConfig{Symbol: "PENC", URL: srv.URL + "/pence", Path: "$.cents", Scale: 100}, 42.5},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			quotes, err := q.Fetch(context.Background(), []FeedConfig{tc.feed})
			if err != nil {
				t.Fatalf("Fetch() returned an unexpected error: %v", err)
			}
			if got := quotes[tc.feed.Symbol]; got != tc.want {
				t.Errorf("quote = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestQuoterFetchPartialFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/good" {
			fmt.Fprint(w, `{"price":7}`)
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()
	q := newTestQuoter(t, srv.Client())

	feeds := []FeedConfig{
		{Symbol: "GOOD", URL: srv.URL + "/good", Path: "$.price"},
		{Symbol: "GONE", URL: srv.URL + "/gone", Path: "$.price"},
	}
	quotes, err := q.Fetch(context.Background(), feeds)
	if err == nil {
		t.Fatal("Fetch() expected an error for the missing feed")
	}
	if len(quotes) != 1 || quotes["GOOD"] != 7 {
		t.Errorf("quotes = %v, want the surviving feed only", quotes)
	}
}

func TestQuoterFetchBadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"price":"not a number"}`)
	}))
	defer srv.Close()
	q := newTestQuoter(t, srv.Client())

	_, err := q.Fetch(context.Background(), []FeedConfig{{Symbol: "BAD", URL: srv.URL, Path: "$.price"}})
	if err == nil {
		t.Fatal("Fetch() expected an error for a non-numeric price")
	}
}

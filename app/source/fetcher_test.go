package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestFetcher(srv *httptest.Server, token string) *Fetcher {
	return &Fetcher{
		client:    srv.Client(),
		baseURL:   srv.URL,
		userAgent: "MeetingBank ETL/1.0",
		token:     token,
	}
}

func TestFetcherRun_SendsAuthorizationHeader(t *testing.T) {
	var gotAuth, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, `{"rows":[]}`)
	}))
	defer srv.Close()

	if _, err := newTestFetcher(srv, "hf_secret").Run(context.Background(), 10, nil); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if gotAuth != "Bearer hf_secret" {
		t.Errorf("Expected bearer token on dataset requests, got %q", gotAuth)
	}
	if gotUA != "MeetingBank ETL/1.0" {
		t.Errorf("Expected configured user agent, got %q", gotUA)
	}
}

func TestFetcherRun_NoTokenOmitsAuthorization(t *testing.T) {
	var gotAuth string
	sawAuth := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		sawAuth = true
		fmt.Fprint(w, `{"rows":[]}`)
	}))
	defer srv.Close()

	if _, err := newTestFetcher(srv, "").Run(context.Background(), 10, nil); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !sawAuth {
		t.Fatal("Expected at least one dataset request")
	}
	if gotAuth != "" {
		t.Errorf("Expected no Authorization header without a token, got %q", gotAuth)
	}
}

func TestFetcherRun_FiltersTargetCities(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("offset") != "0" {
			fmt.Fprint(w, `{"rows":[]}`)
			return
		}
		fmt.Fprint(w, `{"rows":[
			{"row":{"id":1,"uid":"SeattleCityCouncil_06152023_1","transcript":"t","summary":"s"}},
			{"row":{"id":2,"uid":"ChicagoCityCouncil_06152023_1","transcript":"t","summary":"s"}}
		]}`)
	}))
	defer srv.Close()

	result, err := newTestFetcher(srv, "").Run(context.Background(), 10, []string{"Seattle"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(result.Records) != 1 {
		t.Fatalf("Expected 1 record after city filter, got %d", len(result.Records))
	}
	if result.Records[0].City != "Seattle" {
		t.Errorf("Expected Seattle record, got %q", result.Records[0].City)
	}
	if result.Records[0].Date != "2023-06-15" {
		t.Errorf("Expected date derived from uid, got %q", result.Records[0].Date)
	}
	if result.FilteredCount != 1 {
		t.Errorf("Expected 1 filtered record, got %d", result.FilteredCount)
	}
}

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/group2/meetingbank-etl/app/meeting"
)

const (
	defaultBaseURL = "https://datasets-server.huggingface.co"
	dataset        = "huuuyeah/MeetingBank"

	maxRetries = 3
	retryDelay = 5 * time.Second
	pageSize   = 100
)

// Fetcher retrieves meeting rows from the HuggingFace datasets-server API.
// It is a thin I/O wrapper: bounded retry with a fixed delay, no retry
// decisions belong to the pipeline core.
type Fetcher struct {
	client    *http.Client
	baseURL   string
	userAgent string
	token     string
}

func NewFetcher(userAgent, token string) *Fetcher {
	return &Fetcher{
		client:    &http.Client{Timeout: 30 * time.Second},
		baseURL:   defaultBaseURL,
		userAgent: userAgent,
		token:     token,
	}
}

// FetchResult carries the fetched batch plus extraction bookkeeping for the
// orchestrator: how long the fetch took and how many rows the city filter
// dropped.
type FetchResult struct {
	Records       []meeting.RawRecord
	FilteredCount int
	FetchDuration time.Duration
}

// Run fetches up to subsetSize rows and keeps only meetings from the target
// cities. An empty target list keeps everything.
func (f *Fetcher) Run(ctx context.Context, subsetSize int, targetCities []string) (*FetchResult, error) {
	started := time.Now()

	targets := make(map[string]bool, len(targetCities))
	for _, city := range targetCities {
		targets[city] = true
	}

	var records []meeting.RawRecord
	filtered := 0

	for offset := 0; len(records) < subsetSize; offset += pageSize {
		page, err := f.fetchPage(ctx, offset, pageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch dataset rows: %w", err)
		}
		if len(page.Rows) == 0 {
			break
		}

		for _, row := range page.Rows {
			if len(records) >= subsetSize {
				break
			}
			record := rowToRecord(row.Row)
			if len(targets) > 0 && !targets[record.City] {
				filtered++
				continue
			}
			records = append(records, record)
		}
	}

	slog.Info("Fetched meetings from dataset API",
		"count", len(records), "filtered", filtered, "duration", time.Since(started))

	return &FetchResult{
		Records:       records,
		FilteredCount: filtered,
		FetchDuration: time.Since(started),
	}, nil
}

type rowsResponse struct {
	Rows []struct {
		Row datasetRow `json:"row"`
	} `json:"rows"`
}

type datasetRow struct {
	ID         json.Number `json:"id"`
	UID        string      `json:"uid"`
	Transcript string      `json:"transcript"`
	Summary    string      `json:"summary"`
	URL        string      `json:"url"`
	VideoURL   string      `json:"video_url"`
}

func (f *Fetcher) fetchPage(ctx context.Context, offset, length int) (*rowsResponse, error) {
	endpoint := fmt.Sprintf("%s/rows?dataset=%s&config=default&split=train&offset=%d&length=%d",
		f.baseURL, url.QueryEscape(dataset), offset, length)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		page, err := f.doRequest(ctx, endpoint)
		if err == nil {
			return page, nil
		}
		lastErr = err

		slog.Warn("Dataset API request failed", "attempt", attempt, "error", err)
		if attempt < maxRetries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryDelay):
			}
		}
	}

	return nil, fmt.Errorf("after %d attempts: %w", maxRetries, lastErr)
}

func (f *Fetcher) doRequest(ctx context.Context, endpoint string) (*rowsResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	if f.token != "" {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected HTTP status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var page rowsResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &page, nil
}

// rowToRecord maps one dataset row to a raw meeting record. City and date are
// derived from the row's uid, which encodes them as
// "<City>CityCouncil_<MMDDYYYY>...".
func rowToRecord(row datasetRow) meeting.RawRecord {
	city, date := parseUID(row.UID)

	return meeting.RawRecord{
		MeetingID:  row.ID.String(),
		City:       city,
		Date:       date,
		Title:      row.Summary,
		Transcript: row.Transcript,
		Summary:    row.Summary,
		Metadata: &meeting.Metadata{
			URL:      row.URL,
			VideoURL: row.VideoURL,
			Source:   "HuggingFace",
		},
	}
}

// parseUID extracts the city name and an ISO date from a dataset uid. A uid
// that does not carry a digit-encoded date yields an empty date string,
// which validation will reject downstream.
func parseUID(uid string) (city, date string) {
	parts := strings.Split(uid, "_")
	if len(parts) > 0 {
		city = strings.ReplaceAll(parts[0], "CityCouncil", "")
	}

	if len(parts) > 1 && len(parts[1]) >= 8 && isDigits(parts[1][:8]) {
		mmddyyyy := parts[1][:8]
		date = fmt.Sprintf("%s-%s-%s", mmddyyyy[4:8], mmddyyyy[0:2], mmddyyyy[2:4])
	}

	return city, date
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

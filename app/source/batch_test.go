package source

import (
	"path/filepath"
	"testing"

	"github.com/group2/meetingbank-etl/app/meeting"
)

func TestRawBatchRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw", "meetings.json")

	records := []meeting.RawRecord{
		{
			MeetingID:  "M1",
			City:       "Seattle",
			Date:       "2023-06-15",
			Transcript: "a transcript that is long enough",
			Summary:    "a summary that is long enough",
			Agenda:     []any{"Budget review", map[string]any{"topic": "Zoning"}},
		},
		{MeetingID: "M2", City: "Boston"},
	}

	if err := WriteRawBatch(path, records); err != nil {
		t.Fatalf("WriteRawBatch failed: %v", err)
	}

	got, err := ReadRawBatch(path)
	if err != nil {
		t.Fatalf("ReadRawBatch failed: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(got))
	}
	if got[0].MeetingID != "M1" || got[0].City != "Seattle" {
		t.Errorf("Unexpected first record: %+v", got[0])
	}
	// Structured agenda entries survive the round trip untouched
	if len(got[0].Agenda) != 2 {
		t.Fatalf("Expected agenda preserved, got %v", got[0].Agenda)
	}
	if _, ok := got[0].Agenda[1].(map[string]any); !ok {
		t.Errorf("Structured agenda entry should decode as a map, got %T", got[0].Agenda[1])
	}
}

func TestReadRawBatch_MissingFile(t *testing.T) {
	_, err := ReadRawBatch(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestParseUID(t *testing.T) {
	city, date := parseUID("DenverCityCouncil_05012017_something")
	if city != "Denver" {
		t.Errorf("Expected city 'Denver', got %q", city)
	}
	if date != "2017-05-01" {
		t.Errorf("Expected date '2017-05-01', got %q", date)
	}

	// No digit-encoded date part
	city, date = parseUID("Seattle")
	if city != "Seattle" {
		t.Errorf("Expected city 'Seattle', got %q", city)
	}
	if date != "" {
		t.Errorf("Expected empty date, got %q", date)
	}

	city, date = parseUID("")
	if city != "" || date != "" {
		t.Errorf("Expected empty results for empty uid, got %q, %q", city, date)
	}
}

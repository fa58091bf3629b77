package docstore

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/group2/meetingbank-etl/app/meeting"
)

type fakeStore struct {
	calls     []string
	dropErr   map[string]error
	insertRes map[string]*mongo.InsertManyResult
	insertErr map[string]error
	indexErr  map[string]error
}

func (f *fakeStore) Drop(ctx context.Context, collection string) error {
	f.calls = append(f.calls, "drop "+collection)
	return f.dropErr[collection]
}

func (f *fakeStore) InsertMany(ctx context.Context, collection string, docs []any, ordered bool) (*mongo.InsertManyResult, error) {
	call := "insert " + collection
	if ordered {
		call = "insert-ordered " + collection
	}
	f.calls = append(f.calls, call)

	if err := f.insertErr[collection]; err != nil {
		return f.insertRes[collection], err
	}

	return &mongo.InsertManyResult{InsertedIDs: make([]any, len(docs))}, nil
}

func (f *fakeStore) CreateIndexes(ctx context.Context, collection string, models []mongo.IndexModel) error {
	f.calls = append(f.calls, "index "+collection)
	return f.indexErr[collection]
}

func newTestLoader(store *fakeStore) *Loader {
	return &Loader{store: store, now: func() time.Time {
		return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	}}
}

func sampleDocument() meeting.Document {
	return meeting.Document{
		MeetingID:   "M1",
		CityName:    "Seattle",
		MeetingDate: "2023-06-15",
		Transcript: meeting.TranscriptContent{
			FullText:  "one two three four five",
			WordCount: 5,
		},
		Summary: meeting.SummaryContent{
			Full:      "a short summary of the meeting",
			Short:     "a short summary of the meeting",
			WordCount: 6,
		},
		Agenda: []any{"Budget review"},
	}
}

func TestBuildTranscriptDocs(t *testing.T) {
	indexedAt := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	docs := buildTranscriptDocs([]meeting.Document{sampleDocument()}, indexedAt)

	if len(docs) != 1 {
		t.Fatalf("Expected 1 transcript doc, got %d", len(docs))
	}
	doc := docs[0]
	if doc.MeetingID != "M1" || doc.CityName != "Seattle" {
		t.Errorf("Unexpected identity fields: %+v", doc)
	}
	if doc.Transcript.FullText != "one two three four five" {
		t.Errorf("Transcript content should be carried verbatim")
	}
	if !doc.IndexedAt.Equal(indexedAt) {
		t.Errorf("Expected indexed_at %v, got %v", indexedAt, doc.IndexedAt)
	}
}

func TestBuildTranscriptDocs_RecomputesWordCount(t *testing.T) {
	source := sampleDocument()
	// An upstream word count that disagrees with the text must be ignored
	source.Transcript.WordCount = 999

	docs := buildTranscriptDocs([]meeting.Document{source}, time.Now())

	if docs[0].Metadata.WordCount != 5 {
		t.Errorf("Expected metadata word count recomputed to 5, got %d", docs[0].Metadata.WordCount)
	}
}

func TestBuildSummaryDocs(t *testing.T) {
	source := sampleDocument()
	source.Summary.Full = strings.TrimSpace(strings.Repeat("word ", 8))
	source.Summary.WordCount = 999

	docs := buildSummaryDocs([]meeting.Document{source}, time.Now())

	if len(docs) != 1 {
		t.Fatalf("Expected 1 summary doc, got %d", len(docs))
	}
	if docs[0].Metadata.WordCount != 8 {
		t.Errorf("Expected metadata word count recomputed to 8, got %d", docs[0].Metadata.WordCount)
	}
	if len(docs[0].Agenda) != 1 {
		t.Errorf("Expected agenda carried with the summary, got %v", docs[0].Agenda)
	}
}

func TestBuildSummaryDocs_NilAgenda(t *testing.T) {
	source := sampleDocument()
	source.Agenda = nil

	docs := buildSummaryDocs([]meeting.Document{source}, time.Now())

	if docs[0].Agenda == nil {
		t.Error("Nil agenda should be stored as an empty list, not null")
	}
	if len(docs[0].Agenda) != 0 {
		t.Errorf("Expected empty agenda, got %v", docs[0].Agenda)
	}
}

func TestLoaderRun_OperationOrder(t *testing.T) {
	store := &fakeStore{}
	documents := []meeting.Document{sampleDocument(), sampleDocument()}

	result := newTestLoader(store).Run(context.Background(), documents)

	if !result.Success {
		t.Fatalf("Expected successful load, got error %q", result.Error)
	}
	if result.TranscriptsCount != 2 || result.SummariesCount != 2 {
		t.Errorf("Expected 2 transcripts and 2 summaries, got %d and %d",
			result.TranscriptsCount, result.SummariesCount)
	}

	// Collections are cleared first, data lands before any index exists
	expected := []string{
		"drop transcripts", "drop summaries",
		"insert transcripts", "insert summaries",
		"index transcripts", "index summaries",
	}
	if !reflect.DeepEqual(store.calls, expected) {
		t.Errorf("Expected operation order %v, got %v", expected, store.calls)
	}
}

func TestLoaderRun_RepeatedLoadsConverge(t *testing.T) {
	documents := []meeting.Document{sampleDocument()}
	loader := newTestLoader(&fakeStore{})

	first := loader.Run(context.Background(), documents)
	second := loader.Run(context.Background(), documents)

	if !first.Success || !second.Success {
		t.Fatalf("Expected both loads to succeed, got %q and %q", first.Error, second.Error)
	}
	if first.TranscriptsCount != second.TranscriptsCount ||
		first.SummariesCount != second.SummariesCount {
		t.Errorf("Expected identical counts across re-loads, got %+v then %+v", first, second)
	}
}

func TestLoaderRun_PartialBulkWrite(t *testing.T) {
	store := &fakeStore{
		insertRes: map[string]*mongo.InsertManyResult{
			transcriptsCollection: {InsertedIDs: make([]any, 2)},
		},
		insertErr: map[string]error{
			transcriptsCollection: mongo.BulkWriteException{
				WriteErrors: []mongo.BulkWriteError{{}},
			},
		},
	}
	documents := []meeting.Document{sampleDocument(), sampleDocument(), sampleDocument()}

	result := newTestLoader(store).Run(context.Background(), documents)

	if !result.Success {
		t.Fatalf("Partial bulk failure should not fail the load, got error %q", result.Error)
	}
	if result.TranscriptsCount != 2 {
		t.Errorf("Expected reduced transcript count 2, got %d", result.TranscriptsCount)
	}
	if result.SummariesCount != 3 {
		t.Errorf("Expected full summary count 3, got %d", result.SummariesCount)
	}
}

func TestLoaderRun_PartialBulkWriteWithoutResult(t *testing.T) {
	store := &fakeStore{
		insertErr: map[string]error{
			transcriptsCollection: mongo.BulkWriteException{
				WriteErrors: []mongo.BulkWriteError{{}},
			},
		},
	}

	result := newTestLoader(store).Run(context.Background(), []meeting.Document{sampleDocument()})

	if !result.Success {
		t.Fatalf("Expected success with zero inserted, got error %q", result.Error)
	}
	if result.TranscriptsCount != 0 {
		t.Errorf("Expected 0 transcripts without an insert result, got %d", result.TranscriptsCount)
	}
}

func TestLoaderRun_ClearFailureAbortsLoad(t *testing.T) {
	store := &fakeStore{
		dropErr: map[string]error{transcriptsCollection: errors.New("drop denied")},
	}

	result := newTestLoader(store).Run(context.Background(), []meeting.Document{sampleDocument()})

	if result.Success {
		t.Fatal("Expected load failure when clearing collections fails")
	}
	if !strings.Contains(result.Error, "mongodb") {
		t.Errorf("Expected error to name the document sink, got %q", result.Error)
	}
	if len(store.calls) != 1 {
		t.Errorf("Expected no writes after a failed clear, got calls %v", store.calls)
	}
}

func TestLoaderRun_NonBulkInsertErrorFailsLoad(t *testing.T) {
	store := &fakeStore{
		insertErr: map[string]error{summariesCollection: errors.New("connection reset")},
	}

	result := newTestLoader(store).Run(context.Background(), []meeting.Document{sampleDocument()})

	if result.Success {
		t.Fatal("Expected load failure on a non-bulk insert error")
	}
	if !strings.Contains(result.Error, "summary load failed") {
		t.Errorf("Expected summary load failure, got %q", result.Error)
	}
}

func TestAsAny(t *testing.T) {
	out := asAny([]int{1, 2, 3})
	if len(out) != 3 {
		t.Fatalf("Expected 3 elements, got %d", len(out))
	}
	if out[2] != 3 {
		t.Errorf("Expected element 3, got %v", out[2])
	}
}

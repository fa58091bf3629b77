package docstore

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/group2/meetingbank-etl/app/meeting"
	"github.com/group2/meetingbank-etl/app/sink"
)

const (
	transcriptsCollection = "transcripts"
	summariesCollection   = "summaries"
)

// TranscriptDoc is the transcripts-collection projection of a meeting.
type TranscriptDoc struct {
	MeetingID   string                    `bson:"meeting_id"`
	CityName    string                    `bson:"city_name"`
	MeetingDate string                    `bson:"meeting_date"`
	Transcript  meeting.TranscriptContent `bson:"transcript"`
	Metadata    DocMetadata               `bson:"metadata"`
	IndexedAt   time.Time                 `bson:"indexed_at"`
}

// SummaryDoc is the summaries-collection projection of a meeting. The agenda
// travels with the summary, structure preserved.
type SummaryDoc struct {
	MeetingID   string                 `bson:"meeting_id"`
	CityName    string                 `bson:"city_name"`
	MeetingDate string                 `bson:"meeting_date"`
	Summary     meeting.SummaryContent `bson:"summary"`
	Agenda      []any                  `bson:"agenda"`
	Metadata    DocMetadata            `bson:"metadata"`
	IndexedAt   time.Time              `bson:"indexed_at"`
}

type DocMetadata struct {
	WordCount int `bson:"word_count"`
}

// LoadResult is the structured outcome of one document load. A partial bulk
// failure reduces the counts; it does not flip Success.
type LoadResult struct {
	Success          bool   `json:"success"`
	TranscriptsCount int    `json:"transcripts_count"`
	SummariesCount   int    `json:"summaries_count"`
	Error            string `json:"error,omitempty"`
}

// Loader persists meeting documents to the document sink. Collections are
// dropped before each load so a re-run always converges to the same state
// despite the unique index on meeting_id.
type Loader struct {
	store DocumentStore
	now   func() time.Time
}

func NewLoader(store DocumentStore) *Loader {
	return &Loader{store: store, now: time.Now}
}

func (l *Loader) Run(ctx context.Context, documents []meeting.Document) LoadResult {
	if err := l.clearCollections(ctx); err != nil {
		return l.failure(sink.Errorf(sink.Documents, "failed to clear collections: %w", err))
	}

	indexedAt := l.now().UTC()

	transcripts, err := l.insertUnordered(ctx, transcriptsCollection,
		asAny(buildTranscriptDocs(documents, indexedAt)))
	if err != nil {
		return l.failure(sink.Errorf(sink.Documents, "transcript load failed: %w", err))
	}

	summaries, err := l.insertUnordered(ctx, summariesCollection,
		asAny(buildSummaryDocs(documents, indexedAt)))
	if err != nil {
		return l.failure(sink.Errorf(sink.Documents, "summary load failed: %w", err))
	}

	if err := l.createIndexes(ctx); err != nil {
		return l.failure(sink.Errorf(sink.Documents, "index creation failed: %w", err))
	}

	slog.Info("Document load completed", "transcripts", transcripts, "summaries", summaries)

	return LoadResult{Success: true, TranscriptsCount: transcripts, SummariesCount: summaries}
}

func (l *Loader) failure(err *sink.Error) LoadResult {
	slog.Error("Document load failed", "error", err)
	return LoadResult{Success: false, Error: err.Error()}
}

func (l *Loader) clearCollections(ctx context.Context) error {
	if err := l.store.Drop(ctx, transcriptsCollection); err != nil {
		return err
	}
	return l.store.Drop(ctx, summariesCollection)
}

// insertUnordered bulk-inserts with unordered semantics: one bad document
// does not block the rest of the batch. Partial bulk failures are logged and
// reported as a reduced insert count, not an error.
func (l *Loader) insertUnordered(ctx context.Context, collection string, docs []any) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}

	res, err := l.store.InsertMany(ctx, collection, docs, false)
	if err != nil {
		var bulkErr mongo.BulkWriteException
		if errors.As(err, &bulkErr) {
			inserted := 0
			if res != nil {
				inserted = len(res.InsertedIDs)
			}
			slog.Warn("Bulk insert partial success", "collection", collection,
				"inserted", inserted, "errors", len(bulkErr.WriteErrors))
			return inserted, nil
		}
		return 0, err
	}

	return len(res.InsertedIDs), nil
}

// createIndexes builds the uniqueness, compound and full-text indexes the
// downstream analytics queries rely on. Runs after the data load.
func (l *Loader) createIndexes(ctx context.Context) error {
	transcriptIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "meeting_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "city_name", Value: 1}, {Key: "meeting_date", Value: 1}}},
		{Keys: bson.D{{Key: "transcript.full_text", Value: "text"}}},
	}
	if err := l.store.CreateIndexes(ctx, transcriptsCollection, transcriptIndexes); err != nil {
		return err
	}

	summaryIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "meeting_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "city_name", Value: 1}, {Key: "meeting_date", Value: 1}}},
		{Keys: bson.D{{Key: "summary.full", Value: "text"}}},
	}
	return l.store.CreateIndexes(ctx, summariesCollection, summaryIndexes)
}

// buildTranscriptDocs projects documents for the transcripts collection.
// Word counts are recomputed from the full text here; upstream-provided
// counts are never trusted at load time.
func buildTranscriptDocs(documents []meeting.Document, indexedAt time.Time) []TranscriptDoc {
	docs := make([]TranscriptDoc, 0, len(documents))
	for _, doc := range documents {
		docs = append(docs, TranscriptDoc{
			MeetingID:   doc.MeetingID,
			CityName:    doc.CityName,
			MeetingDate: doc.MeetingDate,
			Transcript:  doc.Transcript,
			Metadata:    DocMetadata{WordCount: meeting.CountWords(doc.Transcript.FullText)},
			IndexedAt:   indexedAt,
		})
	}
	return docs
}

func buildSummaryDocs(documents []meeting.Document, indexedAt time.Time) []SummaryDoc {
	docs := make([]SummaryDoc, 0, len(documents))
	for _, doc := range documents {
		agenda := doc.Agenda
		if agenda == nil {
			agenda = []any{}
		}
		docs = append(docs, SummaryDoc{
			MeetingID:   doc.MeetingID,
			CityName:    doc.CityName,
			MeetingDate: doc.MeetingDate,
			Summary:     doc.Summary,
			Agenda:      agenda,
			Metadata:    DocMetadata{WordCount: meeting.CountWords(doc.Summary.Full)},
			IndexedAt:   indexedAt,
		})
	}
	return docs
}

func asAny[T any](docs []T) []any {
	out := make([]any, len(docs))
	for i, doc := range docs {
		out[i] = doc
	}
	return out
}

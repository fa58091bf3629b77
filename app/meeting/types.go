package meeting

import (
	"time"
)

// Metadata carries optional provenance fields attached to a meeting record.
type Metadata struct {
	URL          string `json:"url,omitempty" bson:"url,omitempty"`
	VideoURL     string `json:"video_url,omitempty" bson:"video_url,omitempty"`
	Source       string `json:"source,omitempty" bson:"source,omitempty"`
	Participants *int   `json:"participants,omitempty" bson:"participants,omitempty"`
}

// RawRecord is a meeting as delivered by the extraction stage, before any
// validation. Agenda entries may be plain strings or structured objects, so
// they are kept untyped until flattening.
type RawRecord struct {
	MeetingID  string    `json:"meeting_id"`
	City       string    `json:"city"`
	Date       string    `json:"date"`
	Title      string    `json:"title,omitempty"`
	Transcript string    `json:"transcript"`
	Summary    string    `json:"summary"`
	Agenda     []any     `json:"agenda,omitempty"`
	Metadata   *Metadata `json:"metadata,omitempty"`
}

// ValidatedRecord is only ever produced by the validator; every instance
// satisfies the field constraints (non-empty id, title-cased city, ISO date
// not in the future, transcript and summary of at least 10 characters).
type ValidatedRecord struct {
	MeetingID  string    `json:"meeting_id"`
	City       string    `json:"city"`
	Date       string    `json:"date"`
	Title      string    `json:"title,omitempty"`
	Transcript string    `json:"transcript"`
	Summary    string    `json:"summary"`
	Agenda     []any     `json:"agenda,omitempty"`
	Metadata   *Metadata `json:"metadata,omitempty"`
}

// RejectedRecord pairs a record identifier with the reason validation failed.
type RejectedRecord struct {
	MeetingID string `json:"meeting_id"`
	Error     string `json:"error"`
}

// QualityReport aggregates per-batch validation counts and error samples.
type QualityReport struct {
	Timestamp      time.Time        `json:"timestamp"`
	TotalRecords   int              `json:"total_records"`
	ValidRecords   int              `json:"valid_records"`
	InvalidRecords int              `json:"invalid_records"`
	SuccessRate    float64          `json:"success_rate"`
	ErrorRate      float64          `json:"error_rate"`
	Errors         []RejectedRecord `json:"errors"`
}

// StructuredFact is one row of the meetings fact table. CityName is replaced
// by a sink-assigned city_id at load time.
type StructuredFact struct {
	MeetingID           string `json:"meeting_id"`
	CityName            string `json:"city_name"`
	MeetingDate         string `json:"meeting_date"`
	Title               string `json:"title,omitempty"`
	DurationMin         int    `json:"duration_min"`
	SpeakerCount        int    `json:"speaker_count"`
	TranscriptWordCount int    `json:"transcript_word_count"`
	SummaryWordCount    int    `json:"summary_word_count"`
}

// CityDimension is one row of the cities dimension table. CityID is assigned
// sequentially at transform time and is only stable within a single run; the
// relational sink's own ids are authoritative after insertion.
type CityDimension struct {
	CityID   int    `json:"city_id"`
	CityName string `json:"city_name"`
	State    string `json:"state,omitempty"`
}

// TranscriptContent is the nested transcript object of a document.
type TranscriptContent struct {
	FullText  string `json:"full_text" bson:"full_text"`
	WordCount int    `json:"word_count" bson:"word_count"`
}

// SummaryContent is the nested summary object of a document. Short is a hard
// 200-character cut of Full; WordCount counts words in the full text.
type SummaryContent struct {
	Full      string `json:"full" bson:"full"`
	Short     string `json:"short" bson:"short"`
	WordCount int    `json:"word_count" bson:"word_count"`
}

// Document is the per-meeting unit written to the document sink. The agenda
// is carried verbatim from the source record, structure preserved.
type Document struct {
	MeetingID   string            `json:"meeting_id" bson:"meeting_id"`
	CityName    string            `json:"city_name" bson:"city_name"`
	MeetingDate string            `json:"meeting_date" bson:"meeting_date"`
	Transcript  TranscriptContent `json:"transcript" bson:"transcript"`
	Summary     SummaryContent    `json:"summary" bson:"summary"`
	Agenda      []any             `json:"agenda" bson:"agenda"`
	Metadata    *Metadata         `json:"metadata,omitempty" bson:"metadata,omitempty"`
}

// AgendaItem is one row of the agendas table, derived from a document's
// agenda list. Item numbers are 1-based in source order.
type AgendaItem struct {
	MeetingID   string  `json:"meeting_id"`
	ItemNumber  int     `json:"item_number"`
	Topic       string  `json:"topic"`
	Description *string `json:"description"`
}

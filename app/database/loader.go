package database

import (
	"log/slog"

	"github.com/group2/meetingbank-etl/app/meeting"
	"github.com/group2/meetingbank-etl/app/sink"
)

// LoadResult is the structured outcome of one relational load. Errors are
// carried as a message, never raised past the loader boundary.
type LoadResult struct {
	Success       bool   `json:"success"`
	CitiesCount   int    `json:"cities_count"`
	MeetingsCount int    `json:"meetings_count"`
	AgendasCount  int    `json:"agendas_count"`
	Error         string `json:"error,omitempty"`
}

// RelationalLoader persists facts and dimensions to the relational sink.
// Ordering within a load is fixed: tables before data, data before indexes,
// cities before facts (facts need the sink-assigned city ids).
type RelationalLoader struct {
	schema   SchemaManager
	cities   CityRepository
	meetings MeetingRepository
	agendas  AgendaRepository
}

func NewRelationalLoader(db *DB) *RelationalLoader {
	return &RelationalLoader{
		schema:   NewSchemaManager(db),
		cities:   NewCityRepository(db),
		meetings: NewMeetingRepository(db),
		agendas:  NewAgendaRepository(db),
	}
}

func (l *RelationalLoader) Run(facts []meeting.StructuredFact, cities []meeting.CityDimension, documents []meeting.Document) LoadResult {
	if err := l.schema.Migrate(); err != nil {
		return l.failure(sink.Errorf(sink.Relational, "schema provisioning failed: %w", err))
	}

	if err := l.cities.InsertCities(cities); err != nil {
		return l.failure(sink.Errorf(sink.Relational, "city load failed: %w", err))
	}

	// The sink's own auto-generated ids are the ids of record; re-read them
	// instead of trusting the transform-time assignment.
	cityIDs, err := l.cities.GetCityIDs()
	if err != nil {
		return l.failure(sink.Errorf(sink.Relational, "city id re-read failed: %w", err))
	}

	rows, err := MapFacts(facts, cityIDs)
	if err != nil {
		return l.failure(sink.Errorf(sink.Relational, "fact mapping failed: %w", err))
	}

	if err := l.meetings.InsertFacts(rows); err != nil {
		return l.failure(sink.Errorf(sink.Relational, "fact load failed: %w", err))
	}

	// Agenda rows come from the document representation so that meetings
	// whose agenda never reached a fact row are still covered.
	items := meeting.FlattenAgendas(documents)
	if len(items) > 0 {
		if err := l.agendas.InsertItems(items); err != nil {
			return l.failure(sink.Errorf(sink.Relational, "agenda load failed: %w", err))
		}
	} else {
		slog.Info("No agenda items to load")
	}

	l.schema.EnsureIndexes()

	result := LoadResult{Success: true}
	if result.CitiesCount, err = l.cities.GetCityCount(); err != nil {
		return l.failure(sink.Errorf(sink.Relational, "city count failed: %w", err))
	}
	if result.MeetingsCount, err = l.meetings.GetMeetingCount(); err != nil {
		return l.failure(sink.Errorf(sink.Relational, "meeting count failed: %w", err))
	}
	if result.AgendasCount, err = l.agendas.GetAgendaCount(); err != nil {
		return l.failure(sink.Errorf(sink.Relational, "agenda count failed: %w", err))
	}

	slog.Info("Relational load completed",
		"cities", result.CitiesCount, "meetings", result.MeetingsCount, "agendas", result.AgendasCount)

	return result
}

func (l *RelationalLoader) failure(err *sink.Error) LoadResult {
	slog.Error("Relational load failed", "error", err)
	return LoadResult{Success: false, Error: err.Error()}
}

// MapFacts resolves each fact's city name to the sink-assigned surrogate id.
// A fact whose city has no row after the re-read is a consistency error.
func MapFacts(facts []meeting.StructuredFact, cityIDs map[string]int) ([]FactRow, error) {
	rows := make([]FactRow, 0, len(facts))

	for _, fact := range facts {
		cityID, ok := cityIDs[fact.CityName]
		if !ok {
			return nil, &sink.Error{
				Sink: sink.Relational,
				Err:  missingCityError{city: fact.CityName, meetingID: fact.MeetingID},
			}
		}
		rows = append(rows, FactRow{
			MeetingID:           fact.MeetingID,
			CityID:              cityID,
			MeetingDate:         fact.MeetingDate,
			Title:               fact.Title,
			DurationMin:         fact.DurationMin,
			SpeakerCount:        fact.SpeakerCount,
			TranscriptWordCount: fact.TranscriptWordCount,
			SummaryWordCount:    fact.SummaryWordCount,
		})
	}

	return rows, nil
}

type missingCityError struct {
	city      string
	meetingID string
}

func (e missingCityError) Error() string {
	return "no city row for " + e.city + " (meeting " + e.meetingID + ")"
}

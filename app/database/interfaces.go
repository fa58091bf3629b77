package database

import (
	"github.com/group2/meetingbank-etl/app/meeting"
)

type SchemaManager interface {
	Migrate() error
	EnsureIndexes()
}

type CityRepository interface {
	InsertCities(cities []meeting.CityDimension) error
	GetCityIDs() (map[string]int, error)
	GetCityCount() (int, error)
}

type MeetingRepository interface {
	InsertFacts(rows []FactRow) error
	GetMeetingCount() (int, error)
}

type AgendaRepository interface {
	InsertItems(items []meeting.AgendaItem) error
	GetAgendaCount() (int, error)
}

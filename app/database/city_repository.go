package database

import (
	"database/sql"
	"fmt"

	"github.com/group2/meetingbank-etl/app/meeting"
)

// PGCityRepository handles the cities dimension table.
type PGCityRepository struct {
	db *DB
}

func NewCityRepository(db *DB) *PGCityRepository {
	return &PGCityRepository{db: db}
}

// InsertCities appends dimension rows. Transform-time city ids are not
// written: the sink assigns its own surrogate ids on insertion.
func (r *PGCityRepository) InsertCities(cities []meeting.CityDimension) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO cities (city_name, state) VALUES ($1, $2)`)
	if err != nil {
		return fmt.Errorf("failed to prepare city insert: %w", err)
	}
	defer stmt.Close()

	for _, city := range cities {
		state := sql.NullString{String: city.State, Valid: city.State != ""}
		if _, err := stmt.Exec(city.CityName, state); err != nil {
			return fmt.Errorf("failed to insert city %q: %w", city.CityName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit city insert: %w", err)
	}

	return nil
}

// GetCityIDs re-reads the authoritative name to surrogate-id mapping from
// the sink. Callers must use this, never the transform-time ids.
func (r *PGCityRepository) GetCityIDs() (map[string]int, error) {
	rows, err := r.db.Query(`SELECT city_id, city_name FROM cities`)
	if err != nil {
		return nil, fmt.Errorf("failed to query city ids: %w", err)
	}
	defer rows.Close()

	mapping := make(map[string]int)
	for rows.Next() {
		var id int
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("failed to scan city row: %w", err)
		}
		mapping[name] = id
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating city rows: %w", err)
	}

	return mapping, nil
}

func (r *PGCityRepository) GetCityCount() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM cities`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count cities: %w", err)
	}
	return count, nil
}

package database

import (
	"database/sql"
	"fmt"
)

// PGMeetingRepository handles the meetings fact table.
type PGMeetingRepository struct {
	db *DB
}

func NewMeetingRepository(db *DB) *PGMeetingRepository {
	return &PGMeetingRepository{db: db}
}

// InsertFacts bulk-inserts fact rows. Insertion order carries no meaning.
func (r *PGMeetingRepository) InsertFacts(rows []FactRow) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO meetings (
			meeting_id, city_id, meeting_date, title,
			duration_min, speaker_count, transcript_word_count, summary_word_count
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare meeting insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		title := sql.NullString{String: row.Title, Valid: row.Title != ""}
		if _, err := stmt.Exec(
			row.MeetingID, row.CityID, row.MeetingDate, title,
			row.DurationMin, row.SpeakerCount,
			row.TranscriptWordCount, row.SummaryWordCount,
		); err != nil {
			return fmt.Errorf("failed to insert meeting %q: %w", row.MeetingID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit meeting insert: %w", err)
	}

	return nil
}

func (r *PGMeetingRepository) GetMeetingCount() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM meetings`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count meetings: %w", err)
	}
	return count, nil
}

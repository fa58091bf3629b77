package database

import (
	"database/sql"
	"fmt"

	"github.com/group2/meetingbank-etl/app/meeting"
)

// PGAgendaRepository handles the agendas table.
type PGAgendaRepository struct {
	db *DB
}

func NewAgendaRepository(db *DB) *PGAgendaRepository {
	return &PGAgendaRepository{db: db}
}

func (r *PGAgendaRepository) InsertItems(items []meeting.AgendaItem) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO agendas (meeting_id, item_number, topic, description)
		VALUES ($1, $2, $3, $4)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare agenda insert: %w", err)
	}
	defer stmt.Close()

	for _, item := range items {
		description := sql.NullString{}
		if item.Description != nil {
			description = sql.NullString{String: *item.Description, Valid: true}
		}
		if _, err := stmt.Exec(item.MeetingID, item.ItemNumber, item.Topic, description); err != nil {
			return fmt.Errorf("failed to insert agenda item %d of meeting %q: %w",
				item.ItemNumber, item.MeetingID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit agenda insert: %w", err)
	}

	return nil
}

func (r *PGAgendaRepository) GetAgendaCount() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM agendas`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count agenda items: %w", err)
	}
	return count, nil
}

package source

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/group2/meetingbank-etl/app/meeting"
)

// batchFile is the on-disk envelope shared by the raw and cleaned stages.
type batchFile[T any] struct {
	Meetings []T `json:"meetings"`
}

// ReadRawBatch reads a batch of raw meeting records from a JSON file.
func ReadRawBatch(path string) ([]meeting.RawRecord, error) {
	return readBatch[meeting.RawRecord](path)
}

// WriteRawBatch writes a raw batch for the cleaning stage to pick up.
func WriteRawBatch(path string, records []meeting.RawRecord) error {
	return writeBatch(path, records)
}

// ReadCleanedBatch reads a batch of validated records.
func ReadCleanedBatch(path string) ([]meeting.ValidatedRecord, error) {
	return readBatch[meeting.ValidatedRecord](path)
}

// WriteCleanedBatch writes the validated batch for the transform stage.
func WriteCleanedBatch(path string, records []meeting.ValidatedRecord) error {
	return writeBatch(path, records)
}

func readBatch[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	var batch batchFile[T]
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("failed to parse batch file %s: %w", path, err)
	}

	return batch.Meetings, nil
}

func writeBatch[T any](path string, records []T) error {
	return WriteJSON(path, batchFile[T]{Meetings: records})
}

// WriteJSON marshals v with indentation and writes it to path, creating the
// parent directory if needed.
func WriteJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// ReadJSON reads a JSON file written by WriteJSON into v.
func ReadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return nil
}

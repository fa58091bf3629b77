package tasks

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/group2/meetingbank-etl/app/meeting"
	"github.com/group2/meetingbank-etl/app/source"
)

// TransformTask derives features from the cleaned batch and writes the
// structured, dimension and document representations for the two loaders.
type TransformTask struct {
	Task
	transformer  *meeting.Transformer
	cleanedFile  string
	processedDir string
}

func NewTransformTask(transformer *meeting.Transformer, cleanedFile, processedDir string) *TransformTask {
	return &TransformTask{
		Task:         NewTask(TaskTypeTransform),
		transformer:  transformer,
		cleanedFile:  cleanedFile,
		processedDir: processedDir,
	}
}

func (t *TransformTask) Execute(ctx context.Context) StageResult {
	t.Start()

	records, err := source.ReadCleanedBatch(t.cleanedFile)
	if err != nil {
		return t.failure(err)
	}

	out := t.transformer.Run(records)

	structuredFile := stampedPath(t.processedDir, "structured_data")
	if err := source.WriteJSON(structuredFile, out.Facts); err != nil {
		return t.failure(err)
	}

	citiesFile := filepath.Join(t.processedDir, "cities.json")
	if err := source.WriteJSON(citiesFile, out.Cities); err != nil {
		return t.failure(err)
	}

	unstructuredFile := stampedPath(t.processedDir, "unstructured_data")
	if err := source.WriteJSON(unstructuredFile, out.Documents); err != nil {
		return t.failure(err)
	}

	slog.Info("Transformation completed", "records", len(out.Facts),
		"cities", len(out.Cities), "documents", len(out.Documents),
		"agenda_items", len(out.AgendaItems))

	return t.success(
		map[string]int{
			"records":      len(out.Facts),
			"cities":       len(out.Cities),
			"documents":    len(out.Documents),
			"agenda_items": len(out.AgendaItems),
		},
		map[string]string{
			"structured_file":   structuredFile,
			"cities_file":       citiesFile,
			"unstructured_file": unstructuredFile,
		},
	)
}

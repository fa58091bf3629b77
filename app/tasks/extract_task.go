package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/group2/meetingbank-etl/app/source"
)

// ExtractTask fetches the raw meeting batch from the dataset API and writes
// it for the cleaning stage.
type ExtractTask struct {
	Task
	fetcher      *source.Fetcher
	rawDir       string
	subsetSize   int
	targetCities []string
}

func NewExtractTask(fetcher *source.Fetcher, rawDir string, subsetSize int, targetCities []string) *ExtractTask {
	return &ExtractTask{
		Task:         NewTask(TaskTypeExtract),
		fetcher:      fetcher,
		rawDir:       rawDir,
		subsetSize:   subsetSize,
		targetCities: targetCities,
	}
}

func (t *ExtractTask) Execute(ctx context.Context) StageResult {
	t.Start()

	result, err := t.fetcher.Run(ctx, t.subsetSize, t.targetCities)
	if err != nil {
		return t.failure(fmt.Errorf("extraction failed: %w", err))
	}

	outputFile := stampedPath(t.rawDir, "meetings_raw")
	if err := source.WriteRawBatch(outputFile, result.Records); err != nil {
		return t.failure(err)
	}

	slog.Info("Extraction completed", "records", len(result.Records),
		"filtered", result.FilteredCount, "output", outputFile)

	return t.success(
		map[string]int{
			"records":  len(result.Records),
			"filtered": result.FilteredCount,
		},
		map[string]string{"raw_data_file": outputFile},
	)
}

// stampedPath builds a date-stamped artifact path, one file per day per
// stage, matching the re-run granularity of the pipeline.
func stampedPath(dir, prefix string) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.json", prefix, time.Now().Format("20060102")))
}

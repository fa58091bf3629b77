package tasks

import (
	"context"
	"log/slog"

	"github.com/group2/meetingbank-etl/app/meeting"
	"github.com/group2/meetingbank-etl/app/source"
)

// CleanTask validates and deduplicates the raw batch, writes the cleaned
// batch for the transform stage and the quality report for ops tooling.
type CleanTask struct {
	Task
	validator  *meeting.Validator
	rawFile    string
	cleanedDir string
	reportsDir string
}

func NewCleanTask(validator *meeting.Validator, rawFile, cleanedDir, reportsDir string) *CleanTask {
	return &CleanTask{
		Task:       NewTask(TaskTypeClean),
		validator:  validator,
		rawFile:    rawFile,
		cleanedDir: cleanedDir,
		reportsDir: reportsDir,
	}
}

func (t *CleanTask) Execute(ctx context.Context) StageResult {
	t.Start()

	records, err := source.ReadRawBatch(t.rawFile)
	if err != nil {
		return t.failure(err)
	}

	valid, rejected, report := t.validator.Run(records)

	outputFile := stampedPath(t.cleanedDir, "meetings_cleaned")
	if err := source.WriteCleanedBatch(outputFile, valid); err != nil {
		return t.failure(err)
	}

	reportFile := stampedPath(t.reportsDir, "quality_report")
	if err := source.WriteJSON(reportFile, report); err != nil {
		return t.failure(err)
	}

	slog.Info("Cleaning completed", "valid", len(valid), "invalid", len(rejected),
		"success_rate", report.SuccessRate)

	return t.success(
		map[string]int{
			"total":   report.TotalRecords,
			"valid":   len(valid),
			"invalid": len(rejected),
		},
		map[string]string{
			"output_file": outputFile,
			"report_file": reportFile,
		},
	)
}

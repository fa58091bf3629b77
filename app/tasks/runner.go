package tasks

import (
	"context"
	"log/slog"
	"time"

	"github.com/group2/meetingbank-etl/app/cfg"
	"github.com/group2/meetingbank-etl/app/meeting"
	"github.com/group2/meetingbank-etl/app/source"
)

// PipelineResult aggregates per-stage results for one full pipeline run.
type PipelineResult struct {
	Success   bool          `json:"success"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Stages    []StageResult `json:"stages"`
}

// Runner executes the pipeline stages in order: extract, clean, transform,
// then the two sink loads. The loads are driven independently so a failure
// in one sink never prevents the attempt on the other; everything upstream
// is strictly sequential since each stage consumes the previous stage's
// artifact.
type Runner struct {
	cfg         *cfg.Cfg
	fetcher     *source.Fetcher
	validator   *meeting.Validator
	transformer *meeting.Transformer
}

func NewRunner(config *cfg.Cfg, fetcher *source.Fetcher) *Runner {
	return &Runner{
		cfg:         config,
		fetcher:     fetcher,
		validator:   meeting.NewValidator(),
		transformer: meeting.NewTransformer(),
	}
}

func (r *Runner) Run(ctx context.Context) PipelineResult {
	result := PipelineResult{StartedAt: time.Now()}

	extract := r.execute(ctx, NewExtractTask(r.fetcher, r.cfg.RawDir(),
		r.cfg.SubsetSize, r.cfg.TargetCities), &result)
	if !extract.Success {
		return r.finish(result)
	}

	return r.runFromRaw(ctx, extract.Files["raw_data_file"], result)
}

// RunFromFile runs the pipeline over a caller-supplied raw batch, skipping
// extraction.
func (r *Runner) RunFromFile(ctx context.Context, rawFile string) PipelineResult {
	return r.runFromRaw(ctx, rawFile, PipelineResult{StartedAt: time.Now()})
}

func (r *Runner) runFromRaw(ctx context.Context, rawFile string, result PipelineResult) PipelineResult {
	config := r.cfg

	clean := r.execute(ctx, NewCleanTask(r.validator,
		rawFile, config.CleanedDir(), config.ReportsDir()), &result)
	if !clean.Success {
		return r.finish(result)
	}

	transform := r.execute(ctx, NewTransformTask(r.transformer,
		clean.Files["output_file"], config.ProcessedDir()), &result)
	if !transform.Success {
		return r.finish(result)
	}

	loads := []TaskInterface{
		NewLoadRelationalTask(config.PostgresURL(),
			transform.Files["structured_file"],
			transform.Files["cities_file"],
			transform.Files["unstructured_file"]),
		NewLoadDocumentsTask(config.MongoURI(), config.MongoName,
			transform.Files["unstructured_file"]),
	}
	RunLoads(ctx, loads, &result)

	return r.finish(result)
}

func (r *Runner) execute(ctx context.Context, task TaskInterface, result *PipelineResult) StageResult {
	slog.Info("Starting pipeline stage", "stage", task.GetType(), "task_id", task.GetID())
	stage := task.Execute(ctx)
	result.Stages = append(result.Stages, stage)

	if !stage.Success {
		slog.Error("Pipeline stage failed", "stage", stage.Stage, "error", stage.Error)
	}

	return stage
}

func (r *Runner) finish(result PipelineResult) PipelineResult {
	result.Duration = time.Since(result.StartedAt)
	result.Success = allSucceeded(result.Stages)

	slog.Info("Pipeline run finished", "success", result.Success,
		"stages", len(result.Stages), "duration", result.Duration)

	return result
}

// RunLoads executes the sink load tasks independently: every load is
// attempted regardless of the others' outcomes.
func RunLoads(ctx context.Context, loads []TaskInterface, result *PipelineResult) {
	for _, task := range loads {
		slog.Info("Starting pipeline stage", "stage", task.GetType(), "task_id", task.GetID())
		stage := task.Execute(ctx)
		result.Stages = append(result.Stages, stage)

		if !stage.Success {
			slog.Error("Pipeline stage failed", "stage", stage.Stage, "error", stage.Error)
		}
	}
}

func allSucceeded(stages []StageResult) bool {
	if len(stages) == 0 {
		return false
	}
	for _, stage := range stages {
		if !stage.Success {
			return false
		}
	}
	return true
}

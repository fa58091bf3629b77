package api

import (
	"context"
	"sync"

	"github.com/group2/meetingbank-etl/app/tasks"
)

type RunnerInterface interface {
	Run(ctx context.Context) tasks.PipelineResult
	RunFromFile(ctx context.Context, rawFile string) tasks.PipelineResult
}

var _ RunnerInterface = (*tasks.Runner)(nil)

type Handler struct {
	runner  RunnerInterface
	version string

	mu         sync.Mutex
	running    bool
	lastResult *tasks.PipelineResult
}

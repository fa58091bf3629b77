package tasks

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

type TaskType string

const (
	TaskTypeExtract        TaskType = "extract"
	TaskTypeClean          TaskType = "clean"
	TaskTypeTransform      TaskType = "transform"
	TaskTypeLoadRelational TaskType = "load_relational"
	TaskTypeLoadDocuments  TaskType = "load_documents"
)

// StageResult is the structured outcome every pipeline stage returns to the
// orchestrator: a success flag, counts, file references for the next stage
// and an error message on failure. Stages never panic or return raw errors
// past this boundary.
type StageResult struct {
	Stage    TaskType          `json:"stage"`
	Success  bool              `json:"success"`
	Error    string            `json:"error,omitempty"`
	Counts   map[string]int    `json:"counts,omitempty"`
	Files    map[string]string `json:"files,omitempty"`
	Duration time.Duration     `json:"duration"`
}

type TaskInterface interface {
	Execute(ctx context.Context) StageResult
	GetID() string
	GetType() TaskType
}

type Task struct {
	ID        string
	Type      TaskType
	StartedAt *time.Time
}

func NewTask(taskType TaskType) Task {
	uniqueID := fmt.Sprintf("%d-%d", time.Now().UnixNano(), rand.Intn(10000))

	return Task{
		ID:   uniqueID,
		Type: taskType,
	}
}

func (t *Task) GetID() string {
	return t.ID
}

func (t *Task) GetType() TaskType {
	return t.Type
}

func (t *Task) Start() {
	now := time.Now()
	t.StartedAt = &now
}

func (t *Task) GetDuration() time.Duration {
	if t.StartedAt == nil {
		return 0
	}
	return time.Since(*t.StartedAt)
}

// success and failure build the two result shapes so each task reports the
// same way.
func (t *Task) success(counts map[string]int, files map[string]string) StageResult {
	return StageResult{
		Stage:    t.Type,
		Success:  true,
		Counts:   counts,
		Files:    files,
		Duration: t.GetDuration(),
	}
}

func (t *Task) failure(err error) StageResult {
	return StageResult{
		Stage:    t.Type,
		Success:  false,
		Error:    err.Error(),
		Duration: t.GetDuration(),
	}
}

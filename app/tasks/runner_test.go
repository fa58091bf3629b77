package tasks

import (
	"context"
	"testing"
)

type fakeTask struct {
	Task
	succeed  bool
	executed bool
}

func newFakeTask(taskType TaskType, succeed bool) *fakeTask {
	return &fakeTask{Task: NewTask(taskType), succeed: succeed}
}

func (t *fakeTask) Execute(ctx context.Context) StageResult {
	t.executed = true
	if t.succeed {
		return t.success(nil, nil)
	}
	return StageResult{Stage: t.Type, Success: false, Error: "boom"}
}

func TestRunLoads_IndependentFailures(t *testing.T) {
	relational := newFakeTask(TaskTypeLoadRelational, false)
	documents := newFakeTask(TaskTypeLoadDocuments, true)

	var result PipelineResult
	RunLoads(context.Background(), []TaskInterface{relational, documents}, &result)

	// A relational failure must not prevent the document load attempt
	if !documents.executed {
		t.Error("Document load should run even when the relational load fails")
	}
	if len(result.Stages) != 2 {
		t.Fatalf("Expected 2 stage results, got %d", len(result.Stages))
	}
	if result.Stages[0].Success {
		t.Error("Expected relational stage to report failure")
	}
	if !result.Stages[1].Success {
		t.Error("Expected document stage to report success")
	}
}

func TestAllSucceeded(t *testing.T) {
	if allSucceeded(nil) {
		t.Error("No stages should not count as success")
	}
	if !allSucceeded([]StageResult{{Success: true}, {Success: true}}) {
		t.Error("All-success stages should report success")
	}
	if allSucceeded([]StageResult{{Success: true}, {Success: false}}) {
		t.Error("Any failed stage should fail the pipeline result")
	}
}

func TestTaskIdentity(t *testing.T) {
	task := NewTask(TaskTypeClean)

	if task.GetType() != TaskTypeClean {
		t.Errorf("Expected task type %q, got %q", TaskTypeClean, task.GetType())
	}
	if task.GetID() == "" {
		t.Error("Task ID should not be empty")
	}
	if task.GetDuration() != 0 {
		t.Error("Duration should be zero before Start")
	}

	task.Start()
	if task.StartedAt == nil {
		t.Error("Start should record a start time")
	}
}

func TestTaskFailureResult(t *testing.T) {
	task := NewTask(TaskTypeTransform)
	task.Start()

	result := task.failure(context.DeadlineExceeded)

	if result.Success {
		t.Error("Failure result should not report success")
	}
	if result.Error == "" {
		t.Error("Failure result should carry the error message")
	}
	if result.Stage != TaskTypeTransform {
		t.Errorf("Expected stage %q, got %q", TaskTypeTransform, result.Stage)
	}
}

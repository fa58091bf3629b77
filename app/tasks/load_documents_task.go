package tasks

import (
	"context"
	"fmt"

	"github.com/group2/meetingbank-etl/app/docstore"
	"github.com/group2/meetingbank-etl/app/meeting"
	"github.com/group2/meetingbank-etl/app/sink"
	"github.com/group2/meetingbank-etl/app/source"
)

// LoadDocumentsTask loads the document representation into the document
// sink. Independent of the relational load: a failure here never blocks it,
// and vice versa.
type LoadDocumentsTask struct {
	Task
	mongoURI         string
	dbName           string
	unstructuredFile string
}

func NewLoadDocumentsTask(mongoURI, dbName, unstructuredFile string) *LoadDocumentsTask {
	return &LoadDocumentsTask{
		Task:             NewTask(TaskTypeLoadDocuments),
		mongoURI:         mongoURI,
		dbName:           dbName,
		unstructuredFile: unstructuredFile,
	}
}

func (t *LoadDocumentsTask) Execute(ctx context.Context) StageResult {
	t.Start()

	var documents []meeting.Document
	if err := source.ReadJSON(t.unstructuredFile, &documents); err != nil {
		return t.failure(err)
	}

	client, err := docstore.NewClient(ctx, t.mongoURI, t.dbName)
	if err != nil {
		return t.failure(sink.Errorf(sink.Documents, "connection failed: %w", err))
	}
	defer client.Close(ctx)

	loadResult := docstore.NewLoader(client).Run(ctx, documents)
	if !loadResult.Success {
		return t.failure(fmt.Errorf("%s", loadResult.Error))
	}

	return t.success(
		map[string]int{
			"transcripts": loadResult.TranscriptsCount,
			"summaries":   loadResult.SummariesCount,
		},
		nil,
	)
}

package tasks

import (
	"context"
	"fmt"

	"github.com/group2/meetingbank-etl/app/database"
	"github.com/group2/meetingbank-etl/app/meeting"
	"github.com/group2/meetingbank-etl/app/sink"
	"github.com/group2/meetingbank-etl/app/source"
)

// LoadRelationalTask loads facts, dimensions and agenda rows into the
// relational sink. The connection is released on every exit path.
type LoadRelationalTask struct {
	Task
	pgURL            string
	structuredFile   string
	citiesFile       string
	unstructuredFile string
}

func NewLoadRelationalTask(pgURL, structuredFile, citiesFile, unstructuredFile string) *LoadRelationalTask {
	return &LoadRelationalTask{
		Task:             NewTask(TaskTypeLoadRelational),
		pgURL:            pgURL,
		structuredFile:   structuredFile,
		citiesFile:       citiesFile,
		unstructuredFile: unstructuredFile,
	}
}

func (t *LoadRelationalTask) Execute(ctx context.Context) StageResult {
	t.Start()

	var facts []meeting.StructuredFact
	if err := source.ReadJSON(t.structuredFile, &facts); err != nil {
		return t.failure(err)
	}
	var cities []meeting.CityDimension
	if err := source.ReadJSON(t.citiesFile, &cities); err != nil {
		return t.failure(err)
	}
	var documents []meeting.Document
	if err := source.ReadJSON(t.unstructuredFile, &documents); err != nil {
		return t.failure(err)
	}

	db, err := database.NewConnection(t.pgURL)
	if err != nil {
		return t.failure(sink.Errorf(sink.Relational, "connection failed: %w", err))
	}
	defer db.Close()

	loadResult := database.NewRelationalLoader(db).Run(facts, cities, documents)
	if !loadResult.Success {
		return t.failure(fmt.Errorf("%s", loadResult.Error))
	}

	return t.success(
		map[string]int{
			"cities":   loadResult.CitiesCount,
			"meetings": loadResult.MeetingsCount,
			"agendas":  loadResult.AgendasCount,
		},
		nil,
	)
}

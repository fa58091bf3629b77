package database

// FactRow is a meetings-table row with the city resolved to the
// sink-assigned surrogate id.
type FactRow struct {
	MeetingID           string
	CityID              int
	MeetingDate         string
	Title               string
	DurationMin         int
	SpeakerCount        int
	TranscriptWordCount int
	SummaryWordCount    int
}

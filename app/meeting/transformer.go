package meeting

import (
	"fmt"
	"regexp"
	"strings"
)

// wordsPerMinute is the assumed average speaking rate used to estimate a
// meeting's duration from its transcript length.
const wordsPerMinute = 150

// maxTopicLength is the hard character cut applied to agenda topic text.
const maxTopicLength = 500

// maxShortSummaryLength is the hard character cut for the short summary form.
const maxShortSummaryLength = 200

// speakerPattern matches tokens that look like a capitalized name followed by
// a colon, e.g. "John Smith:". See EstimateSpeakers for its limitations.
var speakerPattern = regexp.MustCompile(`\b[A-Z][a-z]+\s*[A-Z]*[a-z]*:`)

// TransformOutput is the complete result of one transform run.
type TransformOutput struct {
	Facts       []StructuredFact
	Cities      []CityDimension
	Documents   []Document
	AgendaItems []AgendaItem
}

// Transformer derives quantitative features from validated records and
// builds the structured and document representations. Run is a pure function
// of its input batch: identical input yields identical output, including the
// dimension id assignment order.
type Transformer struct{}

func NewTransformer() *Transformer {
	return &Transformer{}
}

func (t *Transformer) Run(records []ValidatedRecord) TransformOutput {
	facts := make([]StructuredFact, 0, len(records))
	documents := make([]Document, 0, len(records))

	for _, record := range records {
		facts = append(facts, t.transformRecord(record))
		documents = append(documents, t.buildDocument(record))
	}

	return TransformOutput{
		Facts:       facts,
		Cities:      buildCityDimensions(facts),
		Documents:   documents,
		AgendaItems: FlattenAgendas(documents),
	}
}

func (t *Transformer) transformRecord(record ValidatedRecord) StructuredFact {
	return StructuredFact{
		MeetingID:           record.MeetingID,
		CityName:            record.City,
		MeetingDate:         record.Date,
		Title:               record.Title,
		DurationMin:         EstimateDuration(record.Transcript),
		SpeakerCount:        EstimateSpeakers(record.Transcript),
		TranscriptWordCount: CountWords(record.Transcript),
		SummaryWordCount:    CountWords(record.Summary),
	}
}

func (t *Transformer) buildDocument(record ValidatedRecord) Document {
	return Document{
		MeetingID:   record.MeetingID,
		CityName:    record.City,
		MeetingDate: record.Date,
		Transcript: TranscriptContent{
			FullText:  record.Transcript,
			WordCount: CountWords(record.Transcript),
		},
		Summary: SummaryContent{
			Full:      record.Summary,
			Short:     truncate(record.Summary, maxShortSummaryLength),
			WordCount: CountWords(record.Summary),
		},
		Agenda:   record.Agenda,
		Metadata: record.Metadata,
	}
}

// CountWords returns the number of whitespace-delimited tokens in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// EstimateDuration estimates a meeting's length in minutes from transcript
// word count at the assumed speaking rate, clamped to a minimum of 1.
func EstimateDuration(transcript string) int {
	duration := CountWords(transcript) / wordsPerMinute
	return max(1, duration)
}

// EstimateSpeakers counts distinct capitalized-name-colon patterns in the
// transcript. This is an accepted approximation: capitalized non-name phrases
// ending in a colon are counted as speakers (false positives), and speakers
// never introduced with a name label are missed (false negatives). The
// result is clamped to a minimum of 1.
func EstimateSpeakers(transcript string) int {
	matches := speakerPattern.FindAllString(transcript, -1)

	unique := make(map[string]bool, len(matches))
	for _, match := range matches {
		unique[match] = true
	}

	return max(1, len(unique))
}

// buildCityDimensions assigns 1-based surrogate ids to distinct city names in
// first-seen order. Ids are dense and contiguous within a run only; the
// relational sink assigns the authoritative ids on insertion.
func buildCityDimensions(facts []StructuredFact) []CityDimension {
	seen := make(map[string]bool)
	var cities []CityDimension

	for _, fact := range facts {
		if seen[fact.CityName] {
			continue
		}
		seen[fact.CityName] = true

		state, _ := RegionFor(fact.CityName)
		cities = append(cities, CityDimension{
			CityID:   len(cities) + 1,
			CityName: fact.CityName,
			State:    state,
		})
	}

	return cities
}

// FlattenAgendas derives agenda rows from the document representation, one
// per non-empty entry, numbered 1-based in source order. Meetings with an
// empty or absent agenda contribute nothing. Topic text is truncated here
// regardless of upstream truncation.
func FlattenAgendas(documents []Document) []AgendaItem {
	var items []AgendaItem

	for _, doc := range documents {
		for idx, entry := range doc.Agenda {
			topic := strings.TrimSpace(agendaTopicText(entry))
			if topic == "" {
				continue
			}
			items = append(items, AgendaItem{
				MeetingID:  doc.MeetingID,
				ItemNumber: idx + 1,
				Topic:      truncate(topic, maxTopicLength),
			})
		}
	}

	return items
}

// agendaTopicText extracts a printable topic from an agenda entry, which may
// be a plain string or a structured object keyed by topic, title or name.
func agendaTopicText(entry any) string {
	switch v := entry.(type) {
	case string:
		return v
	case map[string]any:
		for _, key := range []string{"topic", "title", "name"} {
			if text, ok := v[key].(string); ok && text != "" {
				return text
			}
		}
		return fmt.Sprintf("%v", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// truncate applies a hard character cut with no word-boundary trimming.
func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

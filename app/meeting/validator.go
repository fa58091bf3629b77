package meeting

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// standardizeFormats is the lenient set used to re-emit dates as YYYY-MM-DD
// before validation. schemaFormats is the stricter set the schema check
// accepts; a date that only matches the lenient set still fails validation.
var standardizeFormats = []string{"2006-01-02", "01/02/2006", "02-01-2006", "2006/01/02"}

var schemaFormats = []string{"2006-01-02", "01/02/2006", "02-01-2006"}

// Validator enforces the record schema and business rules. It is a pure
// transformation: no I/O, the caller owns persistence of its outputs.
type Validator struct {
	titleCaser cases.Caser
	now        func() time.Time
}

func NewValidator() *Validator {
	return &Validator{
		titleCaser: cases.Title(language.English),
		now:        time.Now,
	}
}

// Run deduplicates, normalizes and validates a raw batch. Valid records keep
// their input order (after deduplication); rejected records are reported in
// the order encountered. Duplicates are dropped silently and only counted.
func (v *Validator) Run(records []RawRecord) ([]ValidatedRecord, []RejectedRecord, QualityReport) {
	deduped := v.removeDuplicates(records)

	valid := make([]ValidatedRecord, 0, len(deduped))
	var rejected []RejectedRecord

	for idx, raw := range deduped {
		raw.Transcript = CleanText(raw.Transcript)
		raw.Summary = CleanText(raw.Summary)
		raw.Date = StandardizeDate(raw.Date)

		record, err := v.newValidatedRecord(raw)
		if err != nil {
			id := raw.MeetingID
			if id == "" {
				id = fmt.Sprintf("unknown_%d", idx)
			}
			rejected = append(rejected, RejectedRecord{MeetingID: id, Error: err.Error()})
			slog.Warn("Invalid meeting", "meeting_id", id, "error", err)
			continue
		}
		valid = append(valid, record)
	}

	report := Summarize(len(deduped), len(valid), rejected)

	return valid, rejected, report
}

// removeDuplicates drops later occurrences of an already-seen meeting id.
// Records without an id are passed through; the missing id is a validation
// failure, not a deduplication concern.
func (v *Validator) removeDuplicates(records []RawRecord) []RawRecord {
	seen := make(map[string]bool, len(records))
	unique := make([]RawRecord, 0, len(records))

	for _, record := range records {
		if record.MeetingID != "" {
			if seen[record.MeetingID] {
				continue
			}
			seen[record.MeetingID] = true
		}
		unique = append(unique, record)
	}

	if removed := len(records) - len(unique); removed > 0 {
		slog.Warn("Removed duplicate meetings", "count", removed)
	}

	return unique
}

// newValidatedRecord is the schema check: it either returns a record that
// satisfies every field constraint or an error aggregating all violations.
func (v *Validator) newValidatedRecord(raw RawRecord) (ValidatedRecord, error) {
	var violations []string

	if raw.MeetingID == "" {
		violations = append(violations, "meeting_id must not be empty")
	}

	city := v.titleCaser.String(CleanText(raw.City))
	if city == "" {
		violations = append(violations, "city must not be empty")
	}

	date, err := v.validateDate(raw.Date)
	if err != nil {
		violations = append(violations, err.Error())
	}

	if utf8.RuneCountInString(raw.Transcript) < 10 {
		violations = append(violations, "transcript must be at least 10 characters")
	}
	if utf8.RuneCountInString(raw.Summary) < 10 {
		violations = append(violations, "summary must be at least 10 characters")
	}

	if len(violations) > 0 {
		return ValidatedRecord{}, fmt.Errorf("%s", strings.Join(violations, "; "))
	}

	return ValidatedRecord{
		MeetingID:  raw.MeetingID,
		City:       city,
		Date:       date,
		Title:      raw.Title,
		Transcript: raw.Transcript,
		Summary:    raw.Summary,
		Agenda:     raw.Agenda,
		Metadata:   raw.Metadata,
	}, nil
}

// validateDate parses under the strict format set and rejects future dates.
// A date equal to the current date is accepted.
func (v *Validator) validateDate(value string) (string, error) {
	var parsed time.Time
	ok := false

	for _, format := range schemaFormats {
		if t, err := time.Parse(format, value); err == nil {
			parsed = t
			ok = true
			break
		}
	}

	if !ok {
		return "", fmt.Errorf("invalid date format: %q", value)
	}

	year, month, day := v.now().Date()
	today := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if parsed.After(today) {
		return "", fmt.Errorf("date cannot be in the future: %q", value)
	}

	return parsed.Format("2006-01-02"), nil
}

// CleanText collapses internal whitespace runs to single spaces and trims
// both ends.
func CleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// StandardizeDate re-emits the first successful parse as YYYY-MM-DD. A value
// matching no accepted format is returned unchanged so the schema check can
// fail it with the original input in the error message.
func StandardizeDate(value string) string {
	for _, format := range standardizeFormats {
		if t, err := time.Parse(format, value); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return value
}

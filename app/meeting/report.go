package meeting

import (
	"time"
)

// Summarize aggregates per-batch validation counts into a QualityReport.
// Rates are percentages; an empty batch reports a success rate of 0.
func Summarize(total, valid int, rejected []RejectedRecord) QualityReport {
	successRate := 0.0
	if total > 0 {
		successRate = float64(valid) / float64(total) * 100
	}

	return QualityReport{
		Timestamp:      time.Now(),
		TotalRecords:   total,
		ValidRecords:   valid,
		InvalidRecords: len(rejected),
		SuccessRate:    successRate,
		ErrorRate:      100 - successRate,
		Errors:         rejected,
	}
}

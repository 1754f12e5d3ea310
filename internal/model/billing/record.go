// Package billing tracks non-content metadata for completed relay turns.
//
// Records must never contain user text, model output, or anything derived
// from conversation content. Duration, session id, and model name only.
package billing

import (
	"math"
	"time"
)

// Record is the metadata written once per successfully completed turn.
type Record struct {
	SessionID       string  `json:"session_id"`
	DurationSeconds float64 `json:"duration_seconds"`
	Model           string  `json:"model"`
	Timestamp       string  `json:"timestamp"`
}

// NewRecord builds a record for a turn that took elapsed wall-clock time.
// Negative durations from clock anomalies clamp to zero; values round to
// two decimal places.
func NewRecord(sessionID string, elapsed time.Duration, model string) Record {
	seconds := elapsed.Seconds()
	if seconds < 0 {
		seconds = 0
	}

	return Record{
		SessionID:       sessionID,
		DurationSeconds: math.Round(seconds*100) / 100,
		Model:           model,
		Timestamp:       time.Now().UTC().Format("2006-01-02 15:04:05"),
	}
}

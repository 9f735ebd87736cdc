package model

import "time"

const (
	CheckStatusUp   = "up"
	CheckStatusDown = "down"
)

// CheckResult is the outcome of a single probe. Error is set iff Status is down.
type CheckResult struct {
	Timestamp      time.Time `json:"timestamp"`
	Status         string    `json:"status"`
	ResponseTimeMs int64     `json:"response_time_ms"`
	Error          string    `json:"error,omitempty"`
}

func (c CheckResult) IsUp() bool {
	return c.Status == CheckStatusUp
}

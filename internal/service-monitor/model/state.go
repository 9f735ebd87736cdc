package model

import (
	"math"
	"time"
)

const (
	ServiceStatusUnknown = "unknown"
	ServiceStatusUp      = "up"
	ServiceStatusDown    = "down"
)

const HistoryCapacity = 100

// ServiceState is the rolling health record of one monitored service.
type ServiceState struct {
	Status              string
	LastCheckAt         *time.Time
	LastSuccessAt       *time.Time
	FailingSince        *time.Time // first failure of the current streak
	TotalChecks         int
	SuccessfulChecks    int
	UptimePercent       float64
	ConsecutiveFailures int
	History             []CheckResult
}

func NewServiceState() ServiceState {
	return ServiceState{
		Status:  ServiceStatusUnknown,
		History: make([]CheckResult, 0, HistoryCapacity),
	}
}

// Apply records check into the state. The returned state shares no memory with s.
func (s ServiceState) Apply(check CheckResult) ServiceState {
	next := s.Clone()
	ts := check.Timestamp
	next.LastCheckAt = &ts
	next.TotalChecks++
	if check.IsUp() {
		next.Status = ServiceStatusUp
		next.LastSuccessAt = &ts
		next.SuccessfulChecks++
		next.ConsecutiveFailures = 0
		next.FailingSince = nil
	} else {
		next.Status = ServiceStatusDown
		next.ConsecutiveFailures++
		if next.FailingSince == nil {
			next.FailingSince = &ts
		}
	}
	next.UptimePercent = UptimePercent(next.SuccessfulChecks, next.TotalChecks)

	next.History = append(next.History, check)
	if over := len(next.History) - HistoryCapacity; over > 0 {
		next.History = append(next.History[:0:0], next.History[over:]...)
	}
	return next
}

// PreviousCheck returns the history entry before the newest one.
func (s ServiceState) PreviousCheck() (CheckResult, bool) {
	if len(s.History) < 2 {
		return CheckResult{}, false
	}
	return s.History[len(s.History)-2], true
}

func (s ServiceState) Clone() ServiceState {
	c := s
	c.LastCheckAt = cloneTime(s.LastCheckAt)
	c.LastSuccessAt = cloneTime(s.LastSuccessAt)
	c.FailingSince = cloneTime(s.FailingSince)
	c.History = make([]CheckResult, len(s.History), max(len(s.History), HistoryCapacity))
	copy(c.History, s.History)
	return c
}

// UptimePercent rounds successful/total to two decimals, 0 when nothing was checked.
func UptimePercent(successful, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(successful)/float64(total)*10000) / 100
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

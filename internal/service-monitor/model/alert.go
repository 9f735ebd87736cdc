package model

import "time"

const (
	AlertStatusDown      = "down"
	AlertStatusRecovered = "recovered"
)

type AlertEvent struct {
	ServiceID    string
	Service      string
	Status       string
	FailureCount int
	Error        string
	Uptime       float64
	Downtime     time.Duration
	Timestamp    time.Time
}

// Fields flattens the event into the raw key/value form sent alongside a rendered message.
func (a AlertEvent) Fields() map[string]interface{} {
	fields := map[string]interface{}{
		"service":    a.Service,
		"service_id": a.ServiceID,
		"status":     a.Status,
	}
	switch a.Status {
	case AlertStatusDown:
		fields["failure_count"] = a.FailureCount
		fields["error"] = a.Error
		fields["uptime"] = a.Uptime
	case AlertStatusRecovered:
		fields["downtime"] = a.Downtime.Milliseconds()
	}
	return fields
}

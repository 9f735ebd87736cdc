package alert

import (
	"Service_Monitor/internal/service-monitor/model"
	"fmt"
	"math"
	"strconv"
)

func FormatMessage(event model.AlertEvent) string {
	switch event.Status {
	case model.AlertStatusDown:
		return fmt.Sprintf("🚨 **%s** is DOWN\n"+
			"Consecutive failures: %d\n"+
			"Error: %s\n"+
			"Uptime: %s%%",
			event.Service,
			event.FailureCount,
			event.Error,
			strconv.FormatFloat(event.Uptime, 'f', -1, 64),
		)
	case model.AlertStatusRecovered:
		return fmt.Sprintf("✅ **%s** recovered\n"+
			"Downtime: %d minutes",
			event.Service,
			DowntimeMinutes(event),
		)
	default:
		return ""
	}
}

func FormatSubject(title string, event model.AlertEvent) string {
	switch event.Status {
	case model.AlertStatusDown:
		return fmt.Sprintf("[%s] %s is DOWN", title, event.Service)
	case model.AlertStatusRecovered:
		return fmt.Sprintf("[%s] %s recovered", title, event.Service)
	default:
		return fmt.Sprintf("[%s] %s", title, event.Service)
	}
}

func DowntimeMinutes(event model.AlertEvent) int64 {
	return int64(math.Round(float64(event.Downtime.Milliseconds()) / 60000))
}

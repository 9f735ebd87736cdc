package alert

import (
	"Service_Monitor/internal/service-monitor/model"
)

type Evaluator interface {
	// Evaluate inspects a state transition that has already been applied and returns
	// the alert it triggers, if any.
	Evaluate(service model.ServiceConfig, previous model.ServiceState, current model.ServiceState, check model.CheckResult) *model.AlertEvent
}

type evaluator struct {
	threshold int
}

func (e *evaluator) Evaluate(service model.ServiceConfig, previous model.ServiceState, current model.ServiceState, check model.CheckResult) *model.AlertEvent {
	// equality, not >=, so an episode alerts once at the crossing
	if current.ConsecutiveFailures == e.threshold {
		return &model.AlertEvent{
			ServiceID:    service.ID,
			Service:      service.Name,
			Status:       model.AlertStatusDown,
			FailureCount: current.ConsecutiveFailures,
			Error:        check.Error,
			Uptime:       current.UptimePercent,
			Timestamp:    check.Timestamp,
		}
	}

	if !check.IsUp() || current.ConsecutiveFailures != 0 || current.TotalChecks <= 1 {
		return nil
	}
	prev, ok := current.PreviousCheck()
	if !ok || prev.IsUp() {
		return nil
	}
	event := &model.AlertEvent{
		ServiceID: service.ID,
		Service:   service.Name,
		Status:    model.AlertStatusRecovered,
		Timestamp: check.Timestamp,
	}
	if previous.FailingSince != nil {
		event.Downtime = check.Timestamp.Sub(*previous.FailingSince)
	}
	return event
}

func NewEvaluator(threshold int) Evaluator {
	return &evaluator{
		threshold: threshold,
	}
}

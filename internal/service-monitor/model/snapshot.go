package model

type ServiceStatus struct {
	Config ServiceConfig
	State  ServiceState
}

type Summary struct {
	Total   int
	Up      int
	Down    int
	Unknown int
}

type Snapshot struct {
	Services []ServiceStatus
	Summary  Summary
}

func Summarize(services []ServiceStatus) Summary {
	summary := Summary{Total: len(services)}
	for _, s := range services {
		switch s.State.Status {
		case ServiceStatusUp:
			summary.Up++
		case ServiceStatusDown:
			summary.Down++
		default:
			summary.Unknown++
		}
	}
	return summary
}

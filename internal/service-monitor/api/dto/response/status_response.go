package response

import "time"

type CheckResponse struct {
	Timestamp      time.Time `json:"timestamp"`
	Status         string    `json:"status"`
	ResponseTimeMs int64     `json:"response_time_ms"`
	Error          string    `json:"error,omitempty"`
}

type ServiceStatusResponse struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Endpoint            string          `json:"endpoint"`
	TimeoutMs           int64           `json:"timeout_ms"`
	ExpectedStatus      int             `json:"expected_status"`
	Status              string          `json:"status"`
	LastCheck           *time.Time      `json:"last_check"`
	LastSuccess         *time.Time      `json:"last_success"`
	TotalChecks         int             `json:"total_checks"`
	SuccessfulChecks    int             `json:"successful_checks"`
	Uptime              float64         `json:"uptime"`
	ConsecutiveFailures int             `json:"consecutive_failures"`
	History             []CheckResponse `json:"history"`
}

type SummaryResponse struct {
	Total   int `json:"total"`
	Up      int `json:"up"`
	Down    int `json:"down"`
	Unknown int `json:"unknown"`
}

type StatusResponse struct {
	Title    string                  `json:"title"`
	Services []ServiceStatusResponse `json:"services"`
	Summary  SummaryResponse         `json:"summary"`
}

type HistoryResponse struct {
	ServiceID string          `json:"service_id"`
	History   []CheckResponse `json:"history"`
}

type HealthResponse struct {
	Status string  `json:"status"`
	Uptime float64 `json:"uptime"`
}

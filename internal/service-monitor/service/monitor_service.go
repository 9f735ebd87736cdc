package service

import (
	"Service_Monitor/internal/service-monitor/model"
	"Service_Monitor/internal/service-monitor/store"
	"context"
	"fmt"
	"time"
)

//go:generate mockgen -source=monitor_service.go -destination=../mocks/service/mock_monitor_service.go -package=mockservice
type MonitorService interface {
	// GetStatus returns every configured service merged with its current state, in configuration order.
	GetStatus(ctx context.Context) (model.Snapshot, error)
	GetHistory(ctx context.Context, serviceID string) ([]model.CheckResult, error)
	// Uptime reports how long the monitor process has been running.
	Uptime() time.Duration
}

type monitorService struct {
	services  []model.ServiceConfig
	store     store.StateStore
	startedAt time.Time
	now       func() time.Time
}

func (m *monitorService) GetStatus(ctx context.Context) (model.Snapshot, error) {
	statuses := make([]model.ServiceStatus, 0, len(m.services))
	for _, svc := range m.services {
		state, err := m.store.Get(svc.ID)
		if err != nil {
			return model.Snapshot{}, fmt.Errorf("MonitorService.GetStatus: %w", err)
		}
		statuses = append(statuses, model.ServiceStatus{
			Config: svc,
			State:  state,
		})
	}
	return model.Snapshot{
		Services: statuses,
		Summary:  model.Summarize(statuses),
	}, nil
}

func (m *monitorService) GetHistory(ctx context.Context, serviceID string) ([]model.CheckResult, error) {
	history, err := m.store.History(serviceID)
	if err != nil {
		return nil, fmt.Errorf("MonitorService.GetHistory: %w", err)
	}
	return history, nil
}

func (m *monitorService) Uptime() time.Duration {
	return m.now().Sub(m.startedAt)
}

func NewMonitorService(services []model.ServiceConfig, store store.StateStore, startedAt time.Time) MonitorService {
	return &monitorService{
		services:  services,
		store:     store,
		startedAt: startedAt,
		now:       time.Now,
	}
}

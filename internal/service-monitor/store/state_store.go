package store

import (
	apperrors "Service_Monitor/internal/service-monitor/errors"
	"Service_Monitor/internal/service-monitor/model"
	"fmt"
	"sync"
)

//go:generate mockgen -source=state_store.go -destination=../mocks/store/mock_state_store.go -package=mockstore

type StateStore interface {
	// Update applies check to the service's state and returns copies of the state
	// before and after the transition.
	Update(serviceID string, check model.CheckResult) (previous model.ServiceState, current model.ServiceState, err error)
	Get(serviceID string) (model.ServiceState, error)
	History(serviceID string) ([]model.CheckResult, error)
}

type stateStore struct {
	mu     sync.RWMutex
	states map[string]model.ServiceState
}

func (s *stateStore) Update(serviceID string, check model.CheckResult) (model.ServiceState, model.ServiceState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	previous, ok := s.states[serviceID]
	if !ok {
		return model.ServiceState{}, model.ServiceState{}, fmt.Errorf("StateStore.Update %s: %w", serviceID, apperrors.ErrServiceNotFound)
	}
	current := previous.Apply(check)
	s.states[serviceID] = current
	return previous.Clone(), current.Clone(), nil
}

func (s *stateStore) Get(serviceID string) (model.ServiceState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[serviceID]
	if !ok {
		return model.ServiceState{}, fmt.Errorf("StateStore.Get %s: %w", serviceID, apperrors.ErrServiceNotFound)
	}
	return state.Clone(), nil
}

func (s *stateStore) History(serviceID string) ([]model.CheckResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[serviceID]
	if !ok {
		return nil, fmt.Errorf("StateStore.History %s: %w", serviceID, apperrors.ErrServiceNotFound)
	}
	history := make([]model.CheckResult, len(state.History))
	copy(history, state.History)
	return history, nil
}

// NewStateStore registers one unknown state per service. Ids must be unique.
func NewStateStore(services []model.ServiceConfig) (StateStore, error) {
	states := make(map[string]model.ServiceState, len(services))
	for _, service := range services {
		if _, ok := states[service.ID]; ok {
			return nil, fmt.Errorf("NewStateStore %s: %w", service.ID, apperrors.ErrDuplicateServiceID)
		}
		states[service.ID] = model.NewServiceState()
	}
	return &stateStore{
		states: states,
	}, nil
}

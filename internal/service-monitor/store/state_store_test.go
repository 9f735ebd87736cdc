package store

import (
	apperrors "Service_Monitor/internal/service-monitor/errors"
	"Service_Monitor/internal/service-monitor/model"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testServices = []model.ServiceConfig{
	{ID: "crypto-tracker", Name: "Crypto Regulatory Tracker"},
	{ID: "ph-scraper", Name: "ProductHunt Scraper"},
}

func newTestStore(t *testing.T) StateStore {
	s, err := NewStateStore(testServices)
	require.NoError(t, err)
	return s
}

func TestNewStateStore(t *testing.T) {
	t.Run("initializes unknown states", func(t *testing.T) {
		s := newTestStore(t)
		for _, svc := range testServices {
			state, err := s.Get(svc.ID)
			require.NoError(t, err)
			assert.Equal(t, model.ServiceStatusUnknown, state.Status)
			assert.Zero(t, state.TotalChecks)
			assert.Zero(t, state.UptimePercent)
			assert.Nil(t, state.LastCheckAt)
			assert.Empty(t, state.History)
		}
	})
	t.Run("rejects duplicate ids", func(t *testing.T) {
		_, err := NewStateStore([]model.ServiceConfig{{ID: "a"}, {ID: "a"}})
		assert.ErrorIs(t, err, apperrors.ErrDuplicateServiceID)
	})
}

func TestStateStore_Update(t *testing.T) {
	s := newTestStore(t)
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	previous, current, err := s.Update("crypto-tracker", model.CheckResult{Timestamp: ts, Status: model.CheckStatusDown, Error: "ETIMEDOUT"})
	require.NoError(t, err)
	assert.Equal(t, model.ServiceStatusUnknown, previous.Status)
	assert.Equal(t, model.ServiceStatusDown, current.Status)
	assert.Equal(t, 1, current.ConsecutiveFailures)
	assert.Equal(t, ts, *current.LastCheckAt)

	previous, current, err = s.Update("crypto-tracker", model.CheckResult{Timestamp: ts.Add(time.Minute), Status: model.CheckStatusUp})
	require.NoError(t, err)
	assert.Equal(t, model.ServiceStatusDown, previous.Status)
	assert.Equal(t, model.ServiceStatusUp, current.Status)
	assert.Equal(t, 0, current.ConsecutiveFailures)
	assert.Equal(t, 50.0, current.UptimePercent)

	other, err := s.Get("ph-scraper")
	require.NoError(t, err)
	assert.Equal(t, model.ServiceStatusUnknown, other.Status, "updates must not leak across services")
}

func TestStateStore_UnknownService(t *testing.T) {
	s := newTestStore(t)

	_, _, err := s.Update("nonexistent-id", model.CheckResult{Status: model.CheckStatusUp})
	assert.ErrorIs(t, err, apperrors.ErrServiceNotFound)

	_, err = s.Get("nonexistent-id")
	assert.ErrorIs(t, err, apperrors.ErrServiceNotFound)

	history, err := s.History("nonexistent-id")
	assert.ErrorIs(t, err, apperrors.ErrServiceNotFound)
	assert.Nil(t, history)
}

func TestStateStore_HistoryEviction(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 1; i <= 101; i++ {
		_, _, err := s.Update("ph-scraper", model.CheckResult{Timestamp: base.Add(time.Duration(i) * time.Second), Status: model.CheckStatusUp})
		require.NoError(t, err)
	}

	history, err := s.History("ph-scraper")
	require.NoError(t, err)
	require.Len(t, history, 100)
	assert.Equal(t, base.Add(2*time.Second), history[0].Timestamp)
	assert.Equal(t, base.Add(101*time.Second), history[99].Timestamp)
}

func TestStateStore_ReadsAreCopies(t *testing.T) {
	s := newTestStore(t)
	_, _, err := s.Update("ph-scraper", model.CheckResult{Timestamp: time.Now(), Status: model.CheckStatusUp})
	require.NoError(t, err)

	history, err := s.History("ph-scraper")
	require.NoError(t, err)
	history[0].Status = model.CheckStatusDown

	state, err := s.Get("ph-scraper")
	require.NoError(t, err)
	assert.Equal(t, model.CheckStatusUp, state.History[0].Status)
}

func TestStateStore_ConcurrentReadsSeeConsistentState(t *testing.T) {
	s := newTestStore(t)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			status := model.CheckStatusUp
			if i%3 == 0 {
				status = model.CheckStatusDown
			}
			_, _, _ = s.Update("crypto-tracker", model.CheckResult{Timestamp: time.Now(), Status: status})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			state, err := s.Get("crypto-tracker")
			if !assert.NoError(t, err) {
				return
			}
			assert.LessOrEqual(t, state.SuccessfulChecks, state.TotalChecks)
			assert.Equal(t, min(state.TotalChecks, model.HistoryCapacity), len(state.History))
			if state.ConsecutiveFailures == 0 && state.TotalChecks > 0 {
				assert.NotEqual(t, model.ServiceStatusDown, state.Status)
			}
		}
	}()
	wg.Wait()
}

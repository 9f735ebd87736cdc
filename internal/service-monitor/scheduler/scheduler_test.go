package scheduler

import (
	"Service_Monitor/internal/service-monitor/alert"
	mocknotifier "Service_Monitor/internal/service-monitor/mocks/notifier"
	mockprober "Service_Monitor/internal/service-monitor/mocks/prober"
	mockpublisher "Service_Monitor/internal/service-monitor/mocks/publisher"
	mockstore "Service_Monitor/internal/service-monitor/mocks/store"
	"Service_Monitor/internal/service-monitor/model"
	"Service_Monitor/internal/service-monitor/store"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

var testServices = []model.ServiceConfig{
	{ID: "crypto-tracker", Name: "Crypto Regulatory Tracker", Endpoint: "https://crypto.example.com/health", Timeout: time.Second, ExpectedStatusCode: 200},
	{ID: "ph-scraper", Name: "ProductHunt Scraper", Endpoint: "https://ph.example.com/health", Timeout: time.Second, ExpectedStatusCode: 200},
}

type fixture struct {
	prober     *mockprober.MockProber
	dispatcher *mocknotifier.MockDispatcher
	publisher  *mockpublisher.MockCheckPublisher
	store      store.StateStore
}

func newFixture(t *testing.T, services []model.ServiceConfig) *fixture {
	ctrl := gomock.NewController(t)
	s, err := store.NewStateStore(services)
	require.NoError(t, err)
	return &fixture{
		prober:     mockprober.NewMockProber(ctrl),
		dispatcher: mocknotifier.NewMockDispatcher(ctrl),
		publisher:  mockpublisher.NewMockCheckPublisher(ctrl),
		store:      s,
	}
}

func (f *fixture) scheduler(services []model.ServiceConfig, opts Options) ServiceScheduler {
	return NewServiceScheduler(zap.NewNop(), services, f.prober, f.store, alert.NewEvaluator(3), f.dispatcher, f.publisher, opts)
}

func checkAt(status string, ts time.Time) model.CheckResult {
	c := model.CheckResult{Timestamp: ts, Status: status, ResponseTimeMs: 42}
	if status == model.CheckStatusDown {
		c.Error = "ETIMEDOUT"
	}
	return c
}

func TestServiceScheduler_RunCycle_AlertLifecycle(t *testing.T) {
	services := testServices[:1]
	f := newFixture(t, services)
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	gomock.InOrder(
		f.prober.EXPECT().Probe(gomock.Any(), services[0]).Return(checkAt(model.CheckStatusDown, base)),
		f.prober.EXPECT().Probe(gomock.Any(), services[0]).Return(checkAt(model.CheckStatusDown, base.Add(5*time.Minute))),
		f.prober.EXPECT().Probe(gomock.Any(), services[0]).Return(checkAt(model.CheckStatusDown, base.Add(10*time.Minute))),
		f.prober.EXPECT().Probe(gomock.Any(), services[0]).Return(checkAt(model.CheckStatusUp, base.Add(15*time.Minute))),
	)
	f.publisher.EXPECT().Publish(gomock.Any(), "crypto-tracker", gomock.Any()).Return(nil).Times(4)

	var events []model.AlertEvent
	f.dispatcher.EXPECT().Dispatch(gomock.Any()).Do(func(e model.AlertEvent) {
		events = append(events, e)
	}).Times(2)

	s := f.scheduler(services, Options{Mode: ModeInterval, Interval: time.Minute})
	for i := 0; i < 4; i++ {
		s.RunCycle(context.Background())
	}

	require.Len(t, events, 2)
	assert.Equal(t, model.AlertStatusDown, events[0].Status)
	assert.Equal(t, 3, events[0].FailureCount)
	assert.Equal(t, "ETIMEDOUT", events[0].Error)
	assert.Equal(t, model.AlertStatusRecovered, events[1].Status)
	assert.Equal(t, 15*time.Minute, events[1].Downtime)

	state, err := f.store.Get("crypto-tracker")
	require.NoError(t, err)
	assert.Equal(t, model.ServiceStatusUp, state.Status)
	assert.Equal(t, 4, state.TotalChecks)
	assert.Equal(t, 25.0, state.UptimePercent)
	assert.Len(t, state.History, 4)
}

func TestServiceScheduler_RunCycle_ChecksEveryServiceInOrder(t *testing.T) {
	f := newFixture(t, testServices)
	now := time.Now()
	gomock.InOrder(
		f.prober.EXPECT().Probe(gomock.Any(), testServices[0]).Return(checkAt(model.CheckStatusUp, now)),
		f.prober.EXPECT().Probe(gomock.Any(), testServices[1]).Return(checkAt(model.CheckStatusUp, now)),
	)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

	f.scheduler(testServices, Options{Interval: time.Minute}).RunCycle(context.Background())

	for _, svc := range testServices {
		state, err := f.store.Get(svc.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, state.TotalChecks)
	}
}

func TestServiceScheduler_RunCycle_PanicIsIsolated(t *testing.T) {
	f := newFixture(t, testServices)
	f.prober.EXPECT().Probe(gomock.Any(), testServices[0]).DoAndReturn(func(context.Context, model.ServiceConfig) model.CheckResult {
		panic("boom")
	})
	f.prober.EXPECT().Probe(gomock.Any(), testServices[1]).Return(checkAt(model.CheckStatusUp, time.Now()))
	f.publisher.EXPECT().Publish(gomock.Any(), "ph-scraper", gomock.Any()).Return(nil)

	s := f.scheduler(testServices, Options{Interval: time.Minute})
	assert.NotPanics(t, func() { s.RunCycle(context.Background()) })

	first, err := f.store.Get("crypto-tracker")
	require.NoError(t, err)
	assert.Equal(t, 0, first.TotalChecks)
	second, err := f.store.Get("ph-scraper")
	require.NoError(t, err)
	assert.Equal(t, 1, second.TotalChecks)
}

func TestServiceScheduler_RunCycle_PublishErrorIsNotFatal(t *testing.T) {
	f := newFixture(t, testServices)
	f.prober.EXPECT().Probe(gomock.Any(), gomock.Any()).Return(checkAt(model.CheckStatusUp, time.Now())).Times(2)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker unavailable")).Times(2)

	f.scheduler(testServices, Options{Interval: time.Minute}).RunCycle(context.Background())

	state, err := f.store.Get("ph-scraper")
	require.NoError(t, err)
	assert.Equal(t, 1, state.TotalChecks)
}

func TestServiceScheduler_RunCycle_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := mockprober.NewMockProber(ctrl)
	st := mockstore.NewMockStateStore(ctrl)
	d := mocknotifier.NewMockDispatcher(ctrl)
	pub := mockpublisher.NewMockCheckPublisher(ctrl)

	p.EXPECT().Probe(gomock.Any(), gomock.Any()).Return(checkAt(model.CheckStatusDown, time.Now())).Times(2)
	gomock.InOrder(
		st.EXPECT().Update("crypto-tracker", gomock.Any()).Return(model.ServiceState{}, model.ServiceState{}, errors.New("unknown service")),
		st.EXPECT().Update("ph-scraper", gomock.Any()).Return(model.NewServiceState(), model.NewServiceState(), nil),
	)
	pub.EXPECT().Publish(gomock.Any(), "ph-scraper", gomock.Any()).Return(nil)

	s := NewServiceScheduler(zap.NewNop(), testServices, p, st, alert.NewEvaluator(3), d, pub, Options{Interval: time.Minute})
	s.RunCycle(context.Background())
}

func TestServiceScheduler_RunCycle_StopsOnCanceledContext(t *testing.T) {
	f := newFixture(t, testServices)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f.scheduler(testServices, Options{Interval: time.Minute}).RunCycle(ctx)
}

func TestServiceScheduler_StartStop_Interval(t *testing.T) {
	f := newFixture(t, testServices[:1])
	var probes atomic.Int32
	f.prober.EXPECT().Probe(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, model.ServiceConfig) model.CheckResult {
		probes.Add(1)
		return checkAt(model.CheckStatusUp, time.Now())
	}).MinTimes(2)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.publisher.EXPECT().Close().Return(nil)
	f.dispatcher.EXPECT().Wait()

	s := f.scheduler(testServices[:1], Options{Mode: ModeInterval, Interval: 20 * time.Millisecond})
	require.NoError(t, s.Start())
	require.Eventually(t, func() bool { return probes.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
	s.Stop()

	stopped := probes.Load()
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, stopped, probes.Load(), "no cycles after Stop")

	// Stop is idempotent
	s.Stop()
}

func TestServiceScheduler_StartStop_Cron(t *testing.T) {
	f := newFixture(t, testServices[:1])
	ran := make(chan struct{}, 1)
	f.prober.EXPECT().Probe(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, model.ServiceConfig) model.CheckResult {
		select {
		case ran <- struct{}{}:
		default:
		}
		return checkAt(model.CheckStatusUp, time.Now())
	}).MinTimes(1)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.publisher.EXPECT().Close().Return(nil)
	f.dispatcher.EXPECT().Wait()

	s := f.scheduler(testServices[:1], Options{Mode: ModeCron, Interval: 5 * time.Minute})
	require.NoError(t, s.Start())
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("initial cycle did not run")
	}
	s.Stop()
}

func TestServiceScheduler_StartErrors(t *testing.T) {
	testCases := []struct {
		name string
		opts Options
	}{
		{"cron below one minute", Options{Mode: ModeCron, Interval: 30 * time.Second}},
		{"zero interval", Options{Mode: ModeInterval}},
		{"unknown mode", Options{Mode: "hourly", Interval: time.Minute}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, testServices)
			assert.Error(t, f.scheduler(testServices, tc.opts).Start())
		})
	}
}

func TestCronSpec(t *testing.T) {
	testCases := []struct {
		name     string
		interval time.Duration
		expected string
		wantErr  bool
	}{
		{name: "five minutes", interval: 5 * time.Minute, expected: "*/5 * * * *"},
		{name: "one minute", interval: time.Minute, expected: "*/1 * * * *"},
		{name: "remainder dropped", interval: 90 * time.Second, expected: "*/1 * * * *"},
		{name: "over an hour", interval: 90 * time.Minute, expected: "@every 90m"},
		{name: "sub minute", interval: 10 * time.Second, wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			spec, err := CronSpec(tc.interval)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, spec)
		})
	}
}

func TestServiceScheduler_RunCycle_ProbeInterruptedByShutdown(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := mockprober.NewMockProber(ctrl)
	st := mockstore.NewMockStateStore(ctrl)
	d := mocknotifier.NewMockDispatcher(ctrl)
	pub := mockpublisher.NewMockCheckPublisher(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.EXPECT().Probe(gomock.Any(), testServices[0]).DoAndReturn(func(context.Context, model.ServiceConfig) model.CheckResult {
		cancel()
		return model.CheckResult{Timestamp: time.Now(), Status: model.CheckStatusDown, ResponseTimeMs: 50, Error: "ECANCELED"}
	})
	// no Update, Dispatch or Publish expectations: any call fails the test

	s := NewServiceScheduler(zap.NewNop(), testServices, p, st, alert.NewEvaluator(1), d, pub, Options{Interval: time.Minute})
	s.RunCycle(ctx)
}

func TestServiceScheduler_Stop_DoesNotRecordAbortedProbe(t *testing.T) {
	f := newFixture(t, testServices[:1])
	started := make(chan struct{})
	f.prober.EXPECT().Probe(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, _ model.ServiceConfig) model.CheckResult {
		close(started)
		<-ctx.Done()
		return model.CheckResult{Timestamp: time.Now(), Status: model.CheckStatusDown, Error: "ECANCELED"}
	})
	f.publisher.EXPECT().Close().Return(nil)
	f.dispatcher.EXPECT().Wait()

	s := f.scheduler(testServices[:1], Options{Mode: ModeInterval, Interval: time.Hour})
	require.NoError(t, s.Start())
	<-started
	s.Stop()

	state, err := f.store.Get("crypto-tracker")
	require.NoError(t, err)
	assert.Equal(t, 0, state.TotalChecks)
	assert.Equal(t, model.ServiceStatusUnknown, state.Status)
}

package scheduler

import (
	"Service_Monitor/internal/service-monitor/alert"
	"Service_Monitor/internal/service-monitor/model"
	"Service_Monitor/internal/service-monitor/notifier"
	"Service_Monitor/internal/service-monitor/prober"
	"Service_Monitor/internal/service-monitor/publisher"
	"Service_Monitor/internal/service-monitor/store"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	ModeInterval = "interval"
	ModeCron     = "cron"

	publishTimeout = 5 * time.Second
)

type Options struct {
	Mode     string
	Interval time.Duration
}

type ServiceScheduler interface {
	// Start runs one cycle immediately and then one per interval until Stop is called.
	Start() error
	Stop()
	// RunCycle checks every service once, in order. Cycles never overlap.
	RunCycle(ctx context.Context)
}

type serviceScheduler struct {
	services   []model.ServiceConfig
	prober     prober.Prober
	store      store.StateStore
	evaluator  alert.Evaluator
	dispatcher notifier.Dispatcher
	publisher  publisher.CheckPublisher
	logger     *zap.Logger
	opts       Options

	cycleMu  sync.Mutex
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	cron     *cron.Cron
	stopOnce sync.Once
}

func (s *serviceScheduler) Start() error {
	switch s.opts.Mode {
	case ModeCron:
		spec, err := CronSpec(s.opts.Interval)
		if err != nil {
			return fmt.Errorf("serviceScheduler.Start: %w", err)
		}
		cl := &cronLogger{log: s.logger}
		s.cron = cron.New(cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)), cron.WithLogger(cl))
		if _, err = s.cron.AddFunc(spec, func() { s.RunCycle(s.ctx) }); err != nil {
			return fmt.Errorf("serviceScheduler.Start: %w", err)
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.RunCycle(s.ctx)
		}()
		s.cron.Start()
		s.logger.Info("scheduler started", zap.String("mode", ModeCron), zap.String("cron_spec", spec))
	case ModeInterval, "":
		if s.opts.Interval <= 0 {
			return fmt.Errorf("serviceScheduler.Start: invalid interval %s", s.opts.Interval)
		}
		s.wg.Add(1)
		go s.loop()
		s.logger.Info("scheduler started", zap.String("mode", ModeInterval), zap.Duration("interval", s.opts.Interval))
	default:
		return fmt.Errorf("serviceScheduler.Start: unknown schedule mode %q", s.opts.Mode)
	}
	return nil
}

func (s *serviceScheduler) loop() {
	defer s.wg.Done()
	s.RunCycle(s.ctx)
	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.RunCycle(s.ctx)
		case <-s.ctx.Done():
			return
		}
	}
}

// Stop cancels the schedule, waits for the running cycle and pending alert deliveries,
// and closes the check publisher.
func (s *serviceScheduler) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		if s.cron != nil {
			<-s.cron.Stop().Done()
		}
		s.wg.Wait()
		s.dispatcher.Wait()
		if err := s.publisher.Close(); err != nil {
			s.logger.Error("failed to close check publisher", zap.Error(fmt.Errorf("serviceScheduler.Stop: %w", err)))
		}
		s.logger.Info("scheduler stopped")
	})
}

func (s *serviceScheduler) RunCycle(ctx context.Context) {
	s.cycleMu.Lock()
	defer s.cycleMu.Unlock()

	cycleID := uuid.NewString()
	start := time.Now()
	s.logger.Info("running health checks", zap.String("cycle_id", cycleID), zap.Int("services", len(s.services)))
	for _, service := range s.services {
		if ctx.Err() != nil {
			s.logger.Warn("cycle interrupted", zap.String("cycle_id", cycleID), zap.Error(ctx.Err()))
			return
		}
		s.checkService(ctx, service, cycleID)
	}
	s.logger.Info("health checks finished", zap.String("cycle_id", cycleID), zap.Duration("elapsed", time.Since(start)))
}

// checkService runs probe, update, evaluate and publish for one service. Any panic stays here.
func (s *serviceScheduler) checkService(ctx context.Context, service model.ServiceConfig, cycleID string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("health check panicked",
				zap.Any("panic", r),
				zap.String("service_id", service.ID),
				zap.String("cycle_id", cycleID),
			)
		}
	}()

	check := s.prober.Probe(ctx, service)
	if ctx.Err() != nil {
		// aborted by shutdown, not a verdict on the service
		s.logger.Warn("health check aborted", zap.String("service_id", service.ID), zap.String("cycle_id", cycleID), zap.Error(ctx.Err()))
		return
	}
	previous, current, err := s.store.Update(service.ID, check)
	if err != nil {
		err = fmt.Errorf("serviceScheduler.checkService: %w", err)
		s.logger.Error("failed to update service state", zap.Error(err), zap.String("service_id", service.ID), zap.String("cycle_id", cycleID))
		return
	}
	if event := s.evaluator.Evaluate(service, previous, current, check); event != nil {
		s.logger.Warn("alert triggered",
			zap.String("service_id", service.ID),
			zap.String("alert_status", event.Status),
			zap.Int("consecutive_failures", current.ConsecutiveFailures),
			zap.String("cycle_id", cycleID),
		)
		s.dispatcher.Dispatch(*event)
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	if err = s.publisher.Publish(pubCtx, service.ID, check); err != nil {
		err = fmt.Errorf("serviceScheduler.checkService: %w", err)
		s.logger.Error("failed to publish check result", zap.Error(err), zap.String("service_id", service.ID), zap.String("cycle_id", cycleID))
	}
	cancel()

	s.logger.Info("service checked",
		zap.String("service_id", service.ID),
		zap.String("service_name", service.Name),
		zap.String("status", check.Status),
		zap.Int64("response_time_ms", check.ResponseTimeMs),
		zap.String("error", check.Error),
		zap.Float64("uptime", current.UptimePercent),
		zap.String("cycle_id", cycleID),
	)
}

// CronSpec converts an interval into a minute-granularity cron expression. Sub-minute
// remainders are dropped.
func CronSpec(interval time.Duration) (string, error) {
	minutes := int(interval / time.Minute)
	if minutes < 1 {
		return "", fmt.Errorf("CronSpec: interval %s is shorter than one minute", interval)
	}
	if minutes > 59 {
		return fmt.Sprintf("@every %dm", minutes), nil
	}
	return fmt.Sprintf("*/%d * * * *", minutes), nil
}

func NewServiceScheduler(
	logger *zap.Logger,
	services []model.ServiceConfig,
	prober prober.Prober,
	store store.StateStore,
	evaluator alert.Evaluator,
	dispatcher notifier.Dispatcher,
	publisher publisher.CheckPublisher,
	opts Options,
) ServiceScheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &serviceScheduler{
		services:   services,
		prober:     prober,
		store:      store,
		evaluator:  evaluator,
		dispatcher: dispatcher,
		publisher:  publisher,
		logger:     logger,
		opts:       opts,
		ctx:        ctx,
		cancel:     cancel,
	}
}

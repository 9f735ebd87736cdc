package notifier

import (
	"Service_Monitor/internal/service-monitor/model"
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

//go:generate mockgen -source=notifier.go -destination=../mocks/notifier/mock_notifier.go -package=mocknotifier

type Notifier interface {
	Name() string
	Send(ctx context.Context, event model.AlertEvent) error
}

// Dispatcher delivers alerts off the caller's goroutine. Delivery failures are logged and
// never reported back.
type Dispatcher interface {
	Dispatch(event model.AlertEvent)
	// Wait blocks until every in-flight delivery has returned.
	Wait()
}

type dispatcher struct {
	notifiers []Notifier
	timeout   time.Duration
	logger    *zap.Logger
	wg        sync.WaitGroup
}

func (d *dispatcher) Dispatch(event model.AlertEvent) {
	if len(d.notifiers) == 0 {
		return
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for _, n := range d.notifiers {
			d.send(n, event)
		}
	}()
}

// send bounds a single notifier by the dispatcher timeout.
func (d *dispatcher) send(n Notifier, event model.AlertEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("notifier panicked", zap.String("notifier", n.Name()), zap.Any("panic", r))
		}
	}()
	if err := n.Send(ctx, event); err != nil {
		err = fmt.Errorf("dispatcher.send: %w", err)
		d.logger.Error("failed to send alert",
			zap.Error(err),
			zap.String("notifier", n.Name()),
			zap.String("service_id", event.ServiceID),
			zap.String("alert_status", event.Status),
		)
		return
	}
	d.logger.Info("alert sent",
		zap.String("notifier", n.Name()),
		zap.String("service_id", event.ServiceID),
		zap.String("alert_status", event.Status),
	)
}

func (d *dispatcher) Wait() {
	d.wg.Wait()
}

func NewDispatcher(logger *zap.Logger, timeout time.Duration, notifiers ...Notifier) Dispatcher {
	return &dispatcher{
		notifiers: notifiers,
		timeout:   timeout,
		logger:    logger,
	}
}

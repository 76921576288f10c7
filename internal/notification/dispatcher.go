package notification

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type DeliveryOutcome string

const (
	OutcomeQueued  DeliveryOutcome = "queued"
	OutcomeDropped DeliveryOutcome = "dropped"
	OutcomeFailed  DeliveryOutcome = "failed"
)

type Notification struct {
	Event     Event
	Recipient string
	Context   TemplateContext
}

// Dispatcher delivers transactional mail from a bounded queue with a fixed
// worker pool. Enqueue never blocks and never surfaces transport errors: a
// full queue drops the message with a log line, a failed send is logged as a
// non-fatal outcome. Callers therefore stay durable even when mail is down.
type Dispatcher struct {
	mailer  Mailer
	queue   chan Notification
	wg      sync.WaitGroup
	mu      sync.Mutex
	closed  bool
	timeout time.Duration
	logger  *zap.Logger
}

func NewDispatcher(mailer Mailer, queueSize, workers int, logger ...*zap.Logger) *Dispatcher {
	l := zap.L().Named("notification.dispatcher")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.dispatcher")
	}
	if queueSize <= 0 {
		queueSize = 128
	}
	if workers <= 0 {
		workers = 4
	}

	d := &Dispatcher{
		mailer:  mailer,
		queue:   make(chan Notification, queueSize),
		timeout: 15 * time.Second,
		logger:  l,
	}

	d.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go d.worker()
	}

	return d
}

// Enqueue hands a notification to the pool. Returns OutcomeQueued or, when
// the queue is full or the dispatcher is shutting down, OutcomeDropped.
func (d *Dispatcher) Enqueue(n Notification) DeliveryOutcome {
	// The send happens under the same lock Close takes before closing the
	// channel, so a concurrent Close can never close queue mid-send.
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		d.logger.Warn("notification dropped, dispatcher closing",
			zap.String("event", string(n.Event)),
			zap.String("recipient", n.Recipient),
		)
		return OutcomeDropped
	}

	select {
	case d.queue <- n:
		return OutcomeQueued
	default:
		d.logger.Warn("notification dropped, queue full",
			zap.String("event", string(n.Event)),
			zap.String("recipient", n.Recipient),
		)
		return OutcomeDropped
	}
}

// Close stops intake and drains the queue before returning.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for n := range d.queue {
		d.deliver(n)
	}
}

func (d *Dispatcher) deliver(n Notification) {
	subject, body, ok := Compose(n.Event, n.Context)
	if !ok {
		d.logger.Error("no template for event, dropping",
			zap.String("event", string(n.Event)),
		)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := d.mailer.Send(ctx, n.Recipient, subject, body); err != nil {
		d.logger.Warn("notification delivery failed",
			zap.String("event", string(n.Event)),
			zap.String("recipient", n.Recipient),
			zap.String("outcome", string(OutcomeFailed)),
			zap.Error(err),
		)
		return
	}

	d.logger.Info("notification delivered",
		zap.String("event", string(n.Event)),
		zap.String("recipient", n.Recipient),
	)
}

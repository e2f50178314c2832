// Package notifications delivers order events to interested parties after
// the write transaction has committed. Delivery is asynchronous and must
// never fail the operation that produced the event.
package notifications

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"shipping/internal/core/application/usecases/queries"
)

// Publisher sends a serialized event to the message broker.
type Publisher interface {
	Publish(ctx context.Context, key string, payload []byte) error
}

// Mailer sends a rendered notification email.
type Mailer interface {
	Send(ctx context.Context, to string, subject string, body string) error
}

// Metrics groups the collectors the dispatcher reports into.
type Metrics struct {
	Enqueued   prometheus.Counter
	Published  prometheus.Counter
	Failed     prometheus.Counter
	QueueDepth prometheus.Gauge
}

// Dispatcher fans order events out to the broker and to the assigned
// deliveryman's mailbox. Events are buffered on a channel and processed
// by a single worker; publish failures are parked in a retry buffer
// that a scheduled job flushes.
type Dispatcher struct {
	publisher Publisher
	mailer    Mailer
	logger    *slog.Logger
	metrics   Metrics

	queue chan queries.OrderView

	mu      sync.Mutex
	closed  bool
	retries []queries.OrderView

	wg sync.WaitGroup
}

// NewDispatcher creates a dispatcher with the given queue capacity and
// starts its worker.
func NewDispatcher(
	publisher Publisher,
	mailer Mailer,
	queueSize int,
	metrics Metrics,
	logger *slog.Logger,
) *Dispatcher {
	d := &Dispatcher{
		publisher: publisher,
		mailer:    mailer,
		logger:    logger.With("component", "notification_dispatcher"),
		metrics:   metrics,
		queue:     make(chan queries.OrderView, queueSize),
	}

	d.wg.Add(1)
	go d.run()

	return d
}

// EnqueueOrderCreated hands an order view to the dispatcher without
// blocking the caller. When the queue is full the view is parked in the
// retry buffer instead of being dropped.
func (d *Dispatcher) EnqueueOrderCreated(view queries.OrderView) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		d.logger.Warn("Notification dropped: dispatcher is closed", "order_id", view.ID)
		return
	}

	d.metrics.Enqueued.Inc()

	select {
	case d.queue <- view:
		d.metrics.QueueDepth.Set(float64(len(d.queue)))
	default:
		d.retries = append(d.retries, view)
		d.logger.Warn("Notification queue full, parked for retry", "order_id", view.ID)
	}
}

// FlushRetries re-attempts delivery of every parked notification.
// It returns the number of notifications that remain parked.
func (d *Dispatcher) FlushRetries(ctx context.Context) int {
	d.mu.Lock()
	parked := d.retries
	d.retries = nil
	d.mu.Unlock()

	var failed []queries.OrderView
	for _, view := range parked {
		if err := d.deliver(ctx, view); err != nil {
			failed = append(failed, view)
		}
	}

	if len(failed) > 0 {
		d.mu.Lock()
		d.retries = append(d.retries, failed...)
		d.mu.Unlock()
	}
	return len(failed)
}

// Close drains the queue and stops the worker. Further enqueues are
// logged and dropped.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.mu.Unlock()

	close(d.queue)
	d.wg.Wait()
}

func (d *Dispatcher) run() {
	defer d.wg.Done()

	for view := range d.queue {
		d.metrics.QueueDepth.Set(float64(len(d.queue)))

		if err := d.deliver(context.Background(), view); err != nil {
			d.mu.Lock()
			d.retries = append(d.retries, view)
			d.mu.Unlock()
		}
	}
}

// deliver publishes the broker event and, when an active deliveryman is
// assigned, sends the pickup email. Only the broker publish is retried;
// email failures are logged and forgotten.
func (d *Dispatcher) deliver(ctx context.Context, view queries.OrderView) error {
	event := NewOrderCreatedEvent(view, time.Now())

	payload, err := json.Marshal(event)
	if err != nil {
		d.logger.ErrorContext(ctx, "Failed to serialize order event", "order_id", view.ID, "error", err)
		d.metrics.Failed.Inc()
		return err
	}

	if err := d.publisher.Publish(ctx, event.OrderID, payload); err != nil {
		d.logger.ErrorContext(ctx, "Failed to publish order event", "order_id", view.ID, "error", err)
		d.metrics.Failed.Inc()
		return err
	}
	d.metrics.Published.Inc()

	d.sendEmail(ctx, view)
	return nil
}

func (d *Dispatcher) sendEmail(ctx context.Context, view queries.OrderView) {
	deliveryman := view.Deliveryman
	if deliveryman == nil || deliveryman.Email == "" || deliveryman.CanceledAt != nil {
		return
	}

	body, err := RenderOrderCreatedEmail(view)
	if err != nil {
		d.logger.ErrorContext(ctx, "Failed to render pickup email", "order_id", view.ID, "error", err)
		return
	}

	if err := d.mailer.Send(ctx, deliveryman.Email, OrderCreatedEmailSubject, body); err != nil {
		d.logger.ErrorContext(ctx, "Failed to send pickup email",
			"order_id", view.ID, "to", deliveryman.Email, "error", err)
	}
}

// LogMailer writes outgoing mail to the log instead of an SMTP relay.
// Used in environments without a configured mail transport.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger.With("component", "log_mailer")}
}

func (m *LogMailer) Send(ctx context.Context, to string, subject string, body string) error {
	m.logger.InfoContext(ctx, "Outgoing mail", "to", to, "subject", subject, "body", body)
	return nil
}

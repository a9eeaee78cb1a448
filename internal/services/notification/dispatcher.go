package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Phronesis2025/wcs-basketball-go/internal/model"
)

// Sender delivers one notification to the outside world (email templating
// and sending live behind this seam, outside the core).
type Sender interface {
	Send(ctx context.Context, n model.Notification) error
}

// Dispatcher accepts notification events from registration transitions.
// Enqueue must never block the transition or report delivery failure back
// into it; the transition is committed by the time the event reaches here.
type Dispatcher interface {
	Enqueue(n model.Notification)
}

// Config holds configuration for the queue dispatcher
type Config struct {
	// QueueSize bounds the pending event buffer
	QueueSize int
	// MaxAttempts bounds delivery retries per event
	MaxAttempts int
	// RetryDelay is the pause between delivery attempts
	RetryDelay time.Duration
	// SendTimeout bounds each individual delivery attempt
	SendTimeout time.Duration
}

// DefaultConfig returns sensible defaults for the dispatcher
func DefaultConfig() Config {
	return Config{
		QueueSize:   256,
		MaxAttempts: 3,
		RetryDelay:  2 * time.Second,
		SendTimeout: 10 * time.Second,
	}
}

// Queue is an asynchronous Dispatcher backed by a single worker goroutine.
// Delivery failures are retried up to the bound and then logged and dropped;
// they never roll back into the state change that emitted them.
type Queue struct {
	sender Sender
	cfg    Config
	logger *slog.Logger

	events chan model.Notification
	done   chan struct{}
	wg     sync.WaitGroup
}

// NewQueue creates a new queue dispatcher
func NewQueue(sender Sender, cfg Config, logger *slog.Logger) *Queue {
	if cfg.QueueSize == 0 {
		cfg = DefaultConfig()
	}
	return &Queue{
		sender: sender,
		cfg:    cfg,
		logger: logger,
		events: make(chan model.Notification, cfg.QueueSize),
		done:   make(chan struct{}),
	}
}

// Ensure Queue implements the interface
var _ Dispatcher = (*Queue)(nil)

// Run starts the delivery worker. Call once, typically from a goroutine.
func (q *Queue) Run() {
	q.wg.Add(1)
	defer q.wg.Done()

	for {
		select {
		case n := <-q.events:
			q.deliver(n)
		case <-q.done:
			// Drain whatever is already queued before stopping
			for {
				select {
				case n := <-q.events:
					q.deliver(n)
				default:
					return
				}
			}
		}
	}
}

// Stop shuts the worker down after draining the queue
func (q *Queue) Stop() {
	close(q.done)
	q.wg.Wait()
}

// Enqueue queues an event for delivery. A full queue drops the event with a
// log line rather than blocking the caller.
func (q *Queue) Enqueue(n model.Notification) {
	select {
	case q.events <- n:
	default:
		q.logger.Error("notification queue full, event dropped",
			slog.String("event", string(n.Event)),
			slog.String("player_id", string(n.PlayerID)),
		)
	}
}

func (q *Queue) deliver(n model.Notification) {
	var lastErr error
	for attempt := 1; attempt <= q.cfg.MaxAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), q.cfg.SendTimeout)
		err := q.sender.Send(ctx, n)
		cancel()

		if err == nil {
			q.logger.Info("notification delivered",
				slog.String("event", string(n.Event)),
				slog.String("player_id", string(n.PlayerID)),
				slog.Int("attempt", attempt),
			)
			return
		}

		lastErr = err
		if attempt < q.cfg.MaxAttempts {
			time.Sleep(q.cfg.RetryDelay)
		}
	}

	q.logger.Error("notification delivery failed, giving up",
		slog.String("event", string(n.Event)),
		slog.String("player_id", string(n.PlayerID)),
		slog.Int("attempts", q.cfg.MaxAttempts),
		slog.String("error", lastErr.Error()),
	)
}

// LogSender is a Sender that only logs. It stands in for the real email
// dispatcher in development and tests.
type LogSender struct {
	Logger *slog.Logger
}

// Send logs the notification and reports success
func (s LogSender) Send(ctx context.Context, n model.Notification) error {
	s.Logger.Info("notification",
		slog.String("event", string(n.Event)),
		slog.String("player_id", string(n.PlayerID)),
		slog.String("guardian_id", string(n.GuardianID)),
		slog.String("reason", n.Reason),
	)
	return nil
}

var _ Sender = LogSender{}

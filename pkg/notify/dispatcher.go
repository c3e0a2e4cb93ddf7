package notify

import (
	"context"
	"expvar"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Message is a single outbound notification.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sink delivers one message. Implementations may block; the dispatcher bounds each call with
// its send timeout.
type Sink interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, to, subject, body string) error

func (f SinkFunc) Send(ctx context.Context, to, subject, body string) error {
	return f(ctx, to, subject, body)
}

// Counters published under /debug/vars.
var stats = expvar.NewMap("notifications")

// Dispatcher fans messages out to a Sink from a fixed worker pool fed by a bounded queue.
type Dispatcher struct {
	sink    Sink
	logger  *logrus.Logger
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	queue  chan Message
	wg     sync.WaitGroup
}

func NewDispatcher(sink Sink, logger *logrus.Logger, queueSize, workers int, timeout time.Duration) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 256
	}
	if workers <= 0 {
		workers = 1
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	d := &Dispatcher{
		sink:    sink,
		logger:  logger,
		timeout: timeout,
		queue:   make(chan Message, queueSize),
	}
	d.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go d.work()
	}
	return d
}

// Notify enqueues m without blocking. It returns false when the message was dropped because the
// queue is full or the dispatcher is closed.
func (d *Dispatcher) Notify(m Message) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		stats.Add("dropped", 1)
		return false
	}
	select {
	case d.queue <- m:
		stats.Add("queued", 1)
		return true
	default:
		stats.Add("dropped", 1)
		if d.logger != nil {
			d.logger.WithFields(logrus.Fields{"to": m.To, "subject": m.Subject}).Warn("notification queue full, dropping message")
		}
		return false
	}
}

// Close stops intake and waits for queued messages to drain or ctx to expire.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) work() {
	defer d.wg.Done()
	for m := range d.queue {
		d.deliver(m)
	}
}

func (d *Dispatcher) deliver(m Message) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	if err := d.sink.Send(ctx, m.To, m.Subject, m.Body); err != nil {
		stats.Add("failed", 1)
		if d.logger != nil {
			d.logger.WithError(err).WithFields(logrus.Fields{"to": m.To, "subject": m.Subject}).Error("notification delivery failed")
		}
		return
	}
	stats.Add("sent", 1)
}

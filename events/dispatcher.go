package events

import (
	"context"
	"log"
	"sync"
	"time"
)

const (
	defaultQueueSize      = 256
	defaultPublishTimeout = 5 * time.Second
)

type namedPublisher struct {
	name string
	pub  Publisher
}

// Dispatcher hands each event to its publishers. Sync publishers run on the
// caller's goroutine before Dispatch returns; async publishers run on a
// single background worker in event order. Publisher errors are logged and
// reported, never returned to the store.
type Dispatcher struct {
	sync  []namedPublisher
	async []namedPublisher

	queue   chan Event
	wg      sync.WaitGroup
	once    sync.Once
	mu      sync.RWMutex // guards closed against the queue send
	closed  bool
	timeout time.Duration
	onError func(name string, err error)
}

type DispatcherOption func(*Dispatcher)

// WithQueueSize bounds the async queue. Non-positive sizes keep the default.
func WithQueueSize(n int) DispatcherOption {
	return func(d *Dispatcher) {
		if n > 0 {
			d.queue = make(chan Event, n)
		}
	}
}

// WithPublishTimeout bounds each Publish call. Non-positive values keep the
// default.
func WithPublishTimeout(timeout time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

// WithErrorHandler receives every publisher failure, e.g. to forward it to
// Sentry.
func WithErrorHandler(fn func(name string, err error)) DispatcherOption {
	return func(d *Dispatcher) { d.onError = fn }
}

func NewDispatcher(opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		queue:   make(chan Event, defaultQueueSize),
		timeout: defaultPublishTimeout,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// AddSync registers a publisher that must observe the event before the
// mutation's caller continues.
func (d *Dispatcher) AddSync(name string, p Publisher) {
	d.sync = append(d.sync, namedPublisher{name: name, pub: p})
}

// AddAsync registers a publisher that may lag behind the store.
func (d *Dispatcher) AddAsync(name string, p Publisher) {
	d.async = append(d.async, namedPublisher{name: name, pub: p})
}

// Dispatch is the store notifier. Register publishers before the store is
// used. After Close, async publishers no longer receive events.
func (d *Dispatcher) Dispatch(e Event) {
	for _, np := range d.sync {
		d.publish(np, e)
	}
	if len(d.async) == 0 {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		log.Printf("Dispatcher closed, dropping %s for client %s", e.Kind, e.ClientID())
		return
	}
	select {
	case d.queue <- e:
	default:
		log.Printf("Event queue full, dropping %s for client %s", e.Kind, e.ClientID())
	}
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for e := range d.queue {
		for _, np := range d.async {
			d.publish(np, e)
		}
	}
}

func (d *Dispatcher) publish(np namedPublisher, e Event) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	if err := np.pub.Publish(ctx, e); err != nil {
		log.Printf("Failed to publish %s to %s: %v", e.Kind, np.name, err)
		if d.onError != nil {
			d.onError(np.name, err)
		}
	}
}

// Close drains the queue and waits for the worker. Later Dispatch calls only
// reach the sync publishers.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		d.mu.Lock()
		d.closed = true
		close(d.queue)
		d.mu.Unlock()
		d.wg.Wait()
	})
}

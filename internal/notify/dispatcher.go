package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pkordes/mileage-logbook/internal/domain"
)

// DefaultTimeout bounds a single delivery.
const DefaultTimeout = 5 * time.Second

// DeliveryIDHeader carries a unique id per webhook delivery so receivers can
// discard duplicates.
const DeliveryIDHeader = "X-Delivery-ID"

// ErrDelivery wraps every failed webhook delivery.
var ErrDelivery = errors.New("notify: delivery failed")

// Sink receives every trip event regardless of the webhook settings.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// Dispatcher implements service.Notifier.
type Dispatcher struct {
	client  *http.Client
	timeout time.Duration
	sinks   []Sink
	logger  *slog.Logger
	now     func() time.Time

	wg sync.WaitGroup
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithSink adds a sink that receives every event.
func WithSink(s Sink) Option {
	return func(d *Dispatcher) { d.sinks = append(d.sinks, s) }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(d *Dispatcher) { d.client = c }
}

// WithClock replaces time.Now for event timestamps.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) { d.now = now }
}

// NewDispatcher returns a Dispatcher whose deliveries give up after timeout.
// A non-positive timeout means DefaultTimeout.
func NewDispatcher(timeout time.Duration, logger *slog.Logger, opts ...Option) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	d := &Dispatcher{
		client:  &http.Client{},
		timeout: timeout,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Notify announces trip in the background and returns immediately.
// The webhook fires only when settings enable it with a URL; extra sinks
// always receive the event. The delivery outlives ctx's cancellation but
// keeps its values (request id).
func (d *Dispatcher) Notify(ctx context.Context, trip domain.Trip, settings domain.Settings) {
	webhook := settings.WebhookActive()
	if !webhook && len(d.sinks) == 0 {
		return
	}

	event := NewEvent(trip, settings.MileageRate, d.now())
	ctx = context.WithoutCancel(ctx)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(ctx, d.timeout)
		defer cancel()

		var g errgroup.Group
		if webhook {
			g.Go(func() error {
				d.report(ctx, "webhook", trip.ID, d.Deliver(ctx, settings.WebhookURL, event))
				return nil
			})
		}
		for _, s := range d.sinks {
			g.Go(func() error {
				d.report(ctx, fmt.Sprintf("%T", s), trip.ID, s.Publish(ctx, event))
				return nil
			})
		}
		_ = g.Wait()
	}()
}

func (d *Dispatcher) report(ctx context.Context, sink string, tripID int64, err error) {
	if err != nil {
		d.logger.WarnContext(ctx, "trip notification dropped", "sink", sink, "trip_id", tripID, "error", err)
		return
	}
	d.logger.DebugContext(ctx, "trip notification delivered", "sink", sink, "trip_id", tripID)
}

// Deliver POSTs event to url once and reports the outcome. Any transport
// error or non-2xx status is an ErrDelivery.
func (d *Dispatcher) Deliver(ctx context.Context, url string, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("notify.Deliver: marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(DeliveryIDHeader, uuid.NewString())

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s responded %d", ErrDelivery, url, resp.StatusCode)
	}
	return nil
}

// Wait blocks until every in-flight notification has finished or ctx is done.
func (d *Dispatcher) Wait(ctx context.Context) error {
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

package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DRSN-tech/solar-store/internal/domain"
	"github.com/DRSN-tech/solar-store/internal/store"
	"github.com/DRSN-tech/solar-store/pkg/logger"
	"github.com/segmentio/kafka-go"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

type fakeWriter struct {
	mu       sync.Mutex
	failures []error
	calls    int
	written  []ChangeEvent
	sent     chan struct{}
}

func newFakeWriter(failures ...error) *fakeWriter {
	return &fakeWriter{failures: failures, sent: make(chan struct{}, 16)}
}

func (f *fakeWriter) Write(_ context.Context, ev ChangeEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if len(f.failures) > 0 {
		err := f.failures[0]
		f.failures = f.failures[1:]
		f.sent <- struct{}{}
		return err
	}

	f.written = append(f.written, ev)
	f.sent <- struct{}{}
	return nil
}

func (f *fakeWriter) snapshot() (int, []ChangeEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls, append([]ChangeEvent(nil), f.written...)
}

func waitCalls(t *testing.T, w *fakeWriter, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-w.sent:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for write #%d", i+1)
		}
	}
}

func fastPublisher(w eventWriter, buffer, retries int) *Publisher {
	p := NewPublisher(w, logger.Nop(), buffer, retries)
	p.baseBackoff = time.Millisecond
	p.maxBackoff = 2 * time.Millisecond
	return p
}

func addEvent(id int64) store.Event {
	return store.Event{
		Op:        store.OpAddToCart,
		ProductID: id,
		State: store.State{
			Products: make([]domain.Product, 6),
			Cart:     make([]domain.CartItem, 1),
		},
	}
}

func TestPublisherDelivers(t *testing.T) {
	w := newFakeWriter()
	p := fastPublisher(w, 8, 3)
	p.Start(context.Background())
	defer p.Stop()

	p.Observe(addEvent(2))
	waitCalls(t, w, 1)

	_, written := w.snapshot()
	if len(written) != 1 {
		t.Fatalf("expected 1 event, got %d", len(written))
	}
	if written[0].Op != store.OpAddToCart || written[0].ProductID != 2 || written[0].CartLines != 1 || written[0].CatalogSize != 6 {
		t.Fatalf("unexpected event: %+v", written[0])
	}
}

func TestPublisherRetriesTemporaryFailures(t *testing.T) {
	w := newFakeWriter(errors.New("dial tcp: connection refused"), errors.New("i/o timeout"))
	p := fastPublisher(w, 8, 5)
	p.Start(context.Background())
	defer p.Stop()

	p.Observe(addEvent(1))
	waitCalls(t, w, 3)

	calls, written := w.snapshot()
	if calls != 3 || len(written) != 1 {
		t.Fatalf("expected 3 calls and 1 delivered event, got %d and %d", calls, len(written))
	}
}

func TestPublisherDropsOnPermanentFailure(t *testing.T) {
	w := newFakeWriter(errors.New("message too large"))
	p := fastPublisher(w, 8, 5)
	p.Start(context.Background())

	p.Observe(addEvent(1))
	waitCalls(t, w, 1)
	p.Stop()

	if calls, written := w.snapshot(); calls != 1 || len(written) != 0 {
		t.Fatalf("permanent failure must not be retried: calls=%d written=%d", calls, len(written))
	}
}

func TestPublisherGivesUpAfterMaxRetries(t *testing.T) {
	refused := errors.New("connection refused")
	w := newFakeWriter(refused, refused, refused, refused)
	p := fastPublisher(w, 8, 2)
	p.Start(context.Background())

	p.Observe(addEvent(1))
	waitCalls(t, w, 3)
	p.Stop()

	if calls, _ := w.snapshot(); calls != 3 {
		t.Fatalf("expected 1 attempt + 2 retries, got %d calls", calls)
	}
}

func TestPublisherDropsWhenQueueFull(t *testing.T) {
	w := newFakeWriter()
	p := fastPublisher(w, 1, 0)

	p.Observe(addEvent(1))
	p.Observe(addEvent(2))
	p.Observe(addEvent(3))

	if p.Dropped() != 2 {
		t.Fatalf("expected 2 dropped events, got %d", p.Dropped())
	}

	p.Start(context.Background())
	p.Stop()

	_, written := w.snapshot()
	if len(written) != 1 || written[0].ProductID != 1 {
		t.Fatalf("queued event must be flushed on stop, got %+v", written)
	}

	p.Observe(addEvent(4))
	if len(p.queue) != 0 {
		t.Fatal("stopped publisher must ignore new events")
	}
}

// liveCtxWriter отклоняет запись с отменённым контекстом, как настоящий kafka.Writer.
type liveCtxWriter struct {
	*fakeWriter
}

func (w liveCtxWriter) Write(ctx context.Context, ev ChangeEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return w.fakeWriter.Write(ctx, ev)
}

func TestPublisherFlushesAfterStartContextCanceled(t *testing.T) {
	w := newFakeWriter()
	p := fastPublisher(liveCtxWriter{w}, 8, 0)

	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)
	cancel()

	p.Observe(addEvent(1))
	p.Observe(addEvent(2))
	p.Stop()

	calls, written := w.snapshot()
	if calls != 2 || len(written) != 2 {
		t.Fatalf("expected both events written, got calls=%d written=%d", calls, len(written))
	}
	if len(p.queue) != 0 {
		t.Fatalf("queue must be empty after stop, %d left", len(p.queue))
	}
}

func TestPublisherFlushesEventInBackoffOnStop(t *testing.T) {
	w := newFakeWriter(errors.New("dial tcp: connection refused"))
	p := fastPublisher(w, 8, 5)
	p.baseBackoff = time.Minute
	p.maxBackoff = time.Minute

	p.Start(context.Background())
	p.Observe(addEvent(7))
	waitCalls(t, w, 1)
	p.Stop()

	calls, written := w.snapshot()
	if calls != 2 || len(written) != 1 || written[0].ProductID != 7 {
		t.Fatalf("event waiting for retry must get a last attempt on stop, got calls=%d written=%+v", calls, written)
	}
}

func TestChangeEventEncoding(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	ev := NewChangeEvent(store.Event{Op: store.OpClearCart, State: store.State{Products: make([]domain.Product, 3)}}, at)

	if string(ev.Key()) != "clear_cart" {
		t.Fatalf("event without product must be keyed by op, got %q", ev.Key())
	}

	raw, err := ev.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded structpb.Struct
	if err := proto.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	fields := decoded.AsMap()
	if fields["op"] != "clear_cart" || fields["catalog_size"] != float64(3) || fields["cart_lines"] != float64(0) {
		t.Fatalf("unexpected payload: %v", fields)
	}
	if fields["occurred_at"] != "2026-01-02T03:04:05Z" || fields["event_id"] != ev.ID {
		t.Fatalf("unexpected payload: %v", fields)
	}

	keyed := NewChangeEvent(addEvent(42), at)
	if string(keyed.Key()) != "42" {
		t.Fatalf("expected key 42, got %q", keyed.Key())
	}
}

type recordingMessageWriter struct {
	msgs   []kafka.Message
	closed bool
}

func (r *recordingMessageWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	r.msgs = append(r.msgs, msgs...)
	return nil
}

func (r *recordingMessageWriter) Close() error {
	r.closed = true
	return nil
}

func TestProducerWrite(t *testing.T) {
	mw := &recordingMessageWriter{}
	p := &Producer{writer: mw, logger: logger.Nop()}

	ev := NewChangeEvent(addEvent(5), time.Now())
	if err := p.Write(context.Background(), ev); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if len(mw.msgs) != 1 || string(mw.msgs[0].Key) != "5" || len(mw.msgs[0].Value) == 0 {
		t.Fatalf("unexpected messages: %+v", mw.msgs)
	}

	if err := p.Close(context.Background()); err != nil || !mw.closed {
		t.Fatal("Close must close the writer")
	}
}

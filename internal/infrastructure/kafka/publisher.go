package kafka

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/DRSN-tech/solar-store/internal/store"
	"github.com/DRSN-tech/solar-store/pkg/jitter"
	"github.com/DRSN-tech/solar-store/pkg/logger"
)

const (
	defaultBaseBackoff = 100 * time.Millisecond
	defaultMaxBackoff  = 5 * time.Second
	flushTimeout       = 5 * time.Second
)

type eventWriter interface {
	Write(ctx context.Context, ev ChangeEvent) error
}

// Publisher переносит события стора в Kafka. Observe не блокирует владельца стора:
// событие кладётся в ограниченную очередь, при переполнении отбрасывается.
type Publisher struct {
	writer     eventWriter
	logger     logger.Logger
	queue      chan ChangeEvent
	maxRetries int
	now        func() time.Time

	baseBackoff time.Duration
	maxBackoff  time.Duration

	stopped  atomic.Bool
	dropped  atomic.Int64
	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewPublisher(writer eventWriter, logger logger.Logger, bufferSize, maxRetries int) *Publisher {
	if bufferSize <= 0 {
		bufferSize = 1
	}

	return &Publisher{
		writer:      writer,
		logger:      logger,
		queue:       make(chan ChangeEvent, bufferSize),
		maxRetries:  maxRetries,
		now:         time.Now,
		baseBackoff: defaultBaseBackoff,
		maxBackoff:  defaultMaxBackoff,
		stop:        make(chan struct{}),
	}
}

// Observe реализует store.Observer.
func (p *Publisher) Observe(ev store.Event) {
	if p.stopped.Load() {
		return
	}

	select {
	case p.queue <- NewChangeEvent(ev, p.now()):
	default:
		n := p.dropped.Add(1)
		p.logger.Warnf("Kafka event queue is full, dropping %s (dropped total: %d)", ev.Op, n)
	}
}

// Dropped возвращает число событий, отброшенных из-за переполнения очереди.
func (p *Publisher) Dropped() int64 {
	return p.dropped.Load()
}

// Start запускает отправку. Отмена ctx не останавливает воркер: очередь
// дописывается только через Stop.
func (p *Publisher) Start(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.run(ctx)
	}()
}

// Stop прекращает приём событий и отправляет то, что уже в очереди, одной попыткой.
func (p *Publisher) Stop() {
	p.stopOnce.Do(func() {
		p.stopped.Store(true)
		close(p.stop)
	})
	p.wg.Wait()
}

// Close вызывает Stop, сигнатура совместима с closer.Func.
func (p *Publisher) Close(_ context.Context) error {
	p.Stop()
	return nil
}

func (p *Publisher) run(ctx context.Context) {
	for {
		select {
		case ev := <-p.queue:
			p.publish(ctx, ev)
		case <-p.stop:
			p.flush(nil)
			return
		}
	}
}

// flush отправляет pending и остаток очереди одной попыткой каждое.
func (p *Publisher) flush(pending *ChangeEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	if pending != nil {
		p.writeOnce(ctx, *pending)
	}

	for {
		select {
		case ev := <-p.queue:
			p.writeOnce(ctx, ev)
		default:
			return
		}
	}
}

func (p *Publisher) writeOnce(ctx context.Context, ev ChangeEvent) {
	if err := p.writer.Write(ctx, ev); err != nil {
		p.logger.Warnf("Kafka flush failed for %s: %v", ev.Op, err)
	}
}

func (p *Publisher) publish(ctx context.Context, ev ChangeEvent) {
	for attempt := 0; ; attempt++ {
		err := p.writer.Write(ctx, ev)
		if err == nil {
			return
		}

		if !isRetryableError(err) {
			p.logger.Errorf(err, "Permanent Kafka failure, event %s dropped", ev.ID)
			return
		}
		if attempt >= p.maxRetries {
			p.logger.Errorf(err, "Kafka retries exhausted after %d attempts, event %s dropped", attempt+1, ev.ID)
			return
		}

		wait := jitter.ExponentialBackoff(p.baseBackoff, p.maxBackoff, attempt, jitter.DefaultJitter)
		p.logger.Debugf("Temporary Kafka failure, retry #%d in %v: %v", attempt+1, wait, err)

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-p.stop:
			timer.Stop()
			p.flush(&ev)
			return
		}
	}
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	retryablePhrases := []string{
		"connection refused",
		"i/o timeout",
		"network is unreachable",
		"broker not available",
		"leader not available",
		"connection reset",
		"broken pipe",
		"no such host",
	}
	for _, phrase := range retryablePhrases {
		if strings.Contains(errStr, phrase) {
			return true
		}
	}
	return false
}

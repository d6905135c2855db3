// Package closer закрывает ресурсы приложения в обратном порядке регистрации.
package closer

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

const defaultForcedTimeout = 2 * time.Second

// Func — сигнатура функции закрытия ресурса.
type Func func(ctx context.Context) error

type entry struct {
	name string
	fn   Func
}

// Closer обеспечивает потокобезопасное закрытие ресурсов.
type Closer struct {
	mu            sync.Mutex
	entries       []entry
	once          sync.Once
	err           error
	forcedTimeout time.Duration
}

// NewCloser создает новый экземпляр Closer.
// forcedTimeout: время на принудительное закрытие оставшихся ресурсов, если ctx в Close истёк.
func NewCloser(forcedTimeout time.Duration) *Closer {
	if forcedTimeout <= 0 {
		forcedTimeout = defaultForcedTimeout
	}

	return &Closer{forcedTimeout: forcedTimeout}
}

// Add регистрирует ресурс. Имя попадает в текст ошибки.
func (c *Closer) Add(name string, f Func) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, entry{name: name, fn: f})
}

// Close закрывает ресурсы по одному в порядке LIFO. Если ctx истекает раньше,
// оставшиеся ресурсы закрываются параллельно с собственным таймаутом.
// Повторные вызовы возвращают результат первого.
func (c *Closer) Close(ctx context.Context) error {
	c.once.Do(func() {
		c.mu.Lock()
		entries := append([]entry(nil), c.entries...)
		c.mu.Unlock()

		closed, errs := c.gracefulClose(ctx, entries)
		if closed == len(entries) {
			if len(errs) > 0 {
				c.err = fmt.Errorf("shutdown finished with error(s):\n%s", strings.Join(errs, "\n"))
			}
			return
		}

		remaining := entries[:len(entries)-closed]
		errs = append(errs, c.forcedClose(remaining)...)

		c.err = fmt.Errorf(
			"shutdown interrupted after %d/%d funcs:\n%s",
			closed,
			len(entries),
			strings.Join(errs, "\n"),
		)
	})

	return c.err
}

// gracefulClose возвращает число закрытых ресурсов (с конца списка) и ошибки.
func (c *Closer) gracefulClose(ctx context.Context, entries []entry) (int, []string) {
	var errs []string

	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		done := make(chan error, 1)

		go func() {
			done <- e.fn(ctx)
		}()

		select {
		case err := <-done:
			if err != nil {
				errs = append(errs, fmt.Sprintf("[!] %s: %v", e.name, err))
			}
		case <-ctx.Done():
			// ресурс i не успел закрыться и попадёт в принудительное закрытие
			return len(entries) - 1 - i, errs
		}
	}

	return len(entries), errs
}

func (c *Closer) forcedClose(entries []entry) []string {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []string
	)

	ctx, cancel := context.WithTimeout(context.Background(), c.forcedTimeout)
	defer cancel()

	for _, e := range entries {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := e.fn(ctx); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Sprintf("[FORCED] %s: %v", e.name, err))
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	return errs
}

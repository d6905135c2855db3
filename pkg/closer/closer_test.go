package closer

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestCloseLIFO(t *testing.T) {
	c := NewCloser(0)

	var order []string
	for _, name := range []string{"db", "cache", "http"} {
		c.Add(name, func(context.Context) error {
			order = append(order, name)
			return nil
		})
	}

	if err := c.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if strings.Join(order, ",") != "http,cache,db" {
		t.Fatalf("expected LIFO order, got %v", order)
	}

	if err := c.Close(context.Background()); err != nil || len(order) != 3 {
		t.Fatal("second Close must be a no-op")
	}
}

func TestCloseCollectsErrors(t *testing.T) {
	c := NewCloser(0)
	c.Add("redis", func(context.Context) error { return errors.New("boom") })
	c.Add("http", func(context.Context) error { return nil })

	err := c.Close(context.Background())
	if err == nil || !strings.Contains(err.Error(), "[!] redis: boom") {
		t.Fatalf("expected named error, got %v", err)
	}
}

func TestCloseForcesRemainingOnTimeout(t *testing.T) {
	c := NewCloser(time.Second)

	var (
		mu     sync.Mutex
		forced []string
	)
	c.Add("first", func(ctx context.Context) error {
		mu.Lock()
		defer mu.Unlock()
		forced = append(forced, "first")
		return nil
	})
	c.Add("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := c.Close(ctx)
	if err == nil || !strings.Contains(err.Error(), "interrupted after 0/2") {
		t.Fatalf("expected interrupted shutdown, got %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(forced) != 1 {
		t.Fatalf("remaining resources must be force-closed, got %v", forced)
	}
}

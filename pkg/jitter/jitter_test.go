package jitter

import (
	"testing"
	"time"
)

func TestDurationBounds(t *testing.T) {
	for i := 0; i < 100; i++ {
		got := Duration(100*time.Millisecond, DefaultJitter)
		if got < 100*time.Millisecond || got > 150*time.Millisecond {
			t.Fatalf("duration %v out of [100ms, 150ms]", got)
		}
	}

	if got := Duration(time.Second, 0); got != time.Second {
		t.Fatalf("zero factor must not change duration, got %v", got)
	}
}

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 100 * time.Millisecond},
		{1, 200 * time.Millisecond},
		{3, 800 * time.Millisecond},
		{10, time.Second},
	}

	for _, tt := range tests {
		if got := ExponentialBackoff(100*time.Millisecond, time.Second, tt.attempt, 0); got != tt.want {
			t.Errorf("attempt %d: got %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestWithRandUsesSource(t *testing.T) {
	if got := withRand(time.Second, 0.5, func() float64 { return 1 }); got != 1500*time.Millisecond {
		t.Fatalf("expected 1.5s, got %v", got)
	}
}

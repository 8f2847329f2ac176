package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStore_CountsWithinWindow(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for want := 1; want <= 3; want++ {
		got, err := s.Incr(ctx, "ip:route", time.Minute)
		if err != nil {
			t.Fatalf("incr: %v", err)
		}
		if got != want {
			t.Errorf("count = %d, want %d", got, want)
		}
	}
}

func TestMemoryStore_KeysAreIndependent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, err := s.Incr(ctx, "a", time.Minute); err != nil {
		t.Fatalf("incr: %v", err)
	}
	got, err := s.Incr(ctx, "b", time.Minute)
	if err != nil {
		t.Fatalf("incr: %v", err)
	}
	if got != 1 {
		t.Errorf("count for fresh key = %d, want 1", got)
	}
}

func TestMemoryStore_WindowResets(t *testing.T) {
	now := time.Now()
	s := NewMemoryStore()
	s.now = func() time.Time { return now }
	ctx := context.Background()

	s.Incr(ctx, "k", time.Minute)
	s.Incr(ctx, "k", time.Minute)

	// Past the reset boundary the counter starts over.
	now = now.Add(time.Minute + time.Second)
	got, err := s.Incr(ctx, "k", time.Minute)
	if err != nil {
		t.Fatalf("incr: %v", err)
	}
	if got != 1 {
		t.Errorf("count after window lapse = %d, want 1", got)
	}
}

func TestMemoryStore_SweepDropsLapsedWindows(t *testing.T) {
	now := time.Now()
	s := NewMemoryStore()
	s.now = func() time.Time { return now }
	ctx := context.Background()

	s.Incr(ctx, "old", time.Minute)
	now = now.Add(2 * time.Minute)
	s.Incr(ctx, "fresh", time.Minute)

	if err := s.Sweep(ctx); err != nil {
		t.Fatalf("sweep: %v", err)
	}

	if _, ok := s.windows["old"]; ok {
		t.Error("lapsed window survived sweep")
	}
	if _, ok := s.windows["fresh"]; !ok {
		t.Error("live window dropped by sweep")
	}
}

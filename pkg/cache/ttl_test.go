package cache

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestTTLCache_Expiry(t *testing.T) {
	c := NewTTL[string, int](time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set("a", 1)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("Get(a) = %d, %v", v, ok)
	}

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get("a"); ok {
		t.Error("expected entry to expire")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry not evicted, len %d", c.Len())
	}
}

func TestMemory_Cache(t *testing.T) {
	ctx := context.Background()
	var c Cache = NewMemory(time.Minute, 0)

	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrMiss) {
		t.Fatalf("Get on empty cache = %v, want ErrMiss", err)
	}
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := c.Get(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Fatalf("Get = %q, %v", got, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrMiss) {
		t.Errorf("Get after Delete = %v, want ErrMiss", err)
	}
}

func TestTTLCache_SweepDropsUnreadEntries(t *testing.T) {
	c := NewTTL[string, int](time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	for i := 0; i < 100; i++ {
		c.Set(fmt.Sprintf("k%d", i), i)
	}
	c.SetWithTTL("long", 1, time.Hour)

	now = now.Add(2 * time.Minute)
	if removed := c.Sweep(); removed != 100 {
		t.Errorf("Sweep removed %d, want 100", removed)
	}
	if c.Len() != 1 {
		t.Errorf("len after sweep = %d, want 1", c.Len())
	}
	if _, ok := c.Get("long"); !ok {
		t.Error("unexpired entry was swept")
	}
}

func TestTTLCache_RunSweepsInBackground(t *testing.T) {
	c := NewTTL[string, int](time.Millisecond)
	c.Set("a", 1)
	c.Set("b", 2)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx, 5*time.Millisecond)

	deadline := time.Now().Add(2 * time.Second)
	for c.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("entries never swept, len %d", c.Len())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestTTLCache_CostBound(t *testing.T) {
	tests := []struct {
		name    string
		maxCost int64
		sets    []int64 // cost of each insert, keyed k0..kn
		wantLen int
		want    []string
	}{
		{"fits", 10, []int64{3, 3, 3}, 3, []string{"k0", "k1", "k2"}},
		{"evicts oldest", 10, []int64{4, 4, 4}, 2, []string{"k1", "k2"}},
		{"evicts several", 10, []int64{3, 3, 3, 9}, 1, []string{"k3"}},
		{"too large is dropped", 10, []int64{2, 11}, 1, []string{"k0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewBoundedTTL[string, int64](time.Minute, tt.maxCost, func(v int64) int64 { return v })
			now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
			c.now = func() time.Time { return now }

			for i, cost := range tt.sets {
				c.Set(fmt.Sprintf("k%d", i), cost)
				now = now.Add(time.Second)
			}

			if c.Len() != tt.wantLen {
				t.Errorf("len = %d, want %d", c.Len(), tt.wantLen)
			}
			if c.Cost() > tt.maxCost {
				t.Errorf("cost = %d, over budget %d", c.Cost(), tt.maxCost)
			}
			for _, k := range tt.want {
				if _, ok := c.Get(k); !ok {
					t.Errorf("%s missing", k)
				}
			}
		})
	}
}

func TestTTLCache_CostBoundPrefersExpired(t *testing.T) {
	c := NewBoundedTTL[string, int64](time.Minute, 10, func(v int64) int64 { return v })
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.SetWithTTL("fresh", 4, time.Hour)
	c.SetWithTTL("stale", 4, time.Second)
	now = now.Add(time.Minute)

	c.Set("new", 4)
	if _, ok := c.Get("fresh"); !ok {
		t.Error("live entry evicted while an expired one was held")
	}
	if c.Cost() != 8 {
		t.Errorf("cost = %d, want 8", c.Cost())
	}
}

func TestMemory_ByteBudget(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute, 1024)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m.c.now = func() time.Time { return now }

	body := make([]byte, 100)
	for i := 0; i < 1000; i++ {
		if err := m.Set(ctx, fmt.Sprintf("tmdb:/discover/movie?page=%d", i), body, 0); err != nil {
			t.Fatalf("Set: %v", err)
		}
		now = now.Add(time.Millisecond)
	}

	if got := m.c.Cost(); got > 1024 {
		t.Errorf("held %d bytes, budget 1024", got)
	}
	if m.c.Len() != 10 {
		t.Errorf("len = %d, want 10", m.c.Len())
	}
	if _, err := m.Get(ctx, "tmdb:/discover/movie?page=999"); err != nil {
		t.Errorf("latest entry missing: %v", err)
	}
	if _, err := m.Get(ctx, "tmdb:/discover/movie?page=0"); !errors.Is(err, ErrMiss) {
		t.Errorf("oldest entry = %v, want ErrMiss", err)
	}
}

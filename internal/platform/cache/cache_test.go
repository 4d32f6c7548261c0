package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestGetMissing(t *testing.T) {
	c := New(time.Minute)
	if _, ok := c.Get("nope"); ok {
		t.Fatalf("expected miss for absent key")
	}
}

func TestSetGet(t *testing.T) {
	c := New(time.Minute)
	c.Set("hibp_user@example.com", []string{"Adobe"})
	v, ok := c.Get("hibp_user@example.com")
	if !ok {
		t.Fatalf("expected hit")
	}
	got, ok := v.([]string)
	if !ok || len(got) != 1 || got[0] != "Adobe" {
		t.Fatalf("unexpected value: %#v", v)
	}
}

func TestExpiry(t *testing.T) {
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	now := func() time.Time { return clock }
	c := NewWithClock(10*time.Minute, now)

	c.Set("k", 42)

	clock = clock.Add(9*time.Minute + 59*time.Second)
	if _, ok := c.Get("k"); !ok {
		t.Fatalf("expected hit just before ttl")
	}

	clock = clock.Add(time.Second)
	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected miss at ttl boundary")
	}
	if c.Len() != 0 {
		t.Fatalf("expected expired entry to be evicted, len=%d", c.Len())
	}
}

func TestSetResetsTTL(t *testing.T) {
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewWithClock(10*time.Minute, func() time.Time { return clock })

	c.Set("k", "v1")
	clock = clock.Add(8 * time.Minute)
	c.Set("k", "v2")
	clock = clock.Add(8 * time.Minute)

	v, ok := c.Get("k")
	if !ok || v != "v2" {
		t.Fatalf("expected refreshed entry, got %v ok=%v", v, ok)
	}
}

func TestDelete(t *testing.T) {
	c := New(time.Minute)
	c.Set("k", 1)
	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected miss after delete")
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New(time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d", j%8)
				c.Set(key, n)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()
}

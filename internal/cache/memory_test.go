package cache

import (
	"sync"
	"testing"
	"time"
)

func TestMemoryBasicOperations(t *testing.T) {
	m := NewMemory[int](time.Minute)

	m.Set("answer", 42)

	got, ok := m.Get("answer")
	if !ok || got != 42 {
		t.Fatalf("expected 42, got %d ok=%v", got, ok)
	}

	if _, ok := m.Get("missing"); ok {
		t.Fatal("expected miss for absent key")
	}
}

func TestMemorySetOverwrites(t *testing.T) {
	m := NewMemory[string](time.Minute)

	m.Set("key", "first")
	m.Set("key", "second")

	got, ok := m.Get("key")
	if !ok || got != "second" {
		t.Fatalf("expected unconditional overwrite, got %q ok=%v", got, ok)
	}
}

func TestMemoryTTLExpiry(t *testing.T) {
	m := NewMemory[int](100 * time.Millisecond)

	m.Set("key", 1)

	if _, ok := m.Get("key"); !ok {
		t.Fatal("value should be retrievable before TTL elapses")
	}

	time.Sleep(150 * time.Millisecond)

	if _, ok := m.Get("key"); ok {
		t.Fatal("value should be absent after TTL elapses")
	}
}

func TestMemorySetWithTTL(t *testing.T) {
	m := NewMemory[int](time.Minute)

	m.SetWithTTL("short", 1, 50*time.Millisecond)
	m.Set("long", 2)

	time.Sleep(80 * time.Millisecond)

	if _, ok := m.Get("short"); ok {
		t.Error("short-TTL entry should have expired")
	}

	if _, ok := m.Get("long"); !ok {
		t.Error("default-TTL entry should still be present")
	}
}

func TestMemoryRemove(t *testing.T) {
	m := NewMemory[int](time.Minute)

	m.Set("key", 7)

	got, ok := m.Remove("key")
	if !ok || got != 7 {
		t.Fatalf("expected removed value 7, got %d ok=%v", got, ok)
	}

	if _, ok := m.Remove("key"); ok {
		t.Fatal("removing an absent key should report false")
	}
}

func TestMemoryStatsAndCleanup(t *testing.T) {
	m := NewMemory[int](time.Minute)

	m.Set("active", 1)
	m.SetWithTTL("stale-1", 2, time.Nanosecond)
	m.SetWithTTL("stale-2", 3, time.Nanosecond)

	time.Sleep(time.Millisecond)

	stats := m.Stats()
	if stats.Total != 3 || stats.Active != 1 || stats.Expired != 2 {
		t.Fatalf("unexpected stats before cleanup: %+v", stats)
	}

	if removed := m.CleanupExpired(); removed != 2 {
		t.Fatalf("expected 2 swept entries, got %d", removed)
	}

	stats = m.Stats()
	if stats.Total != 1 || stats.Expired != 0 {
		t.Fatalf("unexpected stats after cleanup: %+v", stats)
	}
}

func TestMemoryClear(t *testing.T) {
	m := NewMemory[int](time.Minute)

	m.Set("a", 1)
	m.Set("b", 2)
	m.Clear()

	if stats := m.Stats(); stats.Total != 0 {
		t.Fatalf("expected empty cache, got %+v", stats)
	}
}

func TestMemoryConcurrentAccess(t *testing.T) {
	m := NewMemory[int](time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)

		go func(n int) {
			defer wg.Done()
			m.Set("shared", n)
		}(i)

		go func() {
			defer wg.Done()
			m.Get("shared")
		}()
	}

	wg.Wait()

	if _, ok := m.Get("shared"); !ok {
		t.Fatal("expected value after concurrent writes")
	}
}

package scheduler

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// Workers race to re-arm the same keys; each key must fire exactly once.
func TestEngineStressConcurrentRearm(t *testing.T) {
	engine := NewEngine(1024)
	engine.Start()
	defer engine.Stop()

	const workers = 8
	const keys = 100

	base := time.Now().UTC().Add(200 * time.Millisecond)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < keys; i++ {
				ev := ReminderEvent{
					TaskID:    fmt.Sprintf("task-%d", i),
					Title:     fmt.Sprintf("armed by %d", w),
					TriggerAt: base.Add(time.Duration((w*7+i)%40) * time.Millisecond),
				}
				if err := engine.Schedule(ev); err != nil {
					t.Errorf("schedule failed: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	if got := engine.Len(); got != keys {
		t.Fatalf("expected %d pending keys after re-arming, got %d", keys, got)
	}

	seen := make(map[string]int, keys)
	var received int64
	deadline := time.After(5 * time.Second)
	for atomic.LoadInt64(&received) < keys {
		select {
		case <-deadline:
			t.Fatalf("timeout waiting events: received=%d dropped=%d", received, engine.Dropped())
		case ev := <-engine.C():
			seen[ev.TaskID]++
			atomic.AddInt64(&received, 1)
		}
	}

	select {
	case ev := <-engine.C():
		t.Fatalf("unexpected extra event for %s", ev.TaskID)
	case <-time.After(100 * time.Millisecond):
	}
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("%s fired %d times", id, n)
		}
	}
	if len(seen) != keys || engine.Dropped() != 0 {
		t.Fatalf("expected %d distinct events and no drops, got %d dropped=%d", keys, len(seen), engine.Dropped())
	}
}

func TestEngineStressCancelHalf(t *testing.T) {
	engine := NewEngine(1024)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	const n = 200
	for i := 0; i < n; i++ {
		if err := engine.Schedule(ReminderEvent{TaskID: fmt.Sprintf("t-%d", i), TriggerAt: now.Add(40 * time.Millisecond)}); err != nil {
			t.Fatalf("schedule: %v", err)
		}
	}
	for i := 0; i < n; i += 2 {
		if !engine.Cancel(fmt.Sprintf("t-%d", i)) {
			t.Fatalf("cancel t-%d failed", i)
		}
	}

	deadline := time.After(2 * time.Second)
	got := 0
	for got < n/2 {
		select {
		case ev := <-engine.C():
			var idx int
			if _, err := fmt.Sscanf(ev.TaskID, "t-%d", &idx); err != nil || idx%2 == 0 {
				t.Fatalf("cancelled event fired: %s", ev.TaskID)
			}
			got++
		case <-deadline:
			t.Fatalf("timed out, got %d of %d", got, n/2)
		}
	}
}

package event

import (
	"sync"
	"testing"
)

func TestFireReachesAllListeners(t *testing.T) {
	Flush()
	defer Flush()

	var got []interface{}
	Listen("sale.completed", func(p interface{}) { got = append(got, p) })
	Listen("sale.completed", func(p interface{}) { got = append(got, p) })

	Fire("sale.completed", "REC-1")

	if len(got) != 2 {
		t.Fatalf("listener calls = %d, want 2", len(got))
	}
	for _, p := range got {
		if p != "REC-1" {
			t.Errorf("payload = %v, want REC-1", p)
		}
	}
}

func TestFireUnknownEventIsNoop(t *testing.T) {
	Flush()
	defer Flush()

	Fire("nobody.listens", 42)
}

func TestListenersAreScopedByName(t *testing.T) {
	Flush()
	defer Flush()

	fired := false
	Listen("license.expired", func(interface{}) { fired = true })

	Fire("sale.completed", nil)
	if fired {
		t.Error("listener for a different event was invoked")
	}
}

func TestFireAsync(t *testing.T) {
	Flush()
	defer Flush()

	var wg sync.WaitGroup
	wg.Add(3)
	Listen("catalog.imported", func(interface{}) { wg.Done() })
	Listen("catalog.imported", func(interface{}) { wg.Done() })
	Listen("catalog.imported", func(interface{}) { wg.Done() })

	FireAsync("catalog.imported", 6)
	wg.Wait()
}

func TestFlushRemovesListeners(t *testing.T) {
	Flush()

	calls := 0
	Listen("sale.completed", func(interface{}) { calls++ })
	Flush()

	Fire("sale.completed", nil)
	if calls != 0 {
		t.Errorf("flushed listener still fired %d times", calls)
	}
}

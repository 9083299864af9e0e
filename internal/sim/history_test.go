package sim

import (
	"testing"

	"github.com/san-kum/quadsim/internal/quad"
)

func entry(t float64) Entry {
	return Entry{Time: t, State: quad.State{Z: t}}
}

func TestHistoryPushAndOrder(t *testing.T) {
	h := NewHistory(10)
	for i := 1; i <= 5; i++ {
		h.Push(entry(float64(i)))
	}

	if h.Len() != 5 {
		t.Fatalf("expected 5 entries, got %d", h.Len())
	}
	got := h.Entries()
	for i, e := range got {
		if e.Time != float64(i+1) {
			t.Errorf("entry %d: expected time %d, got %g", i, i+1, e.Time)
		}
	}
}

func TestHistoryEvictsOldestFIFO(t *testing.T) {
	h := NewHistory(3)
	for i := 1; i <= 7; i++ {
		h.Push(entry(float64(i)))
	}

	if h.Len() != 3 {
		t.Fatalf("expected capacity-bound length 3, got %d", h.Len())
	}
	got := h.Entries()
	want := []float64{5, 6, 7}
	for i := range want {
		if got[i].Time != want[i] {
			t.Errorf("entry %d: expected time %g, got %g", i, want[i], got[i].Time)
		}
	}
}

func TestHistoryNeverExceedsCapacity(t *testing.T) {
	h := NewHistory(50)
	for i := 0; i < 10000; i++ {
		h.Push(entry(float64(i)))
		if h.Len() > 50 {
			t.Fatalf("length %d exceeds capacity at push %d", h.Len(), i)
		}
	}
}

func TestHistoryLast(t *testing.T) {
	h := NewHistory(4)
	for i := 1; i <= 6; i++ {
		h.Push(entry(float64(i)))
	}

	got := h.Last(2)
	if len(got) != 2 || got[0].Time != 5 || got[1].Time != 6 {
		t.Errorf("Last(2) = %v", got)
	}

	// Asking for more than stored returns everything.
	got = h.Last(100)
	if len(got) != 4 || got[0].Time != 3 {
		t.Errorf("Last(100) = %v", got)
	}
}

func TestHistoryClear(t *testing.T) {
	h := NewHistory(4)
	for i := 0; i < 10; i++ {
		h.Push(entry(float64(i)))
	}
	h.Clear()

	if h.Len() != 0 {
		t.Errorf("expected empty history, got %d", h.Len())
	}
	h.Push(entry(42))
	if got := h.Entries(); len(got) != 1 || got[0].Time != 42 {
		t.Errorf("push after clear: %v", got)
	}
}

func TestHistoryMinimumCapacity(t *testing.T) {
	h := NewHistory(0)
	h.Push(entry(1))
	h.Push(entry(2))
	if h.Len() != 1 || h.Entries()[0].Time != 2 {
		t.Errorf("expected single newest entry, got %v", h.Entries())
	}
}

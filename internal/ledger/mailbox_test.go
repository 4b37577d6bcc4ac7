package ledger

import (
	"fmt"
	"sync"
	"testing"
)

func TestMailboxDrainOrder(t *testing.T) {
	m := NewMailbox(0)
	m.Enqueue("first")
	m.Enqueue("second")
	m.Enqueue("third")

	got := m.DrainAll()
	want := []string{"first", "second", "third"}
	if len(got) != len(want) {
		t.Fatalf("Expected %d notifications, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Notification %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	// A second drain right after must be empty.
	if again := m.DrainAll(); len(again) != 0 {
		t.Errorf("Expected empty drain, got %v", again)
	}
}

func TestMailboxEmptyDrain(t *testing.T) {
	m := NewMailbox(0)
	if got := m.DrainAll(); len(got) != 0 {
		t.Fatalf("Expected empty drain on fresh mailbox, got %v", got)
	}
}

func TestMailboxCapacityDropsOldest(t *testing.T) {
	m := NewMailbox(3)
	for i := 1; i <= 5; i++ {
		m.Enqueue(fmt.Sprintf("n%d", i))
	}

	got := m.DrainAll()
	want := []string{"n3", "n4", "n5"}
	if len(got) != len(want) {
		t.Fatalf("Expected %d notifications, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Notification %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestMailboxLen(t *testing.T) {
	m := NewMailbox(0)
	if m.Len() != 0 {
		t.Fatalf("Expected empty mailbox, got %d", m.Len())
	}
	m.Enqueue("a")
	m.Enqueue("b")
	if m.Len() != 2 {
		t.Errorf("Expected 2 pending, got %d", m.Len())
	}
	m.DrainAll()
	if m.Len() != 0 {
		t.Errorf("Expected 0 pending after drain, got %d", m.Len())
	}
}

func TestMailboxConcurrentEnqueue(t *testing.T) {
	m := NewMailbox(0)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Enqueue("ping")
		}()
	}
	wg.Wait()

	if got := len(m.DrainAll()); got != n {
		t.Errorf("Expected %d notifications, got %d", n, got)
	}
}

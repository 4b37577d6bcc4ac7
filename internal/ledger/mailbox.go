package ledger

import "sync"

// Mailbox is a per-account FIFO of pending notification strings. It carries
// its own lock so drains never contend with the store's exclusive section:
// polling for notifications must not observe (or wait on) balance state.
type Mailbox struct {
	mu       sync.Mutex
	pending  []string
	capacity int
}

// NewMailbox returns an empty mailbox. A capacity <= 0 means unbounded;
// otherwise the oldest entry is dropped once the bound is reached.
func NewMailbox(capacity int) *Mailbox {
	return &Mailbox{capacity: capacity}
}

// Enqueue appends text to the pending queue.
func (m *Mailbox) Enqueue(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.capacity > 0 && len(m.pending) >= m.capacity {
		m.pending = m.pending[1:]
	}
	m.pending = append(m.pending, text)
}

// DrainAll returns every pending notification in enqueue order and empties
// the mailbox. A drain followed immediately by another drain yields nil.
func (m *Mailbox) DrainAll() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.pending
	m.pending = nil
	return out
}

// Len reports the number of pending notifications.
func (m *Mailbox) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

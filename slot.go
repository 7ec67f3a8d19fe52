package session

import (
	"context"
	"sync"
)

// Slot is the single persisted storage slot holding the serialized session
// record. Presence of a value implies a previously successful login; absence
// implies signed-out. Writes overwrite the previous value atomically from the
// caller's perspective.
type Slot interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
}

// MemorySlot keeps the slot in process memory. It backs tests and demo
// wiring; repository.NewSlot provides the durable variant.
type MemorySlot struct {
	mu   sync.Mutex
	data []byte
	set  bool
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

// Read returns the stored value, or ErrSlotEmpty when nothing was written.
func (m *MemorySlot) Read(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.set {
		return nil, ErrSlotEmpty
	}

	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out, nil
}

func (m *MemorySlot) Write(ctx context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = make([]byte, len(data))
	copy(m.data, data)
	m.set = true
	return nil
}

// Clear removes the slot value. Clearing an absent slot is not an error.
func (m *MemorySlot) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = nil
	m.set = false
	return nil
}

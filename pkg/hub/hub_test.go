package hub

import (
	"testing"
)

func TestNewMessages(t *testing.T) {
	m := NewJSONMessage([]byte(`{"a":1}`))
	if m.Type != JSONMessage {
		t.Errorf("Type = %v, want JSONMessage", m.Type)
	}

	b := NewBinaryMessage([]byte{0xFF, 0xD8})
	if b.Type != BinaryMessage {
		t.Errorf("Type = %v, want BinaryMessage", b.Type)
	}
	if len(b.Data) != 2 {
		t.Errorf("Data len = %d, want 2", len(b.Data))
	}
}

func TestClientCountEmpty(t *testing.T) {
	h := New("test")
	if got := h.ClientCount(); got != 0 {
		t.Errorf("ClientCount() = %d, want 0", got)
	}
}

func TestBroadcastWithoutClients(t *testing.T) {
	h := New("test")

	// No Run() goroutine and no clients: must not block or panic.
	h.BroadcastBinary([]byte{1, 2, 3})
	if err := h.BroadcastJSON(map[string]int{"n": 1}); err != nil {
		t.Errorf("BroadcastJSON() error = %v", err)
	}
}

func TestBroadcastJSONError(t *testing.T) {
	h := New("test")

	// Channels cannot be marshaled.
	if err := h.BroadcastJSON(make(chan int)); err == nil {
		t.Error("BroadcastJSON(chan) = nil, want error")
	}
}

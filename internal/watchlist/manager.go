package watchlist

import (
	"fmt"
	"strings"
	"sync"
)

// Manager holds the bounded set of favorite symbols with concurrency safety.
// Every mutation is persisted to the state file.
type Manager struct {
	mu       sync.Mutex
	state    *State
	filePath string
	capacity int
}

// NewManager creates a Manager, loading or initializing state from disk.
func NewManager(filePath string, capacity int) (*Manager, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("watchlist capacity must be positive, got %d", capacity)
	}
	state, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}
	m := &Manager{state: state, filePath: filePath, capacity: capacity}
	if err := m.save(); err != nil {
		return nil, err
	}
	return m, nil
}

// Add registers a symbol. Symbols are stored uppercase; duplicates and
// additions beyond capacity are rejected.
func (m *Manager) Add(symbol string) error {
	symbol = normalize(symbol)
	if symbol == "" {
		return fmt.Errorf("empty symbol")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.contains(symbol) {
		return fmt.Errorf("%s is already watched", symbol)
	}
	if len(m.state.Symbols) >= m.capacity {
		return fmt.Errorf("watchlist is full (capacity %d)", m.capacity)
	}
	m.state.Symbols = append(m.state.Symbols, symbol)
	return m.save()
}

// Remove drops a symbol. Removing an unknown symbol is an error.
func (m *Manager) Remove(symbol string) error {
	symbol = normalize(symbol)

	m.mu.Lock()
	defer m.mu.Unlock()

	for i, s := range m.state.Symbols {
		if s == symbol {
			m.state.Symbols = append(m.state.Symbols[:i], m.state.Symbols[i+1:]...)
			return m.save()
		}
	}
	return fmt.Errorf("%s is not watched", symbol)
}

// Contains reports whether a symbol is watched.
func (m *Manager) Contains(symbol string) bool {
	symbol = normalize(symbol)
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.contains(symbol)
}

// List returns a copy of the watched symbols in insertion order.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.state.Symbols))
	copy(out, m.state.Symbols)
	return out
}

// Capacity returns the configured bound on watched symbols.
func (m *Manager) Capacity() int { return m.capacity }

func (m *Manager) contains(symbol string) bool {
	for _, s := range m.state.Symbols {
		if s == symbol {
			return true
		}
	}
	return false
}

func (m *Manager) save() error {
	return SaveState(m.filePath, m.state)
}

func normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

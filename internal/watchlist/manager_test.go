package watchlist

import (
	"path/filepath"
	"testing"
)

func newTestManager(t *testing.T, capacity int) *Manager {
	t.Helper()
	path := filepath.Join(t.TempDir(), "watchlist.json")
	m, err := NewManager(path, capacity)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

func TestAddRemoveContains(t *testing.T) {
	m := newTestManager(t, 3)

	if err := m.Add("aapl"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !m.Contains("AAPL") {
		t.Error("expected AAPL to be watched (case-insensitive)")
	}
	if err := m.Add("AAPL"); err == nil {
		t.Error("expected duplicate add to fail")
	}

	if err := m.Remove("AAPL"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if m.Contains("AAPL") {
		t.Error("expected AAPL to be removed")
	}
	if err := m.Remove("AAPL"); err == nil {
		t.Error("expected removing an unknown symbol to fail")
	}
}

func TestCapacityEnforced(t *testing.T) {
	m := newTestManager(t, 3)

	for _, s := range []string{"AAPL", "MSFT", "GOOG"} {
		if err := m.Add(s); err != nil {
			t.Fatalf("Add(%s): %v", s, err)
		}
	}
	if err := m.Add("TSLA"); err == nil {
		t.Error("expected add beyond capacity to fail")
	}
	if got := len(m.List()); got != 3 {
		t.Errorf("expected 3 symbols, got %d", got)
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchlist.json")

	m1, err := NewManager(path, 3)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if err := m1.Add("AAPL"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := m1.Add("MSFT"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	m2, err := NewManager(path, 3)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got := m2.List()
	if len(got) != 2 || got[0] != "AAPL" || got[1] != "MSFT" {
		t.Errorf("expected [AAPL MSFT] after reload, got %v", got)
	}
}

func TestListReturnsCopy(t *testing.T) {
	m := newTestManager(t, 3)
	if err := m.Add("AAPL"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	list := m.List()
	list[0] = "HACKED"
	if !m.Contains("AAPL") {
		t.Error("mutating the returned slice must not affect the manager")
	}
}

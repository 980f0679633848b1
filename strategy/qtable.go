package strategy

import (
	"encoding/gob"
	"fmt"
	"os"
	"sync"

	"baduk/game"
)

// QTable is a tabular action-value store keyed by the canonical board
// encoding plus the move. It is the one piece of cross-game mutable
// state: created at program start, injected into every learner that
// shares it, optionally serialized at program end. Updates are
// serialized by the lock so concurrent games never lose writes.
type QTable struct {
	mu     sync.Mutex
	values map[string]float64
}

func NewQTable() *QTable {
	return &QTable{values: make(map[string]float64)}
}

// entryKey concatenates the collision-free board key with the move. Two
// distinct (position, move) pairs can never share a key.
func entryKey(s *game.BoardState, m game.Move) string {
	if m.IsPass {
		return s.Key() + "|pass"
	}
	return fmt.Sprintf("%s|%d,%d", s.Key(), m.Row, m.Col)
}

// Get returns the stored value for (s, m) and whether one exists.
func (t *QTable) Get(s *game.BoardState, m game.Move) (float64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	value, ok := t.values[entryKey(s, m)]
	return value, ok
}

// Set stores the value for (s, m).
func (t *QTable) Set(s *game.BoardState, m game.Move, value float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.values[entryKey(s, m)] = value
}

// Len returns the number of stored entries.
func (t *QTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.values)
}

// Save writes the table to path with gob.
func (t *QTable) Save(path string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create q-table file: %w", err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(t.values); err != nil {
		return fmt.Errorf("failed to encode q-table: %w", err)
	}
	return nil
}

// Load replaces the table contents from a file written by Save.
func (t *QTable) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open q-table file: %w", err)
	}
	defer f.Close()

	values := make(map[string]float64)
	if err := gob.NewDecoder(f).Decode(&values); err != nil {
		return fmt.Errorf("failed to decode q-table: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.values = values
	return nil
}

package report

import (
	"github.com/cleared-dev/statements/internal/columns"
	"github.com/cleared-dev/statements/internal/tree"
)

type memoKey struct {
	forest     *tree.Forest
	layout     string
	startDepth int
	totalLabel string
}

// Memo caches rendered rows per forest and column layout. Forests are
// immutable, so the pointer identifies the input records. Memo is not safe
// for concurrent use.
type Memo struct {
	rows   map[memoKey][]Row
	hits   int
	misses int
}

// NewMemo creates an empty cache.
func NewMemo() *Memo {
	return &Memo{rows: make(map[memoKey][]Row)}
}

// Render returns cached rows for the forest and snapshot, rendering on a miss.
func (m *Memo) Render(f *tree.Forest, snap columns.Snapshot, startDepth int, totalLabel string) []Row {
	k := memoKey{forest: f, layout: snap.Key(), startDepth: startDepth, totalLabel: totalLabel}
	if rows, ok := m.rows[k]; ok {
		m.hits++
		return rows
	}
	m.misses++
	rows := Render(f, snap, startDepth, totalLabel)
	m.rows[k] = rows
	return rows
}

// Stats returns the hit and miss counts.
func (m *Memo) Stats() (hits, misses int) {
	return m.hits, m.misses
}

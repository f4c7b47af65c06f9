// Package columns holds the runtime column layout of a report table and the
// controllers that translate user gestures into layout changes.
package columns

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cleared-dev/statements/internal/model"
)

// MinWidth is the narrowest a column may be resized to, in px.
const MinWidth = 80

// DefaultWidth is used for columns whose schema declares no width.
const DefaultWidth = 180

var (
	// ErrUnknownColumn is returned for gestures naming a key absent from the schema.
	ErrUnknownColumn = errors.New("unknown column key")
	// ErrResizeLocked is returned when dragging a resize-locked column.
	ErrResizeLocked = errors.New("column is resize-locked")
	// ErrToggleLocked is returned when toggling a column whose checkbox is disabled.
	ErrToggleLocked = errors.New("column visibility is locked")
	// ErrDragActive is returned when a drag starts while another is live.
	ErrDragActive = errors.New("a column drag is already active")
)

// View is the read side of a column layout consumed by renderers.
type View interface {
	Schema() model.Schema
	Width(key string) int
	Visible(key string) bool
}

// State is the mutable width/visibility layer over a schema. It is rebuilt
// for every session and only mutated through the controllers.
type State struct {
	schema  model.Schema
	widths  map[string]int
	visible map[string]bool
}

// NewState initializes a State from the schema's defaults.
func NewState(schema model.Schema) *State {
	s := &State{
		schema:  schema,
		widths:  make(map[string]int, len(schema.Columns)),
		visible: make(map[string]bool, len(schema.Columns)),
	}
	for _, c := range schema.Columns {
		w := c.Width
		if w <= 0 {
			w = DefaultWidth
		}
		s.widths[c.Key] = max(w, MinWidth)
		s.visible[c.Key] = c.Visible
	}
	return s
}

// Schema returns the underlying column schema.
func (s *State) Schema() model.Schema {
	return s.schema
}

// Width returns the current width of key.
func (s *State) Width(key string) int {
	if w, ok := s.widths[key]; ok {
		return w
	}
	return DefaultWidth
}

// Visible reports whether key is shown. Keys without state are hidden.
func (s *State) Visible(key string) bool {
	return s.visible[key]
}

func (s *State) column(key string) (model.ColumnSpec, error) {
	c, ok := s.schema.Column(key)
	if !ok {
		return model.ColumnSpec{}, fmt.Errorf("%w: %q", ErrUnknownColumn, key)
	}
	return c, nil
}

func (s *State) setWidth(key string, w int) {
	s.widths[key] = max(w, MinWidth)
}

// Snapshot returns an immutable copy of the current layout.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		schema:  s.schema,
		widths:  make(map[string]int, len(s.widths)),
		visible: make(map[string]bool, len(s.visible)),
	}
	for k, w := range s.widths {
		snap.widths[k] = w
	}
	for k, v := range s.visible {
		snap.visible[k] = v
	}
	return snap
}

// Snapshot is a frozen column layout. It satisfies View.
type Snapshot struct {
	schema  model.Schema
	widths  map[string]int
	visible map[string]bool
}

// Schema returns the underlying column schema.
func (s Snapshot) Schema() model.Schema { return s.schema }

// Width returns the width of key at snapshot time.
func (s Snapshot) Width(key string) int {
	if w, ok := s.widths[key]; ok {
		return w
	}
	return DefaultWidth
}

// Visible reports whether key was shown at snapshot time.
func (s Snapshot) Visible(key string) bool { return s.visible[key] }

// Key encodes the layout in schema order, suitable as a memoization key.
func (s Snapshot) Key() string {
	var b strings.Builder
	for _, c := range s.schema.Columns {
		fmt.Fprintf(&b, "%s:%d:%t;", c.Key, s.Width(c.Key), s.Visible(c.Key))
	}
	return b.String()
}

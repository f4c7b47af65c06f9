package columns

import (
	"context"

	"go.uber.org/zap"
)

// PointerKind distinguishes pointer events during a drag.
type PointerKind int

const (
	PointerMove PointerKind = iota
	PointerRelease
)

// PointerEvent is one pointer gesture delivered to a drag. DeltaX is the
// horizontal movement since the previous event, in px.
type PointerEvent struct {
	Kind   PointerKind
	DeltaX int
}

// ResizeController turns drag gestures on column resize handles into width
// changes. At most one drag session is live at a time.
type ResizeController struct {
	state     *State
	logger    *zap.Logger
	session   *DragSession
	listeners int
}

// NewResizeController creates a controller. A nil logger discards output.
func NewResizeController(state *State, logger *zap.Logger) *ResizeController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResizeController{state: state, logger: logger}
}

// DragSession is a live resize drag on one column. Callers must End it;
// ending twice is harmless.
type DragSession struct {
	c     *ResizeController
	key   string
	ended bool
}

// Begin starts a drag on key and registers its pointer subscription.
func (c *ResizeController) Begin(key string) (*DragSession, error) {
	spec, err := c.state.column(key)
	if err != nil {
		c.logger.Warn("ignoring resize start", zap.String("column", key), zap.Error(err))
		return nil, err
	}
	if spec.ResizeLocked {
		return nil, ErrResizeLocked
	}
	if c.session != nil {
		return nil, ErrDragActive
	}
	c.session = &DragSession{c: c, key: key}
	c.listeners++
	c.logger.Debug("column drag started", zap.String("column", key), zap.Int("width", c.state.Width(key)))
	return c.session, nil
}

// OnDrag applies a pointer delta to key. It reports false, changing nothing,
// unless a drag session is active for that key.
func (c *ResizeController) OnDrag(key string, deltaPx int) bool {
	if c.session == nil || c.session.key != key {
		return false
	}
	c.session.Move(deltaPx)
	return true
}

// Active returns the key being dragged, if any.
func (c *ResizeController) Active() (string, bool) {
	if c.session == nil {
		return "", false
	}
	return c.session.key, true
}

// Listeners returns the number of registered pointer subscriptions.
func (c *ResizeController) Listeners() int {
	return c.listeners
}

// Close releases any live drag, as on component teardown.
func (c *ResizeController) Close() {
	if c.session != nil {
		c.session.End()
	}
}

// Follow runs one drag on key from an event stream. The session ends on a
// release event, when events is closed, or when ctx is cancelled.
func (c *ResizeController) Follow(ctx context.Context, key string, events <-chan PointerEvent) error {
	s, err := c.Begin(key)
	if err != nil {
		return err
	}
	defer s.End()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev.Kind {
			case PointerMove:
				s.Move(ev.DeltaX)
			case PointerRelease:
				return nil
			}
		}
	}
}

// Key returns the column being dragged.
func (s *DragSession) Key() string {
	return s.key
}

// Move grows or shrinks the column by deltaPx, clamped at MinWidth, and
// returns the committed width. Moves after End are ignored.
func (s *DragSession) Move(deltaPx int) int {
	st := s.c.state
	if s.ended {
		return st.Width(s.key)
	}
	st.setWidth(s.key, st.Width(s.key)+deltaPx)
	return st.Width(s.key)
}

// MoveTo sets the width from an absolute pointer position and the column's
// left edge.
func (s *DragSession) MoveTo(pointerX, leftEdge int) int {
	st := s.c.state
	if s.ended {
		return st.Width(s.key)
	}
	st.setWidth(s.key, pointerX-leftEdge)
	return st.Width(s.key)
}

// End deregisters the session's pointer subscription.
func (s *DragSession) End() {
	if s.ended {
		return
	}
	s.ended = true
	s.c.listeners--
	if s.c.session == s {
		s.c.session = nil
	}
	s.c.logger.Debug("column drag ended", zap.String("column", s.key), zap.Int("width", s.c.state.Width(s.key)))
}

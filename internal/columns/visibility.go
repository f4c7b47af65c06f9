package columns

import (
	"go.uber.org/zap"
)

// VisibilityController applies checkbox toggles to a State.
type VisibilityController struct {
	state  *State
	logger *zap.Logger
}

// NewVisibilityController creates a controller. A nil logger discards output.
func NewVisibilityController(state *State, logger *zap.Logger) *VisibilityController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VisibilityController{state: state, logger: logger}
}

// Toggle flips the visibility of key and returns the new value. Unknown keys
// and locked columns leave the state untouched and return an error the caller
// may treat as a no-op.
func (c *VisibilityController) Toggle(key string) (bool, error) {
	spec, err := c.state.column(key)
	if err != nil {
		c.logger.Warn("ignoring visibility toggle", zap.String("column", key), zap.Error(err))
		return false, err
	}
	cur, ok := c.state.visible[key]
	if !ok {
		cur = spec.Visible
	}
	if spec.ToggleLocked {
		c.logger.Warn("ignoring visibility toggle", zap.String("column", key), zap.Error(ErrToggleLocked))
		return cur, ErrToggleLocked
	}
	c.state.visible[key] = !cur
	c.logger.Debug("column visibility toggled", zap.String("column", key), zap.Bool("visible", !cur))
	return !cur, nil
}

// Set shows or hides key, toggling only when the current value differs.
func (c *VisibilityController) Set(key string, visible bool) error {
	if _, err := c.state.column(key); err == nil && c.state.Visible(key) == visible {
		return nil
	}
	_, err := c.Toggle(key)
	return err
}

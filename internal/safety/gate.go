// Package safety decides whether selecting a token must be interrupted by a
// warning, and tracks the warning modal between the attempt and the user's answer.
package safety

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrBlockedToken is returned when accepting a warning for a blocked token.
	ErrBlockedToken = errors.New("blocked tokens cannot be accepted")
	// ErrNoPendingWarning is returned by Accept and Close when no warning is showing.
	ErrNoPendingWarning = errors.New("no warning is showing")
)

// Decision is the outcome of EvaluateSelection.
type Decision int

const (
	Proceed Decision = iota
	ShowWarning
)

func (d Decision) String() string {
	if d == ShowWarning {
		return "show_warning"
	}
	return "proceed"
}

// EvaluateSelection reports whether a selection must show a warning first.
// Dismissal only skips medium and strong warnings; blocked tokens always warn.
func EvaluateSelection(level Level, dismissed, warningsEnabled bool) Decision {
	if !warningsEnabled {
		return Proceed
	}
	if level == Blocked {
		return ShowWarning
	}
	if level.Dismissible() && !dismissed {
		return ShowWarning
	}
	return Proceed
}

// Dismisser records that the user acknowledged a token's warning.
type Dismisser interface {
	Dismiss(ctx context.Context, tokenID string) error
}

// State of the gate.
type State int

const (
	Idle State = iota
	WarningVisible
)

func (s State) String() string {
	if s == WarningVisible {
		return "warning_visible"
	}
	return "idle"
}

// Pending describes the selection waiting on the user's answer.
type Pending struct {
	TokenID string
	Level   Level
}

// Gate holds a selection attempt while its warning is on screen.
// It is not safe for concurrent use; callers drive it from one event loop.
type Gate struct {
	dismisser       Dismisser
	warningsEnabled bool
	blurInput       func()

	state    State
	pending  Pending
	onSelect func()
}

// Option configures a Gate.
type Option func(*Gate)

// WithWarningsEnabled sets the initial warnings toggle. Warnings default to on.
func WithWarningsEnabled(enabled bool) Option {
	return func(g *Gate) { g.warningsEnabled = enabled }
}

// WithBlurInput registers a hook run before a warning is shown, used to drop text input focus.
func WithBlurInput(fn func()) Option {
	return func(g *Gate) { g.blurInput = fn }
}

func NewGate(d Dismisser, opts ...Option) *Gate {
	g := &Gate{dismisser: d, warningsEnabled: true}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Gate) SetWarningsEnabled(enabled bool) { g.warningsEnabled = enabled }

func (g *Gate) WarningsEnabled() bool { return g.warningsEnabled }

func (g *Gate) State() State { return g.state }

// Pending returns the token whose warning is showing.
func (g *Gate) Pending() (Pending, bool) {
	if g.state != WarningVisible {
		return Pending{}, false
	}
	return g.pending, true
}

// Select runs onSelect immediately when the token needs no warning. Otherwise it
// blurs input, opens the warning and keeps onSelect until Accept or Close.
// A selection attempt while a warning is already showing is ignored.
func (g *Gate) Select(tokenID string, level Level, dismissed bool, onSelect func()) Decision {
	if g.state == WarningVisible {
		return ShowWarning
	}
	decision := EvaluateSelection(level, dismissed, g.warningsEnabled)
	if decision == Proceed {
		if onSelect != nil {
			onSelect()
		}
		return Proceed
	}
	if g.blurInput != nil {
		g.blurInput()
	}
	g.state = WarningVisible
	g.pending = Pending{TokenID: tokenID, Level: level}
	g.onSelect = onSelect
	return ShowWarning
}

// Accept records the dismissal, closes the warning and then runs the held selection.
// If the dismissal cannot be recorded the warning stays open.
func (g *Gate) Accept(ctx context.Context) error {
	if g.state != WarningVisible {
		return ErrNoPendingWarning
	}
	if g.pending.Level == Blocked {
		return ErrBlockedToken
	}
	if g.dismisser != nil {
		if err := g.dismisser.Dismiss(ctx, g.pending.TokenID); err != nil {
			return fmt.Errorf("dismiss warning for %s: %w", g.pending.TokenID, err)
		}
	}
	onSelect := g.onSelect
	g.reset()
	if onSelect != nil {
		onSelect()
	}
	return nil
}

// Close drops the held selection without recording anything.
func (g *Gate) Close() error {
	if g.state != WarningVisible {
		return ErrNoPendingWarning
	}
	g.reset()
	return nil
}

func (g *Gate) reset() {
	g.state = Idle
	g.pending = Pending{}
	g.onSelect = nil
}

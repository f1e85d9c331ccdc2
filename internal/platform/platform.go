// Package platform wraps the terminal's side channels: the system clipboard and the bell
// used as haptic feedback.
package platform

import (
	"io"
	"sync"

	"github.com/atotto/clipboard"
)

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	SetText(text string) error
}

// SystemClipboard uses the OS clipboard (pbcopy, xclip/xsel, wl-copy or the Windows API).
type SystemClipboard struct{}

func (SystemClipboard) SetText(text string) error {
	return clipboard.WriteAll(text)
}

// Available reports whether a clipboard utility was found.
func (SystemClipboard) Available() bool {
	return !clipboard.Unsupported
}

// Haptics gives physical feedback. Impact marks a completed action, Selection a moved cursor.
type Haptics interface {
	Impact() error
	Selection() error
}

// Bell implements Haptics with the terminal bell. Selection is silent so list
// navigation does not ring on every keypress.
type Bell struct {
	mu      sync.Mutex
	w       io.Writer
	enabled bool
}

func NewBell(w io.Writer, enabled bool) *Bell {
	return &Bell{w: w, enabled: enabled}
}

func (b *Bell) Impact() error {
	if !b.enabled || b.w == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	_, err := io.WriteString(b.w, "\a")
	return err
}

func (b *Bell) Selection() error { return nil }

// NoHaptics discards feedback.
type NoHaptics struct{}

func (NoHaptics) Impact() error    { return nil }
func (NoHaptics) Selection() error { return nil }

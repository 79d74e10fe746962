// Package clipboard delivers rendered text to the user's clipboard.
//
// The system clipboard is tried first. When it is unavailable (no display
// server, no xclip or pbcopy) the text is sent to the terminal with an
// OSC 52 escape sequence if a terminal is configured, and printed to the
// fallback writer otherwise so the user can copy it by hand.
package clipboard

import (
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/atotto/clipboard"
)

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

// Method is how a text reached the user.
type Method int

const (
	// MethodNone means nothing was delivered because the text was empty.
	MethodNone Method = iota
	// MethodSystem means the system clipboard accepted the text.
	MethodSystem
	// MethodOSC52 means the text was sent to the terminal clipboard.
	MethodOSC52
	// MethodPrinted means the text was written to the fallback writer.
	MethodPrinted
)

// Notice returns the message shown to the user after delivery.
func (m Method) Notice() string {
	switch m {
	case MethodSystem:
		return "Copied to clipboard"
	case MethodOSC52:
		return "Copied to terminal clipboard"
	case MethodPrinted:
		return "Clipboard unavailable: copy the text above"
	default:
		return "Nothing to copy"
	}
}

// Deliverer copies text with fallbacks.
type Deliverer struct {
	fallback io.Writer
	terminal io.Writer
	tmux     bool
	logger   *slog.Logger
}

// Option configures a Deliverer.
type Option func(*Deliverer)

// WithTerminal enables OSC 52 delivery to w, usually the controlling tty.
func WithTerminal(w io.Writer) Option {
	return func(d *Deliverer) {
		d.terminal = w
	}
}

// WithTmux forces tmux passthrough wrapping on or off.
func WithTmux(on bool) Option {
	return func(d *Deliverer) {
		d.tmux = on
	}
}

// WithLogger sets the logger for delivery failures.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Deliverer) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// New creates a Deliverer that prints to fallback as a last resort.
func New(fallback io.Writer, opts ...Option) *Deliverer {
	d := &Deliverer{
		fallback: fallback,
		tmux:     inTmux(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Deliver copies text. Empty text is never copied.
func (d *Deliverer) Deliver(text string) (Method, error) {
	if text == "" {
		return MethodNone, nil
	}

	err := clipboardWriteAll(text)
	if err == nil {
		return MethodSystem, nil
	}
	d.logger.Debug("system clipboard unavailable", "error", err)

	if d.terminal != nil {
		if err := d.writeOSC52(text); err == nil {
			return MethodOSC52, nil
		}
		d.logger.Debug("terminal clipboard unavailable", "error", err)
	}

	if _, err := fmt.Fprintln(d.fallback, text); err != nil {
		return MethodNone, fmt.Errorf("print fallback: %w", err)
	}
	return MethodPrinted, nil
}

// writeOSC52 sends text as an OSC 52 set-clipboard sequence. BEL terminates
// the sequence. Inside tmux it is sent both wrapped for passthrough and bare.
func (d *Deliverer) writeOSC52(text string) error {
	seq := OSC52(text)
	if d.tmux {
		if _, err := fmt.Fprintf(d.terminal, "\x1bPtmux;\x1b%s\x1b\\", seq); err != nil {
			return err
		}
	}
	_, err := io.WriteString(d.terminal, seq)
	return err
}

// OSC52 returns the escape sequence that sets the terminal clipboard to text.
func OSC52(text string) string {
	return "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte(text)) + "\x07"
}

// inTmux reports whether output goes through tmux or screen.
func inTmux() bool {
	term := os.Getenv("TERM")
	return os.Getenv("TMUX") != "" ||
		strings.HasPrefix(term, "tmux") ||
		strings.HasPrefix(term, "screen")
}

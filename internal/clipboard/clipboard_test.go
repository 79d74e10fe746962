package clipboard

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
)

var errNoClipboard = errors.New("no clipboard utilities available")

// failingWriter always fails.
type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

// These tests replace clipboardWriteAll and must not run in parallel.
func TestDeliver(t *testing.T) {
	discard := WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	setClipboard := func(t *testing.T, fn func(string) error) {
		t.Helper()
		old := clipboardWriteAll
		clipboardWriteAll = fn
		t.Cleanup(func() { clipboardWriteAll = old })
	}

	t.Run("empty text is not copied", func(t *testing.T) {
		called := false
		setClipboard(t, func(string) error { called = true; return nil })

		var out bytes.Buffer
		m, err := New(&out, discard).Deliver("")
		if err != nil || m != MethodNone {
			t.Fatalf("expected MethodNone, got %v, %v", m, err)
		}
		if called || out.Len() != 0 {
			t.Error("expected nothing to be delivered")
		}
	})

	t.Run("system clipboard", func(t *testing.T) {
		var got string
		setClipboard(t, func(s string) error { got = s; return nil })

		var out bytes.Buffer
		m, err := New(&out, discard).Deliver("Opium - 1x - Class A Contraband")
		if err != nil || m != MethodSystem {
			t.Fatalf("expected MethodSystem, got %v, %v", m, err)
		}
		if got != "Opium - 1x - Class A Contraband" {
			t.Errorf("unexpected clipboard content %q", got)
		}
		if out.Len() != 0 {
			t.Error("expected no fallback output")
		}
		if m.Notice() != "Copied to clipboard" {
			t.Errorf("unexpected notice %q", m.Notice())
		}
	})

	t.Run("falls back to terminal", func(t *testing.T) {
		setClipboard(t, func(string) error { return errNoClipboard })

		var out, tty bytes.Buffer
		m, err := New(&out, discard, WithTerminal(&tty), WithTmux(false)).Deliver("hi")
		if err != nil || m != MethodOSC52 {
			t.Fatalf("expected MethodOSC52, got %v, %v", m, err)
		}
		if tty.String() != "\x1b]52;c;aGk=\x07" {
			t.Errorf("unexpected escape sequence %q", tty.String())
		}
	})

	t.Run("tmux wraps the sequence", func(t *testing.T) {
		setClipboard(t, func(string) error { return errNoClipboard })

		var out, tty bytes.Buffer
		if _, err := New(&out, discard, WithTerminal(&tty), WithTmux(true)).Deliver("hi"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(tty.String(), "\x1bPtmux;") {
			t.Errorf("expected tmux passthrough, got %q", tty.String())
		}
		if strings.Count(tty.String(), "aGk=") != 2 {
			t.Errorf("expected wrapped and bare sequence, got %q", tty.String())
		}
	})

	t.Run("prints when nothing else works", func(t *testing.T) {
		setClipboard(t, func(string) error { return errNoClipboard })

		var out bytes.Buffer
		m, err := New(&out, discard, WithTerminal(failingWriter{}), WithTmux(false)).Deliver("Dice - 1x - Class D Contraband")
		if err != nil || m != MethodPrinted {
			t.Fatalf("expected MethodPrinted, got %v, %v", m, err)
		}
		if out.String() != "Dice - 1x - Class D Contraband\n" {
			t.Errorf("unexpected fallback output %q", out.String())
		}
	})

	t.Run("fallback write error", func(t *testing.T) {
		setClipboard(t, func(string) error { return errNoClipboard })

		if _, err := New(failingWriter{}, discard).Deliver("x"); err == nil {
			t.Error("expected error")
		}
	})
}

// TestMethodNotice tests user notices.
func TestMethodNotice(t *testing.T) {
	t.Parallel()

	for _, m := range []Method{MethodNone, MethodSystem, MethodOSC52, MethodPrinted} {
		if m.Notice() == "" {
			t.Errorf("method %d has no notice", m)
		}
	}
}

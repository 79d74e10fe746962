package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

// TestSecureHandler_SanitizesSensitiveKeys tests that sensitive keys are masked.
func TestSecureHandler_SanitizesSensitiveKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		key      string
		value    string
		wantMask bool
	}{
		{"suspects key is masked", "suspects", "Micah Bell", true},
		{"Officer key (mixed case) is masked", "Officer", "Deputy Hale", true},
		{"notes key is masked", "notes", "Suspect fled on horseback", true},
		{"key containing note is masked", "extra_notes", "Left the saloon", true},
		{"evidence key is masked", "evidence", "Two crates of moonshine", true},
		{"text key is masked", "text", "Moonshine - 2x - Class B Contraband", true},
		{"webhook key is masked", "discord_webhook", "abc", true},
		{"password key is masked", "password", "hunter2", true},
		{"item key is NOT masked", "item", "Moonshine", false},
		{"category key is NOT masked", "category", "B", false},
		{"kind key is NOT masked", "kind", "summary-export", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := NewSecureLogger(&buf, true)
			logger.Info("test message", tt.key, tt.value)

			output := buf.String()
			if tt.wantMask {
				if strings.Contains(output, tt.value) {
					t.Errorf("expected value %q to be masked, but found in output: %s", tt.value, output)
				}
				if !strings.Contains(output, MaskValue) {
					t.Errorf("expected mask value %q in output, but not found: %s", MaskValue, output)
				}
			} else if !strings.Contains(output, tt.value) {
				t.Errorf("expected value %q to be present in output, but not found: %s", tt.value, output)
			}
		})
	}
}

// TestSecureHandler_SanitizesSensitivePatterns tests that values matching
// sensitive patterns are masked under any key.
func TestSecureHandler_SanitizesSensitivePatterns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		value    string
		wantMask bool
	}{
		{"discord webhook url", "https://discord.com/api/webhooks/123/abcDEF", true},
		{"bearer token", "Bearer abc.def", true},
		{"jwt", "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxIn0.sig", true},
		{"rendered briefing", "Briefing Report\nDate: <t:1704132000:F>\n\nNotes:\n", true},
		{"plain item name", "Moonshine", false},
		{"timestamp token alone", "<t:1704132000:F>", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := NewSecureJSONLogger(&buf, true)
			logger.Info("test message", "value", tt.value)

			var record map[string]any
			if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
				t.Fatalf("invalid JSON log line: %v", err)
			}

			masked := record["value"] == MaskValue
			if masked != tt.wantMask {
				t.Errorf("value %q: masked = %v, want %v", tt.value, masked, tt.wantMask)
			}
		})
	}
}

// TestSecureHandler_LogLevels tests the verbose switch.
func TestSecureHandler_LogLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		verbose   bool
		logFunc   func(*slog.Logger)
		wantWrite bool
	}{
		{"debug hidden when not verbose", false, func(l *slog.Logger) { l.Debug("msg") }, false},
		{"info hidden when not verbose", false, func(l *slog.Logger) { l.Info("msg") }, false},
		{"warn shown when not verbose", false, func(l *slog.Logger) { l.Warn("msg") }, true},
		{"debug shown when verbose", true, func(l *slog.Logger) { l.Debug("msg") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			tt.logFunc(NewSecureLogger(&buf, tt.verbose))

			if got := buf.Len() > 0; got != tt.wantWrite {
				t.Errorf("wrote output = %v, want %v", got, tt.wantWrite)
			}
		})
	}
}

// TestSecureHandler_WithAttrs tests that attributes bound with With are masked.
func TestSecureHandler_WithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewSecureLogger(&buf, true).With("officer", "Deputy Hale", "kind", "briefing-export")
	logger.Info("exported")

	output := buf.String()
	if strings.Contains(output, "Deputy Hale") {
		t.Errorf("expected officer to be masked: %s", output)
	}
	if !strings.Contains(output, "briefing-export") {
		t.Errorf("expected kind to be kept: %s", output)
	}
}

// TestSecureHandler_WithGroup tests masking inside groups.
func TestSecureHandler_WithGroup(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewSecureLogger(&buf, true).WithGroup("form")
	logger.Info("filled", slog.Group("fields", slog.String("charges", "Bootlegging"), slog.Int("count", 6)))

	output := buf.String()
	if strings.Contains(output, "Bootlegging") {
		t.Errorf("expected charges to be masked: %s", output)
	}
	if !strings.Contains(output, "form.fields.count=6") {
		t.Errorf("expected grouped count in output: %s", output)
	}
}

// TestNewSecureHandler_NilHandler tests the default handler fallback.
func TestNewSecureHandler_NilHandler(t *testing.T) {
	t.Parallel()

	h := NewSecureHandler(nil)
	if h.handler == nil {
		t.Error("expected default handler to be used")
	}
}

package session

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/contraband/internal/model"
	"github.com/nao1215/contraband/internal/report"
)

// newTestController creates a controller that discards log output.
func newTestController(t *testing.T, policy model.TogglePolicy, opts ...Option) *Controller {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(policy, append([]Option{WithLogger(logger)}, opts...)...)
}

// TestOnItemActivated tests both toggle policies.
func TestOnItemActivated(t *testing.T) {
	t.Parallel()

	t.Run("stack policy increments", func(t *testing.T) {
		t.Parallel()

		c := newTestController(t, model.PolicyStack)
		c.OnItemActivated("Moonshine", "B")
		got := c.OnItemActivated("Moonshine", "B")

		if !got.Selected || got.Item.Quantity != 2 {
			t.Errorf("expected selected item with quantity 2, got %+v", got)
		}
		if !c.IsSelected("Moonshine") {
			t.Error("expected Moonshine to be selected")
		}
	})

	t.Run("toggle policy removes on second activation", func(t *testing.T) {
		t.Parallel()

		c := newTestController(t, model.PolicyToggle)
		c.OnItemActivated("Moonshine", "B")
		got := c.OnItemActivated("Moonshine", "B")

		if got.Selected {
			t.Error("expected item to be deselected")
		}
		if got.Item.Name != "Moonshine" {
			t.Errorf("expected removed item to be returned, got %+v", got.Item)
		}
		if c.IsSelected("Moonshine") {
			t.Error("expected Moonshine to be removed")
		}
	})

	t.Run("empty code resolves through catalog", func(t *testing.T) {
		t.Parallel()

		c := newTestController(t, model.PolicyStack,
			WithCatalog(map[string]string{"Opium": "A"}))
		got := c.OnItemActivated("Opium", "")

		if got.Item.Category != model.CategoryA || got.Item.FineRate != model.FineClassA {
			t.Errorf("expected class A item, got %+v", got.Item)
		}
	})

	t.Run("explicit code wins over catalog", func(t *testing.T) {
		t.Parallel()

		c := newTestController(t, model.PolicyStack,
			WithCatalog(map[string]string{"Opium": "A"}))
		got := c.OnItemActivated("Opium", "D")

		if got.Item.Category != model.CategoryD {
			t.Errorf("expected class D item, got %+v", got.Item)
		}
	})
}

// TestResolveCategory tests catalog lookups.
func TestResolveCategory(t *testing.T) {
	t.Parallel()

	c := newTestController(t, model.PolicyStack,
		WithCatalog(map[string]string{"Moonshine": "B", " Revolver ": "W"}))

	tests := []struct {
		name     string
		input    string
		wantCode string
		wantOK   bool
	}{
		{"exact name", "Moonshine", "B", true},
		{"case insensitive", "moonSHINE", "B", true},
		{"trimmed catalog key", "revolver", "W", true},
		{"unknown item", "Dice", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			code, ok := c.ResolveCategory(tt.input)
			if code != tt.wantCode || ok != tt.wantOK {
				t.Errorf("ResolveCategory(%q) = (%q, %v), want (%q, %v)",
					tt.input, code, ok, tt.wantCode, tt.wantOK)
			}
		})
	}
}

// TestOnQuantityEdited tests quantity edits through the controller.
func TestOnQuantityEdited(t *testing.T) {
	t.Parallel()

	t.Run("absent item is a no-op", func(t *testing.T) {
		t.Parallel()

		c := newTestController(t, model.PolicyStack)
		if _, ok := c.OnQuantityEdited("X", "-5"); ok {
			t.Error("expected edit of absent item to be ignored")
		}
		if len(c.Items()) != 0 {
			t.Error("expected ledger to stay empty")
		}
	})

	t.Run("clamps large values", func(t *testing.T) {
		t.Parallel()

		c := newTestController(t, model.PolicyStack)
		c.OnItemActivated("X", "C")
		item, ok := c.OnQuantityEdited("X", "1500")
		if !ok || item.Quantity != model.MaxQuantity {
			t.Errorf("expected quantity %d, got %+v", model.MaxQuantity, item)
		}
	})
}

// TestRemoveAndClear tests removal handlers.
func TestRemoveAndClear(t *testing.T) {
	t.Parallel()

	c := newTestController(t, model.PolicyStack)
	c.OnItemActivated("Opium", "A")
	c.OnItemActivated("Dice", "D")

	if !c.OnRemove("Opium") {
		t.Error("expected Opium to be removed")
	}
	if c.OnRemove("Opium") {
		t.Error("expected second removal to report false")
	}

	c.OnClearAll()
	if !c.GetRenderModel().IsEmpty() {
		t.Error("expected empty render model after clear")
	}
}

// TestGetRenderModel tests the derived view.
func TestGetRenderModel(t *testing.T) {
	t.Parallel()

	c := newTestController(t, model.PolicyStack,
		WithLabels(model.Labels{model.CategoryWeapon: "Firearm"}))
	c.OnItemActivated("Revolver", "W")
	c.OnItemActivated("Moonshine", "B")
	c.OnQuantityEdited("Moonshine", "2")

	got := c.GetRenderModel()

	var labels []string
	for _, g := range got.Groups {
		labels = append(labels, g.Label)
	}
	if diff := cmp.Diff([]string{"Class B Contraband", "Firearm"}, labels); diff != "" {
		t.Errorf("group labels mismatch (-want +got):\n%s", diff)
	}
	if got.GrandTotal != 200 || got.ItemCount != 2 || got.UnitCount != 3 {
		t.Errorf("unexpected totals: %+v", got)
	}
}

// TestGetSummaryText tests summary text through the controller.
func TestGetSummaryText(t *testing.T) {
	t.Parallel()

	t.Run("uses controller labels by default", func(t *testing.T) {
		t.Parallel()

		c := newTestController(t, model.PolicyStack,
			WithLabels(model.Labels{model.CategoryWeapon: "Firearm"}))
		c.OnItemActivated("Revolver", "W")
		c.OnItemActivated("Moonshine", "B")
		c.OnItemActivated("Moonshine", "B")

		opts := report.DefaultSelectionOptions()
		opts.Labels = nil
		got := c.GetSummaryText(opts)
		want := "Moonshine - 2x - Class B Contraband, Revolver - 1x - Firearm"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("empty selection", func(t *testing.T) {
		t.Parallel()

		c := newTestController(t, model.PolicyStack)
		if got := c.GetSummaryText(report.DefaultSelectionOptions()); got != "" {
			t.Errorf("expected empty text, got %q", got)
		}
	})
}

// TestGetBriefingText tests briefing rendering through the controller.
func TestGetBriefingText(t *testing.T) {
	t.Parallel()

	t.Run("valid form", func(t *testing.T) {
		t.Parallel()

		c := newTestController(t, model.PolicyStack)
		form := model.NewBriefingForm()
		form.Date = "2024-01-01"
		form.Time = "18:00"

		got, err := c.GetBriefingText(form, report.DefaultBriefingOptions())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(got, "<t:1704132000:F>") {
			t.Errorf("expected timestamp token, got:\n%s", got)
		}
	})

	t.Run("invalid timestamp is logged and returned", func(t *testing.T) {
		t.Parallel()

		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, nil))
		c := New(model.PolicyStack, WithLogger(logger))

		form := model.NewBriefingForm()
		form.Date = "yesterday"
		form.Time = "18:00"

		if _, err := c.GetBriefingText(form, report.DefaultBriefingOptions()); !errors.Is(err, model.ErrInvalidTimestamp) {
			t.Fatalf("expected ErrInvalidTimestamp, got %v", err)
		}
		if !strings.Contains(logs.String(), "briefing rejected") {
			t.Errorf("expected warning in logs, got %q", logs.String())
		}
	})
}

// TestDebugLogging checks that mutations are logged at debug level.
func TestDebugLogging(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c := New(model.PolicyStack, WithLogger(logger))

	c.OnItemActivated("Opium", "A")
	c.OnRemove("Opium")

	output := logs.String()
	for _, msg := range []string{"item activated", "item removed", "item=Opium"} {
		if !strings.Contains(output, msg) {
			t.Errorf("expected %q in logs:\n%s", msg, output)
		}
	}
}

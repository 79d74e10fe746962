package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/nao1215/contraband/internal/model"
)

// createTestModel creates a render model with sample data for testing.
func createTestModel(t *testing.T) model.RenderModel {
	t.Helper()

	l := newTestLedger(t,
		entry{"Revolver", "W", ""},
		entry{"Moonshine", "B", "2"},
		entry{"Opium", "A", "3"},
		entry{"Trinket", "Z", ""},
	)
	return model.Project(l, model.DefaultLabels())
}

// TestSimpleWriter tests the human-readable writer.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes group headings in upper case", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(createTestModel(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, heading := range []string{"CLASS A CONTRABAND", "CLASS B CONTRABAND", "WEAPON", "UNKNOWN"} {
			if !strings.Contains(output, heading) {
				t.Errorf("expected heading %q in output:\n%s", heading, output)
			}
		}
		if strings.Index(output, "CLASS A CONTRABAND") > strings.Index(output, "CLASS B CONTRABAND") {
			t.Error("expected class A before class B")
		}
	})

	t.Run("writes totals with thousands separators", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(createTestModel(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "TOTAL FINE: $3,200") {
			t.Errorf("expected grand total in output:\n%s", output)
		}
		if !strings.Contains(output, "Items: 4  Units: 7") {
			t.Errorf("expected counts in output:\n%s", output)
		}
	})

	t.Run("shows raw code for unknown items", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(createTestModel(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "(Z)") {
			t.Errorf("expected raw code in output:\n%s", buf.String())
		}
	})

	t.Run("options change currency and show rates", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf, WithCurrency("€"), WithRates(true))
		if _, err := w.Write(createTestModel(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "@ €1,000") {
			t.Errorf("expected rate in output:\n%s", output)
		}
		if !strings.Contains(output, "TOTAL FINE: €3,200") {
			t.Errorf("expected currency in output:\n%s", output)
		}
	})

	t.Run("empty model prints empty state", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		m := model.Project(model.NewLedger(model.PolicyStack), model.DefaultLabels())
		n, err := NewSimpleWriter(&buf).Write(m)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if buf.String() != "No items selected\n" {
			t.Errorf("unexpected output %q", buf.String())
		}
		if n != buf.Len() {
			t.Errorf("expected %d bytes reported, got %d", buf.Len(), n)
		}
	})
}

// TestJSONWriter tests the JSON writer.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes valid compact JSON", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(createTestModel(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded map[string]any
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if decoded["grand_total"].(float64) != 3200 {
			t.Errorf("expected grand_total 3200, got %v", decoded["grand_total"])
		}
		if strings.Count(buf.String(), "\n") != 1 {
			t.Error("expected compact single-line output")
		}
	})

	t.Run("encodes categories as codes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(createTestModel(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), `"category":"A"`) {
			t.Errorf("expected category code in output: %s", buf.String())
		}
	})

	t.Run("pretty print indents", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(createTestModel(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  \"groups\"") {
			t.Errorf("expected indented output, got %s", buf.String())
		}
	})
}

// TestMarkdownWriter tests the Markdown writer.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes tables, alert and chart", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf, "").Write(createTestModel(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"# Contraband Ledger",
			"## Class A Contraband",
			"## Totals",
			"[!CAUTION]",
			"```mermaid",
			"$3,200",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected %q in output:\n%s", want, output)
			}
		}
	})

	t.Run("empty model", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		m := model.Project(model.NewLedger(model.PolicyStack), model.DefaultLabels())
		if _, err := NewMarkdownWriter(&buf, "Seizures").Write(m); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		output := buf.String()
		if !strings.Contains(output, "# Seizures") || !strings.Contains(output, "No items selected") {
			t.Errorf("unexpected output:\n%s", output)
		}
		if strings.Contains(output, "mermaid") {
			t.Error("expected no chart for empty model")
		}
	})
}

// failingWriter is a Writer that always fails.
type failingWriter struct{}

func (failingWriter) Write(model.RenderModel) (int, error) {
	return 0, errors.New("write failed")
}

// TestMultiWriter tests writing to several writers.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to all writers", func(t *testing.T) {
		t.Parallel()

		var simple, js bytes.Buffer
		mw := NewMultiWriter(NewSimpleWriter(&simple), NewJSONWriter(&js))

		n, err := mw.Write(createTestModel(t))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if simple.Len() == 0 || js.Len() == 0 {
			t.Error("expected both writers to receive output")
		}
		if n != simple.Len()+js.Len() {
			t.Errorf("expected %d bytes, got %d", simple.Len()+js.Len(), n)
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		var after bytes.Buffer
		mw := NewMultiWriter(failingWriter{}, NewSimpleWriter(&after))

		if _, err := mw.Write(createTestModel(t)); err == nil {
			t.Fatal("expected error")
		}
		if after.Len() != 0 {
			t.Error("expected later writers to be skipped")
		}
	})
}

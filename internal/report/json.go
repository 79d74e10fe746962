package report

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/nao1215/contraband/internal/model"
)

// JSONWriter encodes render models as JSON, one document per call.
//
// encoding/json covers this: the payload is a handful of plain structs and
// no library in use offers anything beyond it.
type JSONWriter struct {
	baseWriter
	pretty bool
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint indents nested values by two spaces.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.pretty = true
	}
}

// NewJSONWriter creates a JSONWriter. Output is compact unless
// WithPrettyPrint is given.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write implements Writer.
func (w *JSONWriter) Write(m model.RenderModel) (int, error) {
	return w.WriteValue(m)
}

// WriteValue encodes v followed by a newline. Item names are written as
// typed: '<', '>' and '&' are not escaped.
func (w *JSONWriter) WriteValue(v any) (int, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if w.pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return 0, err
	}
	return w.output.Write(buf.Bytes())
}

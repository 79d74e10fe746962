package report

import (
	"io"

	"github.com/nao1215/contraband/internal/model"
)

// Writer draws a render model in one output format and reports the number
// of bytes written.
type Writer interface {
	Write(m model.RenderModel) (int, error)
}

// MultiWriter fans one render model out to several Writers in order.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter returns a MultiWriter over writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write sums the bytes written by each Writer and stops at the first error.
func (m *MultiWriter) Write(rm model.RenderModel) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(rm)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter holds the destination shared by every format.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

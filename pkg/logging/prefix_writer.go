package logging

import (
	"bytes"
	"io"
	"sync"
)

// PrefixWriter writes each complete line to the underlying writer with a
// prefix. Partial lines are held until their newline arrives.
type PrefixWriter struct {
	prefix []byte
	w      io.Writer

	mu      sync.Mutex
	pending []byte
}

// NewPrefixWriter wraps w.
func NewPrefixWriter(prefix string, w io.Writer) *PrefixWriter {
	return &PrefixWriter{prefix: []byte(prefix), w: w}
}

func (pw *PrefixWriter) Write(p []byte) (int, error) {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	pw.pending = append(pw.pending, p...)
	for {
		i := bytes.IndexByte(pw.pending, '\n')
		if i < 0 {
			break
		}
		line := pw.pending[:i+1]
		if _, err := pw.w.Write(append(append([]byte{}, pw.prefix...), line...)); err != nil {
			return 0, err
		}
		pw.pending = pw.pending[i+1:]
	}
	return len(p), nil
}

// Flush writes any buffered partial line.
func (pw *PrefixWriter) Flush() error {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	if len(pw.pending) == 0 {
		return nil
	}
	_, err := pw.w.Write(append(append([]byte{}, pw.prefix...), pw.pending...))
	pw.pending = nil
	return err
}

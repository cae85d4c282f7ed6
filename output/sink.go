// Package output delivers serialized vocabularies to a file, a stream or a
// NATS subject.
package output

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Sink receives one serialized vocabulary per conversion run.
type Sink interface {
	// Write delivers data. name identifies the run (e.g. the source file).
	Write(ctx context.Context, name string, data []byte) error
	Close() error
}

// FileSink writes to a fixed path. Data goes to a temporary sibling first and
// is renamed into place, so readers never see a partial document.
type FileSink struct {
	path string
}

// NewFileSink creates a sink writing to path.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Path returns the destination path.
func (s *FileSink) Path() string {
	return s.path
}

// Write replaces the destination file with data.
func (s *FileSink) Write(ctx context.Context, _ string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmp := fmt.Sprintf("%s.%s.tmp", s.path, uuid.New().String())
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace output file: %w", err)
	}
	return nil
}

// Close is a no-op.
func (s *FileSink) Close() error {
	return nil
}

// WriterSink writes to a stream such as stdout.
type WriterSink struct {
	w io.Writer
}

// NewWriterSink creates a sink writing to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Write copies data to the stream.
func (s *WriterSink) Write(ctx context.Context, _ string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.w.Write(data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// Close is a no-op; the stream belongs to the caller.
func (s *WriterSink) Close() error {
	return nil
}

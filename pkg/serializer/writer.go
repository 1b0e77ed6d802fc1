package serializer

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/NVIDIA/hostdiag/pkg/errors"
)

const (
	lineSeparator = "\n"
	filePerm      = 0o644
	tempPattern   = ".hostdiag-*.tmp"
)

// Writer writes lines to an io.Writer.
type Writer struct {
	output io.Writer
}

// NewWriter creates a new Writer for the given output destination.
// If output is nil, os.Stdout will be used.
func NewWriter(output io.Writer) *Writer {
	if output == nil {
		output = os.Stdout
	}
	return &Writer{output: output}
}

// NewStdoutWriter creates a new Writer that outputs to stdout.
func NewStdoutWriter() *Writer {
	return &Writer{output: os.Stdout}
}

// NewFileWriterOrStdout returns an atomic FileWriter for path, or a stdout
// Writer when path is empty or "-".
func NewFileWriterOrStdout(path string) Sink {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" || trimmed == StdoutURI {
		return NewStdoutWriter()
	}
	return NewFileWriter(trimmed)
}

// WriteLines writes every line followed by a newline.
func (w *Writer) WriteLines(ctx context.Context, lines []string) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeSink, "write canceled", err)
	}
	bw := bufio.NewWriter(w.output)
	if err := writeLines(bw, lines); err != nil {
		return errors.Wrap(errors.ErrCodeSink, "failed to write report", err)
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(errors.ErrCodeSink, "failed to flush report", err)
	}
	return nil
}

// FileWriter replaces a file atomically with the written lines.
type FileWriter struct {
	path string
}

// NewFileWriter creates a FileWriter targeting path.
func NewFileWriter(path string) *FileWriter {
	return &FileWriter{path: path}
}

// WriteLines writes lines to a temporary file next to the target and renames
// it into place. The target is left untouched on failure.
func (w *FileWriter) WriteLines(ctx context.Context, lines []string) (err error) {
	ectx := map[string]any{"path": w.path}

	if err := ctx.Err(); err != nil {
		return errors.WrapWithContext(errors.ErrCodeSink, "write canceled", err, ectx)
	}

	tmp, err := os.CreateTemp(filepath.Dir(w.path), tempPattern)
	if err != nil {
		return errors.WrapWithContext(errors.ErrCodeSink, "failed to create output file", err, ectx)
	}
	tmpName := tmp.Name()

	closed := false
	defer func() {
		if !closed {
			_ = tmp.Close()
		}
		if err != nil {
			if rmErr := os.Remove(tmpName); rmErr != nil && !os.IsNotExist(rmErr) {
				slog.Warn("failed to remove temporary report file", "path", tmpName, "error", rmErr)
			}
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err = writeLines(bw, lines); err != nil {
		return errors.WrapWithContext(errors.ErrCodeSink, "failed to write report", err, ectx)
	}
	if err = bw.Flush(); err != nil {
		return errors.WrapWithContext(errors.ErrCodeSink, "failed to flush report", err, ectx)
	}
	if err = tmp.Sync(); err != nil {
		return errors.WrapWithContext(errors.ErrCodeSink, "failed to sync report", err, ectx)
	}
	if err = tmp.Chmod(filePerm); err != nil {
		return errors.WrapWithContext(errors.ErrCodeSink, "failed to set report permissions", err, ectx)
	}
	closed = true
	if err = tmp.Close(); err != nil {
		return errors.WrapWithContext(errors.ErrCodeSink, "failed to close report", err, ectx)
	}
	if err = ctx.Err(); err != nil {
		return errors.WrapWithContext(errors.ErrCodeSink, "write canceled", err, ectx)
	}
	if err = os.Rename(tmpName, w.path); err != nil {
		return errors.WrapWithContext(errors.ErrCodeSink, "failed to replace output file", err, ectx)
	}

	slog.Debug("report written", "path", w.path, "lines", len(lines))
	return nil
}

func writeLines(w io.StringWriter, lines []string) error {
	for _, l := range lines {
		if _, err := w.WriteString(l); err != nil {
			return err
		}
		if _, err := w.WriteString(lineSeparator); err != nil {
			return err
		}
	}
	return nil
}

// Package ioutil provides transparent gzip-aware input/output, using
// klauspost/pgzip so both directions can use parallel (de)compression.
package ioutil

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/klauspost/pgzip"
)

const WriterBufferSize = 1 << 20

type readCloser struct {
	r     io.Reader
	close func() error
}

func (r readCloser) Read(p []byte) (int, error) { return r.r.Read(p) }
func (r readCloser) Close() error                { return r.close() }

// OpenInput opens path, transparently wrapping it in a parallel gzip reader
// when the name ends in ".gz".
func OpenInput(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".gz") {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("open gzip reader: %w", err)
		}
		return readCloser{
			r: gz,
			close: func() error {
				_ = gz.Close()
				return f.Close()
			},
		}, nil
	}
	return f, nil
}

// WriteCloser bundles a buffered writer with whatever layers (gzip, file)
// need to be flushed and closed in order.
type WriteCloser struct {
	w      *bufio.Writer
	layers []io.Closer
	file   *os.File
}

func (w *WriteCloser) Write(p []byte) (int, error) { return w.w.Write(p) }
func (w *WriteCloser) WriteString(s string) (int, error) { return w.w.WriteString(s) }

// Close flushes the buffered writer and closes every layer in reverse order.
func (w *WriteCloser) Close() error {
	if err := w.w.Flush(); err != nil {
		return err
	}
	for i := len(w.layers) - 1; i >= 0; i-- {
		if err := w.layers[i].Close(); err != nil {
			return err
		}
	}
	return w.file.Close()
}

// CreateOutput creates path, transparently wrapping it in a parallel gzip
// writer (sized to workers, or GOMAXPROCS when workers <= 0) when the name
// ends in ".gz".
func CreateOutput(path string, workers int) (*WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return &WriteCloser{w: bufio.NewWriterSize(f, WriterBufferSize), file: f}, nil
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	gz, err := pgzip.NewWriterLevel(f, pgzip.DefaultCompression)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("create gzip writer: %w", err)
	}
	if err := gz.SetConcurrency(1<<20, workers); err != nil {
		_ = gz.Close()
		_ = f.Close()
		return nil, fmt.Errorf("set gzip concurrency: %w", err)
	}
	return &WriteCloser{
		w:      bufio.NewWriterSize(gz, WriterBufferSize),
		layers: []io.Closer{gz},
		file:   f,
	}, nil
}

// FileSize returns the on-disk size of path, or 0 if it cannot be stat'd
// (e.g. stdin). Used to seed approximate progress bars.
func FileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

// ReadAll reads the full (decompressed) contents of path into memory. Used
// by components that need random access to the bytes (sequence filter
// chunk splitting).
func ReadAll(path string) ([]byte, error) {
	rc, err := OpenInput(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return io.ReadAll(rc)
}

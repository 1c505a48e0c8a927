// Package scan implements a byte-oriented line/field scanner: a single
// linear pass over an owned byte buffer, splitting on newlines and then on
// a single delimiter byte, without allocating per line or per field. Report
// and log parsing run on one goroutine, so this stays single-threaded.
package scan

import "bytes"

// Scanner iterates newline-delimited lines of an owned buffer.
type Scanner struct {
	buf    []byte
	pos    int
	line   []byte
	lineNo int64
}

// New wraps buf. The caller retains ownership; Scanner never copies it.
func New(buf []byte) *Scanner {
	return &Scanner{buf: buf}
}

// Scan advances to the next non-empty line, trimming a trailing \r. It
// returns false at end of input. Line() is only valid until the next call
// to Scan.
func (s *Scanner) Scan() bool {
	for s.pos < len(s.buf) {
		start := s.pos
		nl := bytes.IndexByte(s.buf[start:], '\n')
		var end int
		if nl < 0 {
			end = len(s.buf)
			s.pos = len(s.buf)
		} else {
			end = start + nl
			s.pos = end + 1
		}
		line := s.buf[start:end]
		if len(line) > 0 && line[len(line)-1] == '\r' {
			line = line[:len(line)-1]
		}
		s.lineNo++
		if len(line) == 0 {
			continue
		}
		s.line = line
		return true
	}
	return false
}

// Line returns the current line, a slice into the scanner's owned buffer.
func (s *Scanner) Line() []byte { return s.line }

// LineNo returns the 1-based line number of the current line (counting
// blank lines, matching a text editor's line numbering).
func (s *Scanner) LineNo() int64 { return s.lineNo }

// Fields splits line on sep, appending field slices to dst (which may be
// dst[:0] from a caller-owned buffer to avoid allocation) and returns the
// result. Fields point into line; no bytes are copied.
func Fields(line []byte, sep byte, dst [][]byte) [][]byte {
	start := 0
	for i := 0; i < len(line); i++ {
		if line[i] == sep {
			dst = append(dst, line[start:i])
			start = i + 1
		}
	}
	dst = append(dst, line[start:])
	return dst
}

// Package count implements line counting for the linecount tool.
//
// It provides the two counting modes, the extension filter deciding which
// files are counted, a per-file Processor, and a CountWalker that totals the
// files produced by a linecount.Walker.
package count

import (
	"bytes"
	"errors"
	"io"
)

const (
	// DefaultBufferSize is the read chunk size used when none is configured.
	DefaultBufferSize = 8 * 1024

	// MaxBufferSize bounds the read chunk size. Larger sizes are clamped.
	MaxBufferSize = 1024 * 1024 * 1024
)

// CountLines counts newline bytes in r, reading bufSize bytes at a time.
//
// A final line without a terminating newline is not counted. On a read
// error the count accumulated so far is returned along with the error.
func CountLines(r io.Reader, bufSize int) (int64, error) {
	buf := make([]byte, normalizeBufferSize(bufSize))
	var total int64

	for {
		n, err := r.Read(buf)
		total += int64(bytes.Count(buf[:n], newline))
		if errors.Is(err, io.EOF) {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// CountNonEmptyLines counts lines holding at least one byte other than
// space, tab, or carriage return, reading bufSize bytes at a time.
//
// A final non-empty line without a terminating newline is counted. On a
// read error the count accumulated so far is returned along with the error,
// and the unterminated line in progress is dropped.
func CountNonEmptyLines(r io.Reader, bufSize int) (int64, error) {
	buf := make([]byte, normalizeBufferSize(bufSize))
	var total int64
	hasData := false

	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			switch b {
			case '\n':
				if hasData {
					total++
				}
				hasData = false
			case '\r', ' ', '\t':
			default:
				hasData = true
			}
		}

		if errors.Is(err, io.EOF) {
			if hasData {
				total++
			}
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

var newline = []byte{'\n'}

func normalizeBufferSize(n int) int {
	if n <= 0 {
		return DefaultBufferSize
	}
	return min(n, MaxBufferSize)
}

// Package scanner splits raw byte chunks into newline-terminated items.
package scanner

import "bytes"

// PushFunc receives one complete line, without its trailing newline. The
// slice is only valid for the duration of the call.
type PushFunc func(line []byte) error

// LineScanner is a stateful splitter for a byte stream arriving in
// arbitrary chunks. Lines end at '\n'; a trailing '\r' before the newline
// is stripped. Bytes after the last newline are buffered until the next
// Feed or Finalize. The zero value is ready to use.
type LineScanner struct {
	buf []byte
}

// Feed consumes chunk and calls push once per complete line. It returns
// the number of lines pushed. On a push error, feeding stops and the
// remainder of the chunk is dropped.
func (ls *LineScanner) Feed(chunk []byte, push PushFunc) (uint32, error) {
	var n uint32
	for {
		idx := bytes.IndexByte(chunk, '\n')
		if idx < 0 {
			ls.buf = append(ls.buf, chunk...)
			return n, nil
		}

		line := chunk[:idx]
		chunk = chunk[idx+1:]
		if len(ls.buf) > 0 {
			ls.buf = append(ls.buf, line...)
			line = ls.buf
		}
		if len(line) > 0 && line[len(line)-1] == '\r' {
			line = line[:len(line)-1]
		}

		err := push(line)
		ls.buf = ls.buf[:0]
		if err != nil {
			return n, err
		}
		n++
	}
}

// Finalize flushes any buffered unterminated bytes as one final item.
// It reports whether an item was pushed.
func (ls *LineScanner) Finalize(push PushFunc) (bool, error) {
	if len(ls.buf) == 0 {
		return false, nil
	}
	err := push(ls.buf)
	ls.buf = ls.buf[:0]
	if err != nil {
		return false, err
	}
	return true, nil
}

// Package backwardio implements a buffered scanner that reads delimited tokens
// starting from the end of a file.
package backwardio

import (
	"bufio"
	"bytes"
	"io"

	"github.com/pkg/errors"
)

// maxTok is the longest token that can be returned. It is also the size of
// each chunk read from the underlying reader.
var maxTok = bufio.MaxScanTokenSize

// Scanner reads tokens from the end of a reader towards its start.
type Scanner struct {
	r   io.ReadSeeker
	buf []byte // unread bytes, starting at off
	off int64

	started bool
	done    bool
}

// NewScanner creates a new backwards scanner. The reader is not touched until
// the first call to ReadUntil.
func NewScanner(r io.ReadSeeker) *Scanner {
	return &Scanner{r: r}
}

// ReadUntil returns the bytes between the last unread delimiter and the end of
// the unread region, excluding the delimiter. Tokens are returned from last to
// first, so a trailing delimiter yields an empty token first. io.EOF is
// returned once the start of the reader has been returned.
func (s *Scanner) ReadUntil(delim byte) ([]byte, error) {
	for !s.done {
		if s.started {
			if i := bytes.LastIndexByte(s.buf, delim); i >= 0 {
				tok := s.buf[i+1:]
				s.buf = s.buf[:i]
				return tok, nil
			}

			if s.off == 0 {
				tok := s.buf
				s.buf = nil
				s.done = true
				return tok, nil
			}

			if len(s.buf) >= maxTok {
				return nil, bufio.ErrTooLong
			}
		}

		if err := s.fill(); err != nil {
			return nil, err
		}
	}

	return nil, io.EOF
}

// fill prepends the chunk right before the unread region to the buffer.
func (s *Scanner) fill() error {
	if !s.started {
		end, err := s.r.Seek(0, io.SeekEnd)
		if err != nil {
			return errors.Wrap(err, "failed to find end of file")
		}

		s.started = true
		s.off = end

		if end == 0 {
			s.done = true
			return io.EOF
		}
	}

	n := int64(maxTok)
	if n > s.off {
		n = s.off
	}

	if _, err := s.r.Seek(s.off-n, io.SeekStart); err != nil {
		return errors.Wrap(err, "failed to seek backwards")
	}

	chunk := make([]byte, n, n+int64(len(s.buf)))
	if _, err := io.ReadFull(s.r, chunk); err != nil {
		return errors.Wrap(err, "failed to read seeked chunk")
	}

	s.buf = append(chunk, s.buf...)
	s.off -= n

	return nil
}

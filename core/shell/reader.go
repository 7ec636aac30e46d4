package shell

import (
	"bufio"
	"io"

	"github.com/josephlewis42/rsh/core/growbuf"
)

// LineReader reads newline terminated lines one byte at a time.
type LineReader struct {
	r    io.ByteReader
	opts growbuf.Options
	eof  bool
}

// NewLineReader wraps r, buffering it unless it already reads bytes.
func NewLineReader(r io.Reader, opts growbuf.Options) *LineReader {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &LineReader{r: br, opts: opts}
}

// ReadLine returns the next line without its newline.
//
// A final line without a newline is returned normally and the following call
// reports io.EOF, so an empty line and the end of input are distinct. If the
// line outgrows its buffer the rest of it is skipped and
// growbuf.ErrExhausted is returned.
func (lr *LineReader) ReadLine() (string, error) {
	if lr.eof {
		return "", io.EOF
	}

	buf := growbuf.NewBytes(lr.opts)
	for {
		c, err := lr.r.ReadByte()
		switch {
		case err == io.EOF:
			lr.eof = true
			if buf.Len() == 0 {
				return "", io.EOF
			}
			return buf.String(), nil
		case err != nil:
			return "", err
		case c == '\n':
			return buf.String(), nil
		}

		if err := buf.WriteByte(c); err != nil {
			lr.skipLine()
			return "", err
		}
	}
}

func (lr *LineReader) skipLine() {
	for {
		c, err := lr.r.ReadByte()
		if err == io.EOF {
			lr.eof = true
			return
		}
		if err != nil || c == '\n' {
			return
		}
	}
}

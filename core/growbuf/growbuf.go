// Package growbuf provides owned containers that grow in fixed increments up
// to an optional limit.
package growbuf

import "errors"

// ErrExhausted is returned when a container would have to grow past its limit.
var ErrExhausted = errors.New("buffer allocation error")

// Options controls how a container grows.
type Options struct {
	// Increment is the number of elements added to the capacity on each growth.
	Increment int
	// Limit is the maximum number of elements held, zero means unbounded.
	Limit int
}

func (o Options) increment() int {
	if o.Increment <= 0 {
		return 1
	}
	return o.Increment
}

// nextCap returns the capacity to grow to when holding n elements, or
// ErrExhausted if n+1 elements would exceed the limit.
func (o Options) nextCap(n, capacity int) (int, error) {
	if o.Limit > 0 && n+1 > o.Limit {
		return 0, ErrExhausted
	}
	if n < capacity {
		return capacity, nil
	}
	next := capacity + o.increment()
	if o.Limit > 0 && next > o.Limit {
		next = o.Limit
	}
	return next, nil
}

// Bytes is a growable byte buffer.
type Bytes struct {
	opts Options
	buf  []byte
}

// NewBytes creates an empty byte buffer with an initial capacity of one
// increment.
func NewBytes(opts Options) *Bytes {
	initial := opts.increment()
	if opts.Limit > 0 && initial > opts.Limit {
		initial = opts.Limit
	}
	return &Bytes{opts: opts, buf: make([]byte, 0, initial)}
}

// WriteByte appends c, growing the buffer if needed.
func (b *Bytes) WriteByte(c byte) error {
	next, err := b.opts.nextCap(len(b.buf), cap(b.buf))
	if err != nil {
		return err
	}
	if next != cap(b.buf) {
		grown := make([]byte, len(b.buf), next)
		copy(grown, b.buf)
		b.buf = grown
	}
	b.buf = append(b.buf, c)
	return nil
}

// Len returns the number of bytes held.
func (b *Bytes) Len() int {
	return len(b.buf)
}

// Cap returns the current capacity.
func (b *Bytes) Cap() int {
	return cap(b.buf)
}

// String returns a copy of the contents.
func (b *Bytes) String() string {
	return string(b.buf)
}

// Strings is a growable list of strings.
type Strings struct {
	opts  Options
	items []string
}

// NewStrings creates an empty list with an initial capacity of one increment.
func NewStrings(opts Options) *Strings {
	initial := opts.increment()
	if opts.Limit > 0 && initial > opts.Limit {
		initial = opts.Limit
	}
	return &Strings{opts: opts, items: make([]string, 0, initial)}
}

// Append adds s to the end of the list, growing it if needed.
func (s *Strings) Append(item string) error {
	next, err := s.opts.nextCap(len(s.items), cap(s.items))
	if err != nil {
		return err
	}
	if next != cap(s.items) {
		grown := make([]string, len(s.items), next)
		copy(grown, s.items)
		s.items = grown
	}
	s.items = append(s.items, item)
	return nil
}

// Len returns the number of items held.
func (s *Strings) Len() int {
	return len(s.items)
}

// Cap returns the current capacity.
func (s *Strings) Cap() int {
	return cap(s.items)
}

// Slice returns the items. The caller owns the returned slice.
func (s *Strings) Slice() []string {
	return s.items
}

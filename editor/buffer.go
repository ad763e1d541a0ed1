package editor

import (
	"io"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Len returns the number of bytes in buffer.
func (d *Document) Len() int {
	return d.buf.Len()
}

// Write implements io.Writer by inserting p at the dot. If dot has content, it is
// replaced. The dot ends up as a cursor after the inserted bytes.
func (d *Document) Write(p []byte) (int, error) {
	if d.q1 > d.q0 {
		d.deleteRange(d.q0, d.q1)
	}
	d.buf.Seek(d.q0)
	n, err := d.buf.Write(p)
	if err != nil {
		return n, err
	}
	d.SetDot(d.q0+n, d.q0+n)
	return n, nil
}

// Delete removes current selection in dot. If dot is empty, it deletes the rune before
// the cursor. It returns the number of bytes removed.
func (d *Document) Delete() (int, error) {
	if d.q1 > d.q0 {
		return d.deleteRange(d.q0, d.q1), nil
	}
	if d.q0 == 0 {
		return 0, nil
	}
	_, size, err := d.ReadRuneAt(d.q0 - 1)
	if err != nil {
		return 0, errors.Wrap(err, "delete")
	}
	return d.deleteRange(d.q0-size, d.q0), nil
}

func (d *Document) deleteRange(q0, q1 int) int {
	d.buf.Seek(q1)
	n := d.buf.Delete(q1 - q0)
	d.SetDot(q0, q0)
	return n
}

// ReadRune reads a rune from buffer and advances the internal offset set by Seek. This
// could be called in sequence to get all runes from buffer.
func (d *Document) ReadRune() (r rune, size int, err error) {
	r, size, err = d.ReadRuneAt(d.off)
	if err != nil {
		return
	}
	d.off = d.runeStart(d.off) + size
	return
}

// ReadRuneAt returns the rune and its size at offset. If offset is inside a multi-byte
// rune, it backs up to the start of that rune. A byte that is not part of a valid UTF-8
// sequence is returned as utf8.RuneError of size 1.
func (d *Document) ReadRuneAt(offset int) (r rune, size int, err error) {
	offset = d.runeStart(offset)
	if _, err = d.buf.ByteAt(offset); err != nil {
		return 0, 0, err
	}
	r, size = d.decodeAt(offset)
	return r, size, nil
}

// decodeAt decodes the rune starting at offset, which must be inside the buffer.
func (d *Document) decodeAt(offset int) (rune, int) {
	c, _ := d.buf.ByteAt(offset)
	if c < utf8.RuneSelf {
		return rune(c), 1
	}
	if cap(d.runeBuf) < utf8.UTFMax {
		d.runeBuf = make([]byte, utf8.UTFMax)
	}
	d.runeBuf = d.runeBuf[:utf8.UTFMax]
	n, _ := d.buf.ReadAt(d.runeBuf, offset)
	return utf8.DecodeRune(d.runeBuf[:n])
}

// runeStart backs offset up to the first byte of the valid multi-byte rune it points
// into. A continuation byte outside such a rune starts a rune of its own.
func (d *Document) runeStart(offset int) int {
	c, err := d.buf.ByteAt(offset)
	if err != nil || utf8.RuneStart(c) {
		return offset
	}
	for back := 1; back < utf8.UTFMax && offset-back >= 0; back++ {
		c, err := d.buf.ByteAt(offset - back)
		if err != nil {
			break
		}
		if !utf8.RuneStart(c) {
			continue
		}
		r, size := d.decodeAt(offset - back)
		if (r != utf8.RuneError || size > 1) && size > back {
			return offset - back
		}
		break
	}
	return offset
}

// ReadDot returns content of current dot.
func (d *Document) ReadDot() string {
	if d.q0 == d.q1 {
		return ""
	}
	p := make([]byte, d.q1-d.q0)
	if _, err := d.buf.ReadAt(p, d.q0); err != nil {
		return ""
	}
	return string(p)
}

// Dot returns current offsets for dot.
func (d *Document) Dot() (int, int) {
	return d.q0, d.q1
}

// Seek implements io.Seeker and sets the internal offset for next ReadRune().
func (d *Document) Seek(offset int64, whence int) (int64, error) {
	off := int(offset)
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		off += d.off
	case io.SeekEnd:
		off += d.Len()
	default:
		return 0, errors.New("invalid whence")
	}
	if off < 0 {
		return 0, errors.New("negative offset")
	}
	d.off = d.runeStart(off)
	return int64(d.off), nil
}

// SeekDot sets the dot to a single offset in the text buffer.
func (d *Document) SeekDot(offset, whence int) (int, error) {
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		offset += d.q0
	case io.SeekEnd:
		offset += d.Len()
	default:
		return 0, errors.New("invalid whence")
	}
	q0, _ := d.SetDot(offset, offset)
	return q0, nil
}

// SetDot sets both ends of the dot. Offsets are clamped to the buffer, put in order and
// moved back to a rune start. It returns the final offsets.
func (d *Document) SetDot(q0, q1 int) (int, int) {
	if q0 > q1 {
		q0, q1 = q1, q0
	}
	d.q0 = d.runeStart(clamp(q0, 0, d.Len()))
	d.q1 = d.runeStart(clamp(q1, 0, d.Len()))
	return d.q0, d.q1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NextRune returns the offset of the rune after the one at offset.
func (d *Document) NextRune(offset int) int {
	_, size, err := d.ReadRuneAt(offset)
	if err != nil {
		return d.Len()
	}
	return d.runeStart(offset) + size
}

// PrevRune returns the offset of the rune before offset.
func (d *Document) PrevRune(offset int) int {
	if offset <= 0 {
		return 0
	}
	return d.runeStart(offset - 1)
}

// NextDelim returns number of bytes from offset up until the next delim, or until the end
// of the buffer.
func (d *Document) NextDelim(delim byte, offset int) (n int) {
	for {
		c, err := d.buf.ByteAt(offset + n)
		if err != nil || c == delim {
			return n
		}
		n++
	}
}

// PrevDelim returns number of bytes from offset back to just after the previous delim, or
// to the start of the buffer.
func (d *Document) PrevDelim(delim byte, offset int) (n int) {
	for offset-n > 0 {
		c, err := d.buf.ByteAt(offset - n - 1)
		if err != nil || c == delim {
			return n
		}
		n++
	}
	return n
}

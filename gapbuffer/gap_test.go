package gapbuffer_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/prodhe/jot/gapbuffer"
)

const lipsum = `Fusce vitae molestie tortor. Fusce congue ornare risus vitae dignissim. Praesent volutpat erat sit amet posuere varius. Fusce id fermentum risus. In ac eros varius, fringilla erat ac, cursus odio. Nunc consectetur vitae dolor non cursus. Sed eleifend imperdiet sem sit amet rutrum. Nulla pretium et ante eu lobortis. Suspendisse porta sodales fermentum.

Proin dignissim lorem sed leo aliquam rutrum. Donec vel lorem vitae dui mollis lobortis. Nam ac ornare tellus, ac venenatis nulla. Curabitur sagittis at nulla id blandit.`

func TestReadAt(t *testing.T) {
	gb := gapbuffer.New(lipsum)

	var tt = []struct {
		name      string
		seek      int
		offset    int
		len       int
		want      int
		wantbytes []byte
		wanterr   error
	}{
		{"first", 0, 0, 11, 11, []byte("Fusce vitae"), nil},
		{"middle", 0, 21, 20, 20, []byte("tortor. Fusce congue"), nil},
		{"across gap", 25, 21, 20, 20, []byte("tortor. Fusce congue"), nil},
		{"after gap", 5, 21, 7, 7, []byte("tortor."), nil},
		{"last", 0, gb.Len() - 1, 1, 1, []byte("."), nil},
		{"short read", 0, gb.Len() - 1, 2, 1, []byte{'.', 0}, io.EOF},
		{"out of range below", 0, -1, 0, 0, []byte{}, gapbuffer.ErrOutOfRange},
		{"out of range above", 0, 9999, 0, 0, []byte{}, io.EOF},
	}

	for _, tc := range tt {
		b := make([]byte, tc.len)
		gb.Seek(tc.seek)
		n, err := gb.ReadAt(b, tc.offset)
		if n != tc.want || err != tc.wanterr || !bytes.Equal(b, tc.wantbytes) {
			t.Errorf("%s: expected %q (%d) (err: %v), got %q (%d) (err: %v)", tc.name, tc.wantbytes, tc.want, tc.wanterr, b, n, err)
		}
	}
}

func TestSeek(t *testing.T) {
	gb := gapbuffer.New(lipsum)

	var tt = []struct {
		name   string
		offset int
		want   int
	}{
		{"beginning", 0, 0},
		{"middle", 25, 25},
		{"end", len(lipsum), len(lipsum)},
		{"below", -4, 0},
		{"beyond", len(lipsum) + 10, len(lipsum)},
	}

	for _, tc := range tt {
		gb.Seek(tc.offset)
		if got := gb.String(); got != lipsum {
			t.Errorf("%s: content changed by seek", tc.name)
		}
		// next write lands at the gap
		gb.WriteString("|")
		if got, want := gb.String(), lipsum[:tc.want]+"|"+lipsum[tc.want:]; got != want {
			t.Errorf("%s: set %d, expected write at %d, got %q", tc.name, tc.offset, tc.want, got)
		}
		gb.Delete(1)
	}
}

func TestWriteSingle(t *testing.T) {
	var tt = []struct {
		name    string
		input   []byte
		wantret int
	}{
		{"nil", nil, 0},
		{"empty", []byte{}, 0},
		{"null byte", []byte{'0'}, 1},
		{"string", []byte("gopher"), 6},
		{"control characters", []byte{'\u0011', '\u0012', '\u0013'}, 3},
		{"larger than first growth", []byte(strings.Repeat("x", 200)), 200},
	}

	for _, tc := range tt {
		b := gapbuffer.Buffer{}
		n, err := b.Write(tc.input)
		if n != tc.wantret {
			t.Errorf("%s: expected %d bytes, got %d", tc.name, tc.wantret, n)
		}
		if err != nil {
			t.Errorf("%s: expected no error, got %v", tc.name, err)
		}
		if b.Len() != tc.wantret {
			t.Errorf("%s: expected len %d, got %d", tc.name, tc.wantret, b.Len())
		}
	}
}

func TestWriteMulti(t *testing.T) {
	var tt = []struct {
		name   string
		input1 string
		offset int
		input2 string
		want   string
	}{
		{"beginning", "bar", 0, "foo", "foobar"},
		{"end", "foo", 3, "bar", "foobar"},
		{"middle", "hello gopher", 5, " you", "hello you gopher"},
		{"expand buffer", "abcdefghijklmnopqrstuvwxyz", 8, strings.Repeat("0123456789", 10), "abcdefgh" + strings.Repeat("0123456789", 10) + "ijklmnopqrstuvwxyz"},
	}

	for _, tc := range tt {
		b := gapbuffer.Buffer{}
		b.WriteString(tc.input1)
		b.Seek(tc.offset)
		b.WriteString(tc.input2)
		if got := b.String(); got != tc.want {
			t.Errorf("%s: wrote %q, then %q at offset %d, got %q (len: %d)", tc.name, tc.input1, tc.input2, tc.offset, got, b.Len())
		}
	}
}

func TestDelete(t *testing.T) {
	var tt = []struct {
		name  string
		input string
		pos   int
		n     int
		want  string
		wantn int
	}{
		{"last byte", "gopher", 6, 1, "gophe", 1},
		{"middle", "hello you gopher", 9, 4, "hello gopher", 4},
		{"more than available", "abc", 2, 10, "c", 2},
		{"at start", "abc", 0, 1, "abc", 0},
		{"negative", "abc", 2, -1, "abc", 0},
	}

	for _, tc := range tt {
		b := gapbuffer.New(tc.input)
		b.Seek(tc.pos)
		n := b.Delete(tc.n)
		if n != tc.wantn || b.String() != tc.want {
			t.Errorf("%s: expected %q (%d), got %q (%d)", tc.name, tc.want, tc.wantn, b.String(), n)
		}
	}
}

func TestByteAt(t *testing.T) {
	var tt = []struct {
		name    string
		input   string
		pos     int
		want    byte
		wanterr error
	}{
		{"first", "abcdefghij", 0, 'a', nil},
		{"middle", "abcdefghij", 4, 'e', nil},
		{"last", "abcdefghij", 9, 'j', nil},
		{"lipsum", lipsum, 40, 'e', nil},
		{"out of range below", "abcdefghij", -1, 0, gapbuffer.ErrOutOfRange},
		{"out of range above", "abcdefghij", 999, 0, io.EOF},
	}

	for _, seek := range []int{0, 2, -1} {
		for _, tc := range tt {
			b := gapbuffer.New(tc.input)
			if seek < 0 {
				b.Seek(b.Len())
			} else {
				b.Seek(seek)
			}
			c, err := b.ByteAt(tc.pos)
			if c != tc.want || err != tc.wanterr {
				t.Errorf("Seek(%d): %s: expected %c (%x) and %v, got %c (%x) and %v", seek, tc.name, tc.want, tc.want, tc.wanterr, c, c, err)
			}
		}
	}
}

func TestReset(t *testing.T) {
	b := gapbuffer.New("some text")
	b.Seek(4)
	b.Reset()
	if b.Len() != 0 || b.String() != "" {
		t.Fatalf("expected empty buffer after reset, got %q", b.String())
	}
	b.WriteString("again")
	if b.String() != "again" {
		t.Errorf("expected %q, got %q", "again", b.String())
	}
}

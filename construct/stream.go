package construct

import "io"

// whence values, mirroring io.SeekStart/Current/End so callers never
// need to import "io" just to seek a construct Stream.
const (
	SeekStart   = io.SeekStart
	SeekCurrent = io.SeekCurrent
	SeekEnd     = io.SeekEnd
)

// Stream is the seekable byte cursor every construct reads from or
// writes into. A fresh MemoryStream backs top-level Parse/Build; nested
// composites may delegate onto a bounded substream (Prefixed) or a
// bit-level restreamed view (Bitwise) without the subconstruct ever
// knowing the difference.
type Stream interface {
	Read(p []byte) (n int, err error)
	Write(p []byte) (n int, err error)
	Tell() (int64, error)
	Seek(offset int64, whence int) (int64, error)
}

// MemoryStream is a growable, seekable in-memory byte stream: the
// engine's default substrate for both parse (wrap existing bytes) and
// build (accumulate new ones).
type MemoryStream struct {
	buf []byte
	pos int64
}

// NewMemoryStream wraps existing bytes for parsing.
func NewMemoryStream(data []byte) *MemoryStream {
	return &MemoryStream{buf: data}
}

// NewEmptyMemoryStream starts an empty stream for building.
func NewEmptyMemoryStream() *MemoryStream {
	return &MemoryStream{}
}

func (s *MemoryStream) Read(p []byte) (int, error) {
	if s.pos >= int64(len(s.buf)) {
		return 0, io.EOF
	}
	n := copy(p, s.buf[s.pos:])
	s.pos += int64(n)
	if n < len(p) {
		return n, io.ErrUnexpectedEOF
	}
	return n, nil
}

func (s *MemoryStream) Write(p []byte) (int, error) {
	end := s.pos + int64(len(p))
	if end > int64(len(s.buf)) {
		grown := make([]byte, end)
		copy(grown, s.buf)
		s.buf = grown
	}
	n := copy(s.buf[s.pos:end], p)
	s.pos = end
	return n, nil
}

func (s *MemoryStream) Tell() (int64, error) { return s.pos, nil }

func (s *MemoryStream) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case SeekStart:
		base = 0
	case SeekCurrent:
		base = s.pos
	case SeekEnd:
		base = int64(len(s.buf))
	default:
		return 0, ErrStream{Msg: "invalid whence"}
	}
	pos := base + offset
	if pos < 0 {
		return 0, ErrStream{Msg: "seek out of range"}
	}
	s.pos = pos
	return pos, nil
}

// Bytes returns the accumulated buffer, the way a top-level Build call
// drains the stream it wrote into.
func (s *MemoryStream) Bytes() []byte { return s.buf }

// Remaining reports how many bytes are left to read.
func (s *MemoryStream) Remaining() int64 { return int64(len(s.buf)) - s.pos }

// boundedStream restricts reads/writes to [0, limit) bytes relative to
// the position the substream was opened at, the scoped resource
// Prefixed, NullTerminated and Padded delegate their subcon onto.
type boundedStream struct {
	inner Stream
	base  int64 // inner's absolute offset where this bound begins
	limit int64
	pos   int64
}

func newBoundedStream(inner Stream, limit int64) *boundedStream {
	base, _ := inner.Tell()
	return &boundedStream{inner: inner, base: base, limit: limit}
}

func (b *boundedStream) Read(p []byte) (int, error) {
	if b.pos >= b.limit {
		return 0, io.EOF
	}
	if max := b.limit - b.pos; int64(len(p)) > max {
		p = p[:max]
	}
	n, err := b.inner.Read(p)
	b.pos += int64(n)
	return n, err
}

func (b *boundedStream) Write(p []byte) (int, error) {
	if b.pos+int64(len(p)) > b.limit {
		return 0, ErrStream{Msg: "write exceeds prefixed bound"}
	}
	n, err := b.inner.Write(p)
	b.pos += int64(n)
	return n, err
}

func (b *boundedStream) Tell() (int64, error) { return b.pos, nil }

func (b *boundedStream) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case SeekStart:
		base = 0
	case SeekCurrent:
		base = b.pos
	case SeekEnd:
		base = b.limit
	default:
		return 0, ErrStream{Msg: "invalid whence"}
	}
	pos := base + offset
	if pos < 0 || pos > b.limit {
		return 0, ErrStream{Msg: "seek out of bound range"}
	}
	if _, err := b.inner.Seek(b.base+pos, SeekStart); err != nil {
		return 0, err
	}
	b.pos = pos
	return pos, nil
}

// readAll reads every remaining byte of s, the substrate for GreedyBytes
// and GreedyString.
func readAll(s Stream) ([]byte, error) {
	var out []byte
	buf := make([]byte, 4096)
	for {
		n, err := s.Read(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			if err == io.ErrUnexpectedEOF && n > 0 {
				continue
			}
			return out, err
		}
		if n == 0 {
			return out, nil
		}
	}
}

func isEOF(s Stream) bool {
	pos, err := s.Tell()
	if err != nil {
		return false
	}
	// probe with a zero-effort read
	var b [1]byte
	n, rerr := s.Read(b[:])
	if n > 0 {
		s.Seek(pos, SeekStart)
		return false
	}
	return rerr == io.EOF
}

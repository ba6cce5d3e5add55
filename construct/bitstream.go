package construct

import "io"

// BitStream is the restreamed bit-level view spec.md 4.6/9 describes:
// a stream adapter presenting a bit granularity over a byte substrate.
// Each unit read or written through the Stream interface is a single
// bit, represented as a byte valued 0 or 1, most-significant-bit first
// by default — the same convention Bitwise uses to decompose a byte
// into eight addressable units so BitsInteger can assemble them back
// into an integer without any bit-specific API of its own.
type BitStream struct {
	inner Stream
	msb   bool

	// read side
	curByte  byte
	bitPos   int // 0..7, next bit to emit from curByte (MSB-first: mask 0x80>>bitPos)
	haveByte bool

	// write side
	outByte  byte
	outBits  int // 0..7, next bit slot to fill in outByte

	pos int64 // absolute bit position, for Tell
}

// NewBitStream wraps inner into an MSB-first bit stream.
func NewBitStream(inner Stream) *BitStream {
	return &BitStream{inner: inner, msb: true}
}

// NewLSBBitStream wraps inner with LSB-first bit ordering, used by
// BitsSwapped.
func NewLSBBitStream(inner Stream) *BitStream {
	return &BitStream{inner: inner, msb: false}
}

func (b *BitStream) Read(p []byte) (int, error) {
	for i := range p {
		if !b.haveByte {
			var buf [1]byte
			if _, err := io.ReadFull(b.inner, buf[:]); err != nil {
				if err == io.EOF || err == io.ErrUnexpectedEOF {
					return i, io.EOF
				}
				return i, err
			}
			b.curByte = buf[0]
			b.bitPos = 0
			b.haveByte = true
		}
		p[i] = b.bitAt(b.bitPos)
		b.bitPos++
		b.pos++
		if b.bitPos == 8 {
			b.haveByte = false
		}
	}
	return len(p), nil
}

func (b *BitStream) bitAt(i int) byte {
	if b.msb {
		if b.curByte&(0x80>>uint(i)) != 0 {
			return 1
		}
		return 0
	}
	if b.curByte&(1<<uint(i)) != 0 {
		return 1
	}
	return 0
}

func (b *BitStream) Write(p []byte) (int, error) {
	for i, bit := range p {
		if bit != 0 && bit != 1 {
			return i, ErrFormat{Msg: "bit stream write requires 0/1 units"}
		}
		if bit == 1 {
			if b.msb {
				b.outByte |= 1 << uint(7-b.outBits)
			} else {
				b.outByte |= 1 << uint(b.outBits)
			}
		}
		b.outBits++
		b.pos++
		if b.outBits == 8 {
			if _, err := b.inner.Write([]byte{b.outByte}); err != nil {
				return i, err
			}
			b.outByte = 0
			b.outBits = 0
		}
	}
	return len(p), nil
}

func (b *BitStream) Tell() (int64, error) { return b.pos, nil }

func (b *BitStream) Seek(offset int64, whence int) (int64, error) {
	var target int64
	switch whence {
	case SeekCurrent:
		target = b.pos + offset
	case SeekStart:
		target = offset
	default:
		return 0, ErrStream{Msg: "bit stream supports only absolute/relative seeks"}
	}
	if target < 0 {
		return 0, ErrStream{Msg: "seek out of range"}
	}
	byteIdx := target / 8
	bitIdx := target % 8
	if _, err := b.inner.Seek(byteIdx, SeekStart); err != nil {
		return 0, err
	}
	b.haveByte = false
	if bitIdx != 0 {
		var buf [1]byte
		if _, err := io.ReadFull(b.inner, buf[:]); err != nil {
			return 0, err
		}
		b.curByte = buf[0]
		b.bitPos = int(bitIdx)
		b.haveByte = true
	}
	b.pos = target
	return target, nil
}

// Flush pads any partially-written byte with zero bits and writes it
// out, the scoped-resource release described in spec.md 5: "the
// restreamed bit stream must flush any residual bits on scope exit
// during build".
func (b *BitStream) Flush() error {
	if b.outBits == 0 {
		return nil
	}
	_, err := b.inner.Write([]byte{b.outByte})
	b.outByte = 0
	b.outBits = 0
	return err
}

// Aligned reports whether the bit position consumed so far is a whole
// number of bytes. Bitwise uses this to enforce "subcon total size
// must be a byte multiple" after delegating to its subcon.
func (b *BitStream) Aligned() bool { return b.pos%8 == 0 }

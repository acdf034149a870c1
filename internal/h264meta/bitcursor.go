package h264meta

import "math/bits"

// bitCursor reads bits MSB-first from a byte slice, refilling an internal
// 32-bit word as bits are consumed. Running out of data is not an error:
// reads return whatever bits were available and the exhausted flag is set,
// so callers can stop parsing the current structure.
type bitCursor struct {
	data      []byte
	bytePos   int
	word      uint32
	mask      uint32
	exhausted bool
}

func newBitCursor(data []byte) *bitCursor {
	bc := &bitCursor{data: data}
	bc.fill()
	return bc
}

// fill loads the next word, up to 4 bytes, and points mask at its first
// valid bit. mask stays 0 when no bytes remain.
func (bc *bitCursor) fill() {
	remaining := len(bc.data) - bc.bytePos
	if remaining <= 0 {
		bc.mask = 0
		return
	}
	n := remaining
	if n > 4 {
		n = 4
	}
	bc.word = 0
	for i := 0; i < n; i++ {
		bc.word = bc.word<<8 | uint32(bc.data[bc.bytePos+i])
	}
	bc.bytePos += n
	bc.mask = 1 << uint(n*8-1)
}

func (bc *bitCursor) readBit() uint32 {
	if bc.mask == 0 {
		bc.fill()
		if bc.mask == 0 {
			bc.exhausted = true
			return 0
		}
	}
	var bit uint32
	if bc.word&bc.mask != 0 {
		bit = 1
	}
	bc.mask >>= 1
	return bit
}

// readBits returns the next n bits as an unsigned integer, MSB first. On
// exhaustion the value read so far is returned and the exhausted flag set.
func (bc *bitCursor) readBits(n int) uint32 {
	var value uint32
	for i := 0; i < n; i++ {
		if bc.exhausted {
			break
		}
		value = value<<1 | bc.readBit()
	}
	return value
}

func (bc *bitCursor) skipBits(n int) {
	_ = bc.readBits(n)
}

// bitsLeft reports bits remaining in the current word plus unread bytes.
func (bc *bitCursor) bitsLeft() int {
	return bits.Len32(bc.mask) + 8*(len(bc.data)-bc.bytePos)
}

// readUE decodes an unsigned Exp-Golomb code: k leading zero bits, a stop
// bit, then k explicit bits.
func (bc *bitCursor) readUE() uint32 {
	zeros := 0
	for bc.readBit() == 0 {
		if bc.exhausted {
			return 0
		}
		zeros++
		if zeros > 31 {
			bc.exhausted = true
			return 0
		}
	}
	return (1<<uint(zeros) | bc.readBits(zeros)) - 1
}

// readSE decodes a signed Exp-Golomb code via the standard zig-zag
// mapping: 0, 1, -1, 2, -2, ...
func (bc *bitCursor) readSE() int32 {
	v := bc.readUE() + 1
	if v&1 != 0 {
		return -int32(v >> 1)
	}
	return int32(v >> 1)
}

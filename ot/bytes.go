package ot

import (
	"errors"
	"fmt"
	"math"
)

// Reading bytes from a font's binary representation

var errBufferBounds = errors.New("internal inconsistency: buffer bounds error")

// u16 reads a big-endian 16-bit value and normalizes it to host order.
func u16(b []byte) uint16 {
	_ = b[1] // Bounds check hint to compiler
	return host.u16(b)
}

// u32 reads a big-endian 32-bit value and normalizes it to host order.
func u32(b []byte) uint32 {
	_ = b[3] // Bounds check hint to compiler
	return host.u32(b)
}

// binarySegm is a segment of byte data.
// We use it throughout this package to navigate the font's binary data.
type binarySegm []byte

func (b binarySegm) Size() int {
	return len(b)
}

func (b binarySegm) Bytes() []byte {
	return b
}

// view returns n bytes at the given offset.
// The byte segment returned is a sub-slice of b.
func (b binarySegm) view(offset, n int) (binarySegm, error) {
	if offset < 0 || n <= 0 || offset > len(b) || n > len(b)-offset {
		return nil, errBufferBounds
	}
	return b[offset : offset+n], nil
}

// u16 returns the uint16 in b at the relative offset i.
func (b binarySegm) u16(i int) (uint16, error) {
	buf, err := b.view(i, 2)
	if err != nil {
		return 0, err
	}
	return u16(buf), nil
}

// u32 returns the uint32 in b at the relative offset i.
func (b binarySegm) u32(i int) (uint32, error) {
	buf, err := b.view(i, 4)
	if err != nil {
		return 0, err
	}
	return u32(buf), nil
}

// u16Array copies n consecutive 16-bit values out of b, starting at byte offset i.
func (b binarySegm) u16Array(i, n int) ([]uint16, error) {
	arr := make([]uint16, n)
	if n == 0 {
		return arr, nil
	}
	buf, err := b.view(i, 2*n)
	if err != nil {
		return nil, err
	}
	for j := range arr {
		arr[j] = u16(buf[2*j:])
	}
	return arr, nil
}

// ---------------------------------------------------------------------------

// Checked arithmetic operations to prevent integer overflow

// checkedMulInt checks for overflow in multiplication of two non-negative integers
func checkedMulInt(a, b int) (int, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a < 0 || b < 0 || a > math.MaxInt/b {
		return 0, fmt.Errorf("integer overflow: %d * %d", a, b)
	}
	return a * b, nil
}

// checkedAddUint32 checks for overflow in addition of two uint32 values
func checkedAddUint32(a, b uint32) (uint32, error) {
	if a > math.MaxUint32-b {
		return 0, fmt.Errorf("integer overflow: %d + %d", a, b)
	}
	return a + b, nil
}

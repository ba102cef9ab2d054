package ot

import (
	"encoding/binary"
	"math/bits"
)

// hostOrder normalizes values copied out of a font's big-endian binary data to the
// byte order of the machine we are running on.
//
// raw values are read the way a plain memory copy would see them on the host;
// toHost* then swaps the bytes if the host is little-endian.
type hostOrder struct {
	bigEndian bool
	native    binary.ByteOrder
}

// host is detected once, at package initialization.
var host = detectHostOrder()

func detectHostOrder() hostOrder {
	probe := binary.NativeEndian.AppendUint16(nil, 0x0102)
	return makeHostOrder(probe[0] == 0x01)
}

func makeHostOrder(bigEndian bool) hostOrder {
	if bigEndian {
		return hostOrder{bigEndian: true, native: binary.BigEndian}
	}
	return hostOrder{bigEndian: false, native: binary.LittleEndian}
}

func (h hostOrder) toHost16(v uint16) uint16 {
	if h.bigEndian {
		return v
	}
	return bits.ReverseBytes16(v)
}

func (h hostOrder) toHost32(v uint32) uint32 {
	if h.bigEndian {
		return v
	}
	return bits.ReverseBytes32(v)
}

func (h hostOrder) toHost64(v uint64) uint64 {
	if h.bigEndian {
		return v
	}
	return bits.ReverseBytes64(v)
}

// u16 copies 2 bytes out of b and normalizes them.
func (h hostOrder) u16(b []byte) uint16 {
	return h.toHost16(h.native.Uint16(b))
}

// u32 copies 4 bytes out of b and normalizes them.
func (h hostOrder) u32(b []byte) uint32 {
	return h.toHost32(h.native.Uint32(b))
}

// u64 copies 8 bytes out of b and normalizes them.
func (h hostOrder) u64(b []byte) uint64 {
	return h.toHost64(h.native.Uint64(b))
}

// HostIsBigEndian reports whether the machine we are running on stores
// multi-byte values big-endian, i.e. in the same order as font files do.
func HostIsBigEndian() bool {
	return host.bigEndian
}

// ToHostOrder16 converts a 16-bit value in font (big-endian) representation to the
// host's native representation. It is a no-op on big-endian hosts.
func ToHostOrder16(v uint16) uint16 {
	return host.toHost16(v)
}

// ToHostOrder32 converts a 32-bit value in font (big-endian) representation to the
// host's native representation. It is a no-op on big-endian hosts.
func ToHostOrder32(v uint32) uint32 {
	return host.toHost32(v)
}

// ToHostOrder64 converts a 64-bit value in font (big-endian) representation to the
// host's native representation. It is a no-op on big-endian hosts.
func ToHostOrder64(v uint64) uint64 {
	return host.toHost64(v)
}

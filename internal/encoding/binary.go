package encoding

import (
	"image/color"
)

// Pixel is the information the cell index image holds for a single pixel.
//
// Packed into an RGBA64 as
//
//	R [16 bits] | G [16 bits] -> cell id + 1 (0 means no cell), R holds the significant bits
//	B [16 bits]               -> category id
//	A [16 bits]
//	  16-9 [8 bits] -> reserved
//	   8-1 [8 bits] -> flag bitmap
type Pixel struct {
	Cell     int // -1 when the pixel belongs to no cell
	Category uint16
	Flags    uint8
}

// Encode packs p into a colour.
func Encode(p Pixel) color.RGBA64 {
	r, g := Split32(uint32(p.Cell + 1))
	return color.RGBA64{R: r, G: g, B: p.Category, A: Merge8(0, p.Flags)}
}

// Decode is the inverse of Encode.
func Decode(c color.RGBA64) Pixel {
	_, flags := Split16(c.A)
	return Pixel{
		Cell:     int(Merge16(c.R, c.G)) - 1,
		Category: c.B,
		Flags:    flags,
	}
}

// FromBytes8 turns a []byte into a uint8, only the first byte is read.
func FromBytes8(data []byte) uint8 {
	if len(data) == 0 {
		return 0
	}
	return data[0]
}

// ToBytes8 turns uint8 into []byte of len 1 (eg. 8 bits)
func ToBytes8(in uint8) []byte {
	return []byte{in}
}

// Split32 uint32 to two uint16
func Split32(in uint32) (uint16, uint16) {
	return uint16(in >> 16), uint16(in)
}

// Merge16 two uint16 to uint32
func Merge16(a, b uint16) uint32 {
	return (uint32(a) << 16) + uint32(b)
}

// Split16 uint16 to two uint8
func Split16(in uint16) (uint8, uint8) {
	return uint8(in >> 8), uint8(in)
}

// Merge8 two uint8 to uint16
func Merge8(a, b uint8) uint16 {
	return (uint16(a) << 8) + uint16(b)
}

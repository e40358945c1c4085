package mse

// Word layout: eight samples loaded little-endian into a uint64, split into two
// words of four 16-bit lanes (even bytes and odd bytes) so that differences can
// be formed without borrowing across lanes.
const (
	laneLow  = 0x00FF00FF00FF00FF // low byte of every 16-bit lane
	laneBias = 0x0100010001000100 // 256 in every 16-bit lane
	laneOne  = 0x0001000100010001 // 1 in every 16-bit lane

	// alphaKeep clears bytes 3 and 7, the alpha samples of the two RGBA
	// groups held by a little-endian word.
	alphaKeep = 0x00FFFFFF00FFFFFF

	maxSquare     = 255 * 255
	maxWordSquare = 8 * maxSquare
)

// sqDiff squares the difference of two samples. The result fits in 17 bits.
func sqDiff(a, b byte) uint32 {
	d := int32(a) - int32(b)
	return uint32(d * d)
}

// signedWordSquare returns the sum of the eight squared byte differences of x
// and y using widened signed subtraction: each lane holds 256+x-y.
func signedWordSquare(x, y uint64) uint32 {
	even := (x&laneLow | laneBias) - y&laneLow
	odd := ((x>>8)&laneLow | laneBias) - (y>>8)&laneLow
	return squareBiasedLanes(even) + squareBiasedLanes(odd)
}

// squareBiasedLanes squares four lanes holding 256+d, d in [-255, 255].
func squareBiasedLanes(v uint64) uint32 {
	d0 := int32(v&0xFFFF) - 256
	d1 := int32((v>>16)&0xFFFF) - 256
	d2 := int32((v>>32)&0xFFFF) - 256
	d3 := int32(v>>48) - 256
	return uint32(d0*d0 + d1*d1 + d2*d2 + d3*d3)
}

// absWordSquare returns the sum of the eight squared byte differences of x and
// y, formed as max(x,y)-min(x,y) per lane before squaring.
func absWordSquare(x, y uint64) uint32 {
	even := absDiffLanes(x&laneLow, y&laneLow)
	odd := absDiffLanes((x>>8)&laneLow, (y>>8)&laneLow)
	return squareLanes(even) + squareLanes(odd)
}

// absDiffLanes returns |x-y| per 16-bit lane. Lanes of x and y must be <= 0xFF.
func absDiffLanes(x, y uint64) uint64 {
	d := (x | laneBias) - y // 256+x-y, bit 8 set iff x >= y
	low := d & laneLow
	ge := ((d >> 8) & laneOne) * 0xFFFF
	return (low & ge) | ((laneBias - low) &^ ge)
}

// squareLanes squares four unsigned lanes holding values <= 0xFF.
func squareLanes(v uint64) uint32 {
	a0 := uint32(v & 0xFFFF)
	a1 := uint32((v >> 16) & 0xFFFF)
	a2 := uint32((v >> 32) & 0xFFFF)
	a3 := uint32(v >> 48)
	return a0*a0 + a1*a1 + a2*a2 + a3*a3
}

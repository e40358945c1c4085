package mse

import "encoding/binary"

const (
	wideChunk   = 32 // four words per step
	narrowChunk = 16 // two words per step
)

var le = binary.LittleEndian

// rgbaMask returns the periodic lane mask for a word of two RGBA groups.
func rgbaMask(includeAlpha bool) uint64 {
	if includeAlpha {
		return ^uint64(0)
	}
	return alphaKeep
}

// rgbaWide consumes whole 32-byte chunks of ref/cand and returns the partial
// sum and the number of bytes consumed.
func rgbaWide(ref, cand []byte, includeAlpha bool) (sum uint64, n int) {
	mask := rgbaMask(includeAlpha)
	var lanes [4]uint32
	steps := 0

	for ; n+wideChunk <= len(ref); n += wideChunk {
		r := ref[n : n+wideChunk : n+wideChunk]
		c := cand[n : n+wideChunk : n+wideChunk]

		lanes[0] += signedWordSquare(le.Uint64(r[0:])&mask, le.Uint64(c[0:])&mask)
		lanes[1] += signedWordSquare(le.Uint64(r[8:])&mask, le.Uint64(c[8:])&mask)
		lanes[2] += signedWordSquare(le.Uint64(r[16:])&mask, le.Uint64(c[16:])&mask)
		lanes[3] += signedWordSquare(le.Uint64(r[24:])&mask, le.Uint64(c[24:])&mask)

		steps++
		if steps == flushInterval {
			sum += reduceLanes(lanes[:])
			steps = 0
		}
	}

	sum += reduceLanes(lanes[:])
	return sum, n
}

// rgbaNarrow is rgbaWide with 16-byte chunks.
func rgbaNarrow(ref, cand []byte, includeAlpha bool) (sum uint64, n int) {
	mask := rgbaMask(includeAlpha)
	var lanes [2]uint32
	steps := 0

	for ; n+narrowChunk <= len(ref); n += narrowChunk {
		r := ref[n : n+narrowChunk : n+narrowChunk]
		c := cand[n : n+narrowChunk : n+narrowChunk]

		lanes[0] += signedWordSquare(le.Uint64(r[0:])&mask, le.Uint64(c[0:])&mask)
		lanes[1] += signedWordSquare(le.Uint64(r[8:])&mask, le.Uint64(c[8:])&mask)

		steps++
		if steps == flushInterval {
			sum += reduceLanes(lanes[:])
			steps = 0
		}
	}

	sum += reduceLanes(lanes[:])
	return sum, n
}

// planeWide consumes whole 32-byte chunks of a single-channel plane.
func planeWide(ref, cand []byte) (sum uint64, n int) {
	var lanes [4]uint32
	steps := 0

	for ; n+wideChunk <= len(ref); n += wideChunk {
		r := ref[n : n+wideChunk : n+wideChunk]
		c := cand[n : n+wideChunk : n+wideChunk]

		lanes[0] += absWordSquare(le.Uint64(r[0:]), le.Uint64(c[0:]))
		lanes[1] += absWordSquare(le.Uint64(r[8:]), le.Uint64(c[8:]))
		lanes[2] += absWordSquare(le.Uint64(r[16:]), le.Uint64(c[16:]))
		lanes[3] += absWordSquare(le.Uint64(r[24:]), le.Uint64(c[24:]))

		steps++
		if steps == flushInterval {
			sum += reduceLanes(lanes[:])
			steps = 0
		}
	}

	sum += reduceLanes(lanes[:])
	return sum, n
}

// planeNarrow is planeWide with 16-byte chunks.
func planeNarrow(ref, cand []byte) (sum uint64, n int) {
	var lanes [2]uint32
	steps := 0

	for ; n+narrowChunk <= len(ref); n += narrowChunk {
		r := ref[n : n+narrowChunk : n+narrowChunk]
		c := cand[n : n+narrowChunk : n+narrowChunk]

		lanes[0] += absWordSquare(le.Uint64(r[0:]), le.Uint64(c[0:]))
		lanes[1] += absWordSquare(le.Uint64(r[8:]), le.Uint64(c[8:]))

		steps++
		if steps == flushInterval {
			sum += reduceLanes(lanes[:])
			steps = 0
		}
	}

	sum += reduceLanes(lanes[:])
	return sum, n
}

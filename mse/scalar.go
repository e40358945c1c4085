package mse

// rgbaScalar is the reference RGBA loop and the remainder loop of every
// vector kernel. It walks whole 4-byte groups; a trailing partial group is a
// precondition violation and panics on the group reslice.
func rgbaScalar(ref, cand []byte, includeAlpha bool) uint64 {
	var sum uint64

	for i := 0; i < len(ref); i += 4 {
		r := ref[i : i+4 : i+4]
		c := cand[i : i+4 : i+4]

		sum += uint64(sqDiff(r[0], c[0]) + sqDiff(r[1], c[1]) + sqDiff(r[2], c[2]))
		if includeAlpha {
			sum += uint64(sqDiff(r[3], c[3]))
		}
	}

	return sum
}

// planeScalar is the reference single-channel loop. Chroma planes always use it.
func planeScalar(ref, cand []byte) uint64 {
	var sum uint64

	cand = cand[:len(ref)]
	for i, a := range ref {
		sum += uint64(sqDiff(a, cand[i]))
	}

	return sum
}

package mse

// Backend identifies a kernel variant by the width of its bulk loop.
type Backend int

const (
	BackendScalar Backend = iota // no bulk loop, scalar reference
	BackendNarrow                // 16-byte chunks (SSE2, NEON)
	BackendWide                  // 32-byte chunks (AVX2)
)

func (b Backend) String() string {
	switch b {
	case BackendScalar:
		return "scalar"
	case BackendNarrow:
		return "narrow"
	case BackendWide:
		return "wide"
	default:
		return "unknown"
	}
}

// Kernel is one variant of the squared-difference kernels. All variants return
// identical sums; they differ only in how much input the bulk loop consumes
// per step.
type Kernel struct {
	backend Backend
	chunk   int

	// rgbaBulk and planeBulk consume the longest chunk-multiple prefix and
	// report how many bytes they used. Nil for the scalar kernel.
	rgbaBulk  func(ref, cand []byte, includeAlpha bool) (uint64, int)
	planeBulk func(ref, cand []byte) (uint64, int)
}

var (
	scalarKernel = &Kernel{backend: BackendScalar}
	narrowKernel = &Kernel{backend: BackendNarrow, chunk: narrowChunk, rgbaBulk: rgbaNarrow, planeBulk: planeNarrow}
	wideKernel   = &Kernel{backend: BackendWide, chunk: wideChunk, rgbaBulk: rgbaWide, planeBulk: planeWide}
)

// Backend returns the variant implemented by k.
func (k *Kernel) Backend() Backend { return k.backend }

// ChunkBytes returns the bytes consumed per bulk step, 0 for the scalar kernel.
func (k *Kernel) ChunkBytes() int { return k.chunk }

func (k *Kernel) String() string { return k.backend.String() }

// SumRGBA returns the sum of squared differences over the first length bytes
// of two interleaved RGBA buffers. When includeAlpha is false the 4th byte of
// every group is skipped.
//
// length must be a non-negative multiple of 4 and both buffers must hold at
// least length bytes. Violations panic.
func (k *Kernel) SumRGBA(reference, candidate []byte, length int, includeAlpha bool) uint64 {
	assertRGBALength(length)

	ref := reference[:length:length]
	cand := candidate[:length:length]

	var sum uint64
	var done int
	if k.rgbaBulk != nil {
		sum, done = k.rgbaBulk(ref, cand, includeAlpha)
	}

	return sum + rgbaScalar(ref[done:], cand[done:], includeAlpha)
}

// SumYCbCr returns the sum of squared differences over three planes. Each pair
// of buffers must hold at least its declared length; lengths are unrelated.
// Only the luma plane goes through the bulk loop. Chroma planes are usually
// subsampled to a fraction of the luma size and are summed by the scalar loop.
func (k *Kernel) SumYCbCr(
	yRef, yCand []byte, yLen int,
	cbRef, cbCand []byte, cbLen int,
	crRef, crCand []byte, crLen int,
) uint64 {
	sum := k.sumLuma(yRef[:yLen:yLen], yCand[:yLen:yLen])
	sum += planeScalar(cbRef[:cbLen:cbLen], cbCand[:cbLen:cbLen])
	sum += planeScalar(crRef[:crLen:crLen], crCand[:crLen:crLen])
	return sum
}

func (k *Kernel) sumLuma(ref, cand []byte) uint64 {
	var sum uint64
	var done int
	if k.planeBulk != nil {
		sum, done = k.planeBulk(ref, cand)
	}

	return sum + planeScalar(ref[done:], cand[done:])
}

// SumRGBA runs the active kernel. See Kernel.SumRGBA.
func SumRGBA(reference, candidate []byte, length int, includeAlpha bool) uint64 {
	return Active().SumRGBA(reference, candidate, length, includeAlpha)
}

// SumYCbCr runs the active kernel. See Kernel.SumYCbCr.
func SumYCbCr(
	yRef, yCand []byte, yLen int,
	cbRef, cbCand []byte, cbLen int,
	crRef, crCand []byte, crLen int,
) uint64 {
	return Active().SumYCbCr(yRef, yCand, yLen, cbRef, cbCand, cbLen, crRef, crCand, crLen)
}

package mse

import (
	"fmt"
	"testing"
)

// naivePlane sums squared differences over the first n samples
func naivePlane(ref, cand []byte, n int) uint64 {
	var sum uint64
	for i := 0; i < n; i++ {
		d := int64(ref[i]) - int64(cand[i])
		sum += uint64(d * d)
	}
	return sum
}

// TestSumYCbCr_KnownValues tests a hand-computed three-plane sum
func TestSumYCbCr_KnownValues(t *testing.T) {
	y1, y2 := []byte{0, 10, 20, 30, 40}, []byte{1, 10, 22, 30, 37}
	cb1, cb2 := []byte{100, 100}, []byte{104, 100}
	cr1, cr2 := []byte{50}, []byte{45}

	const want = 1 + 4 + 9 + 16 + 25

	for _, k := range Kernels() {
		if got := k.SumYCbCr(y1, y2, 5, cb1, cb2, 2, cr1, cr2, 1); got != want {
			t.Errorf("%s: SumYCbCr = %d, want %d", k, got, want)
		}
		if got := k.SumYCbCr([]byte{0, 0}, []byte{3, 4}, 2, nil, nil, 0, nil, nil, 0); got != 25 {
			t.Errorf("%s: luma-only SumYCbCr = %d, want 25", k, got)
		}
	}
}

// TestSumYCbCr_ZeroLengths tests that empty planes contribute nothing
func TestSumYCbCr_ZeroLengths(t *testing.T) {
	y1, y2 := []byte{5}, []byte{9}

	for _, k := range Kernels() {
		if got := k.SumYCbCr(nil, nil, 0, nil, nil, 0, nil, nil, 0); got != 0 {
			t.Errorf("%s: empty SumYCbCr = %d, want 0", k, got)
		}
		if got := k.SumYCbCr(y1, y2, 1, nil, nil, 0, nil, nil, 0); got != 16 {
			t.Errorf("%s: luma-only SumYCbCr = %d, want 16", k, got)
		}
		if got := k.SumYCbCr(nil, nil, 0, y1, y2, 1, nil, nil, 0); got != 16 {
			t.Errorf("%s: cb-only SumYCbCr = %d, want 16", k, got)
		}
	}
}

// ycbcrLengths pairs luma lengths around the 16- and 32-byte chunk edges with
// unrelated chroma lengths.
var ycbcrLengths = []struct{ y, cb, cr int }{
	{0, 0, 0},
	{1, 1, 0},
	{15, 4, 5},
	{16, 0, 7},
	{17, 5, 5},
	{31, 8, 3},
	{32, 8, 8},
	{33, 9, 1},
	{1000, 300, 999},
	{4099, 1025, 17},
}

// TestSumYCbCr_Identical tests that planes compared with themselves sum to zero
func TestSumYCbCr_Identical(t *testing.T) {
	for _, l := range ycbcrLengths {
		y := randomBytes(l.y, int64(l.y))
		cb := randomBytes(l.cb, int64(l.cb+1))
		cr := randomBytes(l.cr, int64(l.cr+2))

		for _, k := range Kernels() {
			t.Run(fmt.Sprintf("y_%d/cb_%d/cr_%d/%s", l.y, l.cb, l.cr, k), func(t *testing.T) {
				if got := k.SumYCbCr(y, y, l.y, cb, cb, l.cb, cr, cr, l.cr); got != 0 {
					t.Errorf("SumYCbCr(x, x) = %d, want 0", got)
				}
			})
		}
	}
}

// TestSumYCbCr_Symmetric tests that swapping reference and candidate in every
// plane does not change the sum
func TestSumYCbCr_Symmetric(t *testing.T) {
	for _, l := range ycbcrLengths {
		y1, y2 := randomBytes(l.y, int64(10+l.y)), randomBytes(l.y, int64(20+l.y))
		cb1, cb2 := randomBytes(l.cb, 30), randomBytes(l.cb, 40)
		cr1, cr2 := randomBytes(l.cr, 50), randomBytes(l.cr, 60)

		want := naivePlane(y1, y2, l.y) + naivePlane(cb1, cb2, l.cb) + naivePlane(cr1, cr2, l.cr)

		for _, k := range Kernels() {
			t.Run(fmt.Sprintf("y_%d/cb_%d/cr_%d/%s", l.y, l.cb, l.cr, k), func(t *testing.T) {
				ab := k.SumYCbCr(y1, y2, l.y, cb1, cb2, l.cb, cr1, cr2, l.cr)
				ba := k.SumYCbCr(y2, y1, l.y, cb2, cb1, l.cb, cr2, cr1, l.cr)
				if ab != ba {
					t.Errorf("asymmetric sums %d and %d", ab, ba)
				}
				if ab != want {
					t.Errorf("SumYCbCr = %d, want %d", ab, want)
				}
			})
		}
	}
}

// TestSumYCbCr_PlaneBoundaries compares every kernel with the naive loop for
// luma lengths around the chunk edges and unrelated chroma lengths.
func TestSumYCbCr_PlaneBoundaries(t *testing.T) {
	lumaLens := []int{1, 7, 15, 16, 17, 31, 32, 33, 63, 64, 65, 1000, 4099}

	for _, yLen := range lumaLens {
		y1 := randomBytes(yLen, int64(300+yLen))
		y2 := randomBytes(yLen, int64(400+yLen))
		cLen := (yLen + 1) / 4
		cb1, cb2 := randomBytes(cLen, 1), randomBytes(cLen, 2)
		cr1, cr2 := randomBytes(cLen+3, 3), randomBytes(cLen+3, 4)

		want := naivePlane(y1, y2, yLen) + naivePlane(cb1, cb2, cLen) + naivePlane(cr1, cr2, cLen+3)

		for _, k := range Kernels() {
			t.Run(fmt.Sprintf("y_%d/%s", yLen, k), func(t *testing.T) {
				got := k.SumYCbCr(y1, y2, yLen, cb1, cb2, cLen, cr1, cr2, cLen+3)
				if got != want {
					t.Errorf("SumYCbCr = %d, want %d", got, want)
				}
			})
		}
	}
}

// TestSumYCbCr_Saturated tests a luma plane long enough to force lane flushes
func TestSumYCbCr_Saturated(t *testing.T) {
	const yLen = 2*flushInterval*wideChunk + 5

	y1 := make([]byte, yLen)
	y2 := make([]byte, yLen)
	for i := range y2 {
		y2[i] = 255
	}
	c1 := []byte{0, 0}
	c2 := []byte{255, 255}

	want := uint64(yLen+4) * maxSquare

	for _, k := range Kernels() {
		if got := k.SumYCbCr(y1, y2, yLen, c1, c2, 2, c2, c1, 2); got != want {
			t.Errorf("%s: SumYCbCr = %d, want %d", k, got, want)
		}
	}
}

// TestSumYCbCr_ShortPlane tests panic when a plane is shorter than its length
func TestSumYCbCr_ShortPlane(t *testing.T) {
	buf := make([]byte, 64)
	short := make([]byte, 10)

	cases := []struct {
		name string
		call func(k *Kernel)
	}{
		{"luma", func(k *Kernel) { k.SumYCbCr(buf, short, 64, nil, nil, 0, nil, nil, 0) }},
		{"cb", func(k *Kernel) { k.SumYCbCr(nil, nil, 0, short, buf, 11, nil, nil, 0) }},
		{"cr", func(k *Kernel) { k.SumYCbCr(nil, nil, 0, nil, nil, 0, buf, buf, 65) }},
	}

	for _, tc := range cases {
		for _, k := range Kernels() {
			t.Run(tc.name+"/"+k.String(), func(t *testing.T) {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("SumYCbCr should panic on a short %s plane", tc.name)
					}
				}()
				tc.call(k)
			})
		}
	}
}

// TestSumYCbCr_PackageLevel tests the package function against the naive loop
func TestSumYCbCr_PackageLevel(t *testing.T) {
	y1, y2 := randomBytes(777, 5), randomBytes(777, 6)
	c1, c2 := randomBytes(200, 7), randomBytes(200, 8)

	want := naivePlane(y1, y2, 777) + 2*naivePlane(c1, c2, 200)
	if got := SumYCbCr(y1, y2, 777, c1, c2, 200, c1, c2, 200); got != want {
		t.Errorf("SumYCbCr = %d, want %d", got, want)
	}
}

func benchmarkYCbCr(b *testing.B, k *Kernel) {
	const w, h = 1920, 1080
	y1, y2 := randomBytes(w*h, 100), randomBytes(w*h, 200)
	c1, c2 := randomBytes(w*h/4, 300), randomBytes(w*h/4, 400)

	b.SetBytes(w * h * 3 / 2)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		k.SumYCbCr(y1, y2, w*h, c1, c2, w*h/4, c2, c1, w*h/4)
	}
}

func BenchmarkSumYCbCr_Scalar(b *testing.B) { benchmarkYCbCr(b, scalarKernel) }
func BenchmarkSumYCbCr_Narrow(b *testing.B) { benchmarkYCbCr(b, narrowKernel) }
func BenchmarkSumYCbCr_Wide(b *testing.B)   { benchmarkYCbCr(b, wideKernel) }

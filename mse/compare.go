package mse

import "fmt"

// MismatchError reports a kernel whose sum differs from the scalar reference.
type MismatchError struct {
	Backend Backend
	Op      string // "rgba", "rgb" or "ycbcr"
	Length  int
	Got     uint64
	Want    uint64
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("mse: %s kernel %s sum differs at length %d: got %d, want %d",
		e.Backend, e.Op, e.Length, e.Got, e.Want)
}

// CompareBackends runs every kernel over ref and cand and checks the result
// against the scalar kernel. The RGBA kernel sees the longest whole-group
// prefix, with and without alpha; the YCbCr kernel sees the full buffers as
// luma and the first and second halves as chroma.
//
// Returns a *MismatchError for the first difference, nil if all kernels agree.
func CompareBackends(ref, cand []byte) error {
	n := len(ref)
	if len(cand) < n {
		n = len(cand)
	}
	rgbaLen := n &^ 3
	half := n / 2

	for _, includeAlpha := range []bool{true, false} {
		op := "rgb"
		if includeAlpha {
			op = "rgba"
		}

		want := scalarKernel.SumRGBA(ref, cand, rgbaLen, includeAlpha)
		for _, k := range Kernels()[1:] {
			if got := k.SumRGBA(ref, cand, rgbaLen, includeAlpha); got != want {
				return &MismatchError{Backend: k.backend, Op: op, Length: rgbaLen, Got: got, Want: want}
			}
		}
	}

	cb, cr := ref[:half], ref[half:n]
	cbc, crc := cand[:half], cand[half:n]
	want := scalarKernel.SumYCbCr(ref, cand, n, cb, cbc, len(cb), cr, crc, len(cr))
	for _, k := range Kernels()[1:] {
		if got := k.SumYCbCr(ref, cand, n, cb, cbc, len(cb), cr, crc, len(cr)); got != want {
			return &MismatchError{Backend: k.backend, Op: "ycbcr", Length: n, Got: got, Want: want}
		}
	}

	return nil
}

package mse

import (
	"errors"
	"fmt"
	"image"
)

var (
	// ErrSizeMismatch is returned when two images (or their chroma planes)
	// differ in size.
	ErrSizeMismatch = errors.New("mse: image sizes differ")

	// ErrSubsampleMismatch is returned when two YCbCr images use different
	// chroma subsampling.
	ErrSubsampleMismatch = errors.New("mse: chroma subsample ratios differ")
)

// SumNRGBA returns the squared difference sum of two NRGBA images of equal
// size. Padded strides and sub-images are handled row by row.
func SumNRGBA(a, b *image.NRGBA, includeAlpha bool) (uint64, error) {
	return sumInterleaved(a.Pix, a.Stride, a.Rect, b.Pix, b.Stride, b.Rect, includeAlpha)
}

// SumRGBAImage is SumNRGBA for premultiplied RGBA images.
func SumRGBAImage(a, b *image.RGBA, includeAlpha bool) (uint64, error) {
	return sumInterleaved(a.Pix, a.Stride, a.Rect, b.Pix, b.Stride, b.Rect, includeAlpha)
}

func sumInterleaved(pa []byte, strideA int, ra image.Rectangle, pb []byte, strideB int, rb image.Rectangle, includeAlpha bool) (uint64, error) {
	if ra.Dx() != rb.Dx() || ra.Dy() != rb.Dy() {
		return 0, fmt.Errorf("%w: %dx%d vs %dx%d", ErrSizeMismatch, ra.Dx(), ra.Dy(), rb.Dx(), rb.Dy())
	}

	rowBytes := ra.Dx() * 4
	rows := ra.Dy()
	if rowBytes == 0 || rows == 0 {
		return 0, nil
	}

	k := Active()

	// Tightly packed images go through the kernel in one call.
	if strideA == rowBytes && strideB == rowBytes {
		return k.SumRGBA(pa, pb, rowBytes*rows, includeAlpha), nil
	}

	var sum uint64
	for y := 0; y < rows; y++ {
		sum += k.SumRGBA(pa[y*strideA:], pb[y*strideB:], rowBytes, includeAlpha)
	}
	return sum, nil
}

// SumYCbCrImage returns the squared difference sum over the Y, Cb and Cr planes
// of two YCbCr images with the same size and subsample ratio. No color
// conversion takes place; samples are compared in the planes as stored.
func SumYCbCrImage(a, b *image.YCbCr) (uint64, error) {
	if a.SubsampleRatio != b.SubsampleRatio {
		return 0, fmt.Errorf("%w: %v vs %v", ErrSubsampleMismatch, a.SubsampleRatio, b.SubsampleRatio)
	}
	if a.Rect.Dx() != b.Rect.Dx() || a.Rect.Dy() != b.Rect.Dy() {
		return 0, fmt.Errorf("%w: %dx%d vs %dx%d", ErrSizeMismatch,
			a.Rect.Dx(), a.Rect.Dy(), b.Rect.Dx(), b.Rect.Dy())
	}

	cwA, chA := chromaSize(a.Rect, a.SubsampleRatio)
	cwB, chB := chromaSize(b.Rect, b.SubsampleRatio)
	if cwA != cwB || chA != chB {
		return 0, fmt.Errorf("%w: chroma %dx%d vs %dx%d", ErrSizeMismatch, cwA, chA, cwB, chB)
	}

	k := Active()
	w, h := a.Rect.Dx(), a.Rect.Dy()

	sum := sumRows(a.Y, a.YStride, b.Y, b.YStride, w, h, k.sumLuma)
	sum += sumRows(a.Cb, a.CStride, b.Cb, b.CStride, cwA, chA, planeScalar)
	sum += sumRows(a.Cr, a.CStride, b.Cr, b.CStride, cwA, chA, planeScalar)
	return sum, nil
}

// sumRows applies fn to each of rows rows of width samples. Tightly packed
// planes are passed to fn in one call.
func sumRows(ref []byte, refStride int, cand []byte, candStride int, width, rows int, fn func(ref, cand []byte) uint64) uint64 {
	if width <= 0 || rows <= 0 {
		return 0
	}
	if refStride == width && candStride == width {
		n := width * rows
		return fn(ref[:n], cand[:n])
	}

	var sum uint64
	for y := 0; y < rows; y++ {
		sum += fn(ref[y*refStride:][:width], cand[y*candStride:][:width])
	}
	return sum
}

// chromaSize returns the Cb/Cr plane dimensions for a luma rectangle. It
// mirrors the sizing used by image.NewYCbCr.
func chromaSize(r image.Rectangle, ratio image.YCbCrSubsampleRatio) (cw, ch int) {
	w, h := r.Dx(), r.Dy()

	switch ratio {
	case image.YCbCrSubsampleRatio422:
		cw = (r.Max.X+1)/2 - r.Min.X/2
		ch = h
	case image.YCbCrSubsampleRatio420:
		cw = (r.Max.X+1)/2 - r.Min.X/2
		ch = (r.Max.Y+1)/2 - r.Min.Y/2
	case image.YCbCrSubsampleRatio440:
		cw = w
		ch = (r.Max.Y+1)/2 - r.Min.Y/2
	case image.YCbCrSubsampleRatio411:
		cw = (r.Max.X+3)/4 - r.Min.X/4
		ch = h
	case image.YCbCrSubsampleRatio410:
		cw = (r.Max.X+3)/4 - r.Min.X/4
		ch = (r.Max.Y+1)/2 - r.Min.Y/2
	default:
		cw, ch = w, h
	}

	return cw, ch
}

// HasAlpha reports whether any probed pixel of img is not fully opaque. It
// probes every step-th pixel along both axes, so a transparent pixel between
// probes can be missed. A step below 1 probes every pixel.
//
// Callers use it to decide includeAlpha and the sample count of the final
// MSE: 4 channels when either image has alpha, 3 otherwise.
func HasAlpha(img image.Image, step int) bool {
	if step < 1 {
		step = 1
	}

	switch m := img.(type) {
	case *image.NRGBA:
		return probeAlpha(m.Pix, m.Stride, m.Rect, step)
	case *image.RGBA:
		return probeAlpha(m.Pix, m.Stride, m.Rect, step)
	case *image.YCbCr, *image.Gray:
		return false
	}

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return true
			}
		}
	}
	return false
}

func probeAlpha(pix []byte, stride int, r image.Rectangle, step int) bool {
	for y := 0; y < r.Dy(); y += step {
		row := pix[y*stride:]
		for x := 0; x < r.Dx(); x += step {
			if row[x*4+3] != 0xff {
				return true
			}
		}
	}
	return false
}

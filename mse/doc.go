// Package mse computes sums of squared per-sample differences between two
// byte buffers, the numerator of the mean squared error behind PSNR.
//
// Two layouts are supported:
//   - SumRGBA: interleaved R,G,B,A groups, with the alpha channel optionally excluded
//   - SumYCbCr: three independent planes (Y, Cb, Cr) with unrelated lengths
//
// Every kernel has a bulk loop that consumes whole chunks and a scalar loop that
// finishes the tail. The bulk loops work on 64-bit words holding eight samples
// (SWAR); the chunk width follows the vector width of the CPU (32 bytes on AVX2,
// 16 bytes on SSE2/NEON, none otherwise). Whatever kernel runs, the result is
// identical to the scalar reference for every input and length.
//
// Kernel calls are pure: they read their inputs once, keep no state and are safe
// to call from many goroutines at once.
//
// Preconditions are caller contracts, not errors. Buffers shorter than the
// declared length panic at the call boundary, and an RGBA length that is not a
// multiple of 4 panics when the last partial group is reached. Build with the
// msedebug tag to have the RGBA length asserted up front.
package mse

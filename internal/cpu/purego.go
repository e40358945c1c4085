//go:build purego

package cpu

// forceGeneric pins every caller to the scalar kernels in purego builds.
const forceGeneric = true

//go:build !purego

package cpu

const forceGeneric = false

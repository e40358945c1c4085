package mse

import (
	"sync"

	"github.com/cwbudde/fastmse/internal/cpu"
)

// entry binds a kernel to the SIMD level it is tuned for. The same kernel may
// be registered for several levels.
type entry struct {
	kernel   *Kernel
	level    cpu.SIMDLevel
	priority int
}

// entries is sorted by priority, highest first.
var entries = []entry{
	{kernel: wideKernel, level: cpu.SIMDAVX2, priority: 20},
	{kernel: narrowKernel, level: cpu.SIMDNEON, priority: 15},
	{kernel: narrowKernel, level: cpu.SIMDSSE2, priority: 10},
	{kernel: scalarKernel, level: cpu.SIMDNone, priority: 0},
}

var (
	active     *Kernel
	activeOnce sync.Once
)

// selectEntry returns the highest-priority entry the features support.
func selectEntry(features cpu.Features) entry {
	for _, e := range entries {
		if cpu.Supports(features, e.level) {
			return e
		}
	}
	return entries[len(entries)-1]
}

func selectActive() {
	features := cpu.DetectFeatures()
	e := selectEntry(features)
	active = e.kernel

	logger().Debug("MSE kernel selected",
		"backend", e.kernel.backend.String(),
		"chunk_bytes", e.kernel.chunk,
		"simd_level", e.level.String(),
		"arch", features.Architecture,
	)
}

// Active returns the kernel chosen for this CPU. The choice is made once, on
// first use, and never changes for the life of the process.
func Active() *Kernel {
	activeOnce.Do(selectActive)
	return active
}

// Lookup returns the kernel for a backend. Every kernel is plain Go and runs on
// any CPU, so Lookup is how tests and tools reach the non-active variants.
func Lookup(b Backend) (*Kernel, bool) {
	switch b {
	case BackendScalar:
		return scalarKernel, true
	case BackendNarrow:
		return narrowKernel, true
	case BackendWide:
		return wideKernel, true
	default:
		return nil, false
	}
}

// Kernels returns every kernel, scalar first.
func Kernels() []*Kernel {
	return []*Kernel{scalarKernel, narrowKernel, wideKernel}
}

package wasmvm

import "github.com/wasmerio/wasmer-go/wasmer"

// validateMemoryLimit enforces a cap on a module's declared memory
// maximum. Growth past a configured limit would ideally fail inside
// wasmer itself, the way a tunables layer overriding every memory
// import/definition's declared maximum to min(declared, configured_limit)
// would enforce it, but wasmer-go exposes no tunables or engine-
// middleware hook to intercept memory growth. Instead the cap is checked
// once at createInstance time: a module whose exported memory declares a
// maximum above the configured limit is rejected before it ever runs. A
// module that declares no maximum at all is not bounded by this check,
// since there is no growth-interception point available to enforce it at
// runtime.
//
// unboundedMemoryMax is the sentinel wasmer-go uses for a memory type
// declaring no upper bound.
const unboundedMemoryMax uint32 = 0xffffffff

func validateMemoryLimit(module *wasmer.Module, limitPages uint64) error {
	for _, export := range module.Exports() {
		if export.Name() != GuestMemoryExport {
			continue
		}
		memoryType, ok := export.Type().(*wasmer.MemoryType)
		if !ok {
			continue
		}
		limits := memoryType.Limits()
		if limits.Max != unboundedMemoryMax && uint64(limits.Max) > limitPages {
			return newError(KindInstantiationError,
				"module's declared memory maximum (%d pages) exceeds the configured limit (%d pages)",
				limits.Max, limitPages)
		}
	}
	return nil
}

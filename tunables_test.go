package wasmvm

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wasmerio/wasmer-go/wasmer"
)

// memoryOnlyModule is a hand-assembled, minimal WASM binary exporting
// nothing but a linear memory declared with limits {min: 1, max: 2}. It
// has no function section, so it exercises instantiation and the memory
// limit check without exercising any ABI call.
var memoryOnlyModule = []byte{
	0x00, 0x61, 0x73, 0x6d, // magic "\0asm"
	0x01, 0x00, 0x00, 0x00, // version 1

	// memory section (id 5): one memory, flags=1 (has max), min=1, max=2
	0x05, 0x04, 0x01, 0x01, 0x01, 0x02,

	// export section (id 7): export memidx 0 as "memory"
	0x07, 0x0a, 0x01, 0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00,
}

func compileModule(t *testing.T, bytes []byte) *wasmer.Module {
	t.Helper()
	engine := wasmer.NewEngine()
	store := wasmer.NewStore(engine)
	module, err := wasmer.NewModule(store, bytes)
	require.NoError(t, err)
	return module
}

func TestValidateMemoryLimitAcceptsWithinBound(t *testing.T) {
	module := compileModule(t, memoryOnlyModule)
	require.NoError(t, validateMemoryLimit(module, 2))
}

func TestValidateMemoryLimitRejectsDeclaredMaxAboveBound(t *testing.T) {
	module := compileModule(t, memoryOnlyModule)
	err := validateMemoryLimit(module, 1)
	require.Error(t, err)

	var vmErr *Error
	require.ErrorAs(t, err, &vmErr)
	require.Equal(t, KindInstantiationError, vmErr.Kind)
}

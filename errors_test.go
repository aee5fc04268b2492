package wasmvm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessageFormatting(t *testing.T) {
	err := newError(KindArgumentReadError, "pointer %d out of bounds", 42)
	assert.Equal(t, "ArgumentReadError: pointer 42 out of bounds", err.Error())
}

func TestGasExhaustedMessageNamesTheFunction(t *testing.T) {
	err := gasExhausted("assembly_script_set_data")
	assert.Equal(t, "Not enough gas, limit reached at: assembly_script_set_data", err.Error())
	assert.Equal(t, KindGasExhausted, err.Kind)
}

func TestHostErrorPreservesOriginalMessage(t *testing.T) {
	original := errors.New("no module at address SC1")
	err := hostError(original)
	assert.Equal(t, KindHostError, err.Kind)
	assert.ErrorIs(t, err, original)
}

func TestWrapErrorUnwrapsToOriginal(t *testing.T) {
	original := errors.New("boom")
	err := wrapError(KindCompilationError, original, "failed to compile module")
	assert.True(t, errors.Is(err, original))
}

func TestKindStringCoversEveryKind(t *testing.T) {
	kinds := []Kind{
		KindCompilationError, KindInstantiationError, KindLinkError,
		KindMemoryUninitialized, KindArgumentReadError, KindHostError,
		KindAllocationError, KindGasExhausted, KindInvalidUtf8,
		KindBase64DecodeError, KindReturnTypeError,
	}
	seen := make(map[string]bool)
	for _, k := range kinds {
		s := k.String()
		assert.NotEqual(t, "UnknownError", s)
		assert.False(t, seen[s], "duplicate Kind.String() value %q", s)
		seen[s] = true
	}
}

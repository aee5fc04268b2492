package wasmvm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResetMeteringRestoresDefaults(t *testing.T) {
	defer ResetMetering()

	SetMeteringCall(0)
	SetMaxNumberOfPages(1)
	ResetMetering()

	assert.Equal(t, defaultMeteringCosts(), currentCosts())
	assert.Equal(t, defaultMaxPages, MaxNumberOfPages())
}

func TestSetMeteringOverridesEveryCost(t *testing.T) {
	defer ResetMetering()

	SetMetering(7)
	costs := currentCosts()
	assert.Equal(t, uint64(7), costs.call)
	assert.Equal(t, uint64(7), costs.print)
	assert.Equal(t, uint64(7), costs.getData)
	assert.Equal(t, uint64(7), costs.setBytecode)
}

func TestPerCallSetterOnlyAffectsThatCall(t *testing.T) {
	defer ResetMetering()

	before := currentCosts()
	SetMeteringPrint(999)
	after := currentCosts()

	assert.Equal(t, uint64(999), after.print)
	assert.Equal(t, before.call, after.call)
	assert.Equal(t, before.getData, after.getData)
}

func TestMaxNumberOfPagesRoundTrips(t *testing.T) {
	defer ResetMetering()

	SetMaxNumberOfPages(42)
	assert.Equal(t, uint64(42), MaxNumberOfPages())
}

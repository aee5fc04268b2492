package wasmvm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeAddressListProducesJSONArray(t *testing.T) {
	out, err := encodeAddressList([]Address{"SC1", "SC2"})
	require.NoError(t, err)
	assert.JSONEq(t, `["SC1","SC2"]`, out)
}

func TestEncodeAddressListEmpty(t *testing.T) {
	_, err := encodeAddressList(nil)
	require.NoError(t, err)
}

func TestJoinRawNewlineJoins(t *testing.T) {
	assert.Equal(t, "SC1\nSC2\nSC3", joinRaw([]Address{"SC1", "SC2", "SC3"}))
	assert.Equal(t, "", joinRaw(nil))
}

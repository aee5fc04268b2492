package wasmvm

import (
	"encoding/binary"
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/require"
	"github.com/wasmerio/wasmer-go/wasmer"
)

func newTestMemory(t *testing.T) *wasmer.Memory {
	t.Helper()
	engine := wasmer.NewEngine()
	store := wasmer.NewStore(engine)
	limits, err := wasmer.NewLimits(1, 1)
	require.NoError(t, err)
	return wasmer.NewMemory(store, wasmer.NewMemoryType(limits))
}

// writeGuestString lays out a string in memory the way allocateGuestString
// would, without going through a guest allocator, so readGuestString can
// be exercised on its own.
func writeGuestString(t *testing.T, memory *wasmer.Memory, offset uint32, s string) {
	t.Helper()
	units := utf16.Encode([]rune(s))
	byteLen := uint32(len(units) * 2)
	data := memory.Data()
	require.GreaterOrEqual(t, len(data), int(offset)+int(byteLen))
	binary.LittleEndian.PutUint32(data[offset-stringHeaderSize:offset], byteLen)
	for i, u := range units {
		binary.LittleEndian.PutUint16(data[int(offset)+i*2:], u)
	}
}

func TestReadGuestStringRoundTrips(t *testing.T) {
	memory := newTestMemory(t)
	const offset = 64
	writeGuestString(t, memory, offset, "hello you")

	got, err := readGuestString(memory, offset)
	require.NoError(t, err)
	require.Equal(t, "hello you", got)
}

func TestReadGuestStringRejectsOutOfBoundsOffset(t *testing.T) {
	memory := newTestMemory(t)
	_, err := readGuestString(memory, uint32(len(memory.Data()))+1)
	require.Error(t, err)

	var vmErr *Error
	require.ErrorAs(t, err, &vmErr)
	require.Equal(t, KindArgumentReadError, vmErr.Kind)
}

func TestReadGuestStringRejectsOffsetBelowHeaderSize(t *testing.T) {
	memory := newTestMemory(t)
	_, err := readGuestString(memory, 1)
	require.Error(t, err)
}

func TestReadGuestStringNilMemory(t *testing.T) {
	_, err := readGuestString(nil, 64)
	require.Error(t, err)

	var vmErr *Error
	require.ErrorAs(t, err, &vmErr)
	require.Equal(t, KindMemoryUninitialized, vmErr.Kind)
}

func TestReadGuestUtf8ReturnsRawBytes(t *testing.T) {
	memory := newTestMemory(t)
	const offset = 128
	writeGuestString(t, memory, offset, "abc")

	got, err := readGuestUtf8(memory, offset)
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), got)
}

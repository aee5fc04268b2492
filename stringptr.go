package wasmvm

import (
	"encoding/binary"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/wasmerio/wasmer-go/wasmer"
)

// Guest strings are exchanged as offsets into the guest's linear memory,
// laid out the way the guest's own allocator produces them: a 4-byte
// little-endian byte-length header immediately preceding a UTF-16LE code
// unit buffer of that length. The runtime never constructs this layout by
// hand except through allocateGuestString below, which goes through the
// guest's own allocator export, matching the "guest-allocated strings"
// design note: the host never manages guest heap memory directly.
const stringHeaderSize = 4

// readGuestString interprets offset as a guest string pointer and decodes
// it. Any out-of-bounds or malformed read traps with ArgumentReadError
// rather than panicking, per the ABI prologue contract.
func readGuestString(memory *wasmer.Memory, offset uint32) (string, error) {
	if memory == nil {
		return "", newError(KindMemoryUninitialized, "uninitialized memory")
	}
	data := memory.Data()
	if offset < stringHeaderSize || uint64(offset) > uint64(len(data)) {
		return "", newError(KindArgumentReadError, "string pointer %d out of bounds", offset)
	}
	byteLen := binary.LittleEndian.Uint32(data[offset-stringHeaderSize : offset])
	if byteLen%2 != 0 {
		return "", newError(KindArgumentReadError, "string pointer %d has an odd byte length %d", offset, byteLen)
	}
	end := uint64(offset) + uint64(byteLen)
	if end > uint64(len(data)) {
		return "", newError(KindArgumentReadError, "string pointer %d claims length %d past memory bounds", offset, byteLen)
	}
	raw := data[offset:end]
	units := make([]uint16, byteLen/2)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(raw[i*2:])
	}
	return string(utf16.Decode(units)), nil
}

// readGuestUtf8 reads a guest string and returns its raw UTF-8 bytes,
// without re-validating: a Go string decoded from the guest's UTF-16
// buffer is already well-formed UTF-8 by construction.
func readGuestUtf8(memory *wasmer.Memory, offset uint32) ([]byte, error) {
	s, err := readGuestString(memory, offset)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// allocateGuestString invokes the guest's allocator export to reserve a
// new string buffer, writes the length header and UTF-16LE payload into
// it, and returns the data offset (not the allocator's raw return, which
// points at the header).
func allocateGuestString(env *Env, s string) (uint32, error) {
	memory, err := env.memoryHandle()
	if err != nil {
		return 0, err
	}
	allocate, err := env.allocatorHandle()
	if err != nil {
		return 0, err
	}
	units := utf16.Encode([]rune(s))
	byteLen := uint32(len(units) * 2)

	raw, err := allocate(int32(byteLen + stringHeaderSize))
	if err != nil {
		return 0, wrapError(KindAllocationError, err, "guest allocator call failed")
	}
	base, ok := raw.(int32)
	if !ok {
		return 0, newError(KindAllocationError, "guest allocator returned a non-i32 value")
	}
	if base < stringHeaderSize {
		return 0, newError(KindAllocationError, "guest allocator returned an invalid pointer %d", base)
	}
	offset := uint32(base) + stringHeaderSize

	data := memory.Data()
	if uint64(offset)+uint64(byteLen) > uint64(len(data)) {
		return 0, newError(KindAllocationError, "guest allocator returned an out-of-bounds buffer")
	}
	binary.LittleEndian.PutUint32(data[offset-stringHeaderSize:offset], byteLen)
	for i, u := range units {
		binary.LittleEndian.PutUint16(data[int(offset)+i*2:], u)
	}
	return offset, nil
}

// allocateGuestBytes treats raw as a UTF-8 buffer coming from the host
// Interface and allocates it back into the guest, failing with
// InvalidUtf8 before touching the allocator if raw is not valid UTF-8.
func allocateGuestBytes(env *Env, raw []byte) (uint32, error) {
	if !utf8.Valid(raw) {
		return 0, newError(KindInvalidUtf8, "host returned non-UTF-8 data")
	}
	return allocateGuestString(env, string(raw))
}

package wasmvm

import (
	"strings"

	"github.com/francoispqt/gojay"
)

// encodeAddressList produces the "configured" wire form of an address
// list (get_owned_addresses, get_call_stack): a JSON array of strings,
// encoded with gojay rather than encoding/json to match the low-
// allocation streaming style the rest of the ABI layer favors for
// guest-facing buffers.
func encodeAddressList(addrs []Address) (string, error) {
	b, err := gojay.MarshalJSONArray(addressSlice(addrs))
	if err != nil {
		return "", newError(KindAllocationError, "failed to encode address list: %v", err)
	}
	return string(b), nil
}

// joinRaw is the "_raw" variant: a plain newline-joined list, with no
// delimiting or escaping beyond that, mirroring the Rust source's
// "_raw" ABI functions which skip any structured encoding in favour of
// direct string concatenation.
func joinRaw(addrs []Address) string {
	return strings.Join(addrs, "\n")
}

type addressSlice []Address

func (a addressSlice) MarshalJSONArray(enc *gojay.Encoder) {
	for _, addr := range a {
		enc.AddString(addr)
	}
}

func (a addressSlice) IsNil() bool { return a == nil }

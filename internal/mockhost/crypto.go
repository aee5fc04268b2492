package mockhost

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/mr-tron/base58"
	"lukechampine.com/blake3"
)

func hashBytes(data []byte) []byte {
	sum := blake3.Sum256(data)
	return sum[:]
}

// verifySignature checks a DER-encoded secp256k1 signature over the
// blake3 digest of message, matching the hash-then-sign convention the
// rest of this package uses for Hash.
func verifySignature(publicKey, signature, message []byte) (bool, error) {
	pub, err := secp256k1.ParsePubKey(publicKey)
	if err != nil {
		return false, err
	}
	sig, err := ecdsa.ParseDERSignature(signature)
	if err != nil {
		return false, err
	}
	digest := hashBytes(message)
	return sig.Verify(digest, pub), nil
}

// addressFromPublicKey derives a host-chosen address string from a
// public key: blake3 digest, base58-encoded, prefixed the way the
// mainline address scheme tags user-owned accounts.
func addressFromPublicKey(publicKey []byte) string {
	digest := hashBytes(publicKey)
	return "A" + base58.Encode(digest)
}

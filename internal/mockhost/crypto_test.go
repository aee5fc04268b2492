package mockhost

import (
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/stretchr/testify/require"
)

func TestHashIsDeterministic(t *testing.T) {
	a := hashBytes([]byte("hello"))
	b := hashBytes([]byte("hello"))
	require.Equal(t, a, b)
	require.Len(t, a, 32)

	c := hashBytes([]byte("world"))
	require.NotEqual(t, a, c)
}

func TestAddressFromPublicKeyIsStableAndPrefixed(t *testing.T) {
	priv, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	pub := priv.PubKey().SerializeCompressed()

	addr1 := addressFromPublicKey(pub)
	addr2 := addressFromPublicKey(pub)
	require.Equal(t, addr1, addr2)
	require.Equal(t, byte('A'), addr1[0])
}

func TestVerifySignatureAcceptsGenuineSignature(t *testing.T) {
	priv, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	pub := priv.PubKey()

	message := []byte("transfer 10 coins to SC2")
	digest := hashBytes(message)
	sig := ecdsa.Sign(priv, digest)

	ok, err := verifySignature(pub.SerializeCompressed(), sig.Serialize(), message)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifySignatureRejectsTamperedMessage(t *testing.T) {
	priv, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	pub := priv.PubKey()

	digest := hashBytes([]byte("original"))
	sig := ecdsa.Sign(priv, digest)

	ok, err := verifySignature(pub.SerializeCompressed(), sig.Serialize(), []byte("tampered"))
	require.NoError(t, err)
	require.False(t, ok)
}

package elgamal

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/elgamal/group"
)

func TestCipherTextMarshalRoundTripBothModes(t *testing.T) {
	s := group.NewEd25519()
	pub, _ := GenerateKey(s)
	c := pub.Enc(s, 11)

	for _, mode := range []Mode{ModeBinary, ModeHex} {
		b, err := c.Marshal(s, mode)
		require.NoError(t, err)

		var got CipherText
		require.NoError(t, got.Unmarshal(s, b, mode))
		require.True(t, c.Equal(&got))
	}
}

func TestCipherTextUnmarshalRejectsTruncated(t *testing.T) {
	s := group.NewEd25519()
	pub, _ := GenerateKey(s)
	c := pub.Enc(s, 1)

	b, err := c.Marshal(s, ModeBinary)
	require.NoError(t, err)

	var got CipherText
	err = got.Unmarshal(s, b[:len(b)-1], ModeBinary)
	require.ErrorIs(t, err, ErrDecodeError)
}

func TestZkpMarshalRoundTripBothModes(t *testing.T) {
	s := group.NewEd25519()
	pub, _ := GenerateKey(s)
	_, zkp, err := pub.EncWithZkp(s, 1)
	require.NoError(t, err)

	for _, mode := range []Mode{ModeBinary, ModeHex} {
		b, err := zkp.Marshal(s, mode)
		require.NoError(t, err)

		var got Zkp
		require.NoError(t, got.Unmarshal(s, b, mode))
		require.True(t, zkp.C0.Equal(got.C0))
		require.True(t, zkp.C1.Equal(got.C1))
		require.True(t, zkp.S0.Equal(got.S0))
		require.True(t, zkp.S1.Equal(got.S1))
	}
}

func TestPublicKeyMarshalRoundTripBothModes(t *testing.T) {
	s := group.NewEd25519()
	pub, _ := GenerateKey(s)

	for _, mode := range []Mode{ModeBinary, ModeHex} {
		b, err := pub.Marshal(s, mode)
		require.NoError(t, err)

		got, err := UnmarshalPublicKey(s, b, mode)
		require.NoError(t, err)
		require.True(t, pub.f.Equal(got.f))
		require.True(t, pub.g.Equal(got.g))
		require.True(t, pub.h.Equal(got.h))
		require.Equal(t, pub.bitSize, got.bitSize)
	}
}

func TestPrivateKeyMarshalRoundTripBothModes(t *testing.T) {
	s := group.NewEd25519()
	pub, priv := GenerateKey(s)

	for _, mode := range []Mode{ModeBinary, ModeHex} {
		b, err := priv.Marshal(s, mode)
		require.NoError(t, err)

		got, err := UnmarshalPrivateKey(s, b, mode)
		require.NoError(t, err)

		c := pub.Enc(s, 9)
		m, err := got.Dec(s, c, 100)
		require.NoError(t, err)
		require.EqualValues(t, 9, m)
	}
}

func TestPublicKeyUnmarshalRejectsGarbageHex(t *testing.T) {
	s := group.NewEd25519()
	_, err := UnmarshalPublicKey(s, []byte("not json"), ModeHex)
	require.ErrorIs(t, err, ErrDecodeError)
}

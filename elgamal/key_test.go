package elgamal

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/elgamal/group"
)

func TestEncDecRoundTrip(t *testing.T) {
	s := group.NewEd25519()
	pub, priv := GenerateKey(s)

	for _, m := range []int64{0, 1, -1, 17, -42, 1000} {
		c := pub.Enc(s, m)
		got, err := priv.Dec(s, c, 2000)
		require.NoError(t, err)
		require.Equal(t, m, got)
	}
}

func TestDecOverflow(t *testing.T) {
	s := group.NewEd25519()
	pub, priv := GenerateKey(s)

	c := pub.Enc(s, 10000)
	_, err := priv.Dec(s, c, 10)
	require.ErrorIs(t, err, ErrDecryptOverflow)
}

func TestRerandomizePreservesPlaintext(t *testing.T) {
	s := group.NewEd25519()
	pub, priv := GenerateKey(s)

	c := pub.Enc(s, 5)
	before := c.Clone()
	pub.Rerandomize(s, c)

	require.False(t, c.Equal(before))
	got, err := priv.Dec(s, c, 100)
	require.NoError(t, err)
	require.EqualValues(t, 5, got)
}

func TestAddPlaintextIntoCiphertext(t *testing.T) {
	s := group.NewEd25519()
	pub, priv := GenerateKey(s)

	c := pub.Enc(s, 5)
	pub.Add(s, c, 3)

	got, err := priv.Dec(s, c, 100)
	require.NoError(t, err)
	require.EqualValues(t, 8, got)
}

func TestIsZeroMessage(t *testing.T) {
	s := group.NewEd25519()
	pub, priv := GenerateKey(s)

	zero := pub.Enc(s, 0)
	require.True(t, priv.IsZeroMessage(s, zero))

	nonzero := pub.Enc(s, 1)
	require.False(t, priv.IsZeroMessage(s, nonzero))
}

func TestEnableWindowMethodMatchesGeneralMul(t *testing.T) {
	s := group.NewEd25519()
	f := s.Point().Pick(s.RandomStream())

	windowed := &PrivateKey{}
	windowed.Init(s, f, DefaultBitSize)

	k := s.Scalar().Pick(s.RandomStream())
	require.True(t, windowed.pub.mulF(s, k).Equal(s.Mul(s.Point(), f, k)))
	require.True(t, windowed.pub.mulG(s, k).Equal(s.Mul(s.Point(), windowed.pub.g, k)))
	require.True(t, windowed.pub.mulH(s, k).Equal(s.Mul(s.Point(), windowed.pub.h, k)))

	c := windowed.pub.Enc(s, 123)
	got, err := windowed.Dec(s, c, 1000)
	require.NoError(t, err)
	require.EqualValues(t, 123, got)
}

func TestEncScalarMatchesEncForLargeValue(t *testing.T) {
	s := group.NewEd25519()
	pub, priv := GenerateKey(s)

	m := s.ScalarOf(999)
	c := pub.EncScalar(s, m)
	got, err := priv.Dec(s, c, 2000)
	require.NoError(t, err)
	require.EqualValues(t, 999, got)
}

package elgamal

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/elgamal/group"
)

func TestPowerCacheBadRange(t *testing.T) {
	s := group.NewEd25519()
	f := s.Point().Pick(s.RandomStream())
	_, err := NewPowerCache(s, f, 5, -5)
	require.ErrorIs(t, err, ErrBadRange)
}

func TestPowerCacheExactRange(t *testing.T) {
	s := group.NewEd25519()
	f := s.Point().Pick(s.RandomStream())
	pc, err := NewPowerCache(s, f, -3, 3)
	require.NoError(t, err)

	for i := int64(-3); i <= 3; i++ {
		g := s.Mul(s.Point(), f, s.ScalarOf(i))
		m, ok := pc.GetExponent(s, g)
		require.True(t, ok)
		require.Equal(t, i, m)
	}

	outside := s.Mul(s.Point(), f, s.ScalarOf(4))
	_, ok := pc.GetExponent(s, outside)
	require.False(t, ok)
}

func TestPrivateKeyDecCacheRoundTrip(t *testing.T) {
	s := group.NewEd25519()
	pub, priv := GenerateKey(s)

	require.NoError(t, priv.SetCache(s, -10, 10))

	c := pub.Enc(s, 7)
	m, err := priv.DecCache(s, c)
	require.NoError(t, err)
	require.EqualValues(t, 7, m)
}

func TestPrivateKeyDecCacheNotFoundOutsideRange(t *testing.T) {
	s := group.NewEd25519()
	pub, priv := GenerateKey(s)

	require.NoError(t, priv.SetCache(s, -5, 5))

	c := pub.Enc(s, 1000)
	_, err := priv.DecCache(s, c)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPrivateKeyDecCacheWithoutSetCache(t *testing.T) {
	s := group.NewEd25519()
	pub, priv := GenerateKey(s)

	c := pub.Enc(s, 1)
	_, err := priv.DecCache(s, c)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPrivateKeyClearCache(t *testing.T) {
	s := group.NewEd25519()
	pub, priv := GenerateKey(s)

	require.NoError(t, priv.SetCache(s, -5, 5))
	priv.ClearCache()

	c := pub.Enc(s, 1)
	_, err := priv.DecCache(s, c)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDecryptCacheMemoizesAndMatchesDirectDec(t *testing.T) {
	s := group.NewEd25519()
	pub, priv := GenerateKey(s)

	dc, err := NewDecryptCache(16)
	require.NoError(t, err)

	c := pub.Enc(s, 42)

	m1, err := dc.Dec(s, priv, c, 1000)
	require.NoError(t, err)
	require.EqualValues(t, 42, m1)

	m2, err := dc.Dec(s, priv, c, 1000)
	require.NoError(t, err)
	require.Equal(t, m1, m2)
}

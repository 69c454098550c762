package group

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	s := NewEd25519()
	p := s.Point().Pick(s.RandomStream())

	b, err := s.Encode(p)
	require.NoError(t, err)

	got, err := s.Decode(b)
	require.NoError(t, err)
	require.True(t, p.Equal(got))
}

func TestDecodeRejectsGarbage(t *testing.T) {
	s := NewEd25519()
	_, err := s.Decode([]byte{0x01, 0x02})
	require.Error(t, err)
}

func TestIdentity(t *testing.T) {
	s := NewEd25519()
	require.True(t, s.IsIdentity(s.Identity()))

	p := s.Point().Pick(s.RandomStream())
	require.False(t, s.IsIdentity(p))
}

func TestScalarOfNegative(t *testing.T) {
	s := NewEd25519()
	base := s.Point().Pick(s.RandomStream())

	pos := s.Mul(s.Point(), base, s.ScalarOf(5))
	neg := s.Mul(s.Point(), base, s.ScalarOf(-5))

	sum := s.Add(s.Point(), pos, neg)
	require.True(t, s.IsIdentity(sum))
}

func TestHashToScalarDeterministicAndSensitive(t *testing.T) {
	s := NewEd25519()
	a := s.HashToScalar([]byte("one"), []byte("two"))
	b := s.HashToScalar([]byte("one"), []byte("two"))
	require.True(t, a.Equal(b))

	c := s.HashToScalar([]byte("onetwo"))
	require.False(t, a.Equal(c), "length-prefixing must disambiguate concatenation boundaries")
}

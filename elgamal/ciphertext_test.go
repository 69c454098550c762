package elgamal

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/elgamal/group"
)

func TestCipherTextAddHomomorphic(t *testing.T) {
	s := group.NewEd25519()
	pub, priv := GenerateKey(s)

	a := pub.Enc(s, 3)
	b := pub.Enc(s, 4)

	sum := AddCipherTexts(s, a, b)
	got, err := priv.Dec(s, sum, 100)
	require.NoError(t, err)
	require.EqualValues(t, 7, got)
}

func TestCipherTextMulScalesPlaintext(t *testing.T) {
	s := group.NewEd25519()
	pub, priv := GenerateKey(s)

	c := pub.Enc(s, 6)
	scaled := MulCipherText(s, c, s.ScalarOf(3))

	got, err := priv.Dec(s, scaled, 100)
	require.NoError(t, err)
	require.EqualValues(t, 18, got)
}

func TestCipherTextNegInvertsPlaintext(t *testing.T) {
	s := group.NewEd25519()
	pub, priv := GenerateKey(s)

	c := pub.Enc(s, 9)
	neg := NegCipherText(s, c)

	sum := AddCipherTexts(s, c, neg)
	require.True(t, priv.IsZeroMessage(s, sum))
}

func TestCipherTextClear(t *testing.T) {
	s := group.NewEd25519()
	_, priv := GenerateKey(s)

	c := NewCipherText(s)
	c.C1 = s.Point().Pick(s.RandomStream())
	c.C2 = s.Point().Pick(s.RandomStream())
	c.Clear(s)

	require.True(t, priv.IsZeroMessage(s, c))
}

func TestCipherTextPureOpsLeaveOperandsUnchanged(t *testing.T) {
	s := group.NewEd25519()
	pub, _ := GenerateKey(s)

	a := pub.Enc(s, 1)
	aCopy := a.Clone()
	b := pub.Enc(s, 2)

	_ = AddCipherTexts(s, a, b)
	require.True(t, a.Equal(aCopy))
}

package elgamal

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/elgamal/group"
)

func TestEncWithZkpRejectsNonBit(t *testing.T) {
	s := group.NewEd25519()
	pub, _ := GenerateKey(s)

	_, _, err := pub.EncWithZkp(s, 2)
	require.ErrorIs(t, err, ErrInvalidBit)
}

func TestEncWithZkpVerifiesBothBranches(t *testing.T) {
	s := group.NewEd25519()
	pub, _ := GenerateKey(s)

	for _, bit := range []int{0, 1} {
		c, zkp, err := pub.EncWithZkp(s, bit)
		require.NoError(t, err)
		require.True(t, pub.Verify(s, c, zkp), "bit %d", bit)
	}
}

func TestVerifyRejectsTamperedCiphertext(t *testing.T) {
	s := group.NewEd25519()
	pub, _ := GenerateKey(s)

	c, zkp, err := pub.EncWithZkp(s, 1)
	require.NoError(t, err)

	pub.Rerandomize(s, c)
	require.False(t, pub.Verify(s, c, zkp))
}

func TestVerifyRejectsTamperedProof(t *testing.T) {
	s := group.NewEd25519()
	pub, _ := GenerateKey(s)

	c, zkp, err := pub.EncWithZkp(s, 0)
	require.NoError(t, err)

	zkp.S0 = s.Scalar().Pick(s.RandomStream())
	require.False(t, pub.Verify(s, c, zkp))
}

func TestVerifyBatchCollectsEachFailure(t *testing.T) {
	s := group.NewEd25519()
	pub, _ := GenerateKey(s)

	good, goodZkp, err := pub.EncWithZkp(s, 1)
	require.NoError(t, err)

	bad, badZkp, err := pub.EncWithZkp(s, 0)
	require.NoError(t, err)
	pub.Rerandomize(s, bad)

	err = pub.VerifyBatch(s, []Batch{
		{Cipher: good, Proof: goodZkp},
		{Cipher: bad, Proof: badZkp},
	})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidProof)
}

func TestVerifyBatchAllValid(t *testing.T) {
	s := group.NewEd25519()
	pub, _ := GenerateKey(s)

	var batch []Batch
	for _, bit := range []int{0, 1, 1, 0} {
		c, zkp, err := pub.EncWithZkp(s, bit)
		require.NoError(t, err)
		batch = append(batch, Batch{Cipher: c, Proof: zkp})
	}
	require.NoError(t, pub.VerifyBatch(s, batch))
}

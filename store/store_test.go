package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"go.dedis.ch/elgamal/elgamal"
	"go.dedis.ch/elgamal/group"
	"go.dedis.ch/elgamal/log"
)

func TestSaveAndLoadKeyRoundTrip(t *testing.T) {
	tmp := t.TempDir()
	st, err := Open(log.DefaultLogger(), tmp, nil)
	require.NoError(t, err)
	defer func() { require.NoError(t, st.Close()) }()

	s := group.NewEd25519()
	pub, priv := elgamal.GenerateKey(s)

	require.NoError(t, st.SaveKey(s, "node-1", priv))

	got, err := st.LoadKey(s, "node-1")
	require.NoError(t, err)

	c := pub.Enc(s, 21)
	m, err := got.Dec(s, c, 100)
	require.NoError(t, err)
	require.EqualValues(t, 21, m)
}

func TestLoadKeyMissingReturnsNotFound(t *testing.T) {
	tmp := t.TempDir()
	st, err := Open(log.DefaultLogger(), tmp, nil)
	require.NoError(t, err)
	defer func() { require.NoError(t, st.Close()) }()

	s := group.NewEd25519()
	_, err = st.LoadKey(s, "missing")
	require.ErrorIs(t, err, elgamal.ErrNotFound)
}

func TestDeleteKey(t *testing.T) {
	tmp := t.TempDir()
	st, err := Open(log.DefaultLogger(), tmp, nil)
	require.NoError(t, err)
	defer func() { require.NoError(t, st.Close()) }()

	s := group.NewEd25519()
	_, priv := elgamal.GenerateKey(s)
	require.NoError(t, st.SaveKey(s, "node-1", priv))
	require.NoError(t, st.DeleteKey("node-1"))

	_, err = st.LoadKey(s, "node-1")
	require.ErrorIs(t, err, elgamal.ErrNotFound)
}

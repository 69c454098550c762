package elgamalcli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	output = &buf
	app := CLI()
	full := append([]string{"elgamal", "--folder", t.TempDir()}, args...)
	require.NoError(t, app.Run(full))
	return buf.String()
}

func TestKeygenThenEncDec(t *testing.T) {
	folder := t.TempDir()
	var buf bytes.Buffer
	output = &buf

	app := CLI()
	require.NoError(t, app.Run([]string{"elgamal", "--folder", folder, "keygen", "--name", "n1"}))

	buf.Reset()
	require.NoError(t, app.Run([]string{"elgamal", "--folder", folder, "enc", "--name", "n1", "7"}))
	ciphertext := bytes.TrimSpace(buf.Bytes())
	require.NotEmpty(t, ciphertext)

	buf.Reset()
	require.NoError(t, app.Run([]string{"elgamal", "--folder", folder, "dec", "--name", "n1", string(ciphertext)}))
	require.Contains(t, buf.String(), "7")
}

func TestEncRejectsMissingKey(t *testing.T) {
	folder := t.TempDir()
	var buf bytes.Buffer
	output = &buf

	app := CLI()
	err := app.Run([]string{"elgamal", "--folder", folder, "enc", "--name", "missing", "1"})
	require.Error(t, err)
}

func TestProveThenVerify(t *testing.T) {
	folder := t.TempDir()
	var buf bytes.Buffer
	output = &buf

	app := CLI()
	require.NoError(t, app.Run([]string{"elgamal", "--folder", folder, "keygen", "--name", "n1"}))

	buf.Reset()
	require.NoError(t, app.Run([]string{"elgamal", "--folder", folder, "prove", "--name", "n1", "1"}))
	require.Contains(t, buf.String(), "ciphertext")
	require.Contains(t, buf.String(), "proof")

	var out map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &out))

	buf.Reset()
	require.NoError(t, app.Run([]string{"elgamal", "--folder", folder, "verify", "--name", "n1", string(out["ciphertext"]), string(out["proof"])}))
	require.Equal(t, "true", strings.TrimSpace(buf.String()))
}

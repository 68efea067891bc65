package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	perr "paysplit/internal/platform/errors"

	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errb bytes.Buffer
	root := NewRoot()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&errb)
	root.SetIn(strings.NewReader(stdin))
	err := root.Execute()
	return out.String(), err
}

func TestSplit_ClampsAndConverts(t *testing.T) {
	out, err := run(t, "", "split", "--total", "100", "--stable", "70")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, true, got["adjusted"])
	require.Equal(t, "50", got["usdtAmountUSD"])
	require.Equal(t, "100", got["ivyAmountNative"])
	require.NotEmpty(t, got["advisory"])

	out, err = run(t, "", "split", "--total", "100", "--stable", "40", "--rate", "2")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, "30", got["ivyAmountNative"])
	require.Equal(t, false, got["adjusted"])
}

func TestSplit_BadInput(t *testing.T) {
	_, err := run(t, "", "split", "--total", "abc")
	require.True(t, perr.IsCode(err, perr.ErrorCodeInvalidInput))

	_, err = run(t, "", "split", "--total", "10", "--rate=-1")
	require.Error(t, err)
}

func TestEncode_CanonicalPayload(t *testing.T) {
	out, err := run(t, "", "encode", "--total", "100", "--stable", "40")
	require.NoError(t, err)
	require.Equal(t, `{"productImageBase64":null,"totalPriceUSD":100,"usdtAmountUSD":40,"ivyAmountUSD":60}`+"\n", out)
}

func TestEncode_RejectsClampedStable(t *testing.T) {
	_, err := run(t, "", "encode", "--total", "100", "--stable", "70")
	require.True(t, perr.IsCode(err, perr.ErrorCodeInvalidInput))

	_, err = run(t, "", "encode", "--total", "0", "--stable", "0")
	require.True(t, perr.IsCode(err, perr.ErrorCodeInvalidInput))
}

func TestEncode_WritesQRCode(t *testing.T) {
	dir := t.TempDir()
	png := filepath.Join(dir, "code.png")

	out, err := run(t, "", "encode", "--total", "10", "--stable", "5", "--name", "Tea", "-o", png, "--size", "128")
	require.NoError(t, err)
	require.Contains(t, out, `"productName":"Tea"`)

	b, err := os.ReadFile(png)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(b, []byte("\x89PNG")))
}

func TestDecode_ArgumentAndStdin(t *testing.T) {
	payload := `{"productImageBase64":null,"totalPriceUSD":100,"usdtAmountUSD":40,"ivyAmountUSD":60}`

	out, err := run(t, "", "decode", payload, "-q", "3")
	require.NoError(t, err)
	var got decoded
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, 3, got.Totals.Quantity)
	require.Equal(t, "300", got.Totals.Total.String())
	require.Equal(t, "180", got.Totals.Remainder.String())

	out, err = run(t, payload+"\n", "decode")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, 1, got.Totals.Quantity)
}

func TestDecode_Errors(t *testing.T) {
	_, err := run(t, "", "decode", "not json")
	require.True(t, perr.IsCode(err, perr.ErrorCodeMalformedPayload))

	_, err = run(t, "", "decode", `{"totalPriceUSD":1}`)
	require.True(t, perr.IsCode(err, perr.ErrorCodeSchemaViolation))

	_, err = run(t, "", "decode", `{"totalPriceUSD":1,"usdtAmountUSD":0,"ivyAmountUSD":1}`, "-q", "0")
	require.True(t, perr.IsCode(err, perr.ErrorCodeInvalidQuantity))
}

func TestQR_TerminalAndFile(t *testing.T) {
	out, err := run(t, "", "qr", "hello")
	require.NoError(t, err)
	require.Greater(t, strings.Count(out, "\n"), 10)

	png := filepath.Join(t.TempDir(), "hello.png")
	_, err = run(t, "hello", "qr", "-o", png)
	require.NoError(t, err)
	b, err := os.ReadFile(png)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(b, []byte("\x89PNG")))
}

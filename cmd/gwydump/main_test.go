package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-gwy/gwy"
)

func writeSample(t *testing.T, dir string) string {
	t.Helper()
	field, err := gwy.NewDataField(2, 2, 2e-6, 2e-6, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	m, err := gwy.NewSIUnit("m")
	require.NoError(t, err)
	field.SetUnits(m, m)

	c := gwy.NewContainer()
	require.NoError(t, c.SetObject("/0/data", field))
	require.NoError(t, c.Set("/0/data/title", gwy.NewString("Height")))

	path := filepath.Join(dir, "sample.gwy")
	require.NoError(t, gwy.Save(path, gwy.NewDocument(c.ToNode())))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--no-color", "--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestInfo(t *testing.T) {
	path := writeSample(t, t.TempDir())

	out, err := run(t, "info", path)
	require.NoError(t, err)
	assert.Contains(t, out, "header:  GWYP")
	assert.Contains(t, out, "GwyDataField")
	assert.Contains(t, out, "/0/data")
	assert.Contains(t, out, "2×2")
	assert.Contains(t, out, "Height")
}

func TestTreeAndGet(t *testing.T) {
	path := writeSample(t, t.TempDir())

	out, err := run(t, "tree", path)
	require.NoError(t, err)
	assert.Contains(t, out, "/0/data o GwyDataField")
	assert.Contains(t, out, "xres i 2")
	assert.Contains(t, out, "unitstr s \"m\"")

	out, err = run(t, "get", path, "/0/data/title")
	require.NoError(t, err)
	assert.Equal(t, "\"Height\"\n", out)

	_, err = run(t, "get", path, "/9/data")
	assert.Error(t, err)
}

func TestVerify(t *testing.T) {
	dir := t.TempDir()
	good := writeSample(t, dir)

	out, err := run(t, "verify", good)
	require.NoError(t, err)
	assert.Contains(t, out, "OK")

	// A data field whose array does not match its resolution decodes but
	// fails its contract.
	bad := gwy.NewNode(gwy.KindDataField)
	bad.Set("xres", gwy.NewInt32(2))
	bad.Set("yres", gwy.NewInt32(2))
	bad.Set("xreal", gwy.NewDouble(1))
	bad.Set("yreal", gwy.NewDouble(1))
	bad.Set("data", gwy.NewDoubleArray([]float64{1}))
	badPath := filepath.Join(dir, "bad.gwy")
	require.NoError(t, gwy.Save(badPath, gwy.NewDocument(bad)))

	out, err = run(t, "verify", good, badPath)
	assert.ErrorIs(t, err, errVerify)
	assert.Contains(t, out, "FAIL")
	assert.Contains(t, out, "GwyDataField.data")
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	in := writeSample(t, dir)
	out := filepath.Join(dir, "out.gwy.zst")

	_, err := run(t, "convert", "--magic", "GWYO", "--compress", "zstd", in, out)
	require.NoError(t, err)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x28, 0xb5, 0x2f, 0xfd}, raw[:4])

	doc, err := gwy.Load(out)
	require.NoError(t, err)
	assert.Equal(t, gwy.MagicLegacy, doc.Magic)

	orig, err := gwy.Load(in)
	require.NoError(t, err)
	assert.True(t, orig.Root.Equal(doc.Root))

	_, err = run(t, "convert", "--magic", "GWYX", in, out)
	assert.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	in := writeSample(t, dir)
	cfgPath := filepath.Join(dir, "gwydump.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[encode]\ncompression = \"gzip\"\nlevel = 9\n"), 0o644))

	out := filepath.Join(dir, "out.gwy.gz")
	_, err := run(t, "--config", cfgPath, "convert", in, out)
	require.NoError(t, err)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x1f, 0x8b}, raw[:2])

	require.NoError(t, os.WriteFile(cfgPath, []byte("[decode]\nmax_depth = 0\n"), 0o644))
	_, err = run(t, "--config", cfgPath, "info", in)
	assert.Error(t, err)
}

func TestChannels(t *testing.T) {
	field, err := gwy.NewDataField(1, 1, 1, 1, []float64{0})
	require.NoError(t, err)

	c := gwy.NewContainer()
	require.NoError(t, c.SetObject("/3/data", field))
	require.NoError(t, c.SetObject("/0/data", field))
	require.NoError(t, c.Set("/1/data", gwy.NewString("not a field")))
	require.NoError(t, c.SetObject("/0/mask", field))

	assert.Equal(t, []int{0, 3}, channels(c))
	assert.True(t, c.Delete("/3/data"))
	assert.Equal(t, []int{0}, channels(c))
}

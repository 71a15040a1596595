package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestFoldInput(t *testing.T) {
	result := foldInput("all([.true., .true.])")
	assert.True(t, result.Constant)
	assert.Equal(t, ".true.", result.Folded)
	assert.Empty(t, result.Diagnostics)
	assert.Empty(t, result.Error)

	result = foldInput("btest(1, 64)")
	assert.True(t, result.Constant)
	assert.Equal(t, ".false.", result.Folded)
	require.Len(t, result.Diagnostics, 1)
	assert.Contains(t, result.Diagnostics[0], "POS=64")

	result = foldInput("bge(i, 1)")
	assert.False(t, result.Constant)

	result = foldInput("1 <")
	assert.NotEmpty(t, result.Error)
}

func TestFoldFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exprs.lum")
	content := "! header comment\nany([.true., .false.])\n\n1 < 2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	result, err := foldFile(path)
	require.NoError(t, err)
	require.Len(t, result.Results, 2)
	assert.Equal(t, ".true.", result.Results[0].Folded)
	assert.Equal(t, ".true.", result.Results[1].Folded)

	_, err = foldFile(filepath.Join(t.TempDir(), "missing.lum"))
	assert.Error(t, err)
}

func TestRenderYAML(t *testing.T) {
	var buf bytes.Buffer
	files := []FileResult{{
		Path:    "exprs.lum",
		Results: []Result{foldInput(".true. .and. .false.")},
	}}
	require.NoError(t, render(&buf, "yaml", files))

	var decoded []FileResult
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "exprs.lum", decoded[0].Path)
	require.Len(t, decoded[0].Results, 1)
	assert.Equal(t, ".false.", decoded[0].Results[0].Folded)
	assert.True(t, decoded[0].Results[0].Constant)
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	files := []FileResult{{Results: []Result{foldInput("1 == 1")}}}
	require.NoError(t, render(&buf, "text", files))
	assert.Contains(t, buf.String(), ".true.")
}

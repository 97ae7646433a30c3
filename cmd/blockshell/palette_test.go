package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"blockkit/cmd/blockshell/blocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// examplePalette loads the built-in colour blocks plus the reference block file.
func examplePalette(t *testing.T) *palette {
	t.Helper()
	path := filepath.Join(t.TempDir(), "example.yml")
	require.NoError(t, os.WriteFile(path, exampleYAML, 0o644))
	p, err := loadPaletteFiles(logger, []string{path})
	require.NoError(t, err)
	require.Empty(t, p.report.Skipped)
	return p
}

func kind(t *testing.T, p *palette, name string) *blocks.BlockKind {
	t.Helper()
	k, err := p.lookupKind(name)
	require.NoError(t, err)
	return k
}

func TestLoadPalette_BuiltinsAndFiles(t *testing.T) {
	p := examplePalette(t)
	for _, name := range []string{
		"colour_picker", "colour_random", "colour_rgb", "colour_blend", "texture_picker", "scene_colour",
		"math_number", "vector_xyz", "vector_zero", "scene_repeat",
	} {
		_, ok := p.reg.Lookup(name)
		assert.True(t, ok, name)
	}

	// Built-in display text comes from the embedded English messages.
	rgb := kind(t, p, "colour_rgb")
	assert.Equal(t, "Create a colour with the specified amount of red, green, and blue. All values must be between 0 and 100.", rgb.Tooltip().Text())
	red, _ := rgb.Socket("RED")
	assert.Equal(t, "colour with", red.Fields[0].Text)

	// The file's vector hue applies to the built-in vector kinds too.
	assert.Equal(t, blocks.HueColour(230), rgb.Colour())
	assert.Equal(t, "#26a69a", kind(t, p, "scene_colour").Colour().Hex())

	xyz, _ := kind(t, p, "vector_xyz").Socket("X")
	assert.Equal(t, "vector x", xyz.Fields[0].Text)
}

func TestLoadPalette_FileOverridesBuiltin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yml")
	require.NoError(t, os.WriteFile(path, []byte("blocks:\n  colour_random: {category: text, output: String, tooltip: mine}\n"), 0o644))
	p, err := loadPaletteFiles(logger, []string{path})
	require.NoError(t, err)
	k := kind(t, p, "colour_random")
	assert.Equal(t, "mine", k.Tooltip().Text())
	assert.Equal(t, blocks.TypeString, k.Output())
}

func TestLoadPalette_InvalidFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("blocks:\n  b: {category: text, output: Texture}\n"), 0o644))
	_, err := loadPaletteFiles(logger, []string{path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)

	_, err = loadPaletteFiles(logger, []string{filepath.Join(t.TempDir(), "missing.yml")})
	require.Error(t, err)
}

func TestLookupKind_Missing(t *testing.T) {
	p := examplePalette(t)
	_, err := p.lookupKind("colour_hsv")
	assert.ErrorIs(t, err, blocks.ErrNotFound)
	assert.Contains(t, err.Error(), "colour_rgb")
}

func TestPaletteRows_CategoryFilter(t *testing.T) {
	p := examplePalette(t)
	rows := paletteRows(p, blocks.CategoryColour)
	require.Len(t, rows, 2)
	assert.Equal(t, "scene_colour", rows[0][0])
	assert.Equal(t, "scene_repeat", rows[1][0])
	assert.Equal(t, "statement (prev, next)", rows[0][3])
	assert.Equal(t, "COLOUR:Vector", rows[0][4])
}

func TestCheckConnection(t *testing.T) {
	p := examplePalette(t)
	tests := []struct {
		name, child, parent, socket string
		want                        bool
		reason                      string
	}{
		{"number into rgb", "math_number", "colour_rgb", "RED", true, "accepts Number"},
		{"vector into rgb", "colour_picker", "colour_rgb", "RED", false, "does not accept Vector"},
		{"statement into value", "scene_colour", "colour_rgb", "RED", false, "is a statement"},
		{"picker into scene", "colour_picker", "scene_colour", "COLOUR", true, "accepts Vector"},
		{"statement nests", "scene_colour", "scene_repeat", "DO", true, "nests in"},
		{"expression cannot nest", "math_number", "scene_repeat", "DO", false, "no previous connection"},
		{"chain", "scene_colour", "scene_repeat", "", true, "chains below"},
		{"expression cannot chain", "colour_rgb", "scene_colour", "", false, "colour_rgb has no previous"},
		{"nothing below expression", "scene_colour", "colour_rgb", "", false, "colour_rgb has no next"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason, err := checkConnection(kind(t, p, tt.child), kind(t, p, tt.parent), tt.socket)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			assert.Contains(t, reason, tt.reason)
		})
	}

	_, _, err := checkConnection(kind(t, p, "math_number"), kind(t, p, "colour_rgb"), "ALPHA")
	require.Error(t, err)
}

func TestTooltipInContext(t *testing.T) {
	p := examplePalette(t)
	inline, notInline := true, false

	tip, err := tooltipInContext(p.reg, "colour_picker", "", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "Choose a colour from the palette.", tip)

	tip, err = tooltipInContext(p.reg, "colour_picker", "scene_colour", "", &inline)
	require.NoError(t, err)
	assert.Equal(t, "Change the color of the scene background", tip)

	tip, err = tooltipInContext(p.reg, "colour_picker", "scene_colour", "COLOUR", &notInline)
	require.NoError(t, err)
	assert.Equal(t, "Choose a colour from the palette.", tip)

	// No socket of vector_xyz takes a Vector.
	tip, err = tooltipInContext(p.reg, "vector_zero", "vector_xyz", "", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errRejected))
	assert.Empty(t, tip)

	tip, err = tooltipInContext(p.reg, "math_number", "vector_xyz", "Y", nil)
	require.NoError(t, err)
	assert.Equal(t, "A number.", tip)

	_, err = tooltipInContext(p.reg, "nope", "", "", nil)
	assert.ErrorIs(t, err, blocks.ErrNotFound)
}

func TestDescribeKind(t *testing.T) {
	p := examplePalette(t)
	var buf bytes.Buffer
	describeKind(&buf, kind(t, p, "colour_rgb"))
	out := buf.String()
	for _, want := range []string{`block "colour_rgb"`, "shape:    → Colour", "socket [0] RED (value)", "accepts: Number", "align:   right"} {
		assert.Contains(t, out, want)
	}

	buf.Reset()
	describeKind(&buf, kind(t, p, "scene_repeat"))
	out = buf.String()
	assert.Contains(t, out, "statement (prev, next)")
	assert.Contains(t, out, "socket [1] DO (statement)")
	assert.Contains(t, out, "field_dropdown MODE [every frame→frame, once]")

	buf.Reset()
	describeKind(&buf, kind(t, p, "colour_picker"))
	assert.Contains(t, buf.String(), "tooltip:  <computed>")
}

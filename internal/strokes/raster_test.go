package strokes

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRasterize(t *testing.T) {
	svgPath := filepath.Join(t.TempDir(), "22909.svg")
	require.NoError(t, os.WriteFile(svgPath, []byte(testSVG), 0644))

	img, err := Rasterize(svgPath, 128)
	require.NoError(t, err)

	bounds := img.Bounds()
	assert.Equal(t, 128, bounds.Dx())
	assert.Equal(t, 128, bounds.Dy())
}

func TestRasterizePNG(t *testing.T) {
	svgPath := filepath.Join(t.TempDir(), "22909.svg")
	require.NoError(t, os.WriteFile(svgPath, []byte(testSVG), 0644))

	data, err := RasterizePNG(svgPath, 64)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
}

func TestRasterizeMissingFile(t *testing.T) {
	_, err := Rasterize(filepath.Join(t.TempDir(), "nope.svg"), 64)
	assert.Error(t, err)
}

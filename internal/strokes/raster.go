package strokes

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Rasterize renders a stroke-order SVG into a square RGBA image of the
// given pixel size. The background stays transparent so the image can be
// composed over card sheets and video frames alike.
func Rasterize(svgPath string, size int) (image.Image, error) {
	f, err := os.Open(svgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open stroke SVG: %w", err)
	}
	defer f.Close()

	icon, err := oksvg.ReadIconStream(f, oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stroke SVG: %w", err)
	}

	icon.SetTarget(0, 0, float64(size), float64(size))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	return img, nil
}

// RasterizePNG renders a stroke-order SVG and returns it PNG-encoded,
// ready for embedding into a PDF page.
func RasterizePNG(svgPath string, size int) ([]byte, error) {
	img, err := Rasterize(svgPath, size)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode stroke PNG: %w", err)
	}
	return buf.Bytes(), nil
}

package azure

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	_ "image/png" // decode PNG sources
)

const boxWidth = 3

var boxColor = color.RGBA{R: 255, A: 255}

// Annotate draws a red box around each detected object and re-encodes the image as JPEG.
// Boxes are clipped to the image bounds.
func Annotate(src []byte, objects []DetectedObject) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	canvas := image.NewRGBA(bounds)
	draw.Draw(canvas, bounds, img, bounds.Min, draw.Src)

	for _, obj := range objects {
		r := obj.Rectangle
		outline(canvas, image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H).Add(bounds.Min))
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), nil
}

func outline(dst *image.RGBA, r image.Rectangle) {
	fill := image.NewUniform(boxColor)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+boxWidth), // top
		image.Rect(r.Min.X, r.Max.Y-boxWidth, r.Max.X, r.Max.Y), // bottom
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+boxWidth, r.Max.Y), // left
		image.Rect(r.Max.X-boxWidth, r.Min.Y, r.Max.X, r.Max.Y), // right
	}
	for _, e := range edges {
		draw.Draw(dst, e.Intersect(dst.Bounds()), fill, image.Point{}, draw.Src)
	}
}

// Package annotate draws detection boxes and labels onto an image and
// encodes the result for embedding in a JSON response.
package annotate

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"ProjectVision/internal/entity"
)

const (
	borderWidth = 2
	jpegQuality = 90
)

// Stable per-class colors, assigned by hashing the class name.
var palette = []color.RGBA{
	{R: 56, G: 176, B: 0, A: 255},
	{R: 255, G: 89, B: 94, A: 255},
	{R: 25, G: 130, B: 196, A: 255},
	{R: 255, G: 202, B: 58, A: 255},
	{R: 106, G: 76, B: 147, A: 255},
	{R: 255, G: 128, B: 0, A: 255},
}

// Render copies src and draws each detection's bounding box with a
// "class confidence" caption. An empty detection list yields a plain
// copy of the source image.
func Render(src image.Image, detections []entity.Detection) *image.RGBA {
	bounds := src.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, src, bounds.Min, draw.Src)

	for _, det := range detections {
		col := classColor(det.Class)
		rect := image.Rect(
			int(det.BBox[0]), int(det.BBox[1]),
			int(det.BBox[2]), int(det.BBox[3]),
		).Add(bounds.Min).Intersect(bounds)
		if rect.Empty() {
			continue
		}

		drawBorder(out, rect, col)
		drawLabel(out, rect, fmt.Sprintf("%s %.2f", det.Class, det.Confidence), col)
	}
	return out
}

// EncodeJPEG re-encodes the annotated image as JPEG.
func EncodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// DataURI wraps JPEG bytes into a base64 data URI.
func DataURI(jpegData []byte) string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(jpegData)
}

func classColor(class string) color.RGBA {
	var h uint32
	for _, r := range class {
		h = h*31 + uint32(r)
	}
	return palette[h%uint32(len(palette))]
}

func drawBorder(img *image.RGBA, rect image.Rectangle, col color.RGBA) {
	for t := 0; t < borderWidth; t++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.SetRGBA(x, rect.Min.Y+t, col)
			img.SetRGBA(x, rect.Max.Y-1-t, col)
		}
		for y := rect.Min.Y; y < rect.Max.Y; y++ {
			img.SetRGBA(rect.Min.X+t, y, col)
			img.SetRGBA(rect.Max.X-1-t, y, col)
		}
	}
}

func drawLabel(img *image.RGBA, rect image.Rectangle, text string, col color.RGBA) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil() + 4

	// Caption sits above the box when there is room, inside it otherwise.
	top := rect.Min.Y - face.Height - 2
	if top < img.Bounds().Min.Y {
		top = rect.Min.Y
	}
	bg := image.Rect(rect.Min.X, top, rect.Min.X+width, top+face.Height+2).
		Intersect(img.Bounds())
	draw.Draw(img, bg, &image.Uniform{C: col}, image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: face,
		Dot:  fixed.P(rect.Min.X+2, top+face.Ascent),
	}
	drawer.DrawString(text)
}

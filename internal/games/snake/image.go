package snake

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/vovakirdan/dexos/internal/core"
)

// DefaultImageCell is the pixel size of one grid cell in exported images.
const DefaultImageCell = 15

// captionHeight is the strip below the board reserved for the caption.
const captionHeight = 16

// ImageSurface is a Surface backed by an RGBA image with a black background.
type ImageSurface struct {
	img *image.RGBA
}

// NewImageSurface allocates a w x h pixel surface.
func NewImageSurface(w, h int) *ImageSurface {
	s := &ImageSurface{img: image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))}
	s.Clear()
	return s
}

// Image returns the underlying image.
func (s *ImageSurface) Image() *image.RGBA {
	return s.img
}

// Clear paints the whole surface black.
func (s *ImageSurface) Clear() {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(core.ColorBlack.RGBA()), image.Point{}, draw.Src)
}

// FillRect paints r in color c, clipped to the surface.
func (s *ImageSurface) FillRect(r core.Rect, c core.Color) {
	rect := image.Rect(r.X, r.Y, r.Right(), r.Bottom()).Intersect(s.img.Bounds())
	if rect.Empty() {
		return
	}
	draw.Draw(s.img, rect, image.NewUniform(c.RGBA()), image.Point{}, draw.Src)
}

// WritePNG renders f with square cells of cellPx pixels and encodes it as PNG.
// A non-empty caption is written in a strip under the board.
func WritePNG(w io.Writer, f Frame, cellPx int, caption string) error {
	if cellPx <= 0 {
		cellPx = DefaultImageCell
	}
	boardW := f.Grid.Cols * cellPx
	boardH := f.Grid.Rows * cellPx

	surface := NewImageSurface(boardW, boardH+captionHeight)
	Render(surface, f, CellSize{W: cellPx, H: cellPx})

	if caption != "" {
		d := font.Drawer{
			Dst:  surface.img,
			Src:  image.NewUniform(core.ColorGray.RGBA()),
			Face: basicfont.Face7x13,
			Dot:  fixed.P(2, boardH+captionHeight-3),
		}
		d.DrawString(caption)
	}

	if err := png.Encode(w, surface.img); err != nil {
		return fmt.Errorf("snake: encode png: %w", err)
	}
	return nil
}

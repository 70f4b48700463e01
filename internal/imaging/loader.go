package imaging

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
)

// Grid is a decoded image as row-major interleaved uint8 samples of shape
// (Height, Width, Channels).
type Grid struct {
	Height   int
	Width    int
	Channels int
	Pix      []uint8
}

// At returns the sample at row y, column x, channel c.
func (g *Grid) At(y, x, c int) uint8 {
	return g.Pix[(y*g.Width+x)*g.Channels+c]
}

// Loader decodes image files into Grids with a fixed channel count.
// Channels is an explicit configuration value, 1 for grayscale or 3 for
// color; color input is converted to luma when Channels is 1 and grayscale
// input is replicated across channels when it is 3.
type Loader struct {
	Channels int
}

// NewLoader returns a loader producing grids with the given channel count.
func NewLoader(channels int) (*Loader, error) {
	if channels != 1 && channels != 3 {
		return nil, fmt.Errorf("unsupported channel count %d (must be 1 or 3)", channels)
	}
	return &Loader{Channels: channels}, nil
}

// Load reads and decodes one image file.
func (l *Loader) Load(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %q: %w", path, err)
	}
	return l.fromImage(img), nil
}

// Resize returns a grid scaled to (height, width) with bilinear filtering.
// The input grid is returned unchanged when its shape already matches.
// Single-channel grids are resized through image.Gray, so the scaler only
// ever sees 2-D grayscale or full-color input.
func (l *Loader) Resize(g *Grid, height, width int) *Grid {
	if g.Height == height && g.Width == width {
		return g
	}
	rect := image.Rect(0, 0, width, height)
	if g.Channels == 1 {
		src := &image.Gray{
			Pix:    g.Pix,
			Stride: g.Width,
			Rect:   image.Rect(0, 0, g.Width, g.Height),
		}
		dst := image.NewGray(rect)
		draw.BiLinear.Scale(dst, rect, src, src.Bounds(), draw.Src, nil)
		return &Grid{Height: height, Width: width, Channels: 1, Pix: dst.Pix}
	}
	src := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	for i := 0; i < g.Width*g.Height; i++ {
		src.Pix[i*4+0] = g.Pix[i*3+0]
		src.Pix[i*4+1] = g.Pix[i*3+1]
		src.Pix[i*4+2] = g.Pix[i*3+2]
		src.Pix[i*4+3] = 0xff
	}
	dst := image.NewRGBA(rect)
	draw.BiLinear.Scale(dst, rect, src, src.Bounds(), draw.Src, nil)
	out := &Grid{Height: height, Width: width, Channels: 3, Pix: make([]uint8, height*width*3)}
	for i := 0; i < height*width; i++ {
		out.Pix[i*3+0] = dst.Pix[i*4+0]
		out.Pix[i*3+1] = dst.Pix[i*4+1]
		out.Pix[i*3+2] = dst.Pix[i*4+2]
	}
	return out
}

// fromImage converts a decoded image into a grid with the loader's channel
// count. Grayscale images take the fast path straight from image.Gray.
func (l *Loader) fromImage(img image.Image) *Grid {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	g := &Grid{Height: h, Width: w, Channels: l.Channels, Pix: make([]uint8, h*w*l.Channels)}

	if src, ok := img.(*image.Gray); ok {
		for y := 0; y < h; y++ {
			row := src.Pix[y*src.Stride : y*src.Stride+w]
			if l.Channels == 1 {
				copy(g.Pix[y*w:], row)
				continue
			}
			for x, v := range row {
				i := (y*w + x) * 3
				g.Pix[i], g.Pix[i+1], g.Pix[i+2] = v, v, v
			}
		}
		return g
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, gr, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			if l.Channels == 1 {
				// ITU-R BT.601 luma formula.
				luma := 0.299*float64(r>>8) + 0.587*float64(gr>>8) + 0.114*float64(bl>>8)
				g.Pix[y*w+x] = uint8(luma + 0.5)
				continue
			}
			i := (y*w + x) * 3
			g.Pix[i+0] = uint8(r >> 8)
			g.Pix[i+1] = uint8(gr >> 8)
			g.Pix[i+2] = uint8(bl >> 8)
		}
	}
	return g
}

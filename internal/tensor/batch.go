package tensor

import (
	"fmt"

	"github.com/schollz/progressbar/v3"

	"facepairs/internal/dataset"
	"facepairs/internal/imaging"
)

// Batch is the numeric form of a list of image pairs: X holds uint8 pixel
// values of shape (N, 2, H, W, C) in row-major order and Y holds one
// float32 label per pair, 1.0 for same person and 0.0 otherwise. The order
// of the batch matches the order of the input pairs.
type Batch struct {
	N, H, W, C int
	X          []uint8
	Y          []float32
}

// Shape returns the dimensions of X.
func (b *Batch) Shape() [5]int {
	return [5]int{b.N, 2, b.H, b.W, b.C}
}

// PairPix returns the pixel block of pair i, length 2*H*W*C.
func (b *Batch) PairPix(i int) []uint8 {
	stride := 2 * b.H * b.W * b.C
	return b.X[i*stride : (i+1)*stride]
}

// Options controls materialization side behavior.
type Options struct {
	// Progress renders a terminal progress bar while loading; decoding a
	// few thousand pair images takes long enough to warrant one.
	Progress bool
}

// PairContents loads both images of a pair, resizes each to the target
// shape if needed, and returns the stacked pixels of shape (2, H, W, C).
func PairContents(p dataset.Pair, loader *imaging.Loader, height, width int) ([]uint8, error) {
	out := make([]uint8, 0, 2*height*width*loader.Channels)
	for _, rec := range [2]dataset.Record{p.A, p.B} {
		grid, err := loader.Load(rec.Path)
		if err != nil {
			return nil, err
		}
		grid = loader.Resize(grid, height, width)
		out = append(out, grid.Pix...)
	}
	return out, nil
}

// Materialize converts pairs into one Batch. It is a pure transform apart
// from reading the image files (and the optional progress bar).
func Materialize(pairs []dataset.Pair, loader *imaging.Loader, height, width int, opts Options) (*Batch, error) {
	b := &Batch{
		N: len(pairs),
		H: height,
		W: width,
		C: loader.Channels,
		X: make([]uint8, len(pairs)*2*height*width*loader.Channels),
		Y: make([]float32, len(pairs)),
	}

	var bar *progressbar.ProgressBar
	if opts.Progress {
		bar = progressbar.NewOptions(len(pairs),
			progressbar.OptionSetDescription("Loading pairs"),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("pairs"),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionFullWidth(),
		)
	}

	stride := 2 * height * width * loader.Channels
	for i, p := range pairs {
		pix, err := PairContents(p, loader, height, width)
		if err != nil {
			return nil, fmt.Errorf("failed to load pair %d: %w", i, err)
		}
		copy(b.X[i*stride:], pix)
		b.Y[i] = p.Label()
		if bar != nil {
			bar.Add(1)
		}
	}
	if bar != nil {
		fmt.Println()
	}
	return b, nil
}

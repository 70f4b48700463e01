package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestNewLoader(t *testing.T) {
	for _, n := range []int{1, 3} {
		if _, err := NewLoader(n); err != nil {
			t.Errorf("NewLoader(%d) failed: %v", n, err)
		}
	}
	for _, n := range []int{0, 2, 4} {
		if _, err := NewLoader(n); err == nil {
			t.Errorf("NewLoader(%d) should fail", n)
		}
	}
}

func TestLoaderLoad_PGM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Alice_0001.pgm")
	writeFile(t, path, rawPGM(2, 2, []uint8{10, 20, 30, 40}))

	t.Run("grayscale", func(t *testing.T) {
		loader, _ := NewLoader(1)
		g, err := loader.Load(path)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if g.Height != 2 || g.Width != 2 || g.Channels != 1 {
			t.Fatalf("grid shape = %dx%dx%d; want 2x2x1", g.Height, g.Width, g.Channels)
		}
		if g.At(0, 1, 0) != 20 || g.At(1, 0, 0) != 30 {
			t.Errorf("unexpected samples %v", g.Pix)
		}
	})

	t.Run("gray replicated to color", func(t *testing.T) {
		loader, _ := NewLoader(3)
		g, err := loader.Load(path)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if g.Channels != 3 || len(g.Pix) != 12 {
			t.Fatalf("grid shape = %dx%dx%d; want 2x2x3", g.Height, g.Width, g.Channels)
		}
		for c := 0; c < 3; c++ {
			if g.At(1, 1, c) != 40 {
				t.Errorf("channel %d = %d; want 40", c, g.At(1, 1, c))
			}
		}
	})
}

func TestLoaderLoad_PNGToLuma(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Bob_0001.png")

	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{255, 255, 255, 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	loader, _ := NewLoader(1)
	g, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	// Red converts to ~0.299*255=76, white to 255.
	if v := g.At(0, 0, 0); v < 75 || v > 78 {
		t.Errorf("red luma = %d; want ~76", v)
	}
	if v := g.At(0, 1, 0); v != 255 {
		t.Errorf("white luma = %d; want 255", v)
	}
}

func TestLoaderLoad_Missing(t *testing.T) {
	loader, _ := NewLoader(1)
	if _, err := loader.Load(filepath.Join(t.TempDir(), "missing.pgm")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoaderResize(t *testing.T) {
	loader, _ := NewLoader(1)

	src := &Grid{Height: 4, Width: 4, Channels: 1, Pix: make([]uint8, 16)}
	for i := range src.Pix {
		src.Pix[i] = uint8(i * 16)
	}

	t.Run("identity", func(t *testing.T) {
		if got := loader.Resize(src, 4, 4); got != src {
			t.Error("matching shape should return the input grid unchanged")
		}
	})

	t.Run("downscale gray", func(t *testing.T) {
		got := loader.Resize(src, 2, 2)
		if got.Height != 2 || got.Width != 2 || got.Channels != 1 {
			t.Fatalf("shape = %dx%dx%d; want 2x2x1", got.Height, got.Width, got.Channels)
		}
		if len(got.Pix) != 4 {
			t.Fatalf("pix length = %d; want 4", len(got.Pix))
		}
	})

	t.Run("upscale color", func(t *testing.T) {
		cl, _ := NewLoader(3)
		csrc := &Grid{Height: 2, Width: 2, Channels: 3, Pix: make([]uint8, 12)}
		for i := range csrc.Pix {
			csrc.Pix[i] = 200
		}
		got := cl.Resize(csrc, 4, 4)
		if got.Height != 4 || got.Width != 4 || got.Channels != 3 {
			t.Fatalf("shape = %dx%dx%d; want 4x4x3", got.Height, got.Width, got.Channels)
		}
		// Uniform input stays uniform under bilinear scaling.
		for i, v := range got.Pix {
			if v != 200 {
				t.Errorf("pix[%d] = %d; want 200", i, v)
				break
			}
		}
	})
}

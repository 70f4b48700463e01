package imaging

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
)

// Netpbm decoder for the PGM/PPM files used by the grayscaled-and-cropped
// LFW distribution. Supports the ascii (P2/P3) and raw (P5/P6) variants
// with 8-bit samples. Registered with the image package so the generic
// image.Decode path used by Loader picks it up alongside png/jpeg/bmp/tiff.

func init() {
	image.RegisterFormat("pgm", "P2", decodePNM, decodePNMConfig)
	image.RegisterFormat("ppm", "P3", decodePNM, decodePNMConfig)
	image.RegisterFormat("pgm", "P5", decodePNM, decodePNMConfig)
	image.RegisterFormat("ppm", "P6", decodePNM, decodePNMConfig)
}

type pnmHeader struct {
	magic  string
	width  int
	height int
	maxVal int
}

// readToken returns the next whitespace-separated token, skipping comment
// lines starting with '#'.
func readToken(r *bufio.Reader) (string, error) {
	tok := make([]byte, 0, 16)
	inComment := false
	for {
		c, err := r.ReadByte()
		if err != nil {
			if err == io.EOF && len(tok) > 0 {
				return string(tok), nil
			}
			return "", err
		}
		switch {
		case inComment:
			if c == '\n' {
				inComment = false
			}
		case c == '#':
			inComment = true
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			if len(tok) > 0 {
				return string(tok), nil
			}
		default:
			tok = append(tok, c)
		}
	}
}

func readInt(r *bufio.Reader) (int, error) {
	tok, err := readToken(r)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, c := range []byte(tok) {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("pnm: invalid integer %q", tok)
		}
		n = n*10 + int(c-'0')
		if n > 1<<30 {
			return 0, fmt.Errorf("pnm: integer %q out of range", tok)
		}
	}
	return n, nil
}

func readHeader(r *bufio.Reader) (pnmHeader, error) {
	var h pnmHeader
	magic, err := readToken(r)
	if err != nil {
		return h, fmt.Errorf("pnm: reading magic: %w", err)
	}
	switch magic {
	case "P2", "P3", "P5", "P6":
		h.magic = magic
	default:
		return h, fmt.Errorf("pnm: unsupported magic %q", magic)
	}
	if h.width, err = readInt(r); err != nil {
		return h, fmt.Errorf("pnm: reading width: %w", err)
	}
	if h.height, err = readInt(r); err != nil {
		return h, fmt.Errorf("pnm: reading height: %w", err)
	}
	if h.maxVal, err = readInt(r); err != nil {
		return h, fmt.Errorf("pnm: reading maxval: %w", err)
	}
	if h.width <= 0 || h.height <= 0 {
		return h, fmt.Errorf("pnm: invalid dimensions %dx%d", h.width, h.height)
	}
	if h.maxVal <= 0 || h.maxVal > 255 {
		return h, fmt.Errorf("pnm: unsupported maxval %d (only 8-bit samples)", h.maxVal)
	}
	return h, nil
}

func decodePNMConfig(r io.Reader) (image.Config, error) {
	h, err := readHeader(bufio.NewReader(r))
	if err != nil {
		return image.Config{}, err
	}
	cfg := image.Config{Width: h.width, Height: h.height}
	if h.magic == "P3" || h.magic == "P6" {
		cfg.ColorModel = color.RGBAModel
	} else {
		cfg.ColorModel = color.GrayModel
	}
	return cfg, nil
}

func decodePNM(r io.Reader) (image.Image, error) {
	br := bufio.NewReader(r)
	h, err := readHeader(br)
	if err != nil {
		return nil, err
	}

	scale := func(v int) uint8 {
		if h.maxVal == 255 {
			return uint8(v)
		}
		return uint8(v * 255 / h.maxVal)
	}

	gray := h.magic == "P2" || h.magic == "P5"
	raw := h.magic == "P5" || h.magic == "P6"
	samples := h.width * h.height
	if !gray {
		samples *= 3
	}

	buf := make([]uint8, samples)
	if raw {
		// Raw rasters follow a single whitespace byte after maxval,
		// which readInt has already consumed.
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, fmt.Errorf("pnm: short raster: %w", err)
		}
		if h.maxVal != 255 {
			for i, v := range buf {
				buf[i] = scale(int(v))
			}
		}
	} else {
		for i := range buf {
			v, err := readInt(br)
			if err != nil {
				return nil, fmt.Errorf("pnm: reading sample %d: %w", i, err)
			}
			if v > h.maxVal {
				return nil, fmt.Errorf("pnm: sample %d exceeds maxval", v)
			}
			buf[i] = scale(v)
		}
	}

	rect := image.Rect(0, 0, h.width, h.height)
	if gray {
		img := image.NewGray(rect)
		copy(img.Pix, buf)
		return img, nil
	}
	img := image.NewRGBA(rect)
	for i := 0; i < h.width*h.height; i++ {
		img.Pix[i*4+0] = buf[i*3+0]
		img.Pix[i*4+1] = buf[i*3+1]
		img.Pix[i*4+2] = buf[i*3+2]
		img.Pix[i*4+3] = 0xff
	}
	return img, nil
}

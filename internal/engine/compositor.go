package engine

import (
	"image"
	"math"

	"github.com/just-abdullah-dev/pixel-art/internal/models"
)

// Flatten composites an ordered layer stack (bottom to top) into one
// width×height bitmap. Invisible layers contribute nothing regardless
// of opacity. Each colored cell is blended onto the accumulator with
// the layer's opacity as a constant alpha, straight (non-premultiplied)
// over-compositing, so lower layers show through transparent cells.
// The same function backs interactive rendering and image export.
func Flatten(layers []models.Layer, width, height int) *image.NRGBA {
	n := width * height
	accA := make([]float64, n)
	accR := make([]float64, n)
	accG := make([]float64, n)
	accB := make([]float64, n)

	for _, layer := range layers {
		if !layer.Visible {
			continue
		}
		srcA := models.ClampOpacity(layer.Opacity)
		if srcA == 0 {
			continue
		}
		for y := 0; y < height && y < len(layer.Pixels); y++ {
			row := layer.Pixels[y]
			for x := 0; x < width && x < len(row); x++ {
				c := row[x].Color
				if c == "" || c == models.Transparent {
					continue
				}
				r, g, b, ok := ParseHexColor(c)
				if !ok {
					continue
				}
				i := y*width + x
				// src over dst, straight alpha
				outA := srcA + accA[i]*(1-srcA)
				if outA <= 0 {
					continue
				}
				accR[i] = (float64(r)*srcA + accR[i]*accA[i]*(1-srcA)) / outA
				accG[i] = (float64(g)*srcA + accG[i]*accA[i]*(1-srcA)) / outA
				accB[i] = (float64(b)*srcA + accB[i]*accA[i]*(1-srcA)) / outA
				accA[i] = outA
			}
		}
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < n; i++ {
		if accA[i] == 0 {
			continue
		}
		x := i % width
		y := i / width
		o := img.PixOffset(x, y)
		img.Pix[o+0] = round8(accR[i])
		img.Pix[o+1] = round8(accG[i])
		img.Pix[o+2] = round8(accB[i])
		img.Pix[o+3] = round8(accA[i] * 255)
	}
	return img
}

// ParseHexColor decodes "#rgb" and "#rrggbb" color strings. It reports
// false for anything else; unparseable cells are simply not drawn.
func ParseHexColor(s string) (r, g, b uint8, ok bool) {
	if len(s) == 0 || s[0] != '#' {
		return 0, 0, 0, false
	}
	hex := s[1:]
	switch len(hex) {
	case 3:
		var v [3]uint8
		for i := 0; i < 3; i++ {
			d, good := hexDigit(hex[i])
			if !good {
				return 0, 0, 0, false
			}
			v[i] = d*16 + d
		}
		return v[0], v[1], v[2], true
	case 6:
		var v [3]uint8
		for i := 0; i < 3; i++ {
			hi, goodHi := hexDigit(hex[2*i])
			lo, goodLo := hexDigit(hex[2*i+1])
			if !goodHi || !goodLo {
				return 0, 0, 0, false
			}
			v[i] = hi*16 + lo
		}
		return v[0], v[1], v[2], true
	}
	return 0, 0, 0, false
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

func round8(v float64) uint8 {
	r := math.Round(v)
	if r < 0 {
		return 0
	}
	if r > 255 {
		return 255
	}
	return uint8(r)
}

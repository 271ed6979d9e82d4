package engine_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/just-abdullah-dev/pixel-art/internal/engine"
	"github.com/just-abdullah-dev/pixel-art/internal/models"
)

func solidLayer(w, h int, color string, opacity float64) models.Layer {
	layer := models.NewLayer(w, h, "solid")
	layer.Opacity = opacity
	for y := range layer.Pixels {
		for x := range layer.Pixels[y] {
			layer.Pixels[y][x] = models.Pixel{Color: color}
		}
	}
	return layer
}

func TestFlattenSinglePixel(t *testing.T) {
	layer := models.NewLayer(4, 4, "l")
	layer.Pixels[1][1] = models.Pixel{Color: "#ff0000"}

	img := engine.Flatten([]models.Layer{layer}, 4, 4)

	r, g, b, a := img.NRGBAAt(1, 1).R, img.NRGBAAt(1, 1).G, img.NRGBAAt(1, 1).B, img.NRGBAAt(1, 1).A
	require.Equal(t, uint8(255), r)
	require.Equal(t, uint8(0), g)
	require.Equal(t, uint8(0), b)
	require.Equal(t, uint8(255), a)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if x == 1 && y == 1 {
				continue
			}
			require.Equal(t, uint8(0), img.NRGBAAt(x, y).A, "cell (%d,%d) stays transparent", x, y)
		}
	}
}

func TestFlattenIsPure(t *testing.T) {
	layers := []models.Layer{
		solidLayer(3, 3, "#336699", 0.7),
		solidLayer(3, 3, "#ff0000", 0.4),
	}
	first := engine.Flatten(layers, 3, 3)
	second := engine.Flatten(layers, 3, 3)
	require.Equal(t, first.Pix, second.Pix, "repeated calls with unchanged input match exactly")
}

func TestFlattenHiddenLayerContributesNothing(t *testing.T) {
	hidden := solidLayer(2, 2, "#00ff00", 1)
	hidden.Visible = false

	img := engine.Flatten([]models.Layer{hidden}, 2, 2)
	for i := range img.Pix {
		require.Equal(t, uint8(0), img.Pix[i])
	}
}

func TestFlattenOpacityScalesAlpha(t *testing.T) {
	img := engine.Flatten([]models.Layer{solidLayer(1, 1, "#ff0000", 0.5)}, 1, 1)
	px := img.NRGBAAt(0, 0)
	require.Equal(t, uint8(255), px.R)
	require.Equal(t, uint8(128), px.A, "alpha is the layer opacity")
}

func TestFlattenTopmostOpaqueWins(t *testing.T) {
	bottom := solidLayer(2, 2, "#0000ff", 1)
	top := solidLayer(2, 2, "#ff0000", 1)

	img := engine.Flatten([]models.Layer{bottom, top}, 2, 2)
	px := img.NRGBAAt(0, 0)
	require.Equal(t, uint8(255), px.R)
	require.Equal(t, uint8(0), px.B, "fully opaque top layer hides the bottom")
}

func TestFlattenLowerShowsThroughTransparentCells(t *testing.T) {
	bottom := solidLayer(2, 1, "#0000ff", 1)
	top := models.NewLayer(2, 1, "top")
	top.Pixels[0][0] = models.Pixel{Color: "#ff0000"}

	img := engine.Flatten([]models.Layer{bottom, top}, 2, 1)
	require.Equal(t, uint8(255), img.NRGBAAt(0, 0).R, "painted top cell wins")
	require.Equal(t, uint8(255), img.NRGBAAt(1, 0).B, "transparent top cell shows the bottom")
}

func TestFlattenClampsOpacity(t *testing.T) {
	over := solidLayer(1, 1, "#ffffff", 3.5)
	img := engine.Flatten([]models.Layer{over}, 1, 1)
	require.Equal(t, uint8(255), img.NRGBAAt(0, 0).A)
}

func TestParseHexColor(t *testing.T) {
	cases := []struct {
		in      string
		r, g, b uint8
		ok      bool
	}{
		{"#ff0000", 255, 0, 0, true},
		{"#00FF00", 0, 255, 0, true},
		{"#336699", 0x33, 0x66, 0x99, true},
		{"#f00", 255, 0, 0, true},
		{"#abc", 0xaa, 0xbb, 0xcc, true},
		{"ff0000", 0, 0, 0, false},
		{"#ff00", 0, 0, 0, false},
		{"#gggggg", 0, 0, 0, false},
		{"", 0, 0, 0, false},
		{models.Transparent, 0, 0, 0, false},
	}
	for _, c := range cases {
		r, g, b, ok := engine.ParseHexColor(c.in)
		require.Equal(t, c.ok, ok, "input %q", c.in)
		if c.ok {
			require.Equal(t, [3]uint8{c.r, c.g, c.b}, [3]uint8{r, g, b}, "input %q", c.in)
		}
	}
}

package media

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoToneImage is red on the left two thirds, blue on the rest.
func twoToneImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 90, 30))
	for y := 0; y < 30; y++ {
		for x := 0; x < 90; x++ {
			if x < 60 {
				img.Set(x, y, color.RGBA{R: 200, G: 20, B: 20, A: 255})
			} else {
				img.Set(x, y, color.RGBA{R: 20, G: 20, B: 200, A: 255})
			}
		}
	}
	return img
}

func TestPalette_DominantFirst(t *testing.T) {
	extractor := NewColorExtractor(nil)

	colors := extractor.palette(twoToneImage(), 3)
	require.Len(t, colors, 2, "two distinct colors in the image")

	// red covers more area, so it comes first
	assert.Equal(t, "#c81414", colors[0])
	assert.Equal(t, "#1414c8", colors[1])
}

func TestPalette_CountCap(t *testing.T) {
	extractor := NewColorExtractor(nil)

	colors := extractor.palette(twoToneImage(), 1)
	require.Len(t, colors, 1)
	assert.Equal(t, "#c81414", colors[0])
}

func TestPalette_MergesSimilarShades(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			// two barely different reds
			if x%2 == 0 {
				img.Set(x, y, color.RGBA{R: 200, G: 20, B: 20, A: 255})
			} else {
				img.Set(x, y, color.RGBA{R: 205, G: 22, B: 22, A: 255})
			}
		}
	}

	extractor := NewColorExtractor(nil)
	colors := extractor.palette(img, 3)
	assert.Len(t, colors, 1, "near-identical shades collapse into one")
}

func TestFromURL(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, twoToneImage()))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(buf.Bytes())
	}))
	defer srv.Close()

	extractor := NewColorExtractor(nil)
	colors, err := extractor.FromURL(context.Background(), srv.URL, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"#c81414", "#1414c8"}, colors)
}

func TestFromURL_RejectsNonImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>not a thumbnail</html>"))
	}))
	defer srv.Close()

	extractor := NewColorExtractor(nil)
	_, err := extractor.FromURL(context.Background(), srv.URL, 3)
	require.Error(t, err)
}

func TestIsDarkAndContrast(t *testing.T) {
	assert.True(t, IsDark("#000000"))
	assert.True(t, IsDark("#1a1a2e"))
	assert.False(t, IsDark("#ffffff"))
	assert.False(t, IsDark("#ffe066"))

	assert.Equal(t, "#ffffff", ContrastColor("#000000"))
	assert.Equal(t, "#000000", ContrastColor("#ffffff"))
}

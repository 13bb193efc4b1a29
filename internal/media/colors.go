package media

import (
	"context"
	"fmt"
	"image"
	"net/http"
	"sort"
	"strings"
	"time"

	// thumbnail decoders
	_ "image/jpeg"
	_ "image/png"

	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"
)

// minColorDistance is the perceptual (CIE Lab) distance under which two
// palette candidates count as the same color.
const minColorDistance = 0.15

// ColorExtractor pulls a small dominant-color palette out of thumbnails.
type ColorExtractor struct {
	client *http.Client
	logger *zap.Logger
}

func NewColorExtractor(logger *zap.Logger) *ColorExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ColorExtractor{
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

// FromURL downloads an image and returns up to count dominant colors as hex
// strings, most dominant first.
func (c *ColorExtractor) FromURL(ctx context.Context, imageURL string, count int) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch thumbnail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch thumbnail: status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
		return nil, fmt.Errorf("not an image: %s", ct)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode thumbnail: %w", err)
	}
	return c.palette(img, count), nil
}

// palette buckets the image's pixels into a coarse color histogram, then
// picks the most frequent buckets that are perceptually distinct.
func (c *ColorExtractor) palette(img image.Image, count int) []string {
	if count <= 0 {
		count = 3
	}

	bounds := img.Bounds()
	// sample roughly 64x64 pixels regardless of image size
	stepX := bounds.Dx() / 64
	stepY := bounds.Dy() / 64
	if stepX < 1 {
		stepX = 1
	}
	if stepY < 1 {
		stepY = 1
	}

	type bucket struct {
		r, g, b uint32 // running sums
		n       int
	}
	histogram := make(map[uint32]*bucket)

	for y := bounds.Min.Y; y < bounds.Max.Y; y += stepY {
		for x := bounds.Min.X; x < bounds.Max.X; x += stepX {
			r, g, b, a := img.At(x, y).RGBA()
			if a < 0x8000 {
				continue
			}
			r >>= 8
			g >>= 8
			b >>= 8
			// 4 bits per channel keeps similar shades together
			key := (r>>4)<<8 | (g>>4)<<4 | (b >> 4)
			bk := histogram[key]
			if bk == nil {
				bk = &bucket{}
				histogram[key] = bk
			}
			bk.r += r
			bk.g += g
			bk.b += b
			bk.n++
		}
	}
	if len(histogram) == 0 {
		return nil
	}

	buckets := make([]*bucket, 0, len(histogram))
	for _, bk := range histogram {
		buckets = append(buckets, bk)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].n > buckets[j].n })

	var (
		picked []colorful.Color
		hexes  []string
	)
	for _, bk := range buckets {
		col := colorful.Color{
			R: float64(bk.r) / float64(bk.n) / 255,
			G: float64(bk.g) / float64(bk.n) / 255,
			B: float64(bk.b) / float64(bk.n) / 255,
		}
		distinct := true
		for _, prev := range picked {
			if col.DistanceLab(prev) < minColorDistance {
				distinct = false
				break
			}
		}
		if !distinct {
			continue
		}
		picked = append(picked, col)
		hexes = append(hexes, col.Hex())
		if len(hexes) == count {
			break
		}
	}
	return hexes
}

// IsDark reports whether a hex color reads as dark, for picking contrasting
// overlay text.
func IsDark(hex string) bool {
	col, err := colorful.Hex(hex)
	if err != nil {
		return false
	}
	l, _, _ := col.Lab()
	return l < 0.5
}

// ContrastColor returns white for dark colors and black for light ones.
func ContrastColor(hex string) string {
	if IsDark(hex) {
		return "#ffffff"
	}
	return "#000000"
}

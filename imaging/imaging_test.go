package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeJPEG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, format, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, "jpeg", format)
	return img
}

// near reports whether two 8-bit channel values are within JPEG tolerance.
func near(a, b uint32, tol uint32) bool {
	a, b = a>>8, b>>8
	if a > b {
		return a-b <= tol
	}
	return b-a <= tol
}

func TestNormalizeTransparentBecomesWhite(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 32, 24)) // all pixels fully transparent

	out, err := Normalize(encodePNG(t, img))
	require.NoError(t, err)
	assert.True(t, out.Flattened)
	assert.Equal(t, "png", out.Format)

	decoded := decodeJPEG(t, out.JPEG)
	assert.Equal(t, img.Bounds().Size(), decoded.Bounds().Size())

	for _, p := range []image.Point{{0, 0}, {16, 12}, {31, 23}} {
		r, g, b, _ := decoded.At(p.X, p.Y).RGBA()
		assert.True(t, near(r, 0xffff, 3) && near(g, 0xffff, 3) && near(b, 0xffff, 3),
			"pixel %v = (%d,%d,%d), want white", p, r>>8, g>>8, b>>8)
	}
}

func TestNormalizeBlendsPartialAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.SetNRGBA(x, y, color.NRGBA{0, 0, 0, 128})
		}
	}

	out, err := Normalize(encodePNG(t, img))
	require.NoError(t, err)

	r, _, _, _ := decodeJPEG(t, out.JPEG).At(8, 8).RGBA()
	// half-opaque black over white is mid gray
	assert.True(t, near(r, 127<<8, 4), "red = %d, want ~127", r>>8)
}

func TestNormalizeOpaqueRoundTrip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			if x < 20 {
				img.SetRGBA(x, y, color.RGBA{0, 0, 0, 255})
			} else {
				img.SetRGBA(x, y, color.RGBA{255, 255, 255, 255})
			}
		}
	}

	var src bytes.Buffer
	require.NoError(t, jpeg.Encode(&src, img, &jpeg.Options{Quality: 100}))

	out, err := Normalize(src.Bytes())
	require.NoError(t, err)
	assert.False(t, out.Flattened, "YCbCr input has no alpha")
	assert.Equal(t, "jpeg", out.Format)

	decoded := decodeJPEG(t, out.JPEG)
	assert.Equal(t, img.Bounds().Size(), decoded.Bounds().Size())

	r, g, b, _ := decoded.At(5, 10).RGBA()
	assert.True(t, near(r, 0, 8) && near(g, 0, 8) && near(b, 0, 8), "left side should stay black")
	r, g, b, _ = decoded.At(35, 10).RGBA()
	assert.True(t, near(r, 0xffff, 8) && near(g, 0xffff, 8) && near(b, 0xffff, 8), "right side should stay white")
}

func TestNormalizeGrayHasNoAlpha(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = 200
	}

	out, err := Normalize(encodePNG(t, img))
	require.NoError(t, err)
	assert.False(t, out.Flattened)

	decoded := decodeJPEG(t, out.JPEG)
	y, _, _, _ := decoded.At(4, 4).RGBA()
	assert.True(t, near(y, 200<<8, 3))
}

func TestNormalizePalettedTransparency(t *testing.T) {
	palette := color.Palette{color.Transparent, color.RGBA{255, 0, 0, 255}}
	img := image.NewPaletted(image.Rect(0, 0, 32, 16), palette)
	for x := 16; x < 32; x++ {
		for y := 0; y < 16; y++ {
			img.SetColorIndex(x, y, 1)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, gif.Encode(&buf, img, nil))

	out, err := Normalize(buf.Bytes())
	require.NoError(t, err)
	assert.True(t, out.Flattened)

	decoded := decodeJPEG(t, out.JPEG)
	r, g, b, _ := decoded.At(1, 5).RGBA()
	assert.True(t, near(r, 0xffff, 6) && near(g, 0xffff, 6) && near(b, 0xffff, 6), "transparent index should be white")
	r, g, _, _ = decoded.At(24, 5).RGBA()
	assert.True(t, near(r, 0xffff, 12) && near(g, 0, 12), "opaque red should stay red")
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	_, err := Normalize([]byte("this is not an image"))
	assert.Error(t, err)

	_, err = Normalize(nil)
	assert.ErrorIs(t, err, ErrEmptyImage)
}

func TestHasAlphaAndBands(t *testing.T) {
	rect := image.Rect(0, 0, 1, 1)
	tests := []struct {
		name  string
		img   image.Image
		alpha bool
		bands int
	}{
		{"rgba", image.NewRGBA(rect), true, 4},
		{"nrgba", image.NewNRGBA(rect), true, 4},
		{"nrgba64", image.NewNRGBA64(rect), true, 4},
		{"gray", image.NewGray(rect), false, 1},
		{"alpha", image.NewAlpha(rect), true, 1},
		{"ycbcr", image.NewYCbCr(rect, image.YCbCrSubsampleRatio420), false, 3},
		{"cmyk", image.NewCMYK(rect), false, 4},
		{"opaque palette", image.NewPaletted(rect, color.Palette{color.Black, color.White}), false, 1},
		{"translucent palette", image.NewPaletted(rect, color.Palette{color.Transparent}), true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.alpha, HasAlpha(tt.img))
			assert.Equal(t, tt.bands, Bands(tt.img))
		})
	}
}

func TestFlattenWithoutMaskIgnoresAlpha(t *testing.T) {
	// image.Alpha has a single band, so no mask is applied and alpha is discarded.
	img := image.NewAlpha(image.Rect(0, 0, 2, 1))
	img.SetAlpha(0, 0, color.Alpha{A: 0})
	img.SetAlpha(1, 0, color.Alpha{A: 40})

	flat := Flatten(img)
	assert.Equal(t, img.Bounds(), flat.Bounds())
	for x := 0; x < 2; x++ {
		c := flat.RGBAAt(x, 0)
		assert.Equal(t, uint8(255), c.A)
		assert.Equal(t, uint8(255), c.R)
	}
}

func TestFlattenKeepsOffsetBounds(t *testing.T) {
	img := image.NewNRGBA(image.Rect(10, 10, 20, 15))
	img.SetNRGBA(12, 12, color.NRGBA{0, 0, 255, 255})

	flat := Flatten(img)
	assert.Equal(t, img.Bounds(), flat.Bounds())
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, flat.RGBAAt(12, 12))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, flat.RGBAAt(11, 11))
}

func TestEncodeJPEGQualityAffectsSize(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x * 4), uint8(y * 4), uint8(x ^ y), 255})
		}
	}

	high, err := EncodeJPEG(img, 95)
	require.NoError(t, err)
	low, err := EncodeJPEG(img, 10)
	require.NoError(t, err)

	assert.Less(t, len(low), len(high))
}

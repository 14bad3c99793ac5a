// Package imaging converts generated images into opaque JPEG files.
//
// Images whose color model carries alpha are flattened onto a white canvas
// before encoding, because JPEG has no transparency.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif" // register GIF decoding
	"image/jpeg"
	_ "image/png" // register PNG decoding
)

// Quality is the JPEG quality used for downloadable files.
const Quality = 95

// MIMEType is the content type of normalized output.
const MIMEType = "image/jpeg"

// ErrEmptyImage is returned for zero-length input or zero-area images.
var ErrEmptyImage = errors.New("imaging: empty image")

// Normalized is the result of Normalize.
type Normalized struct {
	// Image is the decoded source image, suitable for display.
	Image image.Image
	// Format is the decoder name reported by image.Decode ("png", "jpeg", "gif").
	Format string
	// Flattened reports whether the source had alpha and was composited onto white.
	Flattened bool
	// JPEG holds the encoded output.
	JPEG []byte
}

// Decode decodes PNG, JPEG or GIF bytes.
func Decode(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", ErrEmptyImage
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("imaging: decode: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, "", ErrEmptyImage
	}
	return img, format, nil
}

// Normalize decodes data and re-encodes it as JPEG at Quality.
func Normalize(data []byte) (*Normalized, error) {
	img, format, err := Decode(data)
	if err != nil {
		return nil, err
	}

	out, flattened := ToJPEGSource(img)

	encoded, err := EncodeJPEG(out, Quality)
	if err != nil {
		return nil, err
	}

	return &Normalized{
		Image:     img,
		Format:    format,
		Flattened: flattened,
		JPEG:      encoded,
	}, nil
}

// ToJPEGSource returns an image safe to hand to a JPEG encoder.
// Images with alpha are flattened onto white; the bool reports whether that happened.
func ToJPEGSource(img image.Image) (image.Image, bool) {
	if !HasAlpha(img) {
		return img, false
	}
	return Flatten(img), true
}

// EncodeJPEG encodes img as JPEG at the given quality.
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("imaging: encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// HasAlpha reports whether the image's color model carries an alpha channel.
// A paletted image only counts when at least one palette entry is translucent.
func HasAlpha(img image.Image) bool {
	switch m := img.ColorModel().(type) {
	case color.Palette:
		for _, c := range m {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return true
			}
		}
		return false
	}

	switch img.ColorModel() {
	case color.RGBAModel, color.RGBA64Model, color.NRGBAModel, color.NRGBA64Model,
		color.NYCbCrAModel, color.AlphaModel, color.Alpha16Model:
		return true
	}
	return false
}

// Bands returns the number of channels in the image's color model.
func Bands(img image.Image) int {
	if _, ok := img.ColorModel().(color.Palette); ok {
		return 1
	}

	switch img.ColorModel() {
	case color.RGBAModel, color.RGBA64Model, color.NRGBAModel, color.NRGBA64Model,
		color.NYCbCrAModel, color.CMYKModel:
		return 4
	case color.YCbCrModel:
		return 3
	case color.GrayModel, color.Gray16Model, color.AlphaModel, color.Alpha16Model:
		return 1
	}
	return 4
}

// Flatten composites img onto an opaque white canvas with the same bounds.
//
// When the image has four bands its own alpha is the blend mask. Otherwise the
// pixels are pasted without a mask, i.e. with alpha forced to opaque.
func Flatten(img image.Image) *image.RGBA {
	b := img.Bounds()
	canvas := image.NewRGBA(b)
	draw.Draw(canvas, b, image.NewUniform(color.White), image.Point{}, draw.Src)

	if Bands(img) == 4 {
		draw.Draw(canvas, b, img, b.Min, draw.Over)
		return canvas
	}

	draw.Draw(canvas, b, opaque{img}, b.Min, draw.Src)
	return canvas
}

// opaque presents an image with every pixel's alpha forced to fully opaque,
// keeping the straight (non-premultiplied) color values. Fully transparent
// pixels carry no color and read as white.
type opaque struct {
	image.Image
}

func (o opaque) ColorModel() color.Model { return color.RGBAModel }

func (o opaque) At(x, y int) color.Color {
	c := color.NRGBAModel.Convert(o.Image.At(x, y)).(color.NRGBA)
	if c.A == 0 {
		return color.White
	}
	c.A = 0xff
	return c
}

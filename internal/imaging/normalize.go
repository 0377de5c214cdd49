// Package imaging converts acquired bitmaps into the transmitted payload
// format: decode, flatten alpha, re-encode as JPEG.
package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	_ "image/png" // register PNG decoder

	"github.com/docsnap/doc-extractor/internal/domain"
)

// Normalize decodes uploaded image bytes and re-encodes them as the JPEG
// payload. Inputs that fail to decode produce a decode error and no
// payload. Dimensions are preserved.
func Normalize(data []byte, quality int) (domain.EncodedImagePayload, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return domain.EncodedImagePayload{}, domain.DecodeError("could not decode image", err)
	}

	return encode(img, quality)
}

// EncodePage re-encodes one rasterized page through the same flatten and
// encode rule as direct image uploads.
func EncodePage(page domain.PageImage, quality int) (domain.EncodedImagePayload, error) {
	if page.Bitmap == nil {
		return domain.EncodedImagePayload{}, domain.ConversionError("page has no bitmap", nil)
	}

	return encode(page.Bitmap, quality)
}

func encode(img image.Image, quality int) (domain.EncodedImagePayload, error) {
	img = Flatten(img)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return domain.EncodedImagePayload{}, domain.ConversionError("could not encode image", err)
	}

	return domain.NewPayload(buf.Bytes()), nil
}

// Flatten composites a bitmap carrying alpha onto an opaque white
// background. Opaque inputs pass through unchanged.
func Flatten(img image.Image) image.Image {
	type opaquer interface{ Opaque() bool }
	if o, ok := img.(opaquer); ok && o.Opaque() {
		return img
	}

	b := img.Bounds()
	flat := image.NewRGBA(b)
	draw.Draw(flat, b, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(flat, b, img, b.Min, draw.Over)
	return flat
}

package image

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	_ "image/gif" // регистрация декодеров входных форматов
	_ "image/png"
)

const (
	defaultMaxWidth     = 1280
	defaultMaxSizeBytes = 1 * 1024 * 1024
	defaultQuality      = 80
)

// Normalizer приводит входящие картинки к ограниченному размеру: уменьшает
// ширину до maxWidth и пережимает в JPEG, пока размер не уложится в лимит.
// Так полезная нагрузка запроса к провайдеру остаётся ограниченной.
type Normalizer struct {
	maxWidth    int
	maxSizeByte int
	quality     int
}

func NewNormalizer(maxWidth, maxSizeBytes, quality int) *Normalizer {
	if maxWidth <= 0 {
		maxWidth = defaultMaxWidth
	}
	if maxSizeBytes <= 0 {
		maxSizeBytes = defaultMaxSizeBytes
	}
	if quality <= 0 || quality > 100 {
		quality = defaultQuality
	}
	return &Normalizer{maxWidth: maxWidth, maxSizeByte: maxSizeBytes, quality: quality}
}

// Normalize декодирует картинку из data и возвращает пережатый JPEG и его MIME-тип.
func (n *Normalizer) Normalize(data []byte) ([]byte, string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}

	origBounds := img.Bounds()
	origWidth := origBounds.Dx()
	origHeight := origBounds.Dy()
	if origWidth == 0 || origHeight == 0 {
		return nil, "", fmt.Errorf("invalid image size: %dx%d", origWidth, origHeight)
	}

	resizedWidth := min(origWidth, n.maxWidth)
	resizedHeight := max(1, origHeight*resizedWidth/origWidth)

	var encoded []byte
	for {
		resized := resizeNearest(img, resizedWidth, resizedHeight)
		encoded, err = encodeJPEG(resized, n.quality)
		if err != nil {
			return nil, "", err
		}

		if len(encoded) <= n.maxSizeByte {
			break
		}

		if resizedWidth <= 320 {
			return nil, "", fmt.Errorf("image exceeds max size %d bytes even after downscale", n.maxSizeByte)
		}

		resizedWidth = max(1, int(float64(resizedWidth)*0.9))
		resizedHeight = max(1, origHeight*resizedWidth/origWidth)
	}

	return encoded, "image/jpeg", nil
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func resizeNearest(src image.Image, width int, height int) *image.RGBA {
	if width <= 0 || height <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}

	srcBounds := src.Bounds()
	srcWidth := srcBounds.Dx()
	srcHeight := srcBounds.Dy()
	if srcWidth == 0 || srcHeight == 0 {
		return image.NewRGBA(image.Rect(0, 0, width, height))
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		srcY := srcBounds.Min.Y + y*srcHeight/height
		for x := range width {
			srcX := srcBounds.Min.X + x*srcWidth/width
			dst.Set(x, y, src.At(srcX, srcY))
		}
	}

	return dst
}

package store

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"strings"

	"golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	BMP  Format = "bmp"
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "bmp":
		return BMP, nil
	default:
		return "", fmt.Errorf("store: unsupported image format %q", s)
	}
}

func (f Format) Ext() string {
	if f == JPEG {
		return ".jpg"
	}
	return "." + string(f)
}

func (f Format) ContentType() string {
	return "image/" + string(f)
}

// Encode converts image data to f. Data already in f is returned untouched
// so PNG text chunks written by the server survive.
func Encode(data []byte, f Format) ([]byte, error) {
	img, name, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("store: decoding image: %w", err)
	}
	if Format(name) == f {
		return data, nil
	}

	var buf bytes.Buffer
	switch f {
	case PNG:
		err = png.Encode(&buf, img)
	case JPEG:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95})
	case BMP:
		err = bmp.Encode(&buf, img)
	default:
		err = fmt.Errorf("unsupported format %q", f)
	}
	if err != nil {
		return nil, fmt.Errorf("store: encoding %s: %w", f, err)
	}
	return buf.Bytes(), nil
}

package webui

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// EncodeBody marshals a request body. Field names go out exactly as the
// struct tags spell them, which is the server's snake_case schema.
func EncodeBody(body any) ([]byte, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("webui: encoding body: %w", err)
	}
	return data, nil
}

// DecodeSingle unmarshals one object. Unknown fields are ignored and a nil
// payload yields the zero value.
func DecodeSingle[T any](data []byte) (T, error) {
	var v T
	if data == nil {
		return v, nil
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("webui: decoding %T: %w", v, err)
	}
	return v, nil
}

// DecodeList unmarshals a JSON array. "[]", "null" and no content all yield
// an empty, non-nil slice.
func DecodeList[T any](data []byte) ([]T, error) {
	if data == nil {
		return []T{}, nil
	}
	var v []T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("webui: decoding %T: %w", v, err)
	}
	if v == nil {
		v = []T{}
	}
	return v, nil
}

func EncodeImage(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// EncodeImageArray wraps a single image; the server expects arrays even for one.
func EncodeImageArray(data []byte) []string {
	return []string{EncodeImage(data)}
}

// DecodeImageArray decodes the first image of the array. Only the text
// before the first comma is decoded.
func DecodeImageArray(images []string) ([]byte, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("%w: no images", ErrMalformedImagePayload)
	}
	payload, _, _ := strings.Cut(images[0], ",")
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedImagePayload, err)
	}
	return data, nil
}

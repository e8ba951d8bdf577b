package utils

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"net/http"

	_ "image/gif"
	_ "image/jpeg"
	"image/png"
)

// maxImageBytes caps attachment downloads; Discord rejects emoji images over
// 256KiB anyway, but the source image may be a larger jpeg that shrinks when
// re-encoded.
const maxImageBytes = 4 << 20

// FetchEmojiImage downloads a suggestion attachment and re-encodes it as PNG
// regardless of the uploaded format.
func FetchEmojiImage(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("download attachment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download attachment: unexpected status %s", resp.Status)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read attachment: %w", err)
	}
	if len(raw) > maxImageBytes {
		return nil, fmt.Errorf("attachment exceeds %d bytes", maxImageBytes)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode attachment: %w", err)
	}

	var out bytes.Buffer
	if err := png.Encode(&out, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return out.Bytes(), nil
}

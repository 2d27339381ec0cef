package vision

import "context"

// Extractor reads printed or handwritten text from an image.
// An empty result is not an error: it means the image holds no text.
type Extractor interface {
	Extract(ctx context.Context, image []byte) (string, error)
}

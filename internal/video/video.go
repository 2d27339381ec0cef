package video

import "context"

// Sampler extracts a single representative frame from a video.
type Sampler interface {
	MidFrame(ctx context.Context, video []byte) ([]byte, error)
}

package speech

import (
	"context"
	"errors"
)

// ErrNotUnderstood reports that the audio contained no recognizable
// speech. Callers answer the user directly instead of asking the model.
var ErrNotUnderstood = errors.New("speech not recognized")

// Recognizer turns recorded audio into text. filename carries the
// original name so the backend can infer the container format.
type Recognizer interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}

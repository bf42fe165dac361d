package classifier

import (
	"context"
	"errors"
)

// Inference failure modes surfaced across the capability boundary.
var (
	ErrUnsupportedFormat = errors.New("classifier: unsupported image format")
	ErrInference         = errors.New("classifier: inference failed")
)

// Prediction is one ranked label with a confidence score in [0,100].
type Prediction struct {
	Label      string
	Confidence float32
}

// Client exposes the subset of the inference service used by the
// classification flow. Implementations must be safe for concurrent use.
type Client interface {
	Classify(ctx context.Context, image []byte, topK int32) ([]Prediction, error)
}

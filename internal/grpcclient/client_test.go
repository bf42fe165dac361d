package grpcclient

import (
	"errors"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/example/image-classify/internal/classifier"
)

func TestTranslateStatusMapsInvalidArgument(t *testing.T) {
	err := translateStatus(status.Error(codes.InvalidArgument, "not an image"))
	if !errors.Is(err, classifier.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestTranslateStatusMapsInternalToInference(t *testing.T) {
	for _, code := range []codes.Code{codes.Internal, codes.Unavailable, codes.DeadlineExceeded} {
		err := translateStatus(status.Error(code, "boom"))
		if !errors.Is(err, classifier.ErrInference) {
			t.Fatalf("code %v: expected ErrInference, got %v", code, err)
		}
	}
}

func TestTranslateStatusWrapsPlainErrors(t *testing.T) {
	err := translateStatus(errors.New("connection reset"))
	if !errors.Is(err, classifier.ErrInference) {
		t.Fatalf("expected ErrInference, got %v", err)
	}
}

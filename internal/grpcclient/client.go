package grpcclient

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/example/image-classify/internal/classifier"
	"github.com/example/image-classify/internal/logging"
	pb "github.com/example/image-classify/proto"
)

// DialClassifier returns a ready-to-use gRPC client for the inference service.
func DialClassifier(ctx context.Context, addr string, logger *zap.Logger) (classifier.Client, *grpc.ClientConn, error) {
	dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	conn, err := grpc.DialContext(
		dialCtx,
		addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithBlock(),
	)
	if err != nil {
		wrapped := logging.NewOperationError("grpcclient.dial_classifier", "", err)
		logger.Error("failed to dial classifier", zap.Error(wrapped), zap.String("addr", addr))
		return nil, nil, wrapped
	}
	client := pb.NewClassifierClient(conn)
	return &grpcClassifier{client: client, logger: logger}, conn, nil
}

type grpcClassifier struct {
	client pb.ClassifierClient
	logger *zap.Logger
}

func (g *grpcClassifier) Classify(ctx context.Context, image []byte, topK int32) ([]classifier.Prediction, error) {
	resp, err := g.client.Classify(ctx, &pb.ClassifyRequest{ImageData: image, TopK: topK})
	if err != nil {
		g.logger.Error("classifier call failed", zap.Error(err))
		return nil, translateStatus(err)
	}

	predictions := make([]classifier.Prediction, 0, len(resp.GetPredictions()))
	for _, p := range resp.GetPredictions() {
		predictions = append(predictions, classifier.Prediction{
			Label:      p.GetLabel(),
			Confidence: p.GetConfidence(),
		})
	}
	return predictions, nil
}

// translateStatus folds gRPC status codes into the capability error set so
// callers never depend on transport details.
func translateStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("%w: %v", classifier.ErrInference, err)
	}
	switch st.Code() {
	case codes.InvalidArgument, codes.Unimplemented:
		return fmt.Errorf("%w: %s", classifier.ErrUnsupportedFormat, st.Message())
	default:
		return fmt.Errorf("%w: %s", classifier.ErrInference, st.Message())
	}
}

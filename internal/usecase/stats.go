package usecase

import "context"

// StatsSummary represents aggregated classification insights.
type StatsSummary struct {
	TotalClassifications int64   `json:"total_classifications"`
	DistinctUsers        int64   `json:"distinct_users"`
	AverageConfidence    float64 `json:"average_confidence"`
	AverageDurationMs    float64 `json:"average_duration_ms"`
}

// GetStatsSummary aggregates classification stats from persisted logs.
func (uc *ClassificationUseCase) GetStatsSummary(ctx context.Context) (*StatsSummary, error) {
	aggregation, err := uc.logs.AggregateStats(ctx)
	if err != nil {
		return nil, err
	}

	return &StatsSummary{
		TotalClassifications: aggregation.TotalCount,
		DistinctUsers:        aggregation.DistinctUsers,
		AverageConfidence:    aggregation.AverageConfidence,
		AverageDurationMs:    aggregation.AverageDurationMs,
	}, nil
}

// BalanceOf reports the current token balance for a username.
func (uc *ClassificationUseCase) BalanceOf(ctx context.Context, username string) (int64, error) {
	return uc.ledger.Balance(ctx, username)
}

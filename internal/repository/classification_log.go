package repository

import (
	"context"
	"time"

	"github.com/example/image-classify/internal/logging"
)

// ClassificationLog records one successful classification for auditing and
// stats. Failed requests are never logged here; they also never charge.
type ClassificationLog struct {
	ID            uint      `gorm:"primaryKey"`
	RequestID     string    `gorm:"column:request_id;uniqueIndex;size:64"`
	Username      string    `gorm:"column:username;index;size:64"`
	URL           string    `gorm:"column:url;type:text"`
	SHA1Hash      string    `gorm:"column:sha1_hash;index;size:40"`
	TopLabel      string    `gorm:"column:top_label;size:128"`
	TopConfidence float32   `gorm:"column:top_confidence"`
	DurationMs    int64     `gorm:"column:duration_ms"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

// TableName overrides the default table name.
func (ClassificationLog) TableName() string {
	return "classification_logs"
}

// StatsAggregation holds raw aggregates over classification logs.
type StatsAggregation struct {
	TotalCount        int64
	DistinctUsers     int64
	AverageConfidence float64
	AverageDurationMs float64
}

// SaveLog persists a classification log entry.
func (r *UserRepository) SaveLog(ctx context.Context, log *ClassificationLog) error {
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return logging.NewOperationError("repository.save_log", log.RequestID, err)
	}
	return nil
}

// AggregateStats computes summary aggregates across all classification logs.
func (r *UserRepository) AggregateStats(ctx context.Context) (*StatsAggregation, error) {
	var agg StatsAggregation
	err := r.executeWithRetry(ctx, "repository.aggregate_stats", "", func() error {
		return r.db.WithContext(ctx).
			Model(&ClassificationLog{}).
			Select(
				"COUNT(*) AS total_count, " +
					"COUNT(DISTINCT username) AS distinct_users, " +
					"COALESCE(AVG(top_confidence), 0) AS average_confidence, " +
					"COALESCE(AVG(duration_ms), 0) AS average_duration_ms").
			Scan(&agg).Error
	})
	if err != nil {
		return nil, err
	}
	return &agg, nil
}

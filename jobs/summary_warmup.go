package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/meridian-pos/meridian-pos/internal/analytics"
)

// SummaryWarmupJob recomputes the daily sales summary and overwrites the
// cached entry so dashboard reads stay warm between expirations.
type SummaryWarmupJob struct {
	Analytics *analytics.Service
	Logger    *slog.Logger
	clock     func() time.Time
}

// NewSummaryWarmupJob wires dependencies for the warmup handler.
func NewSummaryWarmupJob(analyticsSvc *analytics.Service, logger *slog.Logger) *SummaryWarmupJob {
	return &SummaryWarmupJob{
		Analytics: analyticsSvc,
		Logger:    logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes summary warmup tasks.
func (j *SummaryWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Analytics == nil {
		return errors.New("summary warmup: handler not configured")
	}
	var payload SummaryWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	date := j.now()
	if payload.Date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", payload.Date, time.UTC)
		if err != nil {
			return asynq.SkipRetry
		}
		date = parsed
	}

	logger := j.logger().With(slog.String("date", date.Format("2006-01-02")))
	logger.Info("starting summary warmup")

	warmCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	summary, err := j.Analytics.RefreshDailySummary(warmCtx, date)
	if err != nil {
		logger.Error("refresh daily summary", slog.Any("error", err))
		return err
	}

	logger.Info("completed summary warmup",
		slog.Float64("total_sales", summary.TotalSales),
		slog.Int("items", len(summary.Items)))
	return nil
}

func (j *SummaryWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskSummaryWarmup))
	}
	return slog.Default().With(slog.String("job", TaskSummaryWarmup))
}

func (j *SummaryWarmupJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}

// Package jobs contains the background task definitions and the Asynq worker
// wiring for the cache warmup schedule.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskSummaryWarmup refreshes the cached daily sales summary.
	TaskSummaryWarmup = "analytics:summary_warmup"
)

// SummaryWarmupPayload selects the day to warm. An empty Date means today.
type SummaryWarmupPayload struct {
	Date string `json:"date,omitempty"`
}

// NewSummaryWarmupTask constructs an Asynq task for the warmup handler.
func NewSummaryWarmupTask(payload SummaryWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSummaryWarmup, data), nil
}

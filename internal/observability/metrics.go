package observability

import (
	"fmt"
	"time"
)

// Metrics summarises task activity recorded in the event log.
type Metrics struct {
	TasksAdded      int            `json:"tasks_added"`
	TasksCompleted  int            `json:"tasks_completed"`
	TasksReopened   int            `json:"tasks_reopened"`
	TasksDeleted    int            `json:"tasks_deleted"`
	TasksByType     map[string]int `json:"tasks_by_type"`
	CommandsFailed  int            `json:"commands_failed"`
	FailuresByKind  map[string]int `json:"failures_by_kind"`
	StorageFailures int            `json:"storage_failures"`
	Sessions        int            `json:"sessions"`
	EventCount      int            `json:"event_count"`
	OldestEvent     *time.Time     `json:"oldest_event,omitempty"`
	NewestEvent     *time.Time     `json:"newest_event,omitempty"`
}

// MetricsCalculator derives metrics from the event log.
type MetricsCalculator interface {
	Calculate(since time.Time) (*Metrics, error)
}

type metricsCalculator struct {
	eventLog EventLog
}

// NewMetricsCalculator creates a MetricsCalculator that reads from eventLog.
func NewMetricsCalculator(eventLog EventLog) MetricsCalculator {
	return &metricsCalculator{eventLog: eventLog}
}

// Calculate aggregates every event at or after since.
func (mc *metricsCalculator) Calculate(since time.Time) (*Metrics, error) {
	events, err := mc.eventLog.Read(EventFilter{Since: &since})
	if err != nil {
		return nil, fmt.Errorf("reading events for metrics: %w", err)
	}

	m := &Metrics{
		TasksByType:    make(map[string]int),
		FailuresByKind: make(map[string]int),
		EventCount:     len(events),
	}

	for i, event := range events {
		t := event.Time
		if i == 0 {
			m.OldestEvent = &t
		}
		m.NewestEvent = &t

		switch event.Type {
		case "task.added":
			m.TasksAdded++
			if taskType, ok := event.Data["type"].(string); ok {
				m.TasksByType[taskType]++
			}
		case "task.marked":
			m.TasksCompleted++
		case "task.unmarked":
			m.TasksReopened++
		case "task.deleted":
			m.TasksDeleted++
		case "command.failed":
			m.CommandsFailed++
			if kind, ok := event.Data["kind"].(string); ok {
				m.FailuresByKind[kind]++
			}
		case "store.load_failed", "store.save_failed":
			m.StorageFailures++
		case "session.started":
			m.Sessions++
		}
	}

	return m, nil
}

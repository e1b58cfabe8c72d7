package observability

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"pgregory.net/rapid"
)

// Property 1: Metrics Tasks Added Matches Events
// For any N task.added events, Calculate reports TasksAdded == N and the
// per-type counts sum to N.
func TestProperty_MetricsTasksAddedMatchesEvents(t *testing.T) {
	dir := t.TempDir()
	run := 0
	rapid.Check(t, func(rt *rapid.T) {
		run++
		el, err := NewJSONLEventLog(filepath.Join(dir, fmt.Sprintf("events-%d.jsonl", run)))
		if err != nil {
			rt.Fatalf("creating event log: %v", err)
		}
		defer el.Close()

		numEvents := rapid.IntRange(1, 20).Draw(rt, "numEvents")
		baseTime := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
		kinds := []string{"todo", "deadline", "event"}

		for i := 0; i < numEvents; i++ {
			kind := rapid.SampledFrom(kinds).Draw(rt, fmt.Sprintf("kind_%d", i))
			hoursOffset := rapid.IntRange(0, 168).Draw(rt, fmt.Sprintf("hoursOffset_%d", i))
			event := Event{
				Time:    baseTime.Add(time.Duration(hoursOffset) * time.Hour),
				Level:   LevelInfo,
				Type:    "task.added",
				Message: "task added",
				Data:    map[string]any{"type": kind},
			}
			if err := el.Write(event); err != nil {
				rt.Fatalf("writing event: %v", err)
			}
		}

		metrics, err := NewMetricsCalculator(el).Calculate(baseTime.Add(-time.Hour))
		if err != nil {
			rt.Fatalf("calculating metrics: %v", err)
		}
		if metrics.TasksAdded != numEvents {
			rt.Errorf("TasksAdded = %d, want %d", metrics.TasksAdded, numEvents)
		}
		sum := 0
		for _, n := range metrics.TasksByType {
			sum += n
		}
		if sum != numEvents {
			rt.Errorf("TasksByType sums to %d, want %d", sum, numEvents)
		}
	})
}

// Property 2: Metrics Event Count Is Total
// For any mix of event types, EventCount equals the number of events written.
func TestProperty_MetricsEventCountIsTotal(t *testing.T) {
	dir := t.TempDir()
	run := 0
	rapid.Check(t, func(rt *rapid.T) {
		run++
		el, err := NewJSONLEventLog(filepath.Join(dir, fmt.Sprintf("events-%d.jsonl", run)))
		if err != nil {
			rt.Fatalf("creating event log: %v", err)
		}
		defer el.Close()

		numEvents := rapid.IntRange(1, 20).Draw(rt, "numEvents")
		baseTime := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
		eventTypes := []string{
			"session.started",
			"session.ended",
			"task.added",
			"task.marked",
			"task.unmarked",
			"task.deleted",
			"command.failed",
			"store.save_failed",
		}

		for i := 0; i < numEvents; i++ {
			event := Event{
				Time:  baseTime.Add(time.Duration(i) * time.Minute),
				Level: LevelInfo,
				Type:  rapid.SampledFrom(eventTypes).Draw(rt, fmt.Sprintf("eventType_%d", i)),
			}
			if err := el.Write(event); err != nil {
				rt.Fatalf("writing event: %v", err)
			}
		}

		metrics, err := NewMetricsCalculator(el).Calculate(baseTime)
		if err != nil {
			rt.Fatalf("calculating metrics: %v", err)
		}
		if metrics.EventCount != numEvents {
			rt.Errorf("EventCount = %d, want %d", metrics.EventCount, numEvents)
		}
	})
}

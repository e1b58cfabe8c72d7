package core

// EventLogger is the subset of the observability event log that the session
// needs. Defining it here avoids importing the observability package.
type EventLogger interface {
	LogEvent(eventType string, data map[string]any) error
}

// Event types emitted by Session.
const (
	EventSessionStarted = "session.started"
	EventSessionEnded   = "session.ended"
	EventTaskAdded      = "task.added"
	EventTaskMarked     = "task.marked"
	EventTaskUnmarked   = "task.unmarked"
	EventTaskDeleted    = "task.deleted"
	EventCommandFailed  = "command.failed"
	EventStoreLoadError = "store.load_failed"
	EventStoreSaveError = "store.save_failed"
)

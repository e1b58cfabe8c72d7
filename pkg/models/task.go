package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the only accepted date form, both on input and on disk.
const DateLayout = "2006-01-02"

// TaskKind tags which variant a Task is.
type TaskKind string

const (
	KindTodo     TaskKind = "todo"
	KindDeadline TaskKind = "deadline"
	KindEvent    TaskKind = "event"
)

// Symbol returns the single-letter type marker used in rendered tasks.
func (k TaskKind) Symbol() string {
	switch k {
	case KindTodo:
		return "T"
	case KindDeadline:
		return "D"
	case KindEvent:
		return "E"
	default:
		return "?"
	}
}

// KindFromSymbol is the inverse of TaskKind.Symbol.
func KindFromSymbol(symbol byte) (TaskKind, bool) {
	switch symbol {
	case 'T':
		return KindTodo, true
	case 'D':
		return KindDeadline, true
	case 'E':
		return KindEvent, true
	default:
		return "", false
	}
}

// Task is a todo, deadline or event. Description, Done and Note are shared by
// every kind; By is set only for deadlines and From/To only for events.
type Task struct {
	Kind        TaskKind
	Description string
	Done        bool
	Note        string

	By   time.Time
	From time.Time
	To   time.Time
}

// NewTodo returns a todo task that is not done.
func NewTodo(description, note string) Task {
	return Task{Kind: KindTodo, Description: description, Note: note}
}

// NewDeadline returns a deadline task due on by.
func NewDeadline(description string, by time.Time, note string) Task {
	return Task{Kind: KindDeadline, Description: description, By: by, Note: note}
}

// NewEvent returns an event task spanning from..to. The range is not checked
// for ordering.
func NewEvent(description string, from, to time.Time, note string) Task {
	return Task{Kind: KindEvent, Description: description, From: from, To: to, Note: note}
}

// ParseDate parses a YYYY-MM-DD calendar date. Out-of-range days such as
// 2024-02-30 are rejected.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatDate renders a date in DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// MarkDone sets the done flag. Calling it on a done task is a no-op.
func (t *Task) MarkDone() {
	t.Done = true
}

// MarkUndone clears the done flag. Calling it on an undone task is a no-op.
func (t *Task) MarkUndone() {
	t.Done = false
}

// StatusIcon returns "X" for done tasks and a single space otherwise.
func (t Task) StatusIcon() string {
	if t.Done {
		return "X"
	}
	return " "
}

// HasNote reports whether the task carries a non-empty note.
func (t Task) HasNote() bool {
	return t.Note != ""
}

// Details returns the kind-specific suffix without the leading space, e.g.
// "(by: 2024-12-01)". Todos have no details.
func (t Task) Details() string {
	switch t.Kind {
	case KindDeadline:
		return fmt.Sprintf("(by: %s)", FormatDate(t.By))
	case KindEvent:
		return fmt.Sprintf("(from: %s to: %s)", FormatDate(t.From), FormatDate(t.To))
	default:
		return ""
	}
}

// String renders the task as "[T][X] description (details) [note: ...]".
// This is also the persisted line format.
func (t Task) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s][%s] %s", t.Kind.Symbol(), t.StatusIcon(), t.Description)
	if d := t.Details(); d != "" {
		b.WriteString(" ")
		b.WriteString(d)
	}
	if t.HasNote() {
		fmt.Fprintf(&b, " [note: %s]", t.Note)
	}
	return b.String()
}

// Equal reports whether two tasks hold the same content and done flag.
func (t Task) Equal(o Task) bool {
	return t.Kind == o.Kind &&
		t.Description == o.Description &&
		t.Done == o.Done &&
		t.Note == o.Note &&
		t.By.Equal(o.By) &&
		t.From.Equal(o.From) &&
		t.To.Equal(o.To)
}

package core

import (
	"fmt"
	"strings"

	"github.com/valter-silva-au/primo/pkg/models"
)

// Result is the reply to one executed command.
type Result struct {
	Command CommandKind
	// Lines is the human-readable reply, one entry per output line.
	Lines []string
	// Tasks holds the tasks the reply is about: the added, marked or removed
	// task, or the listed/found tasks.
	Tasks []models.Task
}

// Text joins the reply lines.
func (r *Result) Text() string {
	return strings.Join(r.Lines, "\n")
}

// Session is the application state for one run: the task list, the running
// flag, and the ports used to persist and observe it. It is not safe for
// concurrent use.
type Session struct {
	list    *TaskList
	store   TaskStore
	events  EventLogger
	running bool
}

// NewSession creates a running session with an empty list. store and events
// may be nil, which disables persistence and event logging respectively.
func NewSession(store TaskStore, events EventLogger) *Session {
	return &Session{
		list:    NewTaskList(nil),
		store:   store,
		events:  events,
		running: true,
	}
}

// Load replaces the list with the stored tasks. A store failure leaves the
// session usable: recovered tasks are kept (or the list stays empty) and the
// error is returned for the caller to report or ignore.
func (s *Session) Load() error {
	if s.store == nil {
		s.logEvent(EventSessionStarted, map[string]any{"tasks": 0})
		return nil
	}

	tasks, err := s.store.Load()
	s.list = NewTaskList(tasks)
	if err != nil {
		s.logEvent(EventStoreLoadError, map[string]any{"error": err.Error(), "recovered": len(tasks)})
	}
	s.logEvent(EventSessionStarted, map[string]any{"tasks": s.list.Len()})
	if err != nil {
		return fmt.Errorf("loading tasks: %w", err)
	}
	return nil
}

// Running reports whether bye has not been executed yet.
func (s *Session) Running() bool {
	return s.running
}

// Tasks returns a copy of the current list.
func (s *Session) Tasks() []models.Task {
	return s.list.All()
}

// Len returns the number of tasks.
func (s *Session) Len() int {
	return s.list.Len()
}

// Handle parses line and executes the resulting command.
func (s *Session) Handle(line string) (*Result, error) {
	cmd, err := Parse(line)
	if err != nil {
		s.logFailure("", err)
		return nil, err
	}
	return s.Execute(cmd)
}

// Execute applies cmd to the list. Mutating commands are persisted before
// returning; a failed save is returned as a wrapped error after the in-memory
// change has been made. Mark and unmark log an event only when the done flag
// actually changes.
func (s *Session) Execute(cmd Command) (*Result, error) {
	switch c := cmd.(type) {
	case ByeCommand:
		s.running = false
		s.logEvent(EventSessionEnded, map[string]any{"tasks": s.list.Len()})
		return &Result{Command: c.Kind(), Lines: []string{"Bye. Hope to see you again soon!"}}, nil

	case ListCommand:
		tasks := s.list.All()
		if len(tasks) == 0 {
			return &Result{Command: c.Kind(), Lines: []string{"There are no tasks in your list."}, Tasks: tasks}, nil
		}
		lines := append([]string{"Here are the tasks in your list:"}, numbered(tasks)...)
		return &Result{Command: c.Kind(), Lines: lines, Tasks: tasks}, nil

	case FindCommand:
		found := s.list.Find(c.Keyword)
		if len(found) == 0 {
			return &Result{Command: c.Kind(), Lines: []string{fmt.Sprintf("No tasks match %q.", c.Keyword)}, Tasks: []models.Task{}}, nil
		}
		lines := append([]string{"Here are the matching tasks in your list:"}, numbered(found)...)
		return &Result{Command: c.Kind(), Lines: lines, Tasks: found}, nil

	case MarkCommand:
		before, err := s.list.Get(c.Index)
		if err != nil {
			s.logFailure(c.Kind(), err)
			return nil, err
		}
		task, err := s.list.Mark(c.Index)
		if err != nil {
			return nil, err
		}
		if !before.Done {
			s.logEvent(EventTaskMarked, taskEventData(c.Index, task))
		}
		res := &Result{Command: c.Kind(), Lines: []string{"Nice! I've marked this task as done:", "  " + task.String()}, Tasks: []models.Task{task}}
		return res, s.persist()

	case UnmarkCommand:
		before, err := s.list.Get(c.Index)
		if err != nil {
			s.logFailure(c.Kind(), err)
			return nil, err
		}
		task, err := s.list.Unmark(c.Index)
		if err != nil {
			return nil, err
		}
		if before.Done {
			s.logEvent(EventTaskUnmarked, taskEventData(c.Index, task))
		}
		res := &Result{Command: c.Kind(), Lines: []string{"OK, I've marked this task as not done yet:", "  " + task.String()}, Tasks: []models.Task{task}}
		return res, s.persist()

	case DeleteCommand:
		task, err := s.list.Remove(c.Index)
		if err != nil {
			s.logFailure(c.Kind(), err)
			return nil, err
		}
		s.logEvent(EventTaskDeleted, taskEventData(c.Index, task))
		res := &Result{Command: c.Kind(), Lines: []string{"Noted. I've removed this task:", "  " + task.String(), s.countLine()}, Tasks: []models.Task{task}}
		return res, s.persist()

	case TodoCommand:
		return s.add(c.Kind(), c.Task)
	case DeadlineCommand:
		return s.add(c.Kind(), c.Task)
	case EventCommand:
		return s.add(c.Kind(), c.Task)
	}
	return nil, fmt.Errorf("executing command: unsupported command type %T", cmd)
}

func (s *Session) add(kind CommandKind, task models.Task) (*Result, error) {
	s.list.Add(task)
	s.logEvent(EventTaskAdded, taskEventData(s.list.Len()-1, task))
	res := &Result{Command: kind, Lines: []string{"Got it. I've added this task:", "  " + task.String(), s.countLine()}, Tasks: []models.Task{task}}
	return res, s.persist()
}

func (s *Session) countLine() string {
	n := s.list.Len()
	if n == 1 {
		return "Now you have 1 task in the list."
	}
	return fmt.Sprintf("Now you have %d tasks in the list.", n)
}

func (s *Session) persist() error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Save(s.list.All()); err != nil {
		s.logEvent(EventStoreSaveError, map[string]any{"error": err.Error()})
		return fmt.Errorf("saving tasks: %w", err)
	}
	return nil
}

func (s *Session) logEvent(eventType string, data map[string]any) {
	if s.events == nil {
		return
	}
	_ = s.events.LogEvent(eventType, data) // Non-fatal: the reply matters more than the log.
}

func (s *Session) logFailure(kind CommandKind, err error) {
	data := map[string]any{"kind": KindOf(err).String(), "error": err.Error()}
	if kind != "" {
		data["command"] = string(kind)
	}
	s.logEvent(EventCommandFailed, data)
}

func taskEventData(index int, task models.Task) map[string]any {
	return map[string]any{
		"index": index + 1,
		"type":  string(task.Kind),
		"done":  task.Done,
	}
}

func numbered(tasks []models.Task) []string {
	lines := make([]string, len(tasks))
	for i, t := range tasks {
		lines[i] = fmt.Sprintf("%d.%s", i+1, t)
	}
	return lines
}

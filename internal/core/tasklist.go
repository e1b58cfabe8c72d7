package core

import (
	"strings"

	"github.com/valter-silva-au/primo/pkg/models"
)

// TaskList is the ordered task collection. Positions are zero-based here and
// one-based in anything shown to the user.
type TaskList struct {
	tasks []models.Task
}

// NewTaskList returns a list holding a copy of tasks.
func NewTaskList(tasks []models.Task) *TaskList {
	l := &TaskList{tasks: make([]models.Task, len(tasks))}
	copy(l.tasks, tasks)
	return l
}

// Len returns the number of tasks.
func (l *TaskList) Len() int {
	return len(l.tasks)
}

// All returns a copy of the tasks in order.
func (l *TaskList) All() []models.Task {
	out := make([]models.Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// Add appends a task to the end of the list.
func (l *TaskList) Add(task models.Task) {
	l.tasks = append(l.tasks, task)
}

func (l *TaskList) checkIndex(i int) error {
	if i < 0 || i >= len(l.tasks) {
		if len(l.tasks) == 0 {
			return newCommandError(ErrIndexOutOfRange, "Please select within the indexes of the tasklist! The list is empty.")
		}
		return newCommandError(ErrIndexOutOfRange,
			"Please select within the indexes of the tasklist! (1 to %d, got %d)", len(l.tasks), i+1)
	}
	return nil
}

// Get returns the task at i.
func (l *TaskList) Get(i int) (models.Task, error) {
	if err := l.checkIndex(i); err != nil {
		return models.Task{}, err
	}
	return l.tasks[i], nil
}

// Mark sets the done flag of the task at i and returns the updated task.
func (l *TaskList) Mark(i int) (models.Task, error) {
	if err := l.checkIndex(i); err != nil {
		return models.Task{}, err
	}
	l.tasks[i].MarkDone()
	return l.tasks[i], nil
}

// Unmark clears the done flag of the task at i and returns the updated task.
func (l *TaskList) Unmark(i int) (models.Task, error) {
	if err := l.checkIndex(i); err != nil {
		return models.Task{}, err
	}
	l.tasks[i].MarkUndone()
	return l.tasks[i], nil
}

// Remove deletes the task at i, shifting later tasks down by one, and returns
// the removed task.
func (l *TaskList) Remove(i int) (models.Task, error) {
	if err := l.checkIndex(i); err != nil {
		return models.Task{}, err
	}
	removed := l.tasks[i]
	l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
	return removed, nil
}

// Find returns, in list order, every task whose description contains keyword.
// Matching is case-sensitive.
func (l *TaskList) Find(keyword string) []models.Task {
	var out []models.Task
	for _, t := range l.tasks {
		if strings.Contains(t.Description, keyword) {
			out = append(out, t)
		}
	}
	return out
}

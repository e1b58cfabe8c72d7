package core

import "github.com/valter-silva-au/primo/pkg/models"

// TaskStore persists the whole task list. This interface is defined locally in
// core to avoid importing storage.
//
// Load may return tasks together with a non-nil error when part of the file
// could not be read; the tasks that were recovered are still usable.
type TaskStore interface {
	Load() ([]models.Task, error)
	Save(tasks []models.Task) error
}

package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/valter-silva-au/primo/pkg/models"
)

// TaskFile persists the whole task list as a single file.
type TaskFile interface {
	Load() ([]models.Task, error)
	Save(tasks []models.Task) error
	Path() string
}

// CorruptLinesError reports entries that could not be decoded. It is returned
// together with every task that did decode, so callers may keep going.
type CorruptLinesError struct {
	Path  string
	Lines []int
}

func (e *CorruptLinesError) Error() string {
	nums := make([]string, len(e.Lines))
	for i, n := range e.Lines {
		nums[i] = strconv.Itoa(n)
	}
	return fmt.Sprintf("loading tasks from %s: skipped %d corrupt entries (%s)",
		e.Path, len(e.Lines), strings.Join(nums, ", "))
}

// NewTaskStore returns the TaskFile for the configured format. An empty format
// means plain text.
func NewTaskStore(format models.StorageFormat, path string) (TaskFile, error) {
	switch format {
	case models.FormatText, "":
		return NewTextStore(path), nil
	case models.FormatYAML:
		return NewYAMLStore(path), nil
	default:
		return nil, fmt.Errorf("unknown storage format %q", format)
	}
}

// writeFile replaces path with data under the file lock, creating the parent
// directory first.
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("saving tasks: creating directory: %w", err)
	}
	return withFileLock(path, func() error {
		if err := os.WriteFile(path, data, 0o600); err != nil {
			return fmt.Errorf("saving tasks: writing file: %w", err)
		}
		return nil
	})
}

package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/valter-silva-au/primo/pkg/models"
	"gopkg.in/yaml.v3"
)

// TaskEntry is the YAML form of a single task. Dates use models.DateLayout.
type TaskEntry struct {
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
	Done        bool   `yaml:"done"`
	Note        string `yaml:"note,omitempty"`
	By          string `yaml:"by,omitempty"`
	From        string `yaml:"from,omitempty"`
	To          string `yaml:"to,omitempty"`
}

// TasksFile is the top-level structure of a YAML task file.
type TasksFile struct {
	Version string      `yaml:"version"`
	Tasks   []TaskEntry `yaml:"tasks"`
}

type yamlStore struct {
	path string
}

// NewYAMLStore creates a TaskFile backed by a YAML document at path.
func NewYAMLStore(path string) TaskFile {
	return &yamlStore{path: path}
}

func (s *yamlStore) Path() string {
	return s.path
}

func (s *yamlStore) Load() ([]models.Task, error) {
	data, err := readOrCreate(s.path)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, nil
	}

	var tf TasksFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("loading tasks from %s: parsing YAML: %w", s.path, err)
	}

	var (
		tasks   []models.Task
		corrupt = &CorruptLinesError{Path: s.path}
	)
	for i, e := range tf.Tasks {
		task, err := e.toTask()
		if err != nil {
			corrupt.Lines = append(corrupt.Lines, i+1)
			continue
		}
		tasks = append(tasks, task)
	}
	if len(corrupt.Lines) > 0 {
		return tasks, corrupt
	}
	return tasks, nil
}

func (s *yamlStore) Save(tasks []models.Task) error {
	tf := TasksFile{Version: "1.0", Tasks: make([]TaskEntry, 0, len(tasks))}
	for _, t := range tasks {
		tf.Tasks = append(tf.Tasks, entryFromTask(t))
	}
	data, err := yaml.Marshal(&tf)
	if err != nil {
		return fmt.Errorf("saving tasks: marshaling YAML: %w", err)
	}
	return writeFile(s.path, data)
}

func entryFromTask(t models.Task) TaskEntry {
	e := TaskEntry{
		Type:        string(t.Kind),
		Description: t.Description,
		Done:        t.Done,
		Note:        t.Note,
	}
	switch t.Kind {
	case models.KindDeadline:
		e.By = models.FormatDate(t.By)
	case models.KindEvent:
		e.From = models.FormatDate(t.From)
		e.To = models.FormatDate(t.To)
	}
	return e
}

func (e TaskEntry) toTask() (models.Task, error) {
	if strings.TrimSpace(e.Description) == "" {
		return models.Task{}, errors.New("entry has empty description")
	}
	switch e.Type {
	case string(models.KindTodo):
		t := models.NewTodo(e.Description, e.Note)
		t.Done = e.Done
		return t, nil

	case string(models.KindDeadline):
		by, err := models.ParseDate(e.By)
		if err != nil {
			return models.Task{}, err
		}
		t := models.NewDeadline(e.Description, by, e.Note)
		t.Done = e.Done
		return t, nil

	case string(models.KindEvent):
		from, err := models.ParseDate(e.From)
		if err != nil {
			return models.Task{}, err
		}
		to, err := models.ParseDate(e.To)
		if err != nil {
			return models.Task{}, err
		}
		t := models.NewEvent(e.Description, from, to, e.Note)
		t.Done = e.Done
		return t, nil

	default:
		return models.Task{}, fmt.Errorf("unknown task type %q", e.Type)
	}
}

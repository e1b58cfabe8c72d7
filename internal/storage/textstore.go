package storage

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/valter-silva-au/primo/pkg/models"
)

// Fixed offsets in a rendered task line: "[T][X] description".
const (
	kindOffset        = 1
	statusOffset      = 4
	descriptionOffset = 7
)

const (
	notePrefix = " [note: "
	byPrefix   = " (by: "
	fromPrefix = " (from: "
	toInfix    = " to: "
)

// textStore keeps one rendered task per line, the same text the user sees.
type textStore struct {
	path string
}

// NewTextStore creates a TaskFile that reads and writes canonical task lines
// at path.
func NewTextStore(path string) TaskFile {
	return &textStore{path: path}
}

func (s *textStore) Path() string {
	return s.path
}

// Load reads every line of the file. A missing file is created empty. Lines
// that cannot be decoded are skipped and reported in a *CorruptLinesError
// alongside the tasks that did decode.
func (s *textStore) Load() ([]models.Task, error) {
	data, err := readOrCreate(s.path)
	if err != nil {
		return nil, err
	}

	var (
		tasks   []models.Task
		corrupt = &CorruptLinesError{Path: s.path}
	)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		task, err := DecodeLine(line)
		if err != nil {
			corrupt.Lines = append(corrupt.Lines, lineNo)
			continue
		}
		tasks = append(tasks, task)
	}
	if err := scanner.Err(); err != nil {
		return tasks, fmt.Errorf("loading tasks from %s: scanning: %w", s.path, err)
	}
	if len(corrupt.Lines) > 0 {
		return tasks, corrupt
	}
	return tasks, nil
}

// Save rewrites the whole file.
func (s *textStore) Save(tasks []models.Task) error {
	var b strings.Builder
	for _, t := range tasks {
		b.WriteString(EncodeLine(t))
		b.WriteString("\n")
	}
	return writeFile(s.path, []byte(b.String()))
}

// fieldEscaper escapes free text so that the only unescaped " [note: " on a
// line is the note prefix and a task never spans two lines.
var fieldEscaper = strings.NewReplacer(`\`, `\\`, "[", `\[`, "]", `\]`, "\n", `\n`, "\r", `\r`)

// EncodeLine renders a task as one persisted line: the display form with
// backslash, brackets and line breaks escaped in the description and note.
func EncodeLine(t models.Task) string {
	t.Description = fieldEscaper.Replace(t.Description)
	t.Note = fieldEscaper.Replace(t.Note)
	return t.String()
}

// unescapeField reverses fieldEscaper. Unknown escapes are kept as written,
// so older files with bare backslashes or brackets still load.
func unescapeField(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case '\\', '[', ']':
				b.WriteByte(s[i+1])
				i++
				continue
			case 'n':
				b.WriteByte('\n')
				i++
				continue
			case 'r':
				b.WriteByte('\r')
				i++
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// DecodeLine rebuilds a task from a line written by EncodeLine. The kind and
// status sit at fixed offsets; the note and date fields are sliced out of the
// suffixes, searching from the right so a description may contain the date
// prefixes itself.
func DecodeLine(line string) (models.Task, error) {
	if len(line) < descriptionOffset || line[0] != '[' || line[2] != ']' || line[3] != '[' || line[5] != ']' || line[6] != ' ' {
		return models.Task{}, fmt.Errorf("decoding task line %q: missing [K][S] header", line)
	}

	kind, ok := models.KindFromSymbol(line[kindOffset])
	if !ok {
		return models.Task{}, fmt.Errorf("decoding task line %q: unknown type %q", line, line[kindOffset])
	}

	var done bool
	switch line[statusOffset] {
	case 'X':
		done = true
	case ' ':
	default:
		return models.Task{}, fmt.Errorf("decoding task line %q: unknown status %q", line, line[statusOffset])
	}

	rest := line[descriptionOffset:]
	task := models.Task{Kind: kind, Done: done}

	if strings.HasSuffix(rest, "]") {
		if i := strings.LastIndex(rest, notePrefix); i >= 0 {
			task.Note = unescapeField(rest[i+len(notePrefix) : len(rest)-1])
			rest = rest[:i]
		}
	}

	switch kind {
	case models.KindDeadline:
		i := strings.LastIndex(rest, byPrefix)
		if i < 0 || !strings.HasSuffix(rest, ")") {
			return models.Task{}, fmt.Errorf("decoding task line %q: missing (by: ...)", line)
		}
		by, err := models.ParseDate(rest[i+len(byPrefix) : len(rest)-1])
		if err != nil {
			return models.Task{}, fmt.Errorf("decoding task line %q: %w", line, err)
		}
		task.By = by
		rest = rest[:i]

	case models.KindEvent:
		i := strings.LastIndex(rest, fromPrefix)
		if i < 0 || !strings.HasSuffix(rest, ")") {
			return models.Task{}, fmt.Errorf("decoding task line %q: missing (from: ... to: ...)", line)
		}
		span := rest[i+len(fromPrefix) : len(rest)-1]
		rawFrom, rawTo, found := strings.Cut(span, toInfix)
		if !found {
			return models.Task{}, fmt.Errorf("decoding task line %q: missing to: date", line)
		}
		from, err := models.ParseDate(rawFrom)
		if err != nil {
			return models.Task{}, fmt.Errorf("decoding task line %q: %w", line, err)
		}
		to, err := models.ParseDate(rawTo)
		if err != nil {
			return models.Task{}, fmt.Errorf("decoding task line %q: %w", line, err)
		}
		task.From, task.To = from, to
		rest = rest[:i]
	}

	task.Description = unescapeField(rest)
	if strings.TrimSpace(task.Description) == "" {
		return models.Task{}, fmt.Errorf("decoding task line %q: empty description", line)
	}
	return task, nil
}

// readOrCreate returns the file contents. A missing file is created empty
// together with its parent directory.
func readOrCreate(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		return data, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading tasks from %s: %w", path, err)
	}
	if err := writeFile(path, nil); err != nil {
		return nil, err
	}
	return nil, nil
}

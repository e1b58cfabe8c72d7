package core

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/valter-silva-au/primo/pkg/models"
)

// Parse turns one line of user input into a validated Command. It never
// touches task state; every failure is a *CommandError. Trailing line breaks
// are ignored; any other line break is rejected, since a task is stored as a
// single line.
func Parse(line string) (Command, error) {
	line = strings.TrimRight(line, "\r\n")
	if strings.ContainsAny(line, "\r\n") {
		return nil, newCommandError(ErrLineBreak, "One command per line please! Line breaks are not allowed.")
	}

	words := strings.Fields(line)
	if len(words) == 0 {
		return nil, unknownCommandError()
	}

	kind, ok := lookupCommandKind(words[0])
	if !ok {
		return nil, unknownCommandError()
	}

	switch kind {
	case CmdBye:
		return ByeCommand{}, nil
	case CmdList:
		return ListCommand{}, nil
	case CmdMark:
		i, err := parseIndex(kind, words)
		if err != nil {
			return nil, err
		}
		return MarkCommand{Index: i}, nil
	case CmdUnmark:
		i, err := parseIndex(kind, words)
		if err != nil {
			return nil, err
		}
		return UnmarkCommand{Index: i}, nil
	case CmdDelete:
		i, err := parseIndex(kind, words)
		if err != nil {
			return nil, err
		}
		return DeleteCommand{Index: i}, nil
	case CmdFind:
		if len(words) < 2 {
			return nil, newCommandError(ErrMissingArgument, "Invalid parameters! Expected find <string>")
		}
		return FindCommand{Keyword: words[1]}, nil
	case CmdTodo:
		return parseTodo(commandBody(line))
	case CmdDeadline:
		return parseDeadline(commandBody(line))
	case CmdEvent:
		return parseEvent(commandBody(line))
	}
	return nil, unknownCommandError()
}

func unknownCommandError() *CommandError {
	names := make([]string, len(commandKinds))
	for i, k := range commandKinds {
		names[i] = string(k)
	}
	return newCommandError(ErrUnknownCommand,
		"Invalid command!\n(Expected Commands: %s)\n\n(TIP: Try adding /n <note> at the back of command!)",
		strings.Join(names, ", "))
}

// commandBody returns everything after the command word.
func commandBody(line string) string {
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	i := strings.IndexFunc(trimmed, unicode.IsSpace)
	if i < 0 {
		return ""
	}
	return trimmed[i:]
}

// parseIndex reads the 1-based index argument of mark, unmark and delete and
// returns it zero-based. Range is checked later against the live list.
func parseIndex(kind CommandKind, words []string) (int, error) {
	if len(words) < 2 {
		return 0, newCommandError(ErrMissingArgument, "Invalid parameters! Expected %s <integer>", kind)
	}
	n, err := strconv.Atoi(words[1])
	if err != nil {
		return 0, newCommandError(ErrNonNumericIndex, "%s <integer> expected, got %q", kind, words[1])
	}
	return n - 1, nil
}

func parseTodo(body string) (Command, error) {
	seg := segment(body, markerNote)
	if seg.head == "" {
		return nil, newCommandError(ErrEmptyDescription, "Description cannot be empty! Expected: todo <string>")
	}
	return TodoCommand{Task: models.NewTodo(seg.head, seg.get(markerNote))}, nil
}

const deadlineUsage = "deadline <string> /by YYYY-MM-DD"

func parseDeadline(body string) (Command, error) {
	seg := segment(body, markerBy, markerNote)
	if !seg.has(markerBy) {
		return nil, newCommandError(ErrMissingMarker, "Invalid parameters! Expected: %s", deadlineUsage)
	}
	if seg.head == "" {
		return nil, newCommandError(ErrEmptyDescription, "Description cannot be empty! Expected: %s", deadlineUsage)
	}
	raw := seg.get(markerBy)
	if raw == "" {
		return nil, newCommandError(ErrEmptyField, "Deadline date cannot be empty! Expected: %s", deadlineUsage)
	}
	by, err := models.ParseDate(raw)
	if err != nil {
		return nil, newCommandError(ErrInvalidDateFormat, "Deadline %q is not a valid date in the form YYYY-MM-DD", raw)
	}
	return DeadlineCommand{Task: models.NewDeadline(seg.head, by, seg.get(markerNote))}, nil
}

const eventUsage = "event <string> /from YYYY-MM-DD /to YYYY-MM-DD"

func parseEvent(body string) (Command, error) {
	seg := segment(body, markerFrom, markerTo, markerNote)
	if !seg.has(markerFrom) || !seg.has(markerTo) {
		return nil, newCommandError(ErrMissingMarker, "Invalid parameters! Both /from and /to are required. Expected: %s", eventUsage)
	}
	if seg.head == "" {
		return nil, newCommandError(ErrEmptyDescription, "Description cannot be empty! Expected: %s", eventUsage)
	}
	rawFrom, rawTo := seg.get(markerFrom), seg.get(markerTo)
	if rawFrom == "" {
		return nil, newCommandError(ErrEmptyField, "'From' date cannot be empty! Expected: %s", eventUsage)
	}
	if rawTo == "" {
		return nil, newCommandError(ErrEmptyField, "'To' date cannot be empty! Expected: %s", eventUsage)
	}
	from, err := models.ParseDate(rawFrom)
	if err != nil {
		return nil, newCommandError(ErrInvalidDateFormat, "'From' date %q is not a valid date in the form YYYY-MM-DD", rawFrom)
	}
	to, err := models.ParseDate(rawTo)
	if err != nil {
		return nil, newCommandError(ErrInvalidDateFormat, "'To' date %q is not a valid date in the form YYYY-MM-DD", rawTo)
	}
	return EventCommand{Task: models.NewEvent(seg.head, from, to, seg.get(markerNote))}, nil
}

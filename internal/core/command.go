package core

import "github.com/valter-silva-au/primo/pkg/models"

// CommandKind names a command word.
type CommandKind string

const (
	CmdBye      CommandKind = "bye"
	CmdList     CommandKind = "list"
	CmdMark     CommandKind = "mark"
	CmdUnmark   CommandKind = "unmark"
	CmdTodo     CommandKind = "todo"
	CmdDeadline CommandKind = "deadline"
	CmdEvent    CommandKind = "event"
	CmdDelete   CommandKind = "delete"
	CmdFind     CommandKind = "find"
)

// commandKinds is the fixed command vocabulary, in the order shown to users.
var commandKinds = []CommandKind{
	CmdTodo, CmdDeadline, CmdEvent, CmdMark, CmdUnmark, CmdDelete, CmdList, CmdFind, CmdBye,
}

func lookupCommandKind(word string) (CommandKind, bool) {
	for _, k := range commandKinds {
		if string(k) == word {
			return k, true
		}
	}
	return "", false
}

// Command is a validated user intent. The set of implementations is closed:
// only this package can add one, and Session.Execute handles each of them.
type Command interface {
	Kind() CommandKind
	command()
}

// ByeCommand ends the session.
type ByeCommand struct{}

// ListCommand shows every task.
type ListCommand struct{}

// MarkCommand marks the task at the zero-based Index as done.
type MarkCommand struct{ Index int }

// UnmarkCommand marks the task at the zero-based Index as not done.
type UnmarkCommand struct{ Index int }

// DeleteCommand removes the task at the zero-based Index.
type DeleteCommand struct{ Index int }

// FindCommand lists tasks whose description contains Keyword.
type FindCommand struct{ Keyword string }

// TodoCommand appends a todo task.
type TodoCommand struct{ Task models.Task }

// DeadlineCommand appends a deadline task.
type DeadlineCommand struct{ Task models.Task }

// EventCommand appends an event task.
type EventCommand struct{ Task models.Task }

func (ByeCommand) Kind() CommandKind      { return CmdBye }
func (ListCommand) Kind() CommandKind     { return CmdList }
func (MarkCommand) Kind() CommandKind     { return CmdMark }
func (UnmarkCommand) Kind() CommandKind   { return CmdUnmark }
func (DeleteCommand) Kind() CommandKind   { return CmdDelete }
func (FindCommand) Kind() CommandKind     { return CmdFind }
func (TodoCommand) Kind() CommandKind     { return CmdTodo }
func (DeadlineCommand) Kind() CommandKind { return CmdDeadline }
func (EventCommand) Kind() CommandKind    { return CmdEvent }

func (ByeCommand) command()      {}
func (ListCommand) command()     {}
func (MarkCommand) command()     {}
func (UnmarkCommand) command()   {}
func (DeleteCommand) command()   {}
func (FindCommand) command()     {}
func (TodoCommand) command()     {}
func (DeadlineCommand) command() {}
func (EventCommand) command()    {}

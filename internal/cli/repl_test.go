package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/valter-silva-au/primo/pkg/models"
)

func TestREPL_GreetingAndBye(t *testing.T) {
	s := withSession(t)

	var out bytes.Buffer
	if err := runREPL(s, strings.NewReader("bye\ntodo never runs\n"), &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := out.String()
	if !strings.HasPrefix(text, "El Primo:\nHello! I'm El Primo!!\nWhat can I do for you?\nCurrent Tasks:\n") {
		t.Errorf("unexpected greeting:\n%s", text)
	}
	if !strings.Contains(text, "Bye. Hope to see you again soon!") {
		t.Errorf("missing bye reply:\n%s", text)
	}
	if s.Len() != 0 {
		t.Error("lines after bye must not be executed")
	}
}

func TestREPL_CustomName(t *testing.T) {
	s := withSession(t)
	AppConfig = &models.Config{Assistant: models.AssistantConfig{Name: "Jarvis"}}

	var out bytes.Buffer
	if err := runREPL(s, strings.NewReader("bye\n"), &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Hello! I'm Jarvis!!") || !strings.Contains(out.String(), "Jarvis:") {
		t.Errorf("assistant name not used:\n%s", out.String())
	}
}

func TestREPL_ErrorsDoNotStopLoop(t *testing.T) {
	s := withSession(t)

	input := strings.Join([]string{
		"blah",
		"mark 1",
		"deadline report /by tomorrow",
		"",
		"todo read book",
		"list",
	}, "\n")

	var out bytes.Buffer
	if err := runREPL(s, strings.NewReader(input), &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := out.String()
	if !strings.Contains(text, "Please select within the indexes of the tasklist!") {
		t.Errorf("missing out-of-range message:\n%s", text)
	}
	if !strings.Contains(text, "1.[T][ ] read book") {
		t.Errorf("later commands should still run:\n%s", text)
	}
	if !s.Running() {
		t.Error("end of input without bye leaves the session running")
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestREPL_BlankLineIsRejected(t *testing.T) {
	s := withSession(t)

	var out bytes.Buffer
	if err := runREPL(s, strings.NewReader("\n   \nbye\n"), &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := strings.Count(out.String(), "Invalid command!"); n != 2 {
		t.Errorf("got %d invalid command replies, want 2:\n%s", n, out.String())
	}
	if s.Running() {
		t.Error("bye after blank lines should still end the session")
	}
}

func TestWriteReply_CommandError(t *testing.T) {
	_, err := withSession(t).Handle("mark abc")
	var out bytes.Buffer
	writeReply(&out, nil, err)
	if strings.Contains(out.String(), "Warning:") {
		t.Errorf("command errors are not warnings: %q", out.String())
	}
	if !strings.Contains(out.String(), "mark <integer> expected") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestREPL_ShowsLoadWarning(t *testing.T) {
	s := withSession(t)
	LoadErr = errors.New("loading tasks: skipped 1 corrupt entries (3)")

	var out bytes.Buffer
	if err := runREPL(s, strings.NewReader(""), &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Warning: loading tasks") {
		t.Errorf("missing load warning:\n%s", out.String())
	}
}

func TestWriteReply_SaveFailure(t *testing.T) {
	var out bytes.Buffer
	writeReply(&out, nil, errors.New("saving tasks: disk full"))
	if !strings.Contains(out.String(), "Warning: saving tasks: disk full") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

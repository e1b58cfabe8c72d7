package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/valter-silva-au/primo/internal/core"
	"github.com/valter-silva-au/primo/internal/observability"
	"github.com/valter-silva-au/primo/pkg/models"
)

// --- Fakes ---

type fakeMetricsCalculator struct {
	metrics *observability.Metrics
	err     error
}

func (f *fakeMetricsCalculator) Calculate(_ time.Time) (*observability.Metrics, error) {
	return f.metrics, f.err
}

type failingStore struct{}

func (failingStore) Load() ([]models.Task, error) { return nil, nil }
func (failingStore) Save([]models.Task) error     { return errors.New("disk full") }

func newSession(t *testing.T, lines ...string) *core.Session {
	t.Helper()
	s := core.NewSession(nil, nil)
	for _, line := range lines {
		if _, err := s.Handle(line); err != nil {
			t.Fatalf("Handle(%q): %v", line, err)
		}
	}
	return s
}

// callTool connects a client to the server and calls a tool.
func callTool(t *testing.T, srv *Server, toolName string, args map[string]any) *gomcp.CallToolResult {
	t.Helper()
	result, err := tryCallTool(t, srv, toolName, args)
	if err != nil {
		t.Fatalf("call tool %s: %v", toolName, err)
	}
	return result
}

func tryCallTool(t *testing.T, srv *Server, toolName string, args map[string]any) (*gomcp.CallToolResult, error) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := gomcp.NewClient(&gomcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	t1, t2 := gomcp.NewInMemoryTransports()

	go func() {
		_ = srv.MCPServer().Run(ctx, t1)
	}()

	session, err := client.Connect(ctx, t2, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	defer session.Close()

	return session.CallTool(ctx, &gomcp.CallToolParams{
		Name:      toolName,
		Arguments: args,
	})
}

// decodeOutput reads the tool's structured output, falling back to the text
// content.
func decodeOutput(t *testing.T, result *gomcp.CallToolResult, out any) {
	t.Helper()
	if result.StructuredContent != nil {
		data, err := json.Marshal(result.StructuredContent)
		if err != nil {
			t.Fatalf("marshalling structured content: %v", err)
		}
		if err := json.Unmarshal(data, out); err != nil {
			t.Fatalf("unmarshalling structured content: %v", err)
		}
		return
	}
	text := extractText(result)
	if err := json.Unmarshal([]byte(text), out); err != nil {
		t.Fatalf("unmarshalling output: %v (text was: %s)", err, text)
	}
}

func extractText(result *gomcp.CallToolResult) string {
	for _, c := range result.Content {
		if tc, ok := c.(*gomcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

// --- Tests ---

func TestRunCommand_AddsTask(t *testing.T) {
	session := newSession(t)
	srv := NewServer(session, nil, "test")

	result := callTool(t, srv, "run_command", map[string]any{"command": "deadline return book /by 2024-12-01"})
	if result.IsError {
		t.Fatalf("expected success, got error: %s", extractText(result))
	}

	var out runCommandOutput
	decodeOutput(t, result, &out)
	if out.Command != "deadline" {
		t.Errorf("command = %q, want deadline", out.Command)
	}
	if !strings.Contains(out.Reply, "[D][ ] return book (by: 2024-12-01)") {
		t.Errorf("unexpected reply: %q", out.Reply)
	}
	if session.Len() != 1 {
		t.Errorf("session has %d tasks, want 1", session.Len())
	}
}

func TestRunCommand_CommandError(t *testing.T) {
	srv := NewServer(newSession(t, "todo a"), nil, "test")

	result := callTool(t, srv, "run_command", map[string]any{"command": "mark two"})
	if !result.IsError {
		t.Fatal("expected error result for non-numeric index")
	}
	if extractText(result) == "" {
		t.Fatal("expected error message in result content")
	}
}

func TestRunCommand_RejectsLineBreaks(t *testing.T) {
	session := newSession(t, "todo a")
	srv := NewServer(session, nil, "test")

	result := callTool(t, srv, "run_command", map[string]any{"command": "todo first\nsecond"})
	if !result.IsError {
		t.Fatal("expected error result for a multi-line command")
	}
	if !strings.Contains(extractText(result), "Line breaks") {
		t.Errorf("unexpected message: %q", extractText(result))
	}
	if session.Len() != 1 {
		t.Errorf("Len = %d, want 1", session.Len())
	}
}

func TestRunCommand_Empty(t *testing.T) {
	srv := NewServer(newSession(t), nil, "test")

	result, err := tryCallTool(t, srv, "run_command", map[string]any{"command": "   "})
	if err != nil {
		return
	}
	if !result.IsError {
		t.Fatal("expected error result for blank command")
	}
}

func TestRunCommand_SaveFailureIsWarning(t *testing.T) {
	srv := NewServer(core.NewSession(failingStore{}, nil), nil, "test")

	result := callTool(t, srv, "run_command", map[string]any{"command": "todo a"})
	if result.IsError {
		t.Fatalf("expected success with warning, got error: %s", extractText(result))
	}
	var out runCommandOutput
	decodeOutput(t, result, &out)
	if !strings.Contains(out.Warning, "disk full") {
		t.Errorf("warning = %q, want save failure", out.Warning)
	}
}

func TestRunCommand_ListReturnsTasks(t *testing.T) {
	srv := NewServer(newSession(t, "todo a", "event b /from 2024-01-01 /to 2024-01-02"), nil, "test")

	result := callTool(t, srv, "run_command", map[string]any{"command": "list"})
	var out runCommandOutput
	decodeOutput(t, result, &out)
	if len(out.Tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(out.Tasks))
	}
	if out.Tasks[1].From != "2024-01-01" || out.Tasks[1].To != "2024-01-02" {
		t.Errorf("unexpected event dates: %+v", out.Tasks[1])
	}
}

func TestListTasks(t *testing.T) {
	srv := NewServer(newSession(t, "todo a /n first", "todo b", "mark 2"), nil, "test")

	result := callTool(t, srv, "list_tasks", map[string]any{})
	if result.IsError {
		t.Fatalf("expected success, got error: %s", extractText(result))
	}

	var out listTasksOutput
	decodeOutput(t, result, &out)
	if out.Count != 2 {
		t.Fatalf("expected 2 tasks, got %d", out.Count)
	}
	if out.Tasks[0].Index != 1 || out.Tasks[0].Note != "first" {
		t.Errorf("unexpected first task: %+v", out.Tasks[0])
	}
	if !out.Tasks[1].Done || out.Tasks[1].Display != "[T][X] b" {
		t.Errorf("unexpected second task: %+v", out.Tasks[1])
	}
}

func TestListTasksEmpty(t *testing.T) {
	srv := NewServer(newSession(t), nil, "test")

	result := callTool(t, srv, "list_tasks", map[string]any{})
	var out listTasksOutput
	decodeOutput(t, result, &out)
	if out.Count != 0 || len(out.Tasks) != 0 {
		t.Errorf("expected empty list, got %+v", out)
	}
}

func TestFindTasks(t *testing.T) {
	srv := NewServer(newSession(t, "todo read book", "todo buy milk", "todo return book"), nil, "test")

	result := callTool(t, srv, "find_tasks", map[string]any{"keyword": "book"})
	var out listTasksOutput
	decodeOutput(t, result, &out)
	if out.Count != 2 {
		t.Fatalf("expected 2 matches, got %d", out.Count)
	}
	if out.Tasks[0].Description != "read book" || out.Tasks[1].Description != "return book" {
		t.Errorf("unexpected matches: %+v", out.Tasks)
	}
	if out.Tasks[1].Index != 2 {
		t.Errorf("matches should be numbered 1..k, got %d", out.Tasks[1].Index)
	}
}

func TestFindTasksMissingKeyword(t *testing.T) {
	srv := NewServer(newSession(t), nil, "test")

	// The SDK may reject the call at the schema level before the handler runs.
	result, err := tryCallTool(t, srv, "find_tasks", map[string]any{})
	if err != nil {
		return
	}
	if !result.IsError {
		t.Fatal("expected error result for missing keyword")
	}
}

func TestGetStats(t *testing.T) {
	now := time.Now().UTC()
	mc := &fakeMetricsCalculator{
		metrics: &observability.Metrics{
			TasksAdded:     5,
			TasksCompleted: 3,
			TasksByType:    map[string]int{"todo": 3, "event": 2},
			CommandsFailed: 1,
			FailuresByKind: map[string]int{"unknown_command": 1},
			EventCount:     42,
			OldestEvent:    &now,
			NewestEvent:    &now,
		},
	}
	srv := NewServer(newSession(t), mc, "test")

	result := callTool(t, srv, "get_stats", map[string]any{"since": "30d"})
	if result.IsError {
		t.Fatalf("expected success, got error: %s", extractText(result))
	}

	var out statsOutput
	decodeOutput(t, result, &out)
	if out.TasksAdded != 5 {
		t.Errorf("expected 5 tasks added, got %d", out.TasksAdded)
	}
	if out.EventCount != 42 {
		t.Errorf("expected 42 events, got %d", out.EventCount)
	}
	if out.FailuresByKind["unknown_command"] != 1 {
		t.Errorf("unexpected failures: %v", out.FailuresByKind)
	}
}

func TestGetStatsDisabled(t *testing.T) {
	srv := NewServer(newSession(t), nil, "test")

	result := callTool(t, srv, "get_stats", map[string]any{})
	if !result.IsError {
		t.Fatal("expected error when metrics calculator is nil")
	}
}

func TestGetStatsBadSince(t *testing.T) {
	mc := &fakeMetricsCalculator{metrics: &observability.Metrics{}}
	srv := NewServer(newSession(t), mc, "test")

	result := callTool(t, srv, "get_stats", map[string]any{"since": "7w"})
	if !result.IsError {
		t.Fatal("expected error for unsupported duration")
	}
}

func TestParseSince(t *testing.T) {
	before := time.Now().UTC()

	got, err := ParseSince("7d")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := before.AddDate(0, 0, -7)
	if got.Sub(want) < 0 || got.Sub(want) > time.Minute {
		t.Errorf("ParseSince(7d) = %v, want about %v", got, want)
	}

	if _, err := ParseSince("24h"); err != nil {
		t.Errorf("ParseSince(24h): %v", err)
	}
	for _, bad := range []string{"", "d", "xd", "7w", "-3d"} {
		if _, err := ParseSince(bad); err == nil {
			t.Errorf("ParseSince(%q): expected error", bad)
		}
	}
}

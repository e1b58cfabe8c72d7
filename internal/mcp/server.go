// Package mcp exposes a primo task session as MCP (Model Context Protocol)
// tools so assistants can read and edit the task list.
package mcp

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/valter-silva-au/primo/internal/core"
	"github.com/valter-silva-au/primo/internal/observability"
	"github.com/valter-silva-au/primo/pkg/models"
)

// TaskSession is the part of core.Session the server drives.
type TaskSession interface {
	Handle(line string) (*core.Result, error)
	Execute(cmd core.Command) (*core.Result, error)
}

// Server wraps a task session and exposes it as MCP tools.
type Server struct {
	server      *gomcp.Server
	metricsCalc observability.MetricsCalculator

	// mu serialises tool calls; the session itself is not safe for
	// concurrent use.
	mu      sync.Mutex
	session TaskSession
}

// NewServer creates an MCP server over session. metricsCalc may be nil when
// event logging is disabled.
func NewServer(session TaskSession, metricsCalc observability.MetricsCalculator, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{
		session:     session,
		metricsCalc: metricsCalc,
	}
	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "primo", Version: version},
		nil,
	)
	s.registerTools()
	return s
}

// Run serves on stdio until the client disconnects or ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type runCommandInput struct {
	Command string `json:"command" jsonschema:"required,a primo command line such as 'todo read book' or 'deadline report /by 2024-12-01'"`
}

type taskOutput struct {
	Index       int    `json:"index"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Done        bool   `json:"done"`
	Note        string `json:"note,omitempty"`
	By          string `json:"by,omitempty"`
	From        string `json:"from,omitempty"`
	To          string `json:"to,omitempty"`
	Display     string `json:"display"`
}

type runCommandOutput struct {
	Command string       `json:"command"`
	Reply   string       `json:"reply"`
	Tasks   []taskOutput `json:"tasks,omitempty"`
	Warning string       `json:"warning,omitempty"`
}

type listTasksInput struct{}

type listTasksOutput struct {
	Tasks []taskOutput `json:"tasks"`
	Count int          `json:"count"`
}

type findTasksInput struct {
	Keyword string `json:"keyword" jsonschema:"required,case-sensitive text to look for in task descriptions"`
}

type getStatsInput struct {
	Since string `json:"since,omitempty" jsonschema:"time window (e.g. 7d, 30d, 24h). Defaults to 7d."`
}

type statsOutput struct {
	TasksAdded      int            `json:"tasks_added"`
	TasksCompleted  int            `json:"tasks_completed"`
	TasksReopened   int            `json:"tasks_reopened"`
	TasksDeleted    int            `json:"tasks_deleted"`
	TasksByType     map[string]int `json:"tasks_by_type"`
	CommandsFailed  int            `json:"commands_failed"`
	FailuresByKind  map[string]int `json:"failures_by_kind"`
	StorageFailures int            `json:"storage_failures"`
	Sessions        int            `json:"sessions"`
	EventCount      int            `json:"event_count"`
	OldestEvent     string         `json:"oldest_event,omitempty"`
	NewestEvent     string         `json:"newest_event,omitempty"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "run_command",
		Description: "Run one primo command line (todo, deadline, event, mark, unmark, delete, list, find, bye) and return the reply.",
	}, s.handleRunCommand)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "list_tasks",
		Description: "List every task in order with its 1-based index.",
	}, s.handleListTasks)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "find_tasks",
		Description: "Find tasks whose description contains the keyword (case-sensitive).",
	}, s.handleFindTasks)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_stats",
		Description: "Get usage statistics from the event log: tasks added, completed, deleted and failed commands.",
	}, s.handleGetStats)
}

// --- Tool handlers ---

func (s *Server) handleRunCommand(_ context.Context, _ *gomcp.CallToolRequest, input runCommandInput) (*gomcp.CallToolResult, runCommandOutput, error) {
	if strings.TrimSpace(input.Command) == "" {
		return errorResult("command is required"), runCommandOutput{}, nil
	}

	s.mu.Lock()
	res, err := s.session.Handle(input.Command)
	s.mu.Unlock()

	if res == nil {
		return errorResult(err.Error()), runCommandOutput{}, nil
	}

	out := runCommandOutput{
		Command: string(res.Command),
		Reply:   res.Text(),
	}
	if res.Command == core.CmdList || res.Command == core.CmdFind {
		out.Tasks = tasksToOutput(res.Tasks)
	}
	if err != nil {
		out.Warning = err.Error()
	}
	return nil, out, nil
}

func (s *Server) handleListTasks(_ context.Context, _ *gomcp.CallToolRequest, _ listTasksInput) (*gomcp.CallToolResult, listTasksOutput, error) {
	s.mu.Lock()
	res, err := s.session.Execute(core.ListCommand{})
	s.mu.Unlock()
	if err != nil {
		return errorResult(fmt.Sprintf("listing tasks: %s", err)), listTasksOutput{}, nil
	}

	out := listTasksOutput{
		Tasks: tasksToOutput(res.Tasks),
		Count: len(res.Tasks),
	}
	return nil, out, nil
}

func (s *Server) handleFindTasks(_ context.Context, _ *gomcp.CallToolRequest, input findTasksInput) (*gomcp.CallToolResult, listTasksOutput, error) {
	keyword := strings.TrimSpace(input.Keyword)
	if keyword == "" {
		return errorResult("keyword is required"), listTasksOutput{}, nil
	}

	s.mu.Lock()
	res, err := s.session.Execute(core.FindCommand{Keyword: keyword})
	s.mu.Unlock()
	if err != nil {
		return errorResult(fmt.Sprintf("finding tasks: %s", err)), listTasksOutput{}, nil
	}

	out := listTasksOutput{
		Tasks: tasksToOutput(res.Tasks),
		Count: len(res.Tasks),
	}
	return nil, out, nil
}

func (s *Server) handleGetStats(_ context.Context, _ *gomcp.CallToolRequest, input getStatsInput) (*gomcp.CallToolResult, statsOutput, error) {
	if s.metricsCalc == nil {
		return errorResult("statistics not available (event logging may be disabled)"), emptyStatsOutput(), nil
	}

	sinceStr := input.Since
	if sinceStr == "" {
		sinceStr = "7d"
	}
	sinceTime, err := ParseSince(sinceStr)
	if err != nil {
		return errorResult(fmt.Sprintf("parsing since duration: %s", err)), emptyStatsOutput(), nil
	}

	m, err := s.metricsCalc.Calculate(sinceTime)
	if err != nil {
		return errorResult(fmt.Sprintf("calculating statistics: %s", err)), emptyStatsOutput(), nil
	}

	out := statsOutput{
		TasksAdded:      m.TasksAdded,
		TasksCompleted:  m.TasksCompleted,
		TasksReopened:   m.TasksReopened,
		TasksDeleted:    m.TasksDeleted,
		TasksByType:     m.TasksByType,
		CommandsFailed:  m.CommandsFailed,
		FailuresByKind:  m.FailuresByKind,
		StorageFailures: m.StorageFailures,
		Sessions:        m.Sessions,
		EventCount:      m.EventCount,
	}
	if m.OldestEvent != nil {
		out.OldestEvent = m.OldestEvent.Format(time.RFC3339)
	}
	if m.NewestEvent != nil {
		out.NewestEvent = m.NewestEvent.Format(time.RFC3339)
	}
	return nil, out, nil
}

// --- Helpers ---

func tasksToOutput(tasks []models.Task) []taskOutput {
	out := make([]taskOutput, len(tasks))
	for i, t := range tasks {
		out[i] = taskToOutput(i+1, t)
	}
	return out
}

func taskToOutput(index int, t models.Task) taskOutput {
	out := taskOutput{
		Index:       index,
		Type:        string(t.Kind),
		Description: t.Description,
		Done:        t.Done,
		Note:        t.Note,
		Display:     t.String(),
	}
	switch t.Kind {
	case models.KindDeadline:
		out.By = models.FormatDate(t.By)
	case models.KindEvent:
		out.From = models.FormatDate(t.From)
		out.To = models.FormatDate(t.To)
	}
	return out
}

func emptyStatsOutput() statsOutput {
	return statsOutput{
		TasksByType:    make(map[string]int),
		FailuresByKind: make(map[string]int),
	}
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}

// ParseSince turns a window like "7d" or "24h" into the instant that far in
// the past.
func ParseSince(s string) (time.Time, error) {
	now := time.Now().UTC()

	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return time.Time{}, fmt.Errorf("invalid duration %q", s)
	}

	suffix := s[len(s)-1]
	var num int
	if _, err := fmt.Sscanf(s[:len(s)-1], "%d", &num); err != nil {
		return time.Time{}, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if num < 0 {
		return time.Time{}, fmt.Errorf("invalid duration %q: must not be negative", s)
	}

	switch suffix {
	case 'd':
		return now.AddDate(0, 0, -num), nil
	case 'h':
		return now.Add(-time.Duration(num) * time.Hour), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported duration suffix %q (use d or h)", string(suffix))
	}
}

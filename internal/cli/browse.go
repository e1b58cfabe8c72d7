package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/valter-silva-au/primo/internal/core"
	"github.com/valter-silva-au/primo/pkg/models"
)

type browseMode int

const (
	modeList browseMode = iota
	modeInput
)

type browseModel struct {
	session *core.Session
	tasks   []models.Task
	cursor  int
	mode    browseMode
	input   textinput.Model

	status    string
	statusErr bool
	width     int
	height    int
}

func newBrowseModel(session *core.Session) browseModel {
	ti := textinput.New()
	ti.Prompt = ": "
	ti.Placeholder = "todo read book /n chapter 3"
	ti.CharLimit = 256

	return browseModel{
		session: session,
		tasks:   session.Tasks(),
		input:   ti,
	}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.mode == modeInput {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m browseModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case " ":
		if len(m.tasks) == 0 {
			return m, nil
		}
		verb := "mark"
		if m.tasks[m.cursor].Done {
			verb = "unmark"
		}
		m = m.run(fmt.Sprintf("%s %d", verb, m.cursor+1))
	case "d":
		if len(m.tasks) == 0 {
			return m, nil
		}
		m = m.run(fmt.Sprintf("delete %d", m.cursor+1))
	case ":":
		m.mode = modeInput
		m.input.Reset()
		return m, m.input.Focus()
	}
	return m, nil
}

func (m browseModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeList
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		line := m.input.Value()
		m.mode = modeList
		m.input.Blur()
		m.input.Reset()
		if strings.TrimSpace(line) == "" {
			return m, nil
		}
		m = m.run(line)
		if !m.session.Running() {
			return m, tea.Quit
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// run executes one command line against the session and refreshes the view.
func (m browseModel) run(line string) browseModel {
	res, err := m.session.Handle(line)

	m.tasks = m.session.Tasks()
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	m.statusErr = err != nil
	switch {
	case core.IsCommandError(err):
		m.status = err.Error()
	case err != nil:
		m.status = "Warning: " + err.Error()
	case res != nil && len(res.Lines) > 0:
		m.status = res.Lines[0]
	default:
		m.status = ""
	}
	return m
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf(" %s's tasks ", assistantName())))
	b.WriteString("\n\n")

	if len(m.tasks) == 0 {
		b.WriteString("  There are no tasks in your list.\n")
	}
	for i, t := range m.tasks {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		line := fmt.Sprintf("%d.%s", i+1, t)
		if t.Done {
			line = doneStyle.Render(line)
		} else {
			line = todoStyle.Render(line)
		}
		b.WriteString(cursor + line + "\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		if m.statusErr {
			b.WriteString(errorStyle.Render(m.status))
		} else {
			b.WriteString(m.status)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.mode == modeInput {
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter: run | esc: cancel"))
	} else {
		b.WriteString(helpStyle.Render("j/k: move | space: toggle done | d: delete | :: command | q: quit"))
	}
	return b.String()
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse and edit tasks in an interactive list",
	Long: `Launch a terminal list of your tasks.

Move with up/down or j/k, toggle done with space, delete with d, type any
primo command after ':' and quit with q.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession()
		if err != nil {
			return err
		}
		p := tea.NewProgram(newBrowseModel(session), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/paddock-dev/paddock/internal/engine"
)

// Action is what the user picked for a sandbox.
type Action int

const (
	ActionNone Action = iota
	ActionRun
	ActionOpen
	ActionRemove
	ActionQuit
)

// PickerResult holds the selected action and, except for quit, the sandbox
// it applies to.
type PickerResult struct {
	Action  Action
	Sandbox *engine.SandboxInfo
}

// sandboxItem implements list.Item for sandbox display.
type sandboxItem struct {
	info engine.SandboxInfo
}

func (i sandboxItem) Title() string {
	return i.info.Name
}

func (i sandboxItem) Description() string {
	statusIcon := "●"
	switch i.info.Status {
	case "ready":
		statusIcon = "✓"
	case "missing":
		statusIcon = "✗"
	}

	tree := "clean"
	if i.info.Dirty == nil {
		tree = "?"
	} else if *i.info.Dirty {
		tree = "dirty"
	}

	sync := "no upstream"
	if i.info.Ahead != nil && i.info.Behind != nil {
		sync = fmt.Sprintf("+%d/-%d", *i.info.Ahead, *i.info.Behind)
	}

	return fmt.Sprintf("%s %s | %s | %s | %s | %s",
		statusIcon,
		i.info.Agent,
		i.info.Branch,
		tree,
		sync,
		truncatePath(i.info.Path, 30),
	)
}

func (i sandboxItem) FilterValue() string {
	return i.info.Name
}

func truncatePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	return "..." + path[len(path)-maxLen+3:]
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)
)

// Model is the bubbletea model for the sandbox picker.
type Model struct {
	list     list.Model
	result   PickerResult
	quitting bool
	width    int
	height   int
}

// NewPicker creates a picker over the given sandboxes.
func NewPicker(sandboxes []engine.SandboxInfo) Model {
	items := make([]list.Item, len(sandboxes))
	for i, info := range sandboxes {
		items[i] = sandboxItem{info: info}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	l := list.New(items, delegate, 80, 20)
	l.Title = "paddock - Select Sandbox"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return Model{list: l}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		// Don't handle keys if filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter", "r":
			if item, ok := m.list.SelectedItem().(sandboxItem); ok {
				m.result = PickerResult{Action: ActionRun, Sandbox: &item.info}
				m.quitting = true
				return m, tea.Quit
			}

		case "o":
			if item, ok := m.list.SelectedItem().(sandboxItem); ok {
				m.result = PickerResult{Action: ActionOpen, Sandbox: &item.info}
				m.quitting = true
				return m, tea.Quit
			}

		case "x":
			if item, ok := m.list.SelectedItem().(sandboxItem); ok {
				m.result = PickerResult{Action: ActionRemove, Sandbox: &item.info}
				m.quitting = true
				return m, tea.Quit
			}

		case "q", "esc":
			m.result = PickerResult{Action: ActionQuit}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render("[enter] Run  [o] Open shell  [x] Remove  [/] Filter  [q] Quit")

	return m.list.View() + "\n" + help
}

// Result returns the picker result.
func (m Model) Result() PickerResult {
	return m.result
}

// RunPicker runs the interactive sandbox picker.
func RunPicker(sandboxes []engine.SandboxInfo) (PickerResult, error) {
	if len(sandboxes) == 0 {
		return PickerResult{Action: ActionQuit}, nil
	}

	m := NewPicker(sandboxes)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return PickerResult{}, err
	}

	return finalModel.(Model).Result(), nil
}

// Summary renders a non-interactive listing for terminals that cannot run
// the picker.
func Summary(sandboxes []engine.SandboxInfo) string {
	var sb strings.Builder

	sb.WriteString("paddock - Sandboxes\n")
	sb.WriteString(strings.Repeat("─", 60) + "\n\n")

	if len(sandboxes) == 0 {
		sb.WriteString("No sandboxes tracked.\n")
		sb.WriteString("Create one with: paddock create <name>\n")
		return sb.String()
	}

	for i, info := range sandboxes {
		statusIcon := "✗"
		if info.Status == "ready" {
			statusIcon = "✓"
		}
		sb.WriteString(fmt.Sprintf("%d. %s %s (%s)\n",
			i+1, statusIcon, info.Name, info.Agent))
		sb.WriteString(fmt.Sprintf("   Branch: %s | Path: %s\n\n",
			info.Branch, truncatePath(info.Path, 40)))
	}

	return sb.String()
}

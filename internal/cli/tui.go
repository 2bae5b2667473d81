package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wayfare/wayfare/pkg/config"
	"github.com/wayfare/wayfare/pkg/editor"
	"github.com/wayfare/wayfare/pkg/workflow"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listMovingStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
)

// moveStep is how far one arrow press shifts a node in move mode.
const moveStep = 20.0

// typeCycle is the order in which 't' rotates a node's type.
var typeCycle = []workflow.NodeType{
	workflow.TypeAttraction,
	workflow.TypeMeal,
	workflow.TypeTransit,
	workflow.TypeHotel,
	workflow.TypeFreeTime,
	workflow.TypeDecision,
}

// =============================================================================
// EditorModel - Interactive Day Graph Editing
// =============================================================================

// EditorModel is the bubbletea model for the interactive graph editor. It
// wraps an Editor and translates key presses into mutations; the node move
// interaction runs through a MoveGesture so a whole arrow-key sequence
// commits as one undoable step.
type EditorModel struct {
	editor  *editor.Editor
	gesture *editor.MoveGesture
	output  string

	cursor int
	status string
	saved  bool
}

// NewEditorModel creates an editor model over the given day graphs.
func NewEditorModel(days []workflow.Day, cfg config.Config, output string) EditorModel {
	ed := editor.New(days,
		editor.WithValidateOptions(cfg.ValidateOptions()),
		editor.WithLayoutOptions(cfg.LayoutOptions()),
		editor.WithHistoryLimit(cfg.Editor.HistoryLimit),
	)
	return EditorModel{
		editor:  ed,
		gesture: editor.NewMoveGesture(ed),
		output:  output,
		saved:   true,
	}
}

// runEditorTUI runs the interactive editor until the user quits.
func runEditorTUI(days []workflow.Day, cfg config.Config, output string) error {
	m := NewEditorModel(days, cfg, output)
	_, err := tea.NewProgram(m).Run()
	return err
}

func (m EditorModel) Init() tea.Cmd {
	return nil
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.gesture.Dragging() {
		return m.updateMoving(key), nil
	}
	return m.updateBrowsing(key)
}

// updateBrowsing handles keys in the normal (non-moving) state.
func (m EditorModel) updateBrowsing(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	day, _ := m.editor.Day(m.editor.ActiveDay())

	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(day.Nodes)-1 {
			m.cursor++
		}

	case "tab":
		m.nextDay()
		m.cursor = 0

	case "a":
		m.editor.AddNode(day.DayNumber, workflow.TypeAttraction, workflow.Position{})
		m.editor.AutoLayout(day.DayNumber)
		m.touch("added node")

	case "t":
		if n, ok := m.selectedNode(day); ok {
			next := nextType(n.Type)
			m.editor.UpdateNode(day.DayNumber, n.ID, editor.Patch{Type: &next})
			m.touch("type: " + next.Label())
		}

	case "x":
		if n, ok := m.selectedNode(day); ok {
			m.editor.DeleteNode(day.DayNumber, n.ID)
			if m.cursor >= len(day.Nodes)-1 && m.cursor > 0 {
				m.cursor--
			}
			m.touch("deleted " + n.Title)
		}

	case "e":
		if n, ok := m.selectedNode(day); ok && m.cursor+1 < len(day.Nodes) {
			m.editor.Connect(day.DayNumber, n.ID, day.Nodes[m.cursor+1].ID)
			m.touch("connected")
		}

	case "m":
		if n, ok := m.selectedNode(day); ok {
			m.gesture.Begin(day.DayNumber, n.ID)
			m.status = "moving " + n.Title
		}

	case "l":
		m.editor.AutoLayout(day.DayNumber)
		m.touch("layout applied")

	case "u":
		if m.editor.CanUndo() {
			m.editor.Undo()
			m.touch("undo")
		}
	case "r":
		if m.editor.CanRedo() {
			m.editor.Redo()
			m.touch("redo")
		}

	case "s":
		if err := workflow.WriteDaysFile(m.editor.Days(), m.output); err != nil {
			m.status = "save failed: " + err.Error()
		} else {
			m.status = "saved " + m.output
			m.saved = true
		}
	}

	return m, nil
}

// updateMoving handles keys while a move gesture is in flight.
func (m EditorModel) updateMoving(key tea.KeyMsg) EditorModel {
	pos := m.gesture.Position()

	switch key.String() {
	case "up", "k":
		pos.Y -= moveStep
		m.gesture.Track(pos)
	case "down", "j":
		pos.Y += moveStep
		m.gesture.Track(pos)
	case "left", "h":
		pos.X -= moveStep
		m.gesture.Track(pos)
	case "right", "l":
		pos.X += moveStep
		m.gesture.Track(pos)
	case "enter":
		m.gesture.Commit()
		m.touch("moved")
	case "esc", "q", "ctrl+c":
		m.gesture.Cancel()
		m.status = "move cancelled"
	}

	return m
}

func (m EditorModel) View() string {
	day, ok := m.editor.Day(m.editor.ActiveDay())
	if !ok {
		return StyleDim.Render("no days to edit\n")
	}

	var b strings.Builder

	title := fmt.Sprintf("Day %d", day.DayNumber)
	if day.Date != "" {
		title += "  " + day.Date
	}
	b.WriteString(StyleTitle.Render(title))
	if !m.saved {
		b.WriteString(" " + StyleWarning.Render("•"))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  a add  t type  x delete  e connect  m move  l layout  u/r undo/redo  s save  q quit"))
	b.WriteString("\n\n")

	for i, n := range day.Nodes {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%s%s %s  %-30s %s  %3dm",
			cursor, statusIcon(n.Validation.Status), n.Start, n.Title, n.Type.Label(), n.DurationMinutes)

		switch {
		case m.gesture.Dragging() && n.ID == m.gesture.NodeID():
			pos := m.gesture.Position()
			b.WriteString(listMovingStyle.Render(line))
			b.WriteString(listDimStyle.Render(fmt.Sprintf("  (%.0f, %.0f)", pos.X, pos.Y)))
		case i == m.cursor:
			b.WriteString(listSelectedStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")

		if i == m.cursor {
			for _, msg := range n.Validation.Messages {
				b.WriteString("      " + StyleWarning.Render(msg) + "\n")
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(m.footer(day))

	return b.String()
}

// footer renders the status line: edge count, undo/redo availability, and
// the last action.
func (m EditorModel) footer(day workflow.Day) string {
	parts := []string{fmt.Sprintf("%d nodes", len(day.Nodes))}
	if len(day.Edges) > 0 {
		parts = append(parts, fmt.Sprintf("%d edges", len(day.Edges)))
	}
	if m.editor.CanUndo() {
		parts = append(parts, "undo available")
	}
	if m.editor.CanRedo() {
		parts = append(parts, "redo available")
	}
	line := listDimStyle.Render("  " + strings.Join(parts, " · "))
	if m.status != "" {
		line += "\n" + listDimStyle.Render("  "+m.status)
	}
	return line
}

// =============================================================================
// Helpers
// =============================================================================

func (m *EditorModel) selectedNode(day workflow.Day) (workflow.Node, bool) {
	if m.cursor < 0 || m.cursor >= len(day.Nodes) {
		return workflow.Node{}, false
	}
	return day.Nodes[m.cursor], true
}

func (m *EditorModel) touch(status string) {
	m.status = status
	m.saved = false
}

// nextDay cycles the active day forward, wrapping at the end.
func (m *EditorModel) nextDay() {
	days := m.editor.Days()
	if len(days) < 2 {
		return
	}
	cur := m.editor.ActiveDay()
	for i, d := range days {
		if d.DayNumber == cur {
			m.editor.SetActiveDay(days[(i+1)%len(days)].DayNumber)
			return
		}
	}
}

func nextType(t workflow.NodeType) workflow.NodeType {
	for i, c := range typeCycle {
		if c == t {
			return typeCycle[(i+1)%len(typeCycle)]
		}
	}
	return typeCycle[0]
}

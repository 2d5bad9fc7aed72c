// Package model provides Bubble Tea models for CLI commands.
package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/avencia/servio/internal/cli/styles"
	"github.com/avencia/servio/internal/logging"
	"github.com/avencia/servio/internal/search"
	"github.com/avencia/servio/internal/ui/state"
)

// stateChangedMsg is sent when the controller or hint flag changed.
type stateChangedMsg struct{}

// SearchModel is the Bubble Tea model for the interactive search screen.
type SearchModel struct {
	input textinput.Model

	ctrl    *search.Controller
	mapHint *state.TransientFlag
	updates <-chan struct{}

	selected int
	mapMode  bool
	width    int
	height   int

	onSubmit func(query string)

	ctx   context.Context
	theme *styles.Theme
}

// NewSearchModel creates a new search screen model. The updates channel
// must be the one the controller's and flag's OnChange hooks signal.
func NewSearchModel(
	ctx context.Context,
	theme *styles.Theme,
	ctrl *search.Controller,
	mapHint *state.TransientFlag,
	updates <-chan struct{},
	onSubmit func(query string),
) SearchModel {
	log := logging.FromContext(ctx)
	log.Debug().Msg("creating search model")

	input := textinput.New()
	input.Placeholder = "Search services..."
	input.Prompt = "> "
	input.PromptStyle = theme.Prompt
	input.Focus()
	input.CharLimit = 120

	return SearchModel{
		input:    input,
		ctrl:     ctrl,
		mapHint:  mapHint,
		updates:  updates,
		onSubmit: onSubmit,
		ctx:      ctx,
		theme:    theme,
		width:    80,
		height:   24,
	}
}

// Init implements tea.Model.
func (m SearchModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForUpdate)
}

// waitForUpdate blocks until the controller or hint flag signals a change.
func (m SearchModel) waitForUpdate() tea.Msg {
	<-m.updates
	return stateChangedMsg{}
}

// Update implements tea.Model.
func (m SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case stateChangedMsg:
		m.clampSelection()
		return m, m.waitForUpdate

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateInput(msg)
}

func (m SearchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		if m.ctrl.Visible() {
			m.ctrl.HideSuggestions()
			return m, nil
		}
		return m, tea.Quit

	case "enter":
		return m.handleEnter()

	case "up":
		m.moveSelection(-1)
		return m, nil

	case "down":
		m.moveSelection(1)
		return m, nil

	case "tab":
		m.mapMode = !m.mapMode
		if m.mapMode {
			m.mapHint.Show()
		}
		return m, nil

	case "ctrl+u":
		m.ctrl.ClearSearch()
		m.input.SetValue("")
		m.selected = 0
		return m, nil
	}

	return m.updateInput(msg)
}

// updateInput forwards the message to the text input and propagates any
// text change to the controller.
func (m SearchModel) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if value := m.input.Value(); value != before {
		m.ctrl.UpdateQuery(m.ctx, value)
		m.selected = 0
	}

	return m, cmd
}

func (m SearchModel) handleEnter() (tea.Model, tea.Cmd) {
	snap := m.ctrl.Snapshot()

	if snap.Visible && m.selected >= 0 && m.selected < len(snap.Suggestions) {
		text := snap.Suggestions[m.selected].Text
		m.ctrl.SelectSuggestion(m.ctx, text)
		m.input.SetValue(text)
		m.input.CursorEnd()
		m.selected = 0
		return m, nil
	}

	if query := strings.TrimSpace(snap.Query); query != "" && m.onSubmit != nil {
		m.onSubmit(query)
	}
	return m, nil
}

func (m *SearchModel) moveSelection(delta int) {
	snap := m.ctrl.Snapshot()
	if !snap.Visible || len(snap.Suggestions) == 0 {
		return
	}

	m.selected += delta
	if m.selected < 0 {
		m.selected = len(snap.Suggestions) - 1
	}
	if m.selected >= len(snap.Suggestions) {
		m.selected = 0
	}
}

func (m *SearchModel) clampSelection() {
	snap := m.ctrl.Snapshot()
	if m.selected >= len(snap.Suggestions) {
		m.selected = 0
	}
}

// View implements tea.Model.
func (m SearchModel) View() string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render("servio"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	snap := m.ctrl.Snapshot()

	if snap.Loading {
		b.WriteString(m.theme.Loading.Render("searching..."))
		b.WriteString("\n")
	}

	if snap.Visible {
		for i, s := range snap.Suggestions {
			line := fmt.Sprintf("%s %s", s.Text, m.theme.Weight.Render(fmt.Sprintf("(%d)", s.Weight)))
			if i == m.selected {
				line = m.theme.Selected.Render("▸ " + line)
			} else {
				line = m.theme.Suggestion.Render("  " + line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render("↑/↓ select · enter pick · tab map view · ctrl+u clear · esc quit"))

	return b.String()
}

func (m SearchModel) statusLine() string {
	var parts []string
	if m.mapMode {
		parts = append(parts, m.theme.StatusBar.Render("map view"))
	}
	if m.mapHint.Shown() {
		parts = append(parts, m.theme.Hint.Render("pan and zoom to refresh results"))
	}
	return strings.Join(parts, "  ")
}

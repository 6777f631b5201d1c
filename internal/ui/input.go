package ui

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// InputModel wraps the textarea component for multi-line REPL input.
type InputModel struct {
	textarea   textarea.Model
	history    []string
	historyIdx int
	submitted  bool
	cancelled  bool
	value      string
	prompt     string
	maxHeight  int
	quitting   bool
}

// NewInputModel creates a new input model with the given prompt.
func NewInputModel(prompt string, history []string) InputModel {
	ta := textarea.New()
	ta.Prompt = "" // the prompt is shown separately
	ta.Placeholder = "(Ctrl+J for newline, Enter to submit)"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0

	ta.SetHeight(1)
	ta.SetWidth(80)

	// Remove cursor line highlighting
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.BlurredStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	ta.FocusedStyle.Text = lipgloss.NewStyle()

	// Enter submits; Ctrl+J inserts the newline instead.
	ta.KeyMap.InsertNewline.SetEnabled(false)

	ta.Focus()

	return InputModel{
		textarea:   ta,
		history:    history,
		historyIdx: -1,
		prompt:     prompt,
		maxHeight:  20,
	}
}

// adjustHeight grows the textarea to fit content, up to maxHeight.
func (m *InputModel) adjustHeight() {
	h := m.textarea.LineCount()
	if h > m.maxHeight {
		h = m.maxHeight
	}
	if h < 1 {
		h = 1
	}
	m.textarea.SetHeight(h)
}

// Init initializes the input model
func (m InputModel) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles input events
func (m InputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		width := msg.Width - 10
		if width < 40 {
			width = 40
		}
		m.textarea.SetWidth(width)

		m.maxHeight = msg.Height - 5
		if m.maxHeight < 5 {
			m.maxHeight = 5
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			m.value = m.textarea.Value()
			m.submitted = true
			m.quitting = true
			return m, tea.Quit

		case "ctrl+j":
			m.textarea.InsertString("\n")
			m.adjustHeight()
			return m, nil

		case "up":
			if len(m.history) > 0 && (m.textarea.Value() == "" || m.historyIdx >= 0) {
				if m.historyIdx < len(m.history)-1 {
					m.historyIdx++
					m.textarea.SetValue(m.history[len(m.history)-1-m.historyIdx])
					m.adjustHeight()
					m.textarea.CursorStart()
				}
				return m, nil
			}

		case "down":
			if len(m.history) > 0 && m.historyIdx >= 0 {
				if m.historyIdx > 0 {
					m.historyIdx--
					m.textarea.SetValue(m.history[len(m.history)-1-m.historyIdx])
				} else {
					m.historyIdx = -1
					m.textarea.SetValue("")
				}
				m.adjustHeight()
				return m, nil
			}

		case "ctrl+c":
			m.cancelled = true
			m.quitting = true
			return m, tea.Quit

		case "esc":
			// ESC clears the current input, doesn't exit
			m.textarea.SetValue("")
			m.adjustHeight()
			return m, nil
		}
	}

	m.textarea, cmd = m.textarea.Update(msg)
	m.adjustHeight()
	return m, cmd
}

// View renders the input model
func (m InputModel) View() string {
	if m.quitting {
		return ""
	}
	return m.prompt + "\n" + m.textarea.View()
}

// Value returns the submitted value
func (m InputModel) Value() string {
	return m.value
}

// Submitted returns whether the input was submitted
func (m InputModel) Submitted() bool {
	return m.submitted
}

// Cancelled returns whether the input was cancelled
func (m InputModel) Cancelled() bool {
	return m.cancelled
}

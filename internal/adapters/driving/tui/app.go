// Package tui provides the interactive question view: a prompt over
// one notebook with answers and citations rendered in place.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/inkpot-labs/inkpot/internal/core/domain"
	"github.com/inkpot-labs/inkpot/internal/core/ports/driving"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("170"))
	answerStyle   = lipgloss.NewStyle().PaddingLeft(2)
	citationStyle = lipgloss.NewStyle().Faint(true).PaddingLeft(2)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

// answerMsg delivers the result of one ask.
type answerMsg struct {
	answer *domain.Answer
	err    error
}

// App is the bubbletea model for the ask view.
type App struct {
	query      driving.QueryService
	notebookID string
	topK       int

	input   textinput.Model
	spinner spinner.Model

	asking bool
	answer *domain.Answer
	err    error
	width  int
}

// NewApp creates the ask view over one notebook.
func NewApp(query driving.QueryService, notebookID string, topK int) *App {
	input := textinput.New()
	input.Placeholder = "Ask a question..."
	input.Focus()
	input.CharLimit = 512

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &App{
		query:      query,
		notebookID: notebookID,
		topK:       topK,
		input:      input,
		spinner:    sp,
	}
}

// Run starts the program and blocks until the user quits.
func (a *App) Run() error {
	_, err := tea.NewProgram(a, tea.WithAltScreen()).Run()
	return err
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		return a, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return a, tea.Quit
		case tea.KeyEnter:
			question := strings.TrimSpace(a.input.Value())
			if question == "" || a.asking {
				return a, nil
			}
			a.asking = true
			a.err = nil
			a.answer = nil
			return a, tea.Batch(a.ask(question), a.spinner.Tick)
		}

	case answerMsg:
		a.asking = false
		a.answer = msg.answer
		a.err = msg.err
		a.input.SetValue("")
		return a, nil

	case spinner.TickMsg:
		if !a.asking {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("inkpot"))
	b.WriteString("  notebook " + a.notebookID + "\n\n")
	b.WriteString(a.input.View())
	b.WriteString("\n\n")

	switch {
	case a.asking:
		b.WriteString(a.spinner.View() + " thinking...\n")
	case a.err != nil:
		b.WriteString(errorStyle.Render("error: "+a.err.Error()) + "\n")
	case a.answer != nil:
		b.WriteString(answerStyle.Render(wrap(a.answer.Text, a.contentWidth())) + "\n")
		if len(a.answer.Citations) > 0 {
			b.WriteString("\n")
			for _, c := range a.answer.Citations {
				line := fmt.Sprintf("[%d] %s", c.Rank, c.SourceID)
				if c.Location != "" {
					line += ", " + c.Location
				}
				line += fmt.Sprintf(" (%.4f)", c.Score)
				b.WriteString(citationStyle.Render(line) + "\n")
			}
		}
	}

	b.WriteString("\n" + helpStyle.Render("enter: ask • esc: quit"))
	return b.String()
}

func (a *App) ask(question string) tea.Cmd {
	return func() tea.Msg {
		answer, err := a.query.Ask(context.Background(), a.notebookID, question, a.topK)
		return answerMsg{answer: answer, err: err}
	}
}

func (a *App) contentWidth() int {
	if a.width <= 4 {
		return 76
	}
	return a.width - 4
}

// wrap softly wraps text to the given width on word boundaries.
func wrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var out []string
	for _, paragraph := range strings.Split(text, "\n") {
		line := ""
		for _, word := range strings.Fields(paragraph) {
			switch {
			case line == "":
				line = word
			case lipgloss.Width(line)+1+lipgloss.Width(word) <= width:
				line += " " + word
			default:
				out = append(out, line)
				line = word
			}
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

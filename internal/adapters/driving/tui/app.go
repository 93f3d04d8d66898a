// Package tui implements the interactive chat interface using Bubbletea.
// It follows the Elm architecture: a single model, messages for events,
// and a pure view function.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/askdocs/askdocs-cli/internal/core/domain"
	"github.com/askdocs/askdocs-cli/internal/core/ports/driving"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#5A56E0")).
			Padding(0, 1)

	questionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F2A65A")).
			Bold(true)

	answerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	sourceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD93D"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

// exchange is one question/answer pair in the transcript.
type exchange struct {
	question string
	answer   string
	sources  []domain.RetrievedChunk
	err      error
}

// App is the chat application model.
type App struct {
	queries driving.QueryService
	ctx     context.Context

	input    textinput.Model
	viewport viewport.Model

	// conversationID threads follow-up questions into one conversation.
	conversationID string

	transcript []exchange
	loading    bool
	quitting   bool
	ready      bool
	width      int
	height     int
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates the chat model.
func NewApp(ctx context.Context, queries driving.QueryService) *App {
	input := textinput.New()
	input.Placeholder = "Ask a question about your documents..."
	input.Prompt = "> "
	input.CharLimit = 2000
	input.Focus()

	return &App{
		queries: queries,
		ctx:     ctx,
		input:   input,
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// answerMsg carries the result of an asynchronous query.
type answerMsg struct {
	result *domain.QueryResult
	err    error
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		headerHeight := 2
		footerHeight := 4
		if !a.ready {
			a.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			a.ready = true
		} else {
			a.viewport.Width = msg.Width
			a.viewport.Height = msg.Height - headerHeight - footerHeight
		}
		a.input.Width = msg.Width - 4
		a.viewport.SetContent(a.renderTranscript())
		return a, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			a.quitting = true
			return a, tea.Quit

		case tea.KeyEnter:
			if a.loading {
				return a, nil
			}
			question := strings.TrimSpace(a.input.Value())
			if question == "" {
				return a, nil
			}
			a.input.Reset()
			a.loading = true
			a.transcript = append(a.transcript, exchange{question: question})
			a.viewport.SetContent(a.renderTranscript())
			a.viewport.GotoBottom()
			return a, a.ask(question)
		}

	case answerMsg:
		a.loading = false
		last := len(a.transcript) - 1
		if last >= 0 {
			if msg.err != nil {
				a.transcript[last].err = msg.err
			} else {
				a.transcript[last].answer = msg.result.Answer
				a.transcript[last].sources = msg.result.Sources
				a.conversationID = msg.result.ConversationID
			}
		}
		a.viewport.SetContent(a.renderTranscript())
		a.viewport.GotoBottom()
		return a, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	cmds = append(cmds, cmd)
	a.viewport, cmd = a.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

// View implements tea.Model.
func (a *App) View() string {
	if a.quitting {
		return ""
	}
	if !a.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("AskDocs Chat"))
	b.WriteString("\n\n")
	b.WriteString(a.viewport.View())
	b.WriteString("\n\n")

	if a.loading {
		b.WriteString(statusStyle.Render("Thinking..."))
	} else {
		b.WriteString(a.input.View())
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: ask  esc: quit"))
	return b.String()
}

// ConversationID returns the active conversation, if any exchange
// completed yet.
func (a *App) ConversationID() string {
	return a.conversationID
}

// renderTranscript formats all exchanges for the viewport.
func (a *App) renderTranscript() string {
	if len(a.transcript) == 0 {
		return helpStyle.Render("No questions yet. Type below and press enter.")
	}

	var b strings.Builder
	for i, ex := range a.transcript {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(questionStyle.Render("You: " + ex.question))
		b.WriteString("\n")

		switch {
		case ex.err != nil:
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", ex.err)))
			b.WriteString("\n")
		case ex.answer == "":
			b.WriteString(statusStyle.Render("..."))
			b.WriteString("\n")
		default:
			b.WriteString(answerStyle.Render(ex.answer))
			b.WriteString("\n")
			for j, src := range ex.sources {
				b.WriteString(sourceStyle.Render(fmt.Sprintf("  [%d] document=%s chunk=%d (%.2f)",
					j+1, src.DocumentID, src.Index, src.Score)))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

// ask runs the query off the update loop and reports back as a message.
func (a *App) ask(question string) tea.Cmd {
	return func() tea.Msg {
		result, err := a.queries.Query(a.ctx, question, domain.QueryOptions{
			ConversationID:      a.conversationID,
			SimilarityThreshold: -1,
			IncludeSources:      true,
		})
		return answerMsg{result: result, err: err}
	}
}

// Run starts the chat program and blocks until the user quits.
func Run(ctx context.Context, queries driving.QueryService) error {
	app := NewApp(ctx, queries)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

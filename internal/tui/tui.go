// Package tui is the interactive RAG question loop.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/timothywarner/ai900/internal/domain"
	"github.com/timothywarner/ai900/internal/usecase/rag"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			MarginBottom(1)

	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	answerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4")).PaddingLeft(2).Width(80)
	sourceStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")).PaddingLeft(2)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).PaddingLeft(2)
	loadingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD93D")).PaddingLeft(2)
)

// Asker answers questions over the knowledge base.
type Asker interface {
	Query(ctx context.Context, question string, k int) (rag.Answer, error)
	Documents() []domain.Document
}

// Model is the bubbletea model of the Q&A loop.
type Model struct {
	ctx      context.Context
	asker    Asker
	topK     int
	input    string
	output   string
	err      error
	loading  bool
	quitting bool
}

// NewModel creates the Q&A model.
func NewModel(ctx context.Context, asker Asker, topK int) *Model {
	return &Model{ctx: ctx, asker: asker, topK: topK}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

type answerMsg struct {
	answer rag.Answer
	err    error
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		if m.loading {
			return m, nil
		}
		return m.handleKey(msg)

	case answerMsg:
		m.loading = false
		m.input = ""
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.output = renderAnswer(msg.answer)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		return m.submit()
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		m.input += string(msg.Runes)
	}
	return m, nil
}

func (m *Model) submit() (tea.Model, tea.Cmd) {
	q := strings.TrimSpace(m.input)
	m.err = nil

	switch strings.ToLower(q) {
	case "":
		return m, nil
	case "quit", "exit", "q":
		m.quitting = true
		return m, tea.Quit
	case "docs":
		m.input = ""
		m.output = renderDocuments(m.asker.Documents())
		return m, nil
	}

	m.loading = true
	m.output = ""
	return m, m.ask(q)
}

func (m *Model) ask(q string) tea.Cmd {
	return func() tea.Msg {
		answer, err := m.asker.Query(m.ctx, q, m.topK)
		return answerMsg{answer: answer, err: err}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return "\nGoodbye!\n\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("AI-900 RAG Q&A"))
	b.WriteString("\n")
	b.WriteString("Ask about Azure AI. Type 'docs' to list the knowledge base, 'quit' to exit.\n\n")
	b.WriteString(promptStyle.Render("> ") + m.input)
	if !m.loading {
		b.WriteString("_")
	}
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(loadingStyle.Render("Searching knowledge base..."))
	case m.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	default:
		b.WriteString(m.output)
	}
	b.WriteString("\n")
	return b.String()
}

func renderAnswer(a rag.Answer) string {
	var b strings.Builder
	b.WriteString(answerStyle.Render(a.Text))
	b.WriteString("\n\n")
	for i, d := range a.Sources {
		b.WriteString(sourceStyle.Render(fmt.Sprintf("%d. %s (similarity %.4f)", i+1, d.Title, d.Similarity)))
		b.WriteString("\n")
	}
	return b.String()
}

func renderDocuments(docs []domain.Document) string {
	var b strings.Builder
	for _, d := range docs {
		b.WriteString(sourceStyle.Render(fmt.Sprintf("[%s] %s (%s)", d.ID, d.Title, d.Category)))
		b.WriteString("\n")
	}
	return b.String()
}

// Run starts the interactive loop and blocks until the user quits.
func Run(ctx context.Context, asker Asker, topK int) error {
	p := tea.NewProgram(NewModel(ctx, asker, topK), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run interactive session: %w", err)
	}
	return nil
}

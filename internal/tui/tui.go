// internal/tui/tui.go
// Package tui implements the interactive question loop shown by `legalrag chat`.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwiater/legalrag/internal/rag"
	"github.com/mwiater/legalrag/internal/util"
)

// Pipeline is the part of rag.Pipeline the TUI drives.
type Pipeline interface {
	Prepare(ctx context.Context) error
	Ask(ctx context.Context, query string, topK int) (rag.Response, error)
	Len() int
}

type viewState int

const (
	viewPreparing viewState = iota
	viewChat
)

type exchange struct {
	question string
	answer   string
	sources  []rag.RetrievedSummary
	failed   bool
}

type preparedMsg struct{ count int }
type prepareErrMsg struct{ err error }
type answerMsg struct{ resp rag.Response }
type answerErrMsg struct{ err error }

type model struct {
	ctx      context.Context
	pipeline Pipeline
	topK     int

	state     viewState
	isLoading bool
	started   time.Time
	entries   int
	history   []exchange
	pending   string
	err       error

	width, height int
	textArea      textarea.Model
	viewport      viewport.Model
	spinner       spinner.Model
}

func initialModel(ctx context.Context, pipeline Pipeline, topK int) *model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	ta := textarea.New()
	ta.Placeholder = "Posez une question sur le texte..."
	ta.Prompt = "Question : "
	ta.ShowLineNumbers = false
	ta.CharLimit = -1
	ta.SetHeight(1)
	ta.KeyMap.InsertNewline.SetEnabled(false)

	return &model{
		ctx:       ctx,
		pipeline:  pipeline,
		topK:      topK,
		state:     viewPreparing,
		isLoading: true,
		started:   time.Now(),
		textArea:  ta,
		viewport:  viewport.New(100, 5),
		spinner:   s,
	}
}

func prepareCmd(ctx context.Context, p Pipeline) tea.Cmd {
	return func() tea.Msg {
		if err := p.Prepare(ctx); err != nil {
			return prepareErrMsg{err: err}
		}
		return preparedMsg{count: p.Len()}
	}
}

func askCmd(ctx context.Context, p Pipeline, question string, topK int) tea.Cmd {
	return func() tea.Msg {
		resp, err := p.Ask(ctx, question, topK)
		if err != nil {
			return answerErrMsg{err: err}
		}
		return answerMsg{resp: resp}
	}
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, prepareCmd(m.ctx, m.pipeline))
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "pgup", "pgdown":
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		case "enter":
			if m.state != viewChat || m.isLoading {
				return m, nil
			}
			question := strings.TrimSpace(m.textArea.Value())
			if question == "" {
				return m, nil
			}
			m.pending = question
			m.textArea.Reset()
			m.isLoading = true
			m.started = time.Now()
			m.err = nil
			m.refreshViewport()
			return m, tea.Batch(m.spinner.Tick, askCmd(m.ctx, m.pipeline, question, m.topK))
		}

	case tea.MouseMsg:
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.textArea.SetWidth(msg.Width - 3)
		headerHeight := 2
		footerHeight := 4
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - headerHeight - footerHeight
		if m.viewport.Height < 1 {
			m.viewport.Height = 1
		}
		m.refreshViewport()

	case preparedMsg:
		m.isLoading = false
		m.entries = msg.count
		m.state = viewChat
		m.textArea.Focus()
		return m, nil

	case prepareErrMsg:
		m.isLoading = false
		m.err = msg.err
		return m, nil

	case answerMsg:
		ex := exchange{question: m.pending}
		if msg.resp.Found {
			ex.answer = msg.resp.Answer.Text
			ex.failed = msg.resp.Answer.Failed
			ex.sources = msg.resp.Sources
		} else {
			ex.answer = rag.NoResultsMessage
		}
		m.history = append(m.history, ex)
		m.pending = ""
		m.isLoading = false
		m.refreshViewport()
		return m, nil

	case answerErrMsg:
		m.pending = ""
		m.isLoading = false
		m.err = msg.err
		m.refreshViewport()
		return m, nil
	}

	if m.state == viewChat && !m.isLoading {
		m.textArea, cmd = m.textArea.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.isLoading {
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

var (
	headerStyle   = lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
	questionStyle = lipgloss.NewStyle().Bold(true)
	answerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	failedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	sourceStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1)
)

// refreshViewport re-renders the conversation into the viewport and scrolls
// to the newest exchange.
func (m *model) refreshViewport() {
	width := m.width
	if width <= 0 {
		width = 100
	}
	var hist strings.Builder
	for _, ex := range m.history {
		hist.WriteString(questionStyle.Render("💬 ") + util.WrapToWidth(ex.question, width-4) + "\n")
		answer := util.WrapToWidth(ex.answer, width-4)
		if ex.failed {
			answer = failedStyle.Render(answer)
		}
		hist.WriteString(answerStyle.Render("📢 ") + answer + "\n")
		for _, src := range ex.sources {
			hist.WriteString(sourceStyle.Render(fmt.Sprintf("   [%d] %.3f %s", src.ID, src.Score, util.Excerpt(src.Summary, width-20))) + "\n")
		}
		hist.WriteString("\n")
	}
	if m.pending != "" {
		hist.WriteString(questionStyle.Render("💬 ") + util.WrapToWidth(m.pending, width-4) + "\n")
	}
	m.viewport.SetContent(strings.TrimRight(hist.String(), "\n"))
	m.viewport.GotoBottom()
}

func (m *model) View() string {
	if m.state == viewPreparing {
		if m.err != nil {
			return errorStyle.Render(fmt.Sprintf("Impossible de préparer l'index : %v\n\n(esc pour quitter)", m.err))
		}
		elapsed := time.Since(m.started).Truncate(time.Second)
		return fmt.Sprintf("\n  %s Préparation de l'index... %s\n", m.spinner.View(), elapsed)
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("legalrag · %d résumés indexés", m.entries)))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.isLoading {
		elapsed := time.Since(m.started).Truncate(100 * time.Millisecond)
		b.WriteString(m.spinner.View() + " Génération de la réponse... " + elapsed.String() + "\n")
	} else if m.err != nil {
		b.WriteString(failedStyle.Render("Erreur : "+m.err.Error()) + "\n")
	}
	b.WriteString(m.textArea.View())
	b.WriteString("\n" + sourceStyle.Render(" (entrée pour envoyer, pgup/pgdown pour défiler, esc pour quitter)"))
	return b.String()
}

// Run starts the interactive loop and blocks until the user quits.
func Run(ctx context.Context, pipeline Pipeline, topK int) error {
	m := initialModel(ctx, pipeline, topK)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// ============================================================================
// MyPL - Front End Toolchain
// ============================================================================
//
// Package:     inspector
// Description: Bubbletea model that browses source, tokens, AST and types
//              of one compile run
// Author:      msto63
// Created:     2026-10-13
// License:     MIT
// ============================================================================

package inspector

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/mypl/internal/lang/ast"
	"github.com/msto63/mypl/internal/lang/checker"
	"github.com/msto63/mypl/internal/lang/frontend"
	"github.com/msto63/mypl/internal/lang/token"
)

// Tab identifies an inspector page
type Tab int

const (
	TabSource Tab = iota
	TabTokens
	TabAST
	TabTypes
	tabCount
)

var tabNames = [tabCount]string{"Source", "Tokens", "AST", "Types"}

func (t Tab) String() string {
	if t < 0 || t >= tabCount {
		return fmt.Sprintf("Tab(%d)", int(t))
	}
	return tabNames[t]
}

// Config holds what the inspector displays. Result is nil when the compile
// failed; Err then carries the diagnostic.
type Config struct {
	Name   string
	Source string
	Result *frontend.Result
	Tokens []token.Token
	Err    error
}

// Model is the main Bubbletea model for the inspector
type Model struct {
	width  int
	height int
	ready  bool

	viewport viewport.Model
	active   Tab
	contents [tabCount]string

	name  string
	runID string
	err   error
}

// New creates an inspector model
func New(cfg Config) Model {
	var (
		prog *ast.StmtList
		ann  *checker.Annotations
		id   string
	)
	if cfg.Result != nil {
		prog, ann, id = cfg.Result.Program, cfg.Result.Types, cfg.Result.RunID
	}

	m := Model{name: cfg.Name, runID: id, err: cfg.Err}
	m.contents[TabSource] = sourceView(cfg.Source)
	m.contents[TabTokens] = tokensView(cfg.Tokens)
	m.contents[TabAST] = astView(prog)
	m.contents[TabTypes] = typesView(ann)
	return m
}

// Run starts the inspector in the alternate screen
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Active returns the selected tab
func (m Model) Active() Tab {
	return m.active
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 2 // Title + tabs
		footerHeight := 4 // Panel border + status bar + help
		viewportHeight := msg.Height - headerHeight - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}
		m.viewport.SetContent(m.contents[m.active])
	}
	return m, nil
}

func (m Model) selectTab(t Tab) Model {
	m.active = t
	if m.ready {
		m.viewport.SetContent(m.contents[t])
		m.viewport.GotoTop()
	}
	return m
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyTab:
		return m.selectTab((m.active + 1) % tabCount), nil

	case tea.KeyShiftTab:
		return m.selectTab((m.active + tabCount - 1) % tabCount), nil

	case tea.KeyRunes:
		switch s := string(msg.Runes); s {
		case "q":
			return m, tea.Quit
		case "1", "2", "3", "4":
			return m.selectTab(Tab(s[0] - '1')), nil
		case "g":
			m.viewport.GotoTop()
		case "G":
			m.viewport.GotoBottom()
		}
		return m, nil

	case tea.KeyPgUp:
		m.viewport.ViewUp()
	case tea.KeyPgDown:
		m.viewport.ViewDown()
	case tea.KeyUp:
		m.viewport.LineUp(1)
	case tea.KeyDown:
		m.viewport.LineDown(1)
	}
	return m, nil
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Loading inspector..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(ContentPanelStyle.Width(m.width - 2).Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.renderHelpBar())
	return b.String()
}

func (m Model) renderHeader() string {
	return LogoStyle.Render(Logo) + "  " + FileStyle.Render(m.name)
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, tabCount)
	for t := Tab(0); t < tabCount; t++ {
		label := fmt.Sprintf("%d %s", t+1, t)
		if t == m.active {
			tabs = append(tabs, ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, InactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// status returns the plain status line text
func (m Model) status() string {
	if m.err != nil {
		return m.err.Error()
	}
	return "ok  run " + m.runID
}

func (m Model) renderStatusBar() string {
	style := StatusOKStyle
	if m.err != nil {
		style = StatusErrorStyle
	}
	scroll := HelpDescStyle.Render(fmt.Sprintf("%3.0f%%", m.viewport.ScrollPercent()*100))
	return StatusBarStyle.Width(m.width - 2).Render(style.Render(m.status()) + "  " + scroll)
}

func (m Model) renderHelpBar() string {
	items := []string{
		RenderKeyHint("tab/1-4", "Tab"),
		RenderKeyHint("↑/↓", "Scroll"),
		RenderKeyHint("pgup/pgdn", "Page"),
		RenderKeyHint("g/G", "Top/Bottom"),
		RenderKeyHint("q", "Quit"),
	}
	return strings.Join(items, "  ")
}

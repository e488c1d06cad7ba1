package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/wayfinder"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/search"
	tea "github.com/charmbracelet/bubbletea"
)

// Navigator is the engine surface the wizard drives.
type Navigator interface {
	Start(ctx context.Context, sessionID string) *domain.State
	Current(state *domain.State) (domain.Node, error)
	SelectIndex(ctx context.Context, state *domain.State, i int) (*domain.State, error)
	Back(ctx context.Context, state *domain.State) *domain.State
	Reset(ctx context.Context, state *domain.State) *domain.State
}

// Model is the bubbletea model of the crate picker wizard.
type Model struct {
	ctx      context.Context
	nav      Navigator
	render   wayfinder.ContentRenderer
	search   *SearchModel
	compare  *CompareModel
	keyboard *search.Keyboard

	state  *domain.State
	node   domain.Node
	cursor int
	status string
	err    error
	width  int
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithSearch attaches a search overlay, toggled with ctrl+k.
func WithSearch(s *SearchModel) ModelOption {
	return func(m *Model) {
		m.search = s
	}
}

// WithCompare shows the code comparison carousel under the wizard. tab
// moves to the next scenario and c copies the Wesichain sample.
func WithCompare(c *CompareModel) ModelOption {
	return func(m *Model) {
		m.compare = c
	}
}

// WithRenderer sets the markdown renderer for recommendations.
func WithRenderer(r wayfinder.ContentRenderer) ModelOption {
	return func(m *Model) {
		if r != nil {
			m.render = r
		}
	}
}

// WithKeyboard replaces search.DefaultKeyboard.
func WithKeyboard(kb *search.Keyboard) ModelOption {
	return func(m *Model) {
		if kb != nil {
			m.keyboard = kb
		}
	}
}

// NewModel starts a session for sessionID at the root step.
func NewModel(ctx context.Context, nav Navigator, sessionID string, opts ...ModelOption) *Model {
	m := &Model{
		ctx:      ctx,
		nav:      nav,
		render:   PlainRenderer,
		keyboard: search.DefaultKeyboard,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.setState(nav.Start(ctx, sessionID))
	if m.search != nil {
		m.search.Overlay().Bind(m.keyboard)
	}
	return m
}

// State returns the current session state.
func (m *Model) State() *domain.State {
	return m.state
}

// Err returns the last navigation error.
func (m *Model) Err() error {
	return m.err
}

func (m *Model) setState(s *domain.State) {
	node, err := m.nav.Current(s)
	if err != nil {
		m.err = err
		if m.state == nil {
			m.state = s
		}
		return
	}
	m.state, m.node, m.cursor, m.err = s, node, 0, nil
}

func (m *Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.search != nil {
		cmds = append(cmds, m.search.Init())
	}
	if m.compare != nil {
		cmds = append(cmds, m.compare.Init())
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case ResultChosenMsg:
		m.status = fmt.Sprintf("Open %s (%s)", msg.Item.URL, msg.Item.Title)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, m.quit()
		}
		if m.search != nil {
			if key, err := search.ParseKey(msg.String()); err == nil && m.keyboard.Dispatch(key) {
				return m, nil
			}
			if m.search.Open() {
				return m, m.search.Update(msg)
			}
		}
		if m.compare != nil {
			if cmd, ok := m.compare.Update(msg); ok {
				return m, cmd
			}
		}
		return m, m.handleKey(msg)

	case compareChangedMsg:
		if m.compare != nil {
			cmd, _ := m.compare.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.search != nil {
		return m, m.search.Update(msg)
	}
	return m, nil
}

func (m *Model) quit() tea.Cmd {
	m.close()
	return tea.Quit
}

func (m *Model) close() {
	if m.search != nil {
		m.search.Close()
	}
	if m.compare != nil {
		m.compare.Close()
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.status = ""
	step, isStep := m.node.(*domain.Step)

	switch msg.String() {
	case "q":
		return m.quit()
	case "b", "backspace", "left":
		m.setState(m.nav.Back(m.ctx, m.state))
	case "r":
		m.setState(m.nav.Reset(m.ctx, m.state))
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if isStep && m.cursor < len(step.Options)-1 {
			m.cursor++
		}
	case "enter", "right":
		if isStep {
			m.selectIndex(m.cursor)
		}
	default:
		if n, err := strconv.Atoi(msg.String()); err == nil && isStep {
			m.selectIndex(n - 1)
		}
	}
	return nil
}

func (m *Model) selectIndex(i int) {
	next, err := m.nav.SelectIndex(m.ctx, m.state, i)
	if err != nil {
		m.err = err
		return
	}
	m.setState(next)
}

func (m *Model) View() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n\n", stepStyle.Render(fmt.Sprintf("Step %d", len(m.state.History))))

	switch n := m.node.(type) {
	case *domain.Step:
		b.WriteString(titleStyle.Render(n.Question))
		b.WriteString("\n")
		if n.Description != "" {
			b.WriteString(descStyle.Render(n.Description))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		for i, opt := range n.Options {
			prefix := "  "
			if i == m.cursor {
				prefix = cursorStyle.Render("> ")
			}
			label := opt.Label
			if !opt.Target.Terminal() {
				label += " →"
			}
			fmt.Fprintf(&b, "%s%d. %s\n", prefix, i+1, label)
		}
		if !m.state.AtRoot() {
			b.WriteString("  b. ← Back\n")
		}
	case *domain.Result:
		out, err := m.render(wayfinder.RecommendationMarkdown(n.Recommendation))
		if err != nil {
			out = wayfinder.RecommendationMarkdown(n.Recommendation)
		}
		b.WriteString(strings.TrimRight(out, "\n"))
		b.WriteString("\n\n  r. Start Over   b. ← Back\n")
	}

	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render(m.err.Error()) + "\n")
	}
	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	}

	if m.compare != nil {
		b.WriteString("\n" + m.compare.View(m.width) + "\n")
	}

	help := "↑/↓ move • enter select • b back • r restart • q quit"
	if m.compare != nil {
		help += " • tab next sample • c copy"
	}
	if m.search != nil {
		help += " • ctrl+k search"
		if view := m.search.View(m.width); view != "" {
			return b.String() + "\n" + view
		}
	}
	b.WriteString(helpStyle.Render(help))
	return b.String()
}

// Run drives the wizard on the terminal until the user quits. It returns
// the final state.
func Run(ctx context.Context, m *Model, opts ...tea.ProgramOption) (*domain.State, error) {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	final, err := tea.NewProgram(m, opts...).Run()
	m.close()
	if fm, ok := final.(*Model); ok && fm != nil {
		return fm.state, err
	}
	return m.state, err
}

package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
	"github.com/aretw0/wayfinder/pkg/search"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// overlayChangedMsg tells the model to re-read the overlay snapshot.
type overlayChangedMsg struct{}

// ResultChosenMsg is emitted when a search result is picked.
type ResultChosenMsg struct {
	Item domain.ResultItem
}

// SearchModel renders a search.Overlay. The overlay owns all search state;
// the model mirrors its snapshot and forwards typing to it.
type SearchModel struct {
	overlay *search.Overlay
	input   textinput.Model
	spinner spinner.Model
	snap    search.Snapshot
	cursor  int

	changed chan struct{}
	done    chan struct{}
}

// NewSearchModel builds the overlay over index. Extra options are applied
// after the model's own change listener.
func NewSearchModel(index ports.SearchIndex, opts ...search.Option) *SearchModel {
	in := textinput.New()
	in.Placeholder = search.PromptMessage
	in.Prompt = "/ "
	in.CharLimit = 120

	m := &SearchModel{
		input:   in,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		changed: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}

	overlayOpts := append([]search.Option{
		search.WithOnChange(func(search.Snapshot) { m.notify() }),
	}, opts...)
	m.overlay = search.New(index, overlayOpts...)
	return m
}

// Overlay exposes the underlying overlay.
func (m *SearchModel) Overlay() *search.Overlay {
	return m.overlay
}

// notify coalesces change notifications into one pending signal.
func (m *SearchModel) notify() {
	select {
	case m.changed <- struct{}{}:
	default:
	}
}

// Init starts listening for overlay changes.
func (m *SearchModel) Init() tea.Cmd {
	return m.listen()
}

func (m *SearchModel) listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.changed:
			return overlayChangedMsg{}
		case <-m.done:
			return nil
		}
	}
}

// Close unmounts the overlay and stops the listener.
func (m *SearchModel) Close() {
	m.overlay.Unmount()
	select {
	case <-m.done:
	default:
		close(m.done)
	}
}

// Open reports whether the overlay is visible.
func (m *SearchModel) Open() bool {
	return m.snap.Open
}

// Update handles overlay notifications, spinner ticks and, while open,
// typing and result navigation.
func (m *SearchModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case overlayChangedMsg:
		return tea.Batch(m.sync(), m.listen())

	case spinner.TickMsg:
		if !m.snap.Loading {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		if !m.snap.Open {
			return nil
		}
		switch msg.Type {
		case tea.KeyUp:
			if m.cursor > 0 {
				m.cursor--
			}
			return nil
		case tea.KeyDown:
			if m.cursor < len(m.snap.Results)-1 {
				m.cursor++
			}
			return nil
		case tea.KeyEnter:
			item, ok := m.overlay.Choose(m.cursor)
			if !ok {
				return nil
			}
			m.snap = m.overlay.Snapshot()
			m.input.Blur()
			return func() tea.Msg { return ResultChosenMsg{Item: item} }
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if v := m.input.Value(); v != m.snap.Query {
			m.overlay.SetQuery(v)
			m.snap = m.overlay.Snapshot()
			m.cursor = 0
		}
		return cmd
	}
	return nil
}

// sync copies the overlay snapshot into the model.
func (m *SearchModel) sync() tea.Cmd {
	wasOpen, wasLoading := m.snap.Open, m.snap.Loading
	m.snap = m.overlay.Snapshot()

	if m.cursor >= len(m.snap.Results) {
		m.cursor = max(0, len(m.snap.Results)-1)
	}
	if m.input.Value() != m.snap.Query {
		m.input.SetValue(m.snap.Query)
	}

	var cmds []tea.Cmd
	switch {
	case m.snap.Open && !wasOpen:
		cmds = append(cmds, m.input.Focus())
	case !m.snap.Open && wasOpen:
		m.input.Blur()
	}
	if m.snap.Loading && !wasLoading {
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// View draws the overlay box, or nothing when closed.
func (m *SearchModel) View(width int) string {
	if !m.snap.Open {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.snap.Loading && strings.TrimSpace(m.snap.Query) != "":
		fmt.Fprintf(&b, "%s Searching…", m.spinner.View())
	case m.snap.Message() != "":
		b.WriteString(stepStyle.Render(m.snap.Message()))
	default:
		for i, item := range m.snap.Results {
			title := item.Title
			prefix := "  "
			if i == m.cursor {
				prefix = cursorStyle.Render("> ")
				title = selectedTitle.Render(title)
			}
			fmt.Fprintf(&b, "%s%s  %s\n", prefix, title, urlStyle.Render(item.URL))
			if item.Excerpt != "" {
				fmt.Fprintf(&b, "    %s\n", RenderExcerpt(item.Excerpt, func(s string) string { return markStyle.Render(s) }))
			}
		}
	}

	style := overlayStyle
	if width > 4 {
		style = style.Width(width - 4)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		style.Render(strings.TrimRight(b.String(), "\n")),
		helpStyle.Render("type to search • ↑/↓ move • enter open • esc close"),
	)
}

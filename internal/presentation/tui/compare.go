package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/wayfinder/pkg/compare"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// compareChangedMsg tells the model to re-read the rotator snapshot.
type compareChangedMsg struct{}

// CompareModel renders a compare.Rotator under the wizard.
type CompareModel struct {
	rotator *compare.Rotator
	snap    compare.Snapshot
	err     error

	changed chan struct{}
	done    chan struct{}
}

// NewCompareModel builds the carousel. Extra options are applied after the
// model's own change listener.
func NewCompareModel(opts ...compare.Option) *CompareModel {
	m := &CompareModel{
		changed: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	rotatorOpts := append([]compare.Option{
		compare.WithOnChange(func(compare.Snapshot) { m.notify() }),
	}, opts...)
	m.rotator = compare.New(rotatorOpts...)
	m.snap = m.rotator.Snapshot()
	return m
}

// Rotator exposes the underlying rotator.
func (m *CompareModel) Rotator() *compare.Rotator {
	return m.rotator
}

func (m *CompareModel) notify() {
	select {
	case m.changed <- struct{}{}:
	default:
	}
}

// Init starts rotation and listens for changes.
func (m *CompareModel) Init() tea.Cmd {
	m.rotator.Start()
	return m.listen()
}

func (m *CompareModel) listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.changed:
			return compareChangedMsg{}
		case <-m.done:
			return nil
		}
	}
}

// Close stops rotation and the listener.
func (m *CompareModel) Close() {
	m.rotator.Stop()
	select {
	case <-m.done:
	default:
		close(m.done)
	}
}

// Update handles rotator notifications and the carousel keys: tab moves to
// the next scenario and c copies its Wesichain code. It reports whether the
// message was consumed.
func (m *CompareModel) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case compareChangedMsg:
		m.snap = m.rotator.Snapshot()
		return m.listen(), true
	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			m.rotator.Advance()
		case "c":
			_, m.err = m.rotator.Copy()
		default:
			return nil, false
		}
		m.snap = m.rotator.Snapshot()
		return nil, true
	}
	return nil, false
}

// View draws the scenario tabs and both samples side by side.
func (m *CompareModel) View(width int) string {
	var tabs []string
	for i, title := range m.snap.Titles {
		if i == m.snap.Index {
			tabs = append(tabs, cursorStyle.Render("["+title+"]"))
		} else {
			tabs = append(tabs, stepStyle.Render(" "+title+" "))
		}
	}

	col := compareStyle
	if width > 8 {
		col = col.Width(width/2 - 4)
	}
	sc := m.snap.Scenario
	copyLabel := "c copy"
	if m.snap.Copied {
		copyLabel = statusStyle.Render("Copied!")
	}

	var b strings.Builder
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		col.Render(renderSample(sc.Baseline, errorStyle, "")),
		col.Render(renderSample(sc.Wesichain, statusStyle, copyLabel)),
	))
	b.WriteString("\n")
	b.WriteString(descStyle.Render(compare.Tagline))
	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render(m.err.Error()))
	}
	return b.String()
}

func renderSample(s compare.Sample, notes lipgloss.Style, action string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", titleStyle.Render(s.Language), stepStyle.Render("("+s.Framework+")"))
	b.WriteString(notes.Render(strings.Join(s.Notes, " · ")))
	b.WriteString("\n\n")
	b.WriteString(s.Code)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s %s", stepStyle.Render(s.Stat.Label), notes.Render(s.Stat.Value))
	if action != "" {
		b.WriteString("   " + action)
	}
	return b.String()
}

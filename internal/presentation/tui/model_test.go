package tui

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/wayfinder"
	"github.com/aretw0/wayfinder/internal/testutils"
	"github.com/aretw0/wayfinder/pkg/adapters/memory"
	"github.com/aretw0/wayfinder/pkg/catalog"
	"github.com/aretw0/wayfinder/pkg/compare"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/search"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T) *wayfinder.Engine {
	t.Helper()
	loader, err := catalog.Loader()
	require.NoError(t, err)
	eng, err := wayfinder.New("", wayfinder.WithLoader(loader))
	require.NoError(t, err)
	return eng
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_Navigation(t *testing.T) {
	m := NewModel(context.Background(), newEngine(t), "tui", WithKeyboard(search.NewKeyboard()))

	view := m.View()
	assert.Contains(t, view, "Step 1")
	assert.Contains(t, view, "What are you building?")
	assert.Contains(t, view, "1. A ReAct agent with tools →")
	assert.Contains(t, view, "4. Just getting started\n")
	assert.NotContains(t, view, "← Back")

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "rag-complexity", m.State().CurrentID())
	assert.Contains(t, m.View(), "Step 2")
	assert.Contains(t, m.View(), "b. ← Back")

	m.Update(runes("1"))
	assert.Equal(t, []string{"start", "rag-complexity", "wesichain-rag"}, m.State().History)
	view = m.View()
	assert.Contains(t, view, "## Recommended: wesichain-rag")
	assert.Contains(t, view, "cargo add wesichain-rag")
	assert.Contains(t, view, "r. Start Over")

	m.Update(runes("b"))
	assert.Equal(t, "rag-complexity", m.State().CurrentID())

	m.Update(runes("9"))
	assert.ErrorIs(t, m.Err(), domain.ErrInvalidOption)
	assert.Equal(t, "rag-complexity", m.State().CurrentID())

	m.Update(runes("r"))
	assert.Equal(t, []string{"start"}, m.State().History)
	assert.NoError(t, m.Err())

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_SearchOverlay(t *testing.T) {
	index := memory.NewIndex([]domain.Entry{
		{Slug: "guides/rag", Title: "RAG pipelines", Body: "Build a rag pipeline."},
	})
	kb := search.NewKeyboard()
	sm := NewSearchModel(index, search.WithDelay(time.Millisecond))
	m := NewModel(context.Background(), newEngine(t), "tui", WithSearch(sm), WithKeyboard(kb))
	defer sm.Close()
	assert.Equal(t, 1, kb.Len())

	pump := func() {
		select {
		case <-sm.changed:
		default:
		}
		m.Update(overlayChangedMsg{})
	}

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlK})
	pump()
	require.True(t, sm.Open())
	assert.Contains(t, m.View(), search.PromptMessage)

	m.Update(runes("r"))
	m.Update(runes("a"))
	m.Update(runes("g"))
	assert.Equal(t, "start", m.State().CurrentID(), "typing goes to the overlay")

	require.Eventually(t, func() bool {
		snap := sm.Overlay().Snapshot()
		return !snap.Loading && len(snap.Results) == 1
	}, time.Second, 5*time.Millisecond)
	pump()
	assert.Contains(t, m.View(), "RAG pipelines")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, ResultChosenMsg{}, msg)
	m.Update(msg)
	assert.False(t, sm.Open())
	assert.Contains(t, m.View(), "Open /guides/rag")

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlK})
	pump()
	assert.Equal(t, "rag", sm.Overlay().Snapshot().Query, "query survives close and reopen")

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	pump()
	assert.False(t, sm.Open())

	sm.Close()
	assert.Equal(t, 0, kb.Len())
}

func TestModel_CompareCarousel(t *testing.T) {
	clock := &testutils.ManualClock{}
	var copied []string
	cm := NewCompareModel(
		compare.WithClock(clock),
		compare.WithClipboard(func(s string) error {
			copied = append(copied, s)
			return nil
		}),
	)
	m := NewModel(context.Background(), newEngine(t), "tui", WithKeyboard(search.NewKeyboard()), WithCompare(cm))

	require.NotNil(t, m.Init())
	assert.True(t, cm.Rotator().Snapshot().Running)
	view := m.View()
	assert.Contains(t, view, "[ReAct Agent]")
	assert.Contains(t, view, "120ms cold start")
	assert.Contains(t, view, "tab next sample")

	clock.Advance(compare.DefaultInterval)
	clock.Wait()
	m.Update(compareChangedMsg{})
	assert.Contains(t, m.View(), "[RAG Pipeline]")

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Contains(t, m.View(), "[Graph Workflow]")
	assert.Equal(t, "start", m.State().CurrentID())

	m.Update(runes("c"))
	require.Len(t, copied, 1)
	assert.Contains(t, copied[0], "SqliteCheckpointer")
	assert.Contains(t, m.View(), "Copied!")

	clock.Advance(compare.CopiedFor)
	clock.Wait()
	m.Update(compareChangedMsg{})
	assert.NotContains(t, m.View(), "Copied!")

	m.Update(runes("1"))
	assert.Equal(t, "agent-memory", m.State().CurrentID())

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.False(t, cm.Rotator().Snapshot().Running)
	assert.Zero(t, clock.Pending())
}

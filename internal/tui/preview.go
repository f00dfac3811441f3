// Package tui implements the terminal preview surface. It renders the
// session's preview cursor as the playback player advances it; the player
// remains the single scheduling authority, the UI only observes.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/animforge/animforge/pkg/sprite"
)

// tickMsg carries the cursor position of one player advance.
type tickMsg int

// Model is the bubbletea model for the preview UI.
type Model struct {
	session *sprite.Session
	fps     int
	ticks   chan int
	err     error
}

// NewModel creates a preview model over the session. The session's tick
// callback must not be claimed by another consumer.
func NewModel(session *sprite.Session, fps int) *Model {
	m := &Model{
		session: session,
		fps:     fps,
		ticks:   make(chan int, 1),
	}
	session.OnTick(func(cursor int) {
		// Drop ticks the UI has not consumed yet; only the latest
		// cursor matters for rendering.
		select {
		case m.ticks <- cursor:
		default:
		}
	})
	return m
}

// Init starts playback and begins waiting for player ticks.
func (m *Model) Init() tea.Cmd {
	if err := m.session.Play(context.Background()); err != nil {
		m.err = err
		return tea.Quit
	}
	return m.waitForTick()
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.session.Playing() {
				_ = m.session.Pause()
			}
			return m, tea.Quit
		case " ":
			if m.session.Playing() {
				_ = m.session.Pause()
				return m, nil
			}
			if err := m.session.Play(context.Background()); err != nil {
				m.err = err
				return m, tea.Quit
			}
			return m, m.waitForTick()
		case "r":
			m.session.Rewind()
			return m, nil
		case "+", "=":
			if m.fps < 60 {
				m.fps++
				_ = m.session.SetRate(m.fps)
			}
			return m, nil
		case "-":
			if m.fps > 1 {
				m.fps--
				_ = m.session.SetRate(m.fps)
			}
			return m, nil
		}
	case tickMsg:
		return m, m.waitForTick()
	}
	return m, nil
}

// View renders the current playback state.
func (m *Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("preview error: %v\n", m.err)
	}

	frames := m.session.Frames()
	if len(frames) == 0 {
		return "no frames\n"
	}

	cursor := m.session.Cursor()
	if cursor >= len(frames) {
		cursor = 0
	}
	dims := m.session.CanvasDimensions()

	var b strings.Builder
	fmt.Fprintf(&b, "frame %d/%d  %s\n", cursor+1, len(frames), frames[cursor].Name)
	fmt.Fprintf(&b, "canvas %dx%d  %d fps  %.2fs\n", dims.Width, dims.Height, m.fps, m.session.Duration())

	state := "paused"
	if m.session.Playing() {
		state = "playing"
	}
	fmt.Fprintf(&b, "[%s]  space pause  r rewind  +/- rate  q quit\n", state)
	return b.String()
}

// waitForTick blocks until the player advances the cursor.
func (m *Model) waitForTick() tea.Cmd {
	return func() tea.Msg {
		return tickMsg(<-m.ticks)
	}
}

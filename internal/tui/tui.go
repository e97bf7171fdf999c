// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/staranto/lructl/internal/session"
)

const (
	keyField = iota
	valueField
)

type Options struct {
	Color bool
}

type styles struct {
	title  lipgloss.Style
	label  lipgloss.Style
	ok     lipgloss.Style
	failed lipgloss.Style
	panel  lipgloss.Style
	help   lipgloss.Style
}

func newStyles(color bool) styles {
	s := styles{
		title:  lipgloss.NewStyle().Bold(true),
		label:  lipgloss.NewStyle().Bold(true),
		ok:     lipgloss.NewStyle(),
		failed: lipgloss.NewStyle(),
		panel:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		help:   lipgloss.NewStyle().Faint(true),
	}
	if color {
		s.title = s.title.Foreground(lipgloss.Color("12"))
		s.ok = s.ok.Foreground(lipgloss.Color("10"))
		s.failed = s.failed.Foreground(lipgloss.Color("9"))
		s.panel = s.panel.BorderForeground(lipgloss.Color("8"))
	}
	return s
}

// resultMsg carries the outcome of a Get or Put back into Update.
type resultMsg struct {
	res session.Result
}

// errMsg reports input that never reached the cache.
type errMsg struct {
	err error
}

type Model struct {
	sess   *session.Session
	inputs [2]textinput.Model
	focus  int
	status string
	failed bool
	styles styles
}

func New(sess *session.Session, opts Options) Model {
	m := Model{
		sess:   sess,
		styles: newStyles(opts.Color),
	}

	for i, prompt := range []string{"Key:   ", "Value: "} {
		ti := textinput.New()
		ti.Prompt = prompt
		ti.Placeholder = "integer"
		ti.CharLimit = 18
		ti.Width = 20
		m.inputs[i] = ti
	}
	m.inputs[keyField].Focus()

	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "shift+tab":
			return m, m.focusOn(1 - m.focus)
		case "ctrl+g":
			return m, m.getCmd()
		case "ctrl+p":
			return m, m.putCmd()
		case "enter":
			if m.focus == keyField {
				return m, m.getCmd()
			}
			return m, m.putCmd()
		}

	case resultMsg:
		m.status = msg.res.Message()
		m.failed = msg.res.Op == session.OpGet && !msg.res.Found
		if msg.res.Op == session.OpPut {
			m.inputs[keyField].Reset()
			m.inputs[valueField].Reset()
			return m, m.focusOn(keyField)
		}
		return m, nil

	case errMsg:
		m.status = msg.err.Error()
		m.failed = true
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) focusOn(field int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = field
	return m.inputs[field].Focus()
}

func (m Model) getCmd() tea.Cmd {
	sess, raw := m.sess, m.inputs[keyField].Value()
	return func() tea.Msg {
		key, err := session.ParseKey(raw)
		if err != nil {
			return errMsg{err}
		}
		return resultMsg{sess.Get(key)}
	}
}

func (m Model) putCmd() tea.Cmd {
	sess := m.sess
	rawKey, rawValue := m.inputs[keyField].Value(), m.inputs[valueField].Value()
	return func() tea.Msg {
		key, err := session.ParseKey(rawKey)
		if err != nil {
			return errMsg{err}
		}
		value, err := session.ParseValue(rawValue)
		if err != nil {
			return errMsg{err}
		}
		return resultMsg{sess.Put(key, value)}
	}
}

func (m Model) View() string {
	var b strings.Builder

	cache := m.sess.Cache()
	b.WriteString(m.styles.title.Render(fmt.Sprintf("LRU Cache Manager (capacity %d)", cache.Cap())))
	b.WriteString("\n\n")
	for _, in := range m.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.status != "" {
		style := m.styles.ok
		if m.failed {
			style = m.styles.failed
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n\n")
	}

	lines := []string{m.styles.label.Render("Cache State")}
	for k, v := range cache.All() {
		lines = append(lines, fmt.Sprintf("Key: %d, Value: %d", k, v))
	}
	if len(lines) == 1 {
		lines = append(lines, "(empty)")
	}
	b.WriteString(m.styles.panel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
	b.WriteString("\n")

	st := m.sess.Stats()
	b.WriteString(fmt.Sprintf("gets %s  hits %s  misses %s  puts %s  evictions %s\n",
		humanize.Comma(st.Gets), humanize.Comma(st.Hits), humanize.Comma(st.Misses),
		humanize.Comma(st.Puts), humanize.Comma(st.Evictions)))
	b.WriteString(m.styles.help.Render("tab switch field • enter/ctrl+g get • ctrl+p put • esc quit"))
	b.WriteString("\n")

	return b.String()
}

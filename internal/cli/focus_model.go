package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/focusquest/internal/cli/formatter"
	"github.com/alexanderramin/focusquest/internal/domain"
	"github.com/alexanderramin/focusquest/internal/timer"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// maxToasts caps the notification stack under the clock.
const maxToasts = 4

const focusBarWidth = 30

// ── messages ─────────────────────────────────────────────────────────────────

// focusTickMsg is delivered once per second while a session runs. Ticks
// from an older chain carry a stale gen and are dropped.
type focusTickMsg struct {
	gen int
	at  time.Time
}

// ── keys ─────────────────────────────────────────────────────────────────────

type focusKeyMap struct {
	Toggle key.Binding
	Micro  key.Binding
	Extend key.Binding
	Skip   key.Binding
	Reset  key.Binding
	Quit   key.Binding
}

func defaultFocusKeys() focusKeyMap {
	return focusKeyMap{
		Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/pause")),
		Micro:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "micro")),
		Extend: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "+5 min")),
		Skip:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skip")),
		Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k focusKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Micro, k.Extend, k.Skip, k.Reset, k.Quit}
}

// ── model ────────────────────────────────────────────────────────────────────

// focusModel drives the timer engine from a one-second tick and renders
// the countdown with the notification stack produced by the coordinator.
type focusModel struct {
	ctx    context.Context
	engine *timer.Engine
	feed   *toastFeed
	keys   focusKeyMap

	micro  int // minutes for the first start, 0 for a full session
	gen    int // current tick chain
	toasts []string
	err    error
	width  int
}

func newFocusModel(ctx context.Context, engine *timer.Engine, feed *toastFeed, micro int) focusModel {
	return focusModel{
		ctx:    ctx,
		engine: engine,
		feed:   feed,
		keys:   defaultFocusKeys(),
		micro:  micro,
	}
}

func (m focusModel) Init() tea.Cmd {
	if m.engine.IsRunning() {
		return focusTick(m.gen)
	}
	return nil
}

func focusTick(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return focusTickMsg{gen: gen, at: t}
	})
}

func (m focusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case focusTickMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.err = m.engine.Tick(m.ctx)
		m.collectToasts()
		if m.engine.IsRunning() {
			return m, focusTick(m.gen)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m focusModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	wasRunning := m.engine.IsRunning()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		m.toggle()
	case key.Matches(msg, m.keys.Micro):
		if m.engine.State() == domain.StateIdle {
			m.err = m.engine.StartMicro(m.ctx, timer.MicroPresets[0])
		}
	case key.Matches(msg, m.keys.Extend):
		m.engine.Extend(m.ctx, timer.ExtendSeconds)
	case key.Matches(msg, m.keys.Skip):
		m.engine.Skip(m.ctx)
		m.err = nil
	case key.Matches(msg, m.keys.Reset):
		m.engine.Reset(m.ctx)
		m.err = nil
	}
	m.collectToasts()
	return m, m.restartTicks(wasRunning)
}

// restartTicks starts a fresh chain when the countdown just began so the
// first second is a full one, and retires the chain when it stopped.
func (m *focusModel) restartTicks(wasRunning bool) tea.Cmd {
	running := m.engine.IsRunning()
	if running == wasRunning {
		return nil
	}
	m.gen++
	if running {
		return focusTick(m.gen)
	}
	return nil
}

func (m *focusModel) toggle() {
	switch st := m.engine.State(); {
	case st == domain.StateIdle:
		if m.micro > 0 {
			m.err = m.engine.StartMicro(m.ctx, m.micro)
			m.micro = 0
			return
		}
		m.err = m.engine.Start(m.ctx)
	case st == domain.StatePaused:
		m.engine.Resume(m.ctx)
	case st.IsRunning():
		m.engine.Pause(m.ctx)
	}
}

func (m *focusModel) collectToasts() {
	fresh := m.feed.Drain()
	if len(fresh) == 0 {
		return
	}
	m.toasts = append(m.toasts, fresh...)
	if over := len(m.toasts) - maxToasts; over > 0 {
		m.toasts = m.toasts[over:]
	}
}

func (m focusModel) View() string {
	var b strings.Builder
	e := m.engine

	header := formatter.StateBadge(e.State(), e.Kind()) +
		formatter.Dim(fmt.Sprintf("  Round %d/%d", e.Round(), e.RoundsPerCycle()))
	if e.IsMicro() {
		header += formatter.Dim("  micro")
	}
	b.WriteString(header + "\n\n")

	clock := lipgloss.NewStyle().Bold(true).Padding(0, 2).
		Render(formatter.KindStyle(e.Kind()).Render(formatter.FormatClock(e.Remaining())))
	b.WriteString(clock + "\n")
	b.WriteString(formatter.RenderProgress(e.PercentComplete(), focusBarWidth) + "\n")

	if label := e.TaskLabel(); label != "" {
		b.WriteString(formatter.Dim("Task: ") + label + "\n")
	}
	if e.Extensions() > 0 {
		b.WriteString(formatter.Dim("Extended "+formatter.Plural(e.Extensions(), "time", "times")) + "\n")
	}

	if len(m.toasts) > 0 {
		b.WriteString("\n")
		for _, t := range m.toasts {
			b.WriteString(t + "\n")
		}
	}
	if m.err != nil {
		b.WriteString("\n" + formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	}

	hints := make([]string, 0, len(m.keys.ShortHelp()))
	for _, k := range m.keys.ShortHelp() {
		hints = append(hints, formatter.Dim(k.Help().Key+": "+k.Help().Desc))
	}
	sep := formatter.Dim(strings.Repeat("─", max(m.width, focusBarWidth+10)))
	b.WriteString("\n" + sep + "\n" + strings.Join(hints, "  "))
	return b.String()
}

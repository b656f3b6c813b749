package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"zen/internal/apiclient"
	"zen/internal/model"
	"zen/internal/timer"
)

var (
	clockStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	phaseStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	stateStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

type tickMsg struct {
	remaining int
}

type expireMsg struct {
	phase timer.Phase
}

type sessionMsg struct {
	session *model.Session
}

type errMsg struct {
	err error
}

// bellNotifier rings the terminal bell; the tone preset itself only matters
// to clients with a speaker API.
type bellNotifier struct{}

func (bellNotifier) Notify(timer.Tone) {
	fmt.Fprint(os.Stderr, "\a")
}

// TimerModel hosts the countdown engine for one session.
type TimerModel struct {
	engine  *timer.Engine
	client  *apiclient.Client
	cfg     model.Config
	session *model.Session

	events chan tea.Msg

	input    textinput.Model
	entering string // "", "distraction" or "note"

	expired  timer.Phase
	status   string
	err      error
	quitting bool
}

func NewTimer(client *apiclient.Client, cfg model.Config, session *model.Session) TimerModel {
	events := make(chan tea.Msg, 16)

	// Non-blocking sends: a stalled UI must never wedge the countdown
	// goroutine. The view re-reads the engine snapshot on every render, so
	// dropped ticks cost nothing.
	eng := timer.New(bellNotifier{},
		timer.WithOnTick(func(remaining int) {
			select {
			case events <- tickMsg{remaining: remaining}:
			default:
			}
		}),
		timer.WithOnExpire(func(phase timer.Phase) {
			select {
			case events <- expireMsg{phase: phase}:
			default:
			}
		}),
	)
	eng.Initialize(cfg)

	input := textinput.New()
	input.CharLimit = 200
	input.Width = 48

	return TimerModel{
		engine:  eng,
		client:  client,
		cfg:     cfg,
		session: session,
		events:  events,
		input:   input,
	}
}

func (m TimerModel) Init() tea.Cmd {
	return m.waitForEvent()
}

func (m TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, m.waitForEvent()

	case expireMsg:
		m.expired = msg.phase
		m.status = fmt.Sprintf("%s phase complete", phaseLabel(msg.phase))
		return m, m.waitForEvent()

	case sessionMsg:
		m.session = msg.session
		m.status = "saved"
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.entering != "" {
			return m.updateEntry(msg)
		}
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m TimerModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		m.engine.Stop()
		return m, tea.Quit

	case "s":
		m.engine.Start()
		m.status = ""
		return m, nil

	case "x":
		m.engine.Stop()
		return m, nil

	case "r":
		m.engine.Reset()
		m.expired = ""
		m.status = ""
		return m, nil

	case "f":
		m.switchPhase(timer.PhaseFocus)
		return m, nil

	case "b":
		m.switchPhase(timer.PhaseShortBreak)
		return m, nil

	case "l":
		m.switchPhase(timer.PhaseLongBreak)
		return m, nil

	case "d":
		m.entering = "distraction"
		m.input.Placeholder = "what distracted you?"
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink

	case "i":
		m.entering = "note"
		m.input.Placeholder = "focus note"
		m.input.SetValue(m.session.FocusInput)
		m.input.Focus()
		return m, textinput.Blink
	}

	return m, nil
}

func (m TimerModel) updateEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.entering = ""
		m.input.Blur()
		return m, nil

	case "enter":
		kind := m.entering
		text := m.input.Value()
		m.entering = ""
		m.input.Blur()
		if kind == "distraction" {
			return m, m.addDistraction(text)
		}
		return m, m.saveNote(text)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m TimerModel) View() string {
	if m.quitting {
		return ""
	}

	snap := m.engine.Snapshot()

	view := fmt.Sprintf("%s  %s\n%s\n",
		phaseStyle.Render(phaseLabel(snap.Phase)),
		stateStyle.Render(string(snap.State)),
		clockStyle.Render(timer.FormatTime(snap.Remaining)),
	)

	if len(m.session.Distractions) > 0 {
		view += "\ndistractions:\n"
		for _, d := range m.session.Distractions {
			at := time.UnixMilli(d.At).Format("15:04:05")
			view += detailStyle.Render(fmt.Sprintf("  %s  %s", at, d.Text)) + "\n"
		}
	}
	if m.session.FocusInput != "" {
		view += "\nnote: " + detailStyle.Render(m.session.FocusInput) + "\n"
	}

	if m.entering != "" {
		view += "\n" + m.input.View() + "\n"
	}
	if m.status != "" {
		view += "\n" + stateStyle.Render(m.status) + "\n"
	}
	if m.expired != "" {
		hint := "press b for a short break, l for a long one"
		if m.expired != timer.PhaseFocus {
			hint = "press f to get back to focus"
		}
		view += stateStyle.Render(hint) + "\n"
	}
	if m.err != nil {
		view += "\n" + errStyle.Render("error: "+m.err.Error()) + "\n"
	}

	view += helpStyle.Render("\ns start • x stop • r reset • f/b/l phase • d distraction • i note • q quit")
	return view
}

// GetSession returns the latest session record seen by the UI.
func (m TimerModel) GetSession() *model.Session {
	return m.session
}

func (m *TimerModel) switchPhase(phase timer.Phase) {
	if m.engine.SetPhase(phase) {
		m.expired = ""
		m.status = ""
	} else {
		m.status = "stop the timer before switching phase"
	}
}

func (m TimerModel) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

func (m TimerModel) addDistraction(text string) tea.Cmd {
	return func() tea.Msg {
		session, err := m.client.AddDistraction(context.Background(), m.session.ID, text)
		if err != nil {
			return errMsg{err: err}
		}
		return sessionMsg{session: session}
	}
}

func (m TimerModel) saveNote(text string) tea.Cmd {
	return func() tea.Msg {
		session, err := m.client.SaveFocusInput(context.Background(), m.session.ID, text)
		if err != nil {
			return errMsg{err: err}
		}
		return sessionMsg{session: session}
	}
}

func phaseLabel(phase timer.Phase) string {
	switch phase {
	case timer.PhaseShortBreak:
		return "short break"
	case timer.PhaseLongBreak:
		return "long break"
	default:
		return "focus"
	}
}

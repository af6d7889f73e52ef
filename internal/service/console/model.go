package console

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/oshokin/briefcase-alarm/internal/device"
	"github.com/oshokin/briefcase-alarm/internal/display"
	"github.com/oshokin/briefcase-alarm/internal/domain/briefcase"
	"github.com/oshokin/briefcase-alarm/internal/service/panel"
)

// PanelClient is the part of the panel client the console uses.
type PanelClient interface {
	Press(ctx context.Context, button briefcase.Button) error
	SetDial(ctx context.Context, value float64) error
	SetMotion(ctx context.Context, axes briefcase.Axes) error
	GetStatus(ctx context.Context) (*briefcase.Status, error)
}

// Console tuning.
const (
	// DefaultPollInterval is how often the status is refreshed.
	DefaultPollInterval = 200 * time.Millisecond
	// DialStep is how far one key press turns the dial.
	DialStep = 0.05
	// title is drawn above the status display.
	title = "Briefcase alarm"
)

// ShakeAxes is the accelerometer reading sent while shaking.
//
//nolint:gochecknoglobals // Constant-like.
var ShakeAxes = panel.DefaultShakeAxes

//nolint:gochecknoglobals // Styles are shared by the view.
var (
	ledOnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	ledOffStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	infoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// statusMsg carries a fetched status.
type statusMsg struct {
	status *briefcase.Status
	err    error
}

// actionMsg reports the result of a control call.
type actionMsg struct {
	err error
}

// tickMsg schedules the next poll.
type tickMsg time.Time

// Model is the bubbletea model of the console.
type Model struct {
	// ctx bounds every call made by the console.
	ctx context.Context //nolint:containedctx // bubbletea commands have no context parameter.
	// client talks to the unit.
	client PanelClient
	// poll is the status refresh period.
	poll time.Duration

	keys keyMap
	help help.Model

	// dial is the last dial position sent.
	dial float64
	// shaking tells whether ShakeAxes is being applied.
	shaking bool
	// status is the last fetched status.
	status *briefcase.Status
	// err is the last call error, cleared by the next success.
	err error
}

// NewModel returns a console model. A non-positive poll uses DefaultPollInterval.
func NewModel(ctx context.Context, client PanelClient, poll time.Duration) Model {
	if poll <= 0 {
		poll = DefaultPollInterval
	}

	return Model{
		ctx:    ctx,
		client: client,
		poll:   poll,
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
}

// Init fetches the first status and starts polling.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchStatus(), m.tick())
}

// Update handles keys, poll ticks and call results.
//
//nolint:ireturn // bubbletea requires tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKey(msg)
	case tickMsg:
		return m, tea.Batch(m.fetchStatus(), m.tick())
	case statusMsg:
		if msg.err != nil {
			m.err = msg.err

			return m, nil
		}

		m.status, m.err = msg.status, nil
	case actionMsg:
		m.err = msg.err
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	}

	return m, nil
}

// updateKey maps a key press to a panel call.
//
//nolint:ireturn // bubbletea requires tea.Model.
func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if button, ok := m.keys.buttonFor(msg); ok {
		return m, m.call(func(ctx context.Context) error { return m.client.Press(ctx, button) })
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.DialUp):
		m.dial = min(1, m.dial+DialStep)

		return m, m.setDial(m.dial)
	case key.Matches(msg, m.keys.DialDown):
		m.dial = max(0, m.dial-DialStep)

		return m, m.setDial(m.dial)
	case key.Matches(msg, m.keys.Shake):
		m.shaking = !m.shaking

		axes := briefcase.Axes{}
		if m.shaking {
			axes = ShakeAxes
		}

		return m, m.call(func(ctx context.Context) error { return m.client.SetMotion(ctx, axes) })
	}

	return m, nil
}

// setDial sends one dial position.
func (m Model) setDial(value float64) tea.Cmd {
	return m.call(func(ctx context.Context) error { return m.client.SetDial(ctx, value) })
}

// call runs fn as a command and reports its error.
func (m Model) call(fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return actionMsg{err: fn(m.ctx)}
	}
}

// fetchStatus requests the unit status.
func (m Model) fetchStatus() tea.Cmd {
	return func() tea.Msg {
		status, err := m.client.GetStatus(m.ctx)

		return statusMsg{status: status, err: err}
	}
}

// tick waits one poll period.
func (m Model) tick() tea.Cmd {
	return tea.Tick(m.poll, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// View draws the display frame, the lights and the controls.
func (m Model) View() string {
	var sb strings.Builder

	if m.status == nil {
		sb.WriteString(display.Frame(title, nil))
	} else {
		sb.WriteString(display.Frame(title+"  "+m.status.UnitID, m.status.Lines))
		sb.WriteString("\n")
		sb.WriteString(infoStyle.Render(fmt.Sprintf("briefcase %s · security %s · alarm %s · pin edit %s",
			m.status.Briefcase, m.status.Security, m.status.Alarm, m.status.PinEdit)))
		sb.WriteString("\n")
		sb.WriteString(renderLEDs(m.status.LEDs))
	}

	shaking := "still"
	if m.shaking {
		shaking = "shaking"
	}

	sb.WriteString("\n")
	sb.WriteString(infoStyle.Render(fmt.Sprintf("dial %.2f (%ds) · case %s", m.dial, device.DialSeconds(m.dial), shaking)))

	if m.err != nil {
		sb.WriteString("\n")
		sb.WriteString(errorStyle.Render(m.err.Error()))
	}

	sb.WriteString("\n\n")
	sb.WriteString(m.help.View(m.keys))

	return sb.String()
}

// renderLEDs draws the alarm lights.
func renderLEDs(leds []bool) string {
	cells := make([]string, 0, len(leds))
	for _, on := range leds {
		if on {
			cells = append(cells, ledOnStyle.Render("●"))
		} else {
			cells = append(cells, ledOffStyle.Render("○"))
		}
	}

	return "lights " + strings.Join(cells, " ")
}

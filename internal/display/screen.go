package display

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/oshokin/briefcase-alarm/internal/domain/briefcase"
)

// Line identifies a fixed row of the status screen.
type Line int

// Status rows from top to bottom.
const (
	LineSecurity Line = iota
	LineAlarm
	LineInterval
	LineTime
	LineCase
	LineMotion
	LineCode
	LinePosition
	LineEdit
	lineCount
)

// LineWidth is the width every row is padded to.
const LineWidth = 21

// blank is an empty row.
//
//nolint:gochecknoglobals // Constant-like.
var blank = strings.Repeat(" ", LineWidth)

//nolint:gochecknoglobals // Styles are shared by all screens.
var (
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("34")).
			Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("34"))
	lineStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
)

// Screen is the status display. It is safe for concurrent use.
type Screen struct {
	// title is drawn above the status frame.
	title string

	mu    sync.RWMutex
	lines [lineCount]string
}

// NewScreen returns a blank screen with the given title.
func NewScreen(title string) *Screen {
	s := &Screen{title: title}
	for i := range s.lines {
		s.lines[i] = blank
	}

	return s
}

// Render applies e to the rows it owns. Unknown kinds are ignored.
//
//nolint:cyclop // One case per event kind.
func (s *Screen) Render(e briefcase.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := e.Payload

	switch e.Kind {
	case briefcase.EventSecurityDisabled:
		s.set(LineSecurity, "Security   : OFF")
	case briefcase.EventSecurityEnabled:
		s.set(LineSecurity, "Security   : ON")
	case briefcase.EventAlarmOn:
		s.set(LineAlarm, "Alarm      : ON")
	case briefcase.EventAlarmOff:
		s.set(LineAlarm, "Alarm      : OFF")
	case briefcase.EventAlarmPending:
		s.set(LineAlarm, "Alarm      : PENDING")
	case briefcase.EventTimeInterval:
		s.set(LineInterval, fmt.Sprintf("Interval   : %d", p[0]))
		s.set(LineTime, fmt.Sprintf("Time       : %d", p[1]))
	case briefcase.EventCountdownValue:
		s.set(LineTime, fmt.Sprintf("Time       : %d", p[1]))
	case briefcase.EventBriefcaseUnlocked:
		s.set(LineCase, "Case       : UNLOCKED")
		s.set(LineMotion, "")
	case briefcase.EventBriefcaseLocked:
		s.set(LineCase, "Case       : LOCKED")
		s.set(LineMotion, "")
	case briefcase.EventBriefcaseMoving:
		s.set(LineMotion, "             MOVING")
	case briefcase.EventDisplayedPin:
		s.set(LineCode, fmt.Sprintf("Code       : %c %c %c %c", p[0], p[1], p[2], p[3]))
	case briefcase.EventPosition:
		s.set(LinePosition, fmt.Sprintf("             %c %c %c %c", p[0], p[1], p[2], p[3]))
	case briefcase.EventDisplayClear:
		s.set(LineCode, "")
		s.set(LinePosition, "")
		s.set(LineEdit, "")
	case briefcase.EventPinEditOn:
		s.set(LineEdit, "             Edit Pin")
	case briefcase.EventPinEditOff:
		s.set(LineEdit, "")
	case briefcase.EventSavedPin:
		// Never shown.
	}
}

// set pads text to the row width. Must be called with mu held.
func (s *Screen) set(line Line, text string) {
	if len(text) < LineWidth {
		text += blank[:LineWidth-len(text)]
	}

	s.lines[line] = text
}

// Line returns one row, padded to LineWidth.
func (s *Screen) Line(line Line) string {
	if line < 0 || line >= lineCount {
		return ""
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lines[line]
}

// Lines returns every row from top to bottom.
func (s *Screen) Lines() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.lines))
	copy(out, s.lines[:])

	return out
}

// View draws the title and the framed status rows.
func (s *Screen) View() string {
	return Frame(s.title, s.Lines())
}

// Frame draws a title and status rows the way the unit's screen shows them.
// Remote consoles use it to draw lines fetched over the panel service.
func Frame(title string, lines []string) string {
	styled := make([]string, 0, len(lines))
	for _, l := range lines {
		styled = append(styled, lineStyle.Render(l))
	}

	body := frameStyle.Render(strings.Join(styled, "\n"))
	if title == "" {
		return body
	}

	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), body)
}

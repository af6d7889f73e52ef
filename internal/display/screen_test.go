package display

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/briefcase-alarm/internal/domain/briefcase"
)

// trimmed returns a row without padding.
func trimmed(s *Screen, line Line) string {
	return strings.TrimRight(s.Line(line), " ")
}

// TestScreen_BootSequence renders the power-on announcement.
func TestScreen_BootSequence(t *testing.T) {
	t.Parallel()

	s := NewScreen("Briefcase")
	for _, e := range []briefcase.Event{
		briefcase.NewEvent(briefcase.EventSecurityDisabled),
		briefcase.NewEvent(briefcase.EventAlarmOff),
		briefcase.NewValueEvent(briefcase.EventTimeInterval, 10),
		briefcase.NewEvent(briefcase.EventBriefcaseUnlocked),
		briefcase.NewEvent(briefcase.EventDisplayClear),
	} {
		s.Render(e)
	}

	require.Equal(t, "Security   : OFF", trimmed(s, LineSecurity))
	require.Equal(t, "Alarm      : OFF", trimmed(s, LineAlarm))
	require.Equal(t, "Interval   : 10", trimmed(s, LineInterval))
	require.Equal(t, "Time       : 10", trimmed(s, LineTime))
	require.Equal(t, "Case       : UNLOCKED", trimmed(s, LineCase))
	require.Empty(t, trimmed(s, LineCode))

	for _, l := range s.Lines() {
		require.Len(t, l, LineWidth)
	}
}

// TestScreen_PinEditing shows code, cursor and edit marker, then clears them.
func TestScreen_PinEditing(t *testing.T) {
	t.Parallel()

	s := NewScreen("")
	s.Render(briefcase.NewEvent(briefcase.EventPinEditOn))
	s.Render(briefcase.NewPayloadEvent(briefcase.EventDisplayedPin, [4]byte{'1', '2', '3', '4'}))
	s.Render(briefcase.NewPayloadEvent(briefcase.EventPosition, briefcase.Cursor(2).Marker()))

	require.Equal(t, "Code       : 1 2 3 4", trimmed(s, LineCode))
	require.Equal(t, "                 -", s.Line(LinePosition)[:18])
	require.Equal(t, 17, strings.IndexByte(s.Line(LinePosition), '-'))
	require.Equal(t, "             Edit Pin", trimmed(s, LineEdit))

	s.Render(briefcase.NewEvent(briefcase.EventPinEditOff))
	require.Empty(t, trimmed(s, LineEdit))

	s.Render(briefcase.NewEvent(briefcase.EventDisplayClear))
	require.Empty(t, trimmed(s, LineCode))
	require.Empty(t, trimmed(s, LinePosition))
}

// TestScreen_Countdown updates only the time row and marks movement.
func TestScreen_Countdown(t *testing.T) {
	t.Parallel()

	s := NewScreen("")
	s.Render(briefcase.NewValueEvent(briefcase.EventTimeInterval, 30))
	s.Render(briefcase.NewEvent(briefcase.EventBriefcaseMoving))
	s.Render(briefcase.NewValueEvent(briefcase.EventCountdownValue, 29))
	s.Render(briefcase.NewEvent(briefcase.EventAlarmPending))

	require.Equal(t, "Interval   : 30", trimmed(s, LineInterval))
	require.Equal(t, "Time       : 29", trimmed(s, LineTime))
	require.Equal(t, "             MOVING", trimmed(s, LineMotion))
	require.Equal(t, "Alarm      : PENDING", trimmed(s, LineAlarm))

	s.Render(briefcase.NewEvent(briefcase.EventBriefcaseLocked))
	require.Empty(t, trimmed(s, LineMotion))
}

// TestScreen_IgnoresUnknown leaves the screen untouched for kinds it does not show.
func TestScreen_IgnoresUnknown(t *testing.T) {
	t.Parallel()

	s := NewScreen("")
	before := s.Lines()

	s.Render(briefcase.NewPayloadEvent(briefcase.EventSavedPin, [4]byte{'9', '9', '9', '9'}))
	s.Render(briefcase.Event{Kind: briefcase.EventKind(200)})

	require.Equal(t, before, s.Lines())
	require.Empty(t, s.Line(Line(99)))
}

// TestScreen_View includes the title and every row.
func TestScreen_View(t *testing.T) {
	t.Parallel()

	s := NewScreen("Briefcase alarm")
	s.Render(briefcase.NewEvent(briefcase.EventSecurityEnabled))

	view := s.View()
	require.Contains(t, view, "Briefcase alarm")
	require.Contains(t, view, "Security   : ON")
}

package briefcase

import "fmt"

// EventKind identifies what an Event reports to the status display.
type EventKind uint8

// Event kinds in the order the display protocol defines them.
const (
	EventBriefcaseLocked EventKind = iota
	EventBriefcaseUnlocked
	EventBriefcaseMoving
	EventSecurityEnabled
	EventSecurityDisabled
	EventAlarmOn
	EventAlarmOff
	EventAlarmPending
	EventTimeInterval
	EventCountdownValue
	EventDisplayedPin
	EventSavedPin
	EventPosition
	EventDisplayClear
	EventPinEditOn
	EventPinEditOff
)

// eventKindNames maps kinds to stable names used in logs and metrics labels.
//
//nolint:gochecknoglobals // Lookup table.
var eventKindNames = [...]string{
	EventBriefcaseLocked:   "briefcase_locked",
	EventBriefcaseUnlocked: "briefcase_unlocked",
	EventBriefcaseMoving:   "briefcase_moving",
	EventSecurityEnabled:   "security_enabled",
	EventSecurityDisabled:  "security_disabled",
	EventAlarmOn:           "alarm_on",
	EventAlarmOff:          "alarm_off",
	EventAlarmPending:      "alarm_pending",
	EventTimeInterval:      "time_interval",
	EventCountdownValue:    "countdown_value",
	EventDisplayedPin:      "displayed_pin",
	EventSavedPin:          "saved_pin",
	EventPosition:          "position",
	EventDisplayClear:      "display_clear",
	EventPinEditOn:         "pin_edit_on",
	EventPinEditOff:        "pin_edit_off",
}

// String returns the stable name of the kind.
func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}

	return fmt.Sprintf("event_kind(%d)", uint8(k))
}

// PayloadSize is the fixed payload width of an Event.
const PayloadSize = 4

// Event is an immutable notification from the controller to the display.
// It is copied by value through the queue.
type Event struct {
	// Kind tells the display which status line to update.
	Kind EventKind
	// Payload carries up to four bytes of kind-specific data.
	Payload [PayloadSize]byte
}

// NewEvent returns an Event without payload.
func NewEvent(kind EventKind) Event {
	return Event{Kind: kind}
}

// NewPayloadEvent returns an Event carrying the given four bytes.
func NewPayloadEvent(kind EventKind, payload [PayloadSize]byte) Event {
	return Event{
		Kind:    kind,
		Payload: payload,
	}
}

// NewValueEvent returns an Event whose first two payload bytes hold v.
// TimeInterval and CountdownValue use this layout: interval line, time line.
func NewValueEvent(kind EventKind, v uint8) Event {
	return Event{
		Kind:    kind,
		Payload: [PayloadSize]byte{v, v},
	}
}

// Value returns the first payload byte.
func (e Event) Value() uint8 {
	return e.Payload[0]
}

// String renders the event for logs.
func (e Event) String() string {
	switch e.Kind {
	case EventDisplayedPin, EventSavedPin, EventPosition:
		return fmt.Sprintf("%s[%q]", e.Kind, string(e.Payload[:]))
	case EventTimeInterval, EventCountdownValue:
		return fmt.Sprintf("%s[%d]", e.Kind, e.Payload[0])
	default:
		return e.Kind.String()
	}
}

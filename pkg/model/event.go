package model

import "fmt"

// Event is the ISO 11783-6 event code a macro reference is bound to.
type Event uint8

const (
	EventNone                    Event = 0
	OnActivate                   Event = 1
	OnDeactivate                 Event = 2
	OnShow                       Event = 3
	OnHide                       Event = 4
	OnEnable                     Event = 5
	OnDisable                    Event = 6
	OnChangeActiveMask           Event = 7
	OnChangeSoftKeyMask          Event = 8
	OnChangeAttribute            Event = 9
	OnChangeBackgroundColour     Event = 10
	OnChangeFontAttributes       Event = 11
	OnChangeLineAttributes       Event = 12
	OnChangeFillAttributes       Event = 13
	OnChangeChildLocation        Event = 14
	OnChangeSize                 Event = 15
	OnChangeValue                Event = 16
	OnChangePriority             Event = 17
	OnChangeEndPoint             Event = 18
	OnInputFieldSelection        Event = 19
	OnInputFieldDeselection      Event = 20
	OnESC                        Event = 21
	OnEntryOfValue               Event = 22
	OnEntryOfNewValue            Event = 23
	OnKeyPress                   Event = 24
	OnKeyRelease                 Event = 25
	OnChangeChildPosition        Event = 26
	OnPointingEventPress         Event = 27
	OnPointingEventRelease       Event = 28
	lastEvent                          = OnPointingEventRelease
)

var eventNames = [...]string{
	"None",
	"OnActivate",
	"OnDeactivate",
	"OnShow",
	"OnHide",
	"OnEnable",
	"OnDisable",
	"OnChangeActiveMask",
	"OnChangeSoftKeyMask",
	"OnChangeAttribute",
	"OnChangeBackgroundColour",
	"OnChangeFontAttributes",
	"OnChangeLineAttributes",
	"OnChangeFillAttributes",
	"OnChangeChildLocation",
	"OnChangeSize",
	"OnChangeValue",
	"OnChangePriority",
	"OnChangeEndPoint",
	"OnInputFieldSelection",
	"OnInputFieldDeselection",
	"OnESC",
	"OnEntryOfValue",
	"OnEntryOfNewValue",
	"OnKeyPress",
	"OnKeyRelease",
	"OnChangeChildPosition",
	"OnPointingEventPress",
	"OnPointingEventRelease",
}

func (e Event) String() string {
	if e <= lastEvent {
		return eventNames[e]
	}
	return fmt.Sprintf("Event(%d)", uint8(e))
}

func (e Event) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

func (e *Event) UnmarshalText(b []byte) error {
	for i, name := range eventNames {
		if name == string(b) {
			*e = Event(i)
			return nil
		}
	}
	var code int
	if _, err := fmt.Sscanf(string(b), "%d", &code); err == nil && code >= 0 && code <= int(lastEvent) {
		*e = Event(code)
		return nil
	}
	return fmt.Errorf("unknown event %q", string(b))
}

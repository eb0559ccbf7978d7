package entities

import "time"

// EventType discriminates activity events captured on the interaction surface.
type EventType string

const (
	EventTypeClick   EventType = "click"
	EventTypeKeydown EventType = "keydown"
)

// Modifiers holds the modifier-key state at the moment of an interaction.
type Modifiers struct {
	Ctrl  bool `json:"ctrl"`
	Shift bool `json:"shift"`
	Alt   bool `json:"alt"`
	Meta  bool `json:"meta"`
}

// Event is one immutable user-interface activity record. Click events carry
// pointer coordinates and a button index; keydown events carry key/code and,
// only for Enter or Tab inside a text-entry control, a snapshot of the
// field's value at that instant.
type Event struct {
	Type           EventType `json:"type"`
	Timestamp      time.Time `json:"timestamp"`
	TargetSelector string    `json:"targetSelector"`
	Modifiers      Modifiers `json:"modifiers"`

	// Click fields. Not omitempty: a left-button click at the origin is
	// x=0, y=0, button=0, which must stay distinguishable from absence.
	X      int `json:"x"`
	Y      int `json:"y"`
	Button int `json:"button"`

	// Keydown fields
	Key           string `json:"key,omitempty"`
	Code          string `json:"code,omitempty"`
	ValueSnapshot string `json:"valueSnapshot,omitempty"`
}

// NewClickEvent creates a click event.
func NewClickEvent(at time.Time, target string, mods Modifiers, x, y, button int) Event {
	return Event{
		Type:           EventTypeClick,
		Timestamp:      at,
		TargetSelector: target,
		Modifiers:      mods,
		X:              x,
		Y:              y,
		Button:         button,
	}
}

// NewKeydownEvent creates a keydown event. valueSnapshot must be empty unless
// the key qualifies for snapshot capture.
func NewKeydownEvent(at time.Time, target string, mods Modifiers, key, code, valueSnapshot string) Event {
	return Event{
		Type:           EventTypeKeydown,
		Timestamp:      at,
		TargetSelector: target,
		Modifiers:      mods,
		Key:            key,
		Code:           code,
		ValueSnapshot:  valueSnapshot,
	}
}

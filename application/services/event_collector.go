package services

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xinran093/synthesisAI-V2/application/ports"
	"github.com/xinran093/synthesisAI-V2/domain/core/entities"
)

// Keys that qualify for a field-value snapshot inside text-entry controls.
const (
	keyEnter = "Enter"
	keyTab   = "Tab"
)

// EventCollector observes the interaction surface and synthesizes typed
// activity events for the delivery buffer. It is session-scoped: create one
// per session, attach it to the host's interaction source, and dispose it
// through the returned disposer.
type EventCollector struct {
	sessionID string
	buffer    *DeliveryBuffer
	logger    *zap.Logger
}

// NewEventCollector creates a collector feeding the given buffer.
func NewEventCollector(buffer *DeliveryBuffer, logger *zap.Logger) *EventCollector {
	return &EventCollector{
		sessionID: uuid.New().String(),
		buffer:    buffer,
		logger:    logger,
	}
}

// SessionID returns the collector's session identifier.
func (c *EventCollector) SessionID() string {
	return c.sessionID
}

// Attach subscribes the collector to the interaction source and returns the
// disposer that detaches it.
func (c *EventCollector) Attach(source ports.InteractionSource) (detach func()) {
	c.logger.Debug("event collector attached", zap.String("sessionID", c.sessionID))
	return source.Subscribe(c.observe)
}

func (c *EventCollector) observe(raw ports.RawInteraction) {
	event, ok := c.synthesize(raw)
	if !ok {
		return
	}
	c.buffer.Append(event)
}

// synthesize converts a raw interaction into an immutable event, applying the
// key-press filtering rule: inside a text-entry control only Enter and Tab
// are logged, and only those two carry a value snapshot.
func (c *EventCollector) synthesize(raw ports.RawInteraction) (entities.Event, bool) {
	mods := entities.Modifiers{
		Ctrl:  raw.Ctrl,
		Shift: raw.Shift,
		Alt:   raw.Alt,
		Meta:  raw.Meta,
	}

	switch raw.Kind {
	case ports.InteractionPointerPress:
		return entities.NewClickEvent(raw.At, raw.Target, mods, raw.X, raw.Y, raw.Button), true

	case ports.InteractionKeyPress:
		snapshotKey := raw.Key == keyEnter || raw.Key == keyTab
		if raw.TextEntry && !snapshotKey {
			return entities.Event{}, false
		}
		snapshot := ""
		if raw.TextEntry && snapshotKey {
			snapshot = raw.FieldValue
		}
		return entities.NewKeydownEvent(raw.At, raw.Target, mods, raw.Key, raw.Code, snapshot), true

	default:
		return entities.Event{}, false
	}
}

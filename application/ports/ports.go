// Package ports defines the interfaces the application layer expects from
// its external collaborators. Infrastructure supplies the implementations;
// tests supply fakes.
package ports

import (
	"context"
	"encoding/json"
	"time"

	"github.com/xinran093/synthesisAI-V2/domain/core/entities"
)

// GraphSnapshotStore persists the last-saved graph/corpus object posted by
// the rendering collaborator. Saving overwrites prior state; loading when
// nothing was ever saved yields an empty object, not an error.
type GraphSnapshotStore interface {
	Save(ctx context.Context, snapshot json.RawMessage) error
	Load(ctx context.Context) (json.RawMessage, error)
}

// EventLog is the append-only activity log. Each appended batch becomes one
// newline-delimited JSON line; reads parse every line independently and skip
// lines that fail to parse.
type EventLog interface {
	Append(ctx context.Context, batch json.RawMessage) error
	ReadAll(ctx context.Context) ([]json.RawMessage, error)
}

// DeliverySink delivers activity event batches to the collection endpoint.
// Deliver observes the acknowledgment; DeliverBestEffort is the beacon-style
// teardown variant that must tolerate the caller disappearing immediately
// after the call.
type DeliverySink interface {
	Deliver(ctx context.Context, events []entities.Event) error
	DeliverBestEffort(events []entities.Event)
}

// ChatCompleter is the opaque chat/completion collaborator. No retry, no
// streaming; failures surface verbatim to the caller.
type ChatCompleter interface {
	Complete(ctx context.Context, text string) (string, error)
}

// InteractionKind classifies raw interactions on the interaction surface.
type InteractionKind string

const (
	InteractionPointerPress InteractionKind = "pointer-press"
	InteractionKeyPress     InteractionKind = "key-press"
)

// RawInteraction is one raw occurrence on the interaction surface, as
// reported by the host environment before any filtering.
type RawInteraction struct {
	Kind   InteractionKind
	At     time.Time
	Target string

	Ctrl  bool
	Shift bool
	Alt   bool
	Meta  bool

	// Pointer-press fields
	X      int
	Y      int
	Button int

	// Key-press fields
	Key        string
	Code       string
	FieldValue string
	// TextEntry reports whether the focused element is a text-entry control.
	TextEntry bool
}

// InteractionSource is the host capability providing raw interactions.
// Subscribe registers a capture-phase observer and returns its disposer.
type InteractionSource interface {
	Subscribe(fn func(RawInteraction)) (cancel func())
}

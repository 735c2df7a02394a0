package gpu

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// LiveObject is a snapshot of one object the tracker still holds.
type LiveObject struct {
	ID    uuid.UUID
	Kind  ObjectKind
	Label string
}

func (o LiveObject) String() string {
	return fmt.Sprintf("%s %q (%s)", o.Kind, o.Label, o.ID)
}

// Tracker records every GPU object a device has created and not yet released.
// It is owned by the render goroutine and is not safe for concurrent use.
type Tracker struct {
	objects map[uuid.UUID]LiveObject
	order   []uuid.UUID
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		objects: make(map[uuid.UUID]LiveObject),
	}
}

// Track registers a new object and returns its identifier.
//
// Parameters:
//   - kind: the category of the object
//   - label: a human readable label used in leak reports
//
// Returns:
//   - uuid.UUID: the identifier to pass to Untrack on release
func (t *Tracker) Track(kind ObjectKind, label string) uuid.UUID {
	id := uuid.New()
	t.objects[id] = LiveObject{ID: id, Kind: kind, Label: label}
	t.order = append(t.order, id)
	return id
}

// Untrack forgets an object. It reports false when the id was not tracked.
func (t *Tracker) Untrack(id uuid.UUID) bool {
	if _, ok := t.objects[id]; !ok {
		return false
	}
	delete(t.objects, id)
	t.order = slices.DeleteFunc(t.order, func(o uuid.UUID) bool { return o == id })
	return true
}

// Live returns the tracked objects in creation order.
func (t *Tracker) Live() []LiveObject {
	live := make([]LiveObject, 0, len(t.order))
	for _, id := range t.order {
		live = append(live, t.objects[id])
	}
	return live
}

// Count returns how many live objects are of the given kind.
func (t *Tracker) Count(kind ObjectKind) int {
	n := 0
	for _, o := range t.objects {
		if o.Kind == kind {
			n++
		}
	}
	return n
}

// Len returns the number of live objects.
func (t *Tracker) Len() int {
	return len(t.objects)
}

// ObjectBase holds the identity shared by every backend object and its tracker registration.
// Backends embed it and call MarkReleased from their Release methods.
type ObjectBase struct {
	id       uuid.UUID
	kind     ObjectKind
	label    string
	tracker  *Tracker
	released bool
}

// NewObjectBase registers an object with the tracker.
//
// Parameters:
//   - tracker: the device tracker, nil to skip tracking
//   - kind: the category of the object
//   - label: a human readable label
//
// Returns:
//   - ObjectBase: the identity to embed in the backend object
func NewObjectBase(tracker *Tracker, kind ObjectKind, label string) ObjectBase {
	b := ObjectBase{kind: kind, label: label, tracker: tracker}
	if tracker != nil {
		b.id = tracker.Track(kind, label)
	} else {
		b.id = uuid.New()
	}
	return b
}

func (b *ObjectBase) ID() uuid.UUID {
	return b.id
}

func (b *ObjectBase) Kind() ObjectKind {
	return b.kind
}

func (b *ObjectBase) Label() string {
	return b.label
}

// Released reports whether MarkReleased has been called.
func (b *ObjectBase) Released() bool {
	return b.released
}

// MarkReleased untracks the object. It returns false when the object was already released,
// which lets Release implementations stay idempotent.
func (b *ObjectBase) MarkReleased() bool {
	if b.released {
		return false
	}
	b.released = true
	if b.tracker != nil {
		b.tracker.Untrack(b.id)
	}
	return true
}

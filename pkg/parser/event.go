package parser

import "github.com/yaklabco/gobiome/pkg/syntax"

// EventKind discriminates parser events.
type EventKind uint8

// Event kinds.
const (
	// EventStart opens a node. A Tombstone node kind marks an abandoned start.
	EventStart EventKind = iota
	EventFinish
	EventToken
	// EventMissing records an empty slot.
	EventMissing
	// EventTombstone is a finish event cancelled by UndoCompletion.
	EventTombstone
)

// Event is one step of the reified parse. The tree is only built from the
// event list once parsing completes, so speculation only truncates a slice
// and retagging a node only rewrites its start event.
type Event struct {
	Kind EventKind
	// NodeKind is the kind of a started node or the (possibly remapped) token kind.
	NodeKind syntax.Kind
	// ForwardParent is the relative index of a start event that must open
	// before this one. Set by Precede.
	ForwardParent int
	// Start and End delimit a token, trivia excluded.
	Start int
	End   int
	// Virtual tokens have zero length and never receive trivia.
	Virtual bool
}

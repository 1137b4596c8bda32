package trade

import (
	"fmt"

	"github.com/talgya/tradewinds/internal/settlement"
)

// Ref identifies the counterpart of a trade. It is a tagged union — by
// settlement ID, by world index, or a direct handle — resolved once at the
// boundary before any trade logic runs.
type Ref struct {
	kind   refKind
	id     settlement.ID
	index  int
	direct *settlement.Settlement
}

type refKind uint8

const (
	refByID refKind = iota
	refByIndex
	refDirect
)

// ByID references a settlement by its unique ID.
func ByID(id settlement.ID) Ref {
	return Ref{kind: refByID, id: id}
}

// ByIndex references a settlement by its position in the world's settlement
// list.
func ByIndex(i int) Ref {
	return Ref{kind: refByIndex, index: i}
}

// Direct wraps an already-resolved settlement.
func Direct(s *settlement.Settlement) Ref {
	return Ref{kind: refDirect, direct: s}
}

// String describes the reference for player-facing messages.
func (r Ref) String() string {
	switch r.kind {
	case refByID:
		return fmt.Sprintf("settlement %d", r.id)
	case refByIndex:
		return fmt.Sprintf("settlement #%d", r.index)
	default:
		if r.direct != nil {
			return r.direct.Name
		}
		return "settlement"
	}
}

// Resolver resolves a Ref to a live settlement. The world container
// implements it.
type Resolver interface {
	Settlement(ref Ref) (*settlement.Settlement, bool)
}

// Resolve applies a resolver to a reference, short-circuiting direct handles.
func (r Ref) Resolve(res Resolver) (*settlement.Settlement, bool) {
	if r.kind == refDirect {
		return r.direct, r.direct != nil
	}
	if res == nil {
		return nil, false
	}
	return res.Settlement(r)
}

// Kind accessors used by resolvers.

// ID returns the referenced ID and whether the reference is by ID.
func (r Ref) ID() (settlement.ID, bool) {
	return r.id, r.kind == refByID
}

// Index returns the referenced index and whether the reference is by index.
func (r Ref) Index() (int, bool) {
	return r.index, r.kind == refByIndex
}

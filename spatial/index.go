// Package spatial provides the occupancy index consulted before a move is
// committed.
package spatial

// Handle identifies a rectangle registered in an Index.
type Handle uint64

// Kind separates immutable map geometry from rectangles that move during play.
type Kind int

const (
	Static Kind = iota
	Dynamic
)

// Entry is a registered rectangle.
type Entry struct {
	Handle Handle
	Kind   Kind
	Rect   Rect
	Owner  uint64
}

// Index is the narrow contract the movement code depends on. Query returns
// every entry that overlaps, contains, or is contained by r, skipping entries
// owned by exclude (0 excludes nothing).
type Index interface {
	Insert(r Rect, kind Kind, owner uint64) Handle
	Move(h Handle, r Rect) bool
	Remove(h Handle) bool
	Query(r Rect, exclude uint64) []Entry
	Occupied(r Rect, exclude uint64) bool
	Len() int
}

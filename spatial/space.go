package spatial

import "github.com/jakecoffman/cp"

// Space is an Index backed by a Chipmunk space. Static rectangles live on the
// space's static body; dynamic ones each get a kinematic body. The space is
// never stepped: it is used purely for its bounding-box trees.
type Space struct {
	space   *cp.Space
	next    Handle
	entries map[Handle]*spaceEntry
}

type spaceEntry struct {
	entry Entry
	body  *cp.Body
	shape *cp.Shape
}

var _ Index = (*Space)(nil)

func NewSpace() *Space {
	return &Space{
		space:   cp.NewSpace(),
		entries: make(map[Handle]*spaceEntry),
	}
}

func (s *Space) Insert(r Rect, kind Kind, owner uint64) Handle {
	if s == nil || s.space == nil {
		return 0
	}
	s.next++
	h := s.next

	se := &spaceEntry{entry: Entry{Handle: h, Kind: kind, Rect: r, Owner: owner}}
	if kind == Static {
		se.body = s.space.StaticBody
	} else {
		// Kept at the origin so shape vertices are exact world coordinates.
		se.body = s.space.AddBody(cp.NewKinematicBody())
	}
	se.shape = s.addBox(se.body, r, h, owner)

	s.entries[h] = se
	return h
}

// Move relocates a dynamic rectangle. Static rectangles are immutable.
func (s *Space) Move(h Handle, r Rect) bool {
	if s == nil {
		return false
	}
	se, ok := s.entries[h]
	if !ok || se.entry.Kind != Dynamic {
		return false
	}

	// Shape bounds are cached at insertion and the space is never stepped,
	// so a moved rectangle is a fresh shape.
	s.space.RemoveShape(se.shape)
	se.shape = s.addBox(se.body, r, h, se.entry.Owner)

	se.entry.Rect = r
	return true
}

func (s *Space) Remove(h Handle) bool {
	if s == nil {
		return false
	}
	se, ok := s.entries[h]
	if !ok {
		return false
	}
	s.space.RemoveShape(se.shape)
	if se.entry.Kind == Dynamic {
		s.space.RemoveBody(se.body)
	}
	delete(s.entries, h)
	return true
}

func (s *Space) Query(r Rect, exclude uint64) []Entry {
	if s == nil || s.space == nil {
		return nil
	}
	var out []Entry
	s.space.BBQuery(toBB(r), filterFor(exclude), func(shape *cp.Shape, _ interface{}) {
		h, ok := shape.UserData.(Handle)
		if !ok {
			return
		}
		if se, ok := s.entries[h]; ok {
			out = append(out, se.entry)
		}
	}, nil)
	return out
}

func (s *Space) Occupied(r Rect, exclude uint64) bool {
	return len(s.Query(r, exclude)) > 0
}

func (s *Space) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

func (s *Space) addBox(body *cp.Body, r Rect, h Handle, owner uint64) *cp.Shape {
	shape := cp.NewBox2(body, toBB(r), 0)
	shape.UserData = h
	shape.SetSensor(true)
	shape.SetFilter(filterFor(owner))
	return s.space.AddShape(shape)
}

// filterFor puts every shape of an owner into the same group so a query made
// on that owner's behalf skips its own rectangles.
func filterFor(owner uint64) cp.ShapeFilter {
	return cp.NewShapeFilter(uint(owner), cp.ALL_CATEGORIES, cp.ALL_CATEGORIES)
}

func toBB(r Rect) cp.BB {
	return cp.BB{L: r.Min.X, B: r.Min.Y, R: r.Max.X, T: r.Max.Y}
}

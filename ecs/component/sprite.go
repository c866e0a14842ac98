package component

// Sprite selects one frame of a sheet laid out in rows of Columns frames.
// Sheet names an image the renderer resolves; this package stays free of
// graphics types.
type Sprite struct {
	Sheet   string
	Frame   int
	FrameW  int
	FrameH  int
	Columns int
}

// FrameOrigin returns the top-left pixel of the current frame in the sheet.
func (s Sprite) FrameOrigin() (int, int) {
	cols := s.Columns
	if cols <= 0 {
		cols = 1
	}
	return (s.Frame % cols) * s.FrameW, (s.Frame / cols) * s.FrameH
}

var SpriteComponent = NewComponent[Sprite]()

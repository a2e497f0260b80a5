package capture

// Point is a pointer position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Bounds is the surface's on-screen bounding box at the time of an input
// event, in the same coordinate space as the event's Point.
type Bounds struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// local translates a global point into surface-local logical coordinates.
func (b Bounds) local(p Point) Point {
	return Point{X: p.X - b.Left, Y: p.Y - b.Top}
}

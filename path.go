package paint

import (
	"image"
	"math"

	"golang.org/x/image/vector"
)

type verb uint8

const (
	verbMove verb = iota
	verbLine
	verbQuad
	verbCube
	verbClose
)

// Path is a sequence of closed or open subpaths in target pixel
// coordinates. Open subpaths are closed implicitly when filled.
//
// The zero value is an empty path ready to use.
type Path struct {
	verbs  []verb
	points []float32
	open   bool
}

// NewPath returns an empty path.
func NewPath() *Path {
	return &Path{}
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float32) {
	p.verbs = append(p.verbs, verbMove)
	p.points = append(p.points, x, y)
	p.open = true
}

// LineTo adds a line to (x, y). Without a current subpath it behaves as
// MoveTo.
func (p *Path) LineTo(x, y float32) {
	if !p.open {
		p.MoveTo(x, y)
		return
	}
	p.verbs = append(p.verbs, verbLine)
	p.points = append(p.points, x, y)
}

// QuadTo adds a quadratic Bézier curve with control point (cx, cy).
func (p *Path) QuadTo(cx, cy, x, y float32) {
	if !p.open {
		p.MoveTo(cx, cy)
	}
	p.verbs = append(p.verbs, verbQuad)
	p.points = append(p.points, cx, cy, x, y)
}

// CubeTo adds a cubic Bézier curve with control points (c1x, c1y) and
// (c2x, c2y).
func (p *Path) CubeTo(c1x, c1y, c2x, c2y, x, y float32) {
	if !p.open {
		p.MoveTo(c1x, c1y)
	}
	p.verbs = append(p.verbs, verbCube)
	p.points = append(p.points, c1x, c1y, c2x, c2y, x, y)
}

// Close closes the current subpath.
func (p *Path) Close() {
	if !p.open {
		return
	}
	p.verbs = append(p.verbs, verbClose)
	p.open = false
}

// Rect adds a closed axis-aligned rectangle.
func (p *Path) Rect(x, y, w, h float32) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// Polygon adds a closed polygon through the points (xy[0], xy[1]),
// (xy[2], xy[3]), and so on. A trailing odd coordinate is ignored.
func (p *Path) Polygon(xy ...float32) {
	if len(xy) < 4 {
		return
	}
	p.MoveTo(xy[0], xy[1])
	for i := 2; i+1 < len(xy); i += 2 {
		p.LineTo(xy[i], xy[i+1])
	}
	p.Close()
}

// Empty reports whether the path has no segments.
func (p *Path) Empty() bool {
	return len(p.verbs) == 0
}

// Bounds returns the smallest integer rectangle containing every point and
// control point of the path.
func (p *Path) Bounds() image.Rectangle {
	if len(p.points) == 0 {
		return image.Rectangle{}
	}
	minX, minY := p.points[0], p.points[1]
	maxX, maxY := minX, minY
	for i := 2; i < len(p.points); i += 2 {
		x, y := p.points[i], p.points[i+1]
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
	}
	return image.Rect(
		int(math.Floor(float64(minX))), int(math.Floor(float64(minY))),
		int(math.Ceil(float64(maxX))), int(math.Ceil(float64(maxY))),
	)
}

// rasterize replays the path into z, shifted by -origin. Every subpath is
// closed.
func (p *Path) rasterize(z *vector.Rasterizer, origin image.Point) {
	ox, oy := float32(origin.X), float32(origin.Y)
	pts := p.points
	open := false
	for _, v := range p.verbs {
		switch v {
		case verbMove:
			if open {
				z.ClosePath()
			}
			z.MoveTo(pts[0]-ox, pts[1]-oy)
			pts = pts[2:]
			open = true
		case verbLine:
			z.LineTo(pts[0]-ox, pts[1]-oy)
			pts = pts[2:]
		case verbQuad:
			z.QuadTo(pts[0]-ox, pts[1]-oy, pts[2]-ox, pts[3]-oy)
			pts = pts[4:]
		case verbCube:
			z.CubeTo(pts[0]-ox, pts[1]-oy, pts[2]-ox, pts[3]-oy, pts[4]-ox, pts[5]-oy)
			pts = pts[6:]
		case verbClose:
			z.ClosePath()
			open = false
		}
	}
	if open {
		z.ClosePath()
	}
}

package ui

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Jimin-park1013/delulu-dreams/core/particle"
	"github.com/Jimin-park1013/delulu-dreams/core/sim"
)

const ellipseSegments = 20

var (
	whiteOnce     sync.Once
	whiteSubImage *ebiten.Image
)

func white() *ebiten.Image {
	whiteOnce.Do(func() {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSubImage
}

// fillPolygon fills a closed polygon. It is defined as a variable so tests
// can override it to capture draw calls.
var fillPolygon = func(dst *ebiten.Image, pts []particle.Vec, c color.NRGBA) {
	if len(pts) < 3 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR = float32(c.R) / 0xff
		vs[i].ColorG = float32(c.G) / 0xff
		vs[i].ColorB = float32(c.B) / 0xff
		vs[i].ColorA = float32(c.A) / 0xff
	}
	dst.DrawTriangles(vs, is, white(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// fillCircle draws a filled disc. Overridden in tests.
var fillCircle = func(dst *ebiten.Image, x, y, r float64, c color.NRGBA) {
	vector.DrawFilledCircle(dst, float32(x), float32(y), float32(r), c, true)
}

// strokeCircle draws a ring outline. Overridden in tests.
var strokeCircle = func(dst *ebiten.Image, x, y, r, width float64, c color.NRGBA) {
	vector.StrokeCircle(dst, float32(x), float32(y), float32(r), float32(width), c, true)
}

// washRect lays a translucent rectangle over the whole surface. Overridden in
// tests.
var washRect = func(dst *ebiten.Image, w, h float64, c color.NRGBA) {
	vector.DrawFilledRect(dst, 0, 0, float32(w), float32(h), c, false)
}

// ellipsePoints approximates an ellipse of radii rx, ry rotated by angle.
func ellipsePoints(cx, cy, rx, ry, angle float64, n int) []particle.Vec {
	pts := make([]particle.Vec, n)
	sin, cos := math.Sincos(angle)
	for i := range pts {
		t := 2 * math.Pi * float64(i) / float64(n)
		lx, ly := rx*math.Cos(t), ry*math.Sin(t)
		pts[i] = particle.Vec{X: cx + lx*cos - ly*sin, Y: cy + lx*sin + ly*cos}
	}
	return pts
}

// shapePoints returns the outline of a polygonal dream shape. Circles have
// no outline and yield nil.
func shapePoints(kind particle.ShapeKind, cx, cy, size, angle float64) []particle.Vec {
	r := size / 2
	var local []particle.Vec
	switch kind {
	case particle.Star:
		local = make([]particle.Vec, 10)
		for i := range local {
			rad := r
			if i%2 == 1 {
				rad = r / 2
			}
			local[i] = particle.FromAngle(-math.Pi/2+float64(i)*math.Pi/5, rad)
		}
	case particle.Triangle:
		local = []particle.Vec{{X: 0, Y: -r}, {X: -r, Y: r}, {X: r, Y: r}}
	case particle.Diamond:
		local = []particle.Vec{{X: 0, Y: -r}, {X: r / 2, Y: 0}, {X: 0, Y: r}, {X: -r / 2, Y: 0}}
	default:
		return nil
	}
	sin, cos := math.Sincos(angle)
	for i, p := range local {
		local[i] = particle.Vec{X: cx + p.X*cos - p.Y*sin, Y: cy + p.X*sin + p.Y*cos}
	}
	return local
}

// paintFrame paints f onto dst in order: wash, ring, entities, flicker.
func paintFrame(dst *ebiten.Image, f sim.Frame) {
	washRect(dst, f.W, f.H, f.Wash.ToNRGBA())

	if f.Mode == sim.ModeDream {
		for i := range f.Shapes {
			s := &f.Shapes[i]
			c := s.Colour().ToNRGBA()
			if s.Kind == particle.Circle {
				fillCircle(dst, s.Pos.X, s.Pos.Y, s.Size/2, c)
				continue
			}
			fillPolygon(dst, shapePoints(s.Kind, s.Pos.X, s.Pos.Y, s.Size, s.Angle), c)
		}
		return
	}

	if f.Ring.R > 0 {
		strokeCircle(dst, f.Ring.X, f.Ring.Y, f.Ring.R, f.Ring.Width, f.Ring.Colour.ToNRGBA())
	}
	for i := range f.Particles {
		p := &f.Particles[i]
		rx, ry := p.Radii()
		fillPolygon(dst, ellipsePoints(p.Pos.X, p.Pos.Y, rx, ry, p.Angle, ellipseSegments), p.Colour().ToNRGBA())
	}
	for _, fl := range f.Flickers {
		fillCircle(dst, fl.X, fl.Y, fl.Size/2, fl.Colour.ToNRGBA())
	}
}

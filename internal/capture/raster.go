package capture

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// capSteps is the number of segments used to approximate a half circle.
const capSteps = 12

// capsuleBounds returns the pixel rectangle covering the round-capped capsule
// of the given radius around a→b, clipped to clip.
func capsuleBounds(a, b Point, radius float64, clip image.Rectangle) image.Rectangle {
	r := image.Rect(
		int(math.Floor(math.Min(a.X, b.X)-radius))-1,
		int(math.Floor(math.Min(a.Y, b.Y)-radius))-1,
		int(math.Ceil(math.Max(a.X, b.X)+radius))+1,
		int(math.Ceil(math.Max(a.Y, b.Y)+radius))+1,
	)
	return r.Intersect(clip)
}

// capsuleMask rasterises the capsule around a→b into a coverage mask whose
// origin is box.Min. A zero-length segment produces a disc.
func capsuleMask(a, b Point, radius float64, box image.Rectangle) *image.Alpha {
	z := vector.NewRasterizer(box.Dx(), box.Dy())

	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)

	// Unit direction; any direction will do for a dot.
	ux, uy := 1.0, 0.0
	if length > 0 {
		ux, uy = dx/length, dy/length
	}
	// Left-hand normal.
	nx, ny := -uy, ux

	moveTo := func(x, y float64) { z.MoveTo(float32(x-ox), float32(y-oy)) }
	lineTo := func(x, y float64) { z.LineTo(float32(x-ox), float32(y-oy)) }

	// Side a→b along +n, half circle around b, side b→a along -n, half circle around a.
	moveTo(a.X+nx*radius, a.Y+ny*radius)
	lineTo(b.X+nx*radius, b.Y+ny*radius)
	arc(lineTo, b, radius, nx, ny, ux, uy)
	lineTo(a.X-nx*radius, a.Y-ny*radius)
	arc(lineTo, a, radius, -nx, -ny, -ux, -uy)
	z.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, box.Dx(), box.Dy()))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

// inkSegment composites src over dst inside the capsule around a→b.
func inkSegment(dst *image.RGBA, a, b Point, radius float64, src image.Image) {
	if radius <= 0 {
		return
	}
	box := capsuleBounds(a, b, radius, dst.Bounds())
	if box.Empty() {
		return
	}
	mask := capsuleMask(a, b, radius, box)
	draw.DrawMask(dst, box, src, image.Point{}, mask, image.Point{}, draw.Over)
}

// eraseSegment removes coverage under the capsule around a→b
// (destination-out): each pixel is scaled by one minus the mask coverage, so
// pixels outside the capsule keep their value.
func eraseSegment(dst *image.RGBA, a, b Point, radius float64) {
	if radius <= 0 {
		return
	}
	box := capsuleBounds(a, b, radius, dst.Bounds())
	if box.Empty() {
		return
	}
	mask := capsuleMask(a, b, radius, box)

	for y := 0; y < box.Dy(); y++ {
		row := dst.PixOffset(box.Min.X, box.Min.Y+y)
		for x := 0; x < box.Dx(); x++ {
			m := uint32(mask.Pix[mask.PixOffset(x, y)])
			if m == 0 {
				continue
			}
			keep := 0xFF - m
			px := dst.Pix[row+4*x : row+4*x+4 : row+4*x+4]
			for i := range px {
				px[i] = uint8((uint32(px[i])*keep + 0x7F) / 0xFF)
			}
		}
	}
}

// arc emits a half circle of the given radius around c, starting at c+start*radius
// and bulging towards c+through*radius.
func arc(lineTo func(x, y float64), c Point, radius, startX, startY, throughX, throughY float64) {
	for i := 1; i <= capSteps; i++ {
		theta := math.Pi * float64(i) / capSteps
		cos, sin := math.Cos(theta), math.Sin(theta)
		x := startX*cos + throughX*sin
		y := startY*cos + throughY*sin
		lineTo(c.X+x*radius, c.Y+y*radius)
	}
}

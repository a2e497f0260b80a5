package capture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"math"

	"github.com/phrazzld/hececiz/internal/domain"
)

// Default stroke settings.
const (
	DefaultInkWidth    = 8.0
	DefaultEraseWidth  = 40.0
	DefaultJPEGQuality = 90
)

// DefaultInkColor is the blue used for learner strokes (#2563EB).
var DefaultInkColor = color.NRGBA{R: 0x25, G: 0x63, B: 0xEB, A: 0xFF}

// MaxPixels bounds the physical raster (width × ratio × height × ratio).
const MaxPixels = 4096 * 4096

// ErrInvalidSize is returned when a surface is sized with non-positive
// dimensions or would need a raster larger than MaxPixels.
var ErrInvalidSize = errors.New("invalid surface dimensions")

// SnapshotMIMEType is the encoding of exported snapshots. JPEG carries no
// alpha channel, so the flattened white background is preserved.
const SnapshotMIMEType = "image/jpeg"

// Snapshot is a flattened, encoded copy of the surface.
type Snapshot struct {
	MIMEType string
	Data     []byte
	Width    int
	Height   int
}

// Options configures stroke rendering and export.
type Options struct {
	InkColor    color.Color
	InkWidth    float64
	EraseWidth  float64
	JPEGQuality int
}

// DefaultOptions returns the standard ink/erase settings.
func DefaultOptions() Options {
	return Options{
		InkColor:    DefaultInkColor,
		InkWidth:    DefaultInkWidth,
		EraseWidth:  DefaultEraseWidth,
		JPEGQuality: DefaultJPEGQuality,
	}
}

// Surface is a stateful ink capture device.
type Surface struct {
	opts Options

	// logical size and device pixel ratio
	width, height, ratio float64

	// raster is the backing store at physical resolution. A zero pixel is
	// fully transparent with no residual colour.
	raster *image.RGBA

	// scale maps logical coordinates onto the raster.
	scale float64

	tool     domain.Tool
	stroke   *activeStroke
	hasInk   bool
	disabled bool
}

// activeStroke is the stroke between a pointer down and up/leave. Its tool is
// latched at pointer down.
type activeStroke struct {
	tool domain.Tool
	last Point // physical coordinates
}

// NewSurface creates a surface of the given logical size rendered at the
// given device pixel ratio.
func NewSurface(width, height, ratio float64, opts Options) (*Surface, error) {
	if opts.InkColor == nil {
		opts.InkColor = DefaultInkColor
	}
	if opts.InkWidth <= 0 {
		opts.InkWidth = DefaultInkWidth
	}
	if opts.EraseWidth < opts.InkWidth {
		opts.EraseWidth = math.Max(DefaultEraseWidth, opts.InkWidth)
	}
	if opts.JPEGQuality <= 0 || opts.JPEGQuality > 100 {
		opts.JPEGQuality = DefaultJPEGQuality
	}

	s := &Surface{opts: opts, tool: domain.ToolInk}
	if _, err := s.Resize(width, height, ratio); err != nil {
		return nil, err
	}
	return s, nil
}

// physicalSize returns the raster dimensions for a logical size and ratio.
func physicalSize(width, height, ratio float64) (int, int) {
	return int(math.Ceil(width * ratio)), int(math.Ceil(height * ratio))
}

// CheckSize reports whether a surface of the given logical size and device
// pixel ratio can be provisioned.
func CheckSize(width, height, ratio float64) error {
	if width <= 0 || height <= 0 || ratio <= 0 {
		return fmt.Errorf("%w: %gx%g at ratio %g", ErrInvalidSize, width, height, ratio)
	}
	pw, ph := physicalSize(width, height, ratio)
	if pw < 1 || ph < 1 {
		return fmt.Errorf("%w: %gx%g at ratio %g", ErrInvalidSize, width, height, ratio)
	}
	if float64(pw)*float64(ph) > MaxPixels {
		return fmt.Errorf("%w: %dx%d raster exceeds %d pixels", ErrInvalidSize, pw, ph, MaxPixels)
	}
	return nil
}

// Resize updates the logical size and device pixel ratio. The raster is only
// re-provisioned (and therefore cleared) when the physical dimensions change;
// a resize that maps onto the same raster keeps every stroke. It reports
// whether the raster was re-provisioned.
func (s *Surface) Resize(width, height, ratio float64) (bool, error) {
	if ratio <= 0 {
		ratio = 1
	}
	if err := CheckSize(width, height, ratio); err != nil {
		return false, err
	}
	pw, ph := physicalSize(width, height, ratio)

	s.width, s.height, s.ratio = width, height, ratio
	s.scale = ratio

	if s.raster != nil && s.raster.Rect.Dx() == pw && s.raster.Rect.Dy() == ph {
		return false, nil
	}

	s.raster = image.NewRGBA(image.Rect(0, 0, pw, ph))
	s.stroke = nil
	s.hasInk = false
	return true, nil
}

// Size returns the logical size and device pixel ratio.
func (s *Surface) Size() (width, height, ratio float64) {
	return s.width, s.height, s.ratio
}

// Clear removes all ink, resets the tool to ink and forgets that anything
// was drawn. It wipes the whole physical raster, including colour channels
// under erased pixels, and recomputes the coordinate transform. Clear is
// idempotent.
func (s *Surface) Clear() {
	clear(s.raster.Pix)
	s.scale = s.ratio
	s.tool = domain.ToolInk
	s.stroke = nil
	s.hasInk = false
}

// IsEmpty reports whether no stroke has been committed since the last clear.
// Erasing everything does not make a surface empty again.
func (s *Surface) IsEmpty() bool {
	return !s.hasInk
}

// Tool returns the tool the next stroke will use.
func (s *Surface) Tool() domain.Tool {
	return s.tool
}

// SetTool selects the tool for the next stroke. A stroke already in progress
// keeps the tool it started with.
func (s *Surface) SetTool(tool domain.Tool) error {
	if !tool.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidTool, tool)
	}
	s.tool = tool
	return nil
}

// Disabled reports whether input is being ignored.
func (s *Surface) Disabled() bool {
	return s.disabled
}

// SetDisabled enables or disables input. Disabling ends any stroke in progress.
func (s *Surface) SetDisabled(disabled bool) {
	s.disabled = disabled
	if disabled {
		s.stroke = nil
	}
}

// toRaster converts a global point into raster coordinates using the
// bounding box at the time of the event.
func (s *Surface) toRaster(p Point, b Bounds) Point {
	l := b.local(p)
	return Point{X: l.X * s.scale, Y: l.Y * s.scale}
}

// PointerDown starts a stroke at p and commits its first point.
func (s *Surface) PointerDown(p Point, b Bounds) {
	if s.disabled {
		return
	}
	at := s.toRaster(p, b)
	s.stroke = &activeStroke{tool: s.tool, last: at}
	s.hasInk = true
	s.paint(s.stroke.tool, at, at)
}

// PointerMove extends the current stroke to p. Moves without a preceding
// PointerDown are ignored.
func (s *Surface) PointerMove(p Point, b Bounds) {
	if s.disabled || s.stroke == nil {
		return
	}
	at := s.toRaster(p, b)
	s.paint(s.stroke.tool, s.stroke.last, at)
	s.stroke.last = at
}

// PointerUp ends the current stroke.
func (s *Surface) PointerUp() {
	if s.disabled {
		return
	}
	s.stroke = nil
}

// PointerLeave ends the current stroke when the pointer leaves the surface.
func (s *Surface) PointerLeave() {
	s.PointerUp()
}

// Drawing reports whether a stroke is in progress.
func (s *Surface) Drawing() bool {
	return s.stroke != nil
}

// paint composites one stroke segment with the given tool.
func (s *Surface) paint(tool domain.Tool, from, to Point) {
	switch tool {
	case domain.ToolErase:
		eraseSegment(s.raster, from, to, s.opts.EraseWidth*s.scale/2)
	default:
		inkSegment(s.raster, from, to, s.opts.InkWidth*s.scale/2, image.NewUniform(s.opts.InkColor))
	}
}

// ExportSnapshot returns the surface flattened over opaque white and encoded
// as JPEG, or nil when nothing has been drawn.
func (s *Surface) ExportSnapshot() (*Snapshot, error) {
	if s.IsEmpty() {
		return nil, nil
	}

	flat := s.Flatten()

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, flat, &jpeg.Options{Quality: s.opts.JPEGQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	return &Snapshot{
		MIMEType: SnapshotMIMEType,
		Data:     buf.Bytes(),
		Width:    flat.Rect.Dx(),
		Height:   flat.Rect.Dy(),
	}, nil
}

// Flatten composites the raster over an opaque white background.
func (s *Surface) Flatten() *image.RGBA {
	r := s.raster.Bounds()
	flat := image.NewRGBA(r)
	draw.Draw(flat, r, image.White, image.Point{}, draw.Src)
	draw.Draw(flat, r, s.raster, r.Min, draw.Over)
	return flat
}

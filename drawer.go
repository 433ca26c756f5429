package polyedit

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// ShapeDrawer is the immediate-mode drawing surface a follower renders onto.
// Coordinates and sizes are screen pixels.
type ShapeDrawer interface {
	Line(x0, y0, x1, y1, width float64, c Color)
	FilledRect(x, y, w, h float64, c Color)
}

// ShapeBatch is a ShapeDrawer that accumulates untextured quads and submits
// them to an ebiten image with a single DrawTriangles32 call. Its buffers
// grow to the high-water mark and are reused across frames.
type ShapeBatch struct {
	verts []ebiten.Vertex
	inds  []uint32

	// vertices submitted by the last Flush
	lastVertices int
}

// NewShapeBatch creates an empty batch.
func NewShapeBatch() *ShapeBatch {
	return &ShapeBatch{
		verts: make([]ebiten.Vertex, 0, 256),
		inds:  make([]uint32, 0, 384),
	}
}

// Line appends a segment of the given pixel width. Zero-length segments are
// skipped.
func (b *ShapeBatch) Line(x0, y0, x1, y1, width float64, c Color) {
	dx := x1 - x0
	dy := y1 - y0
	l := math.Hypot(dx, dy)
	if l == 0 || width <= 0 {
		return
	}
	// Perpendicular scaled to half the width.
	nx := -dy / l * width / 2
	ny := dx / l * width / 2
	b.quad(
		x0+nx, y0+ny,
		x1+nx, y1+ny,
		x0-nx, y0-ny,
		x1-nx, y1-ny,
		c,
	)
}

// FilledRect appends an axis-aligned filled rectangle.
func (b *ShapeBatch) FilledRect(x, y, w, h float64, c Color) {
	if w <= 0 || h <= 0 {
		return
	}
	b.quad(x, y, x+w, y, x, y+h, x+w, y+h, c)
}

// quad appends four corners in TL, TR, BL, BR order as two triangles.
func (b *ShapeBatch) quad(x0, y0, x1, y1, x2, y2, x3, y3 float64, c Color) {
	// Premultiplied RGBA.
	ca := float32(clamp01(c.A))
	cr := float32(clamp01(c.R)) * ca
	cg := float32(clamp01(c.G)) * ca
	cb := float32(clamp01(c.B)) * ca

	base := uint32(len(b.verts))
	xs := [4]float64{x0, x1, x2, x3}
	ys := [4]float64{y0, y1, y2, y3}
	for i := range 4 {
		b.verts = append(b.verts, ebiten.Vertex{
			DstX:   float32(xs[i]),
			DstY:   float32(ys[i]),
			SrcX:   0.5,
			SrcY:   0.5,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		})
	}
	// Two triangles: TL-TR-BL, TR-BR-BL
	b.inds = append(b.inds,
		base+0, base+1, base+2,
		base+1, base+3, base+2,
	)
}

// Len returns the number of buffered vertices.
func (b *ShapeBatch) Len() int { return len(b.verts) }

// LastVertices returns the vertex count of the most recent Flush.
func (b *ShapeBatch) LastVertices() int { return b.lastVertices }

// Reset drops buffered geometry without drawing it.
func (b *ShapeBatch) Reset() {
	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
}

// Flush draws the buffered geometry onto dst and empties the batch.
func (b *ShapeBatch) Flush(dst *ebiten.Image) {
	b.lastVertices = len(b.verts)
	if len(b.verts) == 0 {
		return
	}
	var op ebiten.DrawTrianglesOptions
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	op.AntiAlias = true
	dst.DrawTriangles32(b.verts, b.inds, ensureWhitePixel(), &op)
	b.Reset()
}

// --- White pixel singleton (single-threaded, no sync.Once) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image used
// as the source for untextured triangles.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.White)
	}
	return whitePixelImage
}

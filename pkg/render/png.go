package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// PNGOptions configures EncodePNG.
type PNGOptions struct {
	Width      int
	Height     int
	Padding    int     // pixels kept clear around the route
	LineWidth  float64 // pixels
	StartLabel string
	EndLabel   string
}

// DefaultPNGOptions returns a 640x480 preview.
func DefaultPNGOptions() PNGOptions {
	return PNGOptions{Width: 640, Height: 480, Padding: 40, LineWidth: 3}
}

var palette = map[string]color.RGBA{
	RouteColor: {R: 0x00, G: 0x00, B: 0xff, A: 0xff},
	StartColor: {R: 0x00, G: 0x80, B: 0x00, A: 0xff},
	EndColor:   {R: 0xff, G: 0x00, B: 0x00, A: 0xff},
}

var (
	background = color.RGBA{R: 0xf8, G: 0xf8, B: 0xf4, A: 0xff}
	textColor  = color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}
)

// DrawImage rasterizes a scene without a base map. Longitude maps to x and
// latitude to y, scaled uniformly so the route keeps its shape.
func DrawImage(scene Scene, opts PNGOptions) (*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", opts.Width, opts.Height)
	}
	if 2*opts.Padding >= opts.Width || 2*opts.Padding >= opts.Height {
		return nil, fmt.Errorf("padding %d too large for %dx%d", opts.Padding, opts.Width, opts.Height)
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	if scene.Empty() {
		drawLabel(img, "No route", opts.Width/2-24, opts.Height/2)
		return img, nil
	}

	toPixel := fit(scene, opts)
	z := vector.NewRasterizer(opts.Width, opts.Height)

	for _, l := range scene.Lines {
		x1, y1 := toPixel(l.From.Lng, l.From.Lat)
		x2, y2 := toPixel(l.To.Lng, l.To.Lat)
		if strokeSegment(z, x1, y1, x2, y2, opts.LineWidth) {
			fill(z, img, l.Color)
		}
	}

	labels := map[MarkerKind]string{MarkerStart: opts.StartLabel, MarkerEnd: opts.EndLabel}
	for _, m := range scene.Markers() {
		x, y := toPixel(m.Position.Lng, m.Position.Lat)
		circle(z, x, y, float64(m.Radius))
		fill(z, img, m.Color)
		if label := labels[m.Kind]; label != "" {
			drawLabel(img, label, int(x)+m.Radius+3, int(y)+4)
		}
	}

	return img, nil
}

// EncodePNG writes the rasterized scene as PNG.
func EncodePNG(w io.Writer, scene Scene, opts PNGOptions) error {
	img, err := DrawImage(scene, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// fit returns a lng/lat to pixel transform that centers the scene bound in
// the drawable area.
func fit(scene Scene, opts PNGOptions) func(lng, lat float64) (float32, float32) {
	b := scene.Bound()
	spanX := b.Max[0] - b.Min[0]
	spanY := b.Max[1] - b.Min[1]
	availW := float64(opts.Width - 2*opts.Padding)
	availH := float64(opts.Height - 2*opts.Padding)

	scale := math.Inf(1)
	if spanX > 0 {
		scale = availW / spanX
	}
	if spanY > 0 {
		scale = math.Min(scale, availH/spanY)
	}
	if math.IsInf(scale, 1) {
		scale = 0 // a single point: draw it in the middle
	}

	offX := float64(opts.Padding) + (availW-spanX*scale)/2
	offY := float64(opts.Padding) + (availH-spanY*scale)/2
	return func(lng, lat float64) (float32, float32) {
		x := offX + (lng-b.Min[0])*scale
		y := offY + (b.Max[1]-lat)*scale
		return float32(x), float32(y)
	}
}

// strokeSegment adds a rectangle of the given width around the segment.
// It reports false for a zero-length segment, which has no direction.
func strokeSegment(z *vector.Rasterizer, x1, y1, x2, y2 float32, width float64) bool {
	dx := float64(x2 - x1)
	dy := float64(y2 - y1)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return false
	}
	nx := float32(-dy / length * width / 2)
	ny := float32(dx / length * width / 2)

	z.MoveTo(x1+nx, y1+ny)
	z.LineTo(x2+nx, y2+ny)
	z.LineTo(x2-nx, y2-ny)
	z.LineTo(x1-nx, y1-ny)
	z.ClosePath()
	return true
}

func circle(z *vector.Rasterizer, cx, cy float32, r float64) {
	const steps = 24
	for i := 0; i <= steps; i++ {
		a := 2 * math.Pi * float64(i) / steps
		x := cx + float32(r*math.Cos(a))
		y := cy + float32(r*math.Sin(a))
		if i == 0 {
			z.MoveTo(x, y)
		} else {
			z.LineTo(x, y)
		}
	}
	z.ClosePath()
}

// fill paints the accumulated path and resets the rasterizer.
func fill(z *vector.Rasterizer, img *image.RGBA, name string) {
	c, ok := palette[name]
	if !ok {
		c = palette[RouteColor]
	}
	z.DrawOp = draw.Over
	z.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{})
	z.Reset(img.Bounds().Dx(), img.Bounds().Dy())
}

func drawLabel(img *image.RGBA, text string, x, y int) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(textColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"net/http"

	"github.com/chromy/hilbertviz/internal/constants"
	"github.com/chromy/hilbertviz/internal/core"
	"github.com/chromy/hilbertviz/internal/hilbert"
	"github.com/chromy/hilbertviz/internal/logger"
	"github.com/julienschmidt/httprouter"
)

var Background = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// Shade is the colour of the path at fraction t of the way along it.
func Shade(t float64) color.RGBA {
	t = min(max(t, 0), 1)
	return color.RGBA{
		R: uint8(40 + 200*t),
		G: uint8(60 + 80*(1-t)),
		B: uint8(220 - 180*t),
		A: 0xff,
	}
}

func validateWidth(curve hilbert.Curve, width uint32) error {
	if width < curve.Side() {
		return fmt.Errorf("%w: width %d is narrower than the %d cell grid", core.ErrBadParam, width, curve.Side())
	}
	if width > constants.MaxRenderWidth {
		return fmt.Errorf("%w: width %d, maximum %d", core.ErrBadParam, width, constants.MaxRenderWidth)
	}
	return nil
}

// Render draws the path of curve through the centres of its cells in a
// width x width image.
func Render(curve hilbert.Curve, width uint32) (*image.RGBA, error) {
	if err := curve.Validate(); err != nil {
		return nil, err
	}
	if err := validateWidth(curve, width); err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, int(width), int(width)))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: Background}, image.Point{}, draw.Src)

	capacity := curve.Capacity()
	last := float64(max(capacity-1, 1))

	prev, err := curve.IndexToPoint(0)
	if err != nil {
		return nil, err
	}
	prev = curve.OffsetPoint(prev, width)
	img.SetRGBA(int(prev.X), int(prev.Y), Shade(0))

	for index := uint64(1); index < capacity; index++ {
		p, err := curve.IndexToPoint(index)
		if err != nil {
			return nil, err
		}
		p = curve.OffsetPoint(p, width)
		drawSegment(img, prev, p, Shade(float64(index)/last))
		prev = p
	}

	return img, nil
}

// drawSegment draws the axis aligned segment from a to b, leaving a itself
// untouched.
func drawSegment(img *image.RGBA, a, b hilbert.Point, c color.RGBA) {
	x, y := int(a.X), int(a.Y)
	dx, dy := step(a.X, b.X), step(a.Y, b.Y)
	for x != int(b.X) || y != int(b.Y) {
		x, y = x+dx, y+dy
		img.SetRGBA(x, y, c)
	}
}

func step(from, to uint32) int {
	switch {
	case to > from:
		return 1
	case to < from:
		return -1
	default:
		return 0
	}
}

func EncodePNG(w io.Writer, img image.Image) error {
	encoder := png.Encoder{CompressionLevel: png.BestSpeed}
	return encoder.Encode(w, img)
}

func RenderHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	curve, err := core.ParseCurve(ps)
	if err != nil {
		core.WriteError(w, r, err)
		return
	}
	width, err := core.ParseUint32(ps, "width")
	if err != nil {
		core.WriteError(w, r, err)
		return
	}

	img, err := Render(curve, width)
	if err != nil {
		core.WriteError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if err := EncodePNG(w, img); err != nil {
		logger.Sugar.Warnf("%s %s: failed to encode png: %v", r.Method, r.URL.Path, err)
	}
}

func init() {
	core.RegisterRoute(core.Route{
		Id:      "render",
		Method:  http.MethodGet,
		Path:    "/api/render/:order/:width",
		Handler: RenderHandler,
	})
}

package hilbertviz

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/chromy/hilbertviz/internal/features/api"
	"github.com/chromy/hilbertviz/internal/features/render"
	"github.com/chromy/hilbertviz/internal/hilbert"
	"github.com/chromy/hilbertviz/internal/logger"
)

var errMissingOut = errors.New("render: -out must be set")

// uint32Value is a flag that rejects values outside uint32 instead of
// truncating them.
type uint32Value uint32

func (v *uint32Value) String() string {
	return strconv.FormatUint(uint64(*v), 10)
}

func (v *uint32Value) Set(s string) error {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return err
	}
	*v = uint32Value(n)
	return nil
}

// curveCmd runs one of the transform subcommands, printing its result to w
// as JSON.
func curveCmd(w io.Writer, name string, args []string) int {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	order := fs.Uint("order", 1, "curve order")
	var x, y uint32Value
	width := uint32Value(512)
	fs.Var(&x, "x", "x coordinate")
	fs.Var(&y, "y", "y coordinate")
	index := fs.Uint64("index", 0, "curve index")
	fs.Var(&width, "width", "projection width in pixels")
	out := fs.String("out", "", "png file to write")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *order > hilbert.MaxOrder {
		fmt.Fprintf(os.Stderr, "error: %v: %d\n", hilbert.ErrOrderTooLarge, *order)
		return 1
	}

	curve := hilbert.New(uint16(*order))
	p := hilbert.Point{X: uint32(x), Y: uint32(y)}

	var result interface{}
	var err error
	switch name {
	case "index":
		result, err = doIndex(curve, p)
	case "point":
		result, err = doPoint(curve, *index)
	case "offset":
		result, err = api.Offset(curve, uint32(width), p)
	case "deoffset":
		result, err = api.Deoffset(curve, uint32(width), p)
	case "render":
		err = doRender(curve, uint32(width), *out)
	default:
		err = fmt.Errorf("unknown curve command %s", name)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	if result == nil {
		return 0
	}

	if err := json.NewEncoder(w).Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func doIndex(curve hilbert.Curve, p hilbert.Point) (api.CurvePoint, error) {
	index, err := curve.PointToIndex(p)
	if err != nil {
		return api.CurvePoint{}, err
	}
	return api.CurvePoint{Order: curve.Order(), Index: index, Point: p}, nil
}

func doPoint(curve hilbert.Curve, index uint64) (api.CurvePoint, error) {
	p, err := curve.IndexToPoint(index)
	if err != nil {
		return api.CurvePoint{}, err
	}
	return api.CurvePoint{Order: curve.Order(), Index: index, Point: p}, nil
}

func doRender(curve hilbert.Curve, width uint32, out string) error {
	if out == "" {
		return errMissingOut
	}

	img, err := render.Render(curve, width)
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := render.EncodePNG(f, img); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	logger.Sugar.Infof("wrote order %d curve to %s", curve.Order(), out)
	return nil
}

package api

import (
	"fmt"
	"net/http"

	"github.com/chromy/hilbertviz/internal/core"
	"github.com/chromy/hilbertviz/internal/hilbert"
	"github.com/chromy/hilbertviz/internal/schemas"
	"github.com/julienschmidt/httprouter"
)

type CurvePoint struct {
	Order uint16        `json:"order"`
	Index uint64        `json:"index"`
	Point hilbert.Point `json:"point"`
}

type Projection struct {
	Order   uint16        `json:"order"`
	Width   uint32        `json:"width"`
	CellLen uint32        `json:"cellLen"`
	Point   hilbert.Point `json:"point"`
	Pixel   hilbert.Point `json:"pixel"`
}

type TileMetadata struct {
	Order uint16 `json:"order"`
	X     int64  `json:"x"`
	Y     int64  `json:"y"`
	Lod   int64  `json:"lod"`
}

type Tile struct {
	TileMetadata
	Values []int32 `json:"values"`
}

func IndexHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	curve, err := core.ParseCurve(ps)
	if err != nil {
		core.WriteError(w, r, err)
		return
	}
	x, err := core.ParseUint32(ps, "x")
	if err != nil {
		core.WriteError(w, r, err)
		return
	}
	y, err := core.ParseUint32(ps, "y")
	if err != nil {
		core.WriteError(w, r, err)
		return
	}

	p := hilbert.Point{X: x, Y: y}
	index, err := curve.PointToIndex(p)
	if err != nil {
		core.WriteError(w, r, err)
		return
	}

	core.WriteJSON(w, r, CurvePoint{Order: curve.Order(), Index: index, Point: p})
}

func PointHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	curve, err := core.ParseCurve(ps)
	if err != nil {
		core.WriteError(w, r, err)
		return
	}
	index, err := core.ParseUint64(ps, "index")
	if err != nil {
		core.WriteError(w, r, err)
		return
	}

	p, err := GetPoint(r.Context(), curve, index)
	if err != nil {
		core.WriteError(w, r, err)
		return
	}

	core.WriteJSON(w, r, CurvePoint{Order: curve.Order(), Index: index, Point: p})
}

func parseProjection(ps httprouter.Params) (hilbert.Curve, uint32, hilbert.Point, error) {
	curve, err := core.ParseCurve(ps)
	if err != nil {
		return curve, 0, hilbert.Point{}, err
	}
	width, err := core.ParseUint32(ps, "width")
	if err != nil {
		return curve, 0, hilbert.Point{}, err
	}
	x, err := core.ParseUint32(ps, "x")
	if err != nil {
		return curve, 0, hilbert.Point{}, err
	}
	y, err := core.ParseUint32(ps, "y")
	if err != nil {
		return curve, 0, hilbert.Point{}, err
	}
	return curve, width, hilbert.Point{X: x, Y: y}, nil
}

// Offset projects cell p to the centre of its pixels in a width x width
// image.
func Offset(curve hilbert.Curve, width uint32, p hilbert.Point) (Projection, error) {
	if err := curve.Validate(); err != nil {
		return Projection{}, err
	}
	if !curve.Contains(p) {
		return Projection{}, fmt.Errorf("%w: (%d, %d) on order %d", hilbert.ErrPointOutOfRange, p.X, p.Y, curve.Order())
	}
	return Projection{
		Order:   curve.Order(),
		Width:   width,
		CellLen: curve.CellLen(width),
		Point:   p,
		Pixel:   curve.OffsetPoint(p, width),
	}, nil
}

// Deoffset finds the cell under pixel in a width x width image. Pixels off
// the image, or in the trailing margin a non-multiple width leaves past the
// last cell, are rejected.
func Deoffset(curve hilbert.Curve, width uint32, pixel hilbert.Point) (Projection, error) {
	if err := curve.Validate(); err != nil {
		return Projection{}, err
	}
	if pixel.X >= width || pixel.Y >= width {
		return Projection{}, fmt.Errorf("%w: pixel (%d, %d) outside width %d", hilbert.ErrPointOutOfRange, pixel.X, pixel.Y, width)
	}
	p := curve.DeoffsetPoint(pixel, width)
	if !curve.Contains(p) {
		return Projection{}, fmt.Errorf("%w: pixel (%d, %d) past the last cell of order %d at width %d", hilbert.ErrPointOutOfRange, pixel.X, pixel.Y, curve.Order(), width)
	}
	return Projection{
		Order:   curve.Order(),
		Width:   width,
		CellLen: curve.CellLen(width),
		Point:   p,
		Pixel:   pixel,
	}, nil
}

func OffsetHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	curve, width, p, err := parseProjection(ps)
	if err != nil {
		core.WriteError(w, r, err)
		return
	}

	projection, err := Offset(curve, width, p)
	if err != nil {
		core.WriteError(w, r, err)
		return
	}
	core.WriteJSON(w, r, projection)
}

func DeoffsetHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	curve, width, pixel, err := parseProjection(ps)
	if err != nil {
		core.WriteError(w, r, err)
		return
	}

	projection, err := Deoffset(curve, width, pixel)
	if err != nil {
		core.WriteError(w, r, err)
		return
	}
	core.WriteJSON(w, r, projection)
}

func ComputeHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	computationId := ps.ByName("computationId")

	computation, found := core.GetCurveComputation(computationId)
	if !found {
		core.WriteError(w, r, fmt.Errorf("%w: '%s'", core.ErrUnknownComputation, computationId))
		return
	}

	curve, err := core.ParseCurve(ps)
	if err != nil {
		core.WriteError(w, r, err)
		return
	}
	arg, err := core.ParseUint64(ps, "arg")
	if err != nil {
		core.WriteError(w, r, err)
		return
	}

	result, err := computation.Execute(r.Context(), curve, arg)
	if err != nil {
		core.WriteError(w, r, err)
		return
	}

	core.WriteJSON(w, r, result)
}

func RangeHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	computationId := ps.ByName("computationId")

	computation, found := core.GetRangeComputation(computationId)
	if !found {
		core.WriteError(w, r, fmt.Errorf("%w: '%s'", core.ErrUnknownComputation, computationId))
		return
	}

	curve, err := core.ParseCurve(ps)
	if err != nil {
		core.WriteError(w, r, err)
		return
	}
	start, err := core.ParseUint64(ps, "start")
	if err != nil {
		core.WriteError(w, r, err)
		return
	}
	end, err := core.ParseUint64(ps, "end")
	if err != nil {
		core.WriteError(w, r, err)
		return
	}

	result, err := computation.Execute(r.Context(), curve, start, end)
	if err != nil {
		core.WriteError(w, r, err)
		return
	}

	core.WriteJSON(w, r, result)
}

func TileHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tileComputationId := ps.ByName("tileComputationId")

	tileComputation, found := core.GetTileComputation(tileComputationId)
	if !found {
		core.WriteError(w, r, fmt.Errorf("%w: tile computation %s not found", core.ErrUnknownComputation, tileComputationId))
		return
	}

	curve, err := core.ParseCurve(ps)
	if err != nil {
		core.WriteError(w, r, err)
		return
	}
	lod, err := core.ParseInt64(ps, "lod")
	if err != nil {
		core.WriteError(w, r, err)
		return
	}
	x, err := core.ParseInt64(ps, "x")
	if err != nil {
		core.WriteError(w, r, err)
		return
	}
	y, err := core.ParseInt64(ps, "y")
	if err != nil {
		core.WriteError(w, r, err)
		return
	}

	values, err := tileComputation.Execute(r.Context(), curve, lod, x, y)
	if err != nil {
		core.WriteError(w, r, err)
		return
	}

	core.WriteJSON(w, r, Tile{
		TileMetadata: TileMetadata{Order: curve.Order(), X: x, Y: y, Lod: lod},
		Values:       values,
	})
}

func init() {
	core.RegisterRoute(core.Route{
		Id:      "api.index",
		Method:  http.MethodGet,
		Path:    "/api/curve/:order/index/:x/:y",
		Handler: IndexHandler,
	})

	core.RegisterRoute(core.Route{
		Id:      "api.point",
		Method:  http.MethodGet,
		Path:    "/api/curve/:order/point/:index",
		Handler: PointHandler,
	})

	core.RegisterRoute(core.Route{
		Id:      "api.offset",
		Method:  http.MethodGet,
		Path:    "/api/curve/:order/offset/:width/:x/:y",
		Handler: OffsetHandler,
	})

	core.RegisterRoute(core.Route{
		Id:      "api.deoffset",
		Method:  http.MethodGet,
		Path:    "/api/curve/:order/deoffset/:width/:x/:y",
		Handler: DeoffsetHandler,
	})

	core.RegisterRoute(core.Route{
		Id:      "api.compute",
		Method:  http.MethodGet,
		Path:    "/api/compute/:computationId/:order/:arg",
		Handler: ComputeHandler,
	})

	core.RegisterRoute(core.Route{
		Id:      "api.range",
		Method:  http.MethodGet,
		Path:    "/api/range/:computationId/:order/:start/:end",
		Handler: RangeHandler,
	})

	core.RegisterRoute(core.Route{
		Id:      "api.tile",
		Method:  http.MethodGet,
		Path:    "/api/tile/:tileComputationId/:order/:lod/:x/:y",
		Handler: TileHandler,
	})

	schemas.Register("api.CurvePoint", CurvePoint{})
	schemas.Register("api.Projection", Projection{})
	schemas.Register("api.TileMetadata", TileMetadata{})
	schemas.Register("api.Tile", Tile{})
}

package varz

import (
	"fmt"
	"net/http"
	"runtime"
	"sort"
	"time"

	"github.com/chromy/hilbertviz/internal/cache"
	"github.com/chromy/hilbertviz/internal/core"
	"github.com/chromy/hilbertviz/internal/schemas"
	"github.com/julienschmidt/httprouter"
)

type VarzResponse struct {
	Version           string       `json:"version"`
	BuildTime         string       `json:"build_time"`
	GoVersion         string       `json:"go_version"`
	StartTime         time.Time    `json:"start_time"`
	Uptime            string       `json:"uptime"`
	Cache             string       `json:"cache"`
	CacheStats        *cache.Stats `json:"cache_stats,omitempty"`
	MaxOrder          uint16       `json:"max_order"`
	CurveComputations []string     `json:"curve_computations"`
	RangeComputations []string     `json:"range_computations"`
	TileComputations  []string     `json:"tile_computations"`
}

var (
	buildTime = "unknown"
	startTime = time.Now()
)

func sorted(ids []string) []string {
	sort.Strings(ids)
	return ids
}

type statser interface {
	Stats() cache.Stats
}

func Snapshot() VarzResponse {
	c := core.GetCache()
	response := VarzResponse{
		Version:           core.GetVersion(),
		BuildTime:         buildTime,
		GoVersion:         runtime.Version(),
		StartTime:         startTime,
		Uptime:            time.Since(startTime).String(),
		Cache:             fmt.Sprintf("%T", c),
		MaxOrder:          core.GetMaxOrder(),
		CurveComputations: sorted(core.ListCurveComputations()),
		RangeComputations: sorted(core.ListRangeComputations()),
		TileComputations:  sorted(core.ListTileComputations()),
	}
	if s, ok := c.(statser); ok {
		stats := s.Stats()
		response.CacheStats = &stats
	}
	return response
}

func VarzHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	core.WriteJSON(w, r, Snapshot())
}

func init() {
	core.RegisterRoute(core.Route{
		Id:      "varz",
		Method:  http.MethodGet,
		Path:    "/api/varz",
		Handler: VarzHandler,
	})

	schemas.Register("varz.VarzResponse", VarzResponse{})
}

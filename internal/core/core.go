package core

import (
	"github.com/chromy/hilbertviz/internal/cache"
	"sync"
)

var mu sync.RWMutex
var curveComputations map[string]CurveComputation = make(map[string]CurveComputation)
var rangeComputations map[string]RangeComputation = make(map[string]RangeComputation)
var routes map[string]Route = make(map[string]Route)
var theCache cache.Cache = cache.NewMemoryCache()

// Set at build time with -ldflags "-X github.com/chromy/hilbertviz/internal/core.version=..."
var version = "dev"

func GetVersion() string {
	return version
}

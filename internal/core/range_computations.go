package core

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chromy/hilbertviz/internal/hilbert"
	"github.com/chromy/hilbertviz/internal/logger"
)

// RangeFunc computes something about the half open index range [start, end)
// of a curve.
type RangeFunc[T any] func(ctx context.Context, curve hilbert.Curve, start uint64, end uint64) (T, error)

func wrapRangeFuncWithCaching[T any](id string, execute RangeFunc[T]) RangeFunc[T] {
	return func(ctx context.Context, curve hilbert.Curve, start uint64, end uint64) (T, error) {
		c := GetCache()
		key := GenerateCacheKey(id, fmt.Sprintf("%d", curve.Order()), fmt.Sprintf("%d", start), fmt.Sprintf("%d", end))

		if cached, err := c.Get(key); err == nil {
			var result T
			err := json.Unmarshal(cached, &result)
			if err == nil {
				return result, nil
			}
			logger.Sugar.Warnf("dropping undecodable cache entry for %s: %v", id, err)
			c.Delete(key)
		}

		result, err := execute(ctx, curve, start, end)
		if err != nil {
			var zero T
			return zero, err
		}

		serialized, err := json.Marshal(result)
		if err != nil {
			var zero T
			return zero, err
		}

		if err := c.Add(key, serialized, time.Hour); err != nil {
			logger.Sugar.Warnf("caching %s: %v", id, err)
		}

		return result, nil
	}
}

type RangeComputation struct {
	Id      string
	Execute RangeFunc[interface{}]
}

func RegisterRangeComputation[T any](id string, execute RangeFunc[T]) RangeFunc[T] {
	mu.Lock()
	defer mu.Unlock()

	if _, found := rangeComputations[id]; found {
		panic(fmt.Sprintf("range computation already registered %s", id))
	}

	wrapped := wrapRangeFuncWithCaching(id, execute)

	interfaceWrapped := func(ctx context.Context, curve hilbert.Curve, start uint64, end uint64) (interface{}, error) {
		return wrapped(ctx, curve, start, end)
	}

	rangeComputations[id] = RangeComputation{
		Id:      id,
		Execute: interfaceWrapped,
	}

	return wrapped
}

func GetRangeComputation(id string) (RangeComputation, bool) {
	mu.RLock()
	defer mu.RUnlock()

	c, found := rangeComputations[id]
	return c, found
}

func ListRangeComputations() []string {
	mu.RLock()
	defer mu.RUnlock()

	ids := make([]string, 0, len(rangeComputations))
	for id := range rangeComputations {
		ids = append(ids, id)
	}
	return ids
}

func ResetRangeComputationsForTesting() {
	mu.Lock()
	defer mu.Unlock()
	rangeComputations = make(map[string]RangeComputation)
}

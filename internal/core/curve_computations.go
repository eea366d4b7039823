package core

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/chromy/hilbertviz/internal/hilbert"
	"github.com/chromy/hilbertviz/internal/logger"
	"github.com/vmihailenco/msgpack/v5"
)

// CurveFunc computes something about a single argument, usually an index or
// a packed point, on a curve.
type CurveFunc[T any] func(ctx context.Context, curve hilbert.Curve, arg uint64) (T, error)

func wrapCurveFuncWithCaching[T any](id string, execute CurveFunc[T]) CurveFunc[T] {
	return func(ctx context.Context, curve hilbert.Curve, arg uint64) (T, error) {
		c := GetCache()
		key := GenerateCacheKey(id, fmt.Sprintf("%d", curve.Order()), fmt.Sprintf("%d", arg))

		if cached, err := c.Get(key); err == nil {
			var result T
			err := msgpack.Unmarshal(cached, &result)
			if err == nil {
				return result, nil
			}
			logger.Sugar.Warnf("dropping undecodable cache entry for %s: %v", id, err)
			c.Delete(key)
		}

		result, err := execute(ctx, curve, arg)
		if err != nil {
			var zero T
			return zero, err
		}

		serialized, err := msgpack.Marshal(result)
		if err != nil {
			var zero T
			return zero, err
		}

		if err := c.Add(key, serialized, 0); err != nil {
			logger.Sugar.Warnf("caching %s: %v", id, err)
		}

		return result, nil
	}
}

// CurveComputation is a registered CurveFunc with its result type erased.
type CurveComputation struct {
	Id      string
	Execute CurveFunc[interface{}]
}

func RegisterCurveComputation[T any](id string, execute CurveFunc[T]) CurveFunc[T] {
	mu.Lock()
	defer mu.Unlock()

	if _, found := curveComputations[id]; found {
		panic(fmt.Sprintf("curve computation already registered %s", id))
	}

	wrapped := wrapCurveFuncWithCaching(id, execute)

	interfaceWrapped := func(ctx context.Context, curve hilbert.Curve, arg uint64) (interface{}, error) {
		return wrapped(ctx, curve, arg)
	}

	curveComputations[id] = CurveComputation{
		Id:      id,
		Execute: interfaceWrapped,
	}

	return wrapped
}

func GetCurveComputation(id string) (CurveComputation, bool) {
	mu.RLock()
	defer mu.RUnlock()

	c, found := curveComputations[id]
	return c, found
}

func ListCurveComputations() []string {
	mu.RLock()
	defer mu.RUnlock()

	ids := make([]string, 0, len(curveComputations))
	for id := range curveComputations {
		ids = append(ids, id)
	}
	return ids
}

func ResetCurveComputationsForTesting() {
	mu.Lock()
	defer mu.Unlock()
	curveComputations = make(map[string]CurveComputation)
}

func GenerateCacheKey(parts ...string) string {
	versionedParts := append([]string{GetVersion()}, parts...)
	combined := strings.Join(versionedParts, ":")
	h := sha256.Sum256([]byte(combined))
	return fmt.Sprintf("%x", h)
}

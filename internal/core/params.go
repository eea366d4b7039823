package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/chromy/hilbertviz/internal/hilbert"
	"github.com/chromy/hilbertviz/internal/logger"
	"github.com/getsentry/sentry-go"
	"github.com/julienschmidt/httprouter"
)

var (
	ErrBadParam           = errors.New("bad parameter")
	ErrUnknownComputation = errors.New("unknown computation")
)

// DefaultMaxOrder is the largest order the server accepts unless configured
// otherwise.
const DefaultMaxOrder = 16

var maxOrder uint16 = DefaultMaxOrder

func SetMaxOrder(order uint16) {
	mu.Lock()
	defer mu.Unlock()
	maxOrder = min(order, hilbert.MaxOrder)
}

func GetMaxOrder() uint16 {
	mu.RLock()
	defer mu.RUnlock()
	return maxOrder
}

// ParseCurve reads the curve named by the order parameter.
func ParseCurve(ps httprouter.Params) (hilbert.Curve, error) {
	raw := ps.ByName("order")
	if raw == "" {
		return hilbert.Curve{}, fmt.Errorf("%w: order must be set", ErrBadParam)
	}
	order, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		return hilbert.Curve{}, fmt.Errorf("%w: order must be a number", ErrBadParam)
	}
	if limit := GetMaxOrder(); order > uint64(limit) {
		return hilbert.Curve{}, fmt.Errorf("%w: order %d, maximum %d", hilbert.ErrOrderTooLarge, order, limit)
	}
	curve := hilbert.New(uint16(order))
	return curve, curve.Validate()
}

func ParseUint64(ps httprouter.Params, name string) (uint64, error) {
	raw := ps.ByName(name)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s must be set", ErrBadParam, name)
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be number", ErrBadParam, name)
	}
	return v, nil
}

func ParseUint32(ps httprouter.Params, name string) (uint32, error) {
	raw := ps.ByName(name)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s must be set", ErrBadParam, name)
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be number", ErrBadParam, name)
	}
	return uint32(v), nil
}

func ParseInt64(ps httprouter.Params, name string) (int64, error) {
	raw := ps.ByName(name)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s must be set", ErrBadParam, name)
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be number", ErrBadParam, name)
	}
	return v, nil
}

// StatusForError maps errors from the transform and from parameter parsing
// to HTTP status codes.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, ErrBadParam),
		errors.Is(err, hilbert.ErrPointOutOfRange),
		errors.Is(err, hilbert.ErrIndexOutOfRange),
		errors.Is(err, hilbert.ErrOrderTooLarge):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnknownComputation):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes err with the status from StatusForError. Server errors
// are reported to sentry.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusForError(err)
	if status >= http.StatusInternalServerError {
		logger.Sugar.Errorf("%s %s: %v", r.Method, r.URL.Path, err)
		if hub := sentry.GetHubFromContext(r.Context()); hub != nil {
			hub.CaptureException(err)
		} else {
			sentry.CaptureException(err)
		}
	}
	http.Error(w, err.Error(), status)
}

func WriteJSON(w http.ResponseWriter, r *http.Request, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Sugar.Warnf("%s %s: failed to encode response: %v", r.Method, r.URL.Path, err)
	}
}

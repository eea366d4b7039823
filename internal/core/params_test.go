package core

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chromy/hilbertviz/internal/hilbert"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func params(kv ...string) httprouter.Params {
	var ps httprouter.Params
	for i := 0; i+1 < len(kv); i += 2 {
		ps = append(ps, httprouter.Param{Key: kv[i], Value: kv[i+1]})
	}
	return ps
}

func TestParseCurve(t *testing.T) {
	defer SetMaxOrder(DefaultMaxOrder)
	SetMaxOrder(10)

	curve, err := ParseCurve(params("order", "7"))
	require.NoError(t, err)
	assert.Equal(t, uint16(7), curve.Order())

	_, err = ParseCurve(params())
	assert.ErrorIs(t, err, ErrBadParam)

	_, err = ParseCurve(params("order", "seven"))
	assert.ErrorIs(t, err, ErrBadParam)

	_, err = ParseCurve(params("order", "-1"))
	assert.ErrorIs(t, err, ErrBadParam)

	_, err = ParseCurve(params("order", "11"))
	assert.ErrorIs(t, err, hilbert.ErrOrderTooLarge)
}

func TestSetMaxOrderIsCapped(t *testing.T) {
	defer SetMaxOrder(DefaultMaxOrder)
	SetMaxOrder(200)
	assert.Equal(t, uint16(hilbert.MaxOrder), GetMaxOrder())
}

func TestParseNumbers(t *testing.T) {
	ps := params("x", "12", "neg", "-3", "big", "4294967296", "word", "abc")

	x, err := ParseUint32(ps, "x")
	require.NoError(t, err)
	assert.Equal(t, uint32(12), x)

	_, err = ParseUint32(ps, "big")
	assert.ErrorIs(t, err, ErrBadParam)

	big, err := ParseUint64(ps, "big")
	require.NoError(t, err)
	assert.Equal(t, uint64(1)<<32, big)

	neg, err := ParseInt64(ps, "neg")
	require.NoError(t, err)
	assert.Equal(t, int64(-3), neg)

	for _, name := range []string{"word", "missing"} {
		_, err = ParseUint64(ps, name)
		assert.ErrorIs(t, err, ErrBadParam)
		_, err = ParseInt64(ps, name)
		assert.ErrorIs(t, err, ErrBadParam)
	}
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ErrBadParam, http.StatusBadRequest},
		{hilbert.ErrPointOutOfRange, http.StatusBadRequest},
		{hilbert.ErrIndexOutOfRange, http.StatusBadRequest},
		{hilbert.ErrOrderTooLarge, http.StatusBadRequest},
		{ErrUnknownComputation, http.StatusNotFound},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusForError(tt.err))
		})
	}
}

func TestWriteError(t *testing.T) {
	_, err := hilbert.New(1).IndexToPoint(4)
	rec := httptest.NewRecorder()
	WriteError(rec, httptest.NewRequest(http.MethodGet, "/api/curve/1/point/4", nil), err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "index exceeds capacity of this order")
}

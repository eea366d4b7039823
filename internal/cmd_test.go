package hilbertviz

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/chromy/hilbertviz/internal/features/api"
	"github.com/chromy/hilbertviz/internal/hilbert"
	"github.com/chromy/hilbertviz/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestCurveCmd(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want api.CurvePoint
	}{
		{"index", []string{"-order", "2", "-x", "1", "-y", "2"}, api.CurvePoint{Order: 2, Index: 7, Point: hilbert.Point{X: 1, Y: 2}}},
		{"point", []string{"-order", "2", "-index", "15"}, api.CurvePoint{Order: 2, Index: 15, Point: hilbert.Point{X: 3, Y: 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.Equal(t, 0, curveCmd(&out, tt.name, tt.args))

			var got api.CurvePoint
			require.NoError(t, json.Unmarshal(out.Bytes(), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCurveCmdProjection(t *testing.T) {
	var out bytes.Buffer
	require.Equal(t, 0, curveCmd(&out, "offset", []string{"-order", "3", "-width", "128", "-x", "0", "-y", "3"}))
	var offset api.Projection
	require.NoError(t, json.Unmarshal(out.Bytes(), &offset))
	assert.Equal(t, hilbert.Point{X: 8, Y: 56}, offset.Pixel)

	out.Reset()
	require.Equal(t, 0, curveCmd(&out, "deoffset", []string{"-order", "3", "-width", "128", "-x", "8", "-y", "56"}))
	var deoffset api.Projection
	require.NoError(t, json.Unmarshal(out.Bytes(), &deoffset))
	assert.Equal(t, hilbert.Point{X: 0, Y: 3}, deoffset.Point)
}

func TestCurveCmdErrors(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, 1, curveCmd(&out, "index", []string{"-order", "2", "-x", "4"}))
	assert.Equal(t, 1, curveCmd(&out, "point", []string{"-order", "40"}))
	assert.Equal(t, 1, curveCmd(&out, "render", []string{"-order", "2"}))
	assert.Equal(t, 2, curveCmd(&out, "point", []string{"-bogus"}))

	// values past uint32 are rejected, not wrapped
	assert.Equal(t, 2, curveCmd(&out, "index", []string{"-order", "1", "-x", "4294967297", "-y", "0"}))
	assert.Equal(t, 2, curveCmd(&out, "offset", []string{"-order", "3", "-width", "4294967424"}))
	assert.Equal(t, 2, curveCmd(&out, "index", []string{"-order", "1", "-y", "-1"}))

	// pixels off the projection
	assert.Equal(t, 1, curveCmd(&out, "deoffset", []string{"-order", "3", "-width", "128", "-x", "128", "-y", "0"}))
	assert.Equal(t, 1, curveCmd(&out, "deoffset", []string{"-order", "2", "-width", "10", "-x", "9", "-y", "0"}))
	assert.Empty(t, out.String())
}

func TestCurveCmdRender(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curve.png")

	var out bytes.Buffer
	require.Equal(t, 0, curveCmd(&out, "render", []string{"-order", "3", "-width", "64", "-out", path}))
	assert.Empty(t, out.String())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
}

func TestHandler(t *testing.T) {
	handler := NewHandler()

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	home := get("/")
	assert.Equal(t, http.StatusOK, home.Code)
	assert.Contains(t, home.Body.String(), "/api/render/5/512")

	missing := get("/no/such/page")
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Contains(t, missing.Body.String(), "/no/such/page")

	css := get("/static/main.css")
	assert.Equal(t, http.StatusOK, css.Code)

	point := get("/api/curve/1/point/2")
	assert.Equal(t, http.StatusOK, point.Code)
	assert.JSONEq(t, `{"order":1,"index":2,"point":{"x":1,"y":1}}`, point.Body.String())

	varz := get("/api/varz")
	assert.Equal(t, http.StatusOK, varz.Code)

	quadtree := get("/api/range/quadtree/1/0/4")
	assert.Equal(t, http.StatusOK, quadtree.Code)
	assert.Contains(t, quadtree.Body.String(), `"data":"AA=="`)
}

func TestRequestLogsAreTaggedWithService(t *testing.T) {
	observed, logs := observer.New(zapcore.InfoLevel)
	previous := logger.Sugar
	logger.Sugar = zap.New(observed).Sugar()
	defer func() { logger.Sugar = previous }()

	rec := httptest.NewRecorder()
	NewHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/curve/1/point/9", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "serve", fields["service"])
	assert.Equal(t, "/api/curve/1/point/9", fields["path"])
	assert.Equal(t, int64(http.StatusBadRequest), fields["status"])
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("GO_ENV", "")
	assert.Equal(t, "development", GetEnvironment())

	t.Setenv("GO_ENV", "staging")
	assert.Equal(t, "staging", GetEnvironment())

	t.Setenv("ENVIRONMENT", "production")
	assert.Equal(t, "production", GetEnvironment())
}

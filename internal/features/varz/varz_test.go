package varz

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chromy/hilbertviz/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVarzHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	VarzHandler(rec, httptest.NewRequest(http.MethodGet, "/api/varz", nil), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got VarzResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, core.GetVersion(), got.Version)
	assert.Equal(t, core.GetMaxOrder(), got.MaxOrder)
	assert.Equal(t, "*cache.MemoryCache", got.Cache)
	require.NotNil(t, got.CacheStats)
	assert.NotEmpty(t, got.GoVersion)
	assert.False(t, got.StartTime.IsZero())
}

func TestVarzRouteIsRegistered(t *testing.T) {
	route, found := core.GetRoute("varz")
	require.True(t, found)
	assert.Equal(t, "/api/varz", route.Path)
}

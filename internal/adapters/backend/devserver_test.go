package backend

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDevServer_Routes(t *testing.T) {
	fixtures, err := LoadFixtures("testdata/fixtures.yaml")
	require.NoError(t, err)
	router := NewDevServer(fixtures, testLogger()).Router()

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{name: "health", method: http.MethodGet, path: "/health", status: http.StatusOK},
		{name: "user", method: http.MethodGet, path: "/users/" + alice.Hex(), status: http.StatusOK},
		{name: "unknown user", method: http.MethodGet, path: "/users/0x9999999999999999999999999999999999999999", status: http.StatusNotFound},
		{name: "bad address", method: http.MethodGet, path: "/users/positions/nope", status: http.StatusBadRequest},
		{name: "positions of stranger", method: http.MethodGet, path: "/users/positions/0x9999999999999999999999999999999999999999", status: http.StatusOK},
		{name: "bad sort", method: http.MethodGet, path: "/users/history/" + alice.Hex() + "?sort=2", status: http.StatusBadRequest},
		{name: "bad chain", method: http.MethodGet, path: "/marketplace/listed-items/" + alice.Hex() + "?chainId=x", status: http.StatusBadRequest},
		{name: "put unknown listing", method: http.MethodPut, path: "/marketplace/listing/404", body: `{"quantity":1}`, status: http.StatusNotFound},
		{name: "put unknown field", method: http.MethodPut, path: "/marketplace/listing/7", body: `{"seller":"x"}`, status: http.StatusBadRequest},
		{name: "put negative price", method: http.MethodPut, path: "/marketplace/listing/7", body: `{"offerPrice":"-1"}`, status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestLoadFixtures_Missing(t *testing.T) {
	_, err := LoadFixtures("testdata/missing.yaml")
	assert.Error(t, err)
}

package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCameraHandler(t *testing.T) {
	camera := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/status":
			_, _ = w.Write([]byte(`{"status":"ready","camera_type":"industrial","current_mode":"black","streaming":true}`))
		case "/api/mode":
			_, _ = w.Write([]byte(`{"success":true,"mode":"other"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer camera.Close()

	s := newTestServer(t, camera.URL)

	code, resp := s.do(t, http.MethodGet, "/api/v1/camera/status", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ready", resp["status"])
	assert.Equal(t, camera.URL, resp["camera_url"])

	code, resp = s.do(t, http.MethodPost, "/api/v1/camera/mode", map[string]any{"mode": "other"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "other", resp["mode"])

	code, resp = s.do(t, http.MethodPost, "/api/v1/camera/mode", map[string]any{"mode": "neon"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.NotEmpty(t, resp["error"])
}

func TestCameraHandler_Offline(t *testing.T) {
	s := newTestServer(t, "http://127.0.0.1:1")

	code, resp := s.do(t, http.MethodGet, "/api/v1/camera/status", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "offline", resp["status"])

	code, _ = s.do(t, http.MethodPost, "/api/v1/camera/mode", map[string]any{"mode": "black"})
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func TestHealthAndCORS(t *testing.T) {
	s := newTestServer(t, "http://127.0.0.1:1")

	code, resp := s.do(t, http.MethodGet, "/api/v1/health", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, true, resp["database"])

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/calibration", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

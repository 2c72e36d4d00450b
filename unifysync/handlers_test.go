package unifysync

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"bitbucket.org/platesync/unify_backend/models"
)

func testRouter(svc *RunService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/v1/runs", svc.TriggerRunHandler())
	r.GET("/v1/runs/status", svc.StatusHandler())
	return r
}

func writeExportFiles(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	inputs := fullInputs(t)

	toastPath := filepath.Join(dir, "toast.json")
	require.NoError(t, os.WriteFile(toastPath, inputs.Toast, 0o644))
	t.Setenv("TOAST_EXPORT_PATH", toastPath)

	ddPath := filepath.Join(dir, "doordash.json")
	require.NoError(t, os.WriteFile(ddPath, inputs.DoorDash, 0o644))
	t.Setenv("DOORDASH_EXPORT_PATH", ddPath)

	sqPath := filepath.Join(dir, "square.json")
	require.NoError(t, os.WriteFile(sqPath, inputs.Square, 0o644))
	t.Setenv("SQUARE_EXPORT_PATH", sqPath)

	return dir
}

func TestTriggerRunHandler(t *testing.T) {
	dir := writeExportFiles(t)
	outPath := filepath.Join(dir, "snapshot.json")
	t.Setenv("SNAPSHOT_OUT_PATH", outPath)

	svc := NewRunService(testRunConfig(), Options{})
	r := testRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/runs", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var report RunReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	require.NotNil(t, report.Stats)
	require.Equal(t, 3, report.Stats.Orders)
	require.Empty(t, report.Error)

	var snap models.Snapshot
	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &snap))
	require.NoError(t, snap.Validate())

	// Status replays the same report.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/runs/status", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var replay RunReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &replay))
	require.NotNil(t, replay.Stats)
	require.Equal(t, report.Stats.Orders, replay.Stats.Orders)
}

func TestTriggerRunHandler_NoInputs(t *testing.T) {
	t.Setenv("TOAST_EXPORT_PATH", "")
	t.Setenv("DOORDASH_EXPORT_PATH", "")
	t.Setenv("SQUARE_EXPORT_PATH", "")
	t.Setenv("SNAPSHOT_OUT_PATH", "")

	svc := NewRunService(testRunConfig(), Options{})
	r := testRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/runs", nil))
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var report RunReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	require.Contains(t, report.Error, "no platform export")
}

func TestStatusHandler_Idle(t *testing.T) {
	svc := NewRunService(testRunConfig(), Options{})
	r := testRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/runs/status", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status":"idle"}`, w.Body.String())
}

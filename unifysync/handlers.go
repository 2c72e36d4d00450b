package unifysync

import (
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"bitbucket.org/platesync/unify_backend/config"
	"bitbucket.org/platesync/unify_backend/utils"
)

// RunService owns the inputs a triggered run reads and serializes run
// execution: one preprocessing pass at a time, the way the batch was
// designed to execute.
type RunService struct {
	cfg  RunConfig
	opts Options

	mu      sync.Mutex
	lastRun *RunReport
}

// RunReport is what the trigger endpoint returns and the status endpoint
// replays.
type RunReport struct {
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	DurationMs int64     `json:"duration_ms"`
	Error      string    `json:"error,omitempty"`
	Stats      *RunStats `json:"stats,omitempty"`
}

func NewRunService(cfg RunConfig, opts Options) *RunService {
	return &RunService{cfg: cfg, opts: opts}
}

// TriggerRunHandler runs one preprocessing pass over the configured export
// paths and writes the snapshot to SNAPSHOT_OUT_PATH.
func (s *RunService) TriggerRunHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()

		started := time.Now()
		report := &RunReport{StartedAt: started}

		inputs := Inputs{
			Toast:    readOptionalFile(config.EnvDefault("TOAST_EXPORT_PATH", "")),
			DoorDash: readOptionalFile(config.EnvDefault("DOORDASH_EXPORT_PATH", "")),
			Square:   readOptionalFile(config.EnvDefault("SQUARE_EXPORT_PATH", "")),
		}

		snap, stats, err := Run(c.Request.Context(), inputs, s.cfg, s.opts)
		report.FinishedAt = time.Now()
		report.DurationMs = report.FinishedAt.Sub(started).Milliseconds()

		if err != nil {
			report.Error = err.Error()
			s.lastRun = report
			c.JSON(http.StatusUnprocessableEntity, report)
			return
		}

		if out := config.EnvDefault("SNAPSHOT_OUT_PATH", ""); out != "" {
			if werr := utils.WriteJSONFile(out, snap); werr != nil {
				report.Error = werr.Error()
				s.lastRun = report
				c.JSON(http.StatusInternalServerError, report)
				return
			}
		}

		report.Stats = stats
		s.lastRun = report
		c.JSON(http.StatusOK, report)
	}
}

// StatusHandler replays the most recent run's report.
func (s *RunService) StatusHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.lastRun == nil {
			c.JSON(http.StatusOK, gin.H{"status": "idle"})
			return
		}
		c.JSON(http.StatusOK, s.lastRun)
	}
}

func readOptionalFile(path string) []byte {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return data
}

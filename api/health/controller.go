// Package health exposes liveness and readiness probes.
package health

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"remindly/api/response"
	"remindly/config"
)

type Controller struct {
	cfg       *config.Config
	db        *gorm.DB
	startedAt time.Time
}

// NewController accepts a nil db when running against the in-memory
// repositories.
func NewController(cfg *config.Config, db *gorm.DB) *Controller {
	return &Controller{cfg: cfg, db: db, startedAt: time.Now()}
}

func (ctrl *Controller) RegisterRoutes(r gin.IRoutes) {
	r.GET("/health", ctrl.Health)
	r.GET("/health/live", ctrl.Liveness)
	r.GET("/health/ready", ctrl.Readiness)
}

type healthStatus struct {
	Status   string            `json:"status"`
	Version  string            `json:"version"`
	Uptime   string            `json:"uptime"`
	Checks   map[string]string `json:"checks"`
	System   *systemInfo       `json:"system,omitempty"`
	CheckedAt time.Time         `json:"checked_at"`
}

type systemInfo struct {
	GoVersion  string `json:"go_version"`
	Goroutines int    `json:"goroutines"`
	NumCPU     int    `json:"num_cpu"`
}

func (ctrl *Controller) Health(c *gin.Context) {
	checks := map[string]string{
		"database": ctrl.checkDatabase(),
	}

	status := "healthy"
	code := http.StatusOK
	for _, v := range checks {
		if v != "ok" && v != "skipped" {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
	}

	payload := healthStatus{
		Status:   status,
		Version:  ctrl.cfg.App.Version,
		Uptime:   time.Since(ctrl.startedAt).Round(time.Second).String(),
		Checks:   checks,
		CheckedAt: time.Now(),
	}
	if ctrl.cfg.IsDevelopment() {
		payload.System = &systemInfo{
			GoVersion:  runtime.Version(),
			Goroutines: runtime.NumGoroutine(),
			NumCPU:     runtime.NumCPU(),
		}
	}

	c.JSON(code, response.Response{
		Success:   code == http.StatusOK,
		Data:      payload,
		RequestID: c.GetString(response.RequestIDKey),
	})
}

func (ctrl *Controller) Liveness(c *gin.Context) {
	response.HandleSuccess(c, gin.H{"status": "alive"})
}

func (ctrl *Controller) Readiness(c *gin.Context) {
	if status := ctrl.checkDatabase(); status != "ok" && status != "skipped" {
		c.JSON(http.StatusServiceUnavailable, response.Response{
			Success:   false,
			Code:      "NOT_READY",
			Message:   "database unavailable",
			RequestID: c.GetString(response.RequestIDKey),
		})
		return
	}
	response.HandleSuccess(c, gin.H{"status": "ready"})
}

func (ctrl *Controller) checkDatabase() string {
	if ctrl.db == nil {
		return "skipped"
	}
	sqlDB, err := ctrl.db.DB()
	if err != nil {
		return err.Error()
	}
	if err := sqlDB.Ping(); err != nil {
		return err.Error()
	}
	return "ok"
}

// Package api assembles the gin engine: middleware chain, health
// probes and the versioned resource routes.
package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"remindly/api/client"
	"remindly/api/emailconfig"
	"remindly/api/health"
	"remindly/api/middleware"
	"remindly/api/notification"
	"remindly/api/reminder"
	"remindly/config"
)

// Controllers bundles everything the router mounts.
type Controllers struct {
	Client       *client.Controller
	EmailConfig  *emailconfig.Controller
	Reminder     *reminder.Controller
	Notification *notification.Controller
}

type Router struct {
	engine *gin.Engine
}

// NewRouter builds the engine. db may be nil when the mock persistence
// backend is configured; health checks degrade gracefully.
func NewRouter(cfg *config.Config, db *gorm.DB, ctrls Controllers) *Router {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.RecoveryMiddleware())
	engine.Use(middleware.LoggingMiddleware())
	engine.Use(middleware.CORSMiddleware(&cfg.CORS))
	if cfg.Server.RateLimit.Enabled {
		engine.Use(middleware.NewRateLimiter(&cfg.Server.RateLimit).Middleware())
	}

	health.NewController(cfg, db).RegisterRoutes(engine)

	engine.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"name":    cfg.App.Name,
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
		})
	})

	v1 := engine.Group("/api/v1")
	v1.Use(middleware.IdentityMiddleware())
	{
		ctrls.Client.RegisterRoutes(v1)
		ctrls.EmailConfig.RegisterRoutes(v1)
		ctrls.Reminder.RegisterRoutes(v1)
		ctrls.Notification.RegisterRoutes(v1)
	}

	return &Router{engine: engine}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// Package metrics exposes the process's Prometheus registry over Fiber.
package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler serves the default Prometheus registry.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}

// Register mounts the metrics endpoint on app when enabled.
func Register(app fiber.Router, cfg Config) {
	if !cfg.Enabled {
		return
	}
	path := cfg.Path
	if path == "" {
		path = "/metrics"
	}
	app.Get(path, Handler())
}

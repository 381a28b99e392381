// Package api exposes the simulator over HTTP.
package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/inference-sim/cpusim/sim"
	"github.com/inference-sim/cpusim/sim/store"
)

// NewApp builds the fiber application with every route under /api/v1.
// runs may be nil, in which case results are not stored and /runs is not served.
func NewApp(defaults sim.Config, runs *store.RunStore) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "cpusim",
		DisableStartupMessage: true,
	})
	h := NewSchedulerHandler(defaults, runs)

	api := app.Group("/api")
	v1 := api.Group("/v1")
	{
		v1.Get("/policies", h.Policies)
		v1.Post("/schedule/:policy", h.Schedule)
		v1.Post("/compare", h.Compare)
		if runs != nil {
			v1.Get("/runs", h.ListRuns)
			v1.Get("/runs/:id", h.GetRun)
		}
	}
	return app
}

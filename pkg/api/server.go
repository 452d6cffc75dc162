package api

import (
	"github.com/fleetlens/fleetlens/pkg/alerts"
	"github.com/fleetlens/fleetlens/pkg/api/routes"
	"github.com/fleetlens/fleetlens/pkg/dashboard"
	"github.com/fleetlens/fleetlens/pkg/upstream"
	"github.com/gofiber/fiber/v2"
)

// Dependencies carries the wired services the routes close over.
type Dependencies struct {
	Builder  *dashboard.Builder
	Upstream *upstream.Client

	// Alerts is optional - nil disables rule evaluation on refresh.
	Alerts *alerts.Publisher

	DefaultGroup string
}

func SetupServer(listen string, deps Dependencies) error {
	webApp := fiber.New()
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	holder := &dashboard.SnapshotHolder{}

	routes.DashboardRouter(group.Group("/dashboard"), deps.Builder, holder, deps.Alerts, deps.DefaultGroup)
	routes.VehiclesRouter(group.Group("/vehicles"), deps.Builder, holder, deps.Upstream, deps.DefaultGroup)

	return webApp.Listen(listen)
}

package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/abfahrt/abfahrt/pkg/api/routes"
	"github.com/abfahrt/abfahrt/pkg/dashboard"
	"github.com/abfahrt/abfahrt/pkg/favourites"
	"github.com/abfahrt/abfahrt/pkg/mvg"
	"github.com/abfahrt/abfahrt/pkg/stations"
)

// Dependencies are the collaborators the web API is built over.
type Dependencies struct {
	Directory  *stations.Directory
	Favourites *favourites.Store
	Dashboard  *dashboard.Controller
	MVG        *mvg.Client
}

func SetupServer(listen string, deps Dependencies) error {
	webApp := NewWebApp(deps)

	return webApp.Listen(listen)
}

func NewWebApp(deps Dependencies) *fiber.App {
	webApp := fiber.New()
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.StationsRouter(group.Group("/stations"), deps.Directory, deps.MVG, deps.Favourites)

	routes.FavouritesRouter(group.Group("/favourites"), deps.Favourites, deps.Dashboard)

	routes.TransportFilterRouter(group.Group("/transport_filter"), deps.Favourites)

	routes.DashboardRouter(group.Group("/dashboard"), deps.Dashboard)

	return webApp
}

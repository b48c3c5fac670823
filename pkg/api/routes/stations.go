package routes

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"

	"github.com/abfahrt/abfahrt/pkg/board"
	"github.com/abfahrt/abfahrt/pkg/favourites"
	"github.com/abfahrt/abfahrt/pkg/mvg"
	"github.com/abfahrt/abfahrt/pkg/stations"
)

func StationsRouter(router fiber.Router, directory *stations.Directory, client *mvg.Client, store *favourites.Store) {
	router.Get("/search", func(c *fiber.Ctx) error {
		return searchStations(c, directory)
	})
	router.Get("/:identifier/departures", func(c *fiber.Ctx) error {
		return getStationDepartures(c, client, store)
	})
}

func searchStations(c *fiber.Ctx, directory *stations.Directory) error {
	query := c.Query("query")
	mode := c.Query("mode", "prefix")

	if mode != "prefix" && mode != "fuzzy" {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Parameter mode must be prefix or fuzzy",
		})
	}

	index, err := directory.Index(c.Context())
	if err != nil {
		c.SendStatus(fiber.StatusBadGateway)
		return c.JSON(fiber.Map{
			"error": "Could not load the station directory",
		})
	}

	var matches []stations.Match
	if mode == "fuzzy" {
		matches = index.SearchFuzzy(query)
	} else {
		matches = index.SearchPrefix(query)
	}

	matchesReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, matches)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Could not reduce station matches",
		})
	}

	return c.JSON(matchesReduced)
}

func getStationDepartures(c *fiber.Ctx, client *mvg.Client, store *favourites.Store) error {
	stationID := c.Params("identifier")

	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(mvg.DefaultDepartureLimit)))
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Parameter limit should be an integer",
		})
	}

	display := board.ParseTimeDisplay(c.Query("display"))

	departures, err := client.GetDepartures(c.Context(), stationID, limit)
	if err != nil {
		c.SendStatus(fiber.StatusBadGateway)
		return c.JSON(fiber.Map{
			"error": "Could not fetch departures for station " + stationID,
		})
	}

	departures = board.FilterDepartures(departures, store.TransportFilter(c.Context()))

	return c.JSON(fiber.Map{
		"stationId": stationID,
		"display":   display,
		"rows":      board.RenderRows(board.BuildRows(departures), display, time.Now()),
	})
}

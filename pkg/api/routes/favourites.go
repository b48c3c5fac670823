package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/abfahrt/abfahrt/pkg/dashboard"
	"github.com/abfahrt/abfahrt/pkg/favourites"
)

func FavouritesRouter(router fiber.Router, store *favourites.Store, controller *dashboard.Controller) {
	router.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(store.List(c.Context()))
	})

	router.Post("/", func(c *fiber.Ctx) error {
		return addFavourite(c, store, controller)
	})

	router.Delete("/:identifier", func(c *fiber.Ctx) error {
		return removeFavourite(c, store, controller)
	})
}

func addFavourite(c *fiber.Ctx, store *favourites.Store, controller *dashboard.Controller) error {
	var favourite favourites.FavouriteStation
	if err := c.BodyParser(&favourite); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Body must be a favourite station",
		})
	}

	if favourite.StationID == "" || favourite.Name == "" {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Fields stationId and name are required",
		})
	}

	stationList, err := store.Add(c.Context(), favourite)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Could not persist favourite stations",
		})
	}

	controller.AddStation(c.Context(), favourite)

	c.SendStatus(fiber.StatusCreated)
	return c.JSON(stationList)
}

func removeFavourite(c *fiber.Ctx, store *favourites.Store, controller *dashboard.Controller) error {
	stationID := c.Params("identifier")

	stationList, err := store.Remove(c.Context(), stationID)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Could not persist favourite stations",
		})
	}

	controller.RemoveStation(stationID)

	return c.JSON(stationList)
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/abfahrt/abfahrt/pkg/favourites"
)

type transportFilterBody struct {
	Tags []string `json:"tags"`
}

func TransportFilterRouter(router fiber.Router, store *favourites.Store) {
	router.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"tags": store.TransportFilter(c.Context()),
		})
	})

	router.Put("/", func(c *fiber.Ctx) error {
		var body transportFilterBody
		if err := c.BodyParser(&body); err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Body must contain a tags list",
			})
		}

		tags, err := store.SetTransportFilter(c.Context(), body.Tags)
		if err != nil {
			c.SendStatus(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{
				"error": "Could not persist transport filter",
			})
		}

		return c.JSON(fiber.Map{
			"tags": tags,
		})
	})
}

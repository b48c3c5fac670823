package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"

	"github.com/abfahrt/abfahrt/pkg/board"
	"github.com/abfahrt/abfahrt/pkg/dashboard"
)

type dashboardSection struct {
	StationID string                 `json:"stationId" groups:"basic"`
	Name      string                 `json:"name" groups:"basic"`
	State     dashboard.SectionState `json:"state" groups:"basic"`
	Error     string                 `json:"error,omitempty" groups:"basic"`
	Rows      []board.RenderedRow    `json:"rows" groups:"basic"`
}

type dashboardResponse struct {
	Display  board.TimeDisplay  `json:"display" groups:"basic"`
	Sections []dashboardSection `json:"sections" groups:"basic"`
}

func DashboardRouter(router fiber.Router, controller *dashboard.Controller) {
	router.Get("/", func(c *fiber.Ctx) error {
		return getDashboard(c, controller)
	})

	router.Post("/refresh", func(c *fiber.Ctx) error {
		controller.RefreshAll(c.Context())

		return getDashboard(c, controller)
	})
}

func getDashboard(c *fiber.Ctx, controller *dashboard.Controller) error {
	display := board.ParseTimeDisplay(c.Query("display"))
	now := time.Now()

	response := dashboardResponse{
		Display:  display,
		Sections: []dashboardSection{},
	}

	for _, view := range controller.Snapshot() {
		response.Sections = append(response.Sections, dashboardSection{
			StationID: view.StationID,
			Name:      view.Name,
			State:     view.State,
			Error:     view.Error,
			Rows:      board.RenderRows(view.Rows, display, now),
		})
	}

	responseReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, response)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Could not reduce dashboard",
		})
	}

	return c.JSON(responseReduced)
}

// handlers/raid_routes.go
package handlers

import (
	"time"

	"quest-raid-system/middleware"
	"quest-raid-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupRaidRoutes(app *fiber.App, raidService *services.RaidService, playerService *services.PlayerService) {
	securedGroup := app.Group("/", middleware.WalletContextMiddleware())

	securedGroup.Get("/raids", func(c *fiber.Ctx) error {
		raids, err := raidService.ListRaids(c.Query("state"))
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(raids)
	})

	securedGroup.Get("/raids/:id", func(c *fiber.Ctx) error {
		raid, err := raidService.GetRaid(c.Params("id"))
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(raid)
	})

	securedGroup.Get("/raids/:id/leaderboard", func(c *fiber.Ctx) error {
		entries, err := raidService.ContributionLeaderboard(c.Params("id"))
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(entries)
	})

	securedGroup.Post("/raids/:id/join", func(c *fiber.Ctx) error {
		wallet := walletFromCtx(c)
		if _, err := playerService.EnsurePlayer(wallet); err != nil {
			return errorResponse(c, err)
		}

		type Req struct {
			NFTTokenRef string `json:"nft_token_ref"`
		}
		var req Req
		_ = c.BodyParser(&req) // body is optional

		participant, err := raidService.Join(c.Params("id"), wallet, req.NFTTokenRef)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(participant)
	})

	// Admin surface
	adminGroup := app.Group("/s/admin", middleware.WalletContextMiddleware(), middleware.RequireAdmin())

	adminGroup.Post("/raids", func(c *fiber.Ctx) error {
		type Req struct {
			Name              string                    `json:"name"`
			Description       string                    `json:"description"`
			MaxHealth         int64                     `json:"max_health"`
			Defense           int64                     `json:"defense"`
			CompletionBonusXP int64                     `json:"completion_bonus_xp"`
			Deadline          string                    `json:"deadline"`
			Quests            []services.RaidQuestInput `json:"quests"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}

		var deadline *time.Time
		if req.Deadline != "" {
			t, err := time.Parse(time.RFC3339, req.Deadline)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid deadline (use RFC3339)"})
			}
			deadline = &t
		}

		raid, err := raidService.CreateRaid(req.Name, req.Description, req.MaxHealth, req.Defense, req.CompletionBonusXP, deadline, req.Quests)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(raid)
	})

	adminGroup.Post("/raids/:id/activate", func(c *fiber.Ctx) error {
		raid, err := raidService.ActivateRaid(c.Params("id"))
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(raid)
	})

	adminGroup.Post("/raids/:id/fail", func(c *fiber.Ctx) error {
		type Req struct {
			Reason string `json:"reason"`
		}
		var req Req
		_ = c.BodyParser(&req)

		if err := raidService.FailRaid(c.Params("id"), req.Reason); err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(fiber.Map{"message": "raid failed"})
	})
}

// handlers/player_routes.go
package handlers

import (
	"quest-raid-system/middleware"
	"quest-raid-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupPlayerRoutes(app *fiber.App, playerService *services.PlayerService, guildService *services.GuildService) {
	securedGroup := app.Group("/", middleware.WalletContextMiddleware())

	// Profile: player record plus the level curve position computed on read,
	// so every surface agrees on the same numbers.
	securedGroup.Get("/user/profile", func(c *fiber.Ctx) error {
		wallet := walletFromCtx(c)
		player, err := playerService.EnsurePlayer(wallet)
		if err != nil {
			return errorResponse(c, err)
		}

		member, err := guildService.MemberWallet(wallet)
		if err != nil {
			return errorResponse(c, err)
		}

		response := fiber.Map{
			"player": player,
			"level":  services.CalculateLevel(player.Experience),
		}
		if player.Archetype != "" {
			response["archetype_name"] = services.ArchetypeDisplayName(player.Archetype)
		}
		if member != nil {
			response["guild_id"] = member.GuildID
			response["is_guild_leader"] = member.IsLeader
		}
		return c.JSON(response)
	})

	securedGroup.Patch("/user/profile", func(c *fiber.Ctx) error {
		type Req struct {
			DisplayName string `json:"display_name"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}
		player, err := playerService.UpdateDisplayName(walletFromCtx(c), req.DisplayName)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(player)
	})

	securedGroup.Get("/leaderboard", func(c *fiber.Ctx) error {
		entries, err := playerService.Leaderboard(c.QueryInt("limit", 25))
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(entries)
	})

	// Admin surface
	adminGroup := app.Group("/s/admin", middleware.WalletContextMiddleware(), middleware.RequireAdmin())

	adminGroup.Post("/xp/grant", func(c *fiber.Ctx) error {
		type Req struct {
			Wallet string `json:"wallet"`
			XP     int64  `json:"xp"`
			Reason string `json:"reason"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}
		if req.Wallet == "" || req.XP == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "wallet and a non-zero xp delta are required"})
		}

		player, err := playerService.GrantXP(req.Wallet, req.XP, req.Reason)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(fiber.Map{
			"message": "XP adjusted",
			"wallet":  player.WalletAddress,
			"xp":      player.Experience,
			"level":   services.CalculateLevel(player.Experience),
		})
	})
}

// handlers/guild_routes.go
package handlers

import (
	"math/rand"
	"path/filepath"
	"time"

	"quest-raid-system/middleware"
	"quest-raid-system/services"
	"quest-raid-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func SetupGuildRoutes(app *fiber.App, guildService *services.GuildService, playerService *services.PlayerService) {
	securedGroup := app.Group("/", middleware.WalletContextMiddleware())

	securedGroup.Get("/guilds", func(c *fiber.Ctx) error {
		guilds, err := guildService.ListGuilds()
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(guilds)
	})

	securedGroup.Get("/guilds/:id", func(c *fiber.Ctx) error {
		guild, err := guildService.GetGuild(c.Params("id"))
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(guild)
	})

	securedGroup.Post("/guilds/:id/join", func(c *fiber.Ctx) error {
		wallet := walletFromCtx(c)
		if _, err := playerService.EnsurePlayer(wallet); err != nil {
			return errorResponse(c, err)
		}
		member, err := guildService.Join(c.Params("id"), wallet)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(member)
	})

	securedGroup.Post("/guilds/leave", func(c *fiber.Ctx) error {
		if err := guildService.Leave(walletFromCtx(c)); err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(fiber.Map{"message": "left guild"})
	})

	// Leader-gated guild edits.
	securedGroup.Patch("/guilds/:id", func(c *fiber.Ctx) error {
		wallet := walletFromCtx(c)
		isLeader, err := guildService.IsLeader(c.Params("id"), wallet)
		if err != nil {
			return errorResponse(c, err)
		}
		if !isLeader {
			return errorResponse(c, services.ErrNotGuildLeader)
		}

		type Req struct {
			Description string `json:"description"`
			ImageURL    string `json:"image_url"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}
		guild, err := guildService.UpdateGuild(c.Params("id"), req.Description, req.ImageURL)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(guild)
	})

	// Archetype quiz. The random sample and the final draw both live here on
	// the server; UI layers only call these two endpoints.
	securedGroup.Get("/quiz", func(c *fiber.Ctx) error {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		return c.JSON(services.SampleQuizQuestions(rng))
	})

	securedGroup.Post("/quiz", func(c *fiber.Ctx) error {
		wallet := walletFromCtx(c)
		if _, err := playerService.EnsurePlayer(wallet); err != nil {
			return errorResponse(c, err)
		}

		type Req struct {
			Answers map[string]string `json:"answers"` // question id → choice id
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}

		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		archetype, err := guildService.SubmitQuiz(wallet, req.Answers, rng)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(fiber.Map{
			"archetype":      archetype,
			"archetype_name": services.ArchetypeDisplayName(archetype),
		})
	})

	// Admin surface
	adminGroup := app.Group("/s/admin", middleware.WalletContextMiddleware(), middleware.RequireAdmin())

	adminGroup.Post("/guilds", func(c *fiber.Ctx) error {
		name := c.FormValue("name")
		description := c.FormValue("description")
		archetype := c.FormValue("archetype")
		isCore := c.FormValue("is_core") == "true"

		var imageURL string
		if image, err := c.FormFile("image"); err == nil && image.Size > 0 {
			ext := filepath.Ext(image.Filename)
			if ext == "" {
				ext = ".png"
			}
			key := "guilds/" + uuid.NewString() + ext
			url, err := utils.UploadFileToR2(image, key)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to upload guild image"})
			}
			imageURL = url
		}

		guild, err := guildService.CreateGuild(name, description, imageURL, archetype, isCore)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(guild)
	})

	adminGroup.Delete("/guilds/:id", func(c *fiber.Ctx) error {
		if err := guildService.SoftDelete(c.Params("id")); err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(fiber.Map{"message": "guild deleted"})
	})

	adminGroup.Post("/guilds/:id/leaders", func(c *fiber.Ctx) error {
		type Req struct {
			Wallet   string `json:"wallet"`
			IsLeader bool   `json:"is_leader"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}
		if err := guildService.SetLeader(c.Params("id"), req.Wallet, req.IsLeader); err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(fiber.Map{"message": "leader updated"})
	})
}

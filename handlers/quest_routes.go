// handlers/quest_routes.go
package handlers

import (
	"path/filepath"
	"time"

	"quest-raid-system/middleware"
	"quest-raid-system/services"
	"quest-raid-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func SetupQuestRoutes(app *fiber.App, questService *services.QuestService, submissionService *services.SubmissionService, moderationService *services.ModerationService, playerService *services.PlayerService) {
	securedGroup := app.Group("/", middleware.WalletContextMiddleware())

	// Available quests for the calling wallet, optionally narrowed by cadence.
	securedGroup.Get("/quests", func(c *fiber.Ctx) error {
		wallet := walletFromCtx(c)
		if _, err := playerService.EnsurePlayer(wallet); err != nil {
			return errorResponse(c, err)
		}
		quests, err := questService.GetAvailableQuests(wallet, c.Query("type"))
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(quests)
	})

	securedGroup.Get("/quests/:id", func(c *fiber.Ctx) error {
		quest, err := questService.GetQuest(c.Params("id"))
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(quest)
	})

	// Submit proof-of-completion. Multipart: proof_url form value plus an
	// optional screenshot file that goes to R2 before the record is created.
	securedGroup.Post("/quests/:id/submissions", func(c *fiber.Ctx) error {
		wallet := walletFromCtx(c)
		if _, err := playerService.EnsurePlayer(wallet); err != nil {
			return errorResponse(c, err)
		}

		proofURL := c.FormValue("proof_url")
		var screenshotURL string
		if screenshot, err := c.FormFile("screenshot"); err == nil && screenshot.Size > 0 {
			ext := filepath.Ext(screenshot.Filename)
			if ext == "" {
				ext = ".png"
			}
			key := "submissions/" + uuid.NewString() + ext
			url, err := utils.UploadFileToR2(screenshot, key)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to upload screenshot"})
			}
			screenshotURL = url
		}

		sub, err := submissionService.Submit(c.Params("id"), wallet, proofURL, screenshotURL)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(sub)
	})

	securedGroup.Get("/user/submissions", func(c *fiber.Ctx) error {
		subs, err := submissionService.ListByWallet(walletFromCtx(c), c.QueryInt("limit", 25))
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(subs)
	})

	// Admin / moderator surface
	adminGroup := app.Group("/s/admin", middleware.WalletContextMiddleware(), middleware.RequireAdmin())

	adminGroup.Get("/submissions/pending", func(c *fiber.Ctx) error {
		subs, err := submissionService.ListPending(c.QueryInt("limit", 50))
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(subs)
	})

	adminGroup.Post("/submissions/:id/resolve", func(c *fiber.Ctx) error {
		type Req struct {
			Decision string `json:"decision"`
			Comment  string `json:"comment"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}

		sub, err := moderationService.Resolve(c.Params("id"), req.Decision, walletFromCtx(c), req.Comment)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(sub)
	})

	adminGroup.Post("/quests", func(c *fiber.Ctx) error {
		type Req struct {
			Title         string `json:"title"`
			Description   string `json:"description"`
			Type          string `json:"type"`
			XPReward      int64  `json:"xp_reward"`
			AvailableFrom string `json:"available_from"`
			ExpiresAt     string `json:"expires_at"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}

		availableFrom := time.Now()
		if req.AvailableFrom != "" {
			t, err := time.Parse(time.RFC3339, req.AvailableFrom)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid available_from (use RFC3339)"})
			}
			availableFrom = t
		}
		expiresAt, err := time.Parse(time.RFC3339, req.ExpiresAt)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid expires_at (use RFC3339)"})
		}

		quest, err := questService.CreateQuest(req.Title, req.Description, req.Type, req.XPReward, availableFrom, expiresAt)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(quest)
	})

	adminGroup.Get("/quest-templates", func(c *fiber.Ctx) error {
		templates, err := questService.ListTemplates(c.Query("type"))
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(templates)
	})

	adminGroup.Post("/quest-templates", func(c *fiber.Ctx) error {
		type Req struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Type        string `json:"type"`
			XPReward    int64  `json:"xp_reward"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}
		tpl, err := questService.CreateTemplate(req.Title, req.Description, req.Type, req.XPReward)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(tpl)
	})

	adminGroup.Patch("/quest-templates/:id", func(c *fiber.Ctx) error {
		type Req struct {
			Active bool `json:"active"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}
		if err := questService.SetTemplateActive(c.Params("id"), req.Active); err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(fiber.Map{"message": "template updated"})
	})
}

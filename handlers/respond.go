package handlers

import (
	"errors"
	"log"

	"quest-raid-system/services"

	"github.com/gofiber/fiber/v2"
)

// errorResponse maps engine errors onto HTTP statuses. Precondition failures
// are expected and come back as 404/409 with the specific reason; anything
// unrecognized is a store/transaction failure and is logged loudly.
func errorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrQuestNotFound),
		errors.Is(err, services.ErrSubmissionNotFound),
		errors.Is(err, services.ErrRaidNotFound),
		errors.Is(err, services.ErrGuildNotFound),
		errors.Is(err, services.ErrPlayerNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})

	case errors.Is(err, services.ErrQuestExpired),
		errors.Is(err, services.ErrQuestAlreadyComplete),
		errors.Is(err, services.ErrSubmissionPending),
		errors.Is(err, services.ErrSubmissionResolved),
		errors.Is(err, services.ErrCooldownActive),
		errors.Is(err, services.ErrArchetypeAssigned),
		errors.Is(err, services.ErrRaidNotActive),
		errors.Is(err, services.ErrRaidNotPreparing),
		errors.Is(err, services.ErrNotParticipant),
		errors.Is(err, services.ErrAlreadyInGuild),
		errors.Is(err, services.ErrNotGuildMember),
		errors.Is(err, services.ErrNotGuildLeader):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})

	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrInvalidQuizAnswers):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	log.Printf("💥 [HTTP] internal error on %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "operation did not complete",
	})
}

func walletFromCtx(c *fiber.Ctx) string {
	wallet, _ := c.Locals("wallet").(string)
	return wallet
}

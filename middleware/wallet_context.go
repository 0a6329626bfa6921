// middleware/wallet_context.go
package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// WalletContextMiddleware extracts the verified wallet identity set by the
// Gateway. The Gateway has already checked the wallet's signature over its
// challenge message; this service trusts the forwarded headers for all
// wallet-scoped operations.
func WalletContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		wallet := c.Get("X-Wallet-Address")
		rolesStr := c.Get("X-User-Roles")

		// Every route behind this middleware is wallet-scoped, player and
		// admin alike.
		if wallet == "" {
			log.Printf("❌ [WALLET_CTX] X-Wallet-Address missing on secured route: %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing X-Wallet-Address — request must come through gateway with a verified wallet",
			})
		}

		var roles []string
		if rolesStr != "" {
			for _, r := range strings.Split(rolesStr, ",") {
				r = strings.TrimSpace(r)
				if r != "" {
					roles = append(roles, r)
				}
			}
		}

		c.Locals("wallet", wallet)
		c.Locals("user_roles", roles)

		return c.Next()
	}
}

// RequireAdmin gates moderator/admin surfaces on the Gateway-resolved roles.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		roles, _ := c.Locals("user_roles").([]string)
		for _, r := range roles {
			if r == "admin" || r == "moderator" {
				return c.Next()
			}
		}
		log.Printf("🚫 [WALLET_CTX] admin role required for %s (wallet=%v)", c.Path(), c.Locals("wallet"))
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "admin role required",
		})
	}
}

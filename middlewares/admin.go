package middlewares

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"os"

	"github.com/gofiber/fiber/v2"
)

// AdminAuth verifies the HMAC-SHA256 signature an operator frontend attaches
// to mutating requests. The signature covers ADMIN_CODE and is keyed with
// ADMIN_SECRET.
func AdminAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		signature := c.Get("X-Admin-Signature")
		if signature == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "MISSING_SIGNATURE",
			})
		}

		code := os.Getenv("ADMIN_CODE")
		secret := os.Getenv("ADMIN_SECRET")

		h := hmac.New(sha256.New, []byte(secret))
		h.Write([]byte(code + secret))
		expected := hex.EncodeToString(h.Sum(nil))

		if !hmac.Equal([]byte(signature), []byte(expected)) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "INVALID_SIGNATURE",
			})
		}

		return c.Next()
	}
}

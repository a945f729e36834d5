package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ricardomonteiro/vitrine-backend/internal/config"
	"github.com/ricardomonteiro/vitrine-backend/internal/dto"
	"github.com/ricardomonteiro/vitrine-backend/internal/identity"

	jwtware "github.com/gofiber/contrib/jwt"
)

func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: invalid or expired token",
			})
		},
	})
}

// RequireRoles admits the request when the token's role claims intersect the
// permitted set; otherwise 403. Must run after JWTProtected.
func RequireRoles(permitted ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(permitted))
	for _, role := range permitted {
		allowed[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		for _, role := range identity.GetRoles(c) {
			if _, ok := allowed[role]; ok {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "Forbidden: insufficient role",
		})
	}
}

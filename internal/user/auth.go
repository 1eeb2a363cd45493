package user

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// GetUserIDFromCtx extracts the user_id claim from the JWT token stored in
// `c.Locals("user")` by the jwt middleware. Shared by every protected
// handler.
func GetUserIDFromCtx(c *fiber.Ctx) (string, error) {
	claims, err := claimsFromCtx(c)
	if err != nil {
		return "", err
	}
	if id, ok := claims["user_id"].(string); ok && id != "" {
		return id, nil
	}
	return "", fiber.ErrUnauthorized
}

// RequireAdmin rejects requests whose token does not carry the admin role.
// Admin mutations are authorized here, server-side, not by client gating.
func RequireAdmin(c *fiber.Ctx) error {
	claims, err := claimsFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	if role, ok := claims["role"].(string); !ok || role != RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin access required"})
	}
	return c.Next()
}

func claimsFromCtx(c *fiber.Ctx) (jwt.MapClaims, error) {
	u := c.Locals("user")
	if u == nil {
		return nil, fiber.ErrUnauthorized
	}
	tok, ok := u.(*jwt.Token)
	if !ok {
		return nil, fiber.ErrUnauthorized
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fiber.ErrUnauthorized
	}
	return claims, nil
}

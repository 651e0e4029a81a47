package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"taxledger/config"
)

func extractToken(c *fiber.Ctx) (string, error) {
	auth := c.Get("Authorization")
	if auth == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "No token provided")
	}

	parts := strings.Split(auth, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Invalid token format")
	}

	return parts[1], nil
}

func authenticate(c *fiber.Ctx) (jwt.MapClaims, error) {
	token, err := extractToken(c)
	if err != nil {
		return nil, err
	}

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(config.AppConfig.JWTSecret), nil
	})
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
	}

	return claims, nil
}

// RequireAdmin guards the TIN reveal route. Decrypted TINs never leave the
// process through an unauthorized request.
func RequireAdmin(c *fiber.Ctx) error {
	claims, err := authenticate(c)
	if err != nil {
		return err
	}

	role, _ := claims["role"].(string)
	if role != "admin" && role != "root" {
		return c.Status(403).JSON(fiber.Map{
			"error": "Admin access required",
		})
	}

	c.Locals("user_id", claims["user_id"])
	c.Locals("role", role)

	return c.Next()
}

package middleware

import (
	"time"

	config "github.com/anjiri1684/edu_cooperative/configs"
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

func Protected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(config.Config("JWT_SECRET")),
		ErrorHandler: jwtError,
		TokenLookup:  "header:Authorization,query:token",
		AuthScheme:   "Bearer",
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"status": "error", "message": "Missing or malformed JWT", "data": nil})
	}
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"status": "error", "message": "Invalid or expired JWT", "data": nil})
}

// IssueToken signs an HS256 token carrying the user id and role.
func IssueToken(userID uuid.UUID, role string) (string, error) {
	ttl := config.Duration("JWT_TTL")
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"role":    role,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Config("JWT_SECRET")))
}

func claims(c *fiber.Ctx) jwt.MapClaims {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return nil
	}
	mc, _ := token.Claims.(jwt.MapClaims)
	return mc
}

func CurrentRole(c *fiber.Ctx) string {
	role, _ := claims(c)["role"].(string)
	return role
}

func CurrentUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	raw, _ := claims(c)["user_id"].(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

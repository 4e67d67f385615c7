// Package middleware provides authentication, logging, rate limiting, and
// metrics middleware for the application.
package middleware

import (
	"context"
	"strconv"
	"strings"

	"listforge/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

var (
	cfg       *config.Config
	authRedis *redis.Client
)

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// UseRevocationStore wires the Redis client used to check revoked token
// JTIs. Without it logout is best-effort and tokens stay valid until
// expiry.
func UseRevocationStore(rdb *redis.Client) {
	authRedis = rdb
}

// RevocationKey is the Redis key holding a revoked token's JTI.
func RevocationKey(jti string) string {
	return "blacklist:" + jti
}

// userIDFromToken validates the token string and extracts the user ID from
// the "sub" claim (subject claim per RFC 7519) together with the token's JTI.
func userIDFromToken(tokenString string) (uint, string, bool) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, "", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", false
	}

	subClaim, ok := claims["sub"]
	if !ok {
		return 0, "", false
	}
	subStr, ok := subClaim.(string)
	if !ok {
		return 0, "", false
	}

	userIDVal, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil {
		return 0, "", false
	}

	jti, _ := claims["jti"].(string)
	return uint(userIDVal), jti, true
}

// tokenRevoked reports whether the JTI has been blacklisted by a logout.
func tokenRevoked(c *fiber.Ctx, jti string) bool {
	if authRedis == nil || jti == "" {
		return false
	}
	revoked, err := authRedis.Exists(c.Context(), RevocationKey(jti)).Result()
	return err == nil && revoked > 0
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// AuthRequired is a middleware that enforces authentication for protected routes.
func AuthRequired(c *fiber.Ctx) error {
	token, ok := bearerToken(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authorization header required",
		})
	}

	userID, jti, ok := userIDFromToken(token)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or expired token",
		})
	}
	if tokenRevoked(c, jti) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Token has been revoked",
		})
	}

	c.Locals("userID", userID)
	// Sync to UserContext so deep service layers log with the user ID
	c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, userID))
	return c.Next()
}

// AuthOptional resolves the user ID from a bearer token when one is
// present but never rejects the request. Routes that serve both
// authenticated and anonymous audiences (home, list detail) use this.
func AuthOptional(c *fiber.Ctx) error {
	if token, ok := bearerToken(c); ok {
		if userID, jti, valid := userIDFromToken(token); valid && !tokenRevoked(c, jti) {
			c.Locals("userID", userID)
			c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, userID))
		}
	}
	return c.Next()
}

package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/nightowl-app/nightowl-backend-go/pkg/response"
)

const premiumTokenTTL = 365 * 24 * time.Hour

// PremiumClaims is the payload carried by entitlement tokens.
type PremiumClaims struct {
	Premium bool `json:"premium"`
	jwt.RegisteredClaims
}

// IssuePremiumToken mints a signed entitlement token valid for one year.
func IssuePremiumToken(secret string, now time.Time) (string, error) {
	claims := PremiumClaims{
		Premium: true,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "nightowl",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(premiumTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign premium token: %w", err)
	}
	return signed, nil
}

// Entitlement gates premium routes behind a valid bearer token with the
// premium claim set.
func Entitlement(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || tokenString == "" {
			response.Unauthorized(c, "premium feature, activation required")
			c.Abort()
			return
		}

		var claims PremiumClaims
		token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid || !claims.Premium {
			response.Unauthorized(c, "invalid or expired premium token")
			c.Abort()
			return
		}

		c.Next()
	}
}

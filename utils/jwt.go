package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var JWTSecret []byte

func init() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		// Development fallback only; set JWT_SECRET in production.
		secret = "MealshopDevSecret"
	}
	JWTSecret = []byte(secret)
}

// CustomClaims carries the user id and the names of the permission flags
// granted to it. Each admin handler checks its own flag against this list.
type CustomClaims struct {
	UserID uint     `json:"user_id"`
	Perms  []string `json:"perms"`
	jwt.RegisteredClaims
}

func GenerateToken(userID uint, perms []string) (string, error) {
	claims := &CustomClaims{
		UserID: userID,
		Perms:  perms,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "mealshop",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret)
}

func ParseToken(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return JWTSecret, nil
	})

	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

// HasPerm reports whether the claims carry the named permission flag.
func (c *CustomClaims) HasPerm(name string) bool {
	for _, p := range c.Perms {
		if p == name {
			return true
		}
	}
	return false
}

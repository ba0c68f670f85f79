// utils/auth.go
package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// HashPasscode hashes the shared salon passcode for AUTH_PASSCODE_HASH.
func HashPasscode(passcode string) (string, error) {
	if passcode == "" {
		return "", errors.New("passcode is empty")
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(passcode), bcryptCost)
	return string(bytes), err
}

func CheckPasscodeHash(passcode, hash string) bool {
	if passcode == "" || hash == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(passcode))
	return err == nil
}

// GenerateToken issues a staff token valid for expiryHours.
func GenerateToken(staffName, secret string, expiryHours int, now time.Time) (string, error) {
	if secret == "" {
		return "", errors.New("JWT_SECRET not set")
	}
	if expiryHours <= 0 {
		expiryHours = 24
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": staffName,
		"exp": now.Add(time.Duration(expiryHours) * time.Hour).Unix(),
		"iat": now.Unix(),
	})
	return token.SignedString([]byte(secret))
}

// AuthMiddleware rejects requests without a valid bearer token and stores the
// staff name under "staffName". With an empty secret every request is
// rejected.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			RespondWithError(c, 401, "Authentication is not configured")
			return
		}
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			RespondWithError(c, 401, "Authorization header required")
			return
		}

		if len(tokenString) > 7 && strings.ToUpper(tokenString[0:6]) == "BEARER" {
			tokenString = tokenString[7:]
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			RespondWithError(c, 401, "Invalid token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			RespondWithError(c, 401, "Invalid token claims")
			return
		}
		staff, _ := claims["sub"].(string)
		c.Set("staffName", staff)

		c.Next()
	}
}

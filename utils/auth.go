package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/edusparsh/erp_backend/config"
	"github.com/edusparsh/erp_backend/models"

	"github.com/dgrijalva/jwt-go"
)

var jwtSecret = []byte(config.LoadConfig().JWTKey)

// HashPassword hashes a password with SHA-256.
func HashPassword(password string) string {
	hash := sha256.Sum256([]byte(password))
	return hex.EncodeToString(hash[:])
}

// VerifyPassword checks a password against its stored hash.
func VerifyPassword(password string, hashedPassword string) bool {
	return HashPassword(password) == hashedPassword
}

// GenerateToken issues a JWT for the user. The token carries only the user
// id; role, centres and permissions are re-fetched from the store on every
// request so stale tokens cannot widen access.
func GenerateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"id":  user.ID.Hex(),
		"exp": time.Now().Add(time.Hour * 24 * 30).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		Logger.Error().Err(err).Msg("failed to sign token")
		return "", err
	}

	return tokenString, nil
}

// ParseToken parses and validates a JWT, returning the subject user id.
func ParseToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	id, ok := claims["id"].(string)
	if !ok || id == "" {
		return "", fmt.Errorf("token missing user id")
	}

	return id, nil
}

// Authorize is the single permission check for the whole API. superAdmin
// bypasses everything; admins pass any capability short of superAdmin-only
// surfaces; everyone else needs either the coarse named permission or the
// exact granular module/section/action triple.
func Authorize(p models.Principal, cap models.Capability) bool {
	if p.Role == models.UserRoleSUPER_ADMIN {
		return true
	}
	if p.Role == models.UserRoleADMIN {
		return true
	}

	if cap.Name != "" {
		for _, perm := range p.Permissions {
			if perm == cap.Name {
				return true
			}
		}
	}

	if cap.Module != "" {
		if sections, ok := p.GranularPermissions[cap.Module]; ok {
			if actions, ok := sections[cap.Section]; ok {
				if actions[cap.Action] {
					return true
				}
			}
		}
	}

	return false
}

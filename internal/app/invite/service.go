package invite

import (
	"fmt"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

// Service issues and verifies signed invite tokens for private tables. A
// token binds one invited user to one match and expires on its own.
type Service struct {
	secret string
	issuer string
}

func NewService(secret, issuer string) *Service {
	return &Service{
		secret: secret,
		issuer: issuer,
	}
}

// GenerateToken signs an invite for the given user to join the given match.
func (s *Service) GenerateToken(matchID, userID string, ttl time.Duration) (string, error) {
	if s == nil {
		return "", fmt.Errorf("invite service is nil")
	}
	if matchID == "" || userID == "" {
		return "", fmt.Errorf("match and user are required")
	}
	if s.secret == "" || s.issuer == "" {
		return "", fmt.Errorf("invite config is incomplete")
	}
	if ttl == 0 {
		ttl = time.Hour
	}

	claims := jwt.MapClaims{
		"iss": s.issuer,
		"sub": userID,
		"exp": time.Now().Add(ttl).Unix(),
		"mid": matchID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

// VerifyToken validates the signature and expiry and returns the match and
// user the invite was issued for.
func (s *Service) VerifyToken(tokenString string) (matchID, userID string, err error) {
	if s == nil || s.secret == "" {
		return "", "", fmt.Errorf("invite config is incomplete")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return "", "", fmt.Errorf("invalid invite token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", fmt.Errorf("invalid invite claims")
	}
	if iss, _ := claims["iss"].(string); iss != s.issuer {
		return "", "", fmt.Errorf("invite issued by unknown party")
	}
	matchID, _ = claims["mid"].(string)
	userID, _ = claims["sub"].(string)
	if matchID == "" || userID == "" {
		return "", "", fmt.Errorf("invite claims are incomplete")
	}
	return matchID, userID, nil
}

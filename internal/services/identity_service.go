package services

import (
	"errors"
	"strings"

	"whispr-server/config"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the authenticated caller as reported by the identity provider.
// A nil *Session means "none": the request carries no usable identity.
type Session struct {
	ID    string
	Email string
	Name  string
}

type SessionClaims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// IdentityService verifies bearer tokens minted by the auth frontend and
// turns them into sessions. It never touches the directory.
type IdentityService struct {
	jwtSecret []byte
}

func NewIdentityService(cfg *config.Config) *IdentityService {
	return &IdentityService{jwtSecret: []byte(cfg.JWTSecret)}
}

var errUnexpectedSigning = errors.New("unexpected token signing method")

// ParseAccessToken validates token and extracts the session it carries.
func (s *IdentityService) ParseAccessToken(token string) (*Session, error) {
	if strings.TrimSpace(token) == "" {
		return nil, jwt.ErrTokenMalformed
	}

	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errUnexpectedSigning
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return &Session{
		ID:    claims.Subject,
		Email: claims.Email,
		Name:  claims.Name,
	}, nil
}

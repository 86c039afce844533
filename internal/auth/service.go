// Package auth provides the session service: password verification and
// the signed session cookie the browser carries on every API call.
package auth

import (
	"errors"
	"time"

	"houndtrack/internal/config"
	"houndtrack/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidToken indicates the session token is invalid.
	ErrInvalidToken = errors.New("invalid session token")
	// ErrTokenExpired indicates the session token has expired.
	ErrTokenExpired = errors.New("session expired")
	// ErrBadCredentials indicates an unknown email or wrong password.
	ErrBadCredentials = errors.New("invalid email or password")
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "houndtrack_session"

// Service mints and validates session tokens.
type Service struct {
	cfg *config.Config
}

// NewService creates a new session service.
func NewService(cfg *config.Config) *Service {
	return &Service{cfg: cfg}
}

// CheckPassword compares a candidate password against the stored
// bcrypt hash.
func (s *Service) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrBadCredentials
	}
	return nil
}

// HashPassword produces a bcrypt hash for storage.
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// GenerateToken mints a signed session token for the given account.
func (s *Service) GenerateToken(user models.SessionUser) (string, error) {
	claims := jwt.MapClaims{
		"person_id":   user.PersonID,
		"first_name":  user.FirstName,
		"last_name":   user.LastName,
		"system_role": user.SystemRole,
		"jti":         uuid.NewString(),
		"exp":         time.Now().Add(s.cfg.Auth.SessionDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Auth.SessionSecret))
}

// ValidateToken verifies a session token and returns the session user
// embedded in its claims.
func (s *Service) ValidateToken(tokenString string) (*models.SessionUser, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.cfg.Auth.SessionSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	user := &models.SessionUser{}
	if user.PersonID, ok = claims["person_id"].(string); !ok || user.PersonID == "" {
		return nil, ErrInvalidToken
	}
	user.FirstName, _ = claims["first_name"].(string)
	user.LastName, _ = claims["last_name"].(string)
	if user.SystemRole, ok = claims["system_role"].(string); !ok || user.SystemRole == "" {
		return nil, ErrInvalidToken
	}
	return user, nil
}

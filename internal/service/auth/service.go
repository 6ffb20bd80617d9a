package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/alibiomar/ashe-admin-api/internal/config"
)

// ErrInvalidCredentials is returned for any login failure; callers must not
// learn whether the email or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service describes the authentication operations used by the HTTP layer.
type Service interface {
	Login(email, password string) (*Token, error)
	Verify(tokenString string) error
}

// Token is an issued admin session token.
type Token struct {
	Value     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Authenticator validates the single admin account and signs session tokens.
type Authenticator struct {
	cfg    config.AuthConfig
	logger *zap.Logger
}

// NewAuthenticator wires a new authenticator instance.
func NewAuthenticator(cfg config.AuthConfig, logger *zap.Logger) *Authenticator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Authenticator{cfg: cfg, logger: logger}
}

// Login checks the admin credentials and issues a signed token.
func (a *Authenticator) Login(email, password string) (*Token, error) {
	if email != a.cfg.AdminEmail {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.cfg.AdminPasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(a.cfg.TokenTTL)
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(a.cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	a.logger.Info("admin logged in", zap.String("email", email))
	return &Token{Value: signed, ExpiresAt: expiresAt}, nil
}

// Verify parses and validates a session token.
func (a *Authenticator) Verify(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(a.cfg.JWTSecret), nil
	})
	if err != nil {
		return fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return errors.New("invalid token")
	}
	return nil
}

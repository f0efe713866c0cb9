package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apperrors "pomodoro/focus/internal/errors"
	"pomodoro/focus/internal/storage"
)

const (
	PassphraseHashKey = "auth.passphraseHash"
	OwnerSubject      = "owner"

	minPassphraseLength = 6
)

// AuthService guards the API with an optional owner passphrase. Until a
// passphrase is set up every request is allowed.
type AuthService struct {
	store     storage.Store
	jwtSecret []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewAuthService(store storage.Store, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		store:     store,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

type AuthResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type AuthStatus struct {
	Protected bool `json:"protected"`
}

func (s *AuthService) Status(ctx context.Context) (*AuthStatus, *apperrors.APIError) {
	protected, apiErr := s.Protected(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	return &AuthStatus{Protected: protected}, nil
}

// Protected reports whether an owner passphrase has been configured.
func (s *AuthService) Protected(ctx context.Context) (bool, *apperrors.APIError) {
	_, err := s.store.Load(ctx, PassphraseHashKey)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, apperrors.Internal("failed to read passphrase")
	}
	return true, nil
}

// Setup stores the owner passphrase once and returns a token for it.
func (s *AuthService) Setup(ctx context.Context, passphrase string) (*AuthResult, *apperrors.APIError) {
	if len(passphrase) < minPassphraseLength {
		return nil, apperrors.BadRequest("invalid_passphrase", "passphrase must be at least 6 characters")
	}

	protected, apiErr := s.Protected(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	if protected {
		return nil, apperrors.Conflict("passphrase_exists", "passphrase already configured", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("failed to secure passphrase")
	}
	if err := s.store.Save(ctx, PassphraseHashKey, string(hash)); err != nil {
		return nil, apperrors.Internal("failed to store passphrase")
	}

	return s.issueToken()
}

func (s *AuthService) Login(ctx context.Context, passphrase string) (*AuthResult, *apperrors.APIError) {
	if passphrase == "" {
		return nil, apperrors.BadRequest("invalid_credentials", "passphrase is required")
	}

	hash, err := s.store.Load(ctx, PassphraseHashKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperrors.BadRequest("passphrase_not_configured", "no passphrase configured")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to read passphrase")
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(passphrase)) != nil {
		return nil, apperrors.Unauthorized("invalid passphrase")
	}

	return s.issueToken()
}

func (s *AuthService) ParseToken(tokenString string) (string, *apperrors.APIError) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", apperrors.Unauthorized("invalid token")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return "", apperrors.Unauthorized("invalid token")
	}

	if claims.Subject != OwnerSubject {
		return "", apperrors.Unauthorized("invalid token subject")
	}

	return claims.Subject, nil
}

func (s *AuthService) issueToken() (*AuthResult, *apperrors.APIError) {
	now := s.now().UTC()
	expiresAt := now.Add(s.tokenTTL)
	claims := jwt.RegisteredClaims{
		Subject:   OwnerSubject,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, apperrors.Internal("failed to sign token")
	}
	return &AuthResult{
		Token:     signed,
		ExpiresAt: expiresAt,
	}, nil
}

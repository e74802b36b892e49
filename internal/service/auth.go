package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"storeapi/internal/hash"
	"storeapi/internal/logging"
	"storeapi/internal/models"
	"storeapi/internal/repo"
	"storeapi/internal/tokens"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrTokenRevoked       = errors.New("token revoked")
)

type AuthService struct {
	Repo          *repo.GormRepo
	JWTSecret     []byte
	RefreshSecret []byte
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("hash failed", "error", err)
		return nil, err
	}

	user := &models.User{Username: username, PasswordHash: pwHash}
	if err := s.Repo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrUserExists
		}
		l.Error("save failed", "error", err)
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and issues a fresh access token plus a
// refresh token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenPair, *models.User, error) {
	user, err := s.Repo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, nil, ErrInvalidCredentials
	}

	sub := strconv.Itoa(user.ID)
	access, err := tokens.SignAccessToken(sub, true, s.JWTSecret)
	if err != nil {
		return nil, nil, err
	}
	refresh, err := tokens.SignRefreshToken(sub, s.RefreshSecret)
	if err != nil {
		return nil, nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, user, nil
}

// Refresh exchanges a valid refresh token for a non-fresh access token and
// revokes the refresh token's jti, so each refresh token works exactly once.
func (s *AuthService) Refresh(ctx context.Context, rawRefresh string) (string, error) {
	claims, err := tokens.RefreshClaimsFromToken(rawRefresh, s.RefreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}

	revoked, err := s.Repo.TokenRevoked(ctx, claims.ID)
	if err != nil {
		return "", err
	}
	if revoked {
		return "", ErrTokenRevoked
	}

	access, err := tokens.SignAccessToken(claims.Subject, false, s.JWTSecret)
	if err != nil {
		return "", err
	}
	if err := s.Repo.RevokeToken(ctx, claims.ID); err != nil {
		return "", err
	}
	return access, nil
}

// Logout revokes the presented access token by jti.
func (s *AuthService) Logout(ctx context.Context, jti string) error {
	return s.Repo.RevokeToken(ctx, jti)
}

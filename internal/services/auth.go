package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/fairwaylabs/coursedesk-backend/internal/logger"
	pkgerrors "github.com/fairwaylabs/coursedesk-backend/internal/pkg/errors"
)

// AuthService verifies the configured operator credential pair and issues
// short-lived session tokens the console replays as a Bearer header. A
// bcrypt hash may be configured instead of the plaintext password;
// plaintext comparison is constant-time either way.
type AuthService interface {
	Connect(ctx context.Context, username, password string) (string, time.Time, error)
	VerifyToken(tokenString string) (string, error)
	AccessTTL() time.Duration
}

type authService struct {
	log            *logger.Logger
	username       string
	password       string
	passwordBcrypt string
	jwtSecretKey   string
	accessTTL      time.Duration
}

func NewAuthService(
	baseLog *logger.Logger,
	username string,
	password string,
	passwordBcrypt string,
	jwtSecretKey string,
	accessTTL time.Duration,
) (AuthService, error) {
	if username == "" {
		return nil, fmt.Errorf("missing ADMIN_USERNAME")
	}
	if password == "" && passwordBcrypt == "" {
		return nil, fmt.Errorf("missing ADMIN_PASSWORD (or ADMIN_PASSWORD_BCRYPT)")
	}
	if jwtSecretKey == "" {
		return nil, fmt.Errorf("missing JWT_SECRET_KEY")
	}
	if accessTTL <= 0 {
		accessTTL = 8 * time.Hour
	}
	return &authService{
		log:            baseLog.With("service", "AuthService"),
		username:       username,
		password:       password,
		passwordBcrypt: passwordBcrypt,
		jwtSecretKey:   jwtSecretKey,
		accessTTL:      accessTTL,
	}, nil
}

func (as *authService) Connect(ctx context.Context, username, password string) (string, time.Time, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(as.username)) == 1

	var passOK bool
	if as.passwordBcrypt != "" {
		passOK = bcrypt.CompareHashAndPassword([]byte(as.passwordBcrypt), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(as.password)) == 1
	}

	if !userOK || !passOK {
		as.log.Warn("Rejected connect attempt", "username", username)
		return "", time.Time{}, fmt.Errorf("%w: invalid credentials", pkgerrors.ErrUnauthorized)
	}

	now := time.Now().UTC()
	expiresAt := now.Add(as.accessTTL)
	claims := jwt.RegisteredClaims{
		Subject:   as.username,
		Issuer:    "coursedesk",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}

	as.log.Info("Operator connected", "username", as.username)
	return token, expiresAt, nil
}

func (as *authService) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", pkgerrors.ErrUnauthorized, err)
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", fmt.Errorf("%w: invalid session token", pkgerrors.ErrUnauthorized)
	}
	return claims.Subject, nil
}

func (as *authService) AccessTTL() time.Duration {
	return as.accessTTL
}

package httpapi

import (
	"errors"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"kioskanalyzer/internal/domain"
)

// AuthManager issues access tokens for the single kiosk operator account.
type AuthManager struct {
	secret   []byte
	tokenTTL time.Duration
	username string
	password string
	now      func() time.Time
}

func NewAuthManager(secret string, tokenTTL time.Duration, username string, password string) *AuthManager {
	if secret == "" {
		secret = "dev-change-me"
	}
	if tokenTTL <= 0 {
		tokenTTL = 8 * time.Hour
	}

	// An operator password supplied as a bcrypt hash is used as is.
	if password != "" && !isPasswordHash(password) {
		if hashed, err := hashPassword(password); err == nil {
			password = hashed
		} else {
			password = ""
		}
	}

	return &AuthManager{
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		username: strings.TrimSpace(username),
		password: password,
		now:      time.Now,
	}
}

func (a *AuthManager) Login(req domain.LoginRequest) (domain.LoginResponse, error) {
	username := strings.TrimSpace(req.Username)
	if a.username == "" || username != a.username || !verifyPassword(a.password, req.Password) {
		return domain.LoginResponse{}, errors.New("invalid credentials")
	}

	expiresAt := a.now().UTC().Add(a.tokenTTL)
	token, err := a.sign(username, expiresAt)
	if err != nil {
		return domain.LoginResponse{}, err
	}

	return domain.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt.Format(time.RFC3339),
	}, nil
}

func (a *AuthManager) ParseToken(tokenStr string) (domain.Actor, error) {
	claims := &jwtlib.RegisteredClaims{}
	token, err := jwtlib.ParseWithClaims(tokenStr, claims, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	}, jwtlib.WithValidMethods([]string{"HS256"}), jwtlib.WithIssuer(tokenIssuer), jwtlib.WithTimeFunc(a.now))
	if err != nil || !token.Valid {
		return domain.Actor{}, errors.New("invalid or expired token")
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return domain.Actor{}, errors.New("invalid token subject")
	}
	return domain.Actor{Username: sub}, nil
}

const tokenIssuer = "kioskanalyzer"

func (a *AuthManager) sign(username string, expiresAt time.Time) (string, error) {
	claims := jwtlib.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwtlib.NewNumericDate(a.now().UTC()),
		ExpiresAt: jwtlib.NewNumericDate(expiresAt),
		Issuer:    tokenIssuer,
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

func verifyPassword(stored string, input string) bool {
	if stored == "" || strings.TrimSpace(input) == "" || !isPasswordHash(stored) {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(input)) == nil
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func isPasswordHash(value string) bool {
	return strings.HasPrefix(value, "$2a$") || strings.HasPrefix(value, "$2b$") || strings.HasPrefix(value, "$2y$")
}

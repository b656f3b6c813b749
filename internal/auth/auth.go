// Package auth verifies credentials and issues bearer tokens. Hashing and
// signing are delegated to bcrypt and HS256 JWTs; the username travels as the
// token's subject claim.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apperrors "zen/internal/errors"
	"zen/internal/model"
	"zen/internal/store"
)

type Gateway struct {
	store     store.Store
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewGateway(st store.Store, jwtSecret string, tokenTTL time.Duration) *Gateway {
	return &Gateway{
		store:     st,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

func (g *Gateway) Register(ctx context.Context, username, password string) *apperrors.APIError {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return apperrors.BadRequest("missing_fields", "Missing fields")
	}

	_, err := g.store.Get(ctx, username, store.UserKey)
	if err == nil {
		return apperrors.BadRequest("user_exists", "User exists")
	}
	if !errors.Is(err, store.ErrNotFound) {
		return apperrors.Internal("Registration failed")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Internal("Registration failed")
	}

	user := model.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    model.NowMillis(),
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return apperrors.Internal("Registration failed")
	}
	if err := g.store.Put(ctx, username, store.UserKey, raw); err != nil {
		return apperrors.Internal("Registration failed")
	}
	return nil
}

func (g *Gateway) Login(ctx context.Context, username, password string) (string, *apperrors.APIError) {
	username = strings.TrimSpace(username)

	raw, err := g.store.Get(ctx, username, store.UserKey)
	if errors.Is(err, store.ErrNotFound) {
		return "", apperrors.BadRequest("invalid_credentials", "Invalid credentials")
	}
	if err != nil {
		return "", apperrors.Internal("Login failed")
	}

	var user model.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return "", apperrors.Internal("Login failed")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", apperrors.BadRequest("invalid_credentials", "Invalid credentials")
	}

	return g.issueToken(username)
}

// ParseToken returns the username encoded in a valid bearer token.
func (g *Gateway) ParseToken(tokenString string) (string, *apperrors.APIError) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrSignatureInvalid
		}
		return g.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", apperrors.Unauthorized("Invalid token")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", apperrors.Unauthorized("Invalid token")
	}

	return claims.Subject, nil
}

func (g *Gateway) issueToken(username string) (string, *apperrors.APIError) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(g.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.jwtSecret)
	if err != nil {
		return "", apperrors.Internal("Login failed")
	}
	return signed, nil
}

package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	AccessTTL  = 15 * time.Minute
	RefreshTTL = 7 * 24 * time.Hour
)

type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
}

func NewTokenManager(accessSecret, refreshSecret string) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
	}
}

func (m *TokenManager) Generate(userID string) (string, string, error) {
	at := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID,
		"exp":  time.Now().Add(AccessTTL).Unix(),
		"type": "access",
	})
	accessToken, err := at.SignedString(m.accessSecret)
	if err != nil {
		return "", "", err
	}

	// jti keeps every refresh token distinct; the revocation store is keyed
	// by the token string itself.
	rt := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID,
		"exp":  time.Now().Add(RefreshTTL).Unix(),
		"jti":  uuid.NewString(),
		"type": "refresh",
	})
	refreshToken, err := rt.SignedString(m.refreshSecret)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func (m *TokenManager) ValidateAccessToken(tokenStr string) (string, error) {
	return m.validate(tokenStr, m.accessSecret, "access")
}

func (m *TokenManager) ValidateRefreshToken(tokenStr string) (string, error) {
	return m.validate(tokenStr, m.refreshSecret, "refresh")
}

// The type claim is checked as well as the signature, so access and refresh
// tokens stay distinct even when both secrets are configured identically.
func (m *TokenManager) validate(tokenStr string, secret []byte, wantType string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		if tokenType, _ := claims["type"].(string); tokenType != wantType {
			return "", errors.New("wrong token type")
		}
		sub, _ := claims["sub"].(string)
		if sub == "" {
			return "", errors.New("invalid token")
		}
		return sub, nil
	}
	return "", errors.New("invalid token")
}

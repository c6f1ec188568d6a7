package utils

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

const (
	accessTokenTTL  = time.Minute * 60
	refreshTokenTTL = time.Hour * 24 * 7
)

type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	Kind   string `json:"kind"`
	jwt.RegisteredClaims
}

func CreateAccessToken(userID uuid.UUID, role string) (string, error) {
	return createToken(userID, role, "access", accessTokenTTL)
}

// CreateRefreshToken returns the signed token and its jti, which the caller
// records for single-use rotation.
func CreateRefreshToken(userID uuid.UUID, role string) (string, string, error) {
	jti := uuid.New().String()
	token, err := createTokenWithID(userID, role, "refresh", refreshTokenTTL, jti)
	return token, jti, err
}

func createToken(userID uuid.UUID, role, kind string, ttl time.Duration) (string, error) {
	return createTokenWithID(userID, role, kind, ttl, uuid.New().String())
}

func createTokenWithID(userID uuid.UUID, role, kind string, ttl time.Duration, jti string) (string, error) {
	claims := &Claims{
		UserID: userID.String(),
		Role:   role,
		Kind:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

func ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return jwtKey, nil
	})

	if err != nil || !token.Valid {
		return nil, ErrInvalidCredentials
	}

	return claims, nil
}

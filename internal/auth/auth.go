package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	jwtIssuer   = "kaizen-api"
	jwtAudience = "kaizen-staff"

	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour

	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

var (
	ErrTokenExpired     = errors.New("token expired")
	ErrInvalidToken     = errors.New("invalid token")
	ErrInvalidTokenType = errors.New("invalid token type")
	ErrEmptyJWTSecret   = errors.New("jwt secret cannot be empty")
	ErrMissingGym       = errors.New("token is not scoped to a gym")
)

// Role is the closed set of staff roles.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStaff
}

// Identity is what a token asserts about its bearer.
type Identity struct {
	UserID int64
	GymID  int64
	Email  string
	Role   Role
}

type JWTClaims struct {
	UserID    int64  `json:"user_id"`
	GymID     int64  `json:"gym_id"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

func (c *JWTClaims) Identity() Identity {
	return Identity{UserID: c.UserID, GymID: c.GymID, Email: c.Email, Role: c.Role}
}

func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func CheckPassword(hashedPassword, plainPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	return err == nil
}

func generateToken(id Identity, tokenType, secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrEmptyJWTSecret
	}

	now := time.Now()
	claims := &JWTClaims{
		UserID:    id.UserID,
		GymID:     id.GymID,
		Email:     id.Email,
		Role:      id.Role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    jwtIssuer,
			Audience:  []string{jwtAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func GenerateAccessToken(id Identity, secret string) (string, error) {
	return generateToken(id, tokenTypeAccess, secret, AccessTokenTTL)
}

func GenerateRefreshToken(id Identity, secret string) (string, error) {
	return generateToken(id, tokenTypeRefresh, secret, RefreshTokenTTL)
}

func GenerateTokens(id Identity, accessSecret, refreshSecret string) (accessToken, refreshToken string, err error) {
	accessToken, err = GenerateAccessToken(id, accessSecret)
	if err != nil {
		return "", "", err
	}

	refreshToken, err = GenerateRefreshToken(id, refreshSecret)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func ValidateToken(tokenString, secret string) (*JWTClaims, error) {
	if secret == "" {
		return nil, ErrEmptyJWTSecret
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&JWTClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(secret), nil
		},
		jwt.WithIssuer(jwtIssuer),
		jwt.WithAudience(jwtAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, err
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// RefreshAccessToken issues a new access token from a valid refresh token.
// Refresh tokens are stateless; there is no revocation list.
func RefreshAccessToken(refreshToken, refreshSecret, accessSecret string) (string, *JWTClaims, error) {
	claims, err := ValidateToken(refreshToken, refreshSecret)
	if err != nil {
		return "", nil, err
	}

	if claims.TokenType != tokenTypeRefresh {
		return "", nil, ErrInvalidTokenType
	}

	newAccessToken, err := GenerateAccessToken(claims.Identity(), accessSecret)
	if err != nil {
		return "", nil, err
	}

	return newAccessToken, claims, nil
}

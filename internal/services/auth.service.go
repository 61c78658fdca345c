package services

import (
	"errors"
	"fmt"
	"time"

	"agrotrack/config"
	"agrotrack/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)

// AuthService issues and validates HS256 session tokens and handles password
// hashing.
type AuthService struct {
	secret []byte
	expiry time.Duration
	log    logger.Logger
}

func NewAuthService(config config.Config) (*AuthService, error) {
	log := logger.New("authService")

	if config.JWTSecret == "" {
		return nil, log.ErrMsg("JWT secret is required")
	}

	expiryHours := config.JWTExpiryHours
	if expiryHours <= 0 {
		expiryHours = 72
	}

	return &AuthService{
		secret: []byte(config.JWTSecret),
		expiry: time.Duration(expiryHours) * time.Hour,
		log:    log,
	}, nil
}

func (s *AuthService) HashPassword(password string) (string, error) {
	log := s.log.Function("HashPassword")

	if len(password) < 8 {
		return "", ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", log.Err("failed to hash password", err)
	}

	return string(hash), nil
}

func (s *AuthService) CheckPassword(hash string, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// IssueToken creates a signed session token for the user.
func (s *AuthService) IssueToken(userID uuid.UUID) (string, error) {
	log := s.log.Function("IssueToken")

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		Issuer:    "agrotrack",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		ID:        uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", log.Err("failed to sign token", err, "userID", userID)
	}

	return signed, nil
}

// ValidateToken parses a session token and returns the user ID it carries.
func (s *AuthService) ValidateToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
	)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	return userID, nil
}

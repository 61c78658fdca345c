package authController

import (
	"context"
	"errors"
	"strings"

	"agrotrack/internal/logger"
	. "agrotrack/internal/models"
	"agrotrack/internal/repositories"
	"agrotrack/internal/services"

	"gorm.io/gorm"
)

var (
	ErrEmailTaken      = errors.New("email already registered")
	ErrMissingFields   = errors.New("email and password are required")
	ErrAccountDisabled = errors.New("account is deactivated")
)

// AuthResponse pairs the issued token with the authenticated profile.
type AuthResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

type AuthController struct {
	userRepo repositories.UserRepository
	auth     *services.AuthService
	log      logger.Logger
}

type AuthControllerInterface interface {
	Register(ctx context.Context, request RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, request LoginRequest) (*AuthResponse, error)
}

func New(repos repositories.Repository, services *services.Service) AuthControllerInterface {
	return &AuthController{
		userRepo: repos.User,
		auth:     services.Auth,
		log:      logger.New("authController"),
	}
}

func (c *AuthController) Register(ctx context.Context, request RegisterRequest) (*AuthResponse, error) {
	log := c.log.TraceFromContext(ctx).Function("Register")

	email := strings.ToLower(strings.TrimSpace(request.Email))
	if email == "" || request.Password == "" {
		return nil, ErrMissingFields
	}

	existing, err := c.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, log.Err("failed to check existing email", err, "email", email)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := c.auth.HashPassword(request.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		FirstName:    request.FirstName,
		LastName:     request.LastName,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
	}
	user.Touch()

	if err := c.userRepo.Create(ctx, user); err != nil {
		return nil, log.Err("failed to create user", err, "email", email)
	}

	token, err := c.auth.IssueToken(user.ID)
	if err != nil {
		return nil, log.Err("failed to issue token", err, "userID", user.ID)
	}

	log.Info("user registered", "userID", user.ID)
	return &AuthResponse{Token: token, User: user.ToProfile()}, nil
}

func (c *AuthController) Login(ctx context.Context, request LoginRequest) (*AuthResponse, error) {
	log := c.log.TraceFromContext(ctx).Function("Login")

	email := strings.ToLower(strings.TrimSpace(request.Email))
	if email == "" || request.Password == "" {
		return nil, ErrMissingFields
	}

	user, err := c.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrInvalidCredentials
		}
		return nil, log.Err("failed to get user", err, "email", email)
	}

	if err := c.auth.CheckPassword(user.PasswordHash, request.Password); err != nil {
		return nil, services.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	user.Touch()
	if err := c.userRepo.Update(ctx, user); err != nil {
		log.Warn("failed to record login time", "userID", user.ID, "error", err)
	}

	token, err := c.auth.IssueToken(user.ID)
	if err != nil {
		return nil, log.Err("failed to issue token", err, "userID", user.ID)
	}

	log.Info("user logged in", "userID", user.ID)
	return &AuthResponse{Token: token, User: user.ToProfile()}, nil
}

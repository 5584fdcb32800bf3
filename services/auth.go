package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"devconnector.com/social-network/models"
	"devconnector.com/social-network/repository"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carries the authenticated user id as {"user":{"id":...}}.
type Claims struct {
	User struct {
		ID string `json:"id"`
	} `json:"user"`
	jwt.RegisteredClaims
}

type AuthConfig struct {
	Secret     []byte
	TTL        time.Duration
	BcryptCost int
}

type AuthService struct {
	users  repository.UserRepository
	tokens repository.DeviceTokenRepository
	cfg    AuthConfig
}

func NewAuthService(users repository.UserRepository, tokens repository.DeviceTokenRepository, cfg AuthConfig) *AuthService {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.TTL == 0 {
		cfg.TTL = 100 * time.Hour
	}
	return &AuthService{users: users, tokens: tokens, cfg: cfg}
}

// Register creates the user and returns a signed token for it.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user := models.NewUser(req.Name, req.Email, string(hash))
	if err := s.users.Create(ctx, user); err != nil {
		return "", err
	}

	return s.issue(user.ID)
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if errors.Is(err, models.ErrUserNotFound) {
		return "", models.ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", models.ErrInvalidCredentials
	}

	return s.issue(user.ID)
}

func (s *AuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) RegisterDeviceToken(ctx context.Context, userID, token string) error {
	if strings.TrimSpace(token) == "" {
		return models.ValidationErrors{{Msg: "Token is required", Param: "token", Location: "body"}}
	}
	return s.tokens.SaveToken(ctx, userID, strings.TrimSpace(token))
}

// ParseToken validates an HS256 token and returns the user id inside it.
func (s *AuthService) ParseToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.cfg.Secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.User.ID == "" {
		return "", ErrInvalidToken
	}
	return claims.User.ID, nil
}

func (s *AuthService) issue(userID string) (string, error) {
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TTL)),
		},
	}
	claims.User.ID = userID

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

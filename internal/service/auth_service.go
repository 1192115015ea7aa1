package service

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"innerparts/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// AuthService handles app user authentication
type AuthService struct {
	devUsername string
	devPassword string
	jwtSecret   []byte
}

// NewAuthService creates a new auth service
func NewAuthService() *AuthService {
	username := os.Getenv("DEV_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("DEV_PASSWORD")
	if password == "" {
		password = "password123"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super-secret-key-change-in-production"
	}

	return &AuthService{
		devUsername: username,
		devPassword: password,
		jwtSecret:   []byte(secret),
	}
}

// Login validates dev credentials and returns a user token
func (s *AuthService) Login(username, password string) (*model.LoginResponse, error) {
	if username != s.devUsername || password != s.devPassword {
		return nil, ErrInvalidCredentials
	}

	uid := "user_" + uuid.New().String()[:8]

	token, err := s.GenerateUserToken(uid)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token: token,
		UID:   uid,
	}, nil
}

// GenerateUserToken creates a signed token for a user ID
func (s *AuthService) GenerateUserToken(uid string) (string, error) {
	claims := &model.UserClaims{
		UID: uid,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(30 * 24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateUserToken validates a user JWT and returns claims
func (s *AuthService) ValidateUserToken(tokenString string) (*model.UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.UserClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"react-golang/internal/config"
	"react-golang/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrWeakPassword       = errors.New("password is too short")
)

const minPasswordLen = 6

type UserStorage interface {
	CreateUser(ctx context.Context, user *storage.User) error
	GetUserByUsername(ctx context.Context, username string) (*storage.User, error)
}

// TokenDenylist помнит отозванные токены (logout) до истечения их срока.
type TokenDenylist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Service — регистрация, вход по JWT и отзыв токенов через denylist.
type Service struct {
	users    UserStorage
	denylist TokenDenylist
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

func New(users UserStorage, denylist TokenDenylist, cfg config.Auth) *Service {
	return &Service{
		users:    users,
		denylist: denylist,
		secret:   []byte(cfg.JWTSecret),
		tokenTTL: cfg.TokenTTL,
		now:      time.Now,
	}
}

func (s *Service) Register(ctx context.Context, username, password string) error {
	const op = "service.auth.Register"

	if len(password) < minPasswordLen {
		return ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%s: hash password: %w", op, err)
	}

	user := &storage.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrDuplicateUsername) {
			return storage.ErrDuplicateUsername
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Login проверяет пару логин/пароль и выдаёт подписанный токен.
// Ответ одинаковый и для неизвестного логина, и для неверного пароля.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	const op = "service.auth.Login"

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   user.Username,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("%s: sign token: %w", op, err)
	}

	return token, nil
}

// Logout отзывает токен: его jti попадает в denylist до конца срока жизни.
func (s *Service) Logout(ctx context.Context, rawToken string) error {
	const op = "service.auth.Logout"

	claims, err := s.parse(rawToken)
	if err != nil {
		return ErrInvalidToken
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}

	if err := s.denylist.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Authenticate валидирует токен и возвращает имя пользователя.
func (s *Service) Authenticate(ctx context.Context, rawToken string) (string, error) {
	const op = "service.auth.Authenticate"

	claims, err := s.parse(rawToken)
	if err != nil {
		return "", ErrInvalidToken
	}

	revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if revoked {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}

func (s *Service) parse(rawToken string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(rawToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid || claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

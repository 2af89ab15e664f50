package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/kelvin100238453/gympro-backend/internal/models"
	"github.com/kelvin100238453/gympro-backend/internal/storage"
)

// RegisterTrainer регистрирует нового тренера.
// Пустой пароль отклоняется до любого хэширования и похода в БД.
// Гонку check-then-insert закрывает UNIQUE-ограничение БД: параллельная
// регистрация того же email завершается ErrEmailTaken, а не дублем.
func (s *Service) RegisterTrainer(ctx context.Context, name, email, password string) (*models.TokenPair, *models.Trainer, error) {
	const op = "service.auth.RegisterTrainer"

	if len(password) == 0 {
		return nil, nil, fmt.Errorf("%s: %w", op, ErrEmptyPassword)
	}

	normEmail, err := validateEmail(email)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	// Быстрая проверка занятости; само ограничение живёт в БД.
	_, err = s.storage.TrainerByEmail(ctx, normEmail)
	if err == nil {
		return nil, nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	hashedPassword, err := hashPassword(password)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()
	trainer := &models.Trainer{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(name),
		Email:        normEmail,
		PasswordHash: hashedPassword,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.SaveTrainer(ctx, trainer); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}

		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	pair, err := s.issueTokenPair(ctx, models.Principal{ID: trainer.ID, Role: models.RoleTrainer}, "")
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	return pair, trainer, nil
}

// LoginTrainer выполняет вход тренера по email+пароль.
func (s *Service) LoginTrainer(ctx context.Context, email, password string) (*models.TokenPair, *models.Trainer, error) {
	const op = "service.auth.LoginTrainer"

	normEmail, err := validateEmail(email)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if len(password) == 0 {
		return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	trainer, err := s.storage.TrainerByEmail(ctx, normEmail)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	if !checkPassword(trainer.PasswordHash, password) {
		return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	pair, err := s.issueTokenPair(ctx, models.Principal{ID: trainer.ID, Role: models.RoleTrainer}, "")
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	return pair, trainer, nil
}

// LoginClient выполняет вход клиента по имени+пароль.
func (s *Service) LoginClient(ctx context.Context, name, password string) (*models.TokenPair, *models.Client, error) {
	const op = "service.auth.LoginClient"

	name = strings.TrimSpace(name)
	if name == "" || len(password) == 0 {
		return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	client, err := s.storage.ClientByName(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	if !checkPassword(client.PasswordHash, password) {
		return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	pair, err := s.issueTokenPair(ctx, models.Principal{ID: client.ID, Role: models.RoleClient}, "")
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	return pair, client, nil
}

// RefreshToken обновляет пару токенов по refresh-токену с ротацией:
// предъявленный токен атомарно отзывается, выдается новая пара.
// Любой отказ здесь фатален для сессии — клиенту остаётся только re-login.
func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (*models.TokenPair, models.Principal, error) {
	const op = "service.auth.RefreshToken"

	token, err := s.validateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, models.Principal{}, fmt.Errorf("%s: %w", op, err)
	}

	principal := models.Principal{ID: token.PrincipalID, Role: token.Role}

	pair, err := s.issueTokenPair(ctx, principal, refreshHash(refreshToken))
	if err != nil {
		return nil, models.Principal{}, fmt.Errorf("%s: %w", op, err)
	}

	return pair, principal, nil
}

// ValidateToken проверяет access-токен и возвращает принципала.
func (s *Service) ValidateToken(ctx context.Context, accessToken string) (models.Principal, error) {
	const op = "service.auth.ValidateToken"

	principal, err := s.validateAccessToken(accessToken)
	if err != nil {
		return models.Principal{}, fmt.Errorf("%s: %w", op, err)
	}

	return principal, nil
}

// hashPassword хэширует пароль с помощью bcrypt (соль в каждом вызове своя,
// поэтому хэши никогда не сравниваются напрямую).
func hashPassword(password string) (string, error) {
	const op = "service.auth.hashPassword"

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return string(bytes), nil
}

// checkPassword сравнивает пароль с хэшем.
func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// validateEmail проверяет базовый формат email и обрезает пробелы снаружи.
func validateEmail(raw string) (string, error) {
	const op = "service.auth.validateEmail"

	email := strings.TrimSpace(raw)
	if email == "" {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	return strings.ToLower(email), nil
}

// refreshHash возвращает base64url(SHA-256) секрета refresh-токена.
func refreshHash(plain string) string {
	hashBytes := sha256.Sum256([]byte(plain))
	return base64.RawURLEncoding.EncodeToString(hashBytes[:])
}

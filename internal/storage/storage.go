package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/kelvin100238453/gympro-backend/internal/models"
)

var (
	// ErrNotFound — запись не найдена (принципал/токен/клиент).
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — нарушение уникальности (email/name/refresh-token).
	ErrAlreadyExists = errors.New("already exists")
)

// TrainerStorage выполняет операции над тренерами.
type TrainerStorage interface {
	// SaveTrainer создает нового тренера; уникальность email обеспечивает БД.
	SaveTrainer(ctx context.Context, trainer *models.Trainer) error
	// TrainerByEmail находит тренера по email.
	TrainerByEmail(ctx context.Context, email string) (*models.Trainer, error)
	// TrainerByID находит тренера по ID.
	TrainerByID(ctx context.Context, id uuid.UUID) (*models.Trainer, error)
}

// ClientStorage выполняет операции над клиентами.
type ClientStorage interface {
	// SaveClient создает нового клиента; уникальность name обеспечивает БД.
	SaveClient(ctx context.Context, client *models.Client) error
	// ClientByName находит клиента по имени (логин клиента).
	ClientByName(ctx context.Context, name string) (*models.Client, error)
	// ClientByID находит клиента по ID.
	ClientByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
	// ClientsByTrainer возвращает всех клиентов тренера.
	ClientsByTrainer(ctx context.Context, trainerID uuid.UUID) ([]models.Client, error)
	// UpdateClient обновляет изменяемые поля клиента.
	UpdateClient(ctx context.Context, client *models.Client) error
	// DeleteClient удаляет клиента.
	DeleteClient(ctx context.Context, id uuid.UUID) error
}

// RefreshTokenStorage выполняет операции над refresh-токенами.
type RefreshTokenStorage interface {
	// SaveRefreshToken сохраняет новый refresh-токен в БД.
	SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error
	// RefreshTokenByHash находит refresh-токен по его хэшу.
	RefreshTokenByHash(ctx context.Context, hash string) (*models.RefreshToken, error)
	// RevokeRefreshTokenIfActive атомарно отзывает токен, если он ещё активен.
	// (true, nil) — токен был активен и отозван сейчас;
	// (false, nil) — токен существует, но уже был отозван;
	// (false, ErrNotFound) — токен не найден.
	RevokeRefreshTokenIfActive(ctx context.Context, hash string) (bool, error)
	// DeleteExpiredTokens удаляет все просроченные токены.
	DeleteExpiredTokens(ctx context.Context, now time.Time) error
}

// GymStorage выполняет операции доменного CRUD: библиотека упражнений,
// уведомления и журнал тренировок.
type GymStorage interface {
	// ListExercises возвращает библиотеку упражнений.
	ListExercises(ctx context.Context) ([]models.Exercise, error)
	// ReplaceExercises транзакционно заменяет библиотеку целиком.
	ReplaceExercises(ctx context.Context, exercises []models.Exercise) error
	// ListNotifications возвращает уведомления, новые первыми.
	ListNotifications(ctx context.Context) ([]models.Notification, error)
	// SaveNotification создает уведомление.
	SaveNotification(ctx context.Context, n *models.Notification) error
	// MarkNotificationsRead помечает все непрочитанные уведомления прочитанными.
	MarkNotificationsRead(ctx context.Context) error
	// AddWorkoutMinutes атомарно прибавляет минуты к журналу клиента за дату.
	AddWorkoutMinutes(ctx context.Context, clientID uuid.UUID, date string, minutes int) error
	// WorkoutLogsByClient возвращает журнал тренировок клиента.
	WorkoutLogsByClient(ctx context.Context, clientID uuid.UUID) ([]models.WorkoutLog, error)
}

// Storage задает контракт работы с БД.
type Storage interface {
	TrainerStorage
	ClientStorage
	RefreshTokenStorage
	GymStorage
	Close()
}

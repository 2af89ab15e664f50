package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kelvin100238453/gympro-backend/internal/models"
	"github.com/kelvin100238453/gympro-backend/internal/storage"
)

// LogWorkout прибавляет завершённую тренировку к журналу клиента за сегодня.
// Клиент может писать только в собственный журнал, тренер — в журнал своего
// клиента. Суммирование минут за день выполняется атомарным UPSERT в БД.
// Возвращает клиента вместе с обновлённым журналом.
func (s *Service) LogWorkout(ctx context.Context, actor models.Principal, clientID uuid.UUID, durationSeconds int) (*models.Client, []models.WorkoutLog, error) {
	const op = "service.workouts.LogWorkout"

	if durationSeconds <= 0 {
		return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	client, err := s.workoutTarget(ctx, actor, clientID)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()
	date := now.Format("2006-01-02")
	minutes := (durationSeconds + 30) / 60 // округление до ближайшей минуты

	if err := s.storage.AddWorkoutMinutes(ctx, client.ID, date, minutes); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	logs, err := s.storage.WorkoutLogsByClient(ctx, client.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	return client, logs, nil
}

// workoutTarget определяет, в чей журнал пишет инициатор.
func (s *Service) workoutTarget(ctx context.Context, actor models.Principal, clientID uuid.UUID) (*models.Client, error) {
	switch actor.Role {
	case models.RoleClient:
		if actor.ID != clientID {
			return nil, ErrPermissionDenied
		}

		client, err := s.storage.ClientByID(ctx, clientID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, ErrNotFound
			}

			return nil, err
		}

		return client, nil
	case models.RoleTrainer:
		return s.ownedClient(ctx, actor, clientID)
	default:
		return nil, ErrPermissionDenied
	}
}

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kelvin100238453/gympro-backend/internal/models"
)

// ExerciseInput — одно упражнение при замене библиотеки.
type ExerciseInput struct {
	Name        string
	MuscleGroup string
	Description string
	VideoURL    string
}

// ListExercises возвращает библиотеку упражнений. Доступно любой роли.
func (s *Service) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	const op = "service.exercises.ListExercises"

	exercises, err := s.storage.ListExercises(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return exercises, nil
}

// ReplaceExercises заменяет библиотеку упражнений целиком (семантика
// "replace-all" исходного API). Только для роли trainer.
func (s *Service) ReplaceExercises(ctx context.Context, actor models.Principal, in []ExerciseInput) ([]models.Exercise, error) {
	const op = "service.exercises.ReplaceExercises"

	if actor.Role != models.RoleTrainer {
		return nil, fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}

	exercises := make([]models.Exercise, 0, len(in))
	for _, e := range in {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}

		exercises = append(exercises, models.Exercise{
			ID:          uuid.New(),
			Name:        name,
			MuscleGroup: e.MuscleGroup,
			Description: e.Description,
			VideoURL:    e.VideoURL,
		})
	}

	if err := s.storage.ReplaceExercises(ctx, exercises); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return exercises, nil
}

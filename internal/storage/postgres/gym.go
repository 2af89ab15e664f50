package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kelvin100238453/gympro-backend/internal/models"
)

// ListExercises возвращает библиотеку упражнений.
func (s *Storage) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	const op = "storage.postgres.ListExercises"

	query := `
		SELECT id, name, muscle_group, description, video_url
		FROM exercises
		ORDER BY name
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var exercises []models.Exercise
	for rows.Next() {
		var e models.Exercise
		if err := rows.Scan(&e.ID, &e.Name, &e.MuscleGroup, &e.Description, &e.VideoURL); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		exercises = append(exercises, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return exercises, nil
}

// ReplaceExercises транзакционно заменяет библиотеку упражнений целиком.
// Семантика "replace-all": читатели видят либо старую, либо новую библиотеку.
func (s *Storage) ReplaceExercises(ctx context.Context, exercises []models.Exercise) error {
	const op = "storage.postgres.ReplaceExercises"

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM exercises`); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	const ins = `
		INSERT INTO exercises(id, name, muscle_group, description, video_url)
		VALUES ($1, $2, $3, $4, $5)
	`

	for _, e := range exercises {
		if _, err := tx.Exec(ctx, ins, e.ID, e.Name, e.MuscleGroup, e.Description, e.VideoURL); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ListNotifications возвращает уведомления, новые первыми.
func (s *Storage) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	const op = "storage.postgres.ListNotifications"

	query := `
		SELECT id, message, type, read, created_at
		FROM notifications
		ORDER BY created_at DESC
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.Message, &n.Type, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return notifications, nil
}

// SaveNotification создает уведомление.
func (s *Storage) SaveNotification(ctx context.Context, n *models.Notification) error {
	const op = "storage.postgres.SaveNotification"

	query := `
		INSERT INTO notifications(id, message, type, read, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.db.Exec(ctx, query, n.ID, n.Message, n.Type, n.Read, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// MarkNotificationsRead помечает все непрочитанные уведомления прочитанными.
func (s *Storage) MarkNotificationsRead(ctx context.Context) error {
	const op = "storage.postgres.MarkNotificationsRead"

	query := `
		UPDATE notifications
		SET read = TRUE
		WHERE read = FALSE
	`

	if _, err := s.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// AddWorkoutMinutes атомарно прибавляет минуты к журналу клиента за дату.
// UPSERT на уровне БД: конкурентные записи за один день суммируются,
// а не теряются (вместо read-modify-write по всему документу).
func (s *Storage) AddWorkoutMinutes(ctx context.Context, clientID uuid.UUID, date string, minutes int) error {
	const op = "storage.postgres.AddWorkoutMinutes"

	query := `
		INSERT INTO workout_logs(client_id, log_date, duration_minutes)
		VALUES ($1, $2, $3)
		ON CONFLICT (client_id, log_date)
		DO UPDATE SET duration_minutes = workout_logs.duration_minutes + EXCLUDED.duration_minutes
	`

	if _, err := s.db.Exec(ctx, query, clientID, date, minutes); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// WorkoutLogsByClient возвращает журнал тренировок клиента.
func (s *Storage) WorkoutLogsByClient(ctx context.Context, clientID uuid.UUID) ([]models.WorkoutLog, error) {
	const op = "storage.postgres.WorkoutLogsByClient"

	query := `
		SELECT client_id, to_char(log_date, 'YYYY-MM-DD'), duration_minutes
		FROM workout_logs
		WHERE client_id = $1
		ORDER BY log_date
	`

	rows, err := s.db.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var logs []models.WorkoutLog
	for rows.Next() {
		var l models.WorkoutLog
		if err := rows.Scan(&l.ClientID, &l.Date, &l.DurationMinutes); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		logs = append(logs, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return logs, nil
}

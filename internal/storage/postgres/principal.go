package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kelvin100238453/gympro-backend/internal/models"
	"github.com/kelvin100238453/gympro-backend/internal/storage"
)

// SaveTrainer создает нового тренера в БД.
// Уникальность email обеспечивается ограничением БД: конкурентная
// регистрация одного email не проходит мимо storage.ErrAlreadyExists.
func (s *Storage) SaveTrainer(ctx context.Context, trainer *models.Trainer) error {
	const op = "storage.postgres.SaveTrainer"

	query := `
		INSERT INTO trainers(id, name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.Exec(ctx, query,
		trainer.ID,
		trainer.Name,
		trainer.Email,
		trainer.PasswordHash,
		trainer.CreatedAt,
		trainer.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// TrainerByEmail находит тренера по email.
func (s *Storage) TrainerByEmail(ctx context.Context, email string) (*models.Trainer, error) {
	const op = "storage.postgres.TrainerByEmail"

	query := `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM trainers
		WHERE email = $1
	`

	var trainer models.Trainer
	err := s.db.QueryRow(ctx, query, email).Scan(
		&trainer.ID,
		&trainer.Name,
		&trainer.Email,
		&trainer.PasswordHash,
		&trainer.CreatedAt,
		&trainer.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &trainer, nil
}

// TrainerByID находит тренера по ID.
func (s *Storage) TrainerByID(ctx context.Context, id uuid.UUID) (*models.Trainer, error) {
	const op = "storage.postgres.TrainerByID"

	query := `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM trainers
		WHERE id = $1
	`

	var trainer models.Trainer
	err := s.db.QueryRow(ctx, query, id).Scan(
		&trainer.ID,
		&trainer.Name,
		&trainer.Email,
		&trainer.PasswordHash,
		&trainer.CreatedAt,
		&trainer.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &trainer, nil
}

// SaveClient создает нового клиента в БД.
func (s *Storage) SaveClient(ctx context.Context, client *models.Client) error {
	const op = "storage.postgres.SaveClient"

	query := `
		INSERT INTO clients(id, trainer_id, name, email, goal, notes, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := s.db.Exec(ctx, query,
		client.ID,
		client.TrainerID,
		client.Name,
		client.Email,
		client.Goal,
		client.Notes,
		client.PasswordHash,
		client.CreatedAt,
		client.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ClientByName находит клиента по имени (логин клиента).
func (s *Storage) ClientByName(ctx context.Context, name string) (*models.Client, error) {
	const op = "storage.postgres.ClientByName"

	query := `
		SELECT id, trainer_id, name, email, goal, notes, password_hash, created_at, updated_at
		FROM clients
		WHERE name = $1
	`

	var client models.Client
	err := s.db.QueryRow(ctx, query, name).Scan(
		&client.ID,
		&client.TrainerID,
		&client.Name,
		&client.Email,
		&client.Goal,
		&client.Notes,
		&client.PasswordHash,
		&client.CreatedAt,
		&client.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &client, nil
}

// ClientByID находит клиента по ID.
func (s *Storage) ClientByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	const op = "storage.postgres.ClientByID"

	query := `
		SELECT id, trainer_id, name, email, goal, notes, password_hash, created_at, updated_at
		FROM clients
		WHERE id = $1
	`

	var client models.Client
	err := s.db.QueryRow(ctx, query, id).Scan(
		&client.ID,
		&client.TrainerID,
		&client.Name,
		&client.Email,
		&client.Goal,
		&client.Notes,
		&client.PasswordHash,
		&client.CreatedAt,
		&client.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &client, nil
}

// ClientsByTrainer возвращает всех клиентов тренера.
func (s *Storage) ClientsByTrainer(ctx context.Context, trainerID uuid.UUID) ([]models.Client, error) {
	const op = "storage.postgres.ClientsByTrainer"

	query := `
		SELECT id, trainer_id, name, email, goal, notes, password_hash, created_at, updated_at
		FROM clients
		WHERE trainer_id = $1
		ORDER BY created_at
	`

	rows, err := s.db.Query(ctx, query, trainerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var clients []models.Client
	for rows.Next() {
		var client models.Client
		if err := rows.Scan(
			&client.ID,
			&client.TrainerID,
			&client.Name,
			&client.Email,
			&client.Goal,
			&client.Notes,
			&client.PasswordHash,
			&client.CreatedAt,
			&client.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return clients, nil
}

// UpdateClient обновляет изменяемые поля клиента.
func (s *Storage) UpdateClient(ctx context.Context, client *models.Client) error {
	const op = "storage.postgres.UpdateClient"

	query := `
		UPDATE clients
		SET name = $2, email = $3, goal = $4, notes = $5, password_hash = $6, updated_at = $7
		WHERE id = $1
	`

	cmdTag, err := s.db.Exec(ctx, query,
		client.ID,
		client.Name,
		client.Email,
		client.Goal,
		client.Notes,
		client.PasswordHash,
		client.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// DeleteClient удаляет клиента.
func (s *Storage) DeleteClient(ctx context.Context, id uuid.UUID) error {
	const op = "storage.postgres.DeleteClient"

	query := `
		DELETE FROM clients
		WHERE id = $1
	`

	cmdTag, err := s.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kelvin100238453/gympro-backend/internal/models"
	"github.com/kelvin100238453/gympro-backend/internal/storage"
)

// ClientInput — изменяемые поля клиента, приходящие от тренера.
// Password опционален: пустая строка означает "не менять".
type ClientInput struct {
	Name     string
	Email    string
	Goal     string
	Notes    string
	Password string
}

// ListClients возвращает клиентов тренера. Только для роли trainer;
// список всегда ограничен клиентами самого тренера.
func (s *Service) ListClients(ctx context.Context, actor models.Principal) ([]models.Client, error) {
	const op = "service.clients.ListClients"

	if actor.Role != models.RoleTrainer {
		return nil, fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}

	clients, err := s.storage.ClientsByTrainer(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return clients, nil
}

// CreateClient создает клиента, привязанного к тренеру-инициатору.
func (s *Service) CreateClient(ctx context.Context, actor models.Principal, in ClientInput) (*models.Client, error) {
	const op = "service.clients.CreateClient"

	if actor.Role != models.RoleTrainer {
		return nil, fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	var passwordHash string
	if in.Password != "" {
		var err error
		passwordHash, err = hashPassword(in.Password)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	now := time.Now().UTC()
	client := &models.Client{
		ID:           uuid.New(),
		TrainerID:    actor.ID,
		Name:         name,
		Email:        strings.TrimSpace(in.Email),
		Goal:         in.Goal,
		Notes:        in.Notes,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.SaveClient(ctx, client); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, fmt.Errorf("%s: %w", op, ErrNameTaken)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return client, nil
}

// UpdateClient обновляет клиента тренера. Пароль, если задан, перезаписывается
// новым хэшем атомарно вместе с остальными полями.
func (s *Service) UpdateClient(ctx context.Context, actor models.Principal, id uuid.UUID, in ClientInput) (*models.Client, error) {
	const op = "service.clients.UpdateClient"

	client, err := s.ownedClient(ctx, actor, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		client.Name = name
	}
	client.Email = strings.TrimSpace(in.Email)
	client.Goal = in.Goal
	client.Notes = in.Notes

	if in.Password != "" {
		hash, err := hashPassword(in.Password)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		client.PasswordHash = hash
	}

	client.UpdatedAt = time.Now().UTC()

	if err := s.storage.UpdateClient(ctx, client); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, fmt.Errorf("%s: %w", op, ErrNameTaken)
		}
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return client, nil
}

// DeleteClient удаляет клиента тренера.
func (s *Service) DeleteClient(ctx context.Context, actor models.Principal, id uuid.UUID) error {
	const op = "service.clients.DeleteClient"

	if _, err := s.ownedClient(ctx, actor, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.DeleteClient(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ownedClient возвращает клиента, если инициатор — тренер этого клиента.
// Чужой клиент неотличим от несуществующего: и то и другое — ErrNotFound.
func (s *Service) ownedClient(ctx context.Context, actor models.Principal, id uuid.UUID) (*models.Client, error) {
	if actor.Role != models.RoleTrainer {
		return nil, ErrPermissionDenied
	}

	client, err := s.storage.ClientByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	if client.TrainerID != actor.ID {
		return nil, ErrNotFound
	}

	return client, nil
}

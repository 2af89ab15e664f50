package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kelvin100238453/gympro-backend/internal/models"
)

// ListNotifications возвращает уведомления, новые первыми. Только trainer.
func (s *Service) ListNotifications(ctx context.Context, actor models.Principal) ([]models.Notification, error) {
	const op = "service.notifications.ListNotifications"

	if actor.Role != models.RoleTrainer {
		return nil, fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}

	notifications, err := s.storage.ListNotifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return notifications, nil
}

// CreateNotification создает уведомление. Пустой type приводится к "info".
func (s *Service) CreateNotification(ctx context.Context, actor models.Principal, message, typ string) (*models.Notification, error) {
	const op = "service.notifications.CreateNotification"

	if !actor.Role.Valid() {
		return nil, fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if typ == "" {
		typ = "info"
	}

	n := &models.Notification{
		ID:        uuid.New(),
		Message:   message,
		Type:      typ,
		Read:      false,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.storage.SaveNotification(ctx, n); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

// ClearNotifications помечает все непрочитанные уведомления прочитанными.
func (s *Service) ClearNotifications(ctx context.Context, actor models.Principal) error {
	const op = "service.notifications.ClearNotifications"

	if actor.Role != models.RoleTrainer {
		return fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}

	if err := s.storage.MarkNotificationsRead(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Role — роль принципала в системе. Ровно две фиксированные роли.
type Role string

const (
	RoleTrainer Role = "trainer"
	RoleClient  Role = "client"
)

// Valid сообщает, является ли значение одной из известных ролей.
func (r Role) Valid() bool {
	return r == RoleTrainer || r == RoleClient
}

// Trainer — модель тренера.
// PasswordHash никогда не сериализуется наружу (см. санитайзеры в transport).
type Trainer struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Client — модель клиента (подопечного тренера).
// Вход выполняется по уникальному Name; Email опционален.
type Client struct {
	ID           uuid.UUID
	TrainerID    uuid.UUID
	Name         string
	Email        string
	Goal         string
	Notes        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal — аутентифицированная личность: результат проверки access-токена
// или пары логин/пароль. Достаточен для авторизации без похода в БД.
type Principal struct {
	ID   uuid.UUID
	Role Role
}

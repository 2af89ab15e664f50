package models

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken — серверная запись refresh-токена.
// Хранится только SHA-256-хэш секрета; роль фиксируется при выпуске,
// чтобы обновление пары не могло сменить личность или повысить роль.
type RefreshToken struct {
	RefreshTokenHash string
	PrincipalID      uuid.UUID
	Role             Role
	CreatedAt        time.Time
	ExpiresAt        time.Time
	Revoked          bool
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Exercise — упражнение из библиотеки зала.
type Exercise struct {
	ID          uuid.UUID
	Name        string
	MuscleGroup string
	Description string
	VideoURL    string
}

// Notification — уведомление в ленте тренера.
type Notification struct {
	ID        uuid.UUID
	Message   string
	Type      string
	Read      bool
	CreatedAt time.Time
}

// WorkoutLog — суммарная длительность тренировок клиента за день.
// Date хранится как календарная дата (UTC, без времени).
type WorkoutLog struct {
	ClientID        uuid.UUID
	Date            string
	DurationMinutes int
}

package handlers

import (
	"github.com/kelvin100238453/gympro-backend/internal/models"
)

// DTO HTTP-слоя. У доменных моделей нет JSON-тегов; наружу уходят только
// эти структуры, в которых поля с хэшем пароля отсутствуют по построению.

// UserResponse — санитизированный принципал в ответах auth-эндпойнтов.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
}

// AuthResponse — ответ login/register: пара токенов + пользователь.
type AuthResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         UserResponse `json:"user"`
}

// RefreshResponse — ответ refresh-token: ротация выдаёт оба токена.
type RefreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// ClientResponse — клиент без хэша пароля.
type ClientResponse struct {
	ID          string               `json:"id"`
	TrainerID   string               `json:"trainerId"`
	Name        string               `json:"name"`
	Email       string               `json:"email,omitempty"`
	Goal        string               `json:"goal,omitempty"`
	Notes       string               `json:"notes,omitempty"`
	Role        string               `json:"role"`
	WorkoutLogs []WorkoutLogResponse `json:"workoutLogs,omitempty"`
}

// WorkoutLogResponse — запись журнала тренировок за день.
type WorkoutLogResponse struct {
	Date     string `json:"date"`
	Duration int    `json:"duration"`
}

// ExerciseResponse — упражнение библиотеки.
type ExerciseResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MuscleGroup string `json:"muscleGroup,omitempty"`
	Description string `json:"description,omitempty"`
	VideoURL    string `json:"videoUrl,omitempty"`
}

// NotificationResponse — уведомление ленты.
type NotificationResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
	Type    string `json:"type"`
	Read    bool   `json:"read"`
	Date    string `json:"date"`
}

func trainerUser(t *models.Trainer) UserResponse {
	return UserResponse{
		ID:    t.ID.String(),
		Name:  t.Name,
		Email: t.Email,
		Role:  string(models.RoleTrainer),
	}
}

func clientUser(c *models.Client) UserResponse {
	return UserResponse{
		ID:    c.ID.String(),
		Name:  c.Name,
		Email: c.Email,
		Role:  string(models.RoleClient),
	}
}

func clientResponse(c *models.Client, logs []models.WorkoutLog) ClientResponse {
	resp := ClientResponse{
		ID:        c.ID.String(),
		TrainerID: c.TrainerID.String(),
		Name:      c.Name,
		Email:     c.Email,
		Goal:      c.Goal,
		Notes:     c.Notes,
		Role:      string(models.RoleClient),
	}

	for _, l := range logs {
		resp.WorkoutLogs = append(resp.WorkoutLogs, WorkoutLogResponse{
			Date:     l.Date,
			Duration: l.DurationMinutes,
		})
	}

	return resp
}

func exerciseResponses(exercises []models.Exercise) []ExerciseResponse {
	out := make([]ExerciseResponse, 0, len(exercises))
	for _, e := range exercises {
		out = append(out, ExerciseResponse{
			ID:          e.ID.String(),
			Name:        e.Name,
			MuscleGroup: e.MuscleGroup,
			Description: e.Description,
			VideoURL:    e.VideoURL,
		})
	}
	return out
}

func notificationResponse(n *models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:      n.ID.String(),
		Message: n.Message,
		Type:    n.Type,
		Read:    n.Read,
		Date:    n.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

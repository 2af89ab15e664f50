package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kelvin100238453/gympro-backend/internal/http/apierrors"
	"github.com/kelvin100238453/gympro-backend/internal/http/middleware"
	"github.com/kelvin100238453/gympro-backend/internal/service"
)

type clientRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Goal     string `json:"goal"`
	Notes    string `json:"notes"`
	Password string `json:"password"`
}

func (in clientRequest) toInput() service.ClientInput {
	return service.ClientInput{
		Name:     in.Name,
		Email:    in.Email,
		Goal:     in.Goal,
		Notes:    in.Notes,
		Password: in.Password,
	}
}

// ListClients — GET /clients.
func (h *Handlers) ListClients(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, service.ErrInvalidToken)
		return
	}

	clients, err := h.Service.ListClients(r.Context(), actor)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out := make([]ClientResponse, 0, len(clients))
	for i := range clients {
		out = append(out, clientResponse(&clients[i], nil))
	}

	writeJSON(w, http.StatusOK, out)
}

// CreateClient — POST /clients.
func (h *Handlers) CreateClient(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, service.ErrInvalidToken)
		return
	}

	var in clientRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	client, err := h.Service.CreateClient(r.Context(), actor, in.toInput())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, clientResponse(client, nil))
}

// UpdateClient — PUT /clients/{id}.
func (h *Handlers) UpdateClient(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, service.ErrInvalidToken)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	var in clientRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	client, err := h.Service.UpdateClient(r.Context(), actor, id, in.toInput())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, clientResponse(client, nil))
}

// DeleteClient — DELETE /clients/{id}.
func (h *Handlers) DeleteClient(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, service.ErrInvalidToken)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	if err := h.Service.DeleteClient(r.Context(), actor, id); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type logWorkoutRequest struct {
	DurationSeconds int `json:"durationSeconds"`
}

// LogWorkout — POST /clients/{id}/log-workout.
// Возвращает клиента с обновлённым журналом тренировок.
func (h *Handlers) LogWorkout(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, service.ErrInvalidToken)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	var in logWorkoutRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	client, logs, err := h.Service.LogWorkout(r.Context(), actor, id, in.DurationSeconds)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, clientResponse(client, logs))
}

package handlers

import (
	"net/http"

	"github.com/kelvin100238453/gympro-backend/internal/http/apierrors"
	"github.com/kelvin100238453/gympro-backend/internal/service"
)

type clientLoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type trainerLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type trainerRegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// LoginClient — POST /auth/client/login.
func (h *Handlers) LoginClient(w http.ResponseWriter, r *http.Request) {
	var in clientLoginRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	pair, client, err := h.Service.LoginClient(r.Context(), in.Name, in.Password)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         clientUser(client),
	})
}

// LoginTrainer — POST /auth/trainer/login.
func (h *Handlers) LoginTrainer(w http.ResponseWriter, r *http.Request) {
	var in trainerLoginRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	pair, trainer, err := h.Service.LoginTrainer(r.Context(), in.Email, in.Password)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         trainerUser(trainer),
	})
}

// RegisterTrainer — POST /auth/trainer/register.
func (h *Handlers) RegisterTrainer(w http.ResponseWriter, r *http.Request) {
	var in trainerRegisterRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	pair, trainer, err := h.Service.RegisterTrainer(r.Context(), in.Name, in.Email, in.Password)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         trainerUser(trainer),
	})
}

// RefreshToken — POST /auth/client/refresh-token.
// Единый эндпойнт для обеих ролей: роль зашита в запись refresh-токена.
func (h *Handlers) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var in refreshRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	pair, _, err := h.Service.RefreshToken(r.Context(), in.RefreshToken)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, RefreshResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

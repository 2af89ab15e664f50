package handlers

import (
	"net/http"

	"github.com/kelvin100238453/gympro-backend/internal/http/apierrors"
	"github.com/kelvin100238453/gympro-backend/internal/http/middleware"
	"github.com/kelvin100238453/gympro-backend/internal/service"
)

type notificationRequest struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// ListNotifications — GET /notifications.
func (h *Handlers) ListNotifications(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, service.ErrInvalidToken)
		return
	}

	notifications, err := h.Service.ListNotifications(r.Context(), actor)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out := make([]NotificationResponse, 0, len(notifications))
	for i := range notifications {
		out = append(out, notificationResponse(&notifications[i]))
	}

	writeJSON(w, http.StatusOK, out)
}

// CreateNotification — POST /notifications.
func (h *Handlers) CreateNotification(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, service.ErrInvalidToken)
		return
	}

	var in notificationRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	n, err := h.Service.CreateNotification(r.Context(), actor, in.Message, in.Type)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, notificationResponse(n))
}

// ClearNotifications — POST /notifications/clear.
func (h *Handlers) ClearNotifications(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, service.ErrInvalidToken)
		return
	}

	if err := h.Service.ClearNotifications(r.Context(), actor); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

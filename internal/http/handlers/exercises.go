package handlers

import (
	"net/http"

	"github.com/kelvin100238453/gympro-backend/internal/http/apierrors"
	"github.com/kelvin100238453/gympro-backend/internal/http/middleware"
	"github.com/kelvin100238453/gympro-backend/internal/service"
)

type exerciseRequest struct {
	Name        string `json:"name"`
	MuscleGroup string `json:"muscleGroup"`
	Description string `json:"description"`
	VideoURL    string `json:"videoUrl"`
}

// ListExercises — GET /exercises.
func (h *Handlers) ListExercises(w http.ResponseWriter, r *http.Request) {
	exercises, err := h.Service.ListExercises(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, exerciseResponses(exercises))
}

// ReplaceExercises — PUT /exercises: замена библиотеки целиком.
func (h *Handlers) ReplaceExercises(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, service.ErrInvalidToken)
		return
	}

	var in []exerciseRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	inputs := make([]service.ExerciseInput, 0, len(in))
	for _, e := range in {
		inputs = append(inputs, service.ExerciseInput{
			Name:        e.Name,
			MuscleGroup: e.MuscleGroup,
			Description: e.Description,
			VideoURL:    e.VideoURL,
		})
	}

	exercises, err := h.Service.ReplaceExercises(r.Context(), actor, inputs)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, exerciseResponses(exercises))
}

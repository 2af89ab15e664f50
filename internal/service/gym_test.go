package service

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/kelvin100238453/gympro-backend/internal/models"
	"github.com/kelvin100238453/gympro-backend/internal/storage"
)

func TestReplaceExercises_OK(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	var saved []models.Exercise
	st.EXPECT().ReplaceExercises(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ex []models.Exercise) error {
			saved = ex
			return nil
		})

	got, err := svc.ReplaceExercises(context.Background(), trainerActor(), []ExerciseInput{
		{Name: "Squat", MuscleGroup: "legs"},
		{Name: " Bench Press ", MuscleGroup: "chest"},
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, saved, got)
	require.Equal(t, "Bench Press", got[1].Name)
	require.NotEqual(t, uuid.Nil, got[0].ID)
}

func TestReplaceExercises_ClientRole_Denied(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, err := svc.ReplaceExercises(context.Background(),
		models.Principal{ID: uuid.New(), Role: models.RoleClient},
		[]ExerciseInput{{Name: "Squat"}})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrPermissionDenied)
}

func TestReplaceExercises_EmptyName_Invalid(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, err := svc.ReplaceExercises(context.Background(), trainerActor(),
		[]ExerciseInput{{Name: "  "}})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestListExercises_AnyRole(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	want := []models.Exercise{{ID: uuid.New(), Name: "Squat"}}
	st.EXPECT().ListExercises(gomock.Any()).Return(want, nil)

	got, err := svc.ListExercises(context.Background())
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestCreateNotification_DefaultsType(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	var saved *models.Notification
	st.EXPECT().SaveNotification(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n *models.Notification) error {
			saved = n
			return nil
		})

	got, err := svc.CreateNotification(context.Background(), trainerActor(), "  workout done  ", "")
	require.NoError(t, err)
	require.Equal(t, "workout done", got.Message)
	require.Equal(t, "info", got.Type)
	require.False(t, got.Read)
	require.Same(t, saved, got)
}

func TestCreateNotification_EmptyMessage_Invalid(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, err := svc.CreateNotification(context.Background(), trainerActor(), "   ", "info")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestListAndClearNotifications_TrainerOnly(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	client := models.Principal{ID: uuid.New(), Role: models.RoleClient}

	_, err := svc.ListNotifications(context.Background(), client)
	require.ErrorIs(t, err, ErrPermissionDenied)

	err = svc.ClearNotifications(context.Background(), client)
	require.ErrorIs(t, err, ErrPermissionDenied)

	actor := trainerActor()
	st.EXPECT().ListNotifications(gomock.Any()).Return([]models.Notification{}, nil)
	_, err = svc.ListNotifications(context.Background(), actor)
	require.NoError(t, err)

	st.EXPECT().MarkNotificationsRead(gomock.Any()).Return(nil)
	require.NoError(t, svc.ClearNotifications(context.Background(), actor))
}

func TestLogWorkout_ClientOwnJournal_RoundsToMinutes(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	clientID := uuid.New()
	actor := models.Principal{ID: clientID, Role: models.RoleClient}
	client := &models.Client{ID: clientID, TrainerID: uuid.New(), Name: "ivan"}

	st.EXPECT().ClientByID(gomock.Any(), clientID).Return(client, nil)

	var gotMinutes int
	st.EXPECT().AddWorkoutMinutes(gomock.Any(), clientID, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, _ string, minutes int) error {
			gotMinutes = minutes
			return nil
		})
	st.EXPECT().WorkoutLogsByClient(gomock.Any(), clientID).
		Return([]models.WorkoutLog{{ClientID: clientID, DurationMinutes: 31}}, nil)

	// 1850 секунд — 30 минут 50 секунд, округляется к 31 минуте.
	got, logs, err := svc.LogWorkout(context.Background(), actor, clientID, 1850)
	require.NoError(t, err)
	require.Equal(t, client, got)
	require.Equal(t, 31, gotMinutes)
	require.Len(t, logs, 1)
}

func TestLogWorkout_ClientForeignJournal_Denied(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	actor := models.Principal{ID: uuid.New(), Role: models.RoleClient}

	_, _, err := svc.LogWorkout(context.Background(), actor, uuid.New(), 600)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrPermissionDenied)
}

func TestLogWorkout_TrainerForOwnClient(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	actor := trainerActor()
	clientID := uuid.New()
	client := &models.Client{ID: clientID, TrainerID: actor.ID, Name: "ivan"}

	st.EXPECT().ClientByID(gomock.Any(), clientID).Return(client, nil)
	st.EXPECT().AddWorkoutMinutes(gomock.Any(), clientID, gomock.Any(), 10).Return(nil)
	st.EXPECT().WorkoutLogsByClient(gomock.Any(), clientID).Return(nil, nil)

	_, _, err := svc.LogWorkout(context.Background(), actor, clientID, 600)
	require.NoError(t, err)
}

func TestLogWorkout_TrainerForForeignClient_NotFound(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	actor := trainerActor()
	clientID := uuid.New()

	st.EXPECT().ClientByID(gomock.Any(), clientID).Return(&models.Client{
		ID: clientID, TrainerID: uuid.New(),
	}, nil)

	_, _, err := svc.LogWorkout(context.Background(), actor, clientID, 600)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLogWorkout_NonPositiveDuration_Invalid(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, _, err := svc.LogWorkout(context.Background(),
		models.Principal{ID: uuid.New(), Role: models.RoleClient}, uuid.New(), 0)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, _, err = svc.LogWorkout(context.Background(),
		models.Principal{ID: uuid.New(), Role: models.RoleClient}, uuid.New(), -5)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestLogWorkout_ClientNotFound(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	clientID := uuid.New()
	actor := models.Principal{ID: clientID, Role: models.RoleClient}

	st.EXPECT().ClientByID(gomock.Any(), clientID).Return(nil, storage.ErrNotFound)

	_, _, err := svc.LogWorkout(context.Background(), actor, clientID, 600)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrNotFound)
}

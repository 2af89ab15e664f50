package service

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/kelvin100238453/gympro-backend/internal/models"
	"github.com/kelvin100238453/gympro-backend/internal/storage"
)

func trainerActor() models.Principal {
	return models.Principal{ID: uuid.New(), Role: models.RoleTrainer}
}

func TestListClients_OK(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	actor := trainerActor()
	want := []models.Client{
		{ID: uuid.New(), TrainerID: actor.ID, Name: "ivan"},
		{ID: uuid.New(), TrainerID: actor.ID, Name: "petr"},
	}

	st.EXPECT().ClientsByTrainer(gomock.Any(), actor.ID).Return(want, nil)

	got, err := svc.ListClients(context.Background(), actor)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestListClients_ClientRole_Denied(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, err := svc.ListClients(context.Background(),
		models.Principal{ID: uuid.New(), Role: models.RoleClient})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrPermissionDenied)
}

func TestCreateClient_OK(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	actor := trainerActor()

	var saved *models.Client
	st.EXPECT().SaveClient(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *models.Client) error {
			saved = c
			return nil
		})

	got, err := svc.CreateClient(context.Background(), actor, ClientInput{
		Name:     "  ivan ",
		Email:    "ivan@example.com",
		Goal:     "strength",
		Password: "Abcdef1!",
	})
	require.NoError(t, err)
	require.Equal(t, actor.ID, got.TrainerID)
	require.Equal(t, "ivan", got.Name)
	require.Same(t, saved, got)

	// Пароль не должен попадать в БД открытым текстом.
	require.NotEmpty(t, saved.PasswordHash)
	require.NotEqual(t, "Abcdef1!", saved.PasswordHash)
	require.True(t, checkPassword(saved.PasswordHash, "Abcdef1!"))
}

func TestCreateClient_EmptyName_Invalid(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, err := svc.CreateClient(context.Background(), trainerActor(), ClientInput{Name: "   "})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCreateClient_NameTaken(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().SaveClient(gomock.Any(), gomock.Any()).Return(storage.ErrAlreadyExists)

	_, err := svc.CreateClient(context.Background(), trainerActor(), ClientInput{Name: "ivan"})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrNameTaken)
}

func TestUpdateClient_OK_RehashesPassword(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	actor := trainerActor()
	clientID := uuid.New()
	oldHash := mustHashPW(t, "OldPass1!")

	st.EXPECT().ClientByID(gomock.Any(), clientID).Return(&models.Client{
		ID: clientID, TrainerID: actor.ID, Name: "ivan", PasswordHash: oldHash,
	}, nil)

	var updated *models.Client
	st.EXPECT().UpdateClient(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *models.Client) error {
			updated = c
			return nil
		})

	got, err := svc.UpdateClient(context.Background(), actor, clientID, ClientInput{
		Name:     "ivan2",
		Goal:     "endurance",
		Password: "NewPass1!",
	})
	require.NoError(t, err)
	require.Equal(t, "ivan2", got.Name)
	require.Equal(t, "endurance", got.Goal)
	require.NotEqual(t, oldHash, updated.PasswordHash)
	require.True(t, checkPassword(updated.PasswordHash, "NewPass1!"))
}

func TestUpdateClient_ForeignClient_LooksLikeNotFound(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	actor := trainerActor()
	clientID := uuid.New()

	// Клиент существует, но принадлежит другому тренеру.
	st.EXPECT().ClientByID(gomock.Any(), clientID).Return(&models.Client{
		ID: clientID, TrainerID: uuid.New(), Name: "ivan",
	}, nil)

	_, err := svc.UpdateClient(context.Background(), actor, clientID, ClientInput{Name: "x"})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrNotFound)
	require.NotErrorIs(t, err, ErrPermissionDenied)
}

func TestDeleteClient_OK_AndNotFound(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	actor := trainerActor()
	clientID := uuid.New()

	st.EXPECT().ClientByID(gomock.Any(), clientID).Return(&models.Client{
		ID: clientID, TrainerID: actor.ID,
	}, nil)
	st.EXPECT().DeleteClient(gomock.Any(), clientID).Return(nil)

	require.NoError(t, svc.DeleteClient(context.Background(), actor, clientID))

	st.EXPECT().ClientByID(gomock.Any(), clientID).Return(nil, storage.ErrNotFound)

	err := svc.DeleteClient(context.Background(), actor, clientID)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteClient_ClientRole_Denied(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	err := svc.DeleteClient(context.Background(),
		models.Principal{ID: uuid.New(), Role: models.RoleClient}, uuid.New())
	require.Error(t, err)
	require.ErrorIs(t, err, ErrPermissionDenied)
}

func TestListClients_StorageError_Propagated(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	actor := trainerActor()
	st.EXPECT().ClientsByTrainer(gomock.Any(), actor.ID).Return(nil, errors.New("db down"))

	_, err := svc.ListClients(context.Background(), actor)
	require.Error(t, err)
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/kelvin100238453/gympro-backend/internal/config"
	"github.com/kelvin100238453/gympro-backend/internal/models"
	"github.com/kelvin100238453/gympro-backend/internal/storage"
	"github.com/kelvin100238453/gympro-backend/mocks"
)

func testCfg() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:       "unit-secret",
		AccessTokenTTL:  30 * time.Second,
		RefreshTokenTTL: 24 * time.Hour,
		Issuer:          "gympro-backend",
		Audience:        []string{"gympro-app"},
	}
}

func newSvc(t *testing.T) (*Service, *mocks.MockStorage, *gomock.Controller) {
	t.Helper()
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStorage(ctrl)
	svc := New(st, testCfg())
	return svc, st, ctrl
}

func mustHashPW(t *testing.T, pw string) string {
	t.Helper()
	h, err := hashPassword(pw)
	require.NoError(t, err)
	return h
}

func TestRegisterTrainer_OK(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	ctx := context.Background()
	email := "Coach@Example.com"
	norm := "coach@example.com"
	pw := "Abcdef1!"

	// Сначала TrainerByEmail → ErrNotFound, потом SaveTrainer, потом SaveRefreshToken.
	st.EXPECT().TrainerByEmail(gomock.Any(), norm).Return(nil, storage.ErrNotFound)
	st.EXPECT().SaveTrainer(gomock.Any(), gomock.Any()).Return(nil)
	st.EXPECT().SaveRefreshToken(gomock.Any(), gomock.Any()).Return(nil)

	tp, trainer, err := svc.RegisterTrainer(ctx, "Coach", email, pw)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, trainer.ID)
	require.Equal(t, norm, trainer.Email)
	require.NotEmpty(t, tp.AccessToken)
	require.NotEmpty(t, tp.RefreshToken)

	require.WithinDuration(t, time.Now().Add(svc.cfg.AccessTokenTTL), tp.AccessExpiresAt, 2*time.Second)
}

func TestRegisterTrainer_EmptyPassword_NoStorageCalls(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	// Пустой пароль должен отклоняться до любого обращения к хранилищу:
	// мок без EXPECT-ов упадёт, если поход в БД всё же случится.
	_, _, err := svc.RegisterTrainer(context.Background(), "Coach", "coach@example.com", "")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrEmptyPassword)
}

func TestRegisterTrainer_InvalidEmail(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, _, err := svc.RegisterTrainer(context.Background(), "Coach", "not-an-email", "Abcdef1!")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRegisterTrainer_EmailAlreadyExists_OnLookup(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	// Если TrainerByEmail вернул тренера (err == nil) - email занят.
	st.EXPECT().TrainerByEmail(gomock.Any(), "coach@example.com").
		Return(&models.Trainer{ID: uuid.New(), Email: "coach@example.com"}, nil)

	_, _, err := svc.RegisterTrainer(context.Background(), "Coach", "coach@example.com", "Abcdef1!")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterTrainer_SaveAlreadyExists_MapsToEmailTaken(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	// Гонка check-then-insert: проверка прошла, но INSERT упёрся в UNIQUE.
	st.EXPECT().TrainerByEmail(gomock.Any(), "coach@example.com").
		Return(nil, storage.ErrNotFound)
	st.EXPECT().SaveTrainer(gomock.Any(), gomock.Any()).
		Return(storage.ErrAlreadyExists)

	_, _, err := svc.RegisterTrainer(context.Background(), "Coach", "coach@example.com", "Abcdef1!")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterTrainer_StorageErrors_Propagated(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().TrainerByEmail(gomock.Any(), "coach@example.com").
		Return(nil, errors.New("db down"))

	_, _, err := svc.RegisterTrainer(context.Background(), "Coach", "coach@example.com", "Abcdef1!")
	require.Error(t, err)

	st.EXPECT().TrainerByEmail(gomock.Any(), "coach@example.com").
		Return(nil, storage.ErrNotFound)
	st.EXPECT().SaveTrainer(gomock.Any(), gomock.Any()).
		Return(errors.New("insert failed"))

	_, _, err = svc.RegisterTrainer(context.Background(), "Coach", "coach@example.com", "Abcdef1!")
	require.Error(t, err)
}

func TestLoginTrainer_OK(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	ctx := context.Background()
	email := "coach@example.com"
	pw := "Abcdef1!"
	trainer := &models.Trainer{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: mustHashPW(t, pw),
	}

	st.EXPECT().TrainerByEmail(gomock.Any(), email).Return(trainer, nil)
	st.EXPECT().SaveRefreshToken(gomock.Any(), gomock.Any()).Return(nil)

	tp, got, err := svc.LoginTrainer(ctx, email, pw)
	require.NoError(t, err)
	require.Equal(t, trainer.ID, got.ID)
	require.NotEmpty(t, tp.AccessToken)
	require.NotEmpty(t, tp.RefreshToken)
}

func TestLoginTrainer_InvalidEmail_OrEmptyPassword(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, _, err := svc.LoginTrainer(context.Background(), "bad", "Abcdef1!")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.LoginTrainer(context.Background(), "coach@example.com", "")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginTrainer_NotFound_OrWrongPassword_Indistinguishable(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	// Неизвестный email и неверный пароль дают одну и ту же ошибку.
	st.EXPECT().TrainerByEmail(gomock.Any(), "coach@example.com").
		Return(nil, storage.ErrNotFound)

	_, _, errNotFound := svc.LoginTrainer(context.Background(), "coach@example.com", "Abcdef1!")
	require.Error(t, errNotFound)
	require.ErrorIs(t, errNotFound, ErrInvalidCredentials)

	trainer := &models.Trainer{ID: uuid.New(), Email: "coach@example.com", PasswordHash: mustHashPW(t, "Abcdef1!")}
	st.EXPECT().TrainerByEmail(gomock.Any(), "coach@example.com").
		Return(trainer, nil)

	_, _, errWrongPW := svc.LoginTrainer(context.Background(), "coach@example.com", "WRONG1!")
	require.Error(t, errWrongPW)
	require.ErrorIs(t, errWrongPW, ErrInvalidCredentials)
}

func TestLoginClient_OK(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	pw := "Abcdef1!"
	client := &models.Client{
		ID:           uuid.New(),
		TrainerID:    uuid.New(),
		Name:         "ivan",
		PasswordHash: mustHashPW(t, pw),
	}

	st.EXPECT().ClientByName(gomock.Any(), "ivan").Return(client, nil)
	st.EXPECT().SaveRefreshToken(gomock.Any(), gomock.Any()).Return(nil)

	tp, got, err := svc.LoginClient(context.Background(), " ivan ", pw)
	require.NoError(t, err)
	require.Equal(t, client.ID, got.ID)
	require.NotEmpty(t, tp.AccessToken)
	require.NotEmpty(t, tp.RefreshToken)
}

func TestLoginClient_NotFound_OrWrongPassword(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().ClientByName(gomock.Any(), "ivan").Return(nil, storage.ErrNotFound)

	_, _, err := svc.LoginClient(context.Background(), "ivan", "Abcdef1!")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidCredentials)

	client := &models.Client{ID: uuid.New(), Name: "ivan", PasswordHash: mustHashPW(t, "Abcdef1!")}
	st.EXPECT().ClientByName(gomock.Any(), "ivan").Return(client, nil)

	_, _, err = svc.LoginClient(context.Background(), "ivan", "WRONG1!")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.LoginClient(context.Background(), "", "Abcdef1!")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshToken_OK_WithRotation(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	ctx := context.Background()
	clientID := uuid.New()

	plain := "some-refresh-plain"
	hash := refreshHash(plain)

	st.EXPECT().RefreshTokenByHash(gomock.Any(), hash).Return(&models.RefreshToken{
		RefreshTokenHash: hash,
		PrincipalID:      clientID,
		Role:             models.RoleClient,
		CreatedAt:        time.Now().Add(-time.Hour),
		ExpiresAt:        time.Now().Add(time.Hour),
		Revoked:          false,
	}, nil)

	st.EXPECT().RevokeRefreshTokenIfActive(gomock.Any(), hash).Return(true, nil)

	st.EXPECT().SaveRefreshToken(gomock.Any(), gomock.Any()).Return(nil)

	tp, principal, err := svc.RefreshToken(ctx, plain)
	require.NoError(t, err)
	require.Equal(t, clientID, principal.ID)
	require.Equal(t, models.RoleClient, principal.Role)
	require.NotEmpty(t, tp.AccessToken)
	require.NotEmpty(t, tp.RefreshToken)
	require.NotEqual(t, plain, tp.RefreshToken)
}

func TestRefreshToken_NotFound_Revoked_Expired(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	plain := "r"
	hash := refreshHash(plain)

	// Not found -> ErrInvalidToken.
	st.EXPECT().RefreshTokenByHash(gomock.Any(), hash).Return(nil, storage.ErrNotFound)
	_, _, err := svc.RefreshToken(context.Background(), plain)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidToken)

	// Revoked.
	st.EXPECT().RefreshTokenByHash(gomock.Any(), hash).Return(&models.RefreshToken{
		RefreshTokenHash: hash, PrincipalID: uuid.New(), Role: models.RoleClient,
		CreatedAt: time.Now().Add(-time.Hour),
		ExpiresAt: time.Now().Add(time.Hour), Revoked: true,
	}, nil)
	_, _, err = svc.RefreshToken(context.Background(), plain)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrTokenRevoked)

	// Expired.
	st.EXPECT().RefreshTokenByHash(gomock.Any(), hash).Return(&models.RefreshToken{
		RefreshTokenHash: hash, PrincipalID: uuid.New(), Role: models.RoleClient,
		CreatedAt: time.Now().Add(-2 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Minute), Revoked: false,
	}, nil)
	_, _, err = svc.RefreshToken(context.Background(), plain)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestRefreshToken_RotationNotFound_OrAlreadyRevoked_MapToErrors(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	ctx := context.Background()
	plain := "r"
	hash := refreshHash(plain)
	clientID := uuid.New()

	valid := &models.RefreshToken{
		RefreshTokenHash: hash, PrincipalID: clientID, Role: models.RoleClient,
		CreatedAt: time.Now().Add(-time.Hour),
		ExpiresAt: time.Now().Add(time.Hour), Revoked: false,
	}

	// При ротации старый не найден -> ErrInvalidToken.
	st.EXPECT().RefreshTokenByHash(gomock.Any(), hash).Return(valid, nil)
	st.EXPECT().RevokeRefreshTokenIfActive(gomock.Any(), hash).Return(false, storage.ErrNotFound)
	_, _, err := svc.RefreshToken(ctx, plain)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidToken)

	// Повтор: валиден на чтении, но revoke = false -> кто-то успел раньше -> ErrTokenRevoked.
	st.EXPECT().RefreshTokenByHash(gomock.Any(), hash).Return(valid, nil)
	st.EXPECT().RevokeRefreshTokenIfActive(gomock.Any(), hash).Return(false, nil)
	_, _, err = svc.RefreshToken(ctx, plain)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrTokenRevoked)
}

func TestRefreshToken_StorageErrors_Propagated(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	plain := "r"
	hash := refreshHash(plain)
	clientID := uuid.New()

	// Ошибка на чтении токена.
	st.EXPECT().RefreshTokenByHash(gomock.Any(), hash).Return(nil, errors.New("db get fail"))
	_, _, err := svc.RefreshToken(context.Background(), plain)
	require.Error(t, err)

	// Ошибка при revoke старого refresh.
	st.EXPECT().RefreshTokenByHash(gomock.Any(), hash).Return(&models.RefreshToken{
		RefreshTokenHash: hash, PrincipalID: clientID, Role: models.RoleClient,
		CreatedAt: time.Now().Add(-time.Hour),
		ExpiresAt: time.Now().Add(time.Hour), Revoked: false,
	}, nil)
	st.EXPECT().RevokeRefreshTokenIfActive(gomock.Any(), hash).Return(false, errors.New("db revoke fail"))
	_, _, err = svc.RefreshToken(context.Background(), plain)
	require.Error(t, err)
}

func TestHashPassword_NeverEqualForSamePassword(t *testing.T) {
	t.Parallel()

	h1 := mustHashPW(t, "Abcdef1!")
	h2 := mustHashPW(t, "Abcdef1!")
	require.NotEqual(t, h1, h2)

	require.True(t, checkPassword(h1, "Abcdef1!"))
	require.True(t, checkPassword(h2, "Abcdef1!"))
	require.False(t, checkPassword(h1, "other"))
}

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/kelvin100238453/gympro-backend/internal/models"
	"github.com/kelvin100238453/gympro-backend/internal/storage"
)

func TestSaveRefreshToken_OK_and_HashCollision(t *testing.T) {
	st, mock := newDB(t)
	defer mock.Close()
	ctx := context.Background()

	now := time.Now().UTC()
	token := &models.RefreshToken{
		RefreshTokenHash: "hash-1",
		PrincipalID:      uuid.New(),
		Role:             models.RoleClient,
		CreatedAt:        now,
		ExpiresAt:        now.Add(24 * time.Hour),
		Revoked:          false,
	}

	mock.ExpectExec(`INSERT INTO refresh_tokens\(token_hash, principal_id, role, created_at, expires_at, revoked\)\s+VALUES \(\$1, \$2, \$3, \$4, \$5, \$6\)`).
		WithArgs(token.RefreshTokenHash, token.PrincipalID, string(token.Role),
			token.CreatedAt, token.ExpiresAt, token.Revoked).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, st.SaveRefreshToken(ctx, token))

	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WithArgs(token.RefreshTokenHash, token.PrincipalID, string(token.Role),
			token.CreatedAt, token.ExpiresAt, token.Revoked).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	err := st.SaveRefreshToken(ctx, token)
	require.ErrorIs(t, err, storage.ErrAlreadyExists)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenByHash_OK_and_NotFound(t *testing.T) {
	st, mock := newDB(t)
	defer mock.Close()
	ctx := context.Background()

	pid := uuid.New()
	now := time.Now().UTC()
	cols := []string{"token_hash", "principal_id", "role", "created_at", "expires_at", "revoked"}

	mock.ExpectQuery(`SELECT token_hash, principal_id, role, created_at, expires_at, revoked\s+FROM refresh_tokens\s+WHERE token_hash = \$1`).
		WithArgs("hash-1").
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow("hash-1", pid, "trainer", now, now.Add(time.Hour), false))

	token, err := st.RefreshTokenByHash(ctx, "hash-1")
	require.NoError(t, err)
	require.Equal(t, pid, token.PrincipalID)
	require.Equal(t, models.RoleTrainer, token.Role)
	require.False(t, token.Revoked)

	mock.ExpectQuery(`SELECT token_hash, principal_id, role, created_at, expires_at, revoked`).
		WithArgs("absent").
		WillReturnError(pgx.ErrNoRows)

	_, err = st.RefreshTokenByHash(ctx, "absent")
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRevokeRefreshTokenIfActive_States(t *testing.T) {
	st, mock := newDB(t)
	defer mock.Close()
	ctx := context.Background()

	upd := `UPDATE refresh_tokens\s+SET revoked = TRUE\s+WHERE token_hash = \$1 AND revoked = FALSE\s+RETURNING principal_id`
	sel := `SELECT revoked\s+FROM refresh_tokens\s+WHERE token_hash = \$1`

	// Активный токен: условный UPDATE вернул строку.
	mock.ExpectQuery(upd).
		WithArgs("active").
		WillReturnRows(pgxmock.NewRows([]string{"principal_id"}).AddRow(uuid.New().String()))

	revoked, err := st.RevokeRefreshTokenIfActive(ctx, "active")
	require.NoError(t, err)
	require.True(t, revoked)

	// Уже отозванный: UPDATE без строк, SELECT подтверждает revoked = TRUE.
	mock.ExpectQuery(upd).
		WithArgs("used").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(sel).
		WithArgs("used").
		WillReturnRows(pgxmock.NewRows([]string{"revoked"}).AddRow(true))

	revoked, err = st.RevokeRefreshTokenIfActive(ctx, "used")
	require.NoError(t, err)
	require.False(t, revoked)

	// Несуществующий: ни UPDATE, ни SELECT не нашли строку.
	mock.ExpectQuery(upd).
		WithArgs("absent").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(sel).
		WithArgs("absent").
		WillReturnError(pgx.ErrNoRows)

	revoked, err = st.RevokeRefreshTokenIfActive(ctx, "absent")
	require.ErrorIs(t, err, storage.ErrNotFound)
	require.False(t, revoked)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteExpiredTokens(t *testing.T) {
	st, mock := newDB(t)
	defer mock.Close()

	now := time.Now().UTC()

	mock.ExpectExec(`DELETE FROM refresh_tokens\s+WHERE expires_at <= \$1`).
		WithArgs(now).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	require.NoError(t, st.DeleteExpiredTokens(context.Background(), now))
	require.NoError(t, mock.ExpectationsWereMet())
}

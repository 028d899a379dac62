package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"whenworks/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{"id", "email", "display_name", "password_hash", "salt", "created_at", "updated_at"}

func TestUserRepository_Create(t *testing.T) {
	now := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	user := &domain.User{
		Email:        "alice@example.com",
		DisplayName:  "Alice",
		PasswordHash: "hash",
		Salt:         "salt",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs("alice@example.com", "Alice", "hash", "salt", now, now).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("user-uuid-1"))

		repo := NewUserRepository(db)
		require.NoError(t, repo.Create(context.Background(), user))
		require.Equal(t, "user-uuid-1", user.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnError(&pq.Error{Code: "23505"})

		repo := NewUserRepository(db)
		err = repo.Create(context.Background(), user)
		require.ErrorIs(t, err, domain.ErrDuplicateEmail)
	})
}

func TestUserRepository_GetByEmail(t *testing.T) {
	now := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, email, display_name, password_hash, salt`).
			WithArgs("alice@example.com").
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow("user-1", "alice@example.com", "Alice", "hash", "salt", now, now))

		repo := NewUserRepository(db)
		u, err := repo.GetByEmail(context.Background(), "alice@example.com")
		require.NoError(t, err)
		require.Equal(t, "user-1", u.ID)
		require.Equal(t, "Alice", u.DisplayName)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, email, display_name, password_hash, salt`).
			WithArgs("missing@example.com").
			WillReturnError(sql.ErrNoRows)

		repo := NewUserRepository(db)
		_, err = repo.GetByEmail(context.Background(), "missing@example.com")
		require.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestUserRepository_GetByIDs(t *testing.T) {
	now := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	t.Run("empty input skips the query", func(t *testing.T) {
		db, _, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewUserRepository(db)
		users, err := repo.GetByIDs(context.Background(), nil)
		require.NoError(t, err)
		require.Empty(t, users)
	})

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, email, display_name, password_hash, salt`).
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow("user-1", "alice@example.com", "Alice", "h", "s", now, now).
				AddRow("user-2", "bob@example.com", "Bob", "h", "s", now, now))

		repo := NewUserRepository(db)
		users, err := repo.GetByIDs(context.Background(), []string{"user-1", "user-2"})
		require.NoError(t, err)
		require.Len(t, users, 2)
	})
}

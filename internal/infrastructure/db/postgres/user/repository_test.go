package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "user-registry-api/internal/domain/user"
)

var columns = []string{"id", "full_name", "email", "state", "password_hash", "created_at", "updated_at"}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func someUser() domain.User {
	return domain.NewUser("Pavel Gichevski", "pavel.gichevski@gmail.com", "hashedPassword", time.Now())
}

func TestRepository_CreateUser(t *testing.T) {
	ctx := context.Background()
	u := someUser()

	tests := []struct {
		name    string
		expect  func(m pgxmock.PgxPoolIface)
		wantErr error
		anyErr  bool
	}{
		{
			name: "inserted",
			expect: func(m pgxmock.PgxPoolIface) {
				m.ExpectQuery(InsertUser).
					WithArgs(u.UUID, u.FullName, u.Email, "ACTIVE", u.PasswordHash, u.CreatedAt, u.UpdatedAt).
					WillReturnRows(pgxmock.NewRows(columns).
						AddRow(u.UUID, u.FullName, u.Email, "ACTIVE", u.PasswordHash, u.CreatedAt, u.UpdatedAt))
			},
		},
		{
			name: "duplicate email",
			expect: func(m pgxmock.PgxPoolIface) {
				m.ExpectQuery(InsertUser).
					WithArgs(u.UUID, u.FullName, u.Email, "ACTIVE", u.PasswordHash, u.CreatedAt, u.UpdatedAt).
					WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_uidx"})
			},
			wantErr: domain.ErrEmailAlreadyExists,
		},
		{
			name: "connection lost",
			expect: func(m pgxmock.PgxPoolIface) {
				m.ExpectQuery(InsertUser).
					WithArgs(u.UUID, u.FullName, u.Email, "ACTIVE", u.PasswordHash, u.CreatedAt, u.UpdatedAt).
					WillReturnError(errors.New("conn closed"))
			},
			anyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			tt.expect(mock)

			got, err := NewRepository(mock).CreateUser(ctx, u)
			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			case tt.anyErr:
				require.Error(t, err)
				assert.NotErrorIs(t, err, domain.ErrEmailAlreadyExists)
				assert.Nil(t, got)
			default:
				require.NoError(t, err)
				require.NotNil(t, got)
				assert.Equal(t, u, *got)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_FetchUserByID(t *testing.T) {
	ctx := context.Background()
	u := someUser()

	t.Run("found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(SelectUserByID).
			WithArgs(u.UUID).
			WillReturnRows(pgxmock.NewRows(columns).
				AddRow(u.UUID, u.FullName, u.Email, "ACTIVE", u.PasswordHash, u.CreatedAt, u.UpdatedAt))

		got, err := NewRepository(mock).FetchUserByID(ctx, u.UUID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, u.Email, got.Email)
		assert.Equal(t, domain.StateActive, got.State)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent", func(t *testing.T) {
		mock := newMock(t)
		id := uuid.New()
		mock.ExpectQuery(SelectUserByID).
			WithArgs(id).
			WillReturnError(pgx.ErrNoRows)

		got, err := NewRepository(mock).FetchUserByID(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		mock := newMock(t)
		id := uuid.New()
		mock.ExpectQuery(SelectUserByID).
			WithArgs(id).
			WillReturnError(errors.New("db down"))

		got, err := NewRepository(mock).FetchUserByID(ctx, id)
		require.Error(t, err)
		assert.Nil(t, got)
	})
}

func TestRepository_FetchUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("empty", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(SelectUsers).WillReturnRows(pgxmock.NewRows(columns))

		got, err := NewRepository(mock).FetchUsers(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Empty(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("many", func(t *testing.T) {
		mock := newMock(t)
		a := someUser()
		b := domain.NewUser("John Doe", "johndoe@gmail.com", "otherHash", time.Now())
		mock.ExpectQuery(SelectUsers).WillReturnRows(pgxmock.NewRows(columns).
			AddRow(a.UUID, a.FullName, a.Email, "ACTIVE", a.PasswordHash, a.CreatedAt, a.UpdatedAt).
			AddRow(b.UUID, b.FullName, b.Email, "ACTIVE", b.PasswordHash, b.CreatedAt, b.UpdatedAt))

		got, err := NewRepository(mock).FetchUsers(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Pavel Gichevski", got[0].FullName)
		assert.Equal(t, "John Doe", got[1].FullName)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(SelectUsers).WillReturnError(errors.New("db down"))

		got, err := NewRepository(mock).FetchUsers(ctx)
		require.Error(t, err)
		assert.Nil(t, got)
	})
}

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uservault/backend/internal/database"
	"github.com/uservault/backend/internal/models"
	"github.com/uservault/backend/internal/repository"
	"github.com/uservault/backend/internal/utils"
)

var userColumns = []string{
	"user_id", "name", "email", "phone", "password_hash",
	"image_path", "is_admin", "created_at", "updated_at",
}

// setupUserRepositoryTest creates a new test database connection and mock
func setupUserRepositoryTest(t *testing.T) (repository.UserRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	dbPool := &database.Pool{DB: db}
	repo := repository.NewUserRepository(dbPool)

	return repo, mock, func() {
		db.Close()
	}
}

func userRow(id int64, name, email string, isAdmin bool) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(userColumns).
		AddRow(id, name, email, "1234567890", "hashed_password", nil, isAdmin, now, now)
}

func TestUserRepository_Create(t *testing.T) {
	repo, mock, cleanup := setupUserRepositoryTest(t)
	defer cleanup()

	user := &models.User{
		Name:         "Test User",
		Email:        "test@example.com",
		Phone:        "1234567890",
		PasswordHash: "hashed_password",
	}

	rows := sqlmock.NewRows([]string{"user_id"}).AddRow(1)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.Name, user.Email, user.Phone, user.PasswordHash, "", false, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(rows)

	err := repo.Create(context.Background(), user)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), user.ID) // ID set from RETURNING clause
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	repo, mock, cleanup := setupUserRepositoryTest(t)
	defer cleanup()

	user := &models.User{
		Name:         "Test User",
		Email:        "taken@example.com",
		Phone:        "1234567890",
		PasswordHash: "hashed_password",
	}

	pqErr := &pq.Error{Code: "23505", Constraint: "users_email_key"}
	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.Name, user.Email, user.Phone, user.PasswordHash, "", false, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(pqErr)

	err := repo.Create(context.Background(), user)

	assert.Error(t, err)
	assert.True(t, utils.IsDuplicateError(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByID(t *testing.T) {
	repo, mock, cleanup := setupUserRepositoryTest(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(int64(1)).
		WillReturnRows(userRow(1, "Test User", "test@example.com", false))

	user, err := repo.GetByID(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "test@example.com", user.Email)
	assert.False(t, user.IsAdmin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	repo, mock, cleanup := setupUserRepositoryTest(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(userColumns))

	user, err := repo.GetByID(context.Background(), 404)

	assert.Error(t, err)
	assert.Nil(t, user)
	assert.True(t, utils.IsNotFoundError(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByEmailAndRole(t *testing.T) {
	repo, mock, cleanup := setupUserRepositoryTest(t)
	defer cleanup()

	t.Run("Admin lookup matches admin record", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users").
			WithArgs("admin@example.com", true).
			WillReturnRows(userRow(2, "Admin", "admin@example.com", true))

		user, err := repo.GetByEmailAndRole(context.Background(), "admin@example.com", models.RoleAdmin)

		assert.NoError(t, err)
		assert.True(t, user.IsAdmin)
	})

	t.Run("User lookup never matches admin record", func(t *testing.T) {
		// The same email scoped to the user role returns no rows
		mock.ExpectQuery("SELECT (.+) FROM users").
			WithArgs("admin@example.com", false).
			WillReturnRows(sqlmock.NewRows(userColumns))

		user, err := repo.GetByEmailAndRole(context.Background(), "admin@example.com", models.RoleUser)

		assert.Error(t, err)
		assert.Nil(t, user)
		assert.True(t, utils.IsNotFoundError(err))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Update(t *testing.T) {
	repo, mock, cleanup := setupUserRepositoryTest(t)
	defer cleanup()

	user := &models.User{
		ID:    1,
		Name:  "Renamed",
		Email: "renamed@example.com",
		Phone: "0987654321",
	}

	mock.ExpectExec("UPDATE users").
		WithArgs(user.Name, user.Email, user.Phone, sqlmock.AnyArg(), user.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), user)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Update_NotFound(t *testing.T) {
	repo, mock, cleanup := setupUserRepositoryTest(t)
	defer cleanup()

	user := &models.User{ID: 404, Name: "Ghost", Email: "ghost@example.com"}

	mock.ExpectExec("UPDATE users").
		WithArgs(user.Name, user.Email, user.Phone, sqlmock.AnyArg(), user.ID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), user)

	assert.Error(t, err)
	assert.True(t, utils.IsNotFoundError(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateImagePath(t *testing.T) {
	repo, mock, cleanup := setupUserRepositoryTest(t)
	defer cleanup()

	mock.ExpectExec("UPDATE users").
		WithArgs("1712345678_avatar.png", sqlmock.AnyArg(), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateImagePath(context.Background(), 1, "1712345678_avatar.png")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Delete(t *testing.T) {
	repo, mock, cleanup := setupUserRepositoryTest(t)
	defer cleanup()

	mock.ExpectExec("DELETE FROM users").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), 1)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Delete_NotFound(t *testing.T) {
	repo, mock, cleanup := setupUserRepositoryTest(t)
	defer cleanup()

	mock.ExpectExec("DELETE FROM users").
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 404)

	assert.Error(t, err)
	assert.True(t, utils.IsNotFoundError(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ExistsByEmail(t *testing.T) {
	repo, mock, cleanup := setupUserRepositoryTest(t)
	defer cleanup()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("taken@example.com", int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByEmail(context.Background(), "taken@example.com", 0)

	assert.NoError(t, err)
	assert.True(t, exists)

	// Excluding the owner's own ID lets a profile update keep its email
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("taken@example.com", int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err = repo.ExistsByEmail(context.Background(), "taken@example.com", 7)

	assert.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ListByRole(t *testing.T) {
	repo, mock, cleanup := setupUserRepositoryTest(t)
	defer cleanup()

	now := time.Now()
	rows := sqlmock.NewRows(userColumns).
		AddRow(int64(3), "Newest", "new@example.com", "111", "hash", nil, false, now, now).
		AddRow(int64(1), "Oldest", "old@example.com", "222", "hash", "123_pic.png", false, now.Add(-time.Hour), now.Add(-time.Hour))

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(false).
		WillReturnRows(rows)

	users, err := repo.ListByRole(context.Background(), models.RoleUser)

	assert.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "new@example.com", users[0].Email)
	assert.Equal(t, "123_pic.png", users[1].ImagePath)
	assert.NoError(t, mock.ExpectationsWereMet())
}

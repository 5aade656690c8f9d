// Package repository implements data access for the application's principals.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/uservault/backend/internal/database"
	"github.com/uservault/backend/internal/models"
	"github.com/uservault/backend/internal/utils"
)

// UserRepository defines methods for interacting with user data
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByEmailAndRole(ctx context.Context, email string, role models.Role) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdateImagePath(ctx context.Context, id int64, imagePath string) error
	Delete(ctx context.Context, id int64) error
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	ListByRole(ctx context.Context, role models.Role) ([]*models.User, error)
}

// PostgresUserRepository is a PostgreSQL implementation of UserRepository
type PostgresUserRepository struct {
	db *database.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *database.Pool) UserRepository {
	return &PostgresUserRepository{
		db: db,
	}
}

const userColumns = "user_id, name, email, phone, password_hash, image_path, is_admin, created_at, updated_at"

// scanUser reads one user row in the userColumns order
func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var imagePath sql.NullString
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.PasswordHash,
		&imagePath,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.ImagePath = imagePath.String
	return user, nil
}

// Create adds a new user to the database
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	startTime := time.Now()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
        INSERT INTO users (name, email, phone, password_hash, image_path, is_admin, created_at, updated_at)
        VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8)
        RETURNING user_id
    `

	err := r.db.QueryRowContext(
		ctx,
		query,
		user.Name,
		user.Email,
		user.Phone,
		user.PasswordHash,
		user.ImagePath,
		user.IsAdmin,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)

	utils.LogDBQuery(
		query,
		[]interface{}{user.Name, user.Email, user.Phone, "[REDACTED]", user.ImagePath, user.IsAdmin, user.CreatedAt, user.UpdatedAt},
		time.Since(startTime),
		err,
	)

	if err != nil {
		// 23505 is the PostgreSQL error code for unique_violation
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" && strings.Contains(pqErr.Constraint, "email") {
				return utils.NewDuplicateError("User", "email", user.Email)
			}
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	log.Info().
		Int64("user_id", user.ID).
		Str("email", user.Email).
		Bool("is_admin", user.IsAdmin).
		Msg("User created")

	return nil
}

// GetByID retrieves a user by ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	startTime := time.Now()

	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE user_id = $1
    `

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))

	utils.LogDBQuery(query, []interface{}{id}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("User", id)
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return user, nil
}

// GetByEmail retrieves a user by email regardless of role
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	startTime := time.Now()

	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE LOWER(email) = LOWER($1)
    `

	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))

	utils.LogDBQuery(query, []interface{}{email}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("User", email)
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// GetByEmailAndRole retrieves a user by email scoped to a role.
// Login lookups use this so a user credential is never accepted on the admin
// login endpoint and vice versa; a role mismatch reads as "not found".
func (r *PostgresUserRepository) GetByEmailAndRole(ctx context.Context, email string, role models.Role) (*models.User, error) {
	startTime := time.Now()

	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE LOWER(email) = LOWER($1) AND is_admin = $2
    `

	user, err := scanUser(r.db.QueryRowContext(ctx, query, email, role == models.RoleAdmin))

	utils.LogDBQuery(query, []interface{}{email, role}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("User", email)
		}
		return nil, fmt.Errorf("failed to get user by email and role: %w", err)
	}

	return user, nil
}

// Update modifies an existing user's profile fields.
// The admin flag and password hash are not touched here; the flag is
// immutable through this path and passwords change via dedicated flows.
func (r *PostgresUserRepository) Update(ctx context.Context, user *models.User) error {
	startTime := time.Now()

	user.UpdatedAt = time.Now()

	query := `
        UPDATE users
        SET name = $1, email = $2, phone = $3, updated_at = $4
        WHERE user_id = $5
    `

	result, err := r.db.ExecContext(
		ctx,
		query,
		user.Name,
		user.Email,
		user.Phone,
		user.UpdatedAt,
		user.ID,
	)

	utils.LogDBQuery(
		query,
		[]interface{}{user.Name, user.Email, user.Phone, user.UpdatedAt, user.ID},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" && strings.Contains(pqErr.Constraint, "email") {
				return utils.NewDuplicateError("User", "email", user.Email)
			}
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return utils.NewNotFoundError("User", user.ID)
	}

	return nil
}

// UpdateImagePath stores the relative path of a freshly uploaded profile image
func (r *PostgresUserRepository) UpdateImagePath(ctx context.Context, id int64, imagePath string) error {
	startTime := time.Now()

	query := `
        UPDATE users
        SET image_path = $1, updated_at = $2
        WHERE user_id = $3
    `

	result, err := r.db.ExecContext(ctx, query, imagePath, time.Now(), id)

	utils.LogDBQuery(query, []interface{}{imagePath, id}, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to update image path: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return utils.NewNotFoundError("User", id)
	}

	return nil
}

// Delete removes a user from the database
func (r *PostgresUserRepository) Delete(ctx context.Context, id int64) error {
	startTime := time.Now()

	query := `
        DELETE FROM users
        WHERE user_id = $1
    `

	result, err := r.db.ExecContext(ctx, query, id)

	utils.LogDBQuery(query, []interface{}{id}, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return utils.NewNotFoundError("User", id)
	}

	log.Info().Int64("user_id", id).Msg("User deleted")

	return nil
}

// ExistsByEmail checks whether an email is already taken.
// excludeID lets profile updates skip the caller's own record; pass 0 to
// check against every record.
func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	startTime := time.Now()

	query := `
        SELECT EXISTS (
            SELECT 1 FROM users
            WHERE LOWER(email) = LOWER($1) AND user_id != $2
        )
    `

	var exists bool
	err := r.db.QueryRowContext(ctx, query, email, excludeID).Scan(&exists)

	utils.LogDBQuery(query, []interface{}{email, excludeID}, time.Since(startTime), err)

	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}

	return exists, nil
}

// ListByRole retrieves all users with the given role, newest first.
// The admin dashboard uses this to list managed (non-admin) accounts.
func (r *PostgresUserRepository) ListByRole(ctx context.Context, role models.Role) ([]*models.User, error) {
	startTime := time.Now()

	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE is_admin = $1
        ORDER BY created_at DESC
    `

	rows, err := r.db.QueryContext(ctx, query, role == models.RoleAdmin)

	utils.LogDBQuery(query, []interface{}{role}, time.Since(startTime), err)

	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		var imagePath sql.NullString
		if err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.Phone,
			&user.PasswordHash,
			&imagePath,
			&user.IsAdmin,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		user.ImagePath = imagePath.String
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user rows: %w", err)
	}

	return users, nil
}

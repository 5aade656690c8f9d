package migrations

import (
	"context"
	"database/sql"
)

// createUsersTable creates the users table
func createUsersTable() Migration {
	return Migration{
		Name:        "create_users_table",
		Description: "Creates the users table",
		TableName:   "users",
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			query := `
				CREATE TABLE IF NOT EXISTS users (
					user_id BIGSERIAL PRIMARY KEY,
					name VARCHAR(100) NOT NULL,
					email VARCHAR(255) NOT NULL,
					phone VARCHAR(20) NOT NULL,
					password_hash VARCHAR(255) NOT NULL,
					image_path VARCHAR(255),
					is_admin BOOLEAN NOT NULL DEFAULT FALSE,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					CONSTRAINT idx_email UNIQUE (email)
				)
			`
			if _, err := tx.ExecContext(ctx, query); err != nil {
				return err
			}

			// Role-scoped logins filter on is_admin alongside email
			indexQuery := `CREATE INDEX IF NOT EXISTS idx_users_email_is_admin ON users(LOWER(email), is_admin)`
			_, err := tx.ExecContext(ctx, indexQuery)
			return err
		},
	}
}

package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"vaultspace/internal/domain"
	"vaultspace/internal/domain/models"
	"vaultspace/internal/domain/repositories"
	"vaultspace/internal/repository/postgres"
)

// PostgresUserRepository implements the UserRepository interface
type PostgresUserRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewUserRepository creates a new user repository
func NewUserRepository(config *postgres.RepositoryConfig) repositories.UserRepository {
	return &PostgresUserRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const userColumns = `id, email, username, hashed_password, first_name, last_name,
	avatar_url, date_of_birth, bio, created_at`

func scanUser(row interface{ Scan(...any) error }, u *models.User) error {
	return row.Scan(
		&u.ID,
		&u.Email,
		&u.Username,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.AvatarURL,
		&u.DateOfBirth,
		&u.Bio,
		&u.CreatedAt,
	)
}

// duplicateUserError names the field behind a unique violation on users
func duplicateUserError(err error, u *models.User) error {
	constraint := postgres.PgConstraintName(err)
	if strings.HasSuffix(constraint, "users_email_key") {
		return &domain.ConflictError{
			Message:      "email already registered",
			ResourceType: "user",
		}
	}
	return &domain.ConflictError{
		Message:      fmt.Sprintf("username '%s' already taken", u.Username),
		ResourceType: "user",
	}
}

// Create inserts a new user
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (email, username, hashed_password)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, r.tables.Users)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		user.Email,
		user.Username,
		user.PasswordHash,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return duplicateUserError(err, user)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *PostgresUserRepository) getBy(ctx context.Context, column string, value any) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, userColumns, r.tables.Users, column)

	var user models.User
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := scanUser(executor.QueryRow(ctx, query, value), &user); err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("user %v: %w", value, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// GetByID retrieves a user by ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getBy(ctx, "id", id)
}

// GetByUsername retrieves a user by username
func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getBy(ctx, "username", username)
}

// GetByEmail retrieves a user by email
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getBy(ctx, "email", email)
}

// UpdateProfile persists username and the optional profile fields
func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET username = $1, first_name = $2, last_name = $3, avatar_url = $4,
		    date_of_birth = $5, bio = $6
		WHERE id = $7
	`, r.tables.Users)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		user.Username,
		user.FirstName,
		user.LastName,
		user.AvatarURL,
		user.DateOfBirth,
		user.Bio,
		user.ID,
	)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return duplicateUserError(err, user)
		}
		return fmt.Errorf("update user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", user.ID, domain.ErrNotFound)
	}
	return nil
}

// RecentWorkspaces returns the user's latest memberships by membership id
func (r *PostgresUserRepository) RecentWorkspaces(ctx context.Context, userID int64, limit int) ([]models.RecentWorkspace, error) {
	query := fmt.Sprintf(`
		SELECT w.id, w.name, m.role
		FROM %s m
		JOIN %s w ON w.id = m.workspace_id
		WHERE m.user_id = $1
		ORDER BY m.id DESC
		LIMIT $2
	`, r.tables.WorkspaceMembers, r.tables.Workspaces)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent workspaces: %w", err)
	}
	defer rows.Close()

	recent := []models.RecentWorkspace{}
	for rows.Next() {
		var rw models.RecentWorkspace
		var role string
		if err := rows.Scan(&rw.ID, &rw.Name, &role); err != nil {
			return nil, fmt.Errorf("scan recent workspace: %w", err)
		}
		rw.Role = models.NormalizeRole(role)
		recent = append(recent, rw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recent workspaces: %w", err)
	}
	return recent, nil
}

package workspace

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"vaultspace/internal/domain"
	"vaultspace/internal/domain/models"
	"vaultspace/internal/domain/repositories"
	"vaultspace/internal/repository/postgres"
)

// PostgresMemberRepository implements the MemberRepository interface
type PostgresMemberRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewMemberRepository creates a new workspace member repository
func NewMemberRepository(config *postgres.RepositoryConfig) repositories.MemberRepository {
	return &PostgresMemberRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create adds a user to a workspace
func (r *PostgresMemberRepository) Create(ctx context.Context, member *models.WorkspaceMember) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (workspace_id, user_id, role)
		VALUES ($1, $2, $3)
		RETURNING id
	`, r.tables.WorkspaceMembers)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		member.WorkspaceID,
		member.UserID,
		string(member.Role),
	).Scan(&member.ID)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      "user is already a member of this workspace",
				ResourceType: "member",
				ResourceID:   strconv.FormatInt(member.UserID, 10),
			}
		}
		if postgres.IsPgForeignKeyError(err) {
			return fmt.Errorf("user %d: %w", member.UserID, domain.ErrNotFound)
		}
		return fmt.Errorf("create member: %w", err)
	}
	return nil
}

// Get retrieves a user's membership in a workspace
func (r *PostgresMemberRepository) Get(ctx context.Context, workspaceID, userID int64) (*models.WorkspaceMember, error) {
	query := fmt.Sprintf(`
		SELECT id, workspace_id, user_id, role
		FROM %s
		WHERE workspace_id = $1 AND user_id = $2
	`, r.tables.WorkspaceMembers)

	var m models.WorkspaceMember
	var role string
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, workspaceID, userID).Scan(&m.ID, &m.WorkspaceID, &m.UserID, &role)
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("member %d in workspace %d: %w", userID, workspaceID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get member: %w", err)
	}
	m.Role = models.NormalizeRole(role)
	return &m, nil
}

// List retrieves all memberships of a workspace
func (r *PostgresMemberRepository) List(ctx context.Context, workspaceID int64) ([]models.WorkspaceMember, error) {
	query := fmt.Sprintf(`
		SELECT id, workspace_id, user_id, role
		FROM %s
		WHERE workspace_id = $1
		ORDER BY id
	`, r.tables.WorkspaceMembers)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	members := []models.WorkspaceMember{}
	for rows.Next() {
		var m models.WorkspaceMember
		var role string
		if err := rows.Scan(&m.ID, &m.WorkspaceID, &m.UserID, &role); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		m.Role = models.NormalizeRole(role)
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate members: %w", err)
	}
	return members, nil
}

// ListUserIDs returns the user ids of every member of a workspace
func (r *PostgresMemberRepository) ListUserIDs(ctx context.Context, workspaceID int64) ([]int64, error) {
	query := fmt.Sprintf(`SELECT user_id FROM %s WHERE workspace_id = $1 ORDER BY user_id`, r.tables.WorkspaceMembers)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list member ids: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan member id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate member ids: %w", err)
	}
	return ids, nil
}

// UpdateRole changes a member's role
func (r *PostgresMemberRepository) UpdateRole(ctx context.Context, workspaceID, userID int64, role models.Role) error {
	query := fmt.Sprintf(`
		UPDATE %s SET role = $1
		WHERE workspace_id = $2 AND user_id = $3
	`, r.tables.WorkspaceMembers)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, string(role), workspaceID, userID)
	if err != nil {
		return fmt.Errorf("update member role: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("member %d in workspace %d: %w", userID, workspaceID, domain.ErrNotFound)
	}
	return nil
}

// Delete removes a user from a workspace
func (r *PostgresMemberRepository) Delete(ctx context.Context, workspaceID, userID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE workspace_id = $1 AND user_id = $2`, r.tables.WorkspaceMembers)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, workspaceID, userID)
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("member %d in workspace %d: %w", userID, workspaceID, domain.ErrNotFound)
	}
	return nil
}

// LockOwners locks the owner rows of a workspace and counts them.
// Must run inside a transaction for the lock to outlive the statement.
func (r *PostgresMemberRepository) LockOwners(ctx context.Context, workspaceID int64) (int, error) {
	query := fmt.Sprintf(`
		SELECT id FROM %s
		WHERE workspace_id = $1 AND lower(trim(role)) = 'owner'
		FOR UPDATE
	`, r.tables.WorkspaceMembers)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, workspaceID)
	if err != nil {
		return 0, fmt.Errorf("lock owners: %w", err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		count++
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("lock owners: %w", err)
	}
	return count, nil
}

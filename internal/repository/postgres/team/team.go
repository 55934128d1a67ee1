package team

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"vaultspace/internal/domain"
	"vaultspace/internal/domain/models"
	"vaultspace/internal/domain/repositories"
	"vaultspace/internal/repository/postgres"
)

// PostgresTeamRepository implements the TeamRepository interface
type PostgresTeamRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(config *postgres.RepositoryConfig) repositories.TeamRepository {
	return &PostgresTeamRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new team
func (r *PostgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, owner_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, r.tables.Teams)

	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, team.Name, team.OwnerID).Scan(&team.ID, &team.CreatedAt); err != nil {
		return fmt.Errorf("create team: %w", err)
	}
	return nil
}

// GetByID retrieves a team by ID
func (r *PostgresTeamRepository) GetByID(ctx context.Context, id int64) (*models.Team, error) {
	query := fmt.Sprintf(`SELECT id, name, owner_id, created_at FROM %s WHERE id = $1`, r.tables.Teams)

	var t models.Team
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name, &t.OwnerID, &t.CreatedAt); err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("team %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get team: %w", err)
	}
	return &t, nil
}

// ListForUser retrieves the teams a user belongs to
func (r *PostgresTeamRepository) ListForUser(ctx context.Context, userID int64) ([]models.Team, error) {
	query := fmt.Sprintf(`
		SELECT t.id, t.name, t.owner_id, t.created_at
		FROM %s t
		JOIN %s m ON m.team_id = t.id
		WHERE m.user_id = $1
		ORDER BY t.id
	`, r.tables.Teams, r.tables.TeamMembers)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	teams := []models.Team{}
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.OwnerID, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate teams: %w", err)
	}
	return teams, nil
}

// AddMember inserts a team membership unless the user already has one
func (r *PostgresTeamRepository) AddMember(ctx context.Context, member *models.TeamMember) (bool, error) {
	if member.Role == "" {
		member.Role = models.TeamRoleMember
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (team_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (team_id, user_id) DO NOTHING
		RETURNING id
	`, r.tables.TeamMembers)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, member.TeamID, member.UserID, member.Role).Scan(&member.ID)
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return false, nil
		}
		if postgres.IsPgForeignKeyError(err) {
			return false, fmt.Errorf("team %d or user %d: %w", member.TeamID, member.UserID, domain.ErrNotFound)
		}
		return false, fmt.Errorf("add team member: %w", err)
	}
	return true, nil
}

// GetMember retrieves a user's team membership
func (r *PostgresTeamRepository) GetMember(ctx context.Context, teamID, userID int64) (*models.TeamMember, error) {
	query := fmt.Sprintf(`
		SELECT id, team_id, user_id, role FROM %s
		WHERE team_id = $1 AND user_id = $2
	`, r.tables.TeamMembers)

	var m models.TeamMember
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, teamID, userID).Scan(&m.ID, &m.TeamID, &m.UserID, &m.Role); err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("member %d in team %d: %w", userID, teamID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get team member: %w", err)
	}
	return &m, nil
}

// ListMembers retrieves team members joined with their usernames and emails
func (r *PostgresTeamRepository) ListMembers(ctx context.Context, teamID int64) ([]models.TeamMemberDetail, error) {
	query := fmt.Sprintf(`
		SELECT m.id, m.team_id, m.user_id, m.role, u.username, u.email
		FROM %s m
		JOIN %s u ON u.id = m.user_id
		WHERE m.team_id = $1
		ORDER BY m.id
	`, r.tables.TeamMembers, r.tables.Users)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	defer rows.Close()

	members := []models.TeamMemberDetail{}
	for rows.Next() {
		var d models.TeamMemberDetail
		if err := rows.Scan(&d.ID, &d.TeamID, &d.UserID, &d.Role, &d.Username, &d.Email); err != nil {
			return nil, fmt.Errorf("scan team member: %w", err)
		}
		members = append(members, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate team members: %w", err)
	}
	return members, nil
}

// ListMemberUserIDs returns the user ids of every team member
func (r *PostgresTeamRepository) ListMemberUserIDs(ctx context.Context, teamID int64) ([]int64, error) {
	query := fmt.Sprintf(`SELECT user_id FROM %s WHERE team_id = $1 ORDER BY user_id`, r.tables.TeamMembers)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("list team member ids: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan team member id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate team member ids: %w", err)
	}
	return ids, nil
}

// AttachWorkspace links a workspace to a team; existing links are left alone
func (r *PostgresTeamRepository) AttachWorkspace(ctx context.Context, teamID, workspaceID int64) (bool, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (team_id, workspace_id)
		VALUES ($1, $2)
		ON CONFLICT (team_id, workspace_id) DO NOTHING
	`, r.tables.TeamWorkspaces)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, teamID, workspaceID)
	if err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return false, fmt.Errorf("team %d or workspace %d: %w", teamID, workspaceID, domain.ErrNotFound)
		}
		return false, fmt.Errorf("attach workspace: %w", err)
	}
	return result.RowsAffected() == 1, nil
}

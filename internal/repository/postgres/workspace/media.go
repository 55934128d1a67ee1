package workspace

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

// PostgresMediaRepository implements the MediaRepository interface
type PostgresMediaRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewMediaRepository creates a new media repository
func NewMediaRepository(config *postgres.RepositoryConfig) repositories.MediaRepository {
	return &PostgresMediaRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const mediaColumns = `id, workspace_id, uploaded_by, original_filename, stored_filename,
	stored_path, mime_type, size_bytes, description, tags, created_at`

func scanMedia(row interface{ Scan(...any) error }, m *models.Media) error {
	var tags *string
	err := row.Scan(
		&m.ID,
		&m.WorkspaceID,
		&m.UploadedBy,
		&m.OriginalFilename,
		&m.StoredFilename,
		&m.StoredPath,
		&m.MimeType,
		&m.SizeBytes,
		&m.Description,
		&tags,
		&m.CreatedAt,
	)
	if err != nil {
		return err
	}
	m.Tags = models.SplitTags(tags)
	return nil
}

func filenameConflict(m *models.Media) error {
	return &domain.ConflictError{
		Message:      fmt.Sprintf("file '%s' already exists in this workspace", m.OriginalFilename),
		ResourceType: "media",
	}
}

// Create inserts a media row
func (r *PostgresMediaRepository) Create(ctx context.Context, media *models.Media) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (workspace_id, uploaded_by, original_filename, stored_filename,
		                stored_path, mime_type, size_bytes, description, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`, r.tables.Media)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		media.WorkspaceID,
		media.UploadedBy,
		media.OriginalFilename,
		media.StoredFilename,
		media.StoredPath,
		media.MimeType,
		media.SizeBytes,
		media.Description,
		models.JoinTags(media.Tags),
	).Scan(&media.ID, &media.CreatedAt)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return filenameConflict(media)
		}
		return fmt.Errorf("create media: %w", err)
	}
	return nil
}

// GetByID retrieves a media row scoped to its workspace
func (r *PostgresMediaRepository) GetByID(ctx context.Context, workspaceID, id int64) (*models.Media, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 AND workspace_id = $2`, mediaColumns, r.tables.Media)

	var m models.Media
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := scanMedia(executor.QueryRow(ctx, query, id, workspaceID), &m); err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("media %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get media: %w", err)
	}
	return &m, nil
}

// FilenameExists reports whether a workspace already holds a file with this name
func (r *PostgresMediaRepository) FilenameExists(ctx context.Context, workspaceID int64, filename string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS(SELECT 1 FROM %s WHERE workspace_id = $1 AND original_filename = $2)
	`, r.tables.Media)

	var exists bool
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, workspaceID, filename).Scan(&exists); err != nil {
		return false, fmt.Errorf("check media filename: %w", err)
	}
	return exists, nil
}

// escapeLike escapes LIKE metacharacters so user input matches literally
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// List returns one page of media and the total count matching the filter
func (r *PostgresMediaRepository) List(ctx context.Context, filter *models.MediaFilter) ([]models.Media, int, error) {
	where := []string{"workspace_id = $1"}
	args := []any{filter.WorkspaceID}

	if filter.Filename != "" {
		args = append(args, "%"+escapeLike(filter.Filename)+"%")
		where = append(where, fmt.Sprintf("original_filename ILIKE $%d", len(args)))
	}
	if filter.TypePrefix != "" {
		args = append(args, escapeLike(filter.TypePrefix)+"/%")
		where = append(where, fmt.Sprintf("mime_type LIKE $%d", len(args)))
	}
	clause := strings.Join(where, " AND ")

	executor := postgres.GetExecutor(ctx, r.pool)

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, r.tables.Media, clause)
	if err := executor.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count media: %w", err)
	}

	order := "DESC"
	if filter.SortAsc {
		order = "ASC"
	}
	args = append(args, filter.PageSize, filter.Offset())
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s
		ORDER BY created_at %s, id %s
		LIMIT $%d OFFSET $%d
	`, mediaColumns, r.tables.Media, clause, order, order, len(args)-1, len(args))

	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list media: %w", err)
	}
	defer rows.Close()

	items := []models.Media{}
	for rows.Next() {
		var m models.Media
		if err := scanMedia(rows, &m); err != nil {
			return nil, 0, fmt.Errorf("scan media: %w", err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate media: %w", err)
	}
	return items, total, nil
}

// Update persists the editable metadata fields
func (r *PostgresMediaRepository) Update(ctx context.Context, media *models.Media) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET original_filename = $1, description = $2, tags = $3
		WHERE id = $4 AND workspace_id = $5
	`, r.tables.Media)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		media.OriginalFilename,
		media.Description,
		models.JoinTags(media.Tags),
		media.ID,
		media.WorkspaceID,
	)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return filenameConflict(media)
		}
		return fmt.Errorf("update media: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("media %d: %w", media.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete removes a media row
func (r *PostgresMediaRepository) Delete(ctx context.Context, workspaceID, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND workspace_id = $2`, r.tables.Media)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, workspaceID)
	if err != nil {
		return fmt.Errorf("delete media: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("media %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ListStoredPaths returns every blob path in a workspace
func (r *PostgresMediaRepository) ListStoredPaths(ctx context.Context, workspaceID int64) ([]string, error) {
	query := fmt.Sprintf(`SELECT stored_path FROM %s WHERE workspace_id = $1`, r.tables.Media)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list stored paths: %w", err)
	}
	defer rows.Close()

	paths := []string{}
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan stored path: %w", err)
		}
		paths = append(paths, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stored paths: %w", err)
	}
	return paths, nil
}

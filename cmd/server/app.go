package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	authn "vaultspace/internal/auth"
	"vaultspace/internal/config"
	"vaultspace/internal/domain/services"
	"vaultspace/internal/policy"
	"vaultspace/internal/repository/postgres"
	postgresIdentity "vaultspace/internal/repository/postgres/identity"
	postgresTeam "vaultspace/internal/repository/postgres/team"
	postgresWorkspace "vaultspace/internal/repository/postgres/workspace"
	"vaultspace/internal/service/audit"
	authsvc "vaultspace/internal/service/auth"
	teamsvc "vaultspace/internal/service/team"
	usersvc "vaultspace/internal/service/user"
	workspacesvc "vaultspace/internal/service/workspace"
	"vaultspace/internal/storage"
)

// app holds the wired services shared by serve and seed
type app struct {
	pool       *pgxpool.Pool
	verifier   authn.TokenVerifier
	accounts   services.AccountService
	profiles   services.UserService
	workspaces services.WorkspaceService
	members    services.MemberService
	media      services.MediaService
	documents  services.DocumentService
	comments   services.CommentService
	teams      services.TeamService
}

func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	// File encryption key fails fast before anything is served
	key, err := storage.ParseKey(cfg.FileEncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("FILE_ENCRYPTION_KEY: %w", err)
	}
	fileCipher, err := storage.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("FILE_ENCRYPTION_KEY: %w", err)
	}

	blobs, err := newBlobStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	policies, err := policy.NewRegistry()
	if err != nil {
		return nil, fmt.Errorf("load role policies: %w", err)
	}

	issuer, verifier, err := newTokenCodec(cfg, logger)
	if err != nil {
		return nil, err
	}

	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		verifier.Close()
		return nil, err
	}
	logger.Info("database connected")

	// Repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}
	txManager := postgres.NewTransactionManager(pool, logger)
	userRepo := postgresIdentity.NewUserRepository(repoConfig)
	workspaceRepo := postgresWorkspace.NewWorkspaceRepository(repoConfig)
	memberRepo := postgresWorkspace.NewMemberRepository(repoConfig)
	mediaRepo := postgresWorkspace.NewMediaRepository(repoConfig)
	docRepo := postgresWorkspace.NewDocumentRepository(repoConfig)
	commentRepo := postgresWorkspace.NewCommentRepository(repoConfig)
	teamRepo := postgresTeam.NewTeamRepository(repoConfig)
	auditRepo := postgres.NewAuditRepository(repoConfig)

	// Services
	guard := authsvc.NewRoleGuard(memberRepo, teamRepo, policies)
	recorder := audit.NewRecorder(auditRepo, logger)
	mediaStore := workspacesvc.NewMediaStore(txManager, mediaRepo, blobs, fileCipher, logger)

	return &app{
		pool:       pool,
		verifier:   verifier,
		accounts:   authsvc.NewAccountService(userRepo, authn.NewBcryptHasher(0), issuer, verifier, logger),
		profiles:   usersvc.NewProfileService(userRepo, logger),
		workspaces: workspacesvc.NewWorkspaceService(txManager, workspaceRepo, memberRepo, mediaRepo, blobs, guard, recorder, logger),
		members:    workspacesvc.NewMemberService(txManager, memberRepo, guard, recorder, logger),
		media:      workspacesvc.NewMediaService(mediaStore, mediaRepo, guard, recorder, logger),
		documents:  workspacesvc.NewDocumentService(docRepo, mediaRepo, mediaStore, guard, recorder, logger),
		comments:   workspacesvc.NewCommentService(commentRepo, guard, recorder, logger),
		teams:      teamsvc.NewTeamService(txManager, teamRepo, memberRepo, guard, recorder, logger),
	}, nil
}

func (a *app) close() {
	a.pool.Close()
	_ = a.verifier.Close()
}

// newBlobStore picks the configured blob backend
func newBlobStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.BlobStore, error) {
	if cfg.BlobBackend == config.BlobBackendS3 {
		store, err := storage.NewS3Store(ctx, storage.S3Config{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Endpoint:  cfg.S3Endpoint,
			Prefix:    cfg.S3Prefix,
		}, logger)
		if err != nil {
			return nil, err
		}
		return store, nil
	}

	store, err := storage.NewLocalStore(cfg.FilesDir)
	if err != nil {
		return nil, err
	}
	logger.Info("initialized local blob store", "dir", cfg.FilesDir)
	return store, nil
}

// newTokenCodec returns the local issuer (nil without JWT_SECRET) and the
// verifier for bearer tokens. With both JWT_SECRET and JWKS_URL set, tokens
// are verified by their alg: HS256 locally, the rest against the JWKS.
func newTokenCodec(cfg *config.Config, logger *slog.Logger) (authn.TokenIssuer, authn.TokenVerifier, error) {
	var codec *authn.HS256Codec
	if cfg.JWTSecret != "" {
		var err error
		codec, err = authn.NewHS256Codec(cfg.JWTSecret, cfg.TokenTTL)
		if err != nil {
			return nil, nil, fmt.Errorf("JWT_SECRET: %w", err)
		}
	}

	var jwks *authn.JWKSVerifier
	if cfg.JWKSURL != "" {
		var err error
		jwks, err = authn.NewJWKSVerifier(cfg.JWKSURL, logger)
		if err != nil {
			return nil, nil, err
		}
	}

	switch {
	case codec != nil && jwks != nil:
		return codec, authn.NewAlgVerifier(codec, jwks), nil
	case jwks != nil:
		return nil, jwks, nil
	case codec != nil:
		return codec, codec, nil
	default:
		return nil, nil, errors.New("one of JWT_SECRET or JWKS_URL is required")
	}
}

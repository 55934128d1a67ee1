// Package seed fills a development database with demo accounts and content
// by driving the regular services, so every row passes the same validation,
// encryption and audit path as API traffic.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"vaultspace/internal/domain"
	"vaultspace/internal/domain/models"
	"vaultspace/internal/domain/services"
)

// DemoPassword is the password of every seeded account
const DemoPassword = "vaultspace-demo"

// ErrAlreadySeeded is returned when the demo owner account already exists
var ErrAlreadySeeded = errors.New("database already seeded")

// Services are the service entry points the seeder drives
type Services struct {
	Accounts   services.AccountService
	Workspaces services.WorkspaceService
	Members    services.MemberService
	Media      services.MediaService
	Documents  services.DocumentService
	Comments   services.CommentService
	Teams      services.TeamService
}

// Seeder creates the demo data set
type Seeder struct {
	svc    Services
	logger *slog.Logger
}

// NewSeeder creates a new seeder
func NewSeeder(svc Services, logger *slog.Logger) *Seeder {
	return &Seeder{svc: svc, logger: logger}
}

type demoUser struct {
	username string
	role     models.Role
}

// demo users after the owner, with the role they get in the demo workspace
var demoUsers = []demoUser{
	{"bob", models.RoleAdmin},
	{"carol", models.RoleEditor},
	{"dave", models.RoleViewer},
}

// Result summarizes what Seed created
type Result struct {
	OwnerID     int64
	WorkspaceID int64
	UserIDs     []int64
	MediaID     int64
	DocumentIDs []int64
	TeamID      int64
}

// Seed creates the demo owner "alice", three members, a workspace with one
// encrypted upload, a text and a file-backed document, a comment and a team
// synced from the workspace.
func (s *Seeder) Seed(ctx context.Context) (*Result, error) {
	owner, err := s.register(ctx, "alice")
	if err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			return nil, ErrAlreadySeeded
		}
		return nil, err
	}
	res := &Result{OwnerID: owner.ID}

	ws, err := s.svc.Workspaces.CreateWorkspace(ctx, owner.ID, &services.CreateWorkspaceRequest{Name: "Demo Workspace"})
	if err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	res.WorkspaceID = ws.ID

	for _, du := range demoUsers {
		user, err := s.register(ctx, du.username)
		if err != nil {
			return nil, err
		}
		if _, err := s.svc.Members.AddMember(ctx, owner.ID, ws.ID, &services.AddMemberRequest{
			UserID: user.ID,
			Role:   string(du.role),
		}); err != nil {
			return nil, fmt.Errorf("add %s: %w", du.username, err)
		}
		res.UserIDs = append(res.UserIDs, user.ID)
	}

	desc := "Uploaded by the seeder"
	media, err := s.svc.Media.UploadMedia(ctx, owner.ID, &services.StoreMediaInput{
		WorkspaceID: ws.ID,
		Filename:    "welcome.txt",
		MimeType:    "text/plain",
		Content:     []byte("Welcome to vaultspace. This file is stored encrypted.\n"),
		Description: &desc,
		Tags:        []string{"demo", "welcome"},
	})
	if err != nil {
		return nil, fmt.Errorf("upload media: %w", err)
	}
	res.MediaID = media.ID

	content := "Meeting notes: ship the demo."
	textDoc, err := s.svc.Documents.CreateDocument(ctx, owner.ID, ws.ID, &services.CreateDocumentRequest{
		Title:   "Kickoff notes",
		Content: &content,
	})
	if err != nil {
		return nil, fmt.Errorf("create text document: %w", err)
	}
	fileDoc, err := s.svc.Documents.CreateDocument(ctx, owner.ID, ws.ID, &services.CreateDocumentRequest{
		Title:   "Welcome file",
		MediaID: &media.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("create file document: %w", err)
	}
	res.DocumentIDs = []int64{textDoc.ID, fileDoc.ID}

	if _, err := s.svc.Comments.CreateComment(ctx, owner.ID, ws.ID, &services.CreateCommentRequest{
		TargetType: string(models.TargetDocument),
		TargetID:   textDoc.ID,
		Body:       "Looks good, thanks!",
	}); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	team, err := s.svc.Teams.CreateTeam(ctx, owner.ID, &services.CreateTeamRequest{Name: "Demo Team"})
	if err != nil {
		return nil, fmt.Errorf("create team: %w", err)
	}
	if _, err := s.svc.Teams.AttachWorkspace(ctx, owner.ID, team.ID, ws.ID); err != nil {
		return nil, fmt.Errorf("attach workspace: %w", err)
	}
	res.TeamID = team.ID

	s.logger.Info("demo data seeded",
		"owner_id", owner.ID,
		"workspace_id", ws.ID,
		"team_id", team.ID,
	)
	return res, nil
}

func (s *Seeder) register(ctx context.Context, username string) (*models.User, error) {
	user, err := s.svc.Accounts.Register(ctx, &services.RegisterRequest{
		Email:    username + "@example.com",
		Username: username,
		Password: DemoPassword,
	})
	if err != nil {
		return nil, fmt.Errorf("register %s: %w", username, err)
	}
	return user, nil
}

package team

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"vaultspace/internal/config"
	"vaultspace/internal/domain"
	"vaultspace/internal/domain/models"
	"vaultspace/internal/domain/repositories"
	"vaultspace/internal/domain/services"
	"vaultspace/internal/policy"
)

// teamService implements the TeamService interface
type teamService struct {
	txManager  repositories.TransactionManager
	teamRepo   repositories.TeamRepository
	memberRepo repositories.MemberRepository
	guard      services.Authorizer
	audit      services.AuditSink
	logger     *slog.Logger
}

// NewTeamService creates a new team service
func NewTeamService(
	txManager repositories.TransactionManager,
	teamRepo repositories.TeamRepository,
	memberRepo repositories.MemberRepository,
	guard services.Authorizer,
	audit services.AuditSink,
	logger *slog.Logger,
) services.TeamService {
	return &teamService{
		txManager:  txManager,
		teamRepo:   teamRepo,
		memberRepo: memberRepo,
		guard:      guard,
		audit:      audit,
		logger:     logger,
	}
}

// CreateTeam inserts the team and the creator's owner membership together
func (s *teamService) CreateTeam(ctx context.Context, userID int64, req *services.CreateTeamRequest) (*models.Team, error) {
	name := strings.TrimSpace(req.Name)
	err := validation.Validate(name,
		validation.Required,
		validation.RuneLength(1, config.MaxNameLength),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	team := &models.Team{Name: name, OwnerID: userID}
	err = s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.teamRepo.Create(ctx, team); err != nil {
			return err
		}
		_, err := s.teamRepo.AddMember(ctx, &models.TeamMember{
			TeamID: team.ID,
			UserID: userID,
			Role:   models.TeamRoleOwner,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("team created", "team_id", team.ID, "user_id", userID)
	return team, nil
}

// ListTeams returns the teams the caller belongs to
func (s *teamService) ListTeams(ctx context.Context, userID int64) ([]models.Team, error) {
	return s.teamRepo.ListForUser(ctx, userID)
}

// JoinTeam adds the caller as a plain member
func (s *teamService) JoinTeam(ctx context.Context, userID, teamID int64) error {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		return err
	}

	added, err := s.teamRepo.AddMember(ctx, &models.TeamMember{
		TeamID: teamID,
		UserID: userID,
		Role:   models.TeamRoleMember,
	})
	if err != nil {
		return err
	}
	if added {
		s.logger.Info("team joined", "team_id", teamID, "user_id", userID)
	}
	return nil
}

// ListTeamMembers lists members with their usernames and emails. Team members only.
func (s *teamService) ListTeamMembers(ctx context.Context, userID, teamID int64) ([]models.TeamMemberDetail, error) {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		return nil, err
	}
	if _, err := s.guard.ResolveTeamRole(ctx, userID, teamID); err != nil {
		return nil, err
	}
	return s.teamRepo.ListMembers(ctx, teamID)
}

// AttachWorkspace links a workspace to a team and copies over the workspace
// members the team does not have yet. The copy happens once; later workspace
// membership changes are not propagated.
func (s *teamService) AttachWorkspace(ctx context.Context, userID, teamID, workspaceID int64) (*models.WorkspaceSync, error) {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		return nil, err
	}
	// Authorization is checked on the workspace being joined, not on the team
	if _, err := s.guard.AuthorizeAction(ctx, userID, workspaceID, policy.ActionTeamAttach); err != nil {
		return nil, err
	}

	result := &models.WorkspaceSync{TeamID: teamID, WorkspaceID: workspaceID, AddedUserIDs: []int64{}}
	var linked bool
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		var err error
		if linked, err = s.teamRepo.AttachWorkspace(ctx, teamID, workspaceID); err != nil {
			return err
		}

		workspaceUsers, err := s.memberRepo.ListUserIDs(ctx, workspaceID)
		if err != nil {
			return err
		}
		teamUsers, err := s.teamRepo.ListMemberUserIDs(ctx, teamID)
		if err != nil {
			return err
		}

		for _, id := range missingFrom(workspaceUsers, teamUsers) {
			added, err := s.teamRepo.AddMember(ctx, &models.TeamMember{
				TeamID: teamID,
				UserID: id,
				Role:   models.TeamRoleMember,
			})
			if err != nil {
				return err
			}
			if added {
				result.AddedUserIDs = append(result.AddedUserIDs, id)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("workspace attached to team",
		"team_id", teamID,
		"workspace_id", workspaceID,
		"new_link", linked,
		"added_members", len(result.AddedUserIDs),
		"user_id", userID,
	)
	s.audit.Record(ctx, services.AuditEvent{
		WorkspaceID: workspaceID,
		ActorID:     userID,
		Action:      models.AuditTeamAttach,
		Detail:      fmt.Sprintf("team_id=%d added=%d", teamID, len(result.AddedUserIDs)),
	})
	return result, nil
}

// missingFrom returns the ids in want that are not in have, sorted and deduplicated
func missingFrom(want, have []int64) []int64 {
	present := make(map[int64]struct{}, len(have))
	for _, id := range have {
		present[id] = struct{}{}
	}
	var out []int64
	for _, id := range want {
		if _, ok := present[id]; ok {
			continue
		}
		present[id] = struct{}{}
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

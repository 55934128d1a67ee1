package team

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"vaultspace/internal/domain"
	"vaultspace/internal/domain/models"
	"vaultspace/internal/domain/repositories"
	"vaultspace/internal/domain/services"
	"vaultspace/internal/policy"
	"vaultspace/internal/service/auth"
)

type fakeTx struct{}

func (fakeTx) ExecTx(ctx context.Context, fn repositories.TxFn) error { return fn(ctx) }

type memberKey struct{ group, user int64 }

type fakeMemberRepo struct {
	members map[memberKey]models.Role
}

func (f *fakeMemberRepo) Create(ctx context.Context, m *models.WorkspaceMember) error {
	f.members[memberKey{m.WorkspaceID, m.UserID}] = m.Role
	return nil
}
func (f *fakeMemberRepo) Get(ctx context.Context, ws, user int64) (*models.WorkspaceMember, error) {
	role, ok := f.members[memberKey{ws, user}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &models.WorkspaceMember{WorkspaceID: ws, UserID: user, Role: role}, nil
}
func (f *fakeMemberRepo) List(ctx context.Context, ws int64) ([]models.WorkspaceMember, error) {
	return nil, nil
}
func (f *fakeMemberRepo) ListUserIDs(ctx context.Context, ws int64) ([]int64, error) {
	var ids []int64
	for k := range f.members {
		if k.group == ws {
			ids = append(ids, k.user)
		}
	}
	return ids, nil
}
func (f *fakeMemberRepo) UpdateRole(ctx context.Context, ws, user int64, role models.Role) error {
	return nil
}
func (f *fakeMemberRepo) Delete(ctx context.Context, ws, user int64) error { return nil }
func (f *fakeMemberRepo) LockOwners(ctx context.Context, ws int64) (int, error) {
	return 0, nil
}

type fakeTeamRepo struct {
	nextID  int64
	teams   map[int64]*models.Team
	members map[memberKey]*models.TeamMember
	links   map[memberKey]bool
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{
		teams:   map[int64]*models.Team{},
		members: map[memberKey]*models.TeamMember{},
		links:   map[memberKey]bool{},
	}
}

func (f *fakeTeamRepo) Create(ctx context.Context, t *models.Team) error {
	f.nextID++
	t.ID = f.nextID
	cp := *t
	f.teams[t.ID] = &cp
	return nil
}
func (f *fakeTeamRepo) GetByID(ctx context.Context, id int64) (*models.Team, error) {
	t, ok := f.teams[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return t, nil
}
func (f *fakeTeamRepo) ListForUser(ctx context.Context, user int64) ([]models.Team, error) {
	var out []models.Team
	for k := range f.members {
		if k.user == user {
			out = append(out, *f.teams[k.group])
		}
	}
	return out, nil
}
func (f *fakeTeamRepo) AddMember(ctx context.Context, m *models.TeamMember) (bool, error) {
	k := memberKey{m.TeamID, m.UserID}
	if _, ok := f.members[k]; ok {
		return false, nil
	}
	cp := *m
	f.members[k] = &cp
	return true, nil
}
func (f *fakeTeamRepo) GetMember(ctx context.Context, team, user int64) (*models.TeamMember, error) {
	m, ok := f.members[memberKey{team, user}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return m, nil
}
func (f *fakeTeamRepo) ListMembers(ctx context.Context, team int64) ([]models.TeamMemberDetail, error) {
	var out []models.TeamMemberDetail
	for k, m := range f.members {
		if k.group == team {
			out = append(out, models.TeamMemberDetail{TeamMember: *m})
		}
	}
	return out, nil
}
func (f *fakeTeamRepo) ListMemberUserIDs(ctx context.Context, team int64) ([]int64, error) {
	var ids []int64
	for k := range f.members {
		if k.group == team {
			ids = append(ids, k.user)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
func (f *fakeTeamRepo) AttachWorkspace(ctx context.Context, team, ws int64) (bool, error) {
	k := memberKey{team, ws}
	if f.links[k] {
		return false, nil
	}
	f.links[k] = true
	return true, nil
}

type countingSink struct{ actions []string }

func (s *countingSink) Record(ctx context.Context, e services.AuditEvent) {
	s.actions = append(s.actions, e.Action)
}

type fixture struct {
	members *fakeMemberRepo
	teams   *fakeTeamRepo
	audit   *countingSink
	svc     services.TeamService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	reg, err := policy.NewRegistry()
	require.NoError(t, err)

	f := &fixture{
		members: &fakeMemberRepo{members: map[memberKey]models.Role{}},
		teams:   newFakeTeamRepo(),
		audit:   &countingSink{},
	}
	guard := auth.NewRoleGuard(f.members, f.teams, reg)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.svc = NewTeamService(fakeTx{}, f.teams, f.members, guard, f.audit, logger)
	return f
}

func TestCreateTeam(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	team, err := f.svc.CreateTeam(ctx, 1, &services.CreateTeamRequest{Name: " Platform "})
	require.NoError(t, err)
	assert.Equal(t, "Platform", team.Name)
	assert.Equal(t, int64(1), team.OwnerID)

	m, err := f.teams.GetMember(ctx, team.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, models.TeamRoleOwner, m.Role)

	teams, err := f.svc.ListTeams(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, teams, 1)

	_, err = f.svc.CreateTeam(ctx, 1, &services.CreateTeamRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestJoinTeam_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	team, err := f.svc.CreateTeam(ctx, 1, &services.CreateTeamRequest{Name: "Platform"})
	require.NoError(t, err)

	require.NoError(t, f.svc.JoinTeam(ctx, 2, team.ID))
	require.NoError(t, f.svc.JoinTeam(ctx, 2, team.ID))

	members, err := f.svc.ListTeamMembers(ctx, 2, team.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2)

	assert.ErrorIs(t, f.svc.JoinTeam(ctx, 2, 999), domain.ErrNotFound)
}

func TestListTeamMembers_RequiresMembership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	team, err := f.svc.CreateTeam(ctx, 1, &services.CreateTeamRequest{Name: "Platform"})
	require.NoError(t, err)

	_, err = f.svc.ListTeamMembers(ctx, 3, team.ID)
	assert.ErrorIs(t, err, domain.ErrNotTeamMember)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.ListTeamMembers(ctx, 1, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAttachWorkspace_SyncsSetDifference(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	team, err := f.svc.CreateTeam(ctx, 1, &services.CreateTeamRequest{Name: "Platform"})
	require.NoError(t, err)
	require.NoError(t, f.svc.JoinTeam(ctx, 3, team.ID))

	// workspace 50: 1 owner (already in team), 2 admin, 3 viewer (already in team), 4 editor
	f.members.members[memberKey{50, 1}] = models.RoleOwner
	f.members.members[memberKey{50, 2}] = models.RoleAdmin
	f.members.members[memberKey{50, 3}] = models.RoleViewer
	f.members.members[memberKey{50, 4}] = models.RoleEditor

	sync, err := f.svc.AttachWorkspace(ctx, 2, team.ID, 50)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 4}, sync.AddedUserIDs)

	ids, err := f.teams.ListMemberUserIDs(ctx, team.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4}, ids)
	for _, id := range []int64{2, 4} {
		m, err := f.teams.GetMember(ctx, team.ID, id)
		require.NoError(t, err)
		assert.Equal(t, models.TeamRoleMember, m.Role)
	}
	assert.Equal(t, []string{models.AuditTeamAttach}, f.audit.actions)

	// a second attach finds nothing to add
	again, err := f.svc.AttachWorkspace(ctx, 1, team.ID, 50)
	require.NoError(t, err)
	assert.Empty(t, again.AddedUserIDs)
	assert.Len(t, f.teams.links, 1)

	// a member who joined the workspace since is the whole difference
	f.members.members[memberKey{50, 5}] = models.RoleReviewer
	third, err := f.svc.AttachWorkspace(ctx, 1, team.ID, 50)
	require.NoError(t, err)
	assert.Equal(t, []int64{5}, third.AddedUserIDs)
	assert.Len(t, f.teams.links, 1)

	ids, err = f.teams.ListMemberUserIDs(ctx, team.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, ids)
}

func TestAttachWorkspace_AuthorizesOnWorkspace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// user 1 owns the team but is only an editor of the workspace
	team, err := f.svc.CreateTeam(ctx, 1, &services.CreateTeamRequest{Name: "Platform"})
	require.NoError(t, err)
	f.members.members[memberKey{50, 1}] = models.RoleEditor

	_, err = f.svc.AttachWorkspace(ctx, 1, team.ID, 50)
	assert.ErrorIs(t, err, domain.ErrInsufficientRole)

	_, err = f.svc.AttachWorkspace(ctx, 9, team.ID, 50)
	assert.ErrorIs(t, err, domain.ErrNotMember)

	// a workspace admin who is not in the team may attach
	f.members.members[memberKey{50, 7}] = models.RoleAdmin
	_, err = f.svc.AttachWorkspace(ctx, 7, team.ID, 50)
	require.NoError(t, err)

	_, err = f.svc.AttachWorkspace(ctx, 7, 999, 50)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, f.teams.links[memberKey{999, 50}])
}

func TestMissingFrom(t *testing.T) {
	assert.Equal(t, []int64{2, 5}, missingFrom([]int64{5, 1, 2, 2}, []int64{1, 3}))
	assert.Nil(t, missingFrom([]int64{1}, []int64{1}))
	assert.Nil(t, missingFrom(nil, nil))
}

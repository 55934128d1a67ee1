package auth

import (
	"context"
	"fmt"

	"vaultspace/internal/domain"
	"vaultspace/internal/domain/models"
)

type memberKey struct{ ws, user int64 }

type fakeMemberRepo struct {
	members map[memberKey]*models.WorkspaceMember
	err     error
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: map[memberKey]*models.WorkspaceMember{}}
}

func (f *fakeMemberRepo) put(ws, user int64, role models.Role) {
	f.members[memberKey{ws, user}] = &models.WorkspaceMember{WorkspaceID: ws, UserID: user, Role: role}
}

func (f *fakeMemberRepo) Create(ctx context.Context, m *models.WorkspaceMember) error {
	f.members[memberKey{m.WorkspaceID, m.UserID}] = m
	return nil
}

func (f *fakeMemberRepo) Get(ctx context.Context, ws, user int64) (*models.WorkspaceMember, error) {
	if f.err != nil {
		return nil, f.err
	}
	m, ok := f.members[memberKey{ws, user}]
	if !ok {
		return nil, fmt.Errorf("member: %w", domain.ErrNotFound)
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMemberRepo) List(ctx context.Context, ws int64) ([]models.WorkspaceMember, error) {
	return nil, nil
}

func (f *fakeMemberRepo) ListUserIDs(ctx context.Context, ws int64) ([]int64, error) {
	return nil, nil
}

func (f *fakeMemberRepo) UpdateRole(ctx context.Context, ws, user int64, role models.Role) error {
	return nil
}

func (f *fakeMemberRepo) Delete(ctx context.Context, ws, user int64) error {
	return nil
}

func (f *fakeMemberRepo) LockOwners(ctx context.Context, ws int64) (int, error) {
	return 0, nil
}

type fakeTeamRepo struct {
	members map[memberKey]*models.TeamMember
}

func (f *fakeTeamRepo) Create(ctx context.Context, t *models.Team) error { return nil }
func (f *fakeTeamRepo) GetByID(ctx context.Context, id int64) (*models.Team, error) {
	return nil, domain.ErrNotFound
}
func (f *fakeTeamRepo) ListForUser(ctx context.Context, user int64) ([]models.Team, error) {
	return nil, nil
}
func (f *fakeTeamRepo) AddMember(ctx context.Context, m *models.TeamMember) (bool, error) {
	return false, nil
}
func (f *fakeTeamRepo) GetMember(ctx context.Context, team, user int64) (*models.TeamMember, error) {
	m, ok := f.members[memberKey{team, user}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return m, nil
}
func (f *fakeTeamRepo) ListMembers(ctx context.Context, team int64) ([]models.TeamMemberDetail, error) {
	return nil, nil
}
func (f *fakeTeamRepo) ListMemberUserIDs(ctx context.Context, team int64) ([]int64, error) {
	return nil, nil
}
func (f *fakeTeamRepo) AttachWorkspace(ctx context.Context, team, ws int64) (bool, error) {
	return false, nil
}

type fakeUserRepo struct {
	nextID int64
	users  map[int64]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*models.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *models.User) error {
	for _, existing := range f.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return &domain.ConflictError{Message: "duplicate", ResourceType: "user"}
		}
	}
	f.nextID++
	u.ID = f.nextID
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, u *models.User) error { return nil }

func (f *fakeUserRepo) RecentWorkspaces(ctx context.Context, userID int64, limit int) ([]models.RecentWorkspace, error) {
	return nil, nil
}

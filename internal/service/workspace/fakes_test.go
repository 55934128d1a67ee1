package workspace

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"slices"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"vaultspace/internal/domain"
	"vaultspace/internal/domain/models"
	"vaultspace/internal/domain/repositories"
	"vaultspace/internal/domain/services"
	"vaultspace/internal/policy"
	"vaultspace/internal/service/auth"
	"vaultspace/internal/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeTx serializes transactions, standing in for row locks
type fakeTx struct {
	mu sync.Mutex
}

func (f *fakeTx) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

type memberKey struct{ ws, user int64 }

type fakeMemberRepo struct {
	mu      sync.Mutex
	nextID  int64
	members map[memberKey]*models.WorkspaceMember
	locks   int
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: map[memberKey]*models.WorkspaceMember{}}
}

func (f *fakeMemberRepo) put(ws, user int64, role models.Role) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.members[memberKey{ws, user}] = &models.WorkspaceMember{ID: f.nextID, WorkspaceID: ws, UserID: user, Role: role}
}

func (f *fakeMemberRepo) Create(ctx context.Context, m *models.WorkspaceMember) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.members[memberKey{m.WorkspaceID, m.UserID}]; ok {
		return &domain.ConflictError{Message: "duplicate member", ResourceType: "member"}
	}
	f.nextID++
	m.ID = f.nextID
	cp := *m
	f.members[memberKey{m.WorkspaceID, m.UserID}] = &cp
	return nil
}

func (f *fakeMemberRepo) Get(ctx context.Context, ws, user int64) (*models.WorkspaceMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.members[memberKey{ws, user}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMemberRepo) List(ctx context.Context, ws int64) ([]models.WorkspaceMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.WorkspaceMember
	for k, m := range f.members {
		if k.ws == ws {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeMemberRepo) ListUserIDs(ctx context.Context, ws int64) ([]int64, error) {
	members, _ := f.List(ctx, ws)
	ids := make([]int64, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.UserID)
	}
	return ids, nil
}

func (f *fakeMemberRepo) UpdateRole(ctx context.Context, ws, user int64, role models.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.members[memberKey{ws, user}]
	if !ok {
		return domain.ErrNotFound
	}
	m.Role = role
	return nil
}

func (f *fakeMemberRepo) Delete(ctx context.Context, ws, user int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.members[memberKey{ws, user}]; !ok {
		return domain.ErrNotFound
	}
	delete(f.members, memberKey{ws, user})
	return nil
}

func (f *fakeMemberRepo) LockOwners(ctx context.Context, ws int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.locks++
	n := 0
	for k, m := range f.members {
		if k.ws == ws && models.NormalizeRole(string(m.Role)) == models.RoleOwner {
			n++
		}
	}
	return n, nil
}

func (f *fakeMemberRepo) role(ws, user int64) models.Role {
	m, err := f.Get(context.Background(), ws, user)
	if err != nil {
		return ""
	}
	return m.Role
}

// deleteWorkspace mimics the cascade on workspace removal
func (f *fakeMemberRepo) deleteWorkspace(ws int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for k := range f.members {
		if k.ws == ws {
			delete(f.members, k)
		}
	}
}

type fakeTeamRepo struct{}

func (fakeTeamRepo) Create(ctx context.Context, t *models.Team) error { return nil }
func (fakeTeamRepo) GetByID(ctx context.Context, id int64) (*models.Team, error) {
	return nil, domain.ErrNotFound
}
func (fakeTeamRepo) ListForUser(ctx context.Context, user int64) ([]models.Team, error) {
	return nil, nil
}
func (fakeTeamRepo) AddMember(ctx context.Context, m *models.TeamMember) (bool, error) {
	return false, nil
}
func (fakeTeamRepo) GetMember(ctx context.Context, team, user int64) (*models.TeamMember, error) {
	return nil, domain.ErrNotFound
}
func (fakeTeamRepo) ListMembers(ctx context.Context, team int64) ([]models.TeamMemberDetail, error) {
	return nil, nil
}
func (fakeTeamRepo) ListMemberUserIDs(ctx context.Context, team int64) ([]int64, error) {
	return nil, nil
}
func (fakeTeamRepo) AttachWorkspace(ctx context.Context, team, ws int64) (bool, error) {
	return false, nil
}

type fakeWorkspaceRepo struct {
	nextID     int64
	workspaces map[int64]*models.Workspace
	members    *fakeMemberRepo
}

func (f *fakeWorkspaceRepo) Create(ctx context.Context, ws *models.Workspace) error {
	f.nextID++
	ws.ID = f.nextID
	cp := *ws
	f.workspaces[ws.ID] = &cp
	return nil
}

func (f *fakeWorkspaceRepo) GetByID(ctx context.Context, id int64) (*models.Workspace, error) {
	ws, ok := f.workspaces[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *ws
	return &cp, nil
}

func (f *fakeWorkspaceRepo) ListForUser(ctx context.Context, userID int64) ([]models.Workspace, error) {
	var out []models.Workspace
	for id, ws := range f.workspaces {
		if _, err := f.members.Get(ctx, id, userID); err == nil {
			out = append(out, *ws)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeWorkspaceRepo) Update(ctx context.Context, ws *models.Workspace) error {
	if _, ok := f.workspaces[ws.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *ws
	f.workspaces[ws.ID] = &cp
	return nil
}

func (f *fakeWorkspaceRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.workspaces[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.workspaces, id)
	f.members.deleteWorkspace(id)
	return nil
}

type fakeMediaRepo struct {
	mu        sync.Mutex
	nextID    int64
	media     map[int64]*models.Media
	createErr error
}

func newFakeMediaRepo() *fakeMediaRepo {
	return &fakeMediaRepo{media: map[int64]*models.Media{}}
}

func (f *fakeMediaRepo) Create(ctx context.Context, m *models.Media) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.media {
		if existing.WorkspaceID == m.WorkspaceID && existing.OriginalFilename == m.OriginalFilename {
			return &domain.ConflictError{Message: "duplicate filename", ResourceType: "media"}
		}
	}
	f.nextID++
	m.ID = f.nextID
	cp := *m
	f.media[m.ID] = &cp
	return nil
}

func (f *fakeMediaRepo) GetByID(ctx context.Context, ws, id int64) (*models.Media, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.media[id]
	if !ok || m.WorkspaceID != ws {
		return nil, domain.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMediaRepo) FilenameExists(ctx context.Context, ws int64, filename string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.media {
		if m.WorkspaceID == ws && m.OriginalFilename == filename {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeMediaRepo) List(ctx context.Context, filter *models.MediaFilter) ([]models.Media, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []models.Media
	for _, m := range f.media {
		if m.WorkspaceID != filter.WorkspaceID {
			continue
		}
		if filter.Filename != "" && !strings.Contains(strings.ToLower(m.OriginalFilename), strings.ToLower(filter.Filename)) {
			continue
		}
		if filter.TypePrefix != "" && !strings.HasPrefix(m.MimeType, filter.TypePrefix+"/") {
			continue
		}
		all = append(all, *m)
	}
	sort.Slice(all, func(i, j int) bool {
		if filter.SortAsc {
			return all[i].ID < all[j].ID
		}
		return all[i].ID > all[j].ID
	})
	total := len(all)
	start := min(filter.Offset(), total)
	end := min(start+filter.PageSize, total)
	return all[start:end], total, nil
}

func (f *fakeMediaRepo) Update(ctx context.Context, m *models.Media) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.media[m.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *m
	f.media[m.ID] = &cp
	return nil
}

func (f *fakeMediaRepo) Delete(ctx context.Context, ws, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.media[id]
	if !ok || m.WorkspaceID != ws {
		return domain.ErrNotFound
	}
	delete(f.media, id)
	return nil
}

func (f *fakeMediaRepo) ListStoredPaths(ctx context.Context, ws int64) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var paths []string
	for _, m := range f.media {
		if m.WorkspaceID == ws {
			paths = append(paths, m.StoredPath)
		}
	}
	return paths, nil
}

func (f *fakeMediaRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.media)
}

type fakeDocumentRepo struct {
	nextID int64
	docs   map[int64]*models.Document
}

func (f *fakeDocumentRepo) Create(ctx context.Context, d *models.Document) error {
	f.nextID++
	d.ID = f.nextID
	d.Version = 1
	cp := *d
	f.docs[d.ID] = &cp
	return nil
}

func (f *fakeDocumentRepo) GetByID(ctx context.Context, ws, id int64) (*models.Document, error) {
	d, ok := f.docs[id]
	if !ok || d.WorkspaceID != ws {
		return nil, domain.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDocumentRepo) List(ctx context.Context, ws int64) ([]models.Document, error) {
	var out []models.Document
	for _, d := range f.docs {
		if d.WorkspaceID == ws {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (f *fakeDocumentRepo) Update(ctx context.Context, d *models.Document) error {
	if _, ok := f.docs[d.ID]; !ok {
		return domain.ErrNotFound
	}
	d.Version++
	cp := *d
	f.docs[d.ID] = &cp
	return nil
}

func (f *fakeDocumentRepo) Delete(ctx context.Context, ws, id int64) error {
	d, ok := f.docs[id]
	if !ok || d.WorkspaceID != ws {
		return domain.ErrNotFound
	}
	delete(f.docs, id)
	return nil
}

type fakeCommentRepo struct {
	nextID   int64
	comments map[int64]*models.Comment
}

func (f *fakeCommentRepo) Create(ctx context.Context, c *models.Comment) error {
	f.nextID++
	c.ID = f.nextID
	cp := *c
	f.comments[c.ID] = &cp
	return nil
}

func (f *fakeCommentRepo) GetByID(ctx context.Context, ws, id int64) (*models.Comment, error) {
	c, ok := f.comments[id]
	if !ok || c.WorkspaceID != ws {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCommentRepo) List(ctx context.Context, filter *models.CommentFilter) ([]models.Comment, error) {
	var out []models.Comment
	for _, c := range f.comments {
		if c.WorkspaceID != filter.WorkspaceID {
			continue
		}
		if filter.TargetType != "" && c.TargetType != filter.TargetType {
			continue
		}
		if filter.TargetID != 0 && c.TargetID != filter.TargetID {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCommentRepo) Delete(ctx context.Context, ws, id int64) error {
	if _, err := f.GetByID(ctx, ws, id); err != nil {
		return err
	}
	delete(f.comments, id)
	return nil
}

// recordingSink collects audit events; panicking simulates a broken sink
type recordingSink struct {
	mu        sync.Mutex
	events    []services.AuditEvent
	panicking bool
}

func (s *recordingSink) Record(ctx context.Context, e services.AuditEvent) {
	if s.panicking {
		panic("audit sink exploded")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

func (s *recordingSink) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.Action)
	}
	return out
}

func (s *recordingSink) has(action string) bool {
	return slices.Contains(s.actions(), action)
}

// failingBlobs wraps a store and fails selected operations
type failingBlobs struct {
	storage.BlobStore
	failDelete bool
}

func (f *failingBlobs) Delete(ctx context.Context, path string) error {
	if f.failDelete {
		return errors.New("disk on fire")
	}
	return f.BlobStore.Delete(ctx, path)
}

// fixture wires every service of the package against in-memory fakes,
// a real blob directory and a real cipher.
type fixture struct {
	members   *fakeMemberRepo
	wsRepo    *fakeWorkspaceRepo
	mediaRepo *fakeMediaRepo
	docRepo   *fakeDocumentRepo
	comments  *fakeCommentRepo
	blobs     *failingBlobs
	dir       string
	cipher    *storage.Cipher
	audit     *recordingSink
	guard     *auth.RoleGuard

	store      services.MediaStore
	workspaces services.WorkspaceService
	memberSvc  services.MemberService
	mediaSvc   services.MediaService
	docSvc     services.DocumentService
	commentSvc services.CommentService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	rec := &recordingSink{}
	f := newFixtureWithSink(t, rec)
	f.audit = rec
	return f
}

func newFixtureWithSink(t *testing.T, sink services.AuditSink) *fixture {
	t.Helper()

	dir := t.TempDir()
	local, err := storage.NewLocalStore(dir)
	require.NoError(t, err)
	encoded, err := storage.GenerateKey()
	require.NoError(t, err)
	key, err := storage.ParseKey(encoded)
	require.NoError(t, err)
	cipher, err := storage.NewCipher(key)
	require.NoError(t, err)
	reg, err := policy.NewRegistry()
	require.NoError(t, err)

	f := &fixture{
		members:   newFakeMemberRepo(),
		mediaRepo: newFakeMediaRepo(),
		docRepo:   &fakeDocumentRepo{docs: map[int64]*models.Document{}},
		comments:  &fakeCommentRepo{comments: map[int64]*models.Comment{}},
		blobs:     &failingBlobs{BlobStore: local},
		dir:       dir,
		cipher:    cipher,
	}
	f.wsRepo = &fakeWorkspaceRepo{workspaces: map[int64]*models.Workspace{}, members: f.members}
	f.guard = auth.NewRoleGuard(f.members, fakeTeamRepo{}, reg)

	logger := discardLogger()
	tx := &fakeTx{}
	f.store = NewMediaStore(tx, f.mediaRepo, f.blobs, cipher, logger)
	f.workspaces = NewWorkspaceService(tx, f.wsRepo, f.members, f.mediaRepo, f.blobs, f.guard, sink, logger)
	f.memberSvc = NewMemberService(tx, f.members, f.guard, sink, logger)
	f.mediaSvc = NewMediaService(f.store, f.mediaRepo, f.guard, sink, logger)
	f.docSvc = NewDocumentService(f.docRepo, f.mediaRepo, f.store, f.guard, sink, logger)
	f.commentSvc = NewCommentService(f.comments, f.guard, sink, logger)
	return f
}

// blobCount counts files in the blob directory
func (f *fixture) blobCount(t *testing.T) int {
	t.Helper()
	entries, err := os.ReadDir(f.dir)
	require.NoError(t, err)
	return len(entries)
}

// workspace creates a workspace owned by ownerID
func (f *fixture) workspace(t *testing.T, ownerID int64) int64 {
	t.Helper()
	ws, err := f.workspaces.CreateWorkspace(context.Background(), ownerID, &services.CreateWorkspaceRequest{Name: "vault"})
	require.NoError(t, err)
	return ws.ID
}

package tool

import (
	"context"
	"testing"
	"time"

	"github.com/fieldworks/workforce-backend-go/internal/domain/tool"
	"github.com/fieldworks/workforce-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeToolRepo struct {
	tools map[string]tool.Tool
}

func (f *fakeToolRepo) Create(ctx context.Context, t tool.Tool) (tool.Tool, error) {
	t.ID = "tool-new"
	f.tools[t.ID] = t
	return t, nil
}

func (f *fakeToolRepo) GetByID(ctx context.Context, id string) (tool.Tool, error) {
	t, ok := f.tools[id]
	if !ok {
		return tool.Tool{}, tool.ErrToolNotFound
	}
	return t, nil
}

func (f *fakeToolRepo) Update(ctx context.Context, t tool.Tool) error {
	f.tools[t.ID] = t
	return nil
}

func (f *fakeToolRepo) Delete(ctx context.Context, id string) error {
	delete(f.tools, id)
	return nil
}

func (f *fakeToolRepo) List(ctx context.Context, filter tool.ToolFilter) ([]tool.Tool, int64, error) {
	return nil, 0, nil
}

type fakeUserRepo struct {
	user.UserRepository
	users map[string]user.User
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func authedContext(t *testing.T, userID string, role user.Role) context.Context {
	t.Helper()
	tok := jwt.New()
	require.NoError(t, tok.Set("user_id", userID))
	require.NoError(t, tok.Set("role", string(role)))
	return jwtauth.NewContext(context.Background(), tok, nil)
}

func newService(tools ...tool.Tool) (*fakeToolRepo, tool.ToolService) {
	repo := &fakeToolRepo{tools: map[string]tool.Tool{}}
	for _, t := range tools {
		repo.tools[t.ID] = t
	}
	users := &fakeUserRepo{users: map[string]user.User{
		"user-1": {ID: "user-1", Email: "one@fieldworks.test", Role: user.RoleEmployee},
	}}
	return repo, NewToolService(repo, users)
}

func availableDrill() tool.Tool {
	return tool.Tool{ID: "tool-1", Name: "Hammer drill", Status: tool.StatusAvailable}
}

func TestToolService_Assign(t *testing.T) {
	repo, svc := newService(availableDrill())
	ctx := authedContext(t, "admin-1", user.RoleAdmin)

	resp, err := svc.Assign(ctx, tool.AssignToolRequest{ID: "tool-1", UserID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, string(tool.StatusAssigned), resp.Status)
	require.NotNil(t, resp.AssignedTo)
	assert.Equal(t, "user-1", *resp.AssignedTo)

	stored := repo.tools["tool-1"]
	assert.Equal(t, tool.StatusAssigned, stored.Status)
	assert.NotNil(t, stored.AssignedAt)
}

func TestToolService_Assign_RejectsSecondAssignment(t *testing.T) {
	userID := "user-1"
	now := time.Now()
	assigned := tool.Tool{
		ID:         "tool-1",
		Name:       "Hammer drill",
		Status:     tool.StatusAssigned,
		AssignedTo: &userID,
		AssignedAt: &now,
	}
	_, svc := newService(assigned)
	ctx := authedContext(t, "admin-1", user.RoleAdmin)

	_, err := svc.Assign(ctx, tool.AssignToolRequest{ID: "tool-1", UserID: "user-1"})
	assert.ErrorIs(t, err, tool.ErrToolNotAvailable)
}

func TestToolService_Assign_RejectsRetiredTool(t *testing.T) {
	retired := availableDrill()
	retired.Status = tool.StatusRetired
	_, svc := newService(retired)
	ctx := authedContext(t, "admin-1", user.RoleAdmin)

	_, err := svc.Assign(ctx, tool.AssignToolRequest{ID: "tool-1", UserID: "user-1"})
	assert.ErrorIs(t, err, tool.ErrToolRetired)
}

func TestToolService_Assign_RejectsUnknownUser(t *testing.T) {
	_, svc := newService(availableDrill())
	ctx := authedContext(t, "admin-1", user.RoleAdmin)

	_, err := svc.Assign(ctx, tool.AssignToolRequest{ID: "tool-1", UserID: "ghost"})
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestToolService_Assign_AdminOnly(t *testing.T) {
	_, svc := newService(availableDrill())
	ctx := authedContext(t, "user-1", user.RoleEmployee)

	_, err := svc.Assign(ctx, tool.AssignToolRequest{ID: "tool-1", UserID: "user-1"})
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)
}

func TestToolService_Return(t *testing.T) {
	userID := "user-1"
	now := time.Now()
	assigned := tool.Tool{
		ID:         "tool-1",
		Name:       "Hammer drill",
		Status:     tool.StatusAssigned,
		AssignedTo: &userID,
		AssignedAt: &now,
	}
	repo, svc := newService(assigned)

	// Another employee cannot return it.
	_, err := svc.Return(authedContext(t, "user-2", user.RoleEmployee), "tool-1")
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)

	// The assignee can.
	resp, err := svc.Return(authedContext(t, "user-1", user.RoleEmployee), "tool-1")
	require.NoError(t, err)
	assert.Equal(t, string(tool.StatusAvailable), resp.Status)
	assert.Nil(t, resp.AssignedTo)

	stored := repo.tools["tool-1"]
	assert.Nil(t, stored.AssignedTo)
	assert.Nil(t, stored.AssignedAt)

	// Returning twice reports the tool is no longer assigned.
	_, err = svc.Return(authedContext(t, "user-1", user.RoleEmployee), "tool-1")
	assert.ErrorIs(t, err, tool.ErrToolNotAssigned)
}

func TestToolService_Update_RejectsStatusChangeWhileAssigned(t *testing.T) {
	userID := "user-1"
	assigned := tool.Tool{
		ID:         "tool-1",
		Name:       "Hammer drill",
		Status:     tool.StatusAssigned,
		AssignedTo: &userID,
	}
	_, svc := newService(assigned)
	ctx := authedContext(t, "admin-1", user.RoleAdmin)

	status := string(tool.StatusRetired)
	_, err := svc.Update(ctx, tool.UpdateToolRequest{ID: "tool-1", Status: &status})
	assert.ErrorIs(t, err, tool.ErrToolNotAvailable)
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/apperr"
	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/authz"
	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/middleware"
	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/models"
)

func newUserServiceForTest() (UserService, AuthService, *fakeUserRepo, *fakeTaskRepo, *fakeCommentRepo) {
	users := newFakeUserRepo()
	tasks := newFakeTaskRepo()
	comments := newFakeCommentRepo(users)
	auth := NewAuthService([]byte("test-secret"), time.Hour)
	svc := NewUserService(users, tasks, comments, auth, nil)
	return svc, auth, users, tasks, comments
}

func TestSignup(t *testing.T) {
	svc, _, _, _, _ := newUserServiceForTest()
	ctx := context.Background()

	user, err := svc.Signup(ctx, "Alice", "alice@example.com", "hunter22", "", "")
	require.NoError(t, err)
	assert.Equal(t, authz.RoleUser, user.Role, "role defaults to user")
	assert.NotEmpty(t, user.Avatar, "avatar gets a default")
	assert.NotEqual(t, "hunter22", user.PasswordHash)

	_, err = svc.Signup(ctx, "Impostor", "ALICE@example.com", "other", "", "")
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err), "email match is case-insensitive")

	_, err = svc.Signup(ctx, "", "new@example.com", "pw", "", "")
	assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err))

	_, err = svc.Signup(ctx, "Eve", "eve@example.com", "pw", "", "root")
	assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err))
}

func TestPasswordRoundTrip(t *testing.T) {
	_, auth, _, _, _ := newUserServiceForTest()

	hash, err := auth.HashPassword("hunter22")
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(hash, "hunter22"))
	assert.False(t, auth.CheckPassword(hash, "wrong"))
}

func TestTokenRoundTrip(t *testing.T) {
	_, auth, _, _, _ := newUserServiceForTest()

	user := &models.User{ID: 42, Role: authz.RoleAdmin}
	token, err := auth.GenerateToken(user)
	require.NoError(t, err)

	claims, err := middleware.ParseToken(token, []byte("test-secret"))
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, authz.RoleAdmin, claims.Role)

	_, err = middleware.ParseToken(token, []byte("wrong-secret"))
	assert.Error(t, err)
}

func TestUserStats(t *testing.T) {
	svc, _, users, tasks, comments := newUserServiceForTest()
	ctx := context.Background()

	bob := users.add("Bob", "bob@example.com", authz.RoleUser)

	require.NoError(t, tasks.Store(ctx, &models.Task{Title: "a", AssigneeID: bob.ID, Status: models.StatusTodo}))
	require.NoError(t, tasks.Store(ctx, &models.Task{Title: "b", AssigneeID: bob.ID, Status: models.StatusCompleted}))
	require.NoError(t, tasks.Store(ctx, &models.Task{Title: "c", AssigneeID: 999, Status: models.StatusCompleted}))
	require.NoError(t, comments.Store(ctx, &models.Comment{TaskID: 1, AuthorID: bob.ID, Content: "hi"}))

	stats, err := svc.Stats(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Tasks)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 1, stats.Comments)
}

func TestUpdateProfileKeepsUnsetFields(t *testing.T) {
	svc, _, users, _, _ := newUserServiceForTest()
	ctx := context.Background()

	alice := users.add("Alice", "alice@example.com", authz.RoleUser)

	updated, err := svc.UpdateProfile(ctx, alice.ID, "", "", "new bio")
	require.NoError(t, err)
	assert.Equal(t, "Alice", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email)
	assert.Equal(t, "new bio", updated.Bio)

	_, err = svc.UpdateProfile(ctx, 999, "x", "", "")
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

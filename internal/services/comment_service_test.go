package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/apperr"
	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/authz"
	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/models"
)

type commentFixture struct {
	svc      CommentService
	notifier *recorderNotifier
	activity *recorderActivity
	hub      *recorderPublisher

	author   models.Actor
	assignee models.Actor
	admin    models.Actor
	taskID   int64
}

func newCommentFixture(t *testing.T) *commentFixture {
	t.Helper()
	users := newFakeUserRepo()
	author := users.add("Alice", "alice@example.com", authz.RoleUser)
	assignee := users.add("Bob", "bob@example.com", authz.RoleUser)
	admin := users.add("Dora", "dora@example.com", authz.RoleAdmin)

	tasks := newFakeTaskRepo()
	task := &models.Task{Title: "Ship the release", CreatorID: author.ID, AssigneeID: assignee.ID, StageID: 1}
	require.NoError(t, tasks.Store(context.Background(), task))

	f := &commentFixture{
		notifier: &recorderNotifier{},
		activity: &recorderActivity{},
		hub:      &recorderPublisher{},
		author:   models.Actor{UserID: author.ID, Role: author.Role},
		assignee: models.Actor{UserID: assignee.ID, Role: assignee.Role},
		admin:    models.Actor{UserID: admin.ID, Role: admin.Role},
		taskID:   task.ID,
	}
	f.svc = NewCommentService(newFakeCommentRepo(users), tasks, f.notifier, f.activity, f.hub)
	return f
}

func TestCommentAdd(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	comment, err := f.svc.Add(ctx, f.taskID, f.author, "looks good to me")
	require.NoError(t, err)
	require.NotNil(t, comment.Author)
	assert.Equal(t, "Alice", comment.Author.Name)

	require.Len(t, f.hub.events, 1)
	assert.Equal(t, "comment_added", f.hub.events[0].Event)

	require.Len(t, f.notifier.calls, 1)
	assert.Equal(t, f.assignee.UserID, f.notifier.calls[0].Recipient)
	assert.Contains(t, f.notifier.calls[0].Message, "Alice commented on")

	require.Len(t, f.activity.entries, 1)
	assert.Equal(t, models.ActionCommentAdded, f.activity.entries[0].Action)
}

func TestCommentAddByAssigneeSkipsSelfNotification(t *testing.T) {
	f := newCommentFixture(t)

	_, err := f.svc.Add(context.Background(), f.taskID, f.assignee, "on it")
	require.NoError(t, err)
	assert.Empty(t, f.notifier.calls)
}

func TestCommentAddValidation(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	_, err := f.svc.Add(ctx, f.taskID, f.author, "   ")
	assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err))

	_, err = f.svc.Add(ctx, 999, f.author, "orphan")
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestCommentUpdateAuthorOnly(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	comment, err := f.svc.Add(ctx, f.taskID, f.author, "draft")
	require.NoError(t, err)

	// even an admin cannot edit someone else's words
	_, err = f.svc.Update(ctx, comment.ID, f.admin, "edited")
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	updated, err := f.svc.Update(ctx, comment.ID, f.author, "final")
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Content)
	assert.Equal(t, "comment_updated", f.hub.events[len(f.hub.events)-1].Event)
}

func TestCommentDeleteAuthorOnly(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	comment, err := f.svc.Add(ctx, f.taskID, f.author, "to be removed")
	require.NoError(t, err)

	err = f.svc.Delete(ctx, comment.ID, f.assignee)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	require.NoError(t, f.svc.Delete(ctx, comment.ID, f.author))
	assert.Equal(t, "comment_deleted", f.hub.events[len(f.hub.events)-1].Event)

	err = f.svc.Delete(ctx, comment.ID, f.author)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

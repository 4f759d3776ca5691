package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/apperr"
	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/models"
	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/realtime"
	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/repositories"
)

type CommentService interface {
	ListForTask(ctx context.Context, taskID int64) ([]models.Comment, error)
	Add(ctx context.Context, taskID int64, actor models.Actor, content string) (*models.Comment, error)
	// Update and Delete are author-only; role does not override.
	Update(ctx context.Context, id int64, actor models.Actor, content string) (*models.Comment, error)
	Delete(ctx context.Context, id int64, actor models.Actor) error
}

type commentService struct {
	repo     repositories.CommentRepository
	tasks    repositories.TaskRepository
	notifier NotificationService
	activity ActivityService
	hub      realtime.Publisher
}

func NewCommentService(
	repo repositories.CommentRepository,
	tasks repositories.TaskRepository,
	notifier NotificationService,
	activity ActivityService,
	hub realtime.Publisher,
) CommentService {
	return &commentService{repo: repo, tasks: tasks, notifier: notifier, activity: activity, hub: hub}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func (s *commentService) ListForTask(ctx context.Context, taskID int64) ([]models.Comment, error) {
	return s.repo.FindByTask(ctx, taskID)
}

func (s *commentService) Add(ctx context.Context, taskID int64, actor models.Actor, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperr.New(apperr.InvalidInput, "content is required")
	}

	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperr.New(apperr.NotFound, "task not found")
	}

	comment := &models.Comment{
		TaskID:   taskID,
		AuthorID: actor.UserID,
		Content:  content,
	}
	if err := s.repo.Store(ctx, comment); err != nil {
		return nil, err
	}

	enriched, err := s.repo.FindByID(ctx, comment.ID)
	if err != nil || enriched == nil {
		enriched = comment
	}

	s.hub.Broadcast("comment_added", enriched)
	s.activity.Log(ctx, models.ActionCommentAdded, actor.UserID, &taskID,
		fmt.Sprintf("New comment added: %q", truncate(content, 40)))

	if task.AssigneeID != actor.UserID {
		authorName := ""
		if enriched.Author != nil {
			authorName = enriched.Author.Name
		}
		if _, err := s.notifier.Notify(ctx, task.AssigneeID,
			fmt.Sprintf("%s commented on %q", authorName, task.Title), &task.ID); err != nil {
			log.Printf("[comment][notify][err] task=%d: %v", taskID, err)
		}
	}

	return enriched, nil
}

func (s *commentService) Update(ctx context.Context, id int64, actor models.Actor, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperr.New(apperr.InvalidInput, "content is required")
	}

	comment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, apperr.New(apperr.NotFound, "comment not found")
	}
	if comment.AuthorID != actor.UserID {
		return nil, apperr.New(apperr.Forbidden, "not authorized")
	}

	if err := s.repo.UpdateContent(ctx, id, content); err != nil {
		return nil, err
	}
	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.hub.Broadcast("comment_updated", updated)
	s.activity.Log(ctx, models.ActionCommentUpdated, actor.UserID, &comment.TaskID, "Comment updated")

	return updated, nil
}

func (s *commentService) Delete(ctx context.Context, id int64, actor models.Actor) error {
	comment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if comment == nil {
		return apperr.New(apperr.NotFound, "comment not found")
	}
	if comment.AuthorID != actor.UserID {
		return apperr.New(apperr.Forbidden, "not authorized")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.hub.Broadcast("comment_deleted", map[string]int64{"id": id, "task_id": comment.TaskID})
	s.activity.Log(ctx, models.ActionCommentDeleted, actor.UserID, &comment.TaskID, "Comment deleted")
	return nil
}

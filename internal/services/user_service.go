package services

import (
	"context"
	"log"
	"strings"

	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/apperr"
	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/authz"
	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/models"
	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/repositories"
)

const defaultAvatar = "https://www.gravatar.com/avatar?d=mp"

type UserService interface {
	Signup(ctx context.Context, name, email, password, avatar, role string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateProfile(ctx context.Context, id int64, name, email, bio string) (*models.User, error)
	Stats(ctx context.Context, userID int64) (*models.UserStats, error)
}

type userService struct {
	repo     repositories.UserRepository
	tasks    repositories.TaskRepository
	comments repositories.CommentRepository
	auth     AuthService
	email    EmailService
}

func NewUserService(
	repo repositories.UserRepository,
	tasks repositories.TaskRepository,
	comments repositories.CommentRepository,
	auth AuthService,
	email EmailService,
) UserService {
	return &userService{repo: repo, tasks: tasks, comments: comments, auth: auth, email: email}
}

func (s *userService) Signup(ctx context.Context, name, email, password, avatar, role string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, apperr.New(apperr.InvalidInput, "name, email and password are required")
	}
	if role == "" {
		role = authz.RoleUser
	}
	if !authz.IsValidRole(role) {
		return nil, apperr.New(apperr.InvalidInput, "invalid role")
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.New(apperr.Conflict, "user with this email already exists")
	}

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unexpected, err, "hash password")
	}
	if avatar == "" {
		avatar = defaultAvatar
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Avatar:       avatar,
	}
	if err := s.repo.Store(ctx, user); err != nil {
		return nil, err
	}

	if s.email != nil {
		if err := s.email.SendWelcomeEmail(user.Email, user.Name); err != nil {
			log.Printf("[user][signup] warning: failed to send welcome email to %s: %v", user.Email, err)
		}
	}
	return user, nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.repo.FindByEmail(ctx, email)
}

func (s *userService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.New(apperr.NotFound, "user not found")
	}
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	return s.repo.FindAll(ctx)
}

func (s *userService) UpdateProfile(ctx context.Context, id int64, name, email, bio string) (*models.User, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = current.Name
	}
	if email == "" {
		email = current.Email
	}
	return s.repo.UpdateProfile(ctx, id, name, email, bio)
}

func (s *userService) Stats(ctx context.Context, userID int64) (*models.UserStats, error) {
	assigned, err := s.tasks.CountByAssignee(ctx, userID, nil)
	if err != nil {
		return nil, err
	}
	completedStatus := models.StatusCompleted
	completed, err := s.tasks.CountByAssignee(ctx, userID, &completedStatus)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.CountByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.UserStats{Tasks: assigned, Comments: comments, Completed: completed}, nil
}

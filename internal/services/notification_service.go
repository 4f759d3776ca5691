package services

import (
	"context"
	"log"

	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/models"
	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/realtime"
	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/repositories"
)

const DefaultNotificationLimit = 50

type NotificationService interface {
	// Notify persists a notification, then publishes it on the recipient's
	// private channel. Publish failure never fails persistence.
	Notify(ctx context.Context, recipientID int64, message string, taskID *int64) (*models.Notification, error)
	ListFor(ctx context.Context, userID int64, limit int) ([]models.Notification, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context, userID int64) error
}

type notificationService struct {
	repo  repositories.NotificationRepository
	users repositories.UserRepository
	hub   realtime.Publisher
	tg    *TelegramService
}

func NewNotificationService(
	repo repositories.NotificationRepository,
	users repositories.UserRepository,
	hub realtime.Publisher,
	tg *TelegramService,
) NotificationService {
	return &notificationService{repo: repo, users: users, hub: hub, tg: tg}
}

func (s *notificationService) Notify(ctx context.Context, recipientID int64, message string, taskID *int64) (*models.Notification, error) {
	n := &models.Notification{
		RecipientID: recipientID,
		Message:     message,
		TaskID:      taskID,
	}
	if err := s.repo.Store(ctx, n); err != nil {
		return nil, err
	}

	s.hub.ToUser(recipientID, "notification", n)
	s.mirrorToTelegram(ctx, recipientID, message)
	return n, nil
}

func (s *notificationService) mirrorToTelegram(ctx context.Context, recipientID int64, message string) {
	if s.tg == nil {
		return
	}
	chatID, allow, err := s.users.GetTelegramSettings(ctx, recipientID)
	if err != nil {
		log.Printf("[notify][tg] get telegram settings failed: user=%d err=%v", recipientID, err)
		return
	}
	if !allow || chatID == 0 {
		return
	}
	if err := s.tg.SendMessage(chatID, message); err != nil {
		log.Printf("[notify][tg][err] user=%d: %v", recipientID, err)
	}
}

func (s *notificationService) ListFor(ctx context.Context, userID int64, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = DefaultNotificationLimit
	}
	return s.repo.FindByRecipient(ctx, userID, limit)
}

func (s *notificationService) MarkRead(ctx context.Context, id int64) error {
	return s.repo.MarkRead(ctx, id)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllRead(ctx, userID)
}

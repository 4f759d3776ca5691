package repositories

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/models"
)

type NotificationRepository interface {
	Store(ctx context.Context, n *models.Notification) error
	FindByRecipient(ctx context.Context, userID int64, limit int) ([]models.Notification, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context, userID int64) error
}

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Store(ctx context.Context, n *models.Notification) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO notifications (user_id, message, task_id, is_read, created_at)
		 VALUES ($1,$2,$3,false,NOW()) RETURNING id, created_at`,
		n.RecipientID, n.Message, n.TaskID,
	).Scan(&n.ID, &n.CreatedAt)
	return errors.Wrap(err, "store notification")
}

func (r *notificationRepository) FindByRecipient(ctx context.Context, userID int64, limit int) ([]models.Notification, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, message, task_id, is_read, created_at
		 FROM notifications WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "list notifications")
	}
	defer rows.Close()

	var list []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.Message, &n.TaskID, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan notification")
		}
		list = append(list, n)
	}
	return list, errors.Wrap(rows.Err(), "list notifications")
}

func (r *notificationRepository) MarkRead(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read=true WHERE id=$1`, id)
	return errors.Wrap(err, "mark notification read")
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read=true WHERE user_id=$1 AND is_read=false`, userID)
	return errors.Wrap(err, "mark all notifications read")
}

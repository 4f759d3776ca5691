package repositories

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/models"
)

type ActivityRepository interface {
	Store(ctx context.Context, a *models.Activity) error
	// FindByIDEnriched joins actor and task display fields for broadcast.
	FindByIDEnriched(ctx context.Context, id int64) (*models.Activity, error)
	FindByTask(ctx context.Context, taskID int64, limit int) ([]models.Activity, error)
	FindRecent(ctx context.Context, limit int) ([]models.Activity, error)
}

type activityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) ActivityRepository {
	return &activityRepository{db: db}
}

// Tasks may be deleted after the fact, so the task join is a LEFT JOIN and
// actor fields tolerate removed users the same way.
const activitySelect = `
SELECT a.id, a.action, a.user_id, a.task_id, a.details, a.created_at,
       COALESCE(u.name, ''), COALESCE(u.email, ''), COALESCE(u.avatar, ''),
       COALESCE(t.title, '')
FROM activities a
LEFT JOIN users u ON u.id = a.user_id
LEFT JOIN tasks t ON t.id = a.task_id`

func scanActivity(row interface{ Scan(...any) error }) (*models.Activity, error) {
	a := &models.Activity{Actor: &models.UserRef{}}
	err := row.Scan(&a.ID, &a.Action, &a.ActorID, &a.TaskID, &a.Details, &a.CreatedAt,
		&a.Actor.Name, &a.Actor.Email, &a.Actor.Avatar, &a.TaskTitle)
	if err != nil {
		return nil, err
	}
	a.Actor.ID = a.ActorID
	return a, nil
}

func (r *activityRepository) Store(ctx context.Context, a *models.Activity) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO activities (action, user_id, task_id, details, created_at)
		 VALUES ($1,$2,$3,$4,NOW()) RETURNING id, created_at`,
		a.Action, a.ActorID, a.TaskID, a.Details,
	).Scan(&a.ID, &a.CreatedAt)
	return errors.Wrap(err, "store activity")
}

func (r *activityRepository) FindByIDEnriched(ctx context.Context, id int64) (*models.Activity, error) {
	a, err := scanActivity(r.db.QueryRowContext(ctx, activitySelect+` WHERE a.id=$1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find activity")
	}
	return a, nil
}

func (r *activityRepository) FindByTask(ctx context.Context, taskID int64, limit int) ([]models.Activity, error) {
	return r.query(ctx, activitySelect+` WHERE a.task_id=$1 ORDER BY a.created_at DESC LIMIT $2`, taskID, limit)
}

func (r *activityRepository) FindRecent(ctx context.Context, limit int) ([]models.Activity, error) {
	return r.query(ctx, activitySelect+` ORDER BY a.created_at DESC LIMIT $1`, limit)
}

func (r *activityRepository) query(ctx context.Context, q string, args ...interface{}) ([]models.Activity, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list activities")
	}
	defer rows.Close()

	var list []models.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan activity")
		}
		list = append(list, *a)
	}
	return list, errors.Wrap(rows.Err(), "list activities")
}

package repositories

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/models"
)

type StageRepository interface {
	Store(ctx context.Context, stage *models.WorkflowStage) error
	FindByID(ctx context.Context, id int64) (*models.WorkflowStage, error)
	FindAll(ctx context.Context) ([]models.WorkflowStage, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, stage *models.WorkflowStage) error
	Delete(ctx context.Context, id int64) error
	SetOrder(ctx context.Context, id int64, order int) error
}

type stageRepository struct {
	db *sql.DB
}

func NewStageRepository(db *sql.DB) StageRepository {
	return &stageRepository{db: db}
}

func (r *stageRepository) Store(ctx context.Context, stage *models.WorkflowStage) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO workflow_stages (name, stage_order, color, created_at)
		 VALUES ($1,$2,$3,NOW()) RETURNING id, created_at`,
		stage.Name, stage.Order, stage.Color,
	).Scan(&stage.ID, &stage.CreatedAt)
	return errors.Wrap(err, "store stage")
}

func (r *stageRepository) FindByID(ctx context.Context, id int64) (*models.WorkflowStage, error) {
	s := &models.WorkflowStage{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, stage_order, color, created_at FROM workflow_stages WHERE id=$1`, id,
	).Scan(&s.ID, &s.Name, &s.Order, &s.Color, &s.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find stage")
	}
	return s, nil
}

func (r *stageRepository) FindAll(ctx context.Context) ([]models.WorkflowStage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, stage_order, color, created_at FROM workflow_stages ORDER BY stage_order ASC`)
	if err != nil {
		return nil, errors.Wrap(err, "list stages")
	}
	defer rows.Close()

	var stages []models.WorkflowStage
	for rows.Next() {
		var s models.WorkflowStage
		if err := rows.Scan(&s.ID, &s.Name, &s.Order, &s.Color, &s.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan stage")
		}
		stages = append(stages, s)
	}
	return stages, errors.Wrap(rows.Err(), "list stages")
}

func (r *stageRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM workflow_stages`).Scan(&n)
	return n, errors.Wrap(err, "count stages")
}

func (r *stageRepository) Update(ctx context.Context, stage *models.WorkflowStage) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE workflow_stages SET name=$1, color=$2 WHERE id=$3`,
		stage.Name, stage.Color, stage.ID)
	return errors.Wrap(err, "update stage")
}

func (r *stageRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM workflow_stages WHERE id=$1`, id)
	return errors.Wrap(err, "delete stage")
}

func (r *stageRepository) SetOrder(ctx context.Context, id int64, order int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE workflow_stages SET stage_order=$1 WHERE id=$2`, order, id)
	return errors.Wrap(err, "set stage order")
}

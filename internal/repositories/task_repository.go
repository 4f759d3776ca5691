package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/models"
)

type TaskRepository interface {
	Store(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id int64) (*models.Task, error)
	FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id int64) error

	UpdateStage(ctx context.Context, id, stageID int64, status models.TaskStatus) error
	UpdateAssignee(ctx context.Context, id, assigneeID int64) error

	AddSubtask(ctx context.Context, taskID int64, title string) error
	UpdateSubtask(ctx context.Context, taskID, subtaskID int64, title *string, isDone *bool) (bool, error)
	DeleteSubtask(ctx context.Context, taskID, subtaskID int64) (bool, error)
	ListSubtasks(ctx context.Context, taskID int64) ([]models.Subtask, error)

	CountByStage(ctx context.Context, stageID int64) (int, error)
	CountByAssignee(ctx context.Context, userID int64, status *models.TaskStatus) (int, error)
	CountOverdue(ctx context.Context) (int, error)
}

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskSelect = `
SELECT t.id, t.title, t.description, t.priority, t.status,
       t.created_by, t.assigned_to, t.due_date, t.workflow_stage,
       t.created_at, t.updated_at,
       cu.name, cu.email, cu.avatar,
       au.name, au.email, au.avatar,
       ws.name, ws.stage_order, ws.color, ws.created_at
FROM tasks t
JOIN users cu ON cu.id = t.created_by
JOIN users au ON au.id = t.assigned_to
JOIN workflow_stages ws ON ws.id = t.workflow_stage`

func scanTask(row interface{ Scan(...any) error }) (*models.Task, error) {
	t := &models.Task{
		Creator:  &models.UserRef{},
		Assignee: &models.UserRef{},
		Stage:    &models.WorkflowStage{},
	}
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Priority, &t.Status,
		&t.CreatorID, &t.AssigneeID, &t.DueDate, &t.StageID,
		&t.CreatedAt, &t.UpdatedAt,
		&t.Creator.Name, &t.Creator.Email, &t.Creator.Avatar,
		&t.Assignee.Name, &t.Assignee.Email, &t.Assignee.Avatar,
		&t.Stage.Name, &t.Stage.Order, &t.Stage.Color, &t.Stage.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Creator.ID = t.CreatorID
	t.Assignee.ID = t.AssigneeID
	t.Stage.ID = t.StageID
	return t, nil
}

func (r *taskRepository) Store(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (
			title, description, priority, status, created_by, assigned_to,
			due_date, workflow_stage, created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		task.Title, task.Description, task.Priority, task.Status,
		task.CreatorID, task.AssigneeID, task.DueDate, task.StageID,
		task.CreatedAt, task.UpdatedAt,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	return errors.Wrap(err, "store task")
}

func (r *taskRepository) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	task, err := scanTask(r.db.QueryRowContext(ctx, taskSelect+" WHERE t.id = $1", id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find task")
	}
	subtasks, err := r.ListSubtasks(ctx, id)
	if err != nil {
		return nil, err
	}
	task.Subtasks = subtasks
	return task, nil
}

func (r *taskRepository) FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	baseQuery := taskSelect

	conditions := []string{}
	args := []interface{}{}
	argID := 1

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("t.status = $%d", argID))
		args = append(args, *filter.Status)
		argID++
	}
	if filter.Priority != nil {
		conditions = append(conditions, fmt.Sprintf("t.priority = $%d", argID))
		args = append(args, *filter.Priority)
		argID++
	}
	if filter.AssigneeID != nil {
		conditions = append(conditions, fmt.Sprintf("t.assigned_to = $%d", argID))
		args = append(args, *filter.AssigneeID)
		argID++
	}
	if filter.CreatorID != nil {
		conditions = append(conditions, fmt.Sprintf("t.created_by = $%d", argID))
		args = append(args, *filter.CreatorID)
		argID++
	}
	if filter.StageID != nil {
		conditions = append(conditions, fmt.Sprintf("t.workflow_stage = $%d", argID))
		args = append(args, *filter.StageID)
		argID++
	}
	if filter.TitleContains != nil {
		conditions = append(conditions, fmt.Sprintf("t.title ILIKE $%d", argID))
		args = append(args, "%"+*filter.TitleContains+"%")
		argID++
	}

	if len(conditions) > 0 {
		baseQuery += " WHERE " + strings.Join(conditions, " AND ")
	}
	baseQuery += " ORDER BY t.created_at DESC"

	rows, err := r.db.QueryContext(ctx, baseQuery, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list tasks")
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan task")
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list tasks")
	}
	for i := range tasks {
		subtasks, err := r.ListSubtasks(ctx, tasks[i].ID)
		if err != nil {
			return nil, err
		}
		tasks[i].Subtasks = subtasks
	}
	return tasks, nil
}

func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks SET
			title=$1, description=$2, priority=$3, assigned_to=$4,
			due_date=$5, updated_at=$6
		WHERE id=$7`
	_, err := r.db.ExecContext(ctx, query,
		task.Title, task.Description, task.Priority, task.AssigneeID,
		task.DueDate, task.UpdatedAt, task.ID,
	)
	return errors.Wrap(err, "update task")
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	// subtasks go with the task via ON DELETE CASCADE
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	return errors.Wrap(err, "delete task")
}

func (r *taskRepository) UpdateStage(ctx context.Context, id, stageID int64, status models.TaskStatus) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET workflow_stage=$1, status=$2, updated_at=NOW() WHERE id=$3`,
		stageID, status, id)
	return errors.Wrap(err, "update task stage")
}

func (r *taskRepository) UpdateAssignee(ctx context.Context, id, assigneeID int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET assigned_to=$1, updated_at=NOW() WHERE id=$2`, assigneeID, id)
	return errors.Wrap(err, "update task assignee")
}

func (r *taskRepository) AddSubtask(ctx context.Context, taskID int64, title string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO task_subtasks (task_id, title, is_done, created_at) VALUES ($1,$2,false,NOW())`,
		taskID, title)
	if err != nil {
		return errors.Wrap(err, "add subtask")
	}
	_, err = r.db.ExecContext(ctx, `UPDATE tasks SET updated_at=NOW() WHERE id=$1`, taskID)
	return errors.Wrap(err, "touch task")
}

func (r *taskRepository) UpdateSubtask(ctx context.Context, taskID, subtaskID int64, title *string, isDone *bool) (bool, error) {
	sets := []string{}
	args := []interface{}{}
	argID := 1

	if title != nil {
		sets = append(sets, fmt.Sprintf("title=$%d", argID))
		args = append(args, *title)
		argID++
	}
	if isDone != nil {
		sets = append(sets, fmt.Sprintf("is_done=$%d", argID))
		args = append(args, *isDone)
		argID++
	}
	if len(sets) == 0 {
		// nothing to change; report whether the subtask exists
		var exists bool
		err := r.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM task_subtasks WHERE id=$1 AND task_id=$2)`,
			subtaskID, taskID).Scan(&exists)
		return exists, errors.Wrap(err, "check subtask")
	}

	query := fmt.Sprintf("UPDATE task_subtasks SET %s WHERE id=$%d AND task_id=$%d",
		strings.Join(sets, ", "), argID, argID+1)
	args = append(args, subtaskID, taskID)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, errors.Wrap(err, "update subtask")
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		_, _ = r.db.ExecContext(ctx, `UPDATE tasks SET updated_at=NOW() WHERE id=$1`, taskID)
	}
	return n > 0, nil
}

func (r *taskRepository) DeleteSubtask(ctx context.Context, taskID, subtaskID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM task_subtasks WHERE id=$1 AND task_id=$2`, subtaskID, taskID)
	if err != nil {
		return false, errors.Wrap(err, "delete subtask")
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		_, _ = r.db.ExecContext(ctx, `UPDATE tasks SET updated_at=NOW() WHERE id=$1`, taskID)
	}
	return n > 0, nil
}

func (r *taskRepository) ListSubtasks(ctx context.Context, taskID int64) ([]models.Subtask, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, is_done, created_at FROM task_subtasks WHERE task_id=$1 ORDER BY id ASC`,
		taskID)
	if err != nil {
		return nil, errors.Wrap(err, "list subtasks")
	}
	defer rows.Close()

	subtasks := []models.Subtask{}
	for rows.Next() {
		var s models.Subtask
		if err := rows.Scan(&s.ID, &s.Title, &s.IsDone, &s.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan subtask")
		}
		subtasks = append(subtasks, s)
	}
	return subtasks, errors.Wrap(rows.Err(), "list subtasks")
}

func (r *taskRepository) CountByStage(ctx context.Context, stageID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE workflow_stage=$1`, stageID).Scan(&n)
	return n, errors.Wrap(err, "count tasks by stage")
}

func (r *taskRepository) CountByAssignee(ctx context.Context, userID int64, status *models.TaskStatus) (int, error) {
	var n int
	var err error
	if status != nil {
		err = r.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM tasks WHERE assigned_to=$1 AND status=$2`, userID, *status).Scan(&n)
	} else {
		err = r.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM tasks WHERE assigned_to=$1`, userID).Scan(&n)
	}
	return n, errors.Wrap(err, "count tasks by assignee")
}

func (r *taskRepository) CountOverdue(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE due_date IS NOT NULL AND due_date < NOW() AND status <> 'completed'`).Scan(&n)
	return n, errors.Wrap(err, "count overdue tasks")
}

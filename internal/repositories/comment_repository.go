package repositories

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/models"
)

type CommentRepository interface {
	Store(ctx context.Context, comment *models.Comment) error
	FindByID(ctx context.Context, id int64) (*models.Comment, error)
	FindByTask(ctx context.Context, taskID int64) ([]models.Comment, error)
	UpdateContent(ctx context.Context, id int64, content string) error
	Delete(ctx context.Context, id int64) error
	CountByAuthor(ctx context.Context, userID int64) (int, error)
}

type commentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) CommentRepository {
	return &commentRepository{db: db}
}

const commentSelect = `
SELECT c.id, c.task_id, c.user_id, c.content, c.created_at,
       u.name, u.email, u.avatar
FROM comments c
JOIN users u ON u.id = c.user_id`

func scanComment(row interface{ Scan(...any) error }) (*models.Comment, error) {
	c := &models.Comment{Author: &models.UserRef{}}
	err := row.Scan(&c.ID, &c.TaskID, &c.AuthorID, &c.Content, &c.CreatedAt,
		&c.Author.Name, &c.Author.Email, &c.Author.Avatar)
	if err != nil {
		return nil, err
	}
	c.Author.ID = c.AuthorID
	return c, nil
}

func (r *commentRepository) Store(ctx context.Context, comment *models.Comment) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO comments (task_id, user_id, content, created_at)
		 VALUES ($1,$2,$3,NOW()) RETURNING id, created_at`,
		comment.TaskID, comment.AuthorID, comment.Content,
	).Scan(&comment.ID, &comment.CreatedAt)
	return errors.Wrap(err, "store comment")
}

func (r *commentRepository) FindByID(ctx context.Context, id int64) (*models.Comment, error) {
	c, err := scanComment(r.db.QueryRowContext(ctx, commentSelect+` WHERE c.id=$1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find comment")
	}
	return c, nil
}

func (r *commentRepository) FindByTask(ctx context.Context, taskID int64) ([]models.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		commentSelect+` WHERE c.task_id=$1 ORDER BY c.created_at DESC`, taskID)
	if err != nil {
		return nil, errors.Wrap(err, "list comments")
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan comment")
		}
		comments = append(comments, *c)
	}
	return comments, errors.Wrap(rows.Err(), "list comments")
}

func (r *commentRepository) UpdateContent(ctx context.Context, id int64, content string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE comments SET content=$1 WHERE id=$2`, content, id)
	return errors.Wrap(err, "update comment")
}

func (r *commentRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id=$1`, id)
	return errors.Wrap(err, "delete comment")
}

func (r *commentRepository) CountByAuthor(ctx context.Context, userID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM comments WHERE user_id=$1`, userID).Scan(&n)
	return n, errors.Wrap(err, "count comments")
}

package repositories

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/models"
)

type UserRepository interface {
	Store(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	UpdateProfile(ctx context.Context, id int64, name, email, bio string) (*models.User, error)
	GetTelegramSettings(ctx context.Context, id int64) (chatID int64, allow bool, err error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userSelect = `SELECT id, name, email, password_hash, role, avatar, bio,
       telegram_chat_id, telegram_notify, created_at FROM users`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
		&u.Avatar, &u.Bio, &u.TelegramChatID, &u.TelegramNotify, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Store(ctx context.Context, user *models.User) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (name, email, password_hash, role, avatar, bio, telegram_chat_id, telegram_notify, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,NOW()) RETURNING id, created_at`,
		user.Name, user.Email, user.PasswordHash, user.Role, user.Avatar, user.Bio,
		user.TelegramChatID, user.TelegramNotify,
	).Scan(&user.ID, &user.CreatedAt)
	return errors.Wrap(err, "store user")
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, userSelect+` WHERE id=$1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find user")
	}
	return u, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, userSelect+` WHERE LOWER(email)=LOWER($1)`, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find user by email")
	}
	return u, nil
}

func (r *userRepository) FindAll(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, userSelect+` ORDER BY id ASC`)
	if err != nil {
		return nil, errors.Wrap(err, "list users")
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan user")
		}
		users = append(users, *u)
	}
	return users, errors.Wrap(rows.Err(), "list users")
}

func (r *userRepository) UpdateProfile(ctx context.Context, id int64, name, email, bio string) (*models.User, error) {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET name=$1, email=$2, bio=$3 WHERE id=$4`,
		name, email, bio, id)
	if err != nil {
		return nil, errors.Wrap(err, "update profile")
	}
	return r.FindByID(ctx, id)
}

func (r *userRepository) GetTelegramSettings(ctx context.Context, id int64) (int64, bool, error) {
	var chatID int64
	var allow bool
	err := r.db.QueryRowContext(ctx,
		`SELECT telegram_chat_id, telegram_notify FROM users WHERE id=$1`, id,
	).Scan(&chatID, &allow)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, false, nil
		}
		return 0, false, errors.Wrap(err, "get telegram settings")
	}
	return chatID, allow, nil
}

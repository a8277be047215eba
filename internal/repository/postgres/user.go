package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/userdir/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

// uniqueViolation is the SQLSTATE reported by postgres when an insert
// hits the email unique constraint.
const uniqueViolation = "23505"

// UserRepository persists users in postgres. Writes go through the
// primary pool; lookups and listings go through the read pool, which may
// point at a replica and lag behind recent writes.
type UserRepository struct {
	write *Connection
	read  *Connection
}

func NewUserRepository(write, read *Connection) *UserRepository {
	return &UserRepository{
		write: write,
		read:  read,
	}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var user model.User
	query := `SELECT id, name, email FROM users WHERE email = $1`

	err := r.read.QueryRow(ctx, query, email).Scan(&user.ID, &user.Name, &user.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (name, email) VALUES ($1, $2) RETURNING id, name, email`

	var savedUser model.User
	err := r.write.QueryRow(ctx, query, user.Name, user.Email).Scan(
		&savedUser.ID, &savedUser.Name, &savedUser.Email,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.User{}, model.ErrConflict
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return savedUser, nil
}

func (r *UserRepository) ListAll(ctx context.Context) ([]model.User, error) {
	query := `SELECT id, name, email FROM users ORDER BY id`

	rows, err := r.read.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		var user model.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user rows: %w", err)
	}

	return users, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/adchain-api/infrastructure/database/postgres"
	"github.com/vfg2006/adchain-api/internal/domain"
)

const (
	usersTable = "users u"

	userColumns = "u.id, u.name, u.email, u.password_hash, u.active, u.role_id, u.created_at, u.updated_at"
)

type UserRepository interface {
	GetByEmail(email string) (*domain.User, error)
	GetByID(id int) (*domain.User, error)
}

type userRepository struct {
	conn *postgres.Connection
}

func NewUserRepository(conn *postgres.Connection) UserRepository {
	return &userRepository{
		conn: conn,
	}
}

func (r *userRepository) GetByEmail(email string) (*domain.User, error) {
	query, args, err := squirrel.
		Select(userColumns).
		From(usersTable).
		Where(squirrel.Eq{"u.email": email, "u.active": true}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear usuário: %w", err)
	}

	return user, nil
}

func (r *userRepository) GetByID(id int) (*domain.User, error) {
	query, args, err := squirrel.
		Select(userColumns).
		From(usersTable).
		Where(squirrel.Eq{"u.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear usuário: %w", err)
	}

	return user, nil
}

func scanUser(row squirrel.RowScanner) (*domain.User, error) {
	user := &domain.User{}

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Active,
		&user.RoleID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return user, nil
}

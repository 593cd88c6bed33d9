package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medhashaala/erp/internal/app/models"
	"github.com/medhashaala/erp/internal/pkg/apperrors"
	"github.com/medhashaala/erp/internal/pkg/dberrors"
	"github.com/medhashaala/erp/internal/pkg/logger"
)

var userColumns = []string{
	"id", "email", "password", "first_name", "last_name", "phone_number",
	"address", "role", "is_staff", "is_active", "created_at", "updated_at",
}

// IUserRepository defines the identity store operations consumed by the
// services.
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	CreateTx(ctx context.Context, tx pgx.Tx, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, offset, limit uint64) ([]*models.User, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, user *models.User) error
	UpdateTx(ctx context.Context, tx pgx.Tx, user *models.User) error
	Delete(ctx context.Context, id int64) error
}

// UserRepository handles identity rows in the 'users' table.
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and sets its generated ID.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.create(ctx, r.db, user)
}

// CreateTx inserts a new user within an existing transaction.
func (r *UserRepository) CreateTx(ctx context.Context, tx pgx.Tx, user *models.User) error {
	return r.create(ctx, tx, user)
}

func (r *UserRepository) create(ctx context.Context, q Querier, user *models.User) error {
	sql, args, err := psql.Insert("users").
		Columns("email", "password", "first_name", "last_name", "phone_number",
			"address", "role", "is_staff", "is_active").
		Values(user.Email, user.Password, user.FirstName, user.LastName,
			user.PhoneNumber, user.Address, user.Role, user.IsStaff, user.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create user query: %w", err)
	}

	err = q.QueryRow(ctx, sql, args...).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", user.Email).Msg("Error creating user")
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByEmail retrieves a user by email. The lookup is case-sensitive, as
// stored.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

func (r *UserRepository) getOne(ctx context.Context, pred interface{}) (*models.User, error) {
	sql, args, err := psql.Select(userColumns...).
		From("users").
		Where(pred).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	var user models.User
	err = scanUser(r.db.QueryRow(ctx, sql, args...), &user)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Msg("Error scanning user row")
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return &user, nil
}

// EmailExists checks whether an email is already taken.
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	sql, args, err := psql.Select("1").
		From("users").
		Where(squirrel.Eq{"email": email}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build email exists query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		logger.Error().Err(err).Str("email", email).Msg("Error checking email existence")
		return false, fmt.Errorf("error checking email existence: %w", err)
	}
	return exists, nil
}

// List retrieves users ordered by ID.
func (r *UserRepository) List(ctx context.Context, offset, limit uint64) ([]*models.User, error) {
	sql, args, err := psql.Select(userColumns...).
		From("users").
		OrderBy("id").
		Offset(offset).
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list users query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing users")
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		if err := scanUser(rows, &user); err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, &user)
	}
	return users, rows.Err()
}

// Count returns the total number of users.
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting users: %w", err)
	}
	return count, nil
}

// Update persists all mutable fields of the user.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	return r.update(ctx, r.db, user)
}

// UpdateTx persists the user within an existing transaction.
func (r *UserRepository) UpdateTx(ctx context.Context, tx pgx.Tx, user *models.User) error {
	return r.update(ctx, tx, user)
}

func (r *UserRepository) update(ctx context.Context, q Querier, user *models.User) error {
	sql, args, err := psql.Update("users").
		Set("email", user.Email).
		Set("password", user.Password).
		Set("first_name", user.FirstName).
		Set("last_name", user.LastName).
		Set("phone_number", user.PhoneNumber).
		Set("address", user.Address).
		Set("role", user.Role).
		Set("is_staff", user.IsStaff).
		Set("is_active", user.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": user.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update user query: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Int64("userID", user.ID).Msg("Error updating user")
		return fmt.Errorf("error updating user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// Delete hard-deletes a user. Profiles cascade; fact record stamps null out.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		logger.Error().Err(err).Int64("userID", id).Msg("Error deleting user")
		return fmt.Errorf("error deleting user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row, user *models.User) error {
	return row.Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName,
		&user.PhoneNumber, &user.Address, &user.Role, &user.IsStaff,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
}

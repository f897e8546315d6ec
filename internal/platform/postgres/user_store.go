package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/userdir-api/internal/domain"
	"github.com/phrazzld/userdir-api/internal/platform/logger"
	"github.com/phrazzld/userdir-api/internal/store"
)

// userColumns is the column list shared by all user queries,
// in the order scanUserRow expects.
const userColumns = "id, name, email, bio, profile_picture, created_at, updated_at"

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the
// UserStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// Create implements store.UserStore.Create
// It saves a new user to the database, handling domain validation.
// Returns store.ErrEmailExists if the email is already taken.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO users (id, name, email, bio, profile_picture, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Name,
		user.Email,
		user.Bio,
		user.ProfilePicture,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate email during user creation",
				slog.String("user_id", user.ID.String()))
			return fmt.Errorf("%w: %v", store.ErrEmailExists, err)
		}

		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return MapError(err)
	}

	log.Info("user created successfully",
		slog.String("user_id", user.ID.String()))
	return nil
}

// GetByID implements store.UserStore.GetByID
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUserRow(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.String("user_id", id.String()))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by ID",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return nil, err
	}

	return user, nil
}

// GetByEmail implements store.UserStore.GetByEmail
// The match is exact and case-sensitive.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUserRow(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by email",
			slog.String("error", err.Error()))
		return nil, err
	}

	return user, nil
}

// List implements store.UserStore.List
// It returns users matching the filter ordered by creation time descending.
// Returns an empty slice if no users match the criteria.
func (s *PostgresUserStore) List(ctx context.Context, filter store.ListFilter) ([]*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	where, args := searchCondition(filter.Search)
	query := fmt.Sprintf(
		`SELECT %s FROM users%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		userColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, limit, offset)

	log.Debug("listing users",
		slog.Int("limit", limit),
		slog.Int("offset", offset),
		slog.Bool("search", filter.Search != ""))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query users", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	users := []*domain.User{}
	for rows.Next() {
		user, err := scanUserRow(rows)
		if err != nil {
			log.Error("failed to scan user row", slog.String("error", err.Error()))
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	return users, nil
}

// Count implements store.UserStore.Count
// It returns the total number of users matching the filter's search term,
// ignoring pagination.
func (s *PostgresUserStore) Count(ctx context.Context, filter store.ListFilter) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where, args := searchCondition(filter.Search)
	query := `SELECT COUNT(*) FROM users` + where

	var count int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Error("failed to count users", slog.String("error", err.Error()))
		return 0, err
	}

	return count, nil
}

// Update implements store.UserStore.Update
// It applies the non-nil fields of the update to the user with the given ID,
// bumps updated_at, and returns the updated record.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) Update(
	ctx context.Context,
	id uuid.UUID,
	update store.UserUpdate,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	set, args := updateSetClause(update, time.Now().UTC())
	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE users SET %s WHERE id = $%d RETURNING %s`,
		set, len(args), userColumns,
	)

	user, err := scanUserRow(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found for update", slog.String("user_id", id.String()))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to update user",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return nil, MapError(err)
	}

	log.Info("user updated successfully", slog.String("user_id", id.String()))
	return user, nil
}

// Delete implements store.UserStore.Delete
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete user",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return err
	}

	if err := CheckRowsAffected(result, store.ErrUserNotFound); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("user not found for delete", slog.String("user_id", id.String()))
		}
		return err
	}

	log.Info("user deleted successfully", slog.String("user_id", id.String()))
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanUserRow scans a single user record in userColumns order.
func scanUserRow(row rowScanner) (*domain.User, error) {
	var user domain.User
	var bio, profilePicture sql.NullString

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&bio,
		&profilePicture,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if bio.Valid {
		user.Bio = &bio.String
	}
	if profilePicture.Valid {
		user.ProfilePicture = &profilePicture.String
	}

	return &user, nil
}

// searchCondition builds the WHERE clause for a case-insensitive substring
// match over name or email. Returns an empty clause when search is empty.
func searchCondition(search string) (string, []any) {
	if search == "" {
		return "", nil
	}
	pattern := "%" + escapeLikePattern(search) + "%"
	return ` WHERE (name ILIKE $1 OR email ILIKE $1)`, []any{pattern}
}

// escapeLikePattern escapes LIKE metacharacters so the search term is
// matched literally.
func escapeLikePattern(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// updateSetClause builds the SET clause for a partial user update.
// updated_at is always set; other columns only when the corresponding
// update field is non-nil. The next placeholder index after the returned
// args is len(args)+1.
func updateSetClause(update store.UserUpdate, updatedAt time.Time) (string, []any) {
	parts := []string{}
	args := []any{}

	appendSet := func(column string, value *string) {
		if value != nil {
			args = append(args, *value)
			parts = append(parts, fmt.Sprintf("%s = $%d", column, len(args)))
		}
	}

	appendSet("name", update.Name)
	appendSet("bio", update.Bio)
	appendSet("profile_picture", update.ProfilePicture)

	args = append(args, updatedAt)
	parts = append(parts, fmt.Sprintf("updated_at = $%d", len(args)))

	return strings.Join(parts, ", "), args
}

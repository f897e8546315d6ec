// Package store provides abstractions for data persistence.
package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/userdir-api/internal/domain"
)

// ListFilter narrows and pages a user listing.
// Search, when non-empty, matches users whose name OR email contains the
// term case-insensitively. Offset/Limit apply after filtering and sorting.
type ListFilter struct {
	Search string
	Offset int
	Limit  int
}

// UserUpdate describes a partial update of a user's profile.
// A nil field is left unchanged. Email and ID are deliberately absent:
// they can never be updated through this path.
type UserUpdate struct {
	Name           *string
	Bio            *string
	ProfilePicture *string
}

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by exact email match.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List returns users matching the filter, newest first.
	// Returns an empty slice when nothing matches.
	List(ctx context.Context, filter ListFilter) ([]*domain.User, error)

	// Count returns the total number of users matching the filter,
	// ignoring the filter's pagination fields.
	Count(ctx context.Context, filter ListFilter) (int64, error)

	// Update applies a partial profile update to the user with the given ID
	// and returns the updated record.
	// Returns ErrUserNotFound if the user does not exist.
	Update(ctx context.Context, id uuid.UUID, update UserUpdate) (*domain.User, error)

	// Delete removes a user from the store by their ID.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

package api

import (
	"encoding/json"
	"time"

	"github.com/phrazzld/userdir-api/internal/domain"
)

// CreateUserRequest defines the payload for the user creation endpoint.
// Bio and ProfilePicture are accepted and type-checked but not persisted
// at creation; profiles start empty and are filled in via update.
type CreateUserRequest struct {
	Name           string  `json:"name"  validate:"required"`
	Email          string  `json:"email" validate:"required,email"`
	Bio            *string `json:"bio"`
	ProfilePicture *string `json:"profilePicture"`
}

// DeleteUsersRequest defines the payload for the bulk delete endpoint.
// UserIDs is kept raw so the handler can distinguish a missing key from a
// value of the wrong shape.
type DeleteUsersRequest struct {
	UserIDs json.RawMessage `json:"userIds"`
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Bio            *string   `json:"bio"`
	ProfilePicture *string   `json:"profilePicture"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// UserEnvelope wraps a single user, as returned by the get and update
// endpoints.
type UserEnvelope struct {
	User UserResponse `json:"user"`
}

// UserListResponse is the response for the list endpoint.
type UserListResponse struct {
	Users       []UserResponse `json:"users"`
	TotalPages  int64          `json:"totalPages"`
	CurrentPage int            `json:"currentPage"`
}

// MessageResponse carries a plain status message.
type MessageResponse struct {
	Message string `json:"message"`
}

// userToResponse converts a domain.User to a UserResponse
func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:             user.ID.String(),
		Name:           user.Name,
		Email:          user.Email,
		Bio:            user.Bio,
		ProfilePicture: user.ProfilePicture,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}

// usersToResponse converts a slice of users, never returning nil so the
// JSON users field is always an array.
func usersToResponse(users []*domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, userToResponse(user))
	}
	return out
}

package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/userdir-api/internal/store"
)

// Client-visible violation messages. These are part of the external
// contract and must not be reworded.
const (
	msgNameRequired         = "Name is required"
	msgEmailRequired        = "Email is required"
	msgNameString           = "Name must be a string"
	msgBioString            = "Bio must be a string"
	msgProfilePictureString = "Profile picture must be a string"
	msgFieldNotUpdatable    = "%s Can not be updated" // e.g. "email Can not be updated"
	msgInvalidRequestFormat = "Invalid request format"
	msgInvalidUserIDs       = "Invalid user IDs"
	msgInvalidUserIDFormat  = "Invalid user ID format"
	msgUserNotFound         = "User not found"
	msgEmailAlreadyExists   = "Email already exists"
	msgUserDeleted          = "User deleted successfully"
	msgNoUsersFoundToDelete = "No users found to delete"
	msgUsersDeletedFmt      = "%d users deleted successfully"
	msgInvalidUserIDsFmt    = "Invalid user ID(s): %s"
)

// updatableFields is the allow-list for profile updates, in the order
// violations are reported. Email and id are deliberately excluded.
var updatableFields = []string{"name", "bio", "profilePicture"}

// ValidateCreateUser checks the raw request body against the create rule set:
// name present and non-empty, email present and syntactically valid, bio and
// profilePicture strings when present. All violations are collected in field
// order rather than stopping at the first failure.
// A non-nil error means the body was not a JSON object at all.
func ValidateCreateUser(v *validator.Validate, body []byte) (CreateUserRequest, []string, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return CreateUserRequest{}, nil, err
	}

	var req CreateUserRequest
	var typeViolations []string

	// Required string fields. A wrong-typed value is left empty so the
	// struct validation below reports it as missing.
	if s, present, isString := stringField(fields, "name"); present && isString {
		req.Name = s
	}
	if s, present, isString := stringField(fields, "email"); present && isString {
		req.Email = s
	}

	// Optional fields fail only on a type mismatch.
	if s, present, isString := stringField(fields, "bio"); present {
		if !isString {
			typeViolations = append(typeViolations, msgBioString)
		} else {
			req.Bio = &s
		}
	}
	if s, present, isString := stringField(fields, "profilePicture"); present {
		if !isString {
			typeViolations = append(typeViolations, msgProfilePictureString)
		} else {
			req.ProfilePicture = &s
		}
	}

	var violations []string
	if err := v.Struct(req); err != nil {
		var fieldErrors validator.ValidationErrors
		if !errors.As(err, &fieldErrors) {
			return req, nil, err
		}
		for _, fe := range fieldErrors {
			switch fe.Field() {
			case "Name":
				violations = append(violations, msgNameRequired)
			case "Email":
				violations = append(violations, msgEmailRequired)
			}
		}
	}

	violations = append(violations, typeViolations...)
	return req, violations, nil
}

// ValidateUpdateProfile checks that the body's field set is a subset of the
// update allow-list and that each submitted field is a string. Unknown keys
// are each reported by name; all violations are collected.
// A non-nil error means the body was not a JSON object at all.
func ValidateUpdateProfile(body []byte) (store.UserUpdate, []string, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return store.UserUpdate{}, nil, err
	}

	var violations []string

	// Unknown keys first, sorted for a deterministic message order.
	var unknown []string
	for key := range fields {
		if !isUpdatableField(key) {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		violations = append(violations, fmt.Sprintf(msgFieldNotUpdatable, key))
	}

	var update store.UserUpdate
	assign := func(key string, dst **string, typeMsg string) {
		s, present, isString := stringField(fields, key)
		if !present {
			return
		}
		if !isString {
			violations = append(violations, typeMsg)
			return
		}
		*dst = &s
	}
	assign("name", &update.Name, msgNameString)
	assign("bio", &update.Bio, msgBioString)
	assign("profilePicture", &update.ProfilePicture, msgProfilePictureString)

	return update, violations, nil
}

// stringField reports whether the key is present in the decoded body and,
// when it is, whether its value is a JSON string. A literal null is present
// but not a string: Unmarshal into *string treats null as a no-op, so it has
// to be recognized before decoding.
func stringField(fields map[string]json.RawMessage, key string) (value string, present, isString bool) {
	raw, ok := fields[key]
	if !ok {
		return "", false, false
	}
	if string(bytes.TrimSpace(raw)) == "null" {
		return "", true, false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", true, false
	}
	return s, true, true
}

func isUpdatableField(key string) bool {
	for _, f := range updatableFields {
		if f == key {
			return true
		}
	}
	return false
}

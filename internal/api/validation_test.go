package api

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCreateUser(t *testing.T) {
	v := validator.New()

	tests := []struct {
		name               string
		body               string
		expectedViolations []string
		expectMalformed    bool
	}{
		{
			name:               "valid_minimal",
			body:               `{"name":"Bob","email":"bob@x.com"}`,
			expectedViolations: nil,
		},
		{
			name:               "valid_with_optionals",
			body:               `{"name":"Bob","email":"bob@x.com","bio":"hi","profilePicture":"http://img"}`,
			expectedViolations: nil,
		},
		{
			name:               "empty_name",
			body:               `{"name":"","email":"bob@x.com"}`,
			expectedViolations: []string{"Name is required"},
		},
		{
			name:               "missing_everything",
			body:               `{}`,
			expectedViolations: []string{"Name is required", "Email is required"},
		},
		{
			name:               "bad_email",
			body:               `{"name":"Bob","email":"bob"}`,
			expectedViolations: []string{"Email is required"},
		},
		{
			name:               "non_string_name_reported_as_missing",
			body:               `{"name":7,"email":"bob@x.com"}`,
			expectedViolations: []string{"Name is required"},
		},
		{
			name:               "non_string_optionals",
			body:               `{"name":"Bob","email":"bob@x.com","bio":1,"profilePicture":[]}`,
			expectedViolations: []string{"Bio must be a string", "Profile picture must be a string"},
		},
		{
			name:               "null_values",
			body:               `{"name":null,"email":"bob@x.com","bio":null}`,
			expectedViolations: []string{"Name is required", "Bio must be a string"},
		},
		{
			name:            "not_an_object",
			body:            `[1,2]`,
			expectMalformed: true,
		},
		{
			name:            "not_json",
			body:            `hello`,
			expectMalformed: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req, violations, err := ValidateCreateUser(v, []byte(tc.body))

			if tc.expectMalformed {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expectedViolations, violations)

			if len(tc.expectedViolations) == 0 {
				assert.NotEmpty(t, req.Name)
				assert.NotEmpty(t, req.Email)
			}
		})
	}
}

func TestValidateUpdateProfile(t *testing.T) {
	tests := []struct {
		name               string
		body               string
		expectedViolations []string
		expectMalformed    bool
	}{
		{
			name:               "allow_listed_fields",
			body:               `{"name":"Bob","bio":"hi","profilePicture":"http://img"}`,
			expectedViolations: nil,
		},
		{
			name:               "empty_body_is_valid",
			body:               `{}`,
			expectedViolations: nil,
		},
		{
			name:               "email_rejected",
			body:               `{"email":"x@y.com"}`,
			expectedViolations: []string{"email Can not be updated"},
		},
		{
			name:               "unknown_keys_sorted",
			body:               `{"role":"admin","email":"x@y.com","bio":"hi"}`,
			expectedViolations: []string{"email Can not be updated", "role Can not be updated"},
		},
		{
			name:               "non_string_allowed_field",
			body:               `{"bio":42}`,
			expectedViolations: []string{"Bio must be a string"},
		},
		{
			name:            "not_an_object",
			body:            `"bio"`,
			expectMalformed: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			update, violations, err := ValidateUpdateProfile([]byte(tc.body))

			if tc.expectMalformed {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expectedViolations, violations)

			if tc.name == "allow_listed_fields" {
				require.NotNil(t, update.Name)
				require.NotNil(t, update.Bio)
				require.NotNil(t, update.ProfilePicture)
				assert.Equal(t, "Bob", *update.Name)
				assert.Equal(t, "hi", *update.Bio)
			}
		})
	}
}

func TestValidateUpdateProfile_NullKeepsFieldUnset(t *testing.T) {
	// A JSON null for an allow-listed field is not a string and must not
	// clear the stored value.
	update, violations, err := ValidateUpdateProfile([]byte(`{"bio":null}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Bio must be a string"}, violations)
	assert.Nil(t, update.Bio)
}

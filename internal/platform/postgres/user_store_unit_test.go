package postgres

import (
	"testing"
	"time"

	"github.com/phrazzld/userdir-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeLikePattern(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "alice", "alice"},
		{"percent", "50%", `50\%`},
		{"underscore", "a_b", `a\_b`},
		{"backslash", `a\b`, `a\\b`},
		{"mixed", `_%\`, `\_\%\\`},
		{"empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, escapeLikePattern(tc.input))
		})
	}
}

func TestSearchCondition(t *testing.T) {
	t.Run("empty_search_has_no_clause", func(t *testing.T) {
		where, args := searchCondition("")
		assert.Empty(t, where)
		assert.Empty(t, args)
	})

	t.Run("search_builds_ilike_on_name_or_email", func(t *testing.T) {
		where, args := searchCondition("Ali")
		assert.Equal(t, ` WHERE (name ILIKE $1 OR email ILIKE $1)`, where)
		require.Len(t, args, 1)
		assert.Equal(t, "%Ali%", args[0])
	})

	t.Run("metacharacters_matched_literally", func(t *testing.T) {
		_, args := searchCondition("100%")
		require.Len(t, args, 1)
		assert.Equal(t, `%100\%%`, args[0])
	})
}

func TestUpdateSetClause(t *testing.T) {
	now := time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)
	name := "Bob"
	bio := "hi"
	picture := "http://img"

	tests := []struct {
		name         string
		update       store.UserUpdate
		expectedSet  string
		expectedArgs []any
	}{
		{
			name:         "empty_update_still_bumps_updated_at",
			update:       store.UserUpdate{},
			expectedSet:  "updated_at = $1",
			expectedArgs: []any{now},
		},
		{
			name:         "single_field",
			update:       store.UserUpdate{Bio: &bio},
			expectedSet:  "bio = $1, updated_at = $2",
			expectedArgs: []any{bio, now},
		},
		{
			name:         "all_fields_in_stable_order",
			update:       store.UserUpdate{Name: &name, Bio: &bio, ProfilePicture: &picture},
			expectedSet:  "name = $1, bio = $2, profile_picture = $3, updated_at = $4",
			expectedArgs: []any{name, bio, picture, now},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			set, args := updateSetClause(tc.update, now)
			assert.Equal(t, tc.expectedSet, set)
			assert.Equal(t, tc.expectedArgs, args)
		})
	}
}

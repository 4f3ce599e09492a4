package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "yamdb/internal/errors"
	"yamdb/internal/model"
)

func fields(t *testing.T, err error) map[string][]string {
	t.Helper()
	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	return ve.Fields
}

func TestUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"plain", "reviewer", false},
		{"allowed punctuation", "john.doe+1@home-net_x", false},
		{"unicode letters", "Пользователь", false},
		{"empty", "", true},
		{"space", "john doe", true},
		{"forbidden char", "john!", true},
		{"reserved", "me", true},
		{"reserved case-insensitive", "Me", true},
		{"too long", strings.Repeat("a", MaxUsernameLength+1), true},
		{"max length", strings.Repeat("a", MaxUsernameLength), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Username(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSignup_FieldKeyedErrors(t *testing.T) {
	err := Signup("me", "not-an-email")

	f := fields(t, err)
	assert.Contains(t, f, "username")
	assert.Contains(t, f, "email")

	assert.NoError(t, Signup("reviewer", "reviewer@example.com"))
}

func TestUser_Role(t *testing.T) {
	u := &model.User{Username: "mod", Email: "mod@example.com", Role: model.RoleModerator}
	assert.NoError(t, User(u))

	u.Role = "superhero"
	assert.Contains(t, fields(t, User(u)), "role")
}

func TestSlugged(t *testing.T) {
	assert.NoError(t, Slugged("Science fiction", "sci-fi_2"))

	f := fields(t, Slugged("", "not a slug"))
	assert.Contains(t, f, "name")
	assert.Contains(t, f, "slug")

	assert.Contains(t, fields(t, Slugged("Long", strings.Repeat("s", MaxSlugLength+1))), "slug")
}

func TestTitle_Year(t *testing.T) {
	assert.NoError(t, Title(&model.Title{Name: "Solaris", Year: 1961}, 2026))
	assert.NoError(t, Title(&model.Title{Name: "This year", Year: 2026}, 2026))

	f := fields(t, Title(&model.Title{Name: "Future", Year: 2999}, 2026))
	assert.Contains(t, f, "year")

	assert.Contains(t, fields(t, Title(&model.Title{Year: 2000}, 2026)), "name")
}

func TestReview(t *testing.T) {
	for score := MinScore; score <= MaxScore; score++ {
		assert.NoError(t, Review("fine", score))
	}
	assert.Contains(t, fields(t, Review("fine", 0)), "score")
	assert.Contains(t, fields(t, Review("fine", 11)), "score")
	assert.Contains(t, fields(t, Review("   ", 5)), "text")
}

func TestComment(t *testing.T) {
	assert.NoError(t, Comment("agreed"))
	assert.Contains(t, fields(t, Comment("")), "text")
}

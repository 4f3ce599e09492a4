package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	apperrors "yamdb/internal/errors"
	"yamdb/internal/model"
)

const (
	MaxUsernameLength = 150
	MaxEmailLength    = 254
	MaxNameLength     = 150
	MaxTitleLength    = 256
	MaxSlugLength     = 50
	MinScore          = 1
	MaxScore          = 10
)

var (
	usernameRegex = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)
	slugRegex     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

	// ReservedUsernames cannot be registered because they collide with routes.
	ReservedUsernames = []string{"me"}
)

// Username validates charset, length and reserved names.
func Username(username string) error {
	return validation.Validate(username,
		validation.Required.Error("this field is required"),
		validation.RuneLength(1, MaxUsernameLength).Error(fmt.Sprintf("must be at most %d characters", MaxUsernameLength)),
		validation.Match(usernameRegex).Error("may contain only letters, digits and @/./+/-/_ characters"),
		validation.By(notReserved),
	)
}

func notReserved(value interface{}) error {
	s, _ := value.(string)
	for _, reserved := range ReservedUsernames {
		if strings.EqualFold(s, reserved) {
			return validation.NewError("reserved_username", fmt.Sprintf("username %q is reserved", s))
		}
	}
	return nil
}

// Email validates address format and length.
func Email(email string) error {
	return validation.Validate(email,
		validation.Required.Error("this field is required"),
		validation.RuneLength(1, MaxEmailLength).Error(fmt.Sprintf("must be at most %d characters", MaxEmailLength)),
		is.EmailFormat.Error("enter a valid email address"),
	)
}

// Signup validates a (username, email) pair.
func Signup(username, email string) error {
	return toValidationError(validation.Errors{
		"username": Username(username),
		"email":    Email(email),
	}.Filter())
}

// User validates a full user record.
func User(u *model.User) error {
	return toValidationError(validation.Errors{
		"username":   Username(u.Username),
		"email":      Email(u.Email),
		"first_name": validation.Validate(u.FirstName, validation.RuneLength(0, MaxNameLength)),
		"last_name":  validation.Validate(u.LastName, validation.RuneLength(0, MaxNameLength)),
		"role":       validation.Validate(string(u.Role), validation.Required, validation.In(roleValues()...).Error("must be one of user, moderator, admin")),
	}.Filter())
}

func roleValues() []interface{} {
	out := make([]interface{}, len(model.Roles))
	for i, r := range model.Roles {
		out[i] = string(r)
	}
	return out
}

// Slugged validates the name and slug shared by categories and genres.
func Slugged(name, slug string) error {
	return toValidationError(validation.Errors{
		"name": validation.Validate(name, validation.Required, validation.RuneLength(1, MaxTitleLength)),
		"slug": validation.Validate(slug,
			validation.Required,
			validation.RuneLength(1, MaxSlugLength),
			validation.Match(slugRegex).Error("may contain only latin letters, digits, hyphens and underscores"),
		),
	}.Filter())
}

// Title validates a title; currentYear bounds the release year.
func Title(t *model.Title, currentYear int) error {
	return toValidationError(validation.Errors{
		"name": validation.Validate(t.Name, validation.Required, validation.RuneLength(1, MaxTitleLength)),
		"year": validation.Validate(t.Year,
			validation.Max(currentYear).Error(fmt.Sprintf("year %d is later than the current year %d", t.Year, currentYear)),
		),
	}.Filter())
}

// Review validates review text and score.
func Review(text string, score int) error {
	return toValidationError(validation.Errors{
		"text": validation.Validate(strings.TrimSpace(text), validation.Required),
		"score": validation.Validate(score, validation.By(scoreInRange)),
	}.Filter())
}

// scoreInRange is explicit because ozzo threshold rules skip zero values.
func scoreInRange(value interface{}) error {
	score, _ := value.(int)
	if score < MinScore || score > MaxScore {
		return validation.NewError("score_out_of_range", fmt.Sprintf("must be between %d and %d", MinScore, MaxScore))
	}
	return nil
}

// Comment validates comment text.
func Comment(text string) error {
	return toValidationError(validation.Errors{
		"text": validation.Validate(strings.TrimSpace(text), validation.Required),
	}.Filter())
}

// toValidationError converts ozzo errors into the field-keyed application error.
func toValidationError(err error) error {
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return apperrors.NewValidationError("non_field_errors", err.Error())
	}
	ve := &apperrors.ValidationError{}
	for field, fieldErr := range errs {
		ve.Add(field, fieldErr.Error())
	}
	return ve
}

package services

import (
	"strings"
	"unicode/utf8"

	"github.com/rooluDev/goboard/apperr"
)

// Field constraint bounds.
const (
	TitleMinLength    = 4
	TitleMaxLength    = 1000
	ContentMinLength  = 4
	ContentMaxLength  = 4000
	AuthorMinLength   = 2
	AuthorMaxLength   = 10
	PasswordMinLength = 8
	PasswordMaxLength = 12
	CommentMinLength  = 1
	CommentMaxLength  = 300
)

// ValidateTitle trims and checks the post title.
func ValidateTitle(title string) (string, error) {
	return validateLength("title", title, TitleMinLength, TitleMaxLength)
}

// ValidateContent trims and checks the post content.
func ValidateContent(content string) (string, error) {
	return validateLength("content", content, ContentMinLength, ContentMaxLength)
}

// ValidateAuthor trims and checks the author name.
func ValidateAuthor(author string) (string, error) {
	return validateLength("author", author, AuthorMinLength, AuthorMaxLength)
}

// ValidateCommentText trims and checks a comment body.
func ValidateCommentText(text string) (string, error) {
	return validateLength("comment", text, CommentMinLength, CommentMaxLength)
}

// ValidatePassword checks the shared post password rule: 8 to 12 characters,
// letters and digits only, with at least one of each.
func ValidatePassword(password string) (string, error) {
	password = strings.TrimSpace(password)
	if password == "" {
		return "", apperr.New(apperr.KindValidation, "password is required")
	}
	n := utf8.RuneCountInString(password)
	if n < PasswordMinLength || n > PasswordMaxLength {
		return "", apperr.Newf(apperr.KindValidation,
			"password must be %d to %d characters", PasswordMinLength, PasswordMaxLength)
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			return "", apperr.New(apperr.KindValidation,
				"password may contain only letters and digits")
		}
	}
	if !hasLetter || !hasDigit {
		return "", apperr.New(apperr.KindValidation,
			"password must contain at least one letter and one digit")
	}
	return password, nil
}

// ValidateID checks that an identifier is positive.
func ValidateID(name string, id int64) error {
	if id <= 0 {
		return apperr.Newf(apperr.KindValidation, "invalid %s id", name)
	}
	return nil
}

// ValidateCategoryID checks that a category has been selected.
func ValidateCategoryID(id int64) error {
	if id <= 0 {
		return apperr.New(apperr.KindValidation, "category is required")
	}
	return nil
}

func validateLength(field, value string, min, max int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", apperr.Newf(apperr.KindValidation, "%s is required", field)
	}
	if n := utf8.RuneCountInString(value); n < min || n > max {
		return "", apperr.Newf(apperr.KindValidation,
			"%s must be %d to %d characters", field, min, max)
	}
	return value, nil
}

package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rooluDev/goboard/apperr"
)

func TestValidateTitle(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"valid", "hello board", "hello board", true},
		{"trimmed", "  hello  ", "hello", true},
		{"minimum", "abcd", "abcd", true},
		{"too short", "abc", "", false},
		{"empty", "", "", false},
		{"blank", "   ", "", false},
		{"maximum", strings.Repeat("a", 1000), strings.Repeat("a", 1000), true},
		{"too long", strings.Repeat("a", 1001), "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ValidateTitle(tc.input)
			if !tc.ok {
				require.Error(t, err)
				require.True(t, apperr.IsKind(err, apperr.KindValidation))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestValidateContentBounds(t *testing.T) {
	_, err := ValidateContent("abc")
	require.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = ValidateContent(strings.Repeat("x", 4001))
	require.True(t, apperr.IsKind(err, apperr.KindValidation))

	got, err := ValidateContent(strings.Repeat("x", 4000))
	require.NoError(t, err)
	require.Len(t, got, 4000)
}

func TestValidateAuthorBounds(t *testing.T) {
	got, err := ValidateAuthor("jo")
	require.NoError(t, err)
	require.Equal(t, "jo", got)

	_, err = ValidateAuthor("j")
	require.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = ValidateAuthor("longerthanten1")
	require.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		name  string
		input string
		ok    bool
	}{
		{"valid", "abc12345", true},
		{"valid max", "abcdefgh1234", true},
		{"too short", "abc1234", false},
		{"too long", "abcdefgh12345", false},
		{"no digit", "abcdefgh", false},
		{"no letter", "12345678", false},
		{"special char", "abc12345!", false},
		{"empty", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ValidatePassword(tc.input)
			if !tc.ok {
				require.Error(t, err)
				require.True(t, apperr.IsKind(err, apperr.KindValidation))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.input, got)
		})
	}
}

func TestValidateCommentText(t *testing.T) {
	got, err := ValidateCommentText("a")
	require.NoError(t, err)
	require.Equal(t, "a", got)

	_, err = ValidateCommentText(strings.Repeat("a", 301))
	require.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = ValidateCommentText(" ")
	require.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestValidateIDs(t *testing.T) {
	require.NoError(t, ValidateID("post", 1))
	require.Error(t, ValidateID("post", 0))
	require.Error(t, ValidateID("post", -5))
	require.NoError(t, ValidateCategoryID(2))
	require.Error(t, ValidateCategoryID(0))
}

func TestValidateTitleCountsRunes(t *testing.T) {
	// 4 multibyte runes are within bounds even though the byte count is higher.
	got, err := ValidateTitle("가나다라")
	require.NoError(t, err)
	require.Equal(t, "가나다라", got)
}

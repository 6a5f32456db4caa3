package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("chair@conference.org"))
	assert.True(t, ValidateEmail("a.b+c@uni.ac.th"))
	assert.False(t, ValidateEmail("not-an-email"))
	assert.False(t, ValidateEmail("x@y"))
}

func TestSanitizeAndCount(t *testing.T) {
	assert.Equal(t, "hello", SanitizeInput("  hel\x00lo \n"))
	assert.Equal(t, 5, CharCount("héllo"))
	assert.Equal(t, 6, CharCount("สวัสดี"))
	assert.Equal(t, []string{"ai", "ethics"}, CleanList([]string{" ai ", "", "   ", "ethics"}))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, IsBcryptHash(hash))
	assert.True(t, CheckPasswordHash("correct horse", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
	assert.False(t, IsBcryptHash("plaintext"))

	ok, msg := ValidatePassword("short")
	assert.False(t, ok)
	assert.NotEmpty(t, msg)
}

func TestNormalizeMimeType(t *testing.T) {
	assert.Equal(t, "text/plain", NormalizeMimeType("Text/Plain; charset=utf-8"))
	assert.Equal(t, "", NormalizeMimeType("  "))
	assert.Equal(t, "application/pdf", NormalizeMimeType("application/pdf"))
}

func TestDetectContentTypeRewinds(t *testing.T) {
	r := strings.NewReader("%PDF-1.7\n1 0 obj\n<<>>\nendobj\n")
	got, err := DetectContentType(r)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", got)

	pos, err := r.Seek(0, 1)
	require.NoError(t, err)
	assert.Zero(t, pos)

	got, err = DetectContentType(strings.NewReader("just some words"))
	require.NoError(t, err)
	assert.Equal(t, "text/plain", got)
}

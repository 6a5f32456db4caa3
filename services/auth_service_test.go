package services

import (
	"context"
	"testing"

	"conference-portal-api/models"
	"conference-portal-api/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserAndAuthenticate(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAuthService(env.deps)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, NewUserInput{
		Email:       " Chair@Example.org ",
		DisplayName: "Program Chair",
		Password:    "correct horse",
		Role:        models.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, "chair@example.org", user.Email)
	assert.True(t, utils.IsBcryptHash(user.Password))

	got, err := svc.Authenticate(ctx, "CHAIR@example.org", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	sess := SessionFor(got)
	assert.True(t, sess.IsAdmin())
	assert.Equal(t, "Program Chair", sess.Actor())

	current, err := svc.CurrentUser(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, user.ID, current.ID)

	_, err = svc.Authenticate(ctx, "chair@example.org", "wrong password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, "nobody@example.org", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateUserValidation(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAuthService(env.deps)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, NewUserInput{Email: "ada@example.org", Password: "long enough"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)

	cases := []struct {
		name  string
		in    NewUserInput
		field string
	}{
		{"bad email", NewUserInput{Email: "ada", Password: "long enough"}, "email"},
		{"short password", NewUserInput{Email: "bob@example.org", Password: "short"}, "password"},
		{"unknown role", NewUserInput{Email: "bob@example.org", Password: "long enough", Role: "ROOT"}, "role"},
		{"duplicate", NewUserInput{Email: "ADA@example.org", Password: "long enough"}, "email"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateUser(ctx, tc.in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestSessionActorFallback(t *testing.T) {
	assert.Equal(t, "chair@example.org", Session{UserID: "A1", Email: "chair@example.org"}.Actor())
	assert.Equal(t, "A1", Session{UserID: "A1", DisplayName: "  "}.Actor())
	assert.True(t, adminSession.canAccess("U1"))
	assert.True(t, userSession.canAccess("U1"))
	assert.False(t, userSession.canAccess("U2"))
	assert.False(t, Session{}.canAccess(""))
}

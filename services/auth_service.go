package services

import (
	"context"
	"errors"
	"strings"

	"conference-portal-api/gateway"
	"conference-portal-api/models"
	"conference-portal-api/utils"

	"github.com/google/uuid"
)

type NewUserInput struct {
	Email       string
	DisplayName string
	Password    string
	Role        models.Role
}

// AuthService checks credentials against the users collection.
type AuthService struct {
	base
}

func NewAuthService(d Deps) *AuthService {
	return &AuthService{base: newBase(d)}
}

func (s *AuthService) findByEmail(ctx context.Context, email string) (*models.User, error) {
	users, err := s.gw.Users().List(ctx, gateway.ListOptions{
		Filter: gateway.Fields{"email": email},
		Limit:  1,
	})
	if err != nil {
		return nil, s.fail(ctx, "list users", "user", email, err)
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

// Authenticate verifies an email and password and returns the matching user. Unknown emails
// and wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(utils.SanitizeInput(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !utils.CheckPasswordHash(password, user.Password) {
		s.log.InfoContext(ctx, "login rejected", "email", email)
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// SessionFor builds the session a user acts under.
func SessionFor(user *models.User) Session {
	return Session{
		UserID:      user.ID,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		Role:        user.Role,
	}
}

// CreateUser provisions an account with a bcrypt-hashed password.
func (s *AuthService) CreateUser(ctx context.Context, in NewUserInput) (*models.User, error) {
	email := strings.ToLower(utils.SanitizeInput(in.Email))
	if !utils.ValidateEmail(email) {
		return nil, invalid("email", "A valid email address is required")
	}
	if ok, msg := utils.ValidatePassword(in.Password); !ok {
		return nil, invalid("password", msg)
	}
	role := in.Role
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return nil, invalid("role", "Role must be ADMIN or USER")
	}

	existing, err := s.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, invalid("email", "Email is already registered")
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, &GatewayError{Op: "hash password", Err: err}
	}

	now := s.now()
	user := &models.User{
		ID:          uuid.NewString(),
		Email:       email,
		DisplayName: utils.SanitizeInput(in.DisplayName),
		Password:    hash,
		Role:        role,
		CreatedAt:   now,
	}
	user.UpdatedAt = now

	if err := s.gw.Users().Create(ctx, user); err != nil {
		if errors.Is(err, gateway.ErrDuplicate) {
			return nil, invalid("email", "Email is already registered")
		}
		return nil, s.fail(ctx, "create user", "user", user.ID, err)
	}
	return user, nil
}

// CurrentUser reloads the account behind a session.
func (s *AuthService) CurrentUser(ctx context.Context, sess Session) (*models.User, error) {
	if err := sess.requireUser(); err != nil {
		return nil, err
	}
	user, err := s.gw.Users().Get(ctx, sess.UserID)
	if err != nil {
		return nil, s.fail(ctx, "get user", "user", sess.UserID, err)
	}
	return user, nil
}

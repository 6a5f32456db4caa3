package services

import (
	"strings"

	"conference-portal-api/models"
)

// Session is the acting principal of a request. It is built by the auth middleware and handed to
// every lifecycle call.
type Session struct {
	UserID      string      `json:"user_id"`
	DisplayName string      `json:"display_name"`
	Email       string      `json:"email"`
	Role        models.Role `json:"role"`
}

func (s Session) IsAdmin() bool {
	return s.Role == models.RoleAdmin
}

// Actor is the identity recorded on audit fields: display name, else email, else user id.
func (s Session) Actor() string {
	for _, candidate := range []string{s.DisplayName, s.Email, s.UserID} {
		if c := strings.TrimSpace(candidate); c != "" {
			return c
		}
	}
	return ""
}

func (s Session) requireUser() error {
	if strings.TrimSpace(s.UserID) == "" {
		return ErrUnauthenticated
	}
	return nil
}

func (s Session) requireAdmin() error {
	if err := s.requireUser(); err != nil {
		return err
	}
	if !s.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

// canAccess reports whether the session may read a record owned by ownerID.
func (s Session) canAccess(ownerID string) bool {
	return s.IsAdmin() || (s.UserID != "" && s.UserID == ownerID)
}

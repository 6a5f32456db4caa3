package services

import (
	"context"

	"conference-portal-api/events"
	"conference-portal-api/gateway"
	"conference-portal-api/models"
	"conference-portal-api/utils"

	"github.com/google/uuid"
)

type ProfileInput struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Affiliation string `json:"affiliation"`
	Position    string `json:"position"`
	Country     string `json:"country"`
	Bio         string `json:"bio"`
	ORCID       string `json:"orcid"`
}

type ProfileService struct {
	base
}

func NewProfileService(d Deps) *ProfileService {
	return &ProfileService{base: newBase(d)}
}

func (s *ProfileService) findByOwner(ctx context.Context, ownerID string) (*models.UserProfile, error) {
	profiles, err := s.gw.Profiles().List(ctx, gateway.ListOptions{
		Filter: gateway.Fields{"owner_id": ownerID},
		Limit:  1,
	})
	if err != nil {
		return nil, s.fail(ctx, "list profiles", "profile of", ownerID, err)
	}
	if len(profiles) == 0 {
		return nil, nil
	}
	return &profiles[0], nil
}

// GetForOwner returns the caller's profile or ErrNotFound when none was saved yet.
func (s *ProfileService) GetForOwner(ctx context.Context, sess Session) (*models.UserProfile, error) {
	if err := sess.requireUser(); err != nil {
		return nil, err
	}
	profile, err := s.findByOwner(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, translateGatewayError("get profile", "profile of", sess.UserID, gateway.ErrNotFound)
	}
	return profile, nil
}

// Upsert creates the caller's profile or replaces its fields.
func (s *ProfileService) Upsert(ctx context.Context, sess Session, in ProfileInput) (*models.UserProfile, error) {
	if err := sess.requireUser(); err != nil {
		return nil, err
	}

	in = ProfileInput{
		FullName:    utils.SanitizeInput(in.FullName),
		Email:       utils.SanitizeInput(in.Email),
		Phone:       utils.SanitizeInput(in.Phone),
		Affiliation: utils.SanitizeInput(in.Affiliation),
		Position:    utils.SanitizeInput(in.Position),
		Country:     utils.SanitizeInput(in.Country),
		Bio:         utils.SanitizeInput(in.Bio),
		ORCID:       utils.SanitizeInput(in.ORCID),
	}
	if in.Email != "" && !utils.ValidateEmail(in.Email) {
		return nil, invalid("email", "A valid email address is required")
	}

	existing, err := s.findByOwner(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if existing == nil {
		profile := &models.UserProfile{
			ID:          uuid.NewString(),
			OwnerID:     sess.UserID,
			FullName:    in.FullName,
			Email:       in.Email,
			Phone:       in.Phone,
			Affiliation: in.Affiliation,
			Position:    in.Position,
			Country:     in.Country,
			Bio:         in.Bio,
			ORCID:       in.ORCID,
			CreatedAt:   now,
		}
		profile.UpdatedAt = now
		if err := s.gw.Profiles().Create(ctx, profile); err != nil {
			return nil, s.fail(ctx, "create profile", "profile", profile.ID, err)
		}
		s.publishProfile(ctx, sess, profile.ID)
		return profile, nil
	}

	err = s.gw.Profiles().Update(ctx, existing.ID, gateway.Fields{
		"full_name":   in.FullName,
		"email":       in.Email,
		"phone":       in.Phone,
		"affiliation": in.Affiliation,
		"position":    in.Position,
		"country":     in.Country,
		"bio":         in.Bio,
		"orcid":       in.ORCID,
		"updated_at":  now,
	})
	if err != nil {
		return nil, s.fail(ctx, "update profile", "profile", existing.ID, err)
	}

	updated, err := s.gw.Profiles().Get(ctx, existing.ID)
	if err != nil {
		return nil, s.fail(ctx, "get profile", "profile", existing.ID, err)
	}
	s.publishProfile(ctx, sess, updated.ID)
	return updated, nil
}

func (s *ProfileService) publishProfile(ctx context.Context, sess Session, id string) {
	s.publish(ctx, events.Event{Type: events.ProfileUpdated, EntityID: id, ActorID: sess.UserID})
}

// ContactEmail returns the email on an owner's profile, or "" when there is none.
func (s *ProfileService) ContactEmail(ctx context.Context, ownerID string) (string, error) {
	profile, err := s.findByOwner(ctx, ownerID)
	if err != nil || profile == nil {
		return "", err
	}
	return profile.Email, nil
}

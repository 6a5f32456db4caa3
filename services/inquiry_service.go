package services

import (
	"context"

	"conference-portal-api/events"
	"conference-portal-api/gateway"
	"conference-portal-api/models"
	"conference-portal-api/reports"
	"conference-portal-api/utils"

	"github.com/google/uuid"
)

type SubmitInquiryInput struct {
	Name     string
	Email    string
	Subject  string
	Body     string
	Priority string
	Category string
}

// InquiryFilter narrows the admin inbox.
type InquiryFilter struct {
	UnreadOnly bool
	Priority   models.Priority
}

// InquiryService applies the contact inquiry lifecycle: read tracking, admin responses and
// confirmed removal.
type InquiryService struct {
	base
}

func NewInquiryService(d Deps) *InquiryService {
	return &InquiryService{base: newBase(d)}
}

// SubmitInquiry stores a public contact-form message as unread.
func (s *InquiryService) SubmitInquiry(ctx context.Context, in SubmitInquiryInput) (*models.Message, error) {
	name := utils.SanitizeInput(in.Name)
	email := utils.SanitizeInput(in.Email)
	subject := utils.SanitizeInput(in.Subject)
	body := utils.SanitizeInput(in.Body)

	switch {
	case name == "":
		return nil, invalid("name", "Name is required")
	case !utils.ValidateEmail(email):
		return nil, invalid("email", "A valid email address is required")
	case subject == "":
		return nil, invalid("subject", "Subject is required")
	case body == "":
		return nil, invalid("body", "Message is required")
	}

	priority := models.PriorityMedium
	if raw := utils.SanitizeInput(in.Priority); raw != "" {
		p, ok := utils.ParsePriority(raw)
		if !ok {
			return nil, invalid("priority", "Priority must be one of low, medium, high or urgent")
		}
		priority = p
	}
	category := utils.SanitizeInput(in.Category)
	if category == "" {
		category = models.DefaultMessageCategory
	}

	now := s.now()
	msg := &models.Message{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Subject:   subject,
		Body:      body,
		Priority:  priority,
		Category:  category,
		CreatedAt: now,
	}
	msg.UpdatedAt = now

	if err := s.gw.Messages().Create(ctx, msg); err != nil {
		return nil, s.fail(ctx, "create message", "message", msg.ID, err)
	}

	s.publish(ctx, events.Event{
		Type:     events.MessageReceived,
		EntityID: msg.ID,
		Payload:  map[string]any{"subject": msg.Subject, "priority": msg.Priority},
	})
	return msg, nil
}

// MarkRead flags a message as read. Already-read messages are returned without a write.
func (s *InquiryService) MarkRead(ctx context.Context, sess Session, id string) (*models.Message, error) {
	if err := sess.requireAdmin(); err != nil {
		return nil, err
	}
	msg, err := s.gw.Messages().Get(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "get message", "message", id, err)
	}
	return s.markRead(ctx, sess, msg)
}

// Open is the admin view of one message; the first view marks it read.
func (s *InquiryService) Open(ctx context.Context, sess Session, id string) (*models.Message, error) {
	return s.MarkRead(ctx, sess, id)
}

func (s *InquiryService) markRead(ctx context.Context, sess Session, msg *models.Message) (*models.Message, error) {
	if msg.IsRead {
		return msg, nil
	}

	now := s.now()
	err := s.gw.Messages().Update(ctx, msg.ID, gateway.Fields{
		"is_read":    true,
		"updated_at": now,
	})
	if err != nil {
		return nil, s.fail(ctx, "mark message read", "message", msg.ID, err)
	}

	msg.IsRead = true
	msg.UpdatedAt = now
	msg.Version++

	s.publish(ctx, events.Event{
		Type:     events.MessageRead,
		EntityID: msg.ID,
		ActorID:  sess.UserID,
	})
	return msg, nil
}

// Respond records an admin reply. Replying always marks the message read; a later reply
// replaces the earlier one.
func (s *InquiryService) Respond(ctx context.Context, sess Session, id, text string) (*models.Message, error) {
	if err := sess.requireAdmin(); err != nil {
		return nil, err
	}
	text = utils.SanitizeInput(text)
	if text == "" {
		return nil, invalid("response", "Response text is required")
	}

	now := s.now()
	responder := sess.Actor()
	err := s.gw.Messages().Update(ctx, id, gateway.Fields{
		"admin_response": &text,
		"responded_at":   &now,
		"responded_by":   &responder,
		"is_read":        true,
		"updated_at":     now,
	})
	if err != nil {
		return nil, s.fail(ctx, "respond to message", "message", id, err)
	}

	msg, err := s.gw.Messages().Get(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "get message", "message", id, err)
	}

	s.publish(ctx, events.Event{
		Type:     events.MessageResponded,
		EntityID: id,
		ActorID:  sess.UserID,
		Payload: map[string]any{
			"email":    msg.Email,
			"name":     msg.Name,
			"subject":  msg.Subject,
			"response": text,
		},
	})
	return msg, nil
}

// Remove deletes a message permanently. The caller must pass confirmed=true.
func (s *InquiryService) Remove(ctx context.Context, sess Session, id string, confirmed bool) error {
	if err := sess.requireAdmin(); err != nil {
		return err
	}
	if !confirmed {
		return ErrConfirmationRequired
	}
	if err := s.gw.Messages().Delete(ctx, id); err != nil {
		return s.fail(ctx, "delete message", "message", id, err)
	}

	s.publish(ctx, events.Event{
		Type:     events.MessageRemoved,
		EntityID: id,
		ActorID:  sess.UserID,
	})
	return nil
}

// ListAll returns messages newest first. Admin only.
func (s *InquiryService) ListAll(ctx context.Context, sess Session, filter InquiryFilter) ([]models.Message, error) {
	if err := sess.requireAdmin(); err != nil {
		return nil, err
	}
	where := gateway.Fields{}
	if filter.UnreadOnly {
		where["is_read"] = false
	}
	if filter.Priority != "" {
		if !filter.Priority.Valid() {
			return nil, invalid("priority", "Priority must be one of low, medium, high or urgent")
		}
		where["priority"] = filter.Priority
	}

	messages, err := s.gw.Messages().List(ctx, gateway.ListOptions{
		Filter: where,
		Sort:   []gateway.SortField{gateway.Desc("created_at")},
	})
	if err != nil {
		return nil, s.fail(ctx, "list messages", "messages", "all", err)
	}
	return messages, nil
}

// Counts derives the inbox counters from the current messages.
func (s *InquiryService) Counts(ctx context.Context, sess Session) (reports.InquiryCounts, error) {
	messages, err := s.ListAll(ctx, sess, InquiryFilter{})
	if err != nil {
		return reports.InquiryCounts{}, err
	}
	return reports.CountInquiries(messages), nil
}

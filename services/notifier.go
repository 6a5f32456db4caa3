package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"conference-portal-api/events"
	"conference-portal-api/models"
	"conference-portal-api/utils"
)

// Mailer sends one HTML email.
type Mailer interface {
	Send(ctx context.Context, to []string, subject, html string) error
}

// Notifier turns lifecycle events into emails: inquiry responses go to the sender and paper
// reviews go to the owner when their profile carries an email.
type Notifier struct {
	mailer   Mailer
	profiles *ProfileService
	log      *slog.Logger
}

func NewNotifier(mailer Mailer, profiles *ProfileService, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{mailer: mailer, profiles: profiles, log: logger}
}

// Run handles events until the channel closes or ctx is done.
func (n *Notifier) Run(ctx context.Context, feed <-chan events.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-feed:
			if !ok {
				return
			}
			if err := n.Handle(ctx, evt); err != nil {
				n.log.WarnContext(ctx, "notification failed", "type", evt.Type, "entity_id", evt.EntityID, "error", err)
			}
		}
	}
}

// Handle sends the email for one event, if the event has one.
func (n *Notifier) Handle(ctx context.Context, evt events.Event) error {
	if n.mailer == nil {
		return nil
	}
	switch evt.Type {
	case events.MessageResponded:
		return n.inquiryResponded(ctx, evt)
	case events.PaperReviewed:
		return n.paperReviewed(ctx, evt)
	}
	return nil
}

func (n *Notifier) inquiryResponded(ctx context.Context, evt events.Event) error {
	to := payloadString(evt, "email")
	if to == "" {
		return nil
	}
	subject := "Re: " + payloadString(evt, "subject")
	html := buildEmailTemplate(subject, payloadString(evt, "name"),
		[]string{"Thank you for contacting the conference team. Our response to your inquiry follows.", payloadString(evt, "response")},
		nil)
	return n.mailer.Send(ctx, []string{to}, subject, html)
}

func (n *Notifier) paperReviewed(ctx context.Context, evt events.Event) error {
	ownerID := payloadString(evt, "owner_id")
	if ownerID == "" || n.profiles == nil {
		return nil
	}
	to, err := n.profiles.ContactEmail(ctx, ownerID)
	if err != nil {
		return err
	}
	if to == "" {
		return nil
	}

	title := payloadString(evt, "title")
	status := utils.PaperStatusLabel(models.PaperStatus(payloadString(evt, "status")))
	subject := fmt.Sprintf("Review update: %s", title)
	html := buildEmailTemplate(subject, "",
		[]string{"The review status of your paper has been updated."},
		[]emailMetaItem{
			{Label: "Paper", Value: title},
			{Label: "Status", Value: status},
			{Label: "Reviewer comments", Value: payloadString(evt, "comment")},
		})
	return n.mailer.Send(ctx, []string{to}, subject, html)
}

func payloadString(evt events.Event, key string) string {
	if evt.Payload == nil {
		return ""
	}
	switch v := evt.Payload[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case fmt.Stringer:
		return strings.TrimSpace(v.String())
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

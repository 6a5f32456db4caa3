package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"conference-portal-api/events"
	"conference-portal-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to      []string
	subject string
	html    string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(_ context.Context, to []string, subject, html string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, html: html})
	return nil
}

func (m *fakeMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func TestNotifierMailsInquiryResponse(t *testing.T) {
	mailer := &fakeMailer{}
	n := NewNotifier(mailer, nil, nil)

	err := n.Handle(context.Background(), events.Event{
		Type: events.MessageResponded,
		Payload: map[string]any{
			"email":    "grace@example.org",
			"name":     "Grace Visitor",
			"subject":  "Visa letter",
			"response": "The letter is attached.",
		},
	})
	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, []string{"grace@example.org"}, mailer.sent[0].to)
	assert.Equal(t, "Re: Visa letter", mailer.sent[0].subject)
	assert.Contains(t, mailer.sent[0].html, "The letter is attached.")
	assert.Contains(t, mailer.sent[0].html, "Grace Visitor")
}

func TestNotifierMailsPaperOwnerWithProfileEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	profiles := NewProfileService(env.deps)
	mailer := &fakeMailer{}
	n := NewNotifier(mailer, profiles, nil)

	evt := events.Event{
		Type: events.PaperReviewed,
		Payload: map[string]any{
			"owner_id": "U1",
			"title":    "Digital Rights in Conflict Zones",
			"status":   models.PaperStatusAccepted,
			"comment":  "Strong contribution",
		},
	}

	require.NoError(t, n.Handle(ctx, evt))
	assert.Empty(t, mailer.sent, "no profile email means no mail")

	_, err := profiles.Upsert(ctx, userSession, ProfileInput{Email: "ada@uni.example"})
	require.NoError(t, err)

	require.NoError(t, n.Handle(ctx, evt))
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, []string{"ada@uni.example"}, mailer.sent[0].to)
	assert.Equal(t, "Review update: Digital Rights in Conflict Zones", mailer.sent[0].subject)
	assert.Contains(t, mailer.sent[0].html, "Accepted")
	assert.Contains(t, mailer.sent[0].html, "Strong contribution")
}

func TestNotifierIgnoresOtherEvents(t *testing.T) {
	mailer := &fakeMailer{}
	n := NewNotifier(mailer, nil, nil)
	require.NoError(t, n.Handle(context.Background(), events.Event{Type: events.PaymentRecorded}))
	require.NoError(t, NewNotifier(nil, nil, nil).Handle(context.Background(), events.Event{Type: events.MessageResponded}))
	assert.Empty(t, mailer.sent)
}

func TestNotifierRunConsumesFeedUntilClosed(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("smtp down")}
	n := NewNotifier(mailer, nil, nil)
	feed := make(chan events.Event, 2)
	feed <- events.Event{Type: events.MessageResponded, Payload: map[string]any{"email": "a@example.org"}}
	close(feed)

	done := make(chan struct{})
	go func() {
		n.Run(context.Background(), feed)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("notifier did not stop after the feed closed")
	}
	assert.Equal(t, 0, mailer.count())
}

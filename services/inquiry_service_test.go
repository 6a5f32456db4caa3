package services

import (
	"context"
	"testing"

	"conference-portal-api/events"
	"conference-portal-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInquiry() SubmitInquiryInput {
	return SubmitInquiryInput{
		Name:    "Grace Visitor",
		Email:   "grace@example.org",
		Subject: "Visa letter",
		Body:    "Could you send an invitation letter for my visa application?",
	}
}

func TestSubmitInquiryDefaults(t *testing.T) {
	env := newTestEnv(t)
	feed, unsubscribe := env.bus.Subscribe()
	defer unsubscribe()
	svc := NewInquiryService(env.deps)

	msg, err := svc.SubmitInquiry(context.Background(), validInquiry())
	require.NoError(t, err)

	assert.False(t, msg.IsRead)
	assert.Equal(t, models.PriorityMedium, msg.Priority)
	assert.Equal(t, "general", msg.Category)
	assert.Nil(t, msg.AdminResponse)
	assert.False(t, msg.Responded())
	assert.Equal(t, []string{events.MessageReceived}, eventTypes(drain(feed)))
}

func TestSubmitInquiryValidation(t *testing.T) {
	env := newTestEnv(t)
	svc := NewInquiryService(env.deps)

	cases := []struct {
		name  string
		edit  func(*SubmitInquiryInput)
		field string
	}{
		{"missing name", func(in *SubmitInquiryInput) { in.Name = " " }, "name"},
		{"name before email", func(in *SubmitInquiryInput) { in.Name = ""; in.Email = "nope" }, "name"},
		{"invalid email", func(in *SubmitInquiryInput) { in.Email = "grace-at-example" }, "email"},
		{"missing subject", func(in *SubmitInquiryInput) { in.Subject = "" }, "subject"},
		{"missing body", func(in *SubmitInquiryInput) { in.Body = "\x00" }, "body"},
		{"unknown priority", func(in *SubmitInquiryInput) { in.Priority = "normal" }, "priority"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInquiry()
			tc.edit(&in)
			_, err := svc.SubmitInquiry(context.Background(), in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestSubmitInquiryKeepsPriorityAndCategory(t *testing.T) {
	env := newTestEnv(t)
	svc := NewInquiryService(env.deps)

	in := validInquiry()
	in.Priority = "Urgent"
	in.Category = "registration"
	msg, err := svc.SubmitInquiry(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, models.PriorityUrgent, msg.Priority)
	assert.Equal(t, "registration", msg.Category)
}

func TestRespondMarksReadAndRecordsResponder(t *testing.T) {
	env := newTestEnv(t)
	feed, unsubscribe := env.bus.Subscribe()
	defer unsubscribe()
	svc := NewInquiryService(env.deps)
	ctx := context.Background()

	msg, err := svc.SubmitInquiry(ctx, validInquiry())
	require.NoError(t, err)

	responded, err := svc.Respond(ctx, adminSession, msg.ID, "  The letter is attached.  ")
	require.NoError(t, err)
	assert.True(t, responded.IsRead)
	require.NotNil(t, responded.AdminResponse)
	assert.Equal(t, "The letter is attached.", *responded.AdminResponse)
	require.NotNil(t, responded.RespondedBy)
	assert.Equal(t, "Program Chair", *responded.RespondedBy)
	assert.NotNil(t, responded.RespondedAt)

	evts := drain(feed)
	assert.Equal(t, []string{events.MessageReceived, events.MessageResponded}, eventTypes(evts))
	assert.Equal(t, "grace@example.org", evts[1].Payload["email"])

	anonymous := Session{UserID: "A2", Email: "ops@example.org", Role: models.RoleAdmin}
	again, err := svc.Respond(ctx, anonymous, msg.ID, "Updated answer")
	require.NoError(t, err)
	assert.Equal(t, "Updated answer", *again.AdminResponse)
	assert.Equal(t, "ops@example.org", *again.RespondedBy)
}

func TestRespondRules(t *testing.T) {
	env := newTestEnv(t)
	svc := NewInquiryService(env.deps)
	ctx := context.Background()

	msg, err := svc.SubmitInquiry(ctx, validInquiry())
	require.NoError(t, err)

	_, err = svc.Respond(ctx, adminSession, msg.ID, "   ")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "response", verr.Field)

	_, err = svc.Respond(ctx, userSession, msg.ID, "hello")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Respond(ctx, adminSession, "missing", "hello")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMarkReadIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	feed, unsubscribe := env.bus.Subscribe()
	defer unsubscribe()
	svc := NewInquiryService(env.deps)
	ctx := context.Background()

	msg, err := svc.SubmitInquiry(ctx, validInquiry())
	require.NoError(t, err)

	first, err := svc.MarkRead(ctx, adminSession, msg.ID)
	require.NoError(t, err)
	assert.True(t, first.IsRead)

	second, err := svc.Open(ctx, adminSession, msg.ID)
	require.NoError(t, err)
	assert.True(t, second.IsRead)
	assert.Equal(t, first.Version, second.Version)

	stored, err := env.gw.Messages().Get(ctx, msg.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stored.Version)

	assert.Equal(t, []string{events.MessageReceived, events.MessageRead}, eventTypes(drain(feed)))

	_, err = svc.MarkRead(ctx, userSession, msg.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestRemoveRequiresConfirmation(t *testing.T) {
	env := newTestEnv(t)
	svc := NewInquiryService(env.deps)
	ctx := context.Background()

	msg, err := svc.SubmitInquiry(ctx, validInquiry())
	require.NoError(t, err)

	err = svc.Remove(ctx, adminSession, msg.ID, false)
	assert.ErrorIs(t, err, ErrConfirmationRequired)

	all, err := svc.ListAll(ctx, adminSession, InquiryFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.Remove(ctx, adminSession, msg.ID, true))

	all, err = svc.ListAll(ctx, adminSession, InquiryFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)

	err = svc.Remove(ctx, adminSession, msg.ID, true)
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.Remove(ctx, userSession, msg.ID, true)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestListAllFiltersAndCounts(t *testing.T) {
	env := newTestEnv(t)
	svc := NewInquiryService(env.deps)
	ctx := context.Background()

	submit := func(subject, priority string) *models.Message {
		in := validInquiry()
		in.Subject = subject
		in.Priority = priority
		msg, err := svc.SubmitInquiry(ctx, in)
		require.NoError(t, err)
		return msg
	}

	urgent := submit("Lost badge", "urgent")
	high := submit("Room change", "high")
	low := submit("Dietary needs", "low")
	latest := submit("Hotel", "urgent")

	_, err := svc.MarkRead(ctx, adminSession, urgent.ID)
	require.NoError(t, err)
	_, err = svc.Respond(ctx, adminSession, high.ID, "Done")
	require.NoError(t, err)

	unread, err := svc.ListAll(ctx, adminSession, InquiryFilter{UnreadOnly: true})
	require.NoError(t, err)
	require.Len(t, unread, 2)
	assert.Equal(t, latest.ID, unread[0].ID)
	assert.Equal(t, low.ID, unread[1].ID)

	urgentOnly, err := svc.ListAll(ctx, adminSession, InquiryFilter{Priority: models.PriorityUrgent})
	require.NoError(t, err)
	assert.Len(t, urgentOnly, 2)

	_, err = svc.ListAll(ctx, adminSession, InquiryFilter{Priority: "normal"})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	counts, err := svc.Counts(ctx, adminSession)
	require.NoError(t, err)
	assert.Equal(t, 4, counts.Total)
	assert.Equal(t, 2, counts.Unread)
	assert.Equal(t, 1, counts.UnreadUrgent)
	assert.Equal(t, 1, counts.Responded)

	_, err = svc.ListAll(ctx, userSession, InquiryFilter{})
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.Counts(ctx, userSession)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.Counts(ctx, Session{})
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

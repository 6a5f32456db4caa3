package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"conference-portal-api/events"
	"conference-portal-api/gateway"
	"conference-portal-api/models"
	"conference-portal-api/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const DefaultCurrency = "USD"

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// PaymentOptions configure registration fee checks. An empty FeeSchedule accepts any positive
// amount.
type PaymentOptions struct {
	FeeSchedule     []decimal.Decimal
	DefaultCurrency string
}

type RecordPaymentInput struct {
	Amount   decimal.Decimal
	Currency string
	Method   string
	Slip     *Upload
	Notes    string
}

// PaymentService applies the registration payment lifecycle.
type PaymentService struct {
	base
	opts PaymentOptions
}

func NewPaymentService(d Deps, opts PaymentOptions) *PaymentService {
	if strings.TrimSpace(opts.DefaultCurrency) == "" {
		opts.DefaultCurrency = DefaultCurrency
	}
	opts.DefaultCurrency = strings.ToUpper(strings.TrimSpace(opts.DefaultCurrency))
	return &PaymentService{base: newBase(d), opts: opts}
}

// newTransactionID combines the creation instant with a random suffix so payments recorded in
// the same millisecond stay distinct.
func (s *PaymentService) newTransactionID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("TXN-%d-%s", s.now().UnixMilli(), strings.ToUpper(suffix))
}

func (s *PaymentService) allowedAmount(amount decimal.Decimal) bool {
	if len(s.opts.FeeSchedule) == 0 {
		return true
	}
	for _, fee := range s.opts.FeeSchedule {
		if fee.Equal(amount) {
			return true
		}
	}
	return false
}

func (s *PaymentService) validate(in RecordPaymentInput) (currency, method string, err error) {
	if !in.Amount.IsPositive() {
		return "", "", invalid("amount", "Amount must be greater than zero")
	}
	if !s.allowedAmount(in.Amount) {
		return "", "", invalid("amount", "Amount does not match any registration fee")
	}

	currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = s.opts.DefaultCurrency
	}
	if !currencyPattern.MatchString(currency) {
		return "", "", invalid("currency", "Currency must be a three-letter ISO code")
	}

	method = utils.SanitizeInput(in.Method)
	if method == "" {
		return "", "", invalid("payment_method", "Payment method is required")
	}
	if err := slipFileRule.check(in.Slip); err != nil {
		return "", "", err
	}
	return currency, method, nil
}

// RecordPayment validates a payment and its slip, stores the slip and creates the payment as
// pending.
func (s *PaymentService) RecordPayment(ctx context.Context, sess Session, in RecordPaymentInput) (*models.Payment, error) {
	if err := sess.requireUser(); err != nil {
		return nil, err
	}
	currency, method, err := s.validate(in)
	if err != nil {
		return nil, err
	}

	slip, err := s.store(ctx, sess.UserID, "payment-slips", in.Slip)
	if err != nil {
		return nil, err
	}

	now := s.now()
	payment := &models.Payment{
		ID:            uuid.NewString(),
		OwnerID:       sess.UserID,
		Amount:        in.Amount,
		Currency:      currency,
		Status:        models.PaymentStatusPending,
		PaymentMethod: method,
		TransactionID: s.newTransactionID(),
		Slip:          slip,
		CreatedAt:     now,
	}
	if notes := utils.SanitizeInput(in.Notes); notes != "" {
		payment.Notes = &notes
	}
	payment.UpdatedAt = now

	if err := s.gw.Payments().Create(ctx, payment); err != nil {
		s.discard(ctx, slip.Path)
		return nil, s.fail(ctx, "create payment", "payment", payment.ID, err)
	}

	s.publish(ctx, events.Event{
		Type:     events.PaymentRecorded,
		EntityID: payment.ID,
		ActorID:  sess.UserID,
		Payload: map[string]any{
			"amount":         payment.Amount.StringFixed(2),
			"currency":       payment.Currency,
			"transaction_id": payment.TransactionID,
		},
	})
	return payment, nil
}

// UpdateStatus moves a payment to any status. Completing a payment stamps processed_at and
// processed_by; other statuses leave them as they were.
func (s *PaymentService) UpdateStatus(ctx context.Context, sess Session, id string, status models.PaymentStatus) (*models.Payment, error) {
	if err := sess.requireAdmin(); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, invalid("status", "Unknown payment status")
	}

	current, err := s.gw.Payments().Get(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "get payment", "payment", id, err)
	}

	now := s.now()
	fields := gateway.Fields{"status": status, "updated_at": now}
	if status == models.PaymentStatusCompleted {
		processor := sess.UserID
		fields["processed_at"] = &now
		fields["processed_by"] = &processor
	}

	if err := s.gw.Payments().Update(ctx, id, fields, gateway.IfVersion(current.Version)); err != nil {
		return nil, s.fail(ctx, "update payment", "payment", id, err)
	}

	updated, err := s.gw.Payments().Get(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "get payment", "payment", id, err)
	}

	s.publish(ctx, events.Event{
		Type:     events.PaymentStatusChanged,
		EntityID: id,
		ActorID:  sess.UserID,
		Payload:  map[string]any{"old_status": current.Status, "status": status},
	})
	return updated, nil
}

// Get returns a payment to its owner or an admin.
func (s *PaymentService) Get(ctx context.Context, sess Session, id string) (*models.Payment, error) {
	if err := sess.requireUser(); err != nil {
		return nil, err
	}
	payment, err := s.gw.Payments().Get(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "get payment", "payment", id, err)
	}
	if !sess.canAccess(payment.OwnerID) {
		return nil, translateGatewayError("get payment", "payment", id, gateway.ErrNotFound)
	}
	return payment, nil
}

func (s *PaymentService) ListForOwner(ctx context.Context, ownerID string) ([]models.Payment, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, invalid("owner_id", "Owner is required")
	}
	payments, err := s.gw.Payments().List(ctx, gateway.ListOptions{
		Filter: gateway.Fields{"owner_id": ownerID},
		Sort:   []gateway.SortField{gateway.Desc("created_at")},
	})
	if err != nil {
		return nil, s.fail(ctx, "list payments", "payments of", ownerID, err)
	}
	return payments, nil
}

// ListAll returns every payment, newest first. Admin only.
func (s *PaymentService) ListAll(ctx context.Context, sess Session) ([]models.Payment, error) {
	if err := sess.requireAdmin(); err != nil {
		return nil, err
	}
	payments, err := s.gw.Payments().List(ctx, gateway.ListOptions{
		Sort: []gateway.SortField{gateway.Desc("created_at")},
	})
	if err != nil {
		return nil, s.fail(ctx, "list payments", "payments", "all", err)
	}
	return payments, nil
}

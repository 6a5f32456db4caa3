package services

import (
	"context"

	"conference-portal-api/gateway"
	"conference-portal-api/models"
	"conference-portal-api/reports"

	"golang.org/x/sync/errgroup"
)

// DashboardService recomputes dashboard figures from fresh snapshots on every call.
type DashboardService struct {
	base
}

func NewDashboardService(d Deps) *DashboardService {
	return &DashboardService{base: newBase(d)}
}

// AdminStats reads the four collections concurrently and aggregates them.
func (s *DashboardService) AdminStats(ctx context.Context, sess Session) (*reports.AdminDashboard, error) {
	if err := sess.requireAdmin(); err != nil {
		return nil, err
	}

	var (
		papers   []models.Paper
		payments []models.Payment
		messages []models.Message
		profiles []models.UserProfile
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		papers, err = s.gw.Papers().List(gctx, gateway.ListOptions{})
		return s.wrapList(gctx, "papers", err)
	})
	g.Go(func() error {
		var err error
		payments, err = s.gw.Payments().List(gctx, gateway.ListOptions{})
		return s.wrapList(gctx, "payments", err)
	})
	g.Go(func() error {
		var err error
		messages, err = s.gw.Messages().List(gctx, gateway.ListOptions{})
		return s.wrapList(gctx, "messages", err)
	})
	g.Go(func() error {
		var err error
		profiles, err = s.gw.Profiles().List(gctx, gateway.ListOptions{})
		return s.wrapList(gctx, "user_profiles", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	dash := reports.BuildAdminDashboard(papers, payments, messages, profiles, s.now())
	return &dash, nil
}

// UserStats summarizes the caller's own papers and payments.
func (s *DashboardService) UserStats(ctx context.Context, sess Session) (*reports.UserDashboard, error) {
	if err := sess.requireUser(); err != nil {
		return nil, err
	}

	var (
		papers   []models.Paper
		payments []models.Payment
	)
	own := gateway.ListOptions{Filter: gateway.Fields{"owner_id": sess.UserID}}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		papers, err = s.gw.Papers().List(gctx, own)
		return s.wrapList(gctx, "papers", err)
	})
	g.Go(func() error {
		var err error
		payments, err = s.gw.Payments().List(gctx, own)
		return s.wrapList(gctx, "payments", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	dash := reports.BuildUserDashboard(papers, payments, s.now())
	return &dash, nil
}

func (s *DashboardService) wrapList(ctx context.Context, collection string, err error) error {
	if err == nil {
		return nil
	}
	return s.fail(ctx, "list "+collection, collection, "all", err)
}

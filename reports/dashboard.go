package reports

import (
	"time"

	"conference-portal-api/models"

	"github.com/shopspring/decimal"
)

// AdminDashboard is the admin overview across every collection.
type AdminDashboard struct {
	PapersByStatus   map[models.PaperStatus]int   `json:"papers_by_status"`
	TotalPapers      int                          `json:"total_papers"`
	PaymentsByStatus map[models.PaymentStatus]int `json:"payments_by_status"`
	TotalPayments    int                          `json:"total_payments"`
	TotalRevenue     decimal.Decimal              `json:"total_revenue"`
	RevenueByMethod  map[string]decimal.Decimal   `json:"revenue_by_method"`
	MonthlyRevenue   []MonthlyAmount              `json:"monthly_revenue"`
	Inquiries        InquiryCounts                `json:"inquiries"`
	Participants     int                          `json:"participants"`
	RecentActivity   []Activity                   `json:"recent_activity"`
	GeneratedAt      time.Time                    `json:"generated_at"`
}

func BuildAdminDashboard(papers []models.Paper, payments []models.Payment, messages []models.Message, profiles []models.UserProfile, now time.Time) AdminDashboard {
	return AdminDashboard{
		PapersByStatus:   CountPapersByStatus(papers),
		TotalPapers:      len(papers),
		PaymentsByStatus: CountPaymentsByStatus(payments),
		TotalPayments:    len(payments),
		TotalRevenue:     TotalRevenue(payments),
		RevenueByMethod:  RevenueByMethod(payments),
		MonthlyRevenue:   MonthlyRevenue(payments, now, MonthlyWindow),
		Inquiries:        CountInquiries(messages),
		Participants:     len(profiles),
		RecentActivity:   RecentActivity(papers, payments, messages, RecentPerSource, RecentFeedLength),
		GeneratedAt:      now,
	}
}

// UserDashboard summarizes one participant's own papers and payments.
type UserDashboard struct {
	PapersByStatus   map[models.PaperStatus]int   `json:"papers_by_status"`
	TotalPapers      int                          `json:"total_papers"`
	PaymentsByStatus map[models.PaymentStatus]int `json:"payments_by_status"`
	AmountPaid       decimal.Decimal              `json:"amount_paid"`
	RecentActivity   []Activity                   `json:"recent_activity"`
	GeneratedAt      time.Time                    `json:"generated_at"`
}

func BuildUserDashboard(papers []models.Paper, payments []models.Payment, now time.Time) UserDashboard {
	return UserDashboard{
		PapersByStatus:   CountPapersByStatus(papers),
		TotalPapers:      len(papers),
		PaymentsByStatus: CountPaymentsByStatus(payments),
		AmountPaid:       TotalRevenue(payments),
		RecentActivity:   RecentActivity(papers, payments, nil, RecentPerSource, RecentFeedLength),
		GeneratedAt:      now,
	}
}

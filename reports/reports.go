// Package reports derives dashboard figures from snapshots of papers, payments and messages.
// Everything here is a pure function; callers fetch the snapshots.
package reports

import (
	"fmt"
	"sort"
	"time"

	"conference-portal-api/models"
	"conference-portal-api/utils"

	"github.com/shopspring/decimal"
)

const (
	// RecentPerSource is how many items each collection contributes to the activity feed.
	RecentPerSource = 5
	// RecentFeedLength caps the merged activity feed.
	RecentFeedLength = 8
	// MonthlyWindow is the number of calendar months in the revenue trend, current month included.
	MonthlyWindow = 6
)

// CountPapersByStatus returns a count for every paper status, zero included.
func CountPapersByStatus(papers []models.Paper) map[models.PaperStatus]int {
	counts := make(map[models.PaperStatus]int, len(models.PaperStatuses))
	for _, s := range models.PaperStatuses {
		counts[s] = 0
	}
	for _, p := range papers {
		counts[p.Status]++
	}
	return counts
}

// CountPaymentsByStatus returns a count for every payment status, zero included.
func CountPaymentsByStatus(payments []models.Payment) map[models.PaymentStatus]int {
	counts := make(map[models.PaymentStatus]int, len(models.PaymentStatuses))
	for _, s := range models.PaymentStatuses {
		counts[s] = 0
	}
	for _, p := range payments {
		counts[p.Status]++
	}
	return counts
}

// TotalRevenue sums the amounts of completed payments.
func TotalRevenue(payments []models.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		if p.Status == models.PaymentStatusCompleted {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// RevenueByMethod sums completed amounts per payment method.
func RevenueByMethod(payments []models.Payment) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, p := range payments {
		if p.Status != models.PaymentStatusCompleted {
			continue
		}
		out[p.PaymentMethod] = out[p.PaymentMethod].Add(p.Amount)
	}
	return out
}

// MonthlyAmount is the completed revenue of one calendar month.
type MonthlyAmount struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// MonthlyRevenue buckets completed payments into the last `months` calendar months ending with
// the month of now, oldest first. A payment counts in the month it was processed, or created
// when it carries no processing time.
func MonthlyRevenue(payments []models.Payment, now time.Time, months int) []MonthlyAmount {
	if months <= 0 {
		return nil
	}
	now = now.UTC()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)

	out := make([]MonthlyAmount, months)
	index := make(map[string]int, months)
	for i := 0; i < months; i++ {
		key := first.AddDate(0, i, 0).Format("2006-01")
		out[i] = MonthlyAmount{Month: key, Total: decimal.Zero}
		index[key] = i
	}

	for _, p := range payments {
		if p.Status != models.PaymentStatusCompleted {
			continue
		}
		at := p.CreatedAt
		if p.ProcessedAt != nil {
			at = *p.ProcessedAt
		}
		i, ok := index[at.UTC().Format("2006-01")]
		if !ok {
			continue
		}
		out[i].Total = out[i].Total.Add(p.Amount)
		out[i].Count++
	}
	return out
}

// InquiryCounts summarizes the message inbox.
type InquiryCounts struct {
	Total        int `json:"total"`
	Unread       int `json:"unread"`
	UnreadUrgent int `json:"unread_urgent"`
	Responded    int `json:"responded"`
}

func CountInquiries(messages []models.Message) InquiryCounts {
	var c InquiryCounts
	for _, m := range messages {
		c.Total++
		if !m.IsRead {
			c.Unread++
			if m.Priority == models.PriorityUrgent {
				c.UnreadUrgent++
			}
		}
		if m.Responded() {
			c.Responded++
		}
	}
	return c
}

type ActivityKind string

const (
	ActivityPaper   ActivityKind = "paper"
	ActivityPayment ActivityKind = "payment"
	ActivityMessage ActivityKind = "message"
)

// Activity is one entry of the recent-activity feed.
type Activity struct {
	Kind   ActivityKind `json:"kind"`
	ID     string       `json:"id"`
	Title  string       `json:"title"`
	Status string       `json:"status"`
	Label  string       `json:"label"`
	At     time.Time    `json:"at"`
}

// RecentActivity takes the perSource most recent items of each collection and merges them newest
// first, keeping at most limit entries.
func RecentActivity(papers []models.Paper, payments []models.Payment, messages []models.Message, perSource, limit int) []Activity {
	var feed []Activity

	paperItems := make([]Activity, 0, len(papers))
	for _, p := range papers {
		paperItems = append(paperItems, Activity{
			Kind:   ActivityPaper,
			ID:     p.ID,
			Title:  p.Title,
			Status: string(p.Status),
			Label:  utils.PaperStatusLabel(p.Status),
			At:     p.SubmittedAt,
		})
	}
	feed = append(feed, newest(paperItems, perSource)...)

	paymentItems := make([]Activity, 0, len(payments))
	for _, p := range payments {
		paymentItems = append(paymentItems, Activity{
			Kind:   ActivityPayment,
			ID:     p.ID,
			Title:  fmt.Sprintf("%s %s via %s", p.Amount.StringFixed(2), p.Currency, p.PaymentMethod),
			Status: string(p.Status),
			Label:  utils.PaymentStatusLabel(p.Status),
			At:     p.CreatedAt,
		})
	}
	feed = append(feed, newest(paymentItems, perSource)...)

	messageItems := make([]Activity, 0, len(messages))
	for _, m := range messages {
		status, label := "unread", "Unread"
		switch {
		case m.Responded():
			status, label = "responded", "Responded"
		case m.IsRead:
			status, label = "read", "Read"
		}
		messageItems = append(messageItems, Activity{
			Kind:   ActivityMessage,
			ID:     m.ID,
			Title:  m.Subject,
			Status: status,
			Label:  label,
			At:     m.CreatedAt,
		})
	}
	feed = append(feed, newest(messageItems, perSource)...)

	sortNewestFirst(feed)
	if limit > 0 && len(feed) > limit {
		feed = feed[:limit]
	}
	return feed
}

func newest(items []Activity, n int) []Activity {
	sortNewestFirst(items)
	if n > 0 && len(items) > n {
		items = items[:n]
	}
	return items
}

func sortNewestFirst(items []Activity) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].At.After(items[j].At) })
}

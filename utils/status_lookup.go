package utils

import (
	"strings"

	"conference-portal-api/models"
)

// Display labels for every enumerated value. This is the only place status strings are turned
// into human-readable text.
var (
	paperStatusLabels = map[models.PaperStatus]string{
		models.PaperStatusSubmitted:        "Submitted",
		models.PaperStatusUnderReview:      "Under Review",
		models.PaperStatusAccepted:         "Accepted",
		models.PaperStatusRejected:         "Rejected",
		models.PaperStatusRevisionRequired: "Revision Required",
	}
	paymentStatusLabels = map[models.PaymentStatus]string{
		models.PaymentStatusPending:   "Pending",
		models.PaymentStatusCompleted: "Completed",
		models.PaymentStatusFailed:    "Failed",
		models.PaymentStatusRefunded:  "Refunded",
	}
	priorityLabels = map[models.Priority]string{
		models.PriorityLow:    "Low",
		models.PriorityMedium: "Medium",
		models.PriorityHigh:   "High",
		models.PriorityUrgent: "Urgent",
	}

	paperStatusSynonyms = map[models.PaperStatus][]string{
		models.PaperStatusSubmitted:        {"new", "pending_review"},
		models.PaperStatusUnderReview:      {"in_review", "reviewing"},
		models.PaperStatusAccepted:         {"approved"},
		models.PaperStatusRejected:         {"declined"},
		models.PaperStatusRevisionRequired: {"revision", "needs_revision", "revise"},
	}
	paymentStatusSynonyms = map[models.PaymentStatus][]string{
		models.PaymentStatusPending:   {"awaiting"},
		models.PaymentStatusCompleted: {"paid", "complete", "confirmed"},
		models.PaymentStatusFailed:    {"declined", "failure"},
		models.PaymentStatusRefunded:  {"refund"},
	}

	paperStatusAliases   = buildAliasMap(paperStatusLabels, paperStatusSynonyms)
	paymentStatusAliases = buildAliasMap(paymentStatusLabels, paymentStatusSynonyms)
	priorityAliases      = buildAliasMap(priorityLabels, nil)
)

func buildAliasMap[K ~string](labels map[K]string, synonyms map[K][]string) map[string]K {
	aliasMap := make(map[string]K)
	for canonical, label := range labels {
		aliasMap[normalizeStatusCode(string(canonical))] = canonical
		aliasMap[normalizeStatusCode(label)] = canonical
		for _, alias := range synonyms[canonical] {
			if normalized := normalizeStatusCode(alias); normalized != "" {
				aliasMap[normalized] = canonical
			}
		}
	}
	return aliasMap
}

// normalizeStatusCode folds case, spaces and dashes so "Under Review", "under-review" and
// "under_review" share one key.
func normalizeStatusCode(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	code = strings.NewReplacer("-", "_", " ", "_").Replace(code)
	return code
}

// ParsePaperStatus resolves a status value or one of its aliases.
func ParsePaperStatus(raw string) (models.PaperStatus, bool) {
	status, ok := paperStatusAliases[normalizeStatusCode(raw)]
	return status, ok
}

func ParsePaymentStatus(raw string) (models.PaymentStatus, bool) {
	status, ok := paymentStatusAliases[normalizeStatusCode(raw)]
	return status, ok
}

func ParsePriority(raw string) (models.Priority, bool) {
	p, ok := priorityAliases[normalizeStatusCode(raw)]
	return p, ok
}

func PaperStatusLabel(s models.PaperStatus) string {
	return labelOrRaw(paperStatusLabels, s)
}

func PaymentStatusLabel(s models.PaymentStatus) string {
	return labelOrRaw(paymentStatusLabels, s)
}

func PriorityLabel(p models.Priority) string {
	return labelOrRaw(priorityLabels, p)
}

func labelOrRaw[K ~string](labels map[K]string, v K) string {
	if label, ok := labels[v]; ok {
		return label
	}
	return string(v)
}

// StatusOption is one entry of a label table as served to clients.
type StatusOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// StatusTables returns every label table keyed by enumeration name, in workflow order.
func StatusTables() map[string][]StatusOption {
	return map[string][]StatusOption{
		"paper_status":   optionsFor(models.PaperStatuses, paperStatusLabels),
		"payment_status": optionsFor(models.PaymentStatuses, paymentStatusLabels),
		"priority":       optionsFor(models.Priorities, priorityLabels),
	}
}

func optionsFor[K ~string](order []K, labels map[K]string) []StatusOption {
	out := make([]StatusOption, 0, len(order))
	for _, v := range order {
		out = append(out, StatusOption{Value: string(v), Label: labels[v]})
	}
	return out
}

// Package gateway is the persistence boundary of the portal: typed list/get/create/update/delete
// over the named collections, backed by gorm on MySQL in production and on SQLite (file or
// in-memory) for tests and local runs.
package gateway

import (
	"context"
	"errors"

	"conference-portal-api/models"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrDuplicate       = errors.New("duplicate record")
	ErrVersionConflict = errors.New("version conflict")
)

// Fields is a partial record keyed by column name.
type Fields map[string]any

// SortField orders a listing by one column.
type SortField struct {
	Column string
	Desc   bool
}

func Asc(column string) SortField  { return SortField{Column: column} }
func Desc(column string) SortField { return SortField{Column: column, Desc: true} }

// ListOptions narrows a listing. Filter matches columns by equality.
type ListOptions struct {
	Filter Fields
	Sort   []SortField
	Limit  int
}

type updateConfig struct {
	expectedVersion *int64
}

type UpdateOption func(*updateConfig)

// IfVersion makes an update conditional on the stored version; a mismatch yields
// ErrVersionConflict.
func IfVersion(version int64) UpdateOption {
	return func(c *updateConfig) {
		c.expectedVersion = &version
	}
}

func applyUpdateOptions(opts []UpdateOption) updateConfig {
	var cfg updateConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Collection is a typed view over one named collection. Update always increments the
// record version.
type Collection[T any] interface {
	Get(ctx context.Context, id string) (*T, error)
	List(ctx context.Context, opts ListOptions) ([]T, error)
	Create(ctx context.Context, record *T) error
	Update(ctx context.Context, id string, fields Fields, opts ...UpdateOption) error
	Delete(ctx context.Context, id string) error
}

// Gateway exposes every collection the portal uses.
type Gateway interface {
	Papers() Collection[models.Paper]
	PaperReviews() Collection[models.PaperReview]
	Payments() Collection[models.Payment]
	Messages() Collection[models.Message]
	Profiles() Collection[models.UserProfile]
	Users() Collection[models.User]

	// Transaction runs fn against a gateway whose writes commit together or not at all.
	Transaction(ctx context.Context, fn func(tx Gateway) error) error
}

type versioned interface {
	EnsureVersion()
}

func ensureVersion(record any) {
	if v, ok := record.(versioned); ok {
		v.EnsureVersion()
	}
}

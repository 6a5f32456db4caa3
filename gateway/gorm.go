package gateway

import (
	"context"
	"errors"
	"time"

	"conference-portal-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormGateway stores collections in MySQL or SQLite through gorm. Each call is bounded by timeout when it
// is positive.
type GormGateway struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewGormGateway(db *gorm.DB, timeout time.Duration) *GormGateway {
	return &GormGateway{db: db, timeout: timeout}
}

// AutoMigrate creates or updates the tables backing every collection.
func (g *GormGateway) AutoMigrate() error {
	return g.db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.Paper{},
		&models.PaperReview{},
		&models.Payment{},
		&models.Message{},
	)
}

func (g *GormGateway) Papers() Collection[models.Paper] {
	return newGormCollection[models.Paper](g)
}

func (g *GormGateway) PaperReviews() Collection[models.PaperReview] {
	return newGormCollection[models.PaperReview](g)
}

func (g *GormGateway) Payments() Collection[models.Payment] {
	return newGormCollection[models.Payment](g)
}

func (g *GormGateway) Messages() Collection[models.Message] {
	return newGormCollection[models.Message](g)
}

func (g *GormGateway) Profiles() Collection[models.UserProfile] {
	return newGormCollection[models.UserProfile](g)
}

func (g *GormGateway) Users() Collection[models.User] {
	return newGormCollection[models.User](g)
}

func (g *GormGateway) Transaction(ctx context.Context, fn func(tx Gateway) error) error {
	ctx, cancel := withTimeout(ctx, g.timeout)
	defer cancel()

	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// the outer deadline already covers the whole transaction
		return fn(&GormGateway{db: tx})
	})
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), isSQLiteDuplicate(err):
		return ErrDuplicate
	default:
		return err
	}
}

type gormCollection[T any] struct {
	db      *gorm.DB
	timeout time.Duration
}

func newGormCollection[T any](g *GormGateway) *gormCollection[T] {
	return &gormCollection[T]{db: g.db, timeout: g.timeout}
}

func (c *gormCollection[T]) Get(ctx context.Context, id string) (*T, error) {
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	var record T
	if err := c.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		return nil, translateError(err)
	}
	return &record, nil
}

func (c *gormCollection[T]) List(ctx context.Context, opts ListOptions) ([]T, error) {
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	q := c.db.WithContext(ctx).Model(new(T))
	if len(opts.Filter) > 0 {
		q = q.Where(map[string]interface{}(opts.Filter))
	}
	for _, s := range opts.Sort {
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: s.Column}, Desc: s.Desc})
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}

	var items []T
	if err := q.Find(&items).Error; err != nil {
		return nil, translateError(err)
	}
	return items, nil
}

func (c *gormCollection[T]) Create(ctx context.Context, record *T) error {
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	ensureVersion(record)
	return translateError(c.db.WithContext(ctx).Create(record).Error)
}

func (c *gormCollection[T]) Update(ctx context.Context, id string, fields Fields, opts ...UpdateOption) error {
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	cfg := applyUpdateOptions(opts)

	updates := make(map[string]interface{}, len(fields)+1)
	for column, value := range fields {
		updates[column] = value
	}
	updates["version"] = gorm.Expr("version + 1")

	q := c.db.WithContext(ctx).Model(new(T)).Where("id = ?", id)
	if cfg.expectedVersion != nil {
		q = q.Where("version = ?", *cfg.expectedVersion)
	}

	res := q.Updates(updates)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// nothing matched: either the id is unknown or the version moved on
	var count int64
	if err := c.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return translateError(err)
	}
	if count == 0 {
		return ErrNotFound
	}
	return ErrVersionConflict
}

func (c *gormCollection[T]) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	res := c.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Gateway = (*GormGateway)(nil)

package offers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/voyacore/tourbook-backend/pkg/db/models"
	"github.com/voyacore/tourbook-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository exposes offer persistence for pricing and admin flows.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ListActiveForTenant loads the candidate offers for a pricing run: active,
// inside their promotional window at booking time, and not exhausted. The
// priority ordering here is only cosmetic for logs; selection re-orders by
// computed discount.
func (r *Repository) ListActiveForTenant(ctx context.Context, tenantID uuid.UUID, at time.Time) ([]models.Offer, error) {
	var offers []models.Offer
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND is_active = true", tenantID).
		Where("start_date <= ? AND end_date >= ?", at, at).
		Where("usage_limit IS NULL OR used_count < usage_limit").
		Order("priority desc, id asc").
		Find(&offers).
		Error
	if err != nil {
		return nil, err
	}
	return offers, nil
}

// IncrementUsage bumps used_count for an applied offer, inside the caller's
// transaction when one is supplied. The guard repeats the usage-limit
// predicate so a concurrent burst cannot push the counter past the cap; zero
// rows affected means the offer was exhausted after the quote was computed.
func (r *Repository) IncrementUsage(ctx context.Context, tx *gorm.DB, tenantID, offerID uuid.UUID) (bool, error) {
	db := r.db
	if tx != nil {
		db = tx
	}
	result := db.WithContext(ctx).
		Model(&models.Offer{}).
		Where("id = ? AND tenant_id = ?", offerID, tenantID).
		Where("usage_limit IS NULL OR used_count < usage_limit").
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListForTenant returns offers for the admin surface with cursor pagination.
func (r *Repository) ListForTenant(ctx context.Context, tenantID uuid.UUID, params pagination.Params) ([]models.Offer, string, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}

	query := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at desc, id desc").
		Limit(pagination.LimitWithBuffer(params.Limit))

	if cursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var offers []models.Offer
	if err := query.Find(&offers).Error; err != nil {
		return nil, "", err
	}

	limit := pagination.NormalizeLimit(params.Limit)
	next := ""
	if len(offers) > limit {
		offers = offers[:limit]
		last := offers[len(offers)-1]
		next = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return offers, next, nil
}

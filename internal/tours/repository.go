package tours

import (
	"context"

	"github.com/google/uuid"
	"github.com/voyacore/tourbook-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes tour persistence for the pricing and booking flows.
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

// FindByIDForTenant loads a tour scoped to the tenant. Inactive tours are
// not visible to booking flows.
func (r *Repository) FindByIDForTenant(ctx context.Context, tenantID, tourID uuid.UUID) (*models.Tour, error) {
	var tour models.Tour
	if err := r.db.WithContext(ctx).
		First(&tour, "id = ? AND tenant_id = ? AND is_active = true", tourID, tenantID).
		Error; err != nil {
		return nil, err
	}
	return &tour, nil
}

// ListForTenant returns the tenant's active tours ordered by title.
func (r *Repository) ListForTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Tour, error) {
	var tours []models.Tour
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND is_active = true", tenantID).
		Order("title asc").
		Find(&tours).
		Error; err != nil {
		return nil, err
	}
	return tours, nil
}

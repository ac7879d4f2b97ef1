package tenants

import (
	"context"

	"github.com/google/uuid"
	"github.com/voyacore/tourbook-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes tenant lookups used across the booking flows.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindActiveByID loads a tenant and filters out deactivated rows.
func (r *Repository) FindActiveByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := r.db.WithContext(ctx).
		First(&tenant, "id = ? AND is_active = true", id).
		Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

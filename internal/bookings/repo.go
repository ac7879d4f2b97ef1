package bookings

import (
	"context"

	"github.com/google/uuid"
	"github.com/voyacore/tourbook-backend/pkg/db/models"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a bookings repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	if err := r.db.WithContext(ctx).Create(booking).Error; err != nil {
		return nil, err
	}
	return booking, nil
}

func (r *repository) ExistsByReference(ctx context.Context, tenantID uuid.UUID, reference string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("tenant_id = ? AND reference = ?", tenantID, reference).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) FindByReference(ctx context.Context, tenantID uuid.UUID, reference string) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		First(&booking, "tenant_id = ? AND reference = ?", tenantID, reference).
		Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

package bookings

import (
	"context"

	"github.com/google/uuid"
	"github.com/voyacore/tourbook-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines persistence operations for bookings.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, booking *models.Booking) (*models.Booking, error)
	ExistsByReference(ctx context.Context, tenantID uuid.UUID, reference string) (bool, error)
	FindByReference(ctx context.Context, tenantID uuid.UUID, reference string) (*models.Booking, error)
}

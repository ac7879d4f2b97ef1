package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/voyacore/tourbook-backend/pkg/db/types"
)

// Tour is a bookable catalog entry. The booking core treats it as read-only:
// catalog CRUD happens in the admin back office.
type Tour struct {
	ID        uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID  uuid.UUID            `gorm:"column:tenant_id;type:uuid;not null;index"`
	Title     string               `gorm:"column:title;not null"`
	Slug      string               `gorm:"column:slug;not null"`
	Options   types.BookingOptions `gorm:"column:options;type:jsonb"`
	IsActive  bool                 `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

package bookings

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/voyacore/tourbook-backend/pkg/db/models"
	"github.com/voyacore/tourbook-backend/pkg/db/types"
	"github.com/voyacore/tourbook-backend/pkg/enums"
	"gorm.io/gorm"
)

func mustCreateBookingFixtures(t *testing.T, tx *gorm.DB) (*models.Tenant, *models.Tour) {
	t.Helper()

	tenant := &models.Tenant{
		ID:       uuid.New(),
		Name:     "Repo Tours",
		Slug:     fmt.Sprintf("repo-tours-%s", uuid.NewString()),
		IsActive: true,
	}
	if err := tx.Create(tenant).Error; err != nil {
		t.Fatalf("create tenant: %v", err)
	}

	tour := &models.Tour{
		ID:       uuid.New(),
		TenantID: tenant.ID,
		Title:    "City Walk",
		Slug:     fmt.Sprintf("city-walk-%s", uuid.NewString()),
		Options: types.BookingOptions{
			{Type: "standard", Label: "Standard", Price: decimal.NewFromInt(60)},
		},
		IsActive: true,
	}
	if err := tx.Create(tour).Error; err != nil {
		t.Fatalf("create tour: %v", err)
	}
	return tenant, tour
}

func TestRepositoryBookingFlow(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	t.Cleanup(func() {
		_ = tx.Rollback()
	})

	repo := NewRepository(tx)
	ctx := context.Background()

	tenant, tour := mustCreateBookingFixtures(t, tx)

	booking := &models.Booking{
		TenantID:       tenant.ID,
		TourID:         tour.ID,
		Reference:      "RT-123456-AB12",
		OptionType:     "standard",
		OptionLabel:    "Standard",
		UnitPrice:      decimal.NewFromInt(60),
		Adults:         2,
		Children:       1,
		TravelDate:     time.Now().AddDate(0, 1, 0),
		Subtotal:       decimal.NewFromInt(150),
		DiscountAmount: decimal.NewFromInt(30),
		TotalPrice:     decimal.NewFromInt(120),
		AppliedOffer: &types.AppliedOffer{
			OfferID:        uuid.New(),
			Name:           "Summer Sale",
			Type:           enums.OfferTypePercentage.String(),
			DiscountAmount: decimal.NewFromInt(30),
			DiscountValue:  decimal.NewFromInt(20),
			EndDate:        time.Now().AddDate(0, 2, 0),
		},
		Status:        enums.BookingStatusPending,
		Channel:       enums.BookingChannelWeb,
		CustomerName:  "Ada Smith",
		CustomerEmail: "ada@example.com",
	}

	created, err := repo.Create(ctx, booking)
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("expected booking id to be generated")
	}

	exists, err := repo.ExistsByReference(ctx, tenant.ID, booking.Reference)
	if err != nil {
		t.Fatalf("exists check: %v", err)
	}
	if !exists {
		t.Fatal("expected reference to exist")
	}

	exists, err = repo.ExistsByReference(ctx, uuid.New(), booking.Reference)
	if err != nil {
		t.Fatalf("exists check other tenant: %v", err)
	}
	if exists {
		t.Fatal("reference must be scoped to the tenant")
	}

	found, err := repo.FindByReference(ctx, tenant.ID, booking.Reference)
	if err != nil {
		t.Fatalf("find by reference: %v", err)
	}
	if found.AppliedOffer == nil {
		t.Fatal("expected applied-offer snapshot to round-trip")
	}
	if !found.AppliedOffer.DiscountAmount.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("snapshot discount mismatch: %s", found.AppliedOffer.DiscountAmount)
	}
	if !found.TotalPrice.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("total mismatch: %s", found.TotalPrice)
	}

	if _, err := repo.FindByReference(ctx, tenant.ID, "missing"); err != gorm.ErrRecordNotFound {
		t.Fatalf("expected record-not-found, got %v", err)
	}
}

func TestRepositoryReferenceUniquePerTenant(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	t.Cleanup(func() {
		_ = tx.Rollback()
	})

	repo := NewRepository(tx)
	ctx := context.Background()

	tenant, tour := mustCreateBookingFixtures(t, tx)

	base := models.Booking{
		TenantID:      tenant.ID,
		TourID:        tour.ID,
		Reference:     "RT-999999-DUPE",
		OptionType:    "standard",
		OptionLabel:   "Standard",
		UnitPrice:     decimal.NewFromInt(60),
		Adults:        1,
		TravelDate:    time.Now().AddDate(0, 1, 0),
		Subtotal:      decimal.NewFromInt(60),
		TotalPrice:    decimal.NewFromInt(60),
		Status:        enums.BookingStatusPending,
		Channel:       enums.BookingChannelWeb,
		CustomerName:  "Ada Smith",
		CustomerEmail: "ada@example.com",
	}

	first := base
	if _, err := repo.Create(ctx, &first); err != nil {
		t.Fatalf("create first booking: %v", err)
	}

	duplicate := base
	if _, err := repo.Create(ctx, &duplicate); err == nil {
		t.Fatal("expected unique violation for duplicate reference")
	}
}

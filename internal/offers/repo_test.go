package offers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/voyacore/tourbook-backend/pkg/db/models"
	"github.com/voyacore/tourbook-backend/pkg/enums"
	"github.com/voyacore/tourbook-backend/pkg/pagination"
	"gorm.io/gorm"
)

func mustCreateTestTenant(t *testing.T, tx *gorm.DB) *models.Tenant {
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
	return tenant
}

func mustCreateTestOffer(t *testing.T, tx *gorm.DB, tenantID uuid.UUID, mutate func(*models.Offer)) *models.Offer {
	t.Helper()
	now := time.Now()
	offer := &models.Offer{
		ID:            uuid.New(),
		TenantID:      tenantID,
		Name:          "Test Offer",
		Type:          enums.OfferTypePercentage,
		DiscountValue: decimal.NewFromInt(10),
		StartDate:     now.Add(-24 * time.Hour),
		EndDate:       now.Add(24 * time.Hour),
		IsActive:      true,
	}
	if mutate != nil {
		mutate(offer)
	}
	if err := tx.Create(offer).Error; err != nil {
		t.Fatalf("create offer: %v", err)
	}
	return offer
}

func TestRepositoryListActiveForTenant(t *testing.T) {
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
	now := time.Now()

	tenant := mustCreateTestTenant(t, tx)
	other := mustCreateTestTenant(t, tx)

	active := mustCreateTestOffer(t, tx, tenant.ID, nil)
	mustCreateTestOffer(t, tx, tenant.ID, func(o *models.Offer) {
		o.Name = "inactive"
		o.IsActive = false
	})
	mustCreateTestOffer(t, tx, tenant.ID, func(o *models.Offer) {
		o.Name = "expired"
		o.EndDate = now.Add(-time.Hour)
	})
	mustCreateTestOffer(t, tx, tenant.ID, func(o *models.Offer) {
		o.Name = "exhausted"
		limit := 5
		o.UsageLimit = &limit
		o.UsedCount = 5
	})
	mustCreateTestOffer(t, tx, other.ID, func(o *models.Offer) {
		o.Name = "other tenant"
	})

	offers, err := repo.ListActiveForTenant(ctx, tenant.ID, now)
	if err != nil {
		t.Fatalf("list active offers: %v", err)
	}
	if len(offers) != 1 {
		t.Fatalf("expected one candidate offer, got %d", len(offers))
	}
	if offers[0].ID != active.ID {
		t.Fatalf("expected offer %s, got %s", active.ID, offers[0].ID)
	}
}

func TestRepositoryIncrementUsage(t *testing.T) {
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

	tenant := mustCreateTestTenant(t, tx)
	limit := 2
	offer := mustCreateTestOffer(t, tx, tenant.ID, func(o *models.Offer) {
		o.UsageLimit = &limit
		o.UsedCount = 1
	})

	applied, err := repo.IncrementUsage(ctx, nil, tenant.ID, offer.ID)
	if err != nil {
		t.Fatalf("increment usage: %v", err)
	}
	if !applied {
		t.Fatal("expected increment below the cap to succeed")
	}

	applied, err = repo.IncrementUsage(ctx, nil, tenant.ID, offer.ID)
	if err != nil {
		t.Fatalf("increment usage at cap: %v", err)
	}
	if applied {
		t.Fatal("expected increment at the cap to be refused")
	}

	var reloaded models.Offer
	if err := tx.First(&reloaded, "id = ?", offer.ID).Error; err != nil {
		t.Fatalf("reload offer: %v", err)
	}
	if reloaded.UsedCount != 2 {
		t.Fatalf("expected used_count 2, got %d", reloaded.UsedCount)
	}
}

func TestRepositoryListForTenantPagination(t *testing.T) {
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

	tenant := mustCreateTestTenant(t, tx)
	for i := 0; i < 5; i++ {
		mustCreateTestOffer(t, tx, tenant.ID, func(o *models.Offer) {
			o.Name = fmt.Sprintf("Offer %d", i)
		})
	}

	firstPage, cursor, err := repo.ListForTenant(ctx, tenant.ID, pagination.Params{Limit: 3})
	if err != nil {
		t.Fatalf("list first page: %v", err)
	}
	if len(firstPage) != 3 {
		t.Fatalf("expected 3 offers, got %d", len(firstPage))
	}
	if cursor == "" {
		t.Fatal("expected a next cursor")
	}

	secondPage, next, err := repo.ListForTenant(ctx, tenant.ID, pagination.Params{Limit: 3, Cursor: cursor})
	if err != nil {
		t.Fatalf("list second page: %v", err)
	}
	if len(secondPage) != 2 {
		t.Fatalf("expected 2 offers on second page, got %d", len(secondPage))
	}
	if next != "" {
		t.Fatalf("expected no further cursor, got %q", next)
	}

	seen := map[uuid.UUID]bool{}
	for _, offer := range append(firstPage, secondPage...) {
		if seen[offer.ID] {
			t.Fatalf("offer %s returned twice", offer.ID)
		}
		seen[offer.ID] = true
	}
}

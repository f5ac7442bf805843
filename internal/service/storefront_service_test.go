package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/casalista/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupStorefrontTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:storefront-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := gdb.AutoMigrate(&db.Storefront{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return gdb
}

func TestStorefrontUpsertCreatesAndUpdates(t *testing.T) {
	svc := NewStorefrontService(setupStorefrontTestDB(t))

	created, err := svc.Upsert(StorefrontInput{Code: "costa", Name: "Costa Homes"})
	if err != nil {
		t.Fatalf("Upsert create failed: %v", err)
	}
	if !created.Visible {
		t.Fatal("new storefronts default to visible")
	}

	hidden := false
	updated, err := svc.Upsert(StorefrontInput{
		Code:    "costa",
		Name:    "Costa Homes Premium",
		Domain:  "costa.example.com",
		Visible: &hidden,
	})
	if err != nil {
		t.Fatalf("Upsert update failed: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("expected update of the same row, got %d and %d", created.ID, updated.ID)
	}
	if updated.Name != "Costa Homes Premium" || updated.Domain != "costa.example.com" || updated.Visible {
		t.Fatalf("unexpected updated storefront: %+v", updated)
	}

	var count int64
	if err := svc.db.Model(&db.Storefront{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single row after upserts, got %d", count)
	}
}

func TestStorefrontUpsertValidation(t *testing.T) {
	svc := NewStorefrontService(setupStorefrontTestDB(t))

	if _, err := svc.Upsert(StorefrontInput{Code: "", Name: "Sin Codigo"}); !errors.Is(err, ErrStorefrontInvalidInput) {
		t.Fatalf("expected ErrStorefrontInvalidInput, got %v", err)
	}
	if _, err := svc.Upsert(StorefrontInput{Code: "x", Name: "  "}); !errors.Is(err, ErrStorefrontInvalidInput) {
		t.Fatalf("expected ErrStorefrontInvalidInput, got %v", err)
	}
}

func TestStorefrontListVisibility(t *testing.T) {
	svc := NewStorefrontService(setupStorefrontTestDB(t))

	if _, err := svc.Upsert(StorefrontInput{Code: "costa", Name: "Costa Homes"}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	hidden := false
	if _, err := svc.Upsert(StorefrontInput{Code: "urbe", Name: "Urbe Living", Visible: &hidden}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	visible, err := svc.List(false)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(visible) != 1 || visible[0].Code != "costa" {
		t.Fatalf("unexpected visible storefronts: %+v", visible)
	}

	all, err := svc.List(true)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 storefronts in admin listing, got %d", len(all))
	}
}

func TestStorefrontGetByCodeAndDelete(t *testing.T) {
	svc := NewStorefrontService(setupStorefrontTestDB(t))

	created, err := svc.Upsert(StorefrontInput{Code: "costa", Name: "Costa Homes"})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	loaded, err := svc.GetByCode(" costa ")
	if err != nil {
		t.Fatalf("GetByCode failed: %v", err)
	}
	if loaded.ID != created.ID {
		t.Fatalf("unexpected storefront: %+v", loaded)
	}

	if err := svc.Delete(created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := svc.GetByCode("costa"); !errors.Is(err, ErrStorefrontNotFound) {
		t.Fatalf("expected ErrStorefrontNotFound, got %v", err)
	}
	if err := svc.Delete(created.ID); !errors.Is(err, ErrStorefrontNotFound) {
		t.Fatalf("expected ErrStorefrontNotFound on double delete, got %v", err)
	}
}

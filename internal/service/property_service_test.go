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

func setupPropertyTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:property-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := gdb.AutoMigrate(&db.Property{}); err != nil {
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

func TestPropertyCreateGeneratesSlug(t *testing.T) {
	svc := NewPropertyService(setupPropertyTestDB(t))

	property, err := svc.Create(PropertyInput{Title: "Villa del Mar, Alicante"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if property.Slug != "villa-del-mar-alicante" {
		t.Fatalf("unexpected slug %q", property.Slug)
	}
	if property.Status != db.PropertyStatusPublished {
		t.Fatalf("expected default status published, got %q", property.Status)
	}
	if property.Currency != "EUR" {
		t.Fatalf("expected default currency EUR, got %q", property.Currency)
	}

	accented, err := svc.Create(PropertyInput{Title: "Ático Soleado en Málaga"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if accented.Slug != "atico-soleado-en-malaga" {
		t.Fatalf("expected accents folded in slug, got %q", accented.Slug)
	}
}

func TestPropertyCreateRejectsDuplicateSlug(t *testing.T) {
	svc := NewPropertyService(setupPropertyTestDB(t))

	if _, err := svc.Create(PropertyInput{Title: "Casa Uno", Slug: "casa"}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	_, err := svc.Create(PropertyInput{Title: "Casa Dos", Slug: "casa"})
	if !errors.Is(err, ErrPropertySlugTaken) {
		t.Fatalf("expected ErrPropertySlugTaken, got %v", err)
	}
}

func TestPropertyCreateValidatesInput(t *testing.T) {
	svc := NewPropertyService(setupPropertyTestDB(t))

	if _, err := svc.Create(PropertyInput{Title: "   "}); !errors.Is(err, ErrPropertyTitleMissing) {
		t.Fatalf("expected ErrPropertyTitleMissing, got %v", err)
	}
	if _, err := svc.Create(PropertyInput{Title: "Casa", Status: "vanished"}); !errors.Is(err, ErrPropertyStatusInvalid) {
		t.Fatalf("expected ErrPropertyStatusInvalid, got %v", err)
	}
}

func TestPropertyArchiveHidesFromPublishedList(t *testing.T) {
	svc := NewPropertyService(setupPropertyTestDB(t))

	property, err := svc.Create(PropertyInput{Title: "Atico Sol"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.Create(PropertyInput{Title: "Loft Rio"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := svc.Archive(property.ID); err != nil {
		t.Fatalf("Archive failed: %v", err)
	}

	result, err := svc.ListPublished(1, 10)
	if err != nil {
		t.Fatalf("ListPublished failed: %v", err)
	}
	if result.Total != 1 {
		t.Fatalf("expected 1 published property, got %d", result.Total)
	}
	if result.Items[0].Slug != "loft-rio" {
		t.Fatalf("unexpected published property %q", result.Items[0].Slug)
	}

	archived, err := svc.Get(property.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if archived.Status != db.PropertyStatusArchived {
		t.Fatalf("expected archived status, got %q", archived.Status)
	}
}

func TestPropertyGetBySlugNotFound(t *testing.T) {
	svc := NewPropertyService(setupPropertyTestDB(t))

	if _, err := svc.GetBySlug("missing"); !errors.Is(err, ErrPropertyNotFound) {
		t.Fatalf("expected ErrPropertyNotFound, got %v", err)
	}
}

func TestPropertyListFilters(t *testing.T) {
	svc := NewPropertyService(setupPropertyTestDB(t))

	if _, err := svc.Create(PropertyInput{Title: "Villa Norte", City: "Valencia"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.Create(PropertyInput{Title: "Villa Sur", City: "Sevilla"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	result, err := svc.List(PropertyFilter{City: "Valencia"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if result.Total != 1 || result.Items[0].City != "Valencia" {
		t.Fatalf("unexpected city filter result: %+v", result.Items)
	}

	result, err = svc.List(PropertyFilter{Search: "Sur"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if result.Total != 1 || result.Items[0].Title != "Villa Sur" {
		t.Fatalf("unexpected search result: %+v", result.Items)
	}
}

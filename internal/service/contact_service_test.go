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

func setupContactTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:contact-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := gdb.AutoMigrate(&db.ContactMessage{}); err != nil {
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

func TestContactSubmit(t *testing.T) {
	svc := NewContactService(setupContactTestDB(t))
	propertyID := uint(7)

	message, err := svc.Submit(ContactInput{
		PropertyID: &propertyID,
		Name:       "  Marta  ",
		Email:      "marta@example.com",
		Message:    "Me interesa la villa.",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if message.Name != "Marta" {
		t.Fatalf("expected trimmed name, got %q", message.Name)
	}
	if message.PropertyID == nil || *message.PropertyID != propertyID {
		t.Fatalf("expected property reference kept, got %+v", message.PropertyID)
	}
	if message.Handled {
		t.Fatal("new messages must start unhandled")
	}
}

func TestContactSubmitValidation(t *testing.T) {
	svc := NewContactService(setupContactTestDB(t))

	cases := []struct {
		name  string
		input ContactInput
		want  error
	}{
		{name: "missing_name", input: ContactInput{Email: "a@b.com", Message: "hola"}, want: ErrContactNameMissing},
		{name: "bad_email", input: ContactInput{Name: "Ana", Email: "not-an-email", Message: "hola"}, want: ErrContactEmailInvalid},
		{name: "email_without_domain_dot", input: ContactInput{Name: "Ana", Email: "a@b", Message: "hola"}, want: ErrContactEmailInvalid},
		{name: "missing_message", input: ContactInput{Name: "Ana", Email: "a@b.com"}, want: ErrContactMessageMissing},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Submit(tc.input); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestContactListRecentAndMarkHandled(t *testing.T) {
	svc := NewContactService(setupContactTestDB(t))

	first, err := svc.Submit(ContactInput{Name: "Ana", Email: "ana@example.com", Message: "primera"})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if _, err := svc.Submit(ContactInput{Name: "Berto", Email: "berto@example.com", Message: "segunda"}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	items, err := svc.ListRecent(10)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(items))
	}

	if err := svc.MarkHandled(first.ID); err != nil {
		t.Fatalf("MarkHandled failed: %v", err)
	}

	var reloaded db.ContactMessage
	if err := svc.db.First(&reloaded, first.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if !reloaded.Handled {
		t.Fatal("expected message to be marked handled")
	}

	if err := svc.MarkHandled(9999); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

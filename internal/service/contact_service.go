package service

import (
	"errors"
	"strings"

	"github.com/casalista/internal/db"
	"gorm.io/gorm"
)

var (
	ErrContactNameMissing    = errors.New("contact name is required")
	ErrContactEmailInvalid   = errors.New("contact email is invalid")
	ErrContactMessageMissing = errors.New("contact message is required")
)

// ContactService stores contact form submissions from the storefronts.
type ContactService struct {
	db *gorm.DB
}

// ContactInput represents a contact form submission.
type ContactInput struct {
	PropertyID *uint
	Name       string
	Email      string
	Phone      string
	Message    string
}

// NewContactService creates a ContactService instance.
func NewContactService(gdb *gorm.DB) *ContactService {
	return &ContactService{db: gdb}
}

// Submit validates and persists a contact message.
func (s *ContactService) Submit(input ContactInput) (*db.ContactMessage, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrContactNameMissing
	}

	email := strings.TrimSpace(input.Email)
	if !looksLikeEmail(email) {
		return nil, ErrContactEmailInvalid
	}

	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, ErrContactMessageMissing
	}

	item := db.ContactMessage{
		PropertyID: input.PropertyID,
		Name:       name,
		Email:      email,
		Phone:      strings.TrimSpace(input.Phone),
		Message:    message,
	}

	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListRecent returns the latest submissions for the admin inbox.
func (s *ContactService) ListRecent(limit int) ([]db.ContactMessage, error) {
	if limit <= 0 {
		limit = 50
	}
	var items []db.ContactMessage
	if err := s.db.Order("created_at DESC").Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// MarkHandled flags a message as processed.
func (s *ContactService) MarkHandled(id uint) error {
	result := s.db.Model(&db.ContactMessage{}).
		Where("id = ?", id).
		Update("handled", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func looksLikeEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	return strings.Contains(email[at+1:], ".")
}

package service

import (
	"errors"
	"regexp"
	"strings"

	"github.com/casalista/internal/db"
	"gorm.io/gorm"
)

var (
	ErrPropertyNotFound      = errors.New("property not found")
	ErrPropertyTitleMissing  = errors.New("property title is required")
	ErrPropertySlugTaken     = errors.New("property slug already exists")
	ErrPropertyStatusInvalid = errors.New("property status is invalid")
)

// PropertyService handles catalog CRUD shared by every storefront.
type PropertyService struct {
	db *gorm.DB
}

// PropertyFilter describes filters for listing properties.
type PropertyFilter struct {
	Search  string
	Status  string
	City    string
	Page    int
	PerPage int
}

// PropertyListResult aggregates paginated property results.
type PropertyListResult struct {
	Items      []db.Property
	Total      int64
	TotalPages int
	Page       int
	PerPage    int
}

// PropertyInput represents fields accepted when creating or updating a property.
type PropertyInput struct {
	Title         string
	Slug          string
	Description   string
	Price         float64
	Currency      string
	City          string
	Bedrooms      int
	AreaSqm       float64
	CoverImageURL string
	Status        string
	Sort          int
}

// NewPropertyService creates a PropertyService instance.
func NewPropertyService(gdb *gorm.DB) *PropertyService {
	return &PropertyService{db: gdb}
}

// List returns properties matching the filter.
func (s *PropertyService) List(filter PropertyFilter) (PropertyListResult, error) {
	result := PropertyListResult{
		Page:    normalizePage(filter.Page),
		PerPage: normalizePerPage(filter.PerPage, 12),
	}

	query := s.db.Model(&db.Property{})
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	if city := strings.TrimSpace(filter.City); city != "" {
		query = query.Where("city = ?", city)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("title LIKE ? OR description LIKE ? OR city LIKE ?", like, like, like)
	}

	if err := query.Count(&result.Total).Error; err != nil {
		return result, err
	}

	result.TotalPages = calculateTotalPages(result.Total, result.PerPage)
	offset := (result.Page - 1) * result.PerPage

	if err := query.Order("sort ASC").Order("created_at DESC").
		Limit(result.PerPage).
		Offset(offset).
		Find(&result.Items).Error; err != nil {
		return result, err
	}

	return result, nil
}

// ListPublished returns published properties with pagination.
func (s *PropertyService) ListPublished(page, perPage int) (PropertyListResult, error) {
	return s.List(PropertyFilter{
		Status:  db.PropertyStatusPublished,
		Page:    page,
		PerPage: perPage,
	})
}

// Get fetches a property by id.
func (s *PropertyService) Get(id uint) (*db.Property, error) {
	var item db.Property
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return &item, nil
}

// GetBySlug fetches a property by its public slug.
func (s *PropertyService) GetBySlug(slug string) (*db.Property, error) {
	var item db.Property
	if err := s.db.Where("slug = ?", strings.TrimSpace(slug)).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts a new property.
func (s *PropertyService) Create(input PropertyInput) (*db.Property, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrPropertyTitleMissing
	}

	status, err := normalizePropertyStatus(input.Status)
	if err != nil {
		return nil, err
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = Slugify(title)
	}
	taken, err := s.slugTaken(slug, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrPropertySlugTaken
	}

	item := db.Property{
		Title:         title,
		Slug:          slug,
		Description:   input.Description,
		Price:         input.Price,
		Currency:      normalizeCurrency(input.Currency),
		City:          strings.TrimSpace(input.City),
		Bedrooms:      input.Bedrooms,
		AreaSqm:       input.AreaSqm,
		CoverImageURL: strings.TrimSpace(input.CoverImageURL),
		Status:        status,
		Sort:          input.Sort,
	}

	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Update modifies an existing property.
func (s *PropertyService) Update(id uint, input PropertyInput) (*db.Property, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrPropertyTitleMissing
	}

	status, err := normalizePropertyStatus(input.Status)
	if err != nil {
		return nil, err
	}

	var item db.Property
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = item.Slug
	}
	taken, err := s.slugTaken(slug, item.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrPropertySlugTaken
	}

	item.Title = title
	item.Slug = slug
	item.Description = input.Description
	item.Price = input.Price
	item.Currency = normalizeCurrency(input.Currency)
	item.City = strings.TrimSpace(input.City)
	item.Bedrooms = input.Bedrooms
	item.AreaSqm = input.AreaSqm
	item.CoverImageURL = strings.TrimSpace(input.CoverImageURL)
	item.Status = status
	item.Sort = input.Sort

	if err := s.db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Archive marks a property as archived; it disappears from storefronts
// and from the analytics breakdown but its historical rows stay.
func (s *PropertyService) Archive(id uint) error {
	result := s.db.Model(&db.Property{}).
		Where("id = ?", id).
		Update("status", db.PropertyStatusArchived)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

// Delete removes a property permanently.
func (s *PropertyService) Delete(id uint) error {
	result := s.db.Delete(&db.Property{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

func (s *PropertyService) slugTaken(slug string, excludeID uint) (bool, error) {
	query := s.db.Model(&db.Property{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func normalizePropertyStatus(status string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(status))
	if normalized == "" {
		return db.PropertyStatusPublished, nil
	}
	switch normalized {
	case db.PropertyStatusPublished, db.PropertyStatusDraft, db.PropertyStatusArchived:
		return normalized, nil
	}
	return "", ErrPropertyStatusInvalid
}

func normalizeCurrency(currency string) string {
	normalized := strings.ToUpper(strings.TrimSpace(currency))
	if normalized == "" {
		return "EUR"
	}
	return normalized
}

var slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)

// slugAccentFolder maps the accented letters common in Spanish
// listing titles to their ASCII base so they survive slugging.
var slugAccentFolder = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u", "ñ", "n",
)

// Slugify derives a URL-safe slug from a title.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugAccentFolder.Replace(slug)
	slug = slugInvalidChars.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

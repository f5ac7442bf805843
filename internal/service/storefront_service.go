package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/casalista/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrStorefrontNotFound 在指定的品牌站点不存在时返回
	ErrStorefrontNotFound = errors.New("storefront not found")
	// ErrStorefrontInvalidInput 在输入数据不完整时返回
	ErrStorefrontInvalidInput = errors.New("invalid storefront input")
)

// StorefrontService 负责维护品牌站点配置
// 各品牌共享同一份房源目录，这里只管外观与域名差异

type StorefrontService struct {
	db *gorm.DB
}

// NewStorefrontService 构造 StorefrontService
func NewStorefrontService(gdb *gorm.DB) *StorefrontService {
	return &StorefrontService{db: gdb}
}

// StorefrontInput 描述创建或更新品牌站点时可设置的字段
// Sort/Visible 使用指针判断是否显式传入

type StorefrontInput struct {
	Code        string
	Name        string
	Domain      string
	LogoURL     string
	AccentColor string
	Sort        *int
	Visible     *bool
}

// List 返回品牌站点集合，默认按排序值升序
// includeHidden 为 false 时过滤掉 Visible=false 的条目
func (s *StorefrontService) List(includeHidden bool) ([]db.Storefront, error) {
	query := s.db.Model(&db.Storefront{})
	if !includeHidden {
		query = query.Where("visible = ?", true)
	}

	var items []db.Storefront
	if err := query.Order("sort ASC, id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list storefronts: %w", err)
	}

	return items, nil
}

// GetByCode 根据品牌代号获取站点配置
func (s *StorefrontService) GetByCode(code string) (*db.Storefront, error) {
	var item db.Storefront
	if err := s.db.Where("code = ?", strings.TrimSpace(code)).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStorefrontNotFound
		}
		return nil, fmt.Errorf("get storefront: %w", err)
	}
	return &item, nil
}

// Upsert 按品牌代号创建或更新站点配置
func (s *StorefrontService) Upsert(input StorefrontInput) (*db.Storefront, error) {
	code := strings.TrimSpace(input.Code)
	name := strings.TrimSpace(input.Name)
	if code == "" || name == "" {
		return nil, ErrStorefrontInvalidInput
	}

	var item db.Storefront
	err := s.db.Where("code = ?", code).First(&item).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("upsert storefront: %w", err)
	}

	item.Code = code
	item.Name = name
	item.Domain = strings.TrimSpace(input.Domain)
	item.LogoURL = strings.TrimSpace(input.LogoURL)
	item.AccentColor = strings.TrimSpace(input.AccentColor)
	if input.Sort != nil {
		item.Sort = *input.Sort
	}
	if input.Visible != nil {
		item.Visible = *input.Visible
	} else if errors.Is(err, gorm.ErrRecordNotFound) {
		item.Visible = true
	}

	if err := s.db.Save(&item).Error; err != nil {
		return nil, fmt.Errorf("upsert storefront: %w", err)
	}
	return &item, nil
}

// Delete 删除品牌站点配置
func (s *StorefrontService) Delete(id uint) error {
	result := s.db.Delete(&db.Storefront{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete storefront: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrStorefrontNotFound
	}
	return nil
}

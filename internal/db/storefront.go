package db

import "gorm.io/gorm"

// Storefront 定义品牌站点配置。
// 各品牌站点共用同一份房源目录，仅外观与域名不同。
// Sort 值越小越靠前。
type Storefront struct {
	gorm.Model
	Code        string `gorm:"size:50;uniqueIndex;not null"`
	Name        string `gorm:"size:100;not null"`
	Domain      string `gorm:"size:255"`
	LogoURL     string `gorm:"size:255"`
	AccentColor string `gorm:"size:20"`
	Visible     bool   `gorm:"default:true"`
	Sort        int    `gorm:"default:0"`
}

// TableName 返回自定义表名，避免冲突。
func (Storefront) TableName() string {
	return "storefronts"
}

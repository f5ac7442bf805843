package db

import "gorm.io/gorm"

// Property 定义房源模型，多个品牌站点共享同一份房源目录。
// Description 为 Markdown 文本，前台渲染时再转为 HTML。
type Property struct {
	gorm.Model
	Title         string  `gorm:"size:200;not null"`
	Slug          string  `gorm:"size:200;uniqueIndex;not null"`
	Description   string  `gorm:"type:text"`
	Price         float64 `gorm:"default:0"`
	Currency      string  `gorm:"size:3;default:EUR"`
	City          string  `gorm:"size:100;index"`
	Bedrooms      int     `gorm:"default:0"`
	AreaSqm       float64 `gorm:"default:0"`
	CoverImageURL string  `gorm:"size:255"`
	Status        string  `gorm:"size:20;default:published;index"` // published, draft, archived
	Sort          int     `gorm:"default:0"`
}

// TableName 指定自定义表名。
func (Property) TableName() string {
	return "properties"
}

const (
	// PropertyStatusPublished 表示房源在前台可见。
	PropertyStatusPublished = "published"
	// PropertyStatusDraft 表示房源尚未发布。
	PropertyStatusDraft = "draft"
	// PropertyStatusArchived 表示房源已下架，统计中不再出现。
	PropertyStatusArchived = "archived"
)

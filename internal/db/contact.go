package db

import "gorm.io/gorm"

// ContactMessage 保存前台联系表单提交的留言。
// PropertyID 可为空：留言不一定针对某个具体房源。
type ContactMessage struct {
	gorm.Model
	PropertyID *uint  `gorm:"index"`
	Name       string `gorm:"size:100;not null"`
	Email      string `gorm:"size:255;not null"`
	Phone      string `gorm:"size:50"`
	Message    string `gorm:"type:text;not null"`
	Handled    bool   `gorm:"default:false"`
}

// TableName 指定自定义表名。
func (ContactMessage) TableName() string {
	return "contact_messages"
}

package db

import "time"

// VisitSession 表示一次匿名访问会话窗口。
// 只保存 IP 的单向哈希，绝不落库原始 IP。
type VisitSession struct {
	ID         string `gorm:"primaryKey;size:36"`
	IPHash     string `gorm:"size:64;index;not null"`
	UserAgent  *string
	Referrer   *string
	StartedAt  time.Time `gorm:"index;not null"`
	LastSeenAt time.Time `gorm:"not null"`
	EndedAt    *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName 指定自定义表名。
func (VisitSession) TableName() string {
	return "visit_sessions"
}

// Pageview 记录一次页面访问，创建后不可修改。
type Pageview struct {
	ID         uint      `gorm:"primaryKey"`
	SessionID  string    `gorm:"size:36;index;not null"`
	Path       string    `gorm:"size:500;not null"`
	OccurredAt time.Time `gorm:"index;not null"`
}

// TableName 指定自定义表名。
func (Pageview) TableName() string {
	return "pageviews"
}

// TrackedEvent 记录一次交互事件（如联系渠道点击）。
// SessionID 可为空：会话创建失败时事件依然要被记录。
type TrackedEvent struct {
	ID         uint      `gorm:"primaryKey"`
	SessionID  *string   `gorm:"size:36;index"`
	EventType  string    `gorm:"size:50;index;not null"`
	PropertyID *uint     `gorm:"index"`
	OccurredAt time.Time `gorm:"index;not null"`
}

// TableName 指定自定义表名。
func (TrackedEvent) TableName() string {
	return "tracked_events"
}

package service

import (
	"errors"
	"strings"
	"time"

	"github.com/casalista/internal/db"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrSessionNotFound 表示引用的会话已不存在，客户端应丢弃本地 ID 重新建会话。
	ErrSessionNotFound = errors.New("visit session not found")
	// ErrEventTypeInvalid 表示事件类型不在已知集合内。
	ErrEventTypeInvalid = errors.New("event type is invalid")
)

// 联系渠道点击事件的封闭集合，线上传输仍是普通字符串。
const (
	EventWhatsAppClick = "whatsapp_click"
	EventPhoneClick    = "phone_click"
	EventEmailClick    = "email_click"
	EventContactForm   = "contact_form"
)

var knownEventTypes = map[string]bool{
	EventWhatsAppClick: true,
	EventPhoneClick:    true,
	EventEmailClick:    true,
	EventContactForm:   true,
}

// IsKnownEventType 判断事件类型是否属于已知集合。
func IsKnownEventType(eventType string) bool {
	return knownEventTypes[eventType]
}

// SessionResult 是一次建会话调用的结果。
// 命中爬虫时 SessionID 为空且 Bot 为 true，调用方静默结束即可。
type SessionResult struct {
	SessionID string
	Reused    bool
	Bot       bool
}

// TrackingService 负责匿名访问会话的创建、去重与事件采集。
// 去重缓存是进程内状态：同一指纹的并发首访可能竞态产生两条会话，
// 这是接受的折衷，不引入跨进程锁。
type TrackingService struct {
	db    *gorm.DB
	fp    *Fingerprinter
	cache *sessionCache
}

// NewTrackingService 创建 TrackingService，默认去重窗口为 30 分钟。
func NewTrackingService(gdb *gorm.DB, fp *Fingerprinter) *TrackingService {
	return &TrackingService{
		db:    gdb,
		fp:    fp,
		cache: newSessionCache(defaultSessionWindow),
	}
}

// WithSessionWindow 允许在测试或特定场景下调整去重窗口。
func (s *TrackingService) WithSessionWindow(d time.Duration) *TrackingService {
	if d <= 0 {
		return s
	}
	s.cache = newSessionCache(d)
	return s
}

// StartSession 为访客建立或复用匿名会话。
// 流程：爬虫判定 → 计算指纹 → 缓存命中则复用，否则落库新会话。
// 落库的只有 IP 哈希，原始 IP 在本方法栈帧之外不再出现。
func (s *TrackingService) StartSession(ip, userAgent, referrer string, now time.Time) (*SessionResult, error) {
	if IsBot(userAgent) {
		return &SessionResult{Bot: true}, nil
	}

	ipHash := s.fp.HashIP(ip)
	fingerprint := s.fp.Fingerprint(ipHash, userAgent)

	if sessionID, ok := s.cache.get(fingerprint, now); ok {
		s.cache.touch(fingerprint, now)
		return &SessionResult{SessionID: sessionID, Reused: true}, nil
	}

	session := db.VisitSession{
		ID:         uuid.NewString(),
		IPHash:     ipHash,
		StartedAt:  now,
		LastSeenAt: now,
	}
	if ua := strings.TrimSpace(userAgent); ua != "" {
		session.UserAgent = &ua
	}
	if ref := strings.TrimSpace(referrer); ref != "" {
		session.Referrer = &ref
	}

	if err := s.db.Create(&session).Error; err != nil {
		return nil, err
	}

	s.cache.put(fingerprint, session.ID, now)
	return &SessionResult{SessionID: session.ID}, nil
}

// EndSession 标记会话结束并剔除对应的缓存条目，
// 指纹由同样的输入重新算出，保证下次访问开启全新会话。
func (s *TrackingService) EndSession(sessionID, ip, userAgent string, now time.Time) error {
	result := s.db.Model(&db.VisitSession{}).
		Where("id = ?", sessionID).
		Updates(map[string]interface{}{
			"ended_at":     now,
			"last_seen_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}

	ipHash := s.fp.HashIP(ip)
	s.cache.evict(s.fp.Fingerprint(ipHash, userAgent))
	return nil
}

// RecordPageview 记录一次页面访问并刷新会话活跃时间。
// 会话已不存在时返回 ErrSessionNotFound，不写任何行。
func (s *TrackingService) RecordPageview(sessionID, path string, now time.Time) error {
	result := s.db.Model(&db.VisitSession{}).
		Where("id = ?", sessionID).
		Update("last_seen_at", now)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}

	s.cache.touchSession(sessionID, now)

	return s.db.Create(&db.Pageview{
		SessionID:  sessionID,
		Path:       path,
		OccurredAt: now,
	}).Error
}

// RecordEvent 记录一次交互事件。
// 事件只起参考作用：会话 ID 缺失或已失效时降级为空引用写入，不向调用方报错。
func (s *TrackingService) RecordEvent(sessionID *string, eventType string, propertyID *uint, now time.Time) error {
	if !IsKnownEventType(eventType) {
		return ErrEventTypeInvalid
	}

	event := db.TrackedEvent{
		EventType:  eventType,
		PropertyID: propertyID,
		OccurredAt: now,
	}

	if sessionID != nil && strings.TrimSpace(*sessionID) != "" {
		var count int64
		if err := s.db.Model(&db.VisitSession{}).
			Where("id = ?", *sessionID).
			Count(&count).Error; err == nil && count > 0 {
			event.SessionID = sessionID
		}
	}

	return s.db.Create(&event).Error
}

// SweepCache 清理过期的去重缓存条目，由路由层周期性调用。
func (s *TrackingService) SweepCache(now time.Time) int {
	return s.cache.sweep(now)
}

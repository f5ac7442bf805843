package service

import (
	"log"
	"sort"
	"time"

	"github.com/casalista/internal/db"
	"gorm.io/gorm"
)

const (
	// defaultStatsWindowDays 是仪表盘默认统计窗口。
	defaultStatsWindowDays = 30
	// retentionDays 是访问数据的保留期限，超期数据随统计请求顺带清理。
	retentionDays = 90
	// maxSaneSessionDuration 是会话时长的合理上限，
	// 超过的视为测量噪音（标签页挂着没关），不参与平均时长。
	maxSaneSessionDuration = 2 * time.Hour
)

// DailyPoint 是按天的访问量数据点，窗口内没有访问的日期也会出现（计数为零）。
type DailyPoint struct {
	Date           string `json:"date"`
	Pageviews      int64  `json:"pageviews"`
	UniqueVisitors int64  `json:"uniqueVisitors"`
}

// PropertyStat 是单个房源在窗口内的访问与转化数据。
type PropertyStat struct {
	PropertyID  uint   `json:"propertyId"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Pageviews   int64  `json:"pageviews"`
	Conversions int64  `json:"conversions"`
}

// SiteStats 汇总仪表盘需要的全部 KPI。
type SiteStats struct {
	WindowDays                int            `json:"windowDays"`
	UniqueVisitors            int64          `json:"uniqueVisitors"`
	TotalPageviews            int64          `json:"totalPageviews"`
	ConversionEvents          int64          `json:"conversionEvents"`
	AvgSessionDurationSeconds float64        `json:"avgSessionDurationSeconds"`
	DailySeries               []DailyPoint   `json:"dailySeries"`
	PropertyBreakdown         []PropertyStat `json:"propertyBreakdown"`
}

// StatsService 负责把原始访问数据聚合为仪表盘统计。
type StatsService struct {
	db *gorm.DB
}

// NewStatsService 创建 StatsService。
func NewStatsService(gdb *gorm.DB) *StatsService {
	return &StatsService{db: gdb}
}

// ComputeStats 计算窗口内的 KPI，并顺带清理超过保留期限的数据。
// 清理失败只记日志，绝不影响统计结果的返回。
func (s *StatsService) ComputeStats(now time.Time, windowDays int) (*SiteStats, error) {
	if windowDays <= 0 {
		windowDays = defaultStatsWindowDays
	}

	if err := s.CleanupExpired(now); err != nil {
		log.Printf("analytics retention cleanup failed: %v", err)
	}

	endDay := now.UTC().Truncate(24 * time.Hour)
	startDay := endDay.AddDate(0, 0, -(windowDays - 1))
	windowStart := startDay

	stats := &SiteStats{
		WindowDays:  windowDays,
		DailySeries: make([]DailyPoint, 0, windowDays),
	}

	var pageviews []db.Pageview
	if err := s.db.
		Where("occurred_at >= ?", windowStart).
		Find(&pageviews).Error; err != nil {
		return nil, err
	}

	var events []db.TrackedEvent
	if err := s.db.
		Where("occurred_at >= ?", windowStart).
		Find(&events).Error; err != nil {
		return nil, err
	}

	stats.TotalPageviews = int64(len(pageviews))
	stats.ConversionEvents = int64(len(events))

	sessionsSeen := make(map[string]bool)
	dayPageviews := make(map[string]int64)
	daySessions := make(map[string]map[string]bool)
	pathPageviews := make(map[string]int64)

	for _, pv := range pageviews {
		sessionsSeen[pv.SessionID] = true
		day := pv.OccurredAt.UTC().Format("2006-01-02")
		dayPageviews[day]++
		if daySessions[day] == nil {
			daySessions[day] = make(map[string]bool)
		}
		daySessions[day][pv.SessionID] = true
		pathPageviews[pv.Path]++
	}
	stats.UniqueVisitors = int64(len(sessionsSeen))

	// 按天序列必须稠密：没有访问的日期也要出现零值数据点
	for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		stats.DailySeries = append(stats.DailySeries, DailyPoint{
			Date:           key,
			Pageviews:      dayPageviews[key],
			UniqueVisitors: int64(len(daySessions[key])),
		})
	}

	avg, err := s.averageSessionDuration(windowStart)
	if err != nil {
		return nil, err
	}
	stats.AvgSessionDurationSeconds = avg

	breakdown, err := s.propertyBreakdown(pathPageviews, events)
	if err != nil {
		return nil, err
	}
	stats.PropertyBreakdown = breakdown

	return stats, nil
}

// averageSessionDuration 计算已结束会话的平均时长（秒）。
// 只统计两个时间戳齐全且时长不超过上限的会话，超限会话直接剔除而非截断。
func (s *StatsService) averageSessionDuration(windowStart time.Time) (float64, error) {
	var sessions []db.VisitSession
	if err := s.db.
		Where("started_at >= ? AND ended_at IS NOT NULL", windowStart).
		Find(&sessions).Error; err != nil {
		return 0, err
	}

	var total time.Duration
	var counted int
	for _, session := range sessions {
		duration := session.EndedAt.Sub(session.StartedAt)
		if duration < 0 || duration > maxSaneSessionDuration {
			continue
		}
		total += duration
		counted++
	}

	if counted == 0 {
		return 0, nil
	}
	return total.Seconds() / float64(counted), nil
}

// propertyBreakdown 统计每个未下架房源的浏览量与转化量。
// 零活跃的房源也要出现在结果里，整体按浏览量倒序。
func (s *StatsService) propertyBreakdown(pathPageviews map[string]int64, events []db.TrackedEvent) ([]PropertyStat, error) {
	var properties []db.Property
	if err := s.db.
		Where("status <> ?", db.PropertyStatusArchived).
		Order("sort ASC, id ASC").
		Find(&properties).Error; err != nil {
		return nil, err
	}

	conversions := make(map[uint]int64)
	for _, event := range events {
		if event.PropertyID != nil {
			conversions[*event.PropertyID]++
		}
	}

	breakdown := make([]PropertyStat, 0, len(properties))
	for _, property := range properties {
		breakdown = append(breakdown, PropertyStat{
			PropertyID:  property.ID,
			Title:       property.Title,
			Slug:        property.Slug,
			Pageviews:   pathPageviews[PropertyPath(property.Slug)],
			Conversions: conversions[property.ID],
		})
	}

	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Pageviews > breakdown[j].Pageviews
	})

	return breakdown, nil
}

// PropertyPath 返回房源详情页的站内路径，浏览量按此归属到房源。
func PropertyPath(slug string) string {
	return "/properties/" + slug
}

// CleanupExpired 删除保留期限外的会话及其关联的浏览与事件记录。
// 孤儿事件（无会话引用）按自身时间一并清理。
func (s *StatsService) CleanupExpired(now time.Time) error {
	cutoff := now.AddDate(0, 0, -retentionDays)

	return s.db.Transaction(func(tx *gorm.DB) error {
		expired := tx.Model(&db.VisitSession{}).
			Select("id").
			Where("started_at < ?", cutoff)

		if err := tx.
			Where("session_id IN (?)", expired).
			Delete(&db.Pageview{}).Error; err != nil {
			return err
		}
		if err := tx.
			Where("session_id IN (?)", expired).
			Delete(&db.TrackedEvent{}).Error; err != nil {
			return err
		}
		if err := tx.
			Where("session_id IS NULL AND occurred_at < ?", cutoff).
			Delete(&db.TrackedEvent{}).Error; err != nil {
			return err
		}

		return tx.
			Where("started_at < ?", cutoff).
			Delete(&db.VisitSession{}).Error
	})
}

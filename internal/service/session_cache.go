package service

import (
	"sync"
	"time"
)

// defaultSessionWindow 是会话去重窗口：同一指纹在窗口内的重复请求复用会话。
const defaultSessionWindow = 30 * time.Minute

type cacheEntry struct {
	sessionID string
	lastSeen  time.Time
}

// sessionCache 维护 指纹 → 会话 的进程内映射，用于避免同一访客在
// 一次浏览过程中被重复建会话。它不是数据源，会话表才是；
// 多实例部署时各实例各自持有缓存，重复建会话的概率上升但不影响正确性。
// sessions 是 会话 ID → 指纹 的反向索引，浏览量上报只携带会话 ID。
type sessionCache struct {
	mu       sync.Mutex
	entries  map[string]*cacheEntry
	sessions map[string]string
	window   time.Duration
}

func newSessionCache(window time.Duration) *sessionCache {
	if window <= 0 {
		window = defaultSessionWindow
	}
	return &sessionCache{
		entries:  make(map[string]*cacheEntry),
		sessions: make(map[string]string),
		window:   window,
	}
}

// get 返回指纹对应且仍在窗口内的会话 ID，并顺带剔除已过期的条目。
func (c *sessionCache) get(fingerprint string, now time.Time) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[fingerprint]
	if !ok {
		return "", false
	}
	if now.Sub(entry.lastSeen) > c.window {
		c.remove(fingerprint, entry)
		return "", false
	}
	return entry.sessionID, true
}

// put 写入或覆盖指纹对应的会话，并维护反向索引。
func (c *sessionCache) put(fingerprint, sessionID string, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.entries[fingerprint]; ok {
		delete(c.sessions, old.sessionID)
	}
	c.entries[fingerprint] = &cacheEntry{sessionID: sessionID, lastSeen: now}
	c.sessions[sessionID] = fingerprint
}

// touch 刷新指纹条目的活跃时间。
func (c *sessionCache) touch(fingerprint string, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.entries[fingerprint]; ok {
		entry.lastSeen = now
	}
}

// touchSession 按会话 ID 刷新活跃时间，经反向索引一步定位。
func (c *sessionCache) touchSession(sessionID string, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if fingerprint, ok := c.sessions[sessionID]; ok {
		if entry, ok := c.entries[fingerprint]; ok {
			entry.lastSeen = now
		}
	}
}

// evict 删除指纹条目，会话显式结束后下次访问将开启新会话。
func (c *sessionCache) evict(fingerprint string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.entries[fingerprint]; ok {
		c.remove(fingerprint, entry)
	}
}

// sweep 清理窗口外的条目，返回清理数量。
func (c *sessionCache) sweep(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for fingerprint, entry := range c.entries {
		if now.Sub(entry.lastSeen) > c.window {
			c.remove(fingerprint, entry)
			removed++
		}
	}
	return removed
}

// remove 同步删除正反两个索引，调用方必须持有锁。
func (c *sessionCache) remove(fingerprint string, entry *cacheEntry) {
	delete(c.entries, fingerprint)
	delete(c.sessions, entry.sessionID)
}

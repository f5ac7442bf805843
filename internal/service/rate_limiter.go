package service

import (
	"strings"
	"sync"
	"time"
)

// 路由类别，不同类别适用不同限流策略。
const (
	RateCategoryTrack   = "track"
	RateCategoryContact = "contact"
	RateCategoryLogin   = "login"
	RateCategoryAdmin   = "admin"
)

// LimitPolicy 描述固定窗口限流策略：每 Window 时长内最多 Quota 次请求。
type LimitPolicy struct {
	Quota  int
	Window time.Duration
}

// Verdict 是一次限流判定的结果。
// 被拒绝时 ResetAt 告知调用方当前窗口何时结束。
type Verdict struct {
	Allowed bool
	ResetAt time.Time
}

// DefaultLimitPolicies 是各路由类别的默认配额表。
func DefaultLimitPolicies() map[string]LimitPolicy {
	return map[string]LimitPolicy{
		RateCategoryTrack:   {Quota: 120, Window: time.Minute},
		RateCategoryContact: {Quota: 5, Window: 10 * time.Minute},
		RateCategoryLogin:   {Quota: 10, Window: 5 * time.Minute},
		RateCategoryAdmin:   {Quota: 60, Window: time.Minute},
	}
}

type windowCounter struct {
	windowStart time.Time
	count       int
}

// RateLimiter 是按 (类别, 客户端键) 维度的固定窗口限流器。
// 计数器只存在于进程内存中，窗口翻转时自动清零。
type RateLimiter struct {
	mu       sync.Mutex
	policies map[string]LimitPolicy
	counters map[string]*windowCounter
}

// NewRateLimiter 创建 RateLimiter，policies 为空时使用默认配额表。
func NewRateLimiter(policies map[string]LimitPolicy) *RateLimiter {
	if len(policies) == 0 {
		policies = DefaultLimitPolicies()
	}
	return &RateLimiter{
		policies: policies,
		counters: make(map[string]*windowCounter),
	}
}

// Check 判定 clientKey 在 category 下的这次请求是否放行。
// 未配置策略的类别不限流。
func (rl *RateLimiter) Check(category, clientKey string, now time.Time) Verdict {
	policy, ok := rl.policies[category]
	if !ok || policy.Quota <= 0 {
		return Verdict{Allowed: true}
	}

	windowStart := now.Truncate(policy.Window)
	resetAt := windowStart.Add(policy.Window)
	key := category + "|" + clientKey

	rl.mu.Lock()
	defer rl.mu.Unlock()

	counter, exists := rl.counters[key]
	if !exists || counter.windowStart.Before(windowStart) {
		rl.counters[key] = &windowCounter{windowStart: windowStart, count: 1}
		return Verdict{Allowed: true, ResetAt: resetAt}
	}

	if counter.count >= policy.Quota {
		return Verdict{Allowed: false, ResetAt: resetAt}
	}

	counter.count++
	return Verdict{Allowed: true, ResetAt: resetAt}
}

// Sweep 清理窗口已结束的计数器，避免低频客户端残留。
// 返回清理掉的条目数，便于观察。
func (rl *RateLimiter) Sweep(now time.Time) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	removed := 0
	for key, counter := range rl.counters {
		window := time.Hour
		if i := strings.Index(key, "|"); i >= 0 {
			if policy, ok := rl.policies[key[:i]]; ok {
				window = policy.Window
			}
		}
		if now.Sub(counter.windowStart) >= 2*window {
			delete(rl.counters, key)
			removed++
		}
	}
	return removed
}

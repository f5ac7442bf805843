package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/casalista/internal/service"
	"github.com/gin-gonic/gin"
)

type startSessionRequest struct {
	Referrer string `json:"referrer"`
}

type endSessionRequest struct {
	SessionID string `json:"sessionId"`
}

type pageviewRequest struct {
	SessionID string `json:"sessionId"`
	Path      string `json:"path"`
}

type eventRequest struct {
	SessionID  *string `json:"sessionId"`
	EventType  string  `json:"eventType"`
	PropertyID *uint   `json:"propertyId"`
}

// respondValidation 按错误分类约定返回被违反的字段列表。
func respondValidation(c *gin.Context, fields ...string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":  "validation failed",
		"fields": fields,
	})
}

// StartTrackingSession 创建或复用匿名访问会话。
// 命中爬虫时静默返回空会话，不落任何行，也绝不报错——
// 爬虫发的是真实请求，报错只会引来重试。
func (a *API) StartTrackingSession(c *gin.Context) {
	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		respondValidation(c, "referrer")
		return
	}

	result, err := a.tracking.StartSession(clientIP(c), c.Request.UserAgent(), req.Referrer, time.Now())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "会话创建失败")
		return
	}

	if result.Bot {
		c.JSON(http.StatusOK, gin.H{"sessionId": nil, "reused": false, "isBot": true})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessionId": result.SessionID, "reused": result.Reused})
}

// EndTrackingSession 标记会话结束（标签页关闭信号）。
func (a *API) EndTrackingSession(c *gin.Context) {
	var req endSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.SessionID) == "" {
		respondValidation(c, "sessionId")
		return
	}

	err := a.tracking.EndSession(req.SessionID, clientIP(c), c.Request.UserAgent(), time.Now())
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "session not found"})
	case err != nil:
		respondError(c, http.StatusInternalServerError, "会话更新失败")
	default:
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// RecordPageview 记录一次页面访问。
// 会话已不存在时返回 404，客户端据此丢弃本地缓存的会话 ID 重新建会话。
func (a *API) RecordPageview(c *gin.Context) {
	var req pageviewRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		strings.TrimSpace(req.SessionID) == "" || strings.TrimSpace(req.Path) == "" {
		fields := make([]string, 0, 2)
		if strings.TrimSpace(req.SessionID) == "" {
			fields = append(fields, "sessionId")
		}
		if strings.TrimSpace(req.Path) == "" {
			fields = append(fields, "path")
		}
		respondValidation(c, fields...)
		return
	}

	err := a.tracking.RecordPageview(req.SessionID, req.Path, time.Now())
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "session not found"})
	case err != nil:
		respondError(c, http.StatusInternalServerError, "浏览记录失败")
	default:
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// RecordEvent 记录一次交互事件（联系渠道点击等）。
// 会话 ID 缺失或无效不视为错误，事件以空会话引用落库。
func (a *API) RecordEvent(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.EventType) == "" {
		respondValidation(c, "eventType")
		return
	}

	err := a.tracking.RecordEvent(req.SessionID, req.EventType, req.PropertyID, time.Now())
	switch {
	case errors.Is(err, service.ErrEventTypeInvalid):
		respondValidation(c, "eventType")
	case err != nil:
		respondError(c, http.StatusInternalServerError, "事件记录失败")
	default:
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

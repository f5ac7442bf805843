package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestContext(remoteAddr, forwardedFor string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)
	c.Request.RemoteAddr = remoteAddr
	if forwardedFor != "" {
		c.Request.Header.Set("X-Forwarded-For", forwardedFor)
	}
	return c
}

func TestClientIPPrefersForwardedFor(t *testing.T) {
	c := newTestContext("10.0.0.1:51234", "203.0.113.7, 10.0.0.1")
	if got := clientIP(c); got != "203.0.113.7" {
		t.Fatalf("expected first forwarded entry, got %q", got)
	}
}

func TestClientIPFallsBackToRemoteAddr(t *testing.T) {
	c := newTestContext("198.51.100.4:443", "")
	if got := clientIP(c); got != "198.51.100.4" {
		t.Fatalf("expected socket peer host, got %q", got)
	}

	c = newTestContext("198.51.100.4", "")
	if got := clientIP(c); got != "198.51.100.4" {
		t.Fatalf("expected raw remote addr when unparseable, got %q", got)
	}
}

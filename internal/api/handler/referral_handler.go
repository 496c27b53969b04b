package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/internal/service"
	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/pkg/response"
)

// ReferralHandler 推荐码 HTTP 处理器
type ReferralHandler struct {
	refSvc service.ReferralService
}

// NewReferralHandler 创建 ReferralHandler
func NewReferralHandler(refSvc service.ReferralService) *ReferralHandler {
	return &ReferralHandler{refSvc: refSvc}
}

// Stats 推荐码战绩查询（推荐人分享页用，无需登录）
// GET /api/referrals/stats?code=ZTF-S-XXXXXX
func (h *ReferralHandler) Stats(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		response.BadRequest(c, 10001, "code is required")
		return
	}

	result, err := h.refSvc.Stats(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, service.ErrReferralCodeNotFound) {
			response.NotFound(c, 14001, "referral code not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// [自证通过] internal/api/handler/referral_handler.go

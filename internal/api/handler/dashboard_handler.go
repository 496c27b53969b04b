package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/internal/dto"
	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/internal/service"
	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/pkg/response"
)

// DashboardHandler 学员面板 HTTP 处理器，全部路由都在 JWT 认证之后
type DashboardHandler struct {
	dashSvc service.DashboardService
}

// NewDashboardHandler 创建 DashboardHandler
func NewDashboardHandler(dashSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashSvc: dashSvc}
}

// Dashboard 学员面板聚合视图
// GET /api/user/dashboard
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	email, ok := MustGetEmail(c)
	if !ok {
		return
	}

	result, err := h.dashSvc.Dashboard(c.Request.Context(), email, time.Now())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, result)
}

// ListProblems 本赛道的赛题列表
// GET /api/user/problems
func (h *DashboardHandler) ListProblems(c *gin.Context) {
	email, ok := MustGetEmail(c)
	if !ok {
		return
	}

	result, err := h.dashSvc.ListProblems(c.Request.Context(), email)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, result)
}

// SelectProblem 选题（一次性，不可改选）
// POST /api/user/problem-selection
func (h *DashboardHandler) SelectProblem(c *gin.Context) {
	email, ok := MustGetEmail(c)
	if !ok {
		return
	}

	var req dto.ProblemSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request parameters")
		return
	}

	result, err := h.dashSvc.SelectProblem(c.Request.Context(), email, &req, time.Now())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Created(c, result)
}

// SubmitAssignment 提交作品（一次性，不可重交）
// POST /api/user/assignment-submit
func (h *DashboardHandler) SubmitAssignment(c *gin.Context) {
	email, ok := MustGetEmail(c)
	if !ok {
		return
	}

	var req dto.SubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request parameters")
		return
	}

	result, err := h.dashSvc.SubmitAssignment(c.Request.Context(), email, &req, time.Now())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Created(c, result)
}

// writeError 学员面板统一错误映射
func (h *DashboardHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoApplication):
		response.NotFound(c, 15001, "no application found for this account")
	case errors.Is(err, service.ErrNotPaid):
		response.Forbidden(c, 15002, "complete your payment to access this section")
	case errors.Is(err, service.ErrPhaseLocked):
		response.Forbidden(c, 15003, "this action is not available in the current phase")
	case errors.Is(err, service.ErrProblemNotFound):
		response.NotFound(c, 15004, "problem statement not found")
	case errors.Is(err, service.ErrSelectionExists):
		response.Conflict(c, 15005, "problem selection is final and cannot be changed")
	case errors.Is(err, service.ErrSelectionRequired):
		response.Conflict(c, 15006, "select a problem statement before submitting")
	case errors.Is(err, service.ErrSubmissionExists):
		response.Conflict(c, 15007, "submission is final and cannot be changed")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/dashboard_handler.go

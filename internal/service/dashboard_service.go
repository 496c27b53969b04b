package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/config"
	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/internal/dto"
	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/internal/lifecycle"
	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/internal/model"
	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/internal/repository"
)

// ── 学员面板模块业务错误 ──

var (
	ErrNoApplication     = errors.New("该账号没有报名记录")
	ErrNotPaid           = errors.New("需完成支付后才能访问")
	ErrPhaseLocked       = errors.New("当前阶段不开放该操作")
	ErrProblemNotFound   = errors.New("赛题不存在")
	ErrSelectionExists   = errors.New("已有选题记录，不可更改")
	ErrSelectionRequired = errors.New("需先完成选题")
	ErrSubmissionExists  = errors.New("已有提交记录，不可更改")
)

// DashboardService 学员面板业务接口
// 每次请求都按墙钟重新推导阶段并重读支付状态，不缓存任何跨请求判断
type DashboardService interface {
	Dashboard(ctx context.Context, email string, now time.Time) (*dto.DashboardResponse, error)
	ListProblems(ctx context.Context, email string) ([]dto.ProblemStatementResponse, error)
	SelectProblem(ctx context.Context, email string, req *dto.ProblemSelectionRequest, now time.Time) (*dto.SelectionResponse, error)
	SubmitAssignment(ctx context.Context, email string, req *dto.SubmissionRequest, now time.Time) (*dto.SubmissionResponse, error)
}

type dashboardService struct {
	repo       *repository.Repository
	boundaries lifecycle.Boundaries
	logger     *zap.Logger
}

// NewDashboardService 创建 DashboardService 实例
func NewDashboardService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) DashboardService {
	return &dashboardService{
		repo: repo,
		boundaries: lifecycle.Boundaries{
			AssignmentStart: cfg.Program.AssignmentStart,
			EvaluationStart: cfg.Program.EvaluationStart,
			ResultsStart:    cfg.Program.ResultsStart,
		},
		logger: logger,
	}
}

// ────────────────────── Dashboard ──────────────────────

func (s *dashboardService) Dashboard(ctx context.Context, email string, now time.Time) (*dto.DashboardResponse, error) {
	applicant, err := s.payingApplicant(ctx, email, false)
	if err != nil {
		return nil, err
	}

	phase := lifecycle.Current(s.boundaries, now)
	paid := applicant.PaymentStatus == model.PaymentStatusPaid

	resp := &dto.DashboardResponse{
		Profile: dto.DashboardProfile{
			ApplicantID: applicant.ApplicantID,
			Name:        applicant.Name,
			Email:       applicant.Email,
			TeamSize:    applicant.TeamSize,
			Institute:   applicant.Institute,
		},
		Payment: dto.DashboardPayment{
			PaymentStatus: applicant.PaymentStatus,
			FinalAmount:   applicant.FinalAmount,
		},
		ProgramPhase: string(phase),
		Timeline:     toMilestoneInfos(lifecycle.Timeline(s.boundaries, now)),
		Unlocked:     []string{"profile", "payment"},
	}
	if applicant.Specialization != nil {
		resp.Profile.Specialization = applicant.Specialization.Name
	}
	if applicant.RazorpayOrderID != nil {
		resp.Payment.OrderID = *applicant.RazorpayOrderID
	}

	if !paid {
		return resp, nil
	}

	// 已支付：推荐码区块
	resp.Unlocked = append(resp.Unlocked, "referral")
	if applicant.ReferralCode != nil {
		code, err := s.repo.Referral.GetCodeByCode(ctx, *applicant.ReferralCode)
		if err == nil {
			confirmed, _ := s.repo.Referral.CountByReferrer(ctx, code.ApplicantID, model.ReferralStatusConfirmed)
			balance, _ := s.repo.Referral.WalletBalance(ctx, code.UserID)
			resp.Referral = &dto.ReferralPanel{
				Code:          code.Code,
				Confirmed:     confirmed,
				WalletBalance: balance,
			}
		}
	}

	// 阶段解锁的区块按当前阶段逐级开放
	if phase.Index() >= lifecycle.PhaseProblemSelection.Index() {
		resp.Unlocked = append(resp.Unlocked, "problem_selection")
		if sel, err := s.repo.Program.GetSelectionByApplicant(ctx, applicant.ApplicantID); err == nil {
			resp.Selection = toSelectionResponse(sel)
		}
	}
	if phase.Index() >= lifecycle.PhaseAssignment.Index() {
		resp.Unlocked = append(resp.Unlocked, "assignment")
		if sub, err := s.repo.Program.GetSubmissionByApplicant(ctx, applicant.ApplicantID); err == nil {
			resp.Submission = toSubmissionResponse(sub)
		}
	}
	if phase.Index() >= lifecycle.PhaseResults.Index() {
		resp.Unlocked = append(resp.Unlocked, "results")
		if out, err := s.repo.Program.GetOutcomeByApplicant(ctx, applicant.ApplicantID); err == nil {
			eval := &dto.EvaluationResponse{Score: out.Score, Verdict: out.Verdict}
			if out.Remarks != nil {
				eval.Remarks = *out.Remarks
			}
			resp.Evaluation = eval
		}
		if cert, err := s.repo.Program.GetCertificateByApplicant(ctx, applicant.ApplicantID); err == nil {
			c := &dto.CertificateResponse{SerialNo: cert.SerialNo, DownloadURL: cert.DownloadURL}
			if cert.IssuedAt != nil {
				c.IssuedAt = cert.IssuedAt.Format(time.RFC3339)
			}
			resp.Certificate = c
		}
	}

	return resp, nil
}

// ────────────────────── ListProblems ──────────────────────

func (s *dashboardService) ListProblems(ctx context.Context, email string) ([]dto.ProblemStatementResponse, error) {
	applicant, err := s.payingApplicant(ctx, email, true)
	if err != nil {
		return nil, err
	}

	problems, err := s.repo.Program.ListProblemStatements(ctx, applicant.SpecializationID)
	if err != nil {
		s.logger.Error("查询赛题失败", zap.String("specialization_id", applicant.SpecializationID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.ProblemStatementResponse, 0, len(problems))
	for _, p := range problems {
		result = append(result, dto.ProblemStatementResponse{
			ProblemID: p.ProblemID,
			Title:     p.Title,
			Summary:   p.Summary,
		})
	}
	return result, nil
}

// ────────────────────── SelectProblem ──────────────────────

func (s *dashboardService) SelectProblem(ctx context.Context, email string, req *dto.ProblemSelectionRequest, now time.Time) (*dto.SelectionResponse, error) {
	applicant, err := s.payingApplicant(ctx, email, true)
	if err != nil {
		return nil, err
	}

	if lifecycle.Current(s.boundaries, now) != lifecycle.PhaseProblemSelection {
		return nil, ErrPhaseLocked
	}

	// 赛题必须属于本人赛道
	problem, err := s.repo.Program.GetProblemByID(ctx, req.ProblemID)
	if err != nil || !problem.IsActive || problem.SpecializationID != applicant.SpecializationID {
		return nil, ErrProblemNotFound
	}

	// 先查后插只是礼貌性提前拒绝，唯一索引才是并发下的兜底
	if _, err := s.repo.Program.GetSelectionByApplicant(ctx, applicant.ApplicantID); err == nil {
		return nil, ErrSelectionExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	sel := &model.ProblemSelection{
		ApplicantID: applicant.ApplicantID,
		ProblemID:   problem.ProblemID,
	}
	if err := s.repo.Program.CreateSelection(ctx, sel); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSelectionExists
		}
		s.logger.Error("创建选题记录失败", zap.String("applicant_id", applicant.ApplicantID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("选题成功",
		zap.String("applicant_id", applicant.ApplicantID),
		zap.String("problem_id", problem.ProblemID))

	sel.Problem = problem
	return toSelectionResponse(sel), nil
}

// ────────────────────── SubmitAssignment ──────────────────────

func (s *dashboardService) SubmitAssignment(ctx context.Context, email string, req *dto.SubmissionRequest, now time.Time) (*dto.SubmissionResponse, error) {
	applicant, err := s.payingApplicant(ctx, email, true)
	if err != nil {
		return nil, err
	}

	if lifecycle.Current(s.boundaries, now) != lifecycle.PhaseAssignment {
		return nil, ErrPhaseLocked
	}

	// 未选题不能提交
	if _, err := s.repo.Program.GetSelectionByApplicant(ctx, applicant.ApplicantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSelectionRequired
		}
		return nil, err
	}

	if _, err := s.repo.Program.GetSubmissionByApplicant(ctx, applicant.ApplicantID); err == nil {
		return nil, ErrSubmissionExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	sub := &model.Submission{
		ApplicantID: applicant.ApplicantID,
		RepoURL:     req.RepoURL,
		DemoURL:     req.DemoURL,
		Notes:       req.Notes,
	}
	if err := s.repo.Program.CreateSubmission(ctx, sub); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSubmissionExists
		}
		s.logger.Error("创建提交记录失败", zap.String("applicant_id", applicant.ApplicantID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("作品提交成功",
		zap.String("applicant_id", applicant.ApplicantID),
		zap.String("submission_id", sub.SubmissionID))

	return toSubmissionResponse(sub), nil
}

// ── 内部辅助方法 ──

// payingApplicant 按邮箱取最新申请；requirePaid 为 true 时未支付直接拒绝
func (s *dashboardService) payingApplicant(ctx context.Context, email string, requirePaid bool) (*model.Applicant, error) {
	applicant, err := s.repo.Applicant.GetLatestByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoApplication
		}
		s.logger.Error("查询报名记录失败", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	if requirePaid && applicant.PaymentStatus != model.PaymentStatusPaid {
		return nil, ErrNotPaid
	}
	return applicant, nil
}

func toMilestoneInfos(timeline []lifecycle.Milestone) []dto.MilestoneInfo {
	labels := map[lifecycle.Phase]string{
		lifecycle.PhaseProblemSelection: "Problem Selection",
		lifecycle.PhaseAssignment:       "Assignment",
		lifecycle.PhaseEvaluation:       "Evaluation",
		lifecycle.PhaseResults:          "Results",
	}

	result := make([]dto.MilestoneInfo, 0, len(timeline))
	for _, m := range timeline {
		info := dto.MilestoneInfo{
			Phase: string(m.Phase),
			Label: labels[m.Phase],
			State: string(m.State),
		}
		if m.StartAt != nil {
			info.StartsAt = m.StartAt.Format(time.RFC3339)
		}
		result = append(result, info)
	}
	return result
}

func toSelectionResponse(sel *model.ProblemSelection) *dto.SelectionResponse {
	resp := &dto.SelectionResponse{
		ProblemID:  sel.ProblemID,
		SelectedAt: sel.CreatedAt.Format(time.RFC3339),
	}
	if sel.Problem != nil {
		resp.Title = sel.Problem.Title
	}
	return resp
}

func toSubmissionResponse(sub *model.Submission) *dto.SubmissionResponse {
	return &dto.SubmissionResponse{
		SubmissionID: sub.SubmissionID,
		RepoURL:      sub.RepoURL,
		DemoURL:      sub.DemoURL,
		SubmittedAt:  sub.CreatedAt.Format(time.RFC3339),
	}
}

// [自证通过] internal/service/dashboard_service.go

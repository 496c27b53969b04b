package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/internal/dto"
	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/internal/model"
	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/internal/repository"
)

// ── 推荐模块业务错误 ──

var (
	ErrCodeGenerationExhausted = errors.New("推荐码生成重试次数耗尽")
	ErrReferralCodeNotFound    = errors.New("推荐码不存在")
)

// 推荐码字符表：去掉易混淆的 0/O/1/I
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const (
	studentCodePrefix   = "ZTF-S-"
	communityCodePrefix = "CR-P-"
	codeSuffixLen       = 6
	codeGenMaxAttempts  = 8
)

// CodeOwner 推荐码归属。学员码与社区码二选一
type CodeOwner struct {
	Kind      string // "student" | "community"
	Student   *model.ReferralCode
	Community *model.CommunityReferrer
}

// ReferralService 推荐码业务接口
// 自荐判定集中在这里：按邮箱（大小写不敏感）或 user_id 任一命中即拒绝，
// 报名与下单两条路径都走同一个检查
type ReferralService interface {
	GenerateStudentCode(ctx context.Context, applicant *model.Applicant) (*model.ReferralCode, error)
	GenerateCommunityCode(ctx context.Context) (string, error)
	Validate(ctx context.Context, code, submitterEmail string) *CodeOwner
	ValidateForUser(ctx context.Context, code, submitterEmail, submitterUserID string) *CodeOwner
	ConfirmForApplicant(ctx context.Context, applicant *model.Applicant) error
	Stats(ctx context.Context, code string) (*dto.ReferralStatsResponse, error)
}

type referralService struct {
	repo     *repository.Repository
	notifier NotificationService
	logger   *zap.Logger
}

// NewReferralService 创建 ReferralService 实例
func NewReferralService(repo *repository.Repository, notifier NotificationService, logger *zap.Logger) ReferralService {
	return &referralService{repo: repo, notifier: notifier, logger: logger}
}

// ────────────────────── 生成 ──────────────────────

func (s *referralService) GenerateStudentCode(ctx context.Context, applicant *model.Applicant) (*model.ReferralCode, error) {
	// 已有码则直接复用（支付确认路径可能重入）
	existing, err := s.repo.Referral.GetCodeByApplicant(ctx, applicant.ApplicantID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	for attempt := 0; attempt < codeGenMaxAttempts; attempt++ {
		suffix, err := randomCodeSuffix(codeSuffixLen)
		if err != nil {
			return nil, err
		}
		candidate := studentCodePrefix + suffix

		// 仅在学员命名空间内查重，CR- 码互不影响
		if _, err := s.repo.Referral.GetCodeByCode(ctx, candidate); err == nil {
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		code := &model.ReferralCode{
			Code:        candidate,
			ApplicantID: applicant.ApplicantID,
			UserID:      applicant.UserID,
			OwnerEmail:  applicant.Email,
			IsActive:    true,
		}
		if err := s.repo.Referral.CreateCode(ctx, code); err != nil {
			// 并发撞码时换一个后缀重试
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue
			}
			return nil, err
		}
		return code, nil
	}

	s.logger.Error("学员推荐码生成耗尽重试", zap.String("applicant_id", applicant.ApplicantID))
	return nil, ErrCodeGenerationExhausted
}

func (s *referralService) GenerateCommunityCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < codeGenMaxAttempts; attempt++ {
		suffix, err := randomCodeSuffix(codeSuffixLen)
		if err != nil {
			return "", err
		}
		candidate := communityCodePrefix + suffix

		if _, err := s.repo.Community.GetReferrerByCode(ctx, candidate); err == nil {
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", err
		}
		return candidate, nil
	}

	s.logger.Error("社区推荐码生成耗尽重试")
	return "", ErrCodeGenerationExhausted
}

// randomCodeSuffix 生成指定长度的推荐码后缀
func randomCodeSuffix(length int) (string, error) {
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			return "", fmt.Errorf("生成随机后缀失败: %w", err)
		}
		result[i] = codeAlphabet[n.Int64()]
	}
	return string(result), nil
}

// ────────────────────── 校验 ──────────────────────

func (s *referralService) Validate(ctx context.Context, code, submitterEmail string) *CodeOwner {
	return s.ValidateForUser(ctx, code, submitterEmail, "")
}

// ValidateForUser 无效码一律返回 nil，不报错：
// 报名与下单路径对无效码的处理都是静默降级为无折扣
func (s *referralService) ValidateForUser(ctx context.Context, code, submitterEmail, submitterUserID string) *CodeOwner {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil
	}

	switch {
	case strings.HasPrefix(code, studentCodePrefix):
		owner, err := s.repo.Referral.GetCodeByCode(ctx, code)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				s.logger.Error("查询学员推荐码失败", zap.String("code", code), zap.Error(err))
			}
			return nil
		}
		if !owner.IsActive {
			return nil
		}
		if strings.EqualFold(owner.OwnerEmail, submitterEmail) {
			return nil
		}
		if submitterUserID != "" && owner.UserID == submitterUserID {
			return nil
		}
		return &CodeOwner{Kind: "student", Student: owner}

	case strings.HasPrefix(code, communityCodePrefix):
		owner, err := s.repo.Community.GetReferrerByCode(ctx, code)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				s.logger.Error("查询社区推荐码失败", zap.String("code", code), zap.Error(err))
			}
			return nil
		}
		if !owner.IsActive {
			return nil
		}
		if strings.EqualFold(owner.Email, submitterEmail) {
			return nil
		}
		return &CodeOwner{Kind: "community", Community: owner}

	default:
		return nil
	}
}

// ────────────────────── 确认入账 ──────────────────────

// ConfirmForApplicant 该申请人名下的 pending 推荐关系恰好确认一次。
// 条件更新只会有一个赢家，钱包入账与奖励邮件只在赢家路径执行；
// 重复回调、验证与 webhook 双路径到达时都安全
func (s *referralService) ConfirmForApplicant(ctx context.Context, applicant *model.Applicant) error {
	if err := s.confirmStudentLink(ctx, applicant); err != nil {
		return err
	}
	return s.confirmCommunityLink(ctx, applicant)
}

func (s *referralService) confirmStudentLink(ctx context.Context, applicant *model.Applicant) error {
	referral, err := s.repo.Referral.GetByReferredApplicant(ctx, applicant.ApplicantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // 报名时未填学员推荐码
		}
		return err
	}

	// 确认前复查自荐：报名后换绑邮箱等情况会漏过入口校验
	ownerAtConfirm, err := s.repo.Referral.GetCodeByCode(ctx, referral.Code)
	if err == nil &&
		(strings.EqualFold(ownerAtConfirm.OwnerEmail, applicant.Email) || ownerAtConfirm.UserID == applicant.UserID) {
		if err := s.repo.Referral.VoidSelfReferral(ctx, referral.ReferralID); err != nil {
			return err
		}
		s.logger.Warn("确认时命中自荐，关系作废",
			zap.String("referral_id", referral.ReferralID),
			zap.String("code", referral.Code))
		return nil
	}

	rows, err := s.repo.Referral.ConfirmByReferredApplicant(ctx, applicant.ApplicantID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return nil // 已被另一条路径确认过
	}

	cfg, err := s.repo.Pricing.GetConfig(ctx)
	if err != nil {
		s.logger.Error("读取计价参数失败", zap.Error(err))
		return err
	}

	ownerCode, err := s.repo.Referral.GetCodeByApplicant(ctx, referral.ReferrerApplicantID)
	if err != nil {
		s.logger.Error("查询推荐人码失败", zap.String("referrer_applicant_id", referral.ReferrerApplicantID), zap.Error(err))
		return err
	}

	entry := &model.WalletLedgerEntry{
		UserID:      ownerCode.UserID,
		Amount:      cfg.ReferralReward,
		Reason:      fmt.Sprintf("推荐奖励: %s", referral.Code),
		ReferenceID: &referral.ReferralID,
	}
	if err := s.repo.Referral.AppendWalletCredit(ctx, entry); err != nil {
		s.logger.Error("推荐奖励入账失败", zap.String("referral_id", referral.ReferralID), zap.Error(err))
		return err
	}

	s.logger.Info("学员推荐确认入账",
		zap.String("referral_id", referral.ReferralID),
		zap.String("code", referral.Code),
		zap.Int("reward", cfg.ReferralReward))

	s.notifier.QueueReferralReward(ctx, ownerCode.OwnerEmail, referral.Code, cfg.ReferralReward)
	return nil
}

func (s *referralService) confirmCommunityLink(ctx context.Context, applicant *model.Applicant) error {
	link, err := s.repo.Community.GetLinkByReferredApplicant(ctx, applicant.ApplicantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	rows, err := s.repo.Community.ConfirmLinkByReferredApplicant(ctx, applicant.ApplicantID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return nil
	}

	cfg, err := s.repo.Pricing.GetConfig(ctx)
	if err != nil {
		return err
	}

	entry := &model.CommunityWalletLedgerEntry{
		ReferrerID:  link.ReferrerID,
		Amount:      cfg.ReferralReward,
		Reason:      fmt.Sprintf("推荐奖励: %s", link.Code),
		ReferenceID: &link.LinkID,
	}
	if err := s.repo.Community.AppendWalletCredit(ctx, entry); err != nil {
		s.logger.Error("社区推荐奖励入账失败", zap.String("link_id", link.LinkID), zap.Error(err))
		return err
	}

	s.logger.Info("社区推荐确认入账",
		zap.String("link_id", link.LinkID),
		zap.String("code", link.Code),
		zap.Int("reward", cfg.ReferralReward))

	referrer, err := s.repo.Community.GetReferrerByCode(ctx, link.Code)
	if err == nil {
		s.notifier.QueueReferralReward(ctx, referrer.Email, link.Code, cfg.ReferralReward)
	}
	return nil
}

// ────────────────────── 统计 ──────────────────────

func (s *referralService) Stats(ctx context.Context, code string) (*dto.ReferralStatsResponse, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	switch {
	case strings.HasPrefix(code, studentCodePrefix):
		owner, err := s.repo.Referral.GetCodeByCode(ctx, code)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrReferralCodeNotFound
			}
			return nil, err
		}

		pending, err := s.repo.Referral.CountByReferrer(ctx, owner.ApplicantID, model.ReferralStatusPending)
		if err != nil {
			return nil, err
		}
		confirmed, err := s.repo.Referral.CountByReferrer(ctx, owner.ApplicantID, model.ReferralStatusConfirmed)
		if err != nil {
			return nil, err
		}
		balance, err := s.repo.Referral.WalletBalance(ctx, owner.UserID)
		if err != nil {
			return nil, err
		}

		return &dto.ReferralStatsResponse{
			Code:          code,
			OwnerKind:     "student",
			Total:         pending + confirmed,
			Pending:       pending,
			Confirmed:     confirmed,
			WalletBalance: balance,
		}, nil

	case strings.HasPrefix(code, communityCodePrefix):
		owner, err := s.repo.Community.GetReferrerByCode(ctx, code)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrReferralCodeNotFound
			}
			return nil, err
		}

		pending, err := s.repo.Community.CountLinksByReferrer(ctx, owner.ReferrerID, model.ReferralStatusPending)
		if err != nil {
			return nil, err
		}
		confirmed, err := s.repo.Community.CountLinksByReferrer(ctx, owner.ReferrerID, model.ReferralStatusConfirmed)
		if err != nil {
			return nil, err
		}
		balance, err := s.repo.Community.WalletBalance(ctx, owner.ReferrerID)
		if err != nil {
			return nil, err
		}

		return &dto.ReferralStatsResponse{
			Code:          code,
			OwnerKind:     "community",
			Total:         pending + confirmed,
			Pending:       pending,
			Confirmed:     confirmed,
			WalletBalance: balance,
		}, nil

	default:
		return nil, ErrReferralCodeNotFound
	}
}

// [自证通过] internal/service/referral_service.go

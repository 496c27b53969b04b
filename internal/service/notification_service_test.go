package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/internal/model"
)

// ── 测试辅助 ──

func setupTestNotificationService(mailer *mockMailer) (NotificationService, *testRepos) {
	repo, mocks := newTestRepos()
	svc := NewNotificationService(testConfig(), repo, mailer, zap.NewNop())
	return svc, mocks
}

func countNotifByStatus(mocks *testRepos, status string) int {
	n := 0
	for _, notif := range mocks.notification.notifications {
		if notif.Status == status {
			n++
		}
	}
	return n
}

// ── 入队即发测试 ──

func TestNotificationService_Queue_SendsImmediately(t *testing.T) {
	mailer := &mockMailer{}
	svc, mocks := setupTestNotificationService(mailer)

	svc.QueuePaymentConfirmed(context.Background(), &model.Applicant{
		ApplicantID: "app-1", Name: "Asha", Email: "asha@example.com", FinalAmount: 943,
	})

	if len(mailer.sent) != 1 {
		t.Fatalf("期望即时发送1封，实际=%d", len(mailer.sent))
	}
	if mailer.sent[0].to != "asha@example.com" {
		t.Errorf("收件人有误: %s", mailer.sent[0].to)
	}
	if countNotifByStatus(mocks, model.NotificationStatusSent) != 1 {
		t.Error("发件箱应有1条 sent 记录")
	}
}

func TestNotificationService_Queue_FailureStaysInOutbox(t *testing.T) {
	mailer := &mockMailer{failAll: true}
	svc, mocks := setupTestNotificationService(mailer)

	// 热路径不能因邮件失败而报错（方法无返回值，panic 即失败）
	svc.QueueReferralReward(context.Background(), "owner@example.com", "ZTF-S-ABC234", 100)

	if countNotifByStatus(mocks, model.NotificationStatusFailed) != 1 {
		t.Fatal("失败的通知应留在发件箱中")
	}
	for _, n := range mocks.notification.notifications {
		if n.Attempts != 1 || n.LastError == nil {
			t.Errorf("失败记录应带尝试次数与错误: attempts=%d", n.Attempts)
		}
	}
}

func TestNotificationService_Queue_DisabledByFlag(t *testing.T) {
	mailer := &mockMailer{}
	repo, mocks := newTestRepos()
	cfg := testConfig()
	cfg.Feature.NotificationsEnabled = false
	svc := NewNotificationService(cfg, repo, mailer, zap.NewNop())

	svc.QueuePaymentConfirmed(context.Background(), &model.Applicant{
		Name: "Asha", Email: "asha@example.com", FinalAmount: 943,
	})

	if len(mailer.sent) != 0 || len(mocks.notification.notifications) != 0 {
		t.Error("开关关闭时不应落库也不应发送")
	}
}

func TestNotificationService_QueuePaymentFailed_AlsoAlertsOps(t *testing.T) {
	mailer := &mockMailer{}
	svc, _ := setupTestNotificationService(mailer)

	svc.QueuePaymentFailed(context.Background(), &model.Applicant{
		ApplicantID: "app-1", Name: "Asha", Email: "asha@example.com",
	}, "card declined")

	if len(mailer.sent) != 2 {
		t.Fatalf("期望用户+运营共2封，实际=%d", len(mailer.sent))
	}
	var opsSeen bool
	for _, m := range mailer.sent {
		if m.to == "ops@example.com" {
			opsSeen = true
		}
	}
	if !opsSeen {
		t.Error("应有一封发往运营告警信箱")
	}
}

// ── 清扫测试 ──

func TestNotificationService_ProcessPending_RetriesBacklog(t *testing.T) {
	mailer := &mockMailer{failAll: true}
	svc, mocks := setupTestNotificationService(mailer)

	svc.QueueReferralReward(context.Background(), "a@example.com", "ZTF-S-AAA222", 100)
	svc.QueueReferralReward(context.Background(), "b@example.com", "ZTF-S-BBB333", 100)

	// 邮件服务恢复后清扫补发
	mailer.failAll = false
	result, err := svc.ProcessPending(context.Background())
	if err != nil {
		t.Fatalf("清扫应成功: %v", err)
	}
	if result.Processed != 2 || result.Sent != 2 || result.Failed != 0 {
		t.Errorf("期望processed=2 sent=2，实际=%+v", result)
	}
	if countNotifByStatus(mocks, model.NotificationStatusSent) != 2 {
		t.Error("补发后发件箱应全部为 sent")
	}

	// 再次清扫无事可做
	again, _ := svc.ProcessPending(context.Background())
	if again.Processed != 0 {
		t.Errorf("已发送的通知不应重复处理，实际processed=%d", again.Processed)
	}
}

func TestNotificationService_ProcessPending_RespectsAttemptBudget(t *testing.T) {
	mailer := &mockMailer{failAll: true}
	svc, mocks := setupTestNotificationService(mailer)

	svc.QueueReferralReward(context.Background(), "a@example.com", "ZTF-S-AAA222", 100)

	// 入队时已失败1次，清扫至预算上限后不再捞起
	for i := 0; i < 10; i++ {
		if _, err := svc.ProcessPending(context.Background()); err != nil {
			t.Fatalf("清扫应成功: %v", err)
		}
	}
	for _, n := range mocks.notification.notifications {
		if n.Attempts != notifMaxAttempts {
			t.Errorf("尝试次数应止步于%d，实际=%d", notifMaxAttempts, n.Attempts)
		}
	}
}

func TestNotificationService_ProcessPending_PaymentReminders(t *testing.T) {
	mailer := &mockMailer{}
	svc, mocks := setupTestNotificationService(mailer)

	stale := &model.Applicant{
		ApplicantID: "app-old", Name: "Asha", Email: "asha@example.com",
		FinalAmount: 943, PaymentStatus: model.PaymentStatusCreated,
	}
	stale.CreatedAt = time.Now().Add(-48 * time.Hour)
	mocks.applicant.applicants["app-old"] = stale

	fresh := &model.Applicant{
		ApplicantID: "app-new", Name: "Rohan", Email: "rohan@example.com",
		FinalAmount: 943, PaymentStatus: model.PaymentStatusCreated,
	}
	fresh.CreatedAt = time.Now().Add(-1 * time.Hour)
	mocks.applicant.applicants["app-new"] = fresh

	result, err := svc.ProcessPending(context.Background())
	if err != nil {
		t.Fatalf("清扫应成功: %v", err)
	}
	if result.Reminders != 1 {
		t.Errorf("只有超时24h的申请应收提醒，实际=%d", result.Reminders)
	}

	// 同一收件人不重复提醒
	again, _ := svc.ProcessPending(context.Background())
	if again.Reminders != 0 {
		t.Errorf("重复清扫不应再排提醒，实际=%d", again.Reminders)
	}

	var reminders int
	for _, m := range mailer.sent {
		if m.to == "asha@example.com" {
			reminders++
		}
	}
	if reminders != 1 {
		t.Errorf("期望恰好1封提醒邮件，实际=%d", reminders)
	}
}

// [自证通过] internal/service/notification_service_test.go

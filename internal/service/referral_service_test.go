package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/internal/model"
)

// ── 测试辅助 ──

func setupTestReferralService() (ReferralService, *testRepos, *mockMailer) {
	repo, mocks := newTestRepos()
	mailer := &mockMailer{}
	logger := zap.NewNop()
	notifier := NewNotificationService(testConfig(), repo, mailer, logger)
	svc := NewReferralService(repo, notifier, logger)
	return svc, mocks, mailer
}

func seedStudentCode(mocks *testRepos, code, applicantID, ownerEmail string) *model.ReferralCode {
	c := &model.ReferralCode{
		Code:        code,
		ApplicantID: applicantID,
		UserID:      "user-" + applicantID,
		OwnerEmail:  ownerEmail,
		IsActive:    true,
	}
	mocks.referral.codes[code] = c
	return c
}

// ── 生成测试 ──

func TestReferralService_GenerateStudentCode_Format(t *testing.T) {
	svc, _, _ := setupTestReferralService()

	code, err := svc.GenerateStudentCode(context.Background(), &model.Applicant{
		ApplicantID: "app-1", UserID: "user-1", Email: "a@example.com",
	})
	if err != nil {
		t.Fatalf("生成应成功: %v", err)
	}
	if !strings.HasPrefix(code.Code, "ZTF-S-") {
		t.Errorf("学员码应以 ZTF-S- 开头，实际=%s", code.Code)
	}
	suffix := strings.TrimPrefix(code.Code, "ZTF-S-")
	if len(suffix) != 6 {
		t.Errorf("后缀应为6位，实际=%q", suffix)
	}
	for _, ch := range suffix {
		if !strings.ContainsRune(codeAlphabet, ch) {
			t.Errorf("后缀含字母表之外的字符: %c", ch)
		}
	}
	if !code.IsActive {
		t.Error("新码应为激活状态")
	}
}

func TestReferralService_GenerateStudentCode_Idempotent(t *testing.T) {
	svc, _, _ := setupTestReferralService()
	applicant := &model.Applicant{ApplicantID: "app-1", UserID: "user-1", Email: "a@example.com"}

	first, err := svc.GenerateStudentCode(context.Background(), applicant)
	if err != nil {
		t.Fatalf("生成应成功: %v", err)
	}
	second, err := svc.GenerateStudentCode(context.Background(), applicant)
	if err != nil {
		t.Fatalf("重入应成功: %v", err)
	}
	if first.Code != second.Code {
		t.Errorf("重入应复用已有码，实际=%s vs %s", first.Code, second.Code)
	}
}

func TestReferralService_GenerateCommunityCode_Format(t *testing.T) {
	svc, _, _ := setupTestReferralService()

	code, err := svc.GenerateCommunityCode(context.Background())
	if err != nil {
		t.Fatalf("生成应成功: %v", err)
	}
	if !strings.HasPrefix(code, "CR-P-") || len(code) != len("CR-P-")+6 {
		t.Errorf("社区码格式不符，实际=%s", code)
	}
}

// ── 校验测试 ──

func TestReferralService_Validate_StudentCode(t *testing.T) {
	svc, mocks, _ := setupTestReferralService()
	seedStudentCode(mocks, "ZTF-S-ABC234", "app-owner", "owner@example.com")

	owner := svc.Validate(context.Background(), "  ztf-s-abc234 ", "someone@example.com")
	if owner == nil {
		t.Fatal("合法码应通过校验")
	}
	if owner.Kind != "student" || owner.Student == nil {
		t.Errorf("期望student归属，实际Kind=%s", owner.Kind)
	}
}

func TestReferralService_Validate_CommunityCode(t *testing.T) {
	svc, mocks, _ := setupTestReferralService()
	mocks.community.referrers["cr-1"] = &model.CommunityReferrer{
		ReferrerID: "cr-1", Email: "club@example.org", Code: "CR-P-XYZ789", IsActive: true,
	}

	owner := svc.Validate(context.Background(), "CR-P-XYZ789", "someone@example.com")
	if owner == nil {
		t.Fatal("合法社区码应通过校验")
	}
	if owner.Kind != "community" || owner.Community == nil {
		t.Errorf("期望community归属，实际Kind=%s", owner.Kind)
	}
}

func TestReferralService_Validate_SelfReferralRejected(t *testing.T) {
	svc, mocks, _ := setupTestReferralService()
	seedStudentCode(mocks, "ZTF-S-MINE22", "app-owner", "Owner@Example.com")
	mocks.community.referrers["cr-1"] = &model.CommunityReferrer{
		ReferrerID: "cr-1", Email: "Club@Example.org", Code: "CR-P-MINE33", IsActive: true,
	}

	// 两个命名空间的自荐都按邮箱大小写不敏感拒绝
	if svc.Validate(context.Background(), "ZTF-S-MINE22", "owner@example.COM") != nil {
		t.Error("学员码自荐应被拒绝")
	}
	if svc.Validate(context.Background(), "CR-P-MINE33", "club@example.org") != nil {
		t.Error("社区码自荐应被拒绝")
	}
}

func TestReferralService_ValidateForUser_SameUserRejected(t *testing.T) {
	svc, mocks, _ := setupTestReferralService()
	seedStudentCode(mocks, "ZTF-S-MINE22", "app-owner", "old-mail@example.com")

	// 邮箱不同但 user_id 相同，仍判自荐
	owner := svc.ValidateForUser(context.Background(), "ZTF-S-MINE22", "new-mail@example.com", "user-app-owner")
	if owner != nil {
		t.Error("同一用户换邮箱仍应判自荐")
	}
}

func TestReferralService_Validate_InactiveOrUnknown(t *testing.T) {
	svc, mocks, _ := setupTestReferralService()
	c := seedStudentCode(mocks, "ZTF-S-DEAD22", "app-owner", "owner@example.com")
	c.IsActive = false

	if svc.Validate(context.Background(), "ZTF-S-DEAD22", "x@example.com") != nil {
		t.Error("停用码应校验失败")
	}
	if svc.Validate(context.Background(), "ZTF-S-NOPE99", "x@example.com") != nil {
		t.Error("不存在的码应校验失败")
	}
	if svc.Validate(context.Background(), "WHAT-IS-THIS", "x@example.com") != nil {
		t.Error("前缀不符的码应校验失败")
	}
}

// ── 确认入账测试 ──

func TestReferralService_ConfirmForApplicant_ExactlyOnce(t *testing.T) {
	svc, mocks, mailer := setupTestReferralService()
	seedStudentCode(mocks, "ZTF-S-ABC234", "app-owner", "owner@example.com")
	mocks.referral.referrals["ref-1"] = &model.Referral{
		ReferralID:          "ref-1",
		ReferrerApplicantID: "app-owner",
		ReferredApplicantID: "app-new",
		Code:                "ZTF-S-ABC234",
		Status:              model.ReferralStatusPending,
	}
	applicant := &model.Applicant{ApplicantID: "app-new", UserID: "user-new", Email: "new@example.com"}

	for i := 0; i < 3; i++ {
		if err := svc.ConfirmForApplicant(context.Background(), applicant); err != nil {
			t.Fatalf("第%d次确认应成功: %v", i+1, err)
		}
	}

	if mocks.referral.referrals["ref-1"].Status != model.ReferralStatusConfirmed {
		t.Errorf("期望Status=confirmed，实际=%s", mocks.referral.referrals["ref-1"].Status)
	}
	if len(mocks.referral.ledger) != 1 {
		t.Fatalf("期望恰好1条入账流水，实际=%d", len(mocks.referral.ledger))
	}
	entry := mocks.referral.ledger[0]
	if entry.Amount != 100 || entry.UserID != "user-app-owner" {
		t.Errorf("入账有误: amount=%d user=%s", entry.Amount, entry.UserID)
	}
	if entry.ReferenceID == nil || *entry.ReferenceID != "ref-1" {
		t.Error("流水应引用推荐关系ID")
	}
	if len(mailer.sent) != 1 {
		t.Errorf("期望恰好1封奖励邮件，实际=%d", len(mailer.sent))
	}
}

func TestReferralService_ConfirmForApplicant_SelfReferralVoided(t *testing.T) {
	svc, mocks, mailer := setupTestReferralService()
	// 入口校验之后邮箱被改到与码主一致
	seedStudentCode(mocks, "ZTF-S-ABC234", "app-owner", "sneaky@example.com")
	mocks.referral.referrals["ref-1"] = &model.Referral{
		ReferralID:          "ref-1",
		ReferrerApplicantID: "app-owner",
		ReferredApplicantID: "app-new",
		Code:                "ZTF-S-ABC234",
		Status:              model.ReferralStatusPending,
	}
	applicant := &model.Applicant{ApplicantID: "app-new", UserID: "user-new", Email: "SNEAKY@example.com"}

	if err := svc.ConfirmForApplicant(context.Background(), applicant); err != nil {
		t.Fatalf("自荐作废不应报错: %v", err)
	}
	if mocks.referral.referrals["ref-1"].Status != model.ReferralStatusVoidSelfRef {
		t.Errorf("期望Status=void_self_referral，实际=%s", mocks.referral.referrals["ref-1"].Status)
	}
	if len(mocks.referral.ledger) != 0 {
		t.Errorf("作废关系不应入账，流水=%d", len(mocks.referral.ledger))
	}
	if len(mailer.sent) != 0 {
		t.Errorf("作废关系不应发奖励邮件，已发=%d", len(mailer.sent))
	}
}

func TestReferralService_ConfirmForApplicant_NoLinkNoop(t *testing.T) {
	svc, mocks, _ := setupTestReferralService()

	err := svc.ConfirmForApplicant(context.Background(),
		&model.Applicant{ApplicantID: "app-solo", UserID: "user-solo", Email: "solo@example.com"})
	if err != nil {
		t.Fatalf("无推荐关系应静默返回: %v", err)
	}
	if len(mocks.referral.ledger) != 0 {
		t.Error("无推荐关系不应入账")
	}
}

func TestReferralService_ConfirmForApplicant_CommunityLink(t *testing.T) {
	svc, mocks, mailer := setupTestReferralService()
	mocks.community.referrers["cr-1"] = &model.CommunityReferrer{
		ReferrerID: "cr-1", Email: "club@example.org", Code: "CR-P-XYZ789", IsActive: true,
	}
	mocks.community.links["link-1"] = &model.CommunityReferralLink{
		LinkID:              "link-1",
		ReferrerID:          "cr-1",
		ReferredApplicantID: "app-new",
		Code:                "CR-P-XYZ789",
		Status:              model.ReferralStatusPending,
	}
	applicant := &model.Applicant{ApplicantID: "app-new", UserID: "user-new", Email: "new@example.com"}

	for i := 0; i < 2; i++ {
		if err := svc.ConfirmForApplicant(context.Background(), applicant); err != nil {
			t.Fatalf("确认应成功: %v", err)
		}
	}
	if len(mocks.community.ledger) != 1 {
		t.Fatalf("期望恰好1条社区入账流水，实际=%d", len(mocks.community.ledger))
	}
	if mocks.community.ledger[0].ReferrerID != "cr-1" || mocks.community.ledger[0].Amount != 100 {
		t.Errorf("社区入账有误: %+v", mocks.community.ledger[0])
	}
	if len(mailer.sent) != 1 {
		t.Errorf("期望恰好1封奖励邮件，实际=%d", len(mailer.sent))
	}
}

// ── 统计测试 ──

func TestReferralService_Stats_Student(t *testing.T) {
	svc, mocks, _ := setupTestReferralService()
	seedStudentCode(mocks, "ZTF-S-ABC234", "app-owner", "owner@example.com")
	mocks.referral.referrals["ref-1"] = &model.Referral{
		ReferralID: "ref-1", ReferrerApplicantID: "app-owner",
		ReferredApplicantID: "app-a", Code: "ZTF-S-ABC234", Status: model.ReferralStatusPending,
	}
	mocks.referral.referrals["ref-2"] = &model.Referral{
		ReferralID: "ref-2", ReferrerApplicantID: "app-owner",
		ReferredApplicantID: "app-b", Code: "ZTF-S-ABC234", Status: model.ReferralStatusConfirmed,
	}
	mocks.referral.ledger = append(mocks.referral.ledger, &model.WalletLedgerEntry{
		UserID: "user-app-owner", Amount: 100,
	})

	stats, err := svc.Stats(context.Background(), "ztf-s-abc234")
	if err != nil {
		t.Fatalf("Stats 应成功: %v", err)
	}
	if stats.OwnerKind != "student" {
		t.Errorf("期望OwnerKind=student，实际=%s", stats.OwnerKind)
	}
	if stats.Pending != 1 || stats.Confirmed != 1 || stats.Total != 2 {
		t.Errorf("计数有误: pending=%d confirmed=%d total=%d", stats.Pending, stats.Confirmed, stats.Total)
	}
	if stats.WalletBalance != 100 {
		t.Errorf("期望余额=100，实际=%d", stats.WalletBalance)
	}
}

func TestReferralService_Stats_NotFound(t *testing.T) {
	svc, _, _ := setupTestReferralService()

	_, err := svc.Stats(context.Background(), "ZTF-S-NOPE99")
	if !errors.Is(err, ErrReferralCodeNotFound) {
		t.Errorf("期望 ErrReferralCodeNotFound，实际: %v", err)
	}
}

// [自证通过] internal/service/referral_service_test.go

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/internal/model"
)

// ── 测试辅助 ──

func setupTestPricingService() (PricingService, *testRepos) {
	repo, mocks := newTestRepos()
	logger := zap.NewNop()
	notifier := NewNotificationService(testConfig(), repo, &mockMailer{}, logger)
	referral := NewReferralService(repo, notifier, logger)
	svc := NewPricingService(repo, referral, logger)
	return svc, mocks
}

// ── Quote 测试 ──

func TestPricingService_Quote_NoReferral(t *testing.T) {
	svc, mocks := setupTestPricingService()
	now := time.Now()
	seedPhase(mocks, now)

	// 799 → GST ceil(799*0.18)=144 → 943
	breakdown, owner, err := svc.Quote(context.Background(), now, 1, "", "solo@example.com", "")
	if err != nil {
		t.Fatalf("Quote 应成功: %v", err)
	}
	if owner != nil {
		t.Error("无推荐码不应返回归属")
	}
	if breakdown.BaseAmount != 799 {
		t.Errorf("期望BaseAmount=799，实际=%d", breakdown.BaseAmount)
	}
	if breakdown.GSTAmount != 144 {
		t.Errorf("期望GSTAmount=144，实际=%d", breakdown.GSTAmount)
	}
	if breakdown.FinalAmount != 943 {
		t.Errorf("期望FinalAmount=943，实际=%d", breakdown.FinalAmount)
	}
}

func TestPricingService_Quote_WithReferral(t *testing.T) {
	svc, mocks := setupTestPricingService()
	now := time.Now()
	seedPhase(mocks, now)
	mocks.referral.codes["ZTF-S-ABC234"] = &model.ReferralCode{
		Code:        "ZTF-S-ABC234",
		ApplicantID: "app-owner",
		UserID:      "user-owner",
		OwnerEmail:  "owner@example.com",
		IsActive:    true,
	}

	// (799-50)=749 → GST ceil(749*0.18)=ceil(134.82)=135 → 884
	breakdown, owner, err := svc.Quote(context.Background(), now, 1, "ZTF-S-ABC234", "newbie@example.com", "user-new")
	if err != nil {
		t.Fatalf("Quote 应成功: %v", err)
	}
	if owner == nil || owner.Kind != "student" {
		t.Fatal("有效学员码应返回 student 归属")
	}
	if breakdown.DiscountAmount != 50 {
		t.Errorf("期望DiscountAmount=50，实际=%d", breakdown.DiscountAmount)
	}
	if breakdown.GSTAmount != 135 {
		t.Errorf("期望GSTAmount=135，实际=%d", breakdown.GSTAmount)
	}
	if breakdown.FinalAmount != 884 {
		t.Errorf("期望FinalAmount=884，实际=%d", breakdown.FinalAmount)
	}
}

func TestPricingService_Quote_TeamSizes(t *testing.T) {
	svc, mocks := setupTestPricingService()
	now := time.Now()
	seedPhase(mocks, now)

	cases := []struct {
		teamSize  int
		wantBase  int
		wantFinal int
	}{
		{1, 799, 943},   // 799 + 144
		{2, 1399, 1651}, // 1399 + ceil(251.82)=252
		{3, 1999, 2359}, // 1999 + ceil(359.82)=360
	}
	for _, tc := range cases {
		breakdown, _, err := svc.Quote(context.Background(), now, tc.teamSize, "", "a@example.com", "")
		if err != nil {
			t.Fatalf("teamSize=%d Quote 应成功: %v", tc.teamSize, err)
		}
		if breakdown.BaseAmount != tc.wantBase {
			t.Errorf("teamSize=%d 期望BaseAmount=%d，实际=%d", tc.teamSize, tc.wantBase, breakdown.BaseAmount)
		}
		if breakdown.FinalAmount != tc.wantFinal {
			t.Errorf("teamSize=%d 期望FinalAmount=%d，实际=%d", tc.teamSize, tc.wantFinal, breakdown.FinalAmount)
		}
	}
}

func TestPricingService_Quote_SelfReferralNoDiscount(t *testing.T) {
	svc, mocks := setupTestPricingService()
	now := time.Now()
	seedPhase(mocks, now)
	mocks.referral.codes["ZTF-S-ABC234"] = &model.ReferralCode{
		Code:        "ZTF-S-ABC234",
		ApplicantID: "app-owner",
		UserID:      "user-owner",
		OwnerEmail:  "Owner@Example.com",
		IsActive:    true,
	}

	// 自荐（邮箱大小写不同）→ 无折扣，全价 943，不报错
	breakdown, owner, err := svc.Quote(context.Background(), now, 1, "ZTF-S-ABC234", "owner@example.COM", "")
	if err != nil {
		t.Fatalf("自己的码报名应成功: %v", err)
	}
	if owner != nil {
		t.Error("自荐不应返回归属")
	}
	if breakdown.DiscountAmount != 0 {
		t.Errorf("自荐不应有折扣，实际=%d", breakdown.DiscountAmount)
	}
	if breakdown.FinalAmount != 943 {
		t.Errorf("期望FinalAmount=943，实际=%d", breakdown.FinalAmount)
	}
}

func TestPricingService_Quote_InvalidCodeSilentlyIgnored(t *testing.T) {
	svc, mocks := setupTestPricingService()
	now := time.Now()
	seedPhase(mocks, now)

	breakdown, owner, err := svc.Quote(context.Background(), now, 1, "ZTF-S-NOPE99", "a@example.com", "")
	if err != nil {
		t.Fatalf("无效码应静默降级: %v", err)
	}
	if owner != nil || breakdown.DiscountAmount != 0 {
		t.Error("无效码不应产生折扣")
	}
}

func TestPricingService_Quote_NoActivePhase(t *testing.T) {
	svc, _ := setupTestPricingService()

	_, _, err := svc.Quote(context.Background(), time.Now(), 1, "", "a@example.com", "")
	if !errors.Is(err, ErrRegistrationClosed) {
		t.Errorf("期望 ErrRegistrationClosed，实际: %v", err)
	}
}

func TestPricingService_Quote_InvalidTeamSize(t *testing.T) {
	svc, mocks := setupTestPricingService()
	now := time.Now()
	seedPhase(mocks, now)

	_, _, err := svc.Quote(context.Background(), now, 7, "", "a@example.com", "")
	if !errors.Is(err, ErrInvalidTeamSize) {
		t.Errorf("期望 ErrInvalidTeamSize，实际: %v", err)
	}
}

func TestPricingService_Quote_DiscountNeverNegative(t *testing.T) {
	svc, mocks := setupTestPricingService()
	now := time.Now()
	seedPhase(mocks, now)
	mocks.pricing.config.ReferralDiscount = 5000 // 大于任何基础价
	mocks.referral.codes["ZTF-S-ABC234"] = &model.ReferralCode{
		Code: "ZTF-S-ABC234", ApplicantID: "app-x", UserID: "user-x",
		OwnerEmail: "x@example.com", IsActive: true,
	}

	breakdown, _, err := svc.Quote(context.Background(), now, 1, "ZTF-S-ABC234", "y@example.com", "")
	if err != nil {
		t.Fatalf("Quote 应成功: %v", err)
	}
	if breakdown.FinalAmount < 0 || breakdown.BaseAmount-breakdown.DiscountAmount < 0 {
		t.Errorf("折后价不应为负: %+v", breakdown)
	}
}

// ── CurrentPhase 测试 ──

func TestPricingService_CurrentPhase(t *testing.T) {
	svc, mocks := setupTestPricingService()
	now := time.Now()
	seedPhase(mocks, now)

	phase, amounts, err := svc.CurrentPhase(context.Background(), now)
	if err != nil {
		t.Fatalf("CurrentPhase 应成功: %v", err)
	}
	if phase.Name != "Early Bird" {
		t.Errorf("期望Name=Early Bird，实际=%s", phase.Name)
	}
	if len(amounts) != 3 {
		t.Errorf("期望3条价目，实际=%d", len(amounts))
	}

	// 窗口之外视为关闭
	_, _, err = svc.CurrentPhase(context.Background(), now.Add(72*time.Hour))
	if !errors.Is(err, ErrRegistrationClosed) {
		t.Errorf("期望 ErrRegistrationClosed，实际: %v", err)
	}
}

// [自证通过] internal/service/pricing_service_test.go

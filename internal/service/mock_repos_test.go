package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/config"
	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/internal/model"
	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmailOrPhone(_ context.Context, email, phone string) (*model.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) || (phone != "" && u.Phone == phone) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

// ── Mock SpecializationRepository ──

type mockSpecializationRepo struct {
	specs map[string]*model.Specialization
}

func newMockSpecializationRepo() *mockSpecializationRepo {
	return &mockSpecializationRepo{specs: make(map[string]*model.Specialization)}
}

func (m *mockSpecializationRepo) GetByID(_ context.Context, id string) (*model.Specialization, error) {
	if s, ok := m.specs[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSpecializationRepo) GetBySlug(_ context.Context, slug string) (*model.Specialization, error) {
	for _, s := range m.specs {
		if s.Slug == slug {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSpecializationRepo) ListActive(_ context.Context) ([]model.Specialization, error) {
	var result []model.Specialization
	for _, s := range m.specs {
		if s.IsActive {
			result = append(result, *s)
		}
	}
	return result, nil
}

// ── Mock ApplicantRepository ──

type mockApplicantRepo struct {
	applicants map[string]*model.Applicant
	seq        int
}

func newMockApplicantRepo() *mockApplicantRepo {
	return &mockApplicantRepo{applicants: make(map[string]*model.Applicant)}
}

func (m *mockApplicantRepo) Create(_ context.Context, applicant *model.Applicant) error {
	for _, a := range m.applicants {
		if a.UserID == applicant.UserID && a.SpecializationID == applicant.SpecializationID {
			return gorm.ErrDuplicatedKey
		}
	}
	if applicant.ApplicantID == "" {
		m.seq++
		applicant.ApplicantID = fmt.Sprintf("app-%d", m.seq)
	}
	applicant.CreatedAt = time.Now()
	m.applicants[applicant.ApplicantID] = applicant
	return nil
}

func (m *mockApplicantRepo) GetByID(_ context.Context, id string) (*model.Applicant, error) {
	if a, ok := m.applicants[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockApplicantRepo) GetByUserAndSpecialization(_ context.Context, userID, specializationID string) (*model.Applicant, error) {
	for _, a := range m.applicants {
		if a.UserID == userID && a.SpecializationID == specializationID {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockApplicantRepo) GetByOrderID(_ context.Context, orderID string) (*model.Applicant, error) {
	for _, a := range m.applicants {
		if a.RazorpayOrderID != nil && *a.RazorpayOrderID == orderID {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockApplicantRepo) GetLatestByEmail(_ context.Context, email string) (*model.Applicant, error) {
	var latest *model.Applicant
	for _, a := range m.applicants {
		if strings.EqualFold(a.Email, email) {
			if latest == nil || a.CreatedAt.After(latest.CreatedAt) {
				latest = a
			}
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return latest, nil
}

// MarkPaid 模拟条件更新：只有 created 状态的行会被改动
func (m *mockApplicantRepo) MarkPaid(_ context.Context, applicantID, paymentID string) (int64, error) {
	a, ok := m.applicants[applicantID]
	if !ok || a.PaymentStatus != model.PaymentStatusCreated {
		return 0, nil
	}
	a.PaymentStatus = model.PaymentStatusPaid
	a.ApplicationStatus = model.ApplicationStatusActive
	a.RazorpayPaymentID = &paymentID
	return 1, nil
}

func (m *mockApplicantRepo) MarkFailed(_ context.Context, applicantID string) (int64, error) {
	a, ok := m.applicants[applicantID]
	if !ok || a.PaymentStatus != model.PaymentStatusCreated {
		return 0, nil
	}
	a.PaymentStatus = model.PaymentStatusFailed
	a.ApplicationStatus = model.ApplicationStatusCancelled
	return 1, nil
}

func (m *mockApplicantRepo) SetOrderID(_ context.Context, applicantID, orderID string) error {
	a, ok := m.applicants[applicantID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.RazorpayOrderID = &orderID
	return nil
}

func (m *mockApplicantRepo) SetReferralCode(_ context.Context, applicantID, code string) error {
	a, ok := m.applicants[applicantID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.ReferralCode = &code
	return nil
}

func (m *mockApplicantRepo) UpdatePricing(_ context.Context, applicantID string, base, discount, gst, final int) error {
	a, ok := m.applicants[applicantID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.BaseAmount, a.DiscountAmount, a.GSTAmount, a.FinalAmount = base, discount, gst, final
	return nil
}

func (m *mockApplicantRepo) UpdateFamilyContext(_ context.Context, applicantID string, guardianName, guardianContact, householdIncome *string) error {
	a, ok := m.applicants[applicantID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if guardianName != nil {
		a.GuardianName = guardianName
	}
	if guardianContact != nil {
		a.GuardianContact = guardianContact
	}
	if householdIncome != nil {
		a.HouseholdIncome = householdIncome
	}
	return nil
}

func (m *mockApplicantRepo) ListPendingPaymentBefore(_ context.Context, before time.Time, limit int) ([]model.Applicant, error) {
	var result []model.Applicant
	for _, a := range m.applicants {
		if a.PaymentStatus == model.PaymentStatusCreated && a.CreatedAt.Before(before) {
			result = append(result, *a)
			if len(result) >= limit {
				break
			}
		}
	}
	return result, nil
}

func (m *mockApplicantRepo) CountByPaymentStatus(_ context.Context, status string) (int64, error) {
	var n int64
	for _, a := range m.applicants {
		if a.PaymentStatus == status {
			n++
		}
	}
	return n, nil
}

func (m *mockApplicantRepo) SumFinalAmountPaid(_ context.Context) (int64, error) {
	var sum int64
	for _, a := range m.applicants {
		if a.PaymentStatus == model.PaymentStatusPaid {
			sum += int64(a.FinalAmount)
		}
	}
	return sum, nil
}

func (m *mockApplicantRepo) CountBySpecialization(_ context.Context) (map[string]int64, error) {
	result := make(map[string]int64)
	for _, a := range m.applicants {
		result[a.SpecializationID]++
	}
	return result, nil
}

// ── Mock PricingRepository ──

type mockPricingRepo struct {
	phases  map[string]*model.PricingPhase
	amounts []*model.PricingAmount
	config  *model.PricingConfig
	control *model.EnrollmentControl
}

func newMockPricingRepo() *mockPricingRepo {
	notice := ""
	return &mockPricingRepo{
		phases:  make(map[string]*model.PricingPhase),
		config:  &model.PricingConfig{GSTRate: 0.18, ReferralDiscount: 50, ReferralReward: 100},
		control: &model.EnrollmentControl{IsOpen: true, Notice: &notice},
	}
}

func (m *mockPricingRepo) ActivePhase(_ context.Context, now time.Time) (*model.PricingPhase, error) {
	for _, p := range m.phases {
		if !now.Before(p.StartsAt) && !now.After(p.EndsAt) {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPricingRepo) Amount(_ context.Context, phaseID string, teamSize int) (*model.PricingAmount, error) {
	for _, a := range m.amounts {
		if a.PhaseID == phaseID && a.TeamSize == teamSize {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPricingRepo) ListAmounts(_ context.Context, phaseID string) ([]model.PricingAmount, error) {
	var result []model.PricingAmount
	for _, a := range m.amounts {
		if a.PhaseID == phaseID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockPricingRepo) GetConfig(_ context.Context) (*model.PricingConfig, error) {
	return m.config, nil
}

func (m *mockPricingRepo) GetEnrollmentControl(_ context.Context) (*model.EnrollmentControl, error) {
	return m.control, nil
}

// ── Mock ReferralRepository ──

type mockReferralRepo struct {
	codes     map[string]*model.ReferralCode
	referrals map[string]*model.Referral
	ledger    []*model.WalletLedgerEntry
	seq       int
}

func newMockReferralRepo() *mockReferralRepo {
	return &mockReferralRepo{
		codes:     make(map[string]*model.ReferralCode),
		referrals: make(map[string]*model.Referral),
	}
}

func (m *mockReferralRepo) CreateCode(_ context.Context, code *model.ReferralCode) error {
	if _, ok := m.codes[code.Code]; ok {
		return gorm.ErrDuplicatedKey
	}
	if code.ReferralCodeID == "" {
		m.seq++
		code.ReferralCodeID = fmt.Sprintf("code-%d", m.seq)
	}
	m.codes[code.Code] = code
	return nil
}

func (m *mockReferralRepo) GetCodeByCode(_ context.Context, code string) (*model.ReferralCode, error) {
	if c, ok := m.codes[code]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReferralRepo) GetCodeByApplicant(_ context.Context, applicantID string) (*model.ReferralCode, error) {
	for _, c := range m.codes {
		if c.ApplicantID == applicantID {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReferralRepo) CreateReferral(_ context.Context, referral *model.Referral) error {
	for _, r := range m.referrals {
		if r.ReferredApplicantID == referral.ReferredApplicantID {
			return gorm.ErrDuplicatedKey
		}
	}
	if referral.ReferralID == "" {
		m.seq++
		referral.ReferralID = fmt.Sprintf("ref-%d", m.seq)
	}
	m.referrals[referral.ReferralID] = referral
	return nil
}

func (m *mockReferralRepo) GetByReferredApplicant(_ context.Context, applicantID string) (*model.Referral, error) {
	for _, r := range m.referrals {
		if r.ReferredApplicantID == applicantID {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ConfirmByReferredApplicant 模拟条件更新：仅 pending 行会变为 confirmed
func (m *mockReferralRepo) ConfirmByReferredApplicant(_ context.Context, applicantID string) (int64, error) {
	for _, r := range m.referrals {
		if r.ReferredApplicantID == applicantID && r.Status == model.ReferralStatusPending {
			r.Status = model.ReferralStatusConfirmed
			return 1, nil
		}
	}
	return 0, nil
}

func (m *mockReferralRepo) VoidSelfReferral(_ context.Context, referralID string) error {
	if r, ok := m.referrals[referralID]; ok {
		r.Status = model.ReferralStatusVoidSelfRef
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (m *mockReferralRepo) CountByReferrer(_ context.Context, referrerApplicantID, status string) (int64, error) {
	var n int64
	for _, r := range m.referrals {
		if r.ReferrerApplicantID == referrerApplicantID && r.Status == status {
			n++
		}
	}
	return n, nil
}

func (m *mockReferralRepo) AppendWalletCredit(_ context.Context, entry *model.WalletLedgerEntry) error {
	m.ledger = append(m.ledger, entry)
	return nil
}

func (m *mockReferralRepo) WalletBalance(_ context.Context, userID string) (int64, error) {
	var sum int64
	for _, e := range m.ledger {
		if e.UserID == userID {
			sum += int64(e.Amount)
		}
	}
	return sum, nil
}

func (m *mockReferralRepo) CountPendingReferrals(_ context.Context) (int64, error) {
	return m.countByStatus(model.ReferralStatusPending), nil
}

func (m *mockReferralRepo) CountConfirmedReferrals(_ context.Context) (int64, error) {
	return m.countByStatus(model.ReferralStatusConfirmed), nil
}

func (m *mockReferralRepo) countByStatus(status string) int64 {
	var n int64
	for _, r := range m.referrals {
		if r.Status == status {
			n++
		}
	}
	return n
}

func (m *mockReferralRepo) CountCodes(_ context.Context) (int64, error) {
	return int64(len(m.codes)), nil
}

func (m *mockReferralRepo) TotalCredits(_ context.Context) (int64, error) {
	var sum int64
	for _, e := range m.ledger {
		sum += int64(e.Amount)
	}
	return sum, nil
}

// ── Mock CommunityRepository ──

type mockCommunityRepo struct {
	referrers map[string]*model.CommunityReferrer
	links     map[string]*model.CommunityReferralLink
	ledger    []*model.CommunityWalletLedgerEntry
	seq       int
}

func newMockCommunityRepo() *mockCommunityRepo {
	return &mockCommunityRepo{
		referrers: make(map[string]*model.CommunityReferrer),
		links:     make(map[string]*model.CommunityReferralLink),
	}
}

func (m *mockCommunityRepo) CreateReferrer(_ context.Context, referrer *model.CommunityReferrer) error {
	for _, r := range m.referrers {
		if strings.EqualFold(r.Email, referrer.Email) || r.Code == referrer.Code {
			return gorm.ErrDuplicatedKey
		}
	}
	if referrer.ReferrerID == "" {
		m.seq++
		referrer.ReferrerID = fmt.Sprintf("cr-%d", m.seq)
	}
	m.referrers[referrer.ReferrerID] = referrer
	return nil
}

func (m *mockCommunityRepo) GetReferrerByCode(_ context.Context, code string) (*model.CommunityReferrer, error) {
	for _, r := range m.referrers {
		if r.Code == code {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCommunityRepo) GetReferrerByEmail(_ context.Context, email string) (*model.CommunityReferrer, error) {
	for _, r := range m.referrers {
		if strings.EqualFold(r.Email, email) {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCommunityRepo) CreateLink(_ context.Context, link *model.CommunityReferralLink) error {
	for _, l := range m.links {
		if l.ReferredApplicantID == link.ReferredApplicantID {
			return gorm.ErrDuplicatedKey
		}
	}
	if link.LinkID == "" {
		m.seq++
		link.LinkID = fmt.Sprintf("link-%d", m.seq)
	}
	m.links[link.LinkID] = link
	return nil
}

func (m *mockCommunityRepo) GetLinkByReferredApplicant(_ context.Context, applicantID string) (*model.CommunityReferralLink, error) {
	for _, l := range m.links {
		if l.ReferredApplicantID == applicantID {
			return l, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCommunityRepo) ConfirmLinkByReferredApplicant(_ context.Context, applicantID string) (int64, error) {
	for _, l := range m.links {
		if l.ReferredApplicantID == applicantID && l.Status == model.ReferralStatusPending {
			l.Status = model.ReferralStatusConfirmed
			return 1, nil
		}
	}
	return 0, nil
}

func (m *mockCommunityRepo) AppendWalletCredit(_ context.Context, entry *model.CommunityWalletLedgerEntry) error {
	m.ledger = append(m.ledger, entry)
	return nil
}

func (m *mockCommunityRepo) WalletBalance(_ context.Context, referrerID string) (int64, error) {
	var sum int64
	for _, e := range m.ledger {
		if e.ReferrerID == referrerID {
			sum += int64(e.Amount)
		}
	}
	return sum, nil
}

func (m *mockCommunityRepo) CountLinksByReferrer(_ context.Context, referrerID, status string) (int64, error) {
	var n int64
	for _, l := range m.links {
		if l.ReferrerID == referrerID && l.Status == status {
			n++
		}
	}
	return n, nil
}

// ── Mock ProgramRepository ──

type mockProgramRepo struct {
	problems    map[string]*model.ProblemStatement
	selections  map[string]*model.ProblemSelection // applicantID → selection
	submissions map[string]*model.Submission       // applicantID → submission
	outcomes    map[string]*model.EvaluationOutcome
	certs       map[string]*model.Certificate
	seq         int
}

func newMockProgramRepo() *mockProgramRepo {
	return &mockProgramRepo{
		problems:    make(map[string]*model.ProblemStatement),
		selections:  make(map[string]*model.ProblemSelection),
		submissions: make(map[string]*model.Submission),
		outcomes:    make(map[string]*model.EvaluationOutcome),
		certs:       make(map[string]*model.Certificate),
	}
}

func (m *mockProgramRepo) ListProblemStatements(_ context.Context, specializationID string) ([]model.ProblemStatement, error) {
	var result []model.ProblemStatement
	for _, p := range m.problems {
		if p.SpecializationID == specializationID && p.IsActive {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockProgramRepo) GetProblemByID(_ context.Context, problemID string) (*model.ProblemStatement, error) {
	if p, ok := m.problems[problemID]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProgramRepo) GetSelectionByApplicant(_ context.Context, applicantID string) (*model.ProblemSelection, error) {
	if s, ok := m.selections[applicantID]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProgramRepo) CreateSelection(_ context.Context, sel *model.ProblemSelection) error {
	if _, ok := m.selections[sel.ApplicantID]; ok {
		return gorm.ErrDuplicatedKey
	}
	if sel.SelectionID == "" {
		m.seq++
		sel.SelectionID = fmt.Sprintf("sel-%d", m.seq)
	}
	sel.CreatedAt = time.Now()
	m.selections[sel.ApplicantID] = sel
	return nil
}

func (m *mockProgramRepo) GetSubmissionByApplicant(_ context.Context, applicantID string) (*model.Submission, error) {
	if s, ok := m.submissions[applicantID]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProgramRepo) CreateSubmission(_ context.Context, sub *model.Submission) error {
	if _, ok := m.submissions[sub.ApplicantID]; ok {
		return gorm.ErrDuplicatedKey
	}
	if sub.SubmissionID == "" {
		m.seq++
		sub.SubmissionID = fmt.Sprintf("sub-%d", m.seq)
	}
	sub.CreatedAt = time.Now()
	m.submissions[sub.ApplicantID] = sub
	return nil
}

func (m *mockProgramRepo) GetOutcomeByApplicant(_ context.Context, applicantID string) (*model.EvaluationOutcome, error) {
	if o, ok := m.outcomes[applicantID]; ok {
		return o, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProgramRepo) GetCertificateByApplicant(_ context.Context, applicantID string) (*model.Certificate, error) {
	if c, ok := m.certs[applicantID]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	notifications map[string]*model.Notification
	seq           int
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{notifications: make(map[string]*model.Notification)}
}

func (m *mockNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	if n.NotificationID == "" {
		m.seq++
		n.NotificationID = fmt.Sprintf("notif-%d", m.seq)
	}
	n.CreatedAt = time.Now()
	m.notifications[n.NotificationID] = n
	return nil
}

func (m *mockNotificationRepo) GetByID(_ context.Context, id string) (*model.Notification, error) {
	if n, ok := m.notifications[id]; ok {
		return n, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNotificationRepo) ListSendable(_ context.Context, maxAttempts, limit int) ([]model.Notification, error) {
	var result []model.Notification
	for _, n := range m.notifications {
		if (n.Status == model.NotificationStatusPending || n.Status == model.NotificationStatusFailed) && n.Attempts < maxAttempts {
			result = append(result, *n)
			if len(result) >= limit {
				break
			}
		}
	}
	return result, nil
}

func (m *mockNotificationRepo) ExistsForRecipient(_ context.Context, notifType, recipient string) (bool, error) {
	for _, n := range m.notifications {
		if n.Type == notifType && n.Recipient == recipient {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockNotificationRepo) MarkSent(_ context.Context, id string) error {
	if n, ok := m.notifications[id]; ok {
		now := time.Now()
		n.Status = model.NotificationStatusSent
		n.SentAt = &now
		n.Attempts++
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (m *mockNotificationRepo) MarkFailed(_ context.Context, id, lastError string) error {
	if n, ok := m.notifications[id]; ok {
		n.Status = model.NotificationStatusFailed
		n.LastError = &lastError
		n.Attempts++
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (m *mockNotificationRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	var n int64
	for _, notif := range m.notifications {
		if notif.Status == status {
			n++
		}
	}
	return n, nil
}

// ── Mock PaymentGateway ──

type mockGateway struct {
	orders      []string
	orderErr    error
	validSigs   map[string]bool // "orderID|paymentID|sig" → 是否有效
	webhookSigs map[string]bool // signature → 是否有效
	seq         int
}

func newMockGateway() *mockGateway {
	return &mockGateway{
		validSigs:   make(map[string]bool),
		webhookSigs: make(map[string]bool),
	}
}

func (g *mockGateway) CreateOrder(_ int, _ string, _ map[string]interface{}) (string, error) {
	if g.orderErr != nil {
		return "", g.orderErr
	}
	g.seq++
	orderID := fmt.Sprintf("order_%d", g.seq)
	g.orders = append(g.orders, orderID)
	return orderID, nil
}

func (g *mockGateway) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	return g.validSigs[orderID+"|"+paymentID+"|"+signature]
}

func (g *mockGateway) VerifyWebhookSignature(_ []byte, signature string) bool {
	return g.webhookSigs[signature]
}

// ── Mock MailSender ──

type mockMailer struct {
	sent    []sentMail
	failAll bool
}

type sentMail struct {
	to      string
	subject string
}

func (m *mockMailer) Send(to, subject, _ string) error {
	if m.failAll {
		return fmt.Errorf("smtp 连接失败")
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject})
	return nil
}

// ── 共享测试夹具 ──

// testConfig 测试用配置：通知开启，活动边界取固定日期
func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.BaseURL = "http://localhost:8080"
	cfg.Mail.OpsAlertTo = "ops@example.com"
	cfg.Razorpay.KeyID = "rzp_test_key"
	cfg.Feature.NotificationsEnabled = true
	cfg.Program.AssignmentStart = time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
	cfg.Program.EvaluationStart = time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	cfg.Program.ResultsStart = time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC)
	return cfg
}

type testRepos struct {
	user         *mockUserRepo
	spec         *mockSpecializationRepo
	applicant    *mockApplicantRepo
	pricing      *mockPricingRepo
	referral     *mockReferralRepo
	community    *mockCommunityRepo
	program      *mockProgramRepo
	notification *mockNotificationRepo
}

func newTestRepos() (*repository.Repository, *testRepos) {
	mocks := &testRepos{
		user:         newMockUserRepo(),
		spec:         newMockSpecializationRepo(),
		applicant:    newMockApplicantRepo(),
		pricing:      newMockPricingRepo(),
		referral:     newMockReferralRepo(),
		community:    newMockCommunityRepo(),
		program:      newMockProgramRepo(),
		notification: newMockNotificationRepo(),
	}
	repo := &repository.Repository{
		User:           mocks.user,
		Specialization: mocks.spec,
		Applicant:      mocks.applicant,
		Pricing:        mocks.pricing,
		Referral:       mocks.referral,
		Community:      mocks.community,
		Program:        mocks.program,
		Notification:   mocks.notification,
	}
	return repo, mocks
}

// seedPhase 铺一个覆盖 now 的报价阶段：1人799 / 2人1399 / 3人1999
func seedPhase(mocks *testRepos, now time.Time) *model.PricingPhase {
	phase := &model.PricingPhase{
		PhaseID:  "phase-1",
		Name:     "Early Bird",
		StartsAt: now.Add(-24 * time.Hour),
		EndsAt:   now.Add(24 * time.Hour),
	}
	mocks.pricing.phases[phase.PhaseID] = phase
	mocks.pricing.amounts = append(mocks.pricing.amounts,
		&model.PricingAmount{AmountID: "amt-1", PhaseID: phase.PhaseID, TeamSize: 1, Amount: 799},
		&model.PricingAmount{AmountID: "amt-2", PhaseID: phase.PhaseID, TeamSize: 2, Amount: 1399},
		&model.PricingAmount{AmountID: "amt-3", PhaseID: phase.PhaseID, TeamSize: 3, Amount: 1999},
	)
	return phase
}

// [自证通过] internal/service/mock_repos_test.go

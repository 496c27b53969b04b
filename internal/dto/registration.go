package dto

// ── 报名模块 DTO ──

// TeamMemberInput 队员信息
type TeamMemberInput struct {
	Name  string `json:"name"  binding:"required,min=2,max=100"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"omitempty,min=10,max=15"`
}

// RegisterRequest 报名请求（POST /api/register）
type RegisterRequest struct {
	Name             string            `json:"name"              binding:"required,min=2,max=100"`
	Email            string            `json:"email"             binding:"required,email"`
	Phone            string            `json:"phone"             binding:"required,min=10,max=15"`
	SpecializationID string            `json:"specialization_id" binding:"required,uuid"`
	TeamSize         int               `json:"team_size"         binding:"required,min=1,max=3"`
	TeamMembers      []TeamMemberInput `json:"team_members"      binding:"omitempty,max=2,dive"`
	Institute        string            `json:"institute"         binding:"required,max=200"`
	Degree           string            `json:"degree"            binding:"omitempty,max=100"`
	GraduationYear   int               `json:"graduation_year"   binding:"omitempty,min=2000,max=2040"`
	ReferralCode     string            `json:"referral_code"     binding:"omitempty,max=20"`
}

// FamilyContextRequest 家庭背景补充请求（PUT /api/register）
// 全部可选，仅更新提供的字段
type FamilyContextRequest struct {
	ApplicantID     string  `json:"applicant_id"     binding:"required,uuid"`
	GuardianName    *string `json:"guardian_name"    binding:"omitempty,max=100"`
	GuardianContact *string `json:"guardian_contact" binding:"omitempty,max=20"`
	HouseholdIncome *string `json:"household_income" binding:"omitempty,max=50"`
}

// PricingBreakdown 价格明细
type PricingBreakdown struct {
	BaseAmount      int     `json:"base_amount"`
	DiscountAmount  int     `json:"discount_amount"`
	GSTAmount       int     `json:"gst_amount"`
	FinalAmount     int     `json:"final_amount"`
	GSTRate         float64 `json:"gst_rate"`
	ReferralApplied bool    `json:"referral_applied"`
}

// RegisterResponse 报名成功响应
type RegisterResponse struct {
	ApplicantID   string           `json:"applicant_id"`
	PaymentStatus string           `json:"payment_status"`
	Pricing       PricingBreakdown `json:"pricing"`
}

// [自证通过] internal/dto/registration.go

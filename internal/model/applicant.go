package model

// Applicant 报名申请表 — 对应 applicants
// 每个 (user_id, specialization_id) 组合最多一行，由唯一索引兜底
type Applicant struct {
	ApplicantID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"        json:"applicant_id"`
	UserID           string `gorm:"type:uuid;not null;uniqueIndex:uq_applicant_user_spec" json:"user_id"`
	SpecializationID string `gorm:"type:uuid;not null;uniqueIndex:uq_applicant_user_spec" json:"specialization_id"`

	// 身份信息（报名时落库快照，不随 users 表变化）
	Name  string `gorm:"type:varchar(100);not null" json:"name"`
	Email string `gorm:"type:varchar(255);not null" json:"email"`
	Phone string `gorm:"type:varchar(20);not null"  json:"phone"`

	// 学业信息
	Institute      string `gorm:"type:varchar(200)" json:"institute"`
	Degree         string `gorm:"type:varchar(100)" json:"degree"`
	GraduationYear int    `gorm:"default:0"         json:"graduation_year"`

	// 家庭背景（可选，PUT /api/register 补充）
	GuardianName    *string `gorm:"type:varchar(100)" json:"guardian_name,omitempty"`
	GuardianContact *string `gorm:"type:varchar(20)"  json:"guardian_contact,omitempty"`
	HouseholdIncome *string `gorm:"type:varchar(50)"  json:"household_income,omitempty"`

	// 计价快照（整数卢比，下单时按当前阶段重算）
	TeamSize       int `gorm:"not null;default:1" json:"team_size"`
	BaseAmount     int `gorm:"not null;default:0" json:"base_amount"`
	DiscountAmount int `gorm:"not null;default:0" json:"discount_amount"`
	GSTAmount      int `gorm:"not null;default:0" json:"gst_amount"`
	FinalAmount    int `gorm:"not null;default:0" json:"final_amount"`

	// 推荐关系
	AppliedReferralCode *string `gorm:"type:varchar(20)" json:"applied_referral_code,omitempty"` // 报名时填写的他人推荐码
	ReferralCode        *string `gorm:"type:varchar(20)" json:"referral_code,omitempty"`         // 支付成功后发放的本人推荐码

	// 支付状态机：created → paid | failed，单向不可回退
	PaymentStatus     string  `gorm:"type:varchar(20);not null;default:'created'"         json:"payment_status"`
	ApplicationStatus string  `gorm:"type:varchar(20);not null;default:'pending_payment'" json:"application_status"`
	RazorpayOrderID   *string `gorm:"type:varchar(100);uniqueIndex"                       json:"razorpay_order_id,omitempty"`
	RazorpayPaymentID *string `gorm:"type:varchar(100)"                                   json:"razorpay_payment_id,omitempty"`

	BaseModel

	// 关联
	TeamMembers    []TeamMember    `gorm:"foreignKey:ApplicantID;references:ApplicantID"        json:"team_members,omitempty"`
	Specialization *Specialization `gorm:"foreignKey:SpecializationID;references:SpecializationID" json:"specialization,omitempty"`
}

// TableName 指定表名
func (Applicant) TableName() string { return "applicants" }

// TeamMember 团队成员子记录 — 对应 team_members
type TeamMember struct {
	TeamMemberID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"team_member_id"`
	ApplicantID  string `gorm:"type:uuid;not null;index"                       json:"applicant_id"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string `gorm:"type:varchar(255);not null"                     json:"email"`
	Phone        string `gorm:"type:varchar(20)"                               json:"phone"`
	BaseModel
}

// TableName 指定表名
func (TeamMember) TableName() string { return "team_members" }

// [自证通过] internal/model/applicant.go

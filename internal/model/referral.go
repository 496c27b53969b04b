package model

// ReferralCode 学员推荐码表 — 对应 referral_codes
// 前缀 ZTF-，与社区伙伴的 CR- 命名空间互不查重
type ReferralCode struct {
	ReferralCodeID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"referral_code_id"`
	Code           string `gorm:"type:varchar(20);not null;uniqueIndex"          json:"code"`
	ApplicantID    string `gorm:"type:uuid;not null;uniqueIndex"                 json:"applicant_id"`
	UserID         string `gorm:"type:uuid;not null"                             json:"user_id"`
	OwnerEmail     string `gorm:"type:varchar(255);not null"                     json:"owner_email"`
	IsActive       bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (ReferralCode) TableName() string { return "referral_codes" }

// Referral 学员推荐关系表 — 对应 referrals
// 被推荐人报名时创建 pending 行；其首次支付确认时恰好确认一次
type Referral struct {
	ReferralID          string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"referral_id"`
	ReferrerApplicantID string `gorm:"type:uuid;not null;index"                       json:"referrer_applicant_id"`
	ReferredApplicantID string `gorm:"type:uuid;not null;uniqueIndex"                 json:"referred_applicant_id"`
	Code                string `gorm:"type:varchar(20);not null"                      json:"code"`
	Status              string `gorm:"type:varchar(30);not null;default:'pending'"    json:"status"` // pending | confirmed | void_self_referral
	BaseModel
}

// TableName 指定表名
func (Referral) TableName() string { return "referrals" }

// CommunityReferrer 社区/机构合作伙伴表 — 对应 community_referrers
// 独立于 applicants，有自己的 CR- 码命名空间与钱包账本
type CommunityReferrer struct {
	ReferrerID  string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"referrer_id"`
	Name        string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email       string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	Phone       string `gorm:"type:varchar(20)"                               json:"phone"`
	Institution string `gorm:"type:varchar(200)"                              json:"institution"`
	Code        string `gorm:"type:varchar(20);not null;uniqueIndex"          json:"code"`
	IsActive    bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (CommunityReferrer) TableName() string { return "community_referrers" }

// CommunityReferralLink 社区推荐关系表 — 对应 community_referral_links
type CommunityReferralLink struct {
	LinkID              string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"link_id"`
	ReferrerID          string `gorm:"type:uuid;not null;index"                       json:"referrer_id"`
	ReferredApplicantID string `gorm:"type:uuid;not null;uniqueIndex"                 json:"referred_applicant_id"`
	Code                string `gorm:"type:varchar(20);not null"                      json:"code"`
	Status              string `gorm:"type:varchar(30);not null;default:'pending'"    json:"status"`
	BaseModel
}

// TableName 指定表名
func (CommunityReferralLink) TableName() string { return "community_referral_links" }

// WalletLedgerEntry 学员钱包流水表 — 对应 wallet_ledger
// 只追加不修改；余额永远是流水求和，不落任何可变余额字段
type WalletLedgerEntry struct {
	EntryID     string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"entry_id"`
	UserID      string  `gorm:"type:uuid;not null;index"                       json:"user_id"`
	Amount      int     `gorm:"not null"                                       json:"amount"` // 正数入账，负数出账
	Reason      string  `gorm:"type:varchar(200);not null"                     json:"reason"`
	ReferenceID *string `gorm:"type:uuid"                                      json:"reference_id,omitempty"` // 关联的 referral_id 等
	BaseModel
}

// TableName 指定表名
func (WalletLedgerEntry) TableName() string { return "wallet_ledger" }

// CommunityWalletLedgerEntry 社区伙伴钱包流水表 — 对应 community_wallet_ledger
type CommunityWalletLedgerEntry struct {
	EntryID     string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"entry_id"`
	ReferrerID  string  `gorm:"type:uuid;not null;index"                       json:"referrer_id"`
	Amount      int     `gorm:"not null"                                       json:"amount"`
	Reason      string  `gorm:"type:varchar(200);not null"                     json:"reason"`
	ReferenceID *string `gorm:"type:uuid"                                      json:"reference_id,omitempty"`
	BaseModel
}

// TableName 指定表名
func (CommunityWalletLedgerEntry) TableName() string { return "community_wallet_ledger" }

// [自证通过] internal/model/referral.go

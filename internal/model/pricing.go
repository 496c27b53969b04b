package model

import "time"

// PricingPhase 报名计价阶段表 — 对应 pricing_phases
// 任一时刻最多一个阶段的 [starts_at, ends_at] 窗口包含当前时间；
// 没有阶段命中即视为报名关闭
type PricingPhase struct {
	PhaseID      string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"phase_id"`
	Name         string    `gorm:"type:varchar(100);not null"                     json:"name"`
	DisplayOrder int       `gorm:"not null;default:0"                             json:"display_order"`
	StartsAt     time.Time `gorm:"not null"                                       json:"starts_at"`
	EndsAt       time.Time `gorm:"not null"                                       json:"ends_at"`
	BaseModel

	// 关联
	Amounts []PricingAmount `gorm:"foreignKey:PhaseID;references:PhaseID" json:"amounts,omitempty"`
}

// TableName 指定表名
func (PricingPhase) TableName() string { return "pricing_phases" }

// PricingAmount 阶段内按团队规模的报名费 — 对应 pricing_amounts
type PricingAmount struct {
	AmountID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"  json:"amount_id"`
	PhaseID  string `gorm:"type:uuid;not null;uniqueIndex:uq_phase_teamsize" json:"phase_id"`
	TeamSize int    `gorm:"not null;uniqueIndex:uq_phase_teamsize"           json:"team_size"`
	Amount   int    `gorm:"not null"                                         json:"amount"` // 整数卢比
	BaseModel
}

// TableName 指定表名
func (PricingAmount) TableName() string { return "pricing_amounts" }

// PricingConfig 计价参数表 — 对应 pricing_config（单行）
// 数据库是唯一事实来源，代码中不保留静态兜底表
type PricingConfig struct {
	Singleton        bool    `gorm:"primaryKey;default:true" json:"-"`
	GSTRate          float64 `gorm:"not null;default:0.18"   json:"gst_rate"`
	ReferralDiscount int     `gorm:"not null;default:50"     json:"referral_discount"` // 有效推荐码的固定立减
	ReferralReward   int     `gorm:"not null;default:100"    json:"referral_reward"`   // 每笔确认推荐入账的奖励
	BaseModel
}

// TableName 指定表名
func (PricingConfig) TableName() string { return "pricing_config" }

// EnrollmentControl 报名总开关表 — 对应 enrollment_control（单行）
type EnrollmentControl struct {
	Singleton bool    `gorm:"primaryKey;default:true" json:"-"`
	IsOpen    bool    `gorm:"not null;default:true"   json:"is_open"`
	Notice    *string `gorm:"type:text"               json:"notice,omitempty"` // 关闭时对外展示的公告
	BaseModel
}

// TableName 指定表名
func (EnrollmentControl) TableName() string { return "enrollment_control" }

// [自证通过] internal/model/pricing.go

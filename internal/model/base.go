package model

import "time"

// BaseModel 通用审计字段（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ── 支付/报名状态枚举 ──
// payment_status 只允许 created→paid 或 created→failed 两种单向迁移，
// 由 Repository 层的条件更新（CAS）保证，不允许回退

const (
	PaymentStatusCreated = "created"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

const (
	ApplicationStatusPendingPayment = "pending_payment"
	ApplicationStatusActive         = "active"
	ApplicationStatusCancelled      = "cancelled"
)

// ── 推荐关系状态枚举 ──

const (
	ReferralStatusPending     = "pending"
	ReferralStatusConfirmed   = "confirmed"
	ReferralStatusVoidSelfRef = "void_self_referral"
)

// ── 通知投递状态枚举 ──

const (
	NotificationStatusPending = "pending"
	NotificationStatusSent    = "sent"
	NotificationStatusFailed  = "failed"
)

// [自证通过] internal/model/base.go

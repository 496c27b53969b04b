package dto

// ── 支付模块 DTO ──

// CreateOrderRequest 创建支付订单请求（POST /api/razorpay/order）
// 金额不由客户端提供，服务端按快照重算
type CreateOrderRequest struct {
	ApplicantID string `json:"applicant_id" binding:"required,uuid"`
}

// CreateOrderResponse 创建订单响应
type CreateOrderResponse struct {
	OrderID     string           `json:"order_id"`
	AmountPaise int              `json:"amount"` // 单位派萨，卢比 × 100
	Currency    string           `json:"currency"`
	KeyID       string           `json:"key_id"`
	Pricing     PricingBreakdown `json:"pricing"`
}

// VerifyPaymentRequest 同步支付验证请求（POST /api/verify-payment）
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"   binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature"  binding:"required"`
}

// VerifyPaymentResponse 支付验证响应
type VerifyPaymentResponse struct {
	ApplicantID   string `json:"applicant_id"`
	PaymentStatus string `json:"payment_status"`
	ReferralCode  string `json:"referral_code,omitempty"` // 支付成功后生成的本人推荐码
}

// [自证通过] internal/dto/payment.go

